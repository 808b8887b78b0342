package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds tests that take a context.
const DefaultTimeout = 5 * time.Second

// Context returns a context cancelled with the test. A non-positive
// timeout uses DefaultTimeout; the test binary's own deadline, when
// set, caps it with a one second margin left for cleanup.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if d, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, ok := d.Deadline(); ok {
			if margin := time.Until(deadline) - time.Second; margin > 0 && margin < timeout {
				timeout = margin
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
