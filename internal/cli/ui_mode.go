package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// uiModeDecision captures whether to use the live UI.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a writer is a TTY. Overridable in tests.
var isTerminal = func(w io.Writer) bool {
	switch typed := w.(type) {
	case *os.File:
		return term.IsTerminal(int(typed.Fd()))
	case interface{ Fd() uintptr }:
		return term.IsTerminal(int(typed.Fd()))
	default:
		return false
	}
}

// resolveUIMode picks between the live table and plain output. Verbose
// mode always forces plain so progress lines stay readable.
func resolveUIMode(mode string, verbose bool, stdout io.Writer) (uiModeDecision, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = "auto"
	}

	switch {
	case verbose, normalized == "plain":
		return uiModeDecision{}, nil
	case normalized == "auto":
		return uiModeDecision{useLive: stdout != nil && isTerminal(stdout)}, nil
	case normalized == "live":
		if stdout != nil && isTerminal(stdout) {
			return uiModeDecision{useLive: true}, nil
		}
		return uiModeDecision{
			warning: "Live UI requested but stdout is not a TTY; falling back to plain output.",
		}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
}
