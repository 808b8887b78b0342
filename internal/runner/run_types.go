package runner

import (
	"context"
	"io"
	"time"

	"corpuscheck/internal/vcs"
)

// MetadataFunc loads git metadata for the corpus root.
type MetadataFunc func(ctx context.Context, dir string) (vcs.Metadata, error)

// RunDeps bundles injectable dependencies so tests can pin the run ID,
// the clock, and the git lookup.
type RunDeps struct {
	RunID    func() (string, error)
	Now      func() time.Time
	Metadata MetadataFunc
}

// RunParams configures a single pipeline run.
type RunParams struct {
	// Root is the corpus directory to check.
	Root string
	// OutputDir overrides the configured output directory when set.
	OutputDir string
	// Observer receives lifecycle events; nil means no observer.
	Observer RunObserver
	// Verbose streams per-chapter progress lines to VerboseWriter.
	Verbose       bool
	VerboseWriter io.Writer
	NoColor       bool
	Deps          RunDeps
}
