package live

import (
	"corpuscheck/internal/report"
	"corpuscheck/internal/runner"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventPhase signals a pipeline stage transition.
	EventPhase
	// EventChapter delivers a chapter status update.
	EventChapter
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind     EventKind
	RunID    string
	Root     string
	Chapters int
	Phase    runner.Phase
	Chapter  runner.ChapterEvent
	Summary  report.Summary
}
