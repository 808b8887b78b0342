package live

import (
	"time"

	"corpuscheck/internal/report"
	"corpuscheck/internal/runner"
)

// ChapterRow holds UI state for a single chapter.
type ChapterRow struct {
	Book       string
	Path       string
	Ordinal    int
	Status     runner.ChapterEventType
	Issues     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// StatusCounts aggregates chapter counts by status bucket.
type StatusCounts struct {
	Queued  int
	Parsing int
	Parsed  int
	Skipped int
	Issues  int
}

// State captures the live UI state for a run.
type State struct {
	RunID        string
	Root         string
	ChapterTotal int
	Phase        runner.Phase
	StartedAt    time.Time
	LastEvent    string
	Rows         []ChapterRow
	Counts       StatusCounts
	Summary      *report.Summary
}

// rowIndex finds a chapter row by path; -1 when absent.
func (s State) rowIndex(path string) int {
	for i, row := range s.Rows {
		if row.Path == path {
			return i
		}
	}
	return -1
}
