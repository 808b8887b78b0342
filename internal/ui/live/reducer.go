package live

import (
	"fmt"

	"corpuscheck/internal/runner"
)

// Reduce applies a chapter event to the UI state.
func Reduce(state State, event runner.ChapterEvent) State {
	state = ensureRow(state, event)
	state = applyChapterEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow appends a row for a chapter seen for the first time.
func ensureRow(state State, event runner.ChapterEvent) State {
	if event.Path == "" || state.rowIndex(event.Path) >= 0 {
		return state
	}
	rows := make([]ChapterRow, len(state.Rows), len(state.Rows)+1)
	copy(rows, state.Rows)
	rows = append(rows, ChapterRow{
		Book:    event.Book,
		Path:    event.Path,
		Ordinal: event.Ordinal,
		Status:  runner.ChapterQueued,
	})
	state.Rows = rows
	return state
}

// applyChapterEvent updates a row with the given event.
func applyChapterEvent(state State, event runner.ChapterEvent) State {
	index := state.rowIndex(event.Path)
	if index < 0 {
		return state
	}
	row := state.Rows[index]
	row.Status = event.Type
	switch event.Type {
	case runner.ChapterParsing:
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
	case runner.ChapterParsed, runner.ChapterSkipped:
		if !event.EmittedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
		row.Issues = event.Issues
	}
	state.Rows[index] = row
	return state
}

// recount recomputes status counts for the current rows.
func recount(rows []ChapterRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.ChapterQueued:
			counts.Queued++
		case runner.ChapterParsing:
			counts.Parsing++
		case runner.ChapterParsed:
			counts.Parsed++
		case runner.ChapterSkipped:
			counts.Skipped++
		}
		counts.Issues += row.Issues
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.ChapterEvent) string {
	switch event.Type {
	case runner.ChapterParsed:
		if event.Issues > 0 {
			return fmt.Sprintf("%s parsed (%d issues)", event.Path, event.Issues)
		}
		return fmt.Sprintf("%s parsed", event.Path)
	case runner.ChapterSkipped:
		return fmt.Sprintf("%s skipped", event.Path)
	}
	return ""
}
