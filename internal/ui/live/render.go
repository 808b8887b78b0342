package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Run " + state.RunID
	if state.Root != "" {
		line += " | " + state.Root
	}
	if state.Phase != "" {
		line += " | Phase: " + string(state.Phase)
	}
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Chapters: " + fmtInt(state.ChapterTotal) +
		" Queued: " + fmtInt(counts.Queued) +
		" Parsing: " + fmtInt(counts.Parsing) +
		" Parsed: " + fmtInt(counts.Parsed) +
		" Skipped: " + fmtInt(counts.Skipped) +
		" Issues: " + fmtInt(counts.Issues)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders the last event line, or the final summary once
// the run has completed.
func renderFooter(state State, noColor bool) string {
	if state.Summary != nil {
		line := "Done: " + fmtInt(state.Summary.Errors) + " errors, " +
			fmtInt(state.Summary.Warnings) + " warnings, " +
			fmtInt(state.Summary.Infos) + " info findings"
		return stylize(line, noColor, lipgloss.Color("42"))
	}
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
