package live

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"corpuscheck/internal/runner"
)

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatPath truncates a chapter path for display.
func formatPath(path string) string {
	const limit = 48
	if len(path) <= limit {
		return path
	}
	return "..." + path[len(path)-(limit-3):]
}

// formatStatus renders a colored status cell.
func formatStatus(row ChapterRow, noColor bool) string {
	label := string(row.Status)
	if noColor {
		return label
	}
	return statusStyle(row.Status).Render(label)
}

// formatIssues renders the issue count cell.
func formatIssues(row ChapterRow, noColor bool) string {
	if row.Status != runner.ChapterParsed && row.Status != runner.ChapterSkipped {
		return ""
	}
	text := fmtInt(row.Issues)
	if noColor || row.Issues == 0 {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(text)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row ChapterRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return row.FinishedAt.Sub(row.StartedAt).Round(time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

// statusStyle selects a style for a given status.
func statusStyle(status runner.ChapterEventType) lipgloss.Style {
	color := lipgloss.Color("246")
	switch status {
	case runner.ChapterParsing:
		color = lipgloss.Color("33")
	case runner.ChapterParsed:
		color = lipgloss.Color("42")
	case runner.ChapterSkipped:
		color = lipgloss.Color("220")
	}
	return lipgloss.NewStyle().Foreground(color)
}
