package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns returns the chapter table layout.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "Chapter", Width: 48},
		{Title: "Book", Width: 16},
		{Title: "Status", Width: 10},
		{Title: "Issues", Width: 7},
		{Title: "Time", Width: 10},
	}
}

// columnsForWidth shrinks the chapter column on narrow terminals.
func columnsForWidth(width int) []table.Column {
	columns := defaultColumns()
	fixed := 0
	for _, column := range columns[1:] {
		fixed += column.Width
	}
	remaining := width - fixed - len(columns)*2
	if remaining < 20 {
		remaining = 20
	}
	if remaining < columns[0].Width {
		columns[0].Width = remaining
	}
	return columns
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatPath(row.Path),
			row.Book,
			formatStatus(row, noColor),
			formatIssues(row, noColor),
			formatRowDuration(row, now),
		})
	}
	return rows
}
