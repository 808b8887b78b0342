package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// severityColor maps severities to terminal colors.
func severityColor(severity Severity) lipgloss.Color {
	switch severity {
	case SeverityError:
		return lipgloss.Color("196")
	case SeverityWarning:
		return lipgloss.Color("214")
	default:
		return lipgloss.Color("245")
	}
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// RenderText writes the human-readable report: issues grouped by
// severity then by book, closed by a one-line summary count.
func RenderText(w io.Writer, r *Report, noColor bool) error {
	header := fmt.Sprintf("corpus-check %s | %s", r.RunID, r.Corpus.Name)
	if r.Corpus.Commit != "" {
		header += fmt.Sprintf(" @ %.12s", r.Corpus.Commit)
		if r.Corpus.Dirty {
			header += " (dirty)"
		}
	}
	if _, err := fmt.Fprintln(w, stylize(header, noColor, lipgloss.Color("33"))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d books, %d chapters, %d code blocks, %d references, %d benchmark claims\n",
		r.Summary.Books, r.Summary.Chapters, r.Summary.CodeBlocks, r.Summary.References, r.Summary.BenchmarkClaims); err != nil {
		return err
	}

	for _, severity := range []Severity{SeverityError, SeverityWarning, SeverityInfo} {
		if err := renderSeverityGroup(w, r, severity, noColor); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d errors, %d warnings, %d info findings",
		r.Summary.Errors, r.Summary.Warnings, r.Summary.Infos)
	_, err := fmt.Fprintln(w, summary)
	return err
}

// renderSeverityGroup writes one severity section, grouped by book.
func renderSeverityGroup(w io.Writer, r *Report, severity Severity, noColor bool) error {
	grouped := map[string][]Issue{}
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			grouped[issue.Book] = append(grouped[issue.Book], issue)
		}
	}
	if len(grouped) == 0 {
		return nil
	}
	label := stylize(string(severity), noColor, severityColor(severity))
	if _, err := fmt.Fprintf(w, "\n%s\n", label); err != nil {
		return err
	}
	books := make([]string, 0, len(grouped))
	for book := range grouped {
		books = append(books, book)
	}
	sort.Strings(books)
	for _, book := range books {
		if _, err := fmt.Fprintf(w, "  %s\n", book); err != nil {
			return err
		}
		for _, issue := range grouped[book] {
			location := issue.Chapter
			if issue.Line > 0 {
				location = fmt.Sprintf("%s:%d", issue.Chapter, issue.Line)
			}
			if _, err := fmt.Fprintf(w, "    %-34s %s  %s\n", location, issue.Rule, issue.Message); err != nil {
				return err
			}
		}
	}
	return nil
}
