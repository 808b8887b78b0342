// Package benchclaim detects tables of numeric performance claims and
// checks whether a methodology section precedes them. Detection is a
// heuristic: findings are warnings, never hard failures, because only
// the structural presence of a methodology block can be verified.
package benchclaim

import (
	"strings"

	"corpuscheck/internal/markdown"
)

// DefaultMethodologyWindow is how many lines above a table a
// methodology block may appear and still count.
const DefaultMethodologyWindow = 40

// Keywords that mark a table as carrying benchmark claims.
var claimKeywords = []string{"改善率", "p値", "improvement", "p-value"}

// Keywords that mark a methodology block.
var methodologyKeywords = []string{"実験環境", "測定環境", "Hardware", "Software"}

// Claim is one benchmark assertion extracted from a table data row.
type Claim struct {
	// Line is the 1-based line of the table header row.
	Line int
	// Metric is the row's first cell.
	Metric string
	// Value is the cell under the detected claim column.
	Value string
	// HasMethodology is derived from the preceding window, never asserted.
	HasMethodology bool
}

// Extract returns every benchmark claim in a chapter body. A table
// qualifies when its header carries a claim keyword and a
// percentage-bearing column; each data row yields one claim.
func Extract(body string, window int) []Claim {
	if window <= 0 {
		window = DefaultMethodologyWindow
	}
	doc := markdown.Parse(body)
	lines := strings.Split(body, "\n")

	var claims []Claim
	for _, table := range doc.Tables() {
		column := claimColumn(table)
		if column < 0 {
			continue
		}
		methodology := hasMethodology(doc, lines, table.Line, window)
		for _, row := range table.Rows {
			if len(row) == 0 {
				continue
			}
			value := ""
			if column < len(row) {
				value = row[column]
			}
			claims = append(claims, Claim{
				Line:           table.Line,
				Metric:         row[0],
				Value:          value,
				HasMethodology: methodology,
			})
		}
	}
	return claims
}

// claimColumn returns the index of the claim-bearing header column, or
// -1 when the table is not a benchmark table. 改善率/improvement columns
// count as percentage-bearing on their own; a bare p値/p-value column
// additionally needs a % column somewhere in the table.
func claimColumn(table markdown.Table) int {
	keyword := -1
	percent := false
	for i, cell := range table.Header {
		lowered := strings.ToLower(cell)
		for _, kw := range claimKeywords {
			if strings.Contains(lowered, strings.ToLower(kw)) {
				if keyword < 0 {
					keyword = i
				}
				if kw == "改善率" || kw == "improvement" {
					percent = true
					keyword = i
				}
			}
		}
		if strings.Contains(cell, "%") {
			percent = true
		}
	}
	if keyword < 0 {
		return -1
	}
	if !percent && !tableHasPercent(table) {
		return -1
	}
	return keyword
}

// tableHasPercent reports whether any data cell carries a % value.
func tableHasPercent(table markdown.Table) bool {
	for _, row := range table.Rows {
		for _, cell := range row {
			if strings.Contains(cell, "%") {
				return true
			}
		}
	}
	return false
}

// hasMethodology scans the window above a table for a methodology
// heading or paragraph. Headings are matched on their flattened text,
// so inline markup inside a keyword still counts; prose is matched on
// the raw lines.
func hasMethodology(doc *markdown.Document, lines []string, tableLine, window int) bool {
	start := tableLine - window
	if start < 1 {
		start = 1
	}
	for _, heading := range doc.Headings() {
		if heading.Line >= start && heading.Line < tableLine && mentionsMethodology(heading.Text) {
			return true
		}
	}
	for i := start - 1; i < tableLine-1 && i < len(lines); i++ {
		if mentionsMethodology(lines[i]) {
			return true
		}
	}
	return false
}

func mentionsMethodology(text string) bool {
	for _, kw := range methodologyKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
