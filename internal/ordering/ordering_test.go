package ordering

import (
	"testing"

	"corpuscheck/internal/corpus"
	"corpuscheck/internal/refgraph"
	"corpuscheck/internal/report"
)

func chapter(book, path string, ordinal int, body string) corpus.Chapter {
	return corpus.Chapter{
		File: corpus.File{Path: path, Book: book, Ordinal: ordinal},
		Body: body,
	}
}

func countRule(issues []report.Issue, rule string) int {
	n := 0
	for _, issue := range issues {
		if issue.Rule == rule {
			n++
		}
	}
	return n
}

// TestDuplicateAndGap covers the 1,2,2,4 book: exactly one duplicate
// error for ordinal 2 and one gap warning for the missing 3.
func TestDuplicateAndGap(t *testing.T) {
	chapters := []corpus.Chapter{
		chapter("book", "book/01-a.md", 1, ""),
		chapter("book", "book/02-b.md", 2, ""),
		chapter("book", "book/02-c.md", 2, ""),
		chapter("book", "book/04-d.md", 4, ""),
	}
	idx := corpus.NewIndex(chapters)
	graph, err := refgraph.Build(idx, refgraph.Options{})
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}

	issues := Validate(idx, graph)
	if got := countRule(issues, report.RuleOrderingDuplicate); got != 1 {
		t.Fatalf("expected exactly 1 duplicate issue, got %d: %+v", got, issues)
	}
	if got := countRule(issues, report.RuleOrderingGap); got != 1 {
		t.Fatalf("expected exactly 1 gap warning, got %d: %+v", got, issues)
	}
	for _, issue := range issues {
		switch issue.Rule {
		case report.RuleOrderingDuplicate:
			if issue.Severity != report.SeverityError || issue.Ordinal != 2 {
				t.Fatalf("unexpected duplicate issue %+v", issue)
			}
		case report.RuleOrderingGap:
			if issue.Severity != report.SeverityWarning || issue.Ordinal != 4 {
				t.Fatalf("unexpected gap issue %+v", issue)
			}
		}
	}
}

// TestCleanBook verifies a contiguous book yields no issues.
func TestCleanBook(t *testing.T) {
	chapters := []corpus.Chapter{
		chapter("book", "book/01-a.md", 1, ""),
		chapter("book", "book/02-b.md", 2, ""),
		chapter("book", "book/03-c.md", 3, ""),
	}
	idx := corpus.NewIndex(chapters)
	graph, err := refgraph.Build(idx, refgraph.Options{})
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	if issues := Validate(idx, graph); len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

// TestNextChapterMismatch verifies a 次章 claim across a gap is flagged.
func TestNextChapterMismatch(t *testing.T) {
	chapters := []corpus.Chapter{
		chapter("book", "book/01-a.md", 1, "次章では詳細を説明します。\n"),
		chapter("book", "book/03-c.md", 3, ""),
	}
	idx := corpus.NewIndex(chapters)
	graph, err := refgraph.Build(idx, refgraph.Options{})
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}

	issues := Validate(idx, graph)
	if got := countRule(issues, report.RuleOrderingNextMismatch); got != 1 {
		t.Fatalf("expected 1 mismatch warning, got %d: %+v", got, issues)
	}
	// The gap itself is reported separately.
	if got := countRule(issues, report.RuleOrderingGap); got != 1 {
		t.Fatalf("expected 1 gap warning, got %d: %+v", got, issues)
	}
}

// TestLastChapterNextClaim verifies 次章 in the final chapter is not a
// mismatch (the dangling reference alone covers it).
func TestLastChapterNextClaim(t *testing.T) {
	chapters := []corpus.Chapter{
		chapter("book", "book/01-a.md", 1, ""),
		chapter("book", "book/02-b.md", 2, "次章では…と言いたいところですが、本書はここまでです。\n"),
	}
	idx := corpus.NewIndex(chapters)
	graph, err := refgraph.Build(idx, refgraph.Options{})
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	if got := countRule(Validate(idx, graph), report.RuleOrderingNextMismatch); got != 0 {
		t.Fatalf("expected no mismatch for last chapter, got %d", got)
	}
}
