package refgraph

import (
	"testing"

	"corpuscheck/internal/corpus"
)

func chapter(book, path string, ordinal int, title, body string) corpus.Chapter {
	return corpus.Chapter{
		File:  corpus.File{Path: path, Book: book, Ordinal: ordinal},
		Title: title,
		Body:  body,
	}
}

func build(t *testing.T, chapters []corpus.Chapter, opts Options) *Graph {
	t.Helper()
	graph, err := Build(corpus.NewIndex(chapters), opts)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return graph
}

// TestNextChapterResolves covers the canonical two-chapter scenario: a
// 次章 phrase in chapter 01 resolves to chapter 02 with exactly one edge.
func TestNextChapterResolves(t *testing.T) {
	chapters := []corpus.Chapter{
		chapter("guide", "guide/01-intro.md", 1, "Intro", "次章ではSetupについて解説します\n"),
		chapter("guide", "guide/02-setup.md", 2, "Setup", "本文\n"),
	}
	graph := build(t, chapters, Options{})

	if len(graph.References) != 1 {
		t.Fatalf("expected exactly 1 reference, got %d: %+v", len(graph.References), graph.References)
	}
	ref := graph.References[0]
	if ref.Status != StatusResolved {
		t.Fatalf("expected resolved, got %s", ref.Status)
	}
	if ref.Kind != KindNext || ref.TargetPath != "guide/02-setup.md" || ref.TargetOrdinal != 2 {
		t.Fatalf("unexpected reference %+v", ref)
	}
	if targets := graph.Targets("guide/01-intro.md"); len(targets) != 1 || targets[0] != "guide/02-setup.md" {
		t.Fatalf("unexpected edge set %v", targets)
	}
}

// TestNumericReference verifies 第N章 and Chapter N resolution by ordinal.
func TestNumericReference(t *testing.T) {
	chapters := []corpus.Chapter{
		chapter("guide", "guide/01-a.md", 1, "はじめに", "詳細は第3章を参照してください。\nSee Chapter 2 for details.\n"),
		chapter("guide", "guide/02-b.md", 2, "準備", ""),
		chapter("guide", "guide/03-c.md", 3, "実装", ""),
	}
	graph := build(t, chapters, Options{})

	if len(graph.References) != 2 {
		t.Fatalf("expected 2 references, got %+v", graph.References)
	}
	for _, ref := range graph.References {
		if ref.Status != StatusResolved {
			t.Fatalf("expected resolved, got %+v", ref)
		}
	}
	if graph.References[0].TargetOrdinal != 3 || graph.References[1].TargetOrdinal != 2 {
		t.Fatalf("unexpected targets %+v", graph.References)
	}
}

// TestDanglingNeverResolves verifies a reference to a missing ordinal is
// always dangling, never resolved or ambiguous.
func TestDanglingNeverResolves(t *testing.T) {
	chapters := []corpus.Chapter{
		chapter("guide", "guide/01-a.md", 1, "Intro", "第9章で扱います。\n"),
	}
	graph := build(t, chapters, Options{})

	if len(graph.References) != 1 {
		t.Fatalf("expected 1 reference, got %d", len(graph.References))
	}
	if graph.References[0].Status != StatusDangling {
		t.Fatalf("expected dangling, got %s", graph.References[0].Status)
	}
}

// TestNextAtEndOfBookDangles verifies 次章 in the last chapter dangles and
// never crosses into another book.
func TestNextAtEndOfBookDangles(t *testing.T) {
	chapters := []corpus.Chapter{
		chapter("swift", "swift/02-last.md", 2, "Last", "次章では応用を扱います。\n"),
		chapter("react", "react/03-other.md", 3, "Other", ""),
	}
	graph := build(t, chapters, Options{})

	if len(graph.References) != 1 || graph.References[0].Status != StatusDangling {
		t.Fatalf("expected one dangling reference, got %+v", graph.References)
	}
}

// TestTitleSubstringSameBookWins verifies the same-book tie-break before
// the ambiguity check.
func TestTitleSubstringSameBookWins(t *testing.T) {
	chapters := []corpus.Chapter{
		chapter("swift", "swift/01-a.md", 1, "はじめに", "Keychain応用 の章も参照。\n"),
		chapter("swift", "swift/05-b.md", 5, "Keychain応用", ""),
		chapter("react", "react/04-c.md", 4, "Keychain応用", ""),
	}
	graph := build(t, chapters, Options{CrossBookTitles: true})

	if len(graph.References) != 1 {
		t.Fatalf("expected 1 reference, got %+v", graph.References)
	}
	ref := graph.References[0]
	if ref.Status != StatusResolved || ref.TargetPath != "swift/05-b.md" {
		t.Fatalf("expected same-book resolution, got %+v", ref)
	}
}

// TestTitleSubstringAmbiguous verifies ties inside one book record all
// candidates.
func TestTitleSubstringAmbiguous(t *testing.T) {
	chapters := []corpus.Chapter{
		chapter("swift", "swift/01-a.md", 1, "はじめに", "Core Data応用 を読み直すとよい。\n"),
		chapter("swift", "swift/07-b.md", 7, "Core Data応用", ""),
		chapter("swift", "swift/11-c.md", 11, "Core Data応用", ""),
	}
	graph := build(t, chapters, Options{})

	if len(graph.References) != 1 {
		t.Fatalf("expected 1 reference, got %+v", graph.References)
	}
	ref := graph.References[0]
	if ref.Status != StatusAmbiguous {
		t.Fatalf("expected ambiguous, got %+v", ref)
	}
	if len(ref.Candidates) != 2 {
		t.Fatalf("expected both candidates recorded, got %v", ref.Candidates)
	}
}

// TestCodeBlocksIgnored verifies reference phrases inside fences are skipped.
func TestCodeBlocksIgnored(t *testing.T) {
	body := "```\n第2章\n次章\n```\n"
	chapters := []corpus.Chapter{
		chapter("guide", "guide/01-a.md", 1, "Intro", body),
		chapter("guide", "guide/02-b.md", 2, "Next", ""),
	}
	graph := build(t, chapters, Options{})

	if len(graph.References) != 0 {
		t.Fatalf("expected no references from code blocks, got %+v", graph.References)
	}
}

// TestExtraPatternValidation verifies configured patterns must carry a group.
func TestExtraPatternValidation(t *testing.T) {
	chapters := []corpus.Chapter{chapter("g", "g/01-a.md", 1, "T", "")}
	if _, err := Build(corpus.NewIndex(chapters), Options{ExtraPatterns: []string{`章\d+`}}); err == nil {
		t.Fatal("expected error for pattern without capture group")
	}
	if _, err := Build(corpus.NewIndex(chapters), Options{ExtraPatterns: []string{`[`}}); err == nil {
		t.Fatal("expected error for invalid regexp")
	}
}

// TestExtraPatternMatches verifies a configured pattern contributes references.
func TestExtraPatternMatches(t *testing.T) {
	chapters := []corpus.Chapter{
		chapter("g", "g/01-a.md", 1, "はじめに", "Ref: ch.2 を見てください。\n"),
		chapter("g", "g/02-b.md", 2, "応用編", ""),
	}
	graph := build(t, chapters, Options{ExtraPatterns: []string{`ch\.(\d+)`}})
	if len(graph.References) != 1 || graph.References[0].Status != StatusResolved {
		t.Fatalf("expected one resolved reference, got %+v", graph.References)
	}
}
