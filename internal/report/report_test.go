package report

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func sampleReport() *Report {
	return &Report{
		RunID:  "20260101T000000Z-abcdef012345",
		Corpus: CorpusInfo{Root: "/corpus", Name: "books"},
		Chapters: []ChapterRecord{
			{Book: "swift", Path: "swift/02-setup.md", Ordinal: 2, Title: "Setup", Lines: 10},
			{Book: "swift", Path: "swift/01-intro.md", Ordinal: 1, Title: "Intro", Lines: 12},
			{Book: "react", Path: "react/01-hooks.md", Ordinal: 1, Title: "Hooks", Lines: 20},
		},
		Issues: []Issue{
			{Rule: RuleReferenceDangling, Severity: SeverityWarning, Book: "swift", Chapter: "swift/02-setup.md", Line: 8, Message: "a"},
			{Rule: RuleOrderingDuplicate, Severity: SeverityError, Book: "react", Chapter: "react/01-hooks.md", Message: "b"},
			{Rule: RuleReferenceDangling, Severity: SeverityWarning, Book: "swift", Chapter: "swift/02-setup.md", Line: 8, Message: "duplicate of a"},
			{Rule: RuleCodeBlockEmptyTag, Severity: SeverityInfo, Book: "swift", Chapter: "swift/01-intro.md", Line: 3, Message: "c"},
		},
	}
}

// TestFinalizeDedupeAndSort verifies dedupe on (chapter, line, rule) and
// deterministic ordering by (book, ordinal, line).
func TestFinalizeDedupeAndSort(t *testing.T) {
	r := sampleReport()
	r.Finalize()

	if len(r.Issues) != 3 {
		t.Fatalf("expected 3 issues after dedupe, got %d", len(r.Issues))
	}
	if r.Issues[0].Book != "react" {
		t.Fatalf("expected react issue first, got %+v", r.Issues[0])
	}
	if r.Issues[1].Chapter != "swift/01-intro.md" || r.Issues[2].Chapter != "swift/02-setup.md" {
		t.Fatalf("expected ordinal ordering within book, got %+v", r.Issues[1:])
	}
	if r.Chapters[0].Path != "react/01-hooks.md" || r.Chapters[1].Path != "swift/01-intro.md" {
		t.Fatalf("unexpected chapter order %+v", r.Chapters)
	}
	if r.Summary.Errors != 1 || r.Summary.Warnings != 1 || r.Summary.Infos != 1 {
		t.Fatalf("unexpected summary %+v", r.Summary)
	}
	if r.Summary.Books != 2 || r.Summary.Chapters != 3 {
		t.Fatalf("unexpected totals %+v", r.Summary)
	}
}

// TestFinalizeDeterministic verifies repeated finalization of equal input
// yields byte-identical JSON.
func TestFinalizeDeterministic(t *testing.T) {
	first := sampleReport()
	second := sampleReport()
	first.Finalize()
	second.Finalize()

	a, err := Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("expected byte-identical output\n%s\n---\n%s", a, b)
	}
}

// TestExceedsThreshold covers the fail-on ladder.
func TestExceedsThreshold(t *testing.T) {
	r := sampleReport()
	r.Finalize()
	if !r.ExceedsThreshold("error") {
		t.Fatal("expected error threshold to trip")
	}
	if !r.ExceedsThreshold("warning") {
		t.Fatal("expected warning threshold to trip")
	}
	if r.ExceedsThreshold("none") {
		t.Fatal("expected none threshold to never trip")
	}

	clean := &Report{}
	clean.Finalize()
	if clean.ExceedsThreshold("warning") {
		t.Fatal("expected clean report below threshold")
	}
}

// TestRenderTextSummaryLine verifies the mandatory closing count line.
func TestRenderTextSummaryLine(t *testing.T) {
	r := sampleReport()
	r.Finalize()
	var buf bytes.Buffer
	if err := RenderText(&buf, r, true); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	last := lines[len(lines)-1]
	if last != "1 errors, 1 warnings, 1 info findings" {
		t.Fatalf("unexpected summary line %q", last)
	}
	if !strings.Contains(out, "swift/02-setup.md:8") {
		t.Fatalf("expected issue location in output:\n%s", out)
	}
}

// TestRoundTripLoad verifies JSON write/read symmetry.
func TestRoundTripLoad(t *testing.T) {
	r := sampleReport()
	r.Finalize()
	payload, err := Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := t.TempDir() + "/results.json"
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.RunID != r.RunID || len(loaded.Issues) != len(r.Issues) {
		t.Fatalf("unexpected loaded report %+v", loaded)
	}
}
