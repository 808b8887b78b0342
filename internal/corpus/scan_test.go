package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeCorpusFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

// TestScanOrdersAndFilters verifies discovery, ordinal parsing, and the
// deterministic (book, ordinal, path) order.
func TestScanOrdersAndFilters(t *testing.T) {
	root := t.TempDir()
	writeCorpusFile(t, root, "swift/02-generics.md", "body")
	writeCorpusFile(t, root, "swift/01-intro.md", "body")
	writeCorpusFile(t, root, "rust/01-ownership.md", "body")
	writeCorpusFile(t, root, "swift/notes.md", "no ordinal prefix")
	writeCorpusFile(t, root, "swift/10-closures.txt", "wrong extension")
	writeCorpusFile(t, root, ".hidden/03-draft.md", "hidden directory")

	files, err := Scan(root, ScanOptions{})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	got := make([]string, len(files))
	for i, f := range files {
		got[i] = f.Path
	}
	want := []string{"rust/01-ownership.md", "swift/01-intro.md", "swift/02-generics.md"}
	if len(got) != len(want) {
		t.Fatalf("unexpected files %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q want %q", i, got[i], want[i])
		}
	}
	if files[1].Book != "swift" || files[1].Ordinal != 1 {
		t.Fatalf("unexpected file %+v", files[1])
	}
}

// TestScanEmptyCorpus verifies the only fatal condition.
func TestScanEmptyCorpus(t *testing.T) {
	root := t.TempDir()
	writeCorpusFile(t, root, "swift/readme.md", "not a chapter")

	if _, err := Scan(root, ScanOptions{}); !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

// TestScanRootLevelChapters verifies chapters directly under the root
// fall into a book named after the root directory.
func TestScanRootLevelChapters(t *testing.T) {
	root := t.TempDir()
	book := filepath.Join(root, "handbook")
	if err := os.MkdirAll(book, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeCorpusFile(t, book, "01-intro.md", "body")

	files, err := Scan(book, ScanOptions{})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if files[0].Book != "handbook" {
		t.Fatalf("unexpected book %q", files[0].Book)
	}
}

// TestScanCustomPattern verifies the ordinal comes from the first group.
func TestScanCustomPattern(t *testing.T) {
	root := t.TempDir()
	writeCorpusFile(t, root, "swift/ch7-protocols.md", "body")

	files, err := Scan(root, ScanOptions{ChapterPattern: `^ch(\d+)-`})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(files) != 1 || files[0].Ordinal != 7 {
		t.Fatalf("unexpected files %+v", files)
	}

	if _, err := Scan(root, ScanOptions{ChapterPattern: `[`}); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

// TestScanMissingRoot verifies root errors are distinct from ErrNoContent.
func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "absent"), ScanOptions{})
	if err == nil || errors.Is(err, ErrNoContent) {
		t.Fatalf("expected stat error, got %v", err)
	}
}
