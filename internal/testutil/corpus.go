package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// CorpusBuilder assembles a throwaway book corpus on disk for tests.
type CorpusBuilder struct {
	t    testing.TB
	root string
}

// NewCorpus creates a corpus rooted in a fresh temp directory.
func NewCorpus(t testing.TB) *CorpusBuilder {
	t.Helper()
	return &CorpusBuilder{t: t, root: t.TempDir()}
}

// Root returns the corpus root directory.
func (b *CorpusBuilder) Root() string {
	return b.root
}

// Chapter writes a chapter file with a front-matter title and body.
// The filename carries the ordinal prefix, e.g. "01-intro.md".
func (b *CorpusBuilder) Chapter(book, filename, title, body string) string {
	b.t.Helper()
	content := fmt.Sprintf("---\ntitle: %q\n---\n%s", title, body)
	return b.RawFile(filepath.Join(book, filename), content)
}

// RawFile writes arbitrary content at a path relative to the root.
// Use it for chapters with broken or absent front matter.
func (b *CorpusBuilder) RawFile(rel, content string) string {
	b.t.Helper()
	path := filepath.Join(b.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		b.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		b.t.Fatalf("write %s: %v", rel, err)
	}
	return path
}
