package vcs

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeRunner scripts git responses per subcommand.
type fakeRunner struct {
	responses map[string]string
	err       error
}

func (f fakeRunner) Run(_ context.Context, _ string, args ...string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.responses[strings.Join(args, " ")], nil
}

// TestCorpusMetadata verifies metadata assembly from scripted git output.
func TestCorpusMetadata(t *testing.T) {
	client := NewClient(fakeRunner{responses: map[string]string{
		"rev-parse --show-toplevel":   "/work/books-repo",
		"rev-parse HEAD":              "0123456789abcdef0123456789abcdef01234567",
		"rev-parse --abbrev-ref HEAD": "main",
		"status --porcelain":          " M books/swift/01-intro.md",
	}})

	meta, err := client.CorpusMetadata(context.Background(), "/work/books-repo/books")
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Name != "books-repo" || meta.Branch != "main" || !meta.Dirty {
		t.Fatalf("unexpected metadata %+v", meta)
	}
}

// TestCorpusMetadataOutsideRepo verifies the error path.
func TestCorpusMetadataOutsideRepo(t *testing.T) {
	client := NewClient(fakeRunner{err: errors.New("not a git repository")})
	if _, err := client.CorpusMetadata(context.Background(), "/tmp/nowhere"); err == nil {
		t.Fatal("expected error outside a repository")
	}
}

// TestCleanTreeNotDirty verifies empty porcelain output maps to clean.
func TestCleanTreeNotDirty(t *testing.T) {
	client := NewClient(fakeRunner{responses: map[string]string{
		"rev-parse --show-toplevel":   "/work/books-repo",
		"rev-parse HEAD":              "abc",
		"rev-parse --abbrev-ref HEAD": "main",
	}})
	meta, err := client.CorpusMetadata(context.Background(), "/work/books-repo")
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Dirty {
		t.Fatal("expected clean tree")
	}
}
