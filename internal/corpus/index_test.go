package corpus

import "testing"

func chapter(book string, ordinal int, path, title string) Chapter {
	return Chapter{
		File:  File{Path: path, Book: book, Ordinal: ordinal},
		Title: title,
	}
}

// TestIndexLookups verifies the lookup surface over a small corpus.
func TestIndexLookups(t *testing.T) {
	idx := NewIndex([]Chapter{
		chapter("swift", 2, "swift/02-generics.md", "Generics"),
		chapter("rust", 1, "rust/01-ownership.md", "Ownership"),
		chapter("swift", 1, "swift/01-intro.md", "Introduction"),
	})

	books := idx.Books()
	if len(books) != 2 || books[0] != "rust" || books[1] != "swift" {
		t.Fatalf("unexpected books %v", books)
	}
	swift := idx.Book("swift")
	if len(swift) != 2 || swift[0].Ordinal != 1 || swift[1].Ordinal != 2 {
		t.Fatalf("unexpected swift chapters %+v", swift)
	}
	if got := idx.ByOrdinal("rust", 1); len(got) != 1 || got[0].Title != "Ownership" {
		t.Fatalf("unexpected lookup %+v", got)
	}
	if got := idx.OrdinalAnywhere(1); len(got) != 2 {
		t.Fatalf("expected two ordinal-1 chapters, got %+v", got)
	}
	if got := idx.ByOrdinal("swift", 9); got != nil {
		t.Fatalf("expected no match, got %+v", got)
	}
}

// TestIndexDuplicateOrdinals verifies duplicates are preserved, not merged.
func TestIndexDuplicateOrdinals(t *testing.T) {
	idx := NewIndex([]Chapter{
		chapter("swift", 2, "swift/02-generics.md", "Generics"),
		chapter("swift", 2, "swift/02-closures.md", "Closures"),
	})
	dups := idx.ByOrdinal("swift", 2)
	if len(dups) != 2 {
		t.Fatalf("expected both duplicates, got %+v", dups)
	}
	if dups[0].Path != "swift/02-closures.md" {
		t.Fatalf("expected path tie-break, got %+v", dups)
	}
}
