package corpus

import "sort"

// Index is the immutable chapter lookup built once per run after all
// per-file parsing has completed. Components receive it by value and
// never mutate it.
type Index struct {
	chapters []Chapter
	byBook   map[string][]Chapter
}

// NewIndex builds an index from parsed chapters. The input is copied
// and sorted by (book, ordinal, path).
func NewIndex(chapters []Chapter) *Index {
	sorted := make([]Chapter, len(chapters))
	copy(sorted, chapters)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Book != sorted[j].Book {
			return sorted[i].Book < sorted[j].Book
		}
		if sorted[i].Ordinal != sorted[j].Ordinal {
			return sorted[i].Ordinal < sorted[j].Ordinal
		}
		return sorted[i].Path < sorted[j].Path
	})
	byBook := make(map[string][]Chapter)
	for _, chapter := range sorted {
		byBook[chapter.Book] = append(byBook[chapter.Book], chapter)
	}
	return &Index{chapters: sorted, byBook: byBook}
}

// Chapters returns all chapters in (book, ordinal, path) order.
func (idx *Index) Chapters() []Chapter {
	return idx.chapters
}

// Books returns the sorted list of book names.
func (idx *Index) Books() []string {
	books := make([]string, 0, len(idx.byBook))
	for book := range idx.byBook {
		books = append(books, book)
	}
	sort.Strings(books)
	return books
}

// Book returns the chapters of one book in ordinal order.
func (idx *Index) Book(name string) []Chapter {
	return idx.byBook[name]
}

// ByOrdinal returns the chapters with the given ordinal in a book.
// Multiple results indicate a duplicate-ordinal defect.
func (idx *Index) ByOrdinal(book string, ordinal int) []Chapter {
	var out []Chapter
	for _, chapter := range idx.byBook[book] {
		if chapter.Ordinal == ordinal {
			out = append(out, chapter)
		}
	}
	return out
}

// OrdinalAnywhere returns chapters with the given ordinal across all books.
func (idx *Index) OrdinalAnywhere(ordinal int) []Chapter {
	var out []Chapter
	for _, chapter := range idx.chapters {
		if chapter.Ordinal == ordinal {
			out = append(out, chapter)
		}
	}
	return out
}
