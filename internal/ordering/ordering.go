// Package ordering validates chapter numbering per book: duplicate
// ordinals, gaps in the sequence, and 次章 claims that disagree with
// the filesystem order.
package ordering

import (
	"fmt"
	"sort"
	"strings"

	"corpuscheck/internal/corpus"
	"corpuscheck/internal/refgraph"
	"corpuscheck/internal/report"
)

// Validate checks every book in the index. Duplicate ordinals are
// errors (the book's report section cannot be trusted); gaps and
// next-chapter mismatches are warnings, since both are common in an
// evolving manuscript.
func Validate(idx *corpus.Index, graph *refgraph.Graph) []report.Issue {
	var issues []report.Issue
	for _, book := range idx.Books() {
		issues = append(issues, validateBook(book, idx.Book(book))...)
	}
	issues = append(issues, nextChapterMismatches(idx, graph)...)
	return issues
}

// validateBook reports duplicate ordinals and sequence gaps for one book.
func validateBook(book string, chapters []corpus.Chapter) []report.Issue {
	var issues []report.Issue

	byOrdinal := map[int][]corpus.Chapter{}
	ordinals := make([]int, 0, len(chapters))
	for _, chapter := range chapters {
		if _, seen := byOrdinal[chapter.Ordinal]; !seen {
			ordinals = append(ordinals, chapter.Ordinal)
		}
		byOrdinal[chapter.Ordinal] = append(byOrdinal[chapter.Ordinal], chapter)
	}
	sort.Ints(ordinals)

	for _, ordinal := range ordinals {
		duplicates := byOrdinal[ordinal]
		if len(duplicates) < 2 {
			continue
		}
		paths := make([]string, 0, len(duplicates))
		for _, chapter := range duplicates {
			paths = append(paths, chapter.Path)
		}
		issues = append(issues, report.Issue{
			Rule:     report.RuleOrderingDuplicate,
			Severity: report.SeverityError,
			Book:     book,
			Chapter:  duplicates[0].Path,
			Ordinal:  ordinal,
			Message:  fmt.Sprintf("ordinal %d is used by %d chapters: %s", ordinal, len(duplicates), strings.Join(paths, ", ")),
		})
	}

	for i := 1; i < len(ordinals); i++ {
		prev, next := ordinals[i-1], ordinals[i]
		if next == prev+1 {
			continue
		}
		issues = append(issues, report.Issue{
			Rule:     report.RuleOrderingGap,
			Severity: report.SeverityWarning,
			Book:     book,
			Chapter:  byOrdinal[next][0].Path,
			Ordinal:  next,
			Message:  fmt.Sprintf("ordinal sequence jumps from %d to %d", prev, next),
		})
	}

	return issues
}

// nextChapterMismatches flags 次章 claims whose ordinal+1 target is
// absent while a later chapter does exist: the prose and the
// filesystem disagree, which usually means chapters were reordered
// without updating the text.
func nextChapterMismatches(idx *corpus.Index, graph *refgraph.Graph) []report.Issue {
	var issues []report.Issue
	for _, ref := range graph.References {
		if ref.Kind != refgraph.KindNext || ref.Status != refgraph.StatusDangling {
			continue
		}
		actual := nextExistingOrdinal(idx.Book(ref.SourceBook), ref.SourceOrdinal)
		if actual == 0 {
			continue
		}
		issues = append(issues, report.Issue{
			Rule:     report.RuleOrderingNextMismatch,
			Severity: report.SeverityWarning,
			Book:     ref.SourceBook,
			Chapter:  ref.SourcePath,
			Ordinal:  ref.SourceOrdinal,
			Line:     ref.Line,
			Message:  fmt.Sprintf("次章 claim points at ordinal %d but the next chapter on disk is %d", ref.ClaimedOrdinal, actual),
		})
	}
	return issues
}

// nextExistingOrdinal returns the smallest ordinal greater than the
// given one, or 0 when the chapter is the last of its book.
func nextExistingOrdinal(chapters []corpus.Chapter, after int) int {
	best := 0
	for _, chapter := range chapters {
		if chapter.Ordinal <= after {
			continue
		}
		if best == 0 || chapter.Ordinal < best {
			best = chapter.Ordinal
		}
	}
	return best
}
