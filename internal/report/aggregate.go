package report

import "sort"

// Finalize deduplicates issues, sorts every slice deterministically,
// and recomputes the summary counts. It must be called exactly once,
// after all components have contributed.
func (r *Report) Finalize() {
	r.Issues = dedupeIssues(r.Issues)

	ordinals := chapterOrdinals(r.Chapters)

	sort.Slice(r.Chapters, func(i, j int) bool {
		a, b := r.Chapters[i], r.Chapters[j]
		if a.Book != b.Book {
			return a.Book < b.Book
		}
		if a.Ordinal != b.Ordinal {
			return a.Ordinal < b.Ordinal
		}
		return a.Path < b.Path
	})
	sort.Slice(r.CodeBlocks, func(i, j int) bool {
		a, b := r.CodeBlocks[i], r.CodeBlocks[j]
		if a.Book != b.Book {
			return a.Book < b.Book
		}
		if a.Chapter != b.Chapter {
			return a.Chapter < b.Chapter
		}
		return a.StartLine < b.StartLine
	})
	sort.Slice(r.References, func(i, j int) bool {
		a, b := r.References[i], r.References[j]
		if a.Book != b.Book {
			return a.Book < b.Book
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Snippet < b.Snippet
	})
	sort.Slice(r.BenchmarkClaims, func(i, j int) bool {
		a, b := r.BenchmarkClaims[i], r.BenchmarkClaims[j]
		if a.Book != b.Book {
			return a.Book < b.Book
		}
		if a.Chapter != b.Chapter {
			return a.Chapter < b.Chapter
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Metric < b.Metric
	})
	sort.Slice(r.Issues, func(i, j int) bool {
		a, b := r.Issues[i], r.Issues[j]
		if a.Book != b.Book {
			return a.Book < b.Book
		}
		ao, bo := ordinals[a.Chapter], ordinals[b.Chapter]
		if ao != bo {
			return ao < bo
		}
		if a.Chapter != b.Chapter {
			return a.Chapter < b.Chapter
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})

	r.Summary = r.computeSummary()
}

// computeSummary recounts totals from the finalized slices.
func (r *Report) computeSummary() Summary {
	books := map[string]struct{}{}
	for _, chapter := range r.Chapters {
		books[chapter.Book] = struct{}{}
	}
	summary := Summary{
		Books:           len(books),
		Chapters:        len(r.Chapters),
		CodeBlocks:      len(r.CodeBlocks),
		References:      len(r.References),
		BenchmarkClaims: len(r.BenchmarkClaims),
	}
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			summary.Errors++
		case SeverityWarning:
			summary.Warnings++
		case SeverityInfo:
			summary.Infos++
		}
	}
	return summary
}

// MaxSeverity returns the highest severity present in the issue list.
func (r *Report) MaxSeverity() Severity {
	max := Severity("")
	for _, issue := range r.Issues {
		if issue.Severity.Rank() > max.Rank() {
			max = issue.Severity
		}
	}
	return max
}

// ExceedsThreshold reports whether any issue is at or above the fail-on
// threshold. The threshold "none" never trips.
func (r *Report) ExceedsThreshold(failOn string) bool {
	var floor int
	switch failOn {
	case "error":
		floor = SeverityError.Rank()
	case "warning":
		floor = SeverityWarning.Rank()
	default:
		return false
	}
	return r.MaxSeverity().Rank() >= floor
}

// dedupeIssues drops issues with an identical (chapter, line, rule) key,
// keeping the first occurrence.
func dedupeIssues(issues []Issue) []Issue {
	type key struct {
		chapter string
		line    int
		rule    string
	}
	seen := map[key]struct{}{}
	out := issues[:0]
	for _, issue := range issues {
		k := key{chapter: issue.Chapter, line: issue.Line, rule: issue.Rule}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, issue)
	}
	return out
}

// chapterOrdinals maps chapter paths to ordinals for issue sorting.
func chapterOrdinals(chapters []ChapterRecord) map[string]int {
	out := make(map[string]int, len(chapters))
	for _, chapter := range chapters {
		out[chapter.Path] = chapter.Ordinal
	}
	return out
}
