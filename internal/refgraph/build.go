package refgraph

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"corpuscheck/internal/codeblock"
	"corpuscheck/internal/corpus"
)

const snippetMaxRunes = 60

// Build scans every chapter body for cross-references and resolves them
// against the full chapter index. The index is the single source of
// truth; no other state is consulted.
func Build(idx *corpus.Index, opts Options) (*Graph, error) {
	patterns, err := compilePatterns(opts.ExtraPatterns)
	if err != nil {
		return nil, err
	}
	minTitle := opts.MinTitleRunes
	if minTitle <= 0 {
		minTitle = 3
	}

	titles := titleIndex(idx, minTitle)
	graph := &Graph{edges: map[string][]string{}}

	for _, chapter := range idx.Chapters() {
		refs := scanChapter(chapter, idx, patterns, titles, opts.CrossBookTitles)
		for _, ref := range refs {
			graph.References = append(graph.References, ref)
			if ref.Status == StatusResolved {
				graph.edges[ref.SourcePath] = append(graph.edges[ref.SourcePath], ref.TargetPath)
			}
		}
	}
	return graph, nil
}

// scanChapter extracts and resolves the references of one chapter.
// Lines inside fenced code blocks are skipped: code samples routinely
// contain words like "Chapter" without referring to anything.
func scanChapter(chapter corpus.Chapter, idx *corpus.Index, patterns []*regexp.Regexp, titles map[string][]corpus.Chapter, crossBook bool) []Reference {
	lines := strings.Split(chapter.Body, "\n")
	masked := maskCodeBlocks(chapter.Body, len(lines))

	var refs []Reference
	for i, line := range lines {
		if masked[i] {
			continue
		}
		lineNo := i + 1
		lineRefs := scanLine(chapter, idx, line, lineNo, patterns, titles, crossBook)
		refs = append(refs, lineRefs...)
	}
	return dedupe(refs)
}

// scanLine finds every reference phrase on a single line. Title
// substrings are only consulted when no explicit phrase matched, so a
// sentence like 次章ではSetupについて解説します yields one reference.
func scanLine(chapter corpus.Chapter, idx *corpus.Index, line string, lineNo int, patterns []*regexp.Regexp, titles map[string][]corpus.Chapter, crossBook bool) []Reference {
	var refs []Reference

	for _, re := range patterns {
		for _, match := range re.FindAllStringSubmatch(line, -1) {
			ordinal, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			ref := Reference{
				SourceBook:     chapter.Book,
				SourcePath:     chapter.Path,
				SourceOrdinal:  chapter.Ordinal,
				Line:           lineNo,
				Snippet:        snippet(line),
				Kind:           KindNumeric,
				ClaimedOrdinal: ordinal,
			}
			resolveOrdinal(&ref, idx, true)
			refs = append(refs, ref)
		}
	}

	for _, relative := range []struct {
		re    *regexp.Regexp
		kind  Kind
		delta int
	}{
		{re: nextRe, kind: KindNext, delta: 1},
		{re: prevRe, kind: KindPrev, delta: -1},
	} {
		for range relative.re.FindAllString(line, -1) {
			ref := Reference{
				SourceBook:     chapter.Book,
				SourcePath:     chapter.Path,
				SourceOrdinal:  chapter.Ordinal,
				Line:           lineNo,
				Snippet:        snippet(line),
				Kind:           relative.kind,
				ClaimedOrdinal: chapter.Ordinal + relative.delta,
			}
			resolveOrdinal(&ref, idx, false)
			refs = append(refs, ref)
		}
	}

	if len(refs) > 0 {
		return refs
	}
	return titleRefs(chapter, line, lineNo, titles, crossBook)
}

// resolveOrdinal derives the resolution status of a numeric or relative
// reference. Same-book matches win; relative references never cross
// book boundaries.
func resolveOrdinal(ref *Reference, idx *corpus.Index, allowCrossBook bool) {
	candidates := idx.ByOrdinal(ref.SourceBook, ref.ClaimedOrdinal)
	if len(candidates) == 0 && allowCrossBook {
		for _, chapter := range idx.OrdinalAnywhere(ref.ClaimedOrdinal) {
			if chapter.Book != ref.SourceBook {
				candidates = append(candidates, chapter)
			}
		}
	}
	applyCandidates(ref, candidates)
}

// titleRefs matches chapter titles as case-insensitive substrings of a line.
func titleRefs(chapter corpus.Chapter, line string, lineNo int, titles map[string][]corpus.Chapter, crossBook bool) []Reference {
	lowered := strings.ToLower(line)
	matchedTitles := make([]string, 0, 2)
	for title := range titles {
		if strings.Contains(lowered, title) {
			matchedTitles = append(matchedTitles, title)
		}
	}
	sort.Strings(matchedTitles)

	var refs []Reference
	for _, title := range matchedTitles {
		var candidates []corpus.Chapter
		for _, target := range titles[title] {
			if target.Path == chapter.Path {
				continue
			}
			if !crossBook && target.Book != chapter.Book {
				continue
			}
			candidates = append(candidates, target)
		}
		if len(candidates) == 0 {
			continue
		}
		ref := Reference{
			SourceBook:    chapter.Book,
			SourcePath:    chapter.Path,
			SourceOrdinal: chapter.Ordinal,
			Line:          lineNo,
			Snippet:       snippet(line),
			Kind:          KindTitle,
		}
		// Same-book candidates shadow cross-book ones before the
		// ambiguity check.
		sameBook := make([]corpus.Chapter, 0, len(candidates))
		for _, candidate := range candidates {
			if candidate.Book == chapter.Book {
				sameBook = append(sameBook, candidate)
			}
		}
		if len(sameBook) > 0 {
			candidates = sameBook
		}
		applyCandidates(&ref, candidates)
		refs = append(refs, ref)
	}
	return refs
}

// applyCandidates sets the derived status from a candidate set:
// exactly one is resolved, none is dangling, several is ambiguous with
// every tied path recorded.
func applyCandidates(ref *Reference, candidates []corpus.Chapter) {
	switch len(candidates) {
	case 0:
		ref.Status = StatusDangling
	case 1:
		ref.Status = StatusResolved
		ref.TargetPath = candidates[0].Path
		ref.TargetOrdinal = candidates[0].Ordinal
	default:
		ref.Status = StatusAmbiguous
		for _, candidate := range candidates {
			ref.Candidates = append(ref.Candidates, candidate.Path)
		}
		sort.Strings(ref.Candidates)
	}
}

// titleIndex maps lowercase titles to the chapters that bear them.
func titleIndex(idx *corpus.Index, minRunes int) map[string][]corpus.Chapter {
	titles := map[string][]corpus.Chapter{}
	for _, chapter := range idx.Chapters() {
		title := strings.ToLower(strings.TrimSpace(chapter.Title))
		if title == "" || utf8.RuneCountInString(title) < minRunes {
			continue
		}
		titles[title] = append(titles[title], chapter)
	}
	return titles
}

// maskCodeBlocks marks the lines covered by fenced code blocks.
func maskCodeBlocks(body string, lineCount int) []bool {
	masked := make([]bool, lineCount)
	blocks, open := codeblock.Extract(body)
	for _, block := range blocks {
		for i := block.StartLine - 1; i < block.EndLine && i < lineCount; i++ {
			masked[i] = true
		}
	}
	for _, unterminated := range open {
		for i := unterminated.OpenLine - 1; i < lineCount; i++ {
			masked[i] = true
		}
	}
	return masked
}

// dedupe collapses references that share line, kind, and target claim.
func dedupe(refs []Reference) []Reference {
	type key struct {
		line    int
		kind    Kind
		claimed int
		target  string
	}
	seen := map[key]struct{}{}
	out := refs[:0]
	for _, ref := range refs {
		k := key{line: ref.Line, kind: ref.Kind, claimed: ref.ClaimedOrdinal, target: ref.TargetPath}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// snippet trims a line to a bounded excerpt for reporting.
func snippet(line string) string {
	trimmed := strings.TrimSpace(line)
	runes := []rune(trimmed)
	if len(runes) <= snippetMaxRunes {
		return trimmed
	}
	return string(runes[:snippetMaxRunes]) + "…"
}
