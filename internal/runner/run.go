package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"corpuscheck/internal/benchclaim"
	"corpuscheck/internal/config"
	"corpuscheck/internal/corpus"
	"corpuscheck/internal/ordering"
	"corpuscheck/internal/refgraph"
	"corpuscheck/internal/report"
	"corpuscheck/internal/vcs"
)

// Run executes the full check pipeline over a corpus and returns the
// finalized report. The only fatal conditions are an unreadable root,
// corpus.ErrNoContent, an invalid configured pattern, and cancellation;
// everything else becomes an issue inside the report.
func Run(ctx context.Context, cfg config.Config, params RunParams) (report.Report, error) {
	obs := ensureObserver(params.Observer)

	files, err := corpus.Scan(params.Root, corpus.ScanOptions{ChapterPattern: cfg.Corpus.ChapterPattern})
	if err != nil {
		return report.Report{}, err
	}

	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	generatedAt := now().UTC()
	runID := NewRunID(generatedAt, files)
	if params.Deps.RunID != nil {
		if runID, err = params.Deps.RunID(); err != nil {
			return report.Report{}, err
		}
	}

	absRoot, err := filepath.Abs(params.Root)
	if err != nil {
		return report.Report{}, fmt.Errorf("resolve corpus root: %w", err)
	}
	obs.OnRunStart(runID, absRoot, len(files))

	info := corpusInfo(ctx, absRoot, params.Deps.Metadata)

	workers := cfg.Check.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	verboseWriter := wrapVerboseWriter(workers, params.VerboseWriter)

	obs.OnPhase(PhaseParse)
	results, err := parseFiles(ctx, files, cfg.Corpus.MaxFileBytes, workers, obs, params.Verbose, verboseWriter, params.NoColor)
	if err != nil {
		return report.Report{}, err
	}

	rep := report.Report{RunID: runID, Corpus: info}
	var chapters []corpus.Chapter
	for _, result := range results {
		rep.Issues = append(rep.Issues, result.issues...)
		rep.CodeBlocks = append(rep.CodeBlocks, result.blocks...)
		if result.skipped {
			continue
		}
		chapters = append(chapters, result.chapter)
		rep.Chapters = append(rep.Chapters, report.ChapterRecord{
			Book:    result.chapter.Book,
			Path:    result.chapter.Path,
			Ordinal: result.chapter.Ordinal,
			Title:   result.chapter.Title,
			Lines:   result.chapter.Lines,
		})
	}
	if len(chapters) == 0 {
		return report.Report{}, corpus.ErrNoContent
	}
	idx := corpus.NewIndex(chapters)

	obs.OnPhase(PhaseReferences)
	graph, err := refgraph.Build(idx, refgraphOptions(cfg))
	if err != nil {
		return report.Report{}, err
	}
	for _, ref := range graph.References {
		rep.References = append(rep.References, referenceRecord(ref))
		if issue, ok := referenceIssue(ref); ok {
			rep.Issues = append(rep.Issues, issue)
		}
	}

	obs.OnPhase(PhaseOrdering)
	rep.Issues = append(rep.Issues, ordering.Validate(idx, graph)...)

	obs.OnPhase(PhaseBenchmarks)
	for _, chapter := range idx.Chapters() {
		for _, claim := range benchclaim.Extract(chapter.Body, cfg.Check.MethodologyWindow) {
			rep.BenchmarkClaims = append(rep.BenchmarkClaims, report.BenchmarkClaimRecord{
				Book:           chapter.Book,
				Chapter:        chapter.Path,
				Line:           claim.Line,
				Metric:         claim.Metric,
				Value:          claim.Value,
				HasMethodology: claim.HasMethodology,
			})
			if !claim.HasMethodology {
				rep.Issues = append(rep.Issues, report.Issue{
					Rule:     report.RuleBenchmarkNoMethod,
					Severity: report.SeverityWarning,
					Book:     chapter.Book,
					Chapter:  chapter.Path,
					Ordinal:  chapter.Ordinal,
					Line:     claim.Line,
					Message:  fmt.Sprintf("possible unverified claim: %s = %s with no methodology section in the preceding %d lines", claim.Metric, claim.Value, cfg.Check.MethodologyWindow),
				})
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return report.Report{}, err
	}

	obs.OnPhase(PhaseAggregate)
	rep.GeneratedAt = generatedAt
	rep.Finalize()

	logVerbose(params.Verbose, verboseWriter, params.NoColor, styleSummary,
		"Run %s books=%d chapters=%d errors=%d warnings=%d infos=%d",
		runID, rep.Summary.Books, rep.Summary.Chapters, rep.Summary.Errors, rep.Summary.Warnings, rep.Summary.Infos)

	obs.OnRunEnd(rep)
	return rep, nil
}

// RunAndWrite runs the pipeline and persists results.json and
// report.txt under the output directory.
func RunAndWrite(ctx context.Context, cfg config.Config, params RunParams) (report.Report, OutputPaths, error) {
	rep, err := Run(ctx, cfg, params)
	if err != nil {
		return report.Report{}, OutputPaths{}, err
	}
	outputDir := params.OutputDir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = cfg.Output.Dir
	}
	paths, err := WriteRunOutputs(&rep, outputDir)
	if err != nil {
		return rep, OutputPaths{}, err
	}
	return rep, paths, nil
}

// corpusInfo records the corpus identity, with git metadata when the
// root sits inside a repository.
func corpusInfo(ctx context.Context, absRoot string, metadata MetadataFunc) report.CorpusInfo {
	info := report.CorpusInfo{Root: absRoot, Name: filepath.Base(absRoot)}
	if metadata == nil {
		metadata = vcs.CorpusMetadata
	}
	meta, err := metadata(ctx, absRoot)
	if err != nil {
		return info
	}
	info.Name = meta.Name
	info.Commit = meta.Commit
	info.Branch = meta.Branch
	info.Dirty = meta.Dirty
	return info
}

func refgraphOptions(cfg config.Config) refgraph.Options {
	crossBook := cfg.Reference.CrossBookTitles == nil || *cfg.Reference.CrossBookTitles
	return refgraph.Options{
		ExtraPatterns:   cfg.Reference.ExtraPatterns,
		CrossBookTitles: crossBook,
	}
}

// referenceRecord converts a graph edge into its report form.
func referenceRecord(ref refgraph.Reference) report.ReferenceRecord {
	return report.ReferenceRecord{
		Book:          ref.SourceBook,
		Source:        ref.SourcePath,
		Line:          ref.Line,
		Snippet:       ref.Snippet,
		Kind:          string(ref.Kind),
		Target:        ref.TargetPath,
		TargetOrdinal: ref.TargetOrdinal,
		Status:        string(ref.Status),
		Candidates:    ref.Candidates,
	}
}

// referenceIssue maps unresolved references to warnings. Resolved
// references produce no issue.
func referenceIssue(ref refgraph.Reference) (report.Issue, bool) {
	issue := report.Issue{
		Severity: report.SeverityWarning,
		Book:     ref.SourceBook,
		Chapter:  ref.SourcePath,
		Ordinal:  ref.SourceOrdinal,
		Line:     ref.Line,
	}
	switch ref.Status {
	case refgraph.StatusDangling:
		issue.Rule = report.RuleReferenceDangling
		issue.Message = fmt.Sprintf("reference %q has no target chapter", ref.Snippet)
		return issue, true
	case refgraph.StatusAmbiguous:
		issue.Rule = report.RuleReferenceAmbiguous
		issue.Message = fmt.Sprintf("reference %q matches multiple chapters: %s", ref.Snippet, strings.Join(ref.Candidates, ", "))
		return issue, true
	}
	return report.Issue{}, false
}
