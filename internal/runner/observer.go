package runner

import (
	"time"

	"corpuscheck/internal/report"
)

// ChapterEventType identifies a chapter status update for observers.
type ChapterEventType string

const (
	// ChapterQueued marks a chapter discovered but not yet parsed.
	ChapterQueued ChapterEventType = "queued"
	// ChapterParsing marks an active parse job.
	ChapterParsing ChapterEventType = "parsing"
	// ChapterParsed marks a completed parse.
	ChapterParsed ChapterEventType = "parsed"
	// ChapterSkipped marks a chapter excluded from the index, for
	// oversized or unreadable files.
	ChapterSkipped ChapterEventType = "skipped"
)

// Phase identifies a pipeline stage for observers.
type Phase string

const (
	PhaseParse      Phase = "parse"
	PhaseReferences Phase = "references"
	PhaseOrdering   Phase = "ordering"
	PhaseBenchmarks Phase = "benchmarks"
	PhaseAggregate  Phase = "aggregate"
)

// ChapterEvent carries a single status update for a chapter.
type ChapterEvent struct {
	Book      string
	Path      string
	Ordinal   int
	Type      ChapterEventType
	Issues    int
	Detail    string
	EmittedAt time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
// OnChapterEvent may be called concurrently from parse workers.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, root string, chapters int)
	// OnPhase signals a pipeline stage transition.
	OnPhase(phase Phase)
	// OnChapterEvent delivers a chapter status update.
	OnChapterEvent(event ChapterEvent)
	// OnRunEnd signals run completion with the finalized report.
	OnRunEnd(rep report.Report)
}

// noopObserver discards all events.
type noopObserver struct{}

func (noopObserver) OnRunStart(string, string, int) {}
func (noopObserver) OnPhase(Phase)                  {}
func (noopObserver) OnChapterEvent(ChapterEvent)    {}
func (noopObserver) OnRunEnd(report.Report)         {}

func ensureObserver(obs RunObserver) RunObserver {
	if obs == nil {
		return noopObserver{}
	}
	return obs
}
