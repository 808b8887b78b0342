package report

import "time"

// Severity orders findings. Error outranks warning outranks info.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank returns a comparable weight for severity thresholds.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Rule identifiers are stable strings; issues deduplicate on
// (chapter, line, rule).
const (
	RuleFrontMatterMissing    = "front-matter/missing"
	RuleFrontMatterMalformed  = "front-matter/malformed"
	RuleCodeBlockUnterminated = "code-block/unterminated"
	RuleCodeBlockEmptyTag     = "code-block/empty-tag"
	RuleReferenceDangling     = "reference/dangling"
	RuleReferenceAmbiguous    = "reference/ambiguous"
	RuleOrderingDuplicate     = "ordering/duplicate-ordinal"
	RuleOrderingGap           = "ordering/gap"
	RuleOrderingNextMismatch  = "ordering/next-chapter-mismatch"
	RuleBenchmarkNoMethod     = "benchmark/no-methodology"
	RuleFileTooLarge          = "corpus/file-too-large"
	RuleFileUnreadable        = "corpus/unreadable"
)

// Issue is one finding attached to the report. Non-fatal errors never
// propagate up the call stack; they become Issues.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Book     string   `json:"book"`
	Chapter  string   `json:"chapter,omitempty"`
	Ordinal  int      `json:"ordinal,omitempty"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
}

// ChapterRecord summarizes one chapter for the machine-readable report.
type ChapterRecord struct {
	Book    string `json:"book"`
	Path    string `json:"path"`
	Ordinal int    `json:"ordinal"`
	Title   string `json:"title"`
	Lines   int    `json:"lines"`
}

// CodeBlockRecord is one extracted fenced code block.
type CodeBlockRecord struct {
	Book      string `json:"book"`
	Chapter   string `json:"chapter"`
	Language  string `json:"language"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// ReferenceRecord is one cross-reference with its derived resolution.
type ReferenceRecord struct {
	Book          string   `json:"book"`
	Source        string   `json:"source"`
	Line          int      `json:"line"`
	Snippet       string   `json:"snippet"`
	Kind          string   `json:"kind"`
	Target        string   `json:"target,omitempty"`
	TargetOrdinal int      `json:"target_ordinal,omitempty"`
	Status        string   `json:"status"`
	Candidates    []string `json:"candidates,omitempty"`
}

// BenchmarkClaimRecord is one numeric claim extracted from a table row.
type BenchmarkClaimRecord struct {
	Book           string `json:"book"`
	Chapter        string `json:"chapter"`
	Line           int    `json:"line"`
	Metric         string `json:"metric"`
	Value          string `json:"value"`
	HasMethodology bool   `json:"has_methodology"`
}

// CorpusInfo identifies the checked tree, with git metadata when available.
type CorpusInfo struct {
	Root   string `json:"root"`
	Name   string `json:"name"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
	Dirty  bool   `json:"dirty,omitempty"`
}

// Summary holds the closing counts rendered on the last output line.
type Summary struct {
	Books           int `json:"books"`
	Chapters        int `json:"chapters"`
	CodeBlocks      int `json:"code_blocks"`
	References      int `json:"references"`
	BenchmarkClaims int `json:"benchmark_claims"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
}

// Report is the single write-once sink of a run. All slices are sorted
// deterministically by Finalize; GeneratedAt is the only field allowed
// to differ between runs on unchanged input.
type Report struct {
	RunID           string                 `json:"run_id"`
	GeneratedAt     time.Time              `json:"generated_at"`
	Corpus          CorpusInfo             `json:"corpus"`
	Chapters        []ChapterRecord        `json:"chapters"`
	CodeBlocks      []CodeBlockRecord      `json:"code_blocks"`
	References      []ReferenceRecord      `json:"references"`
	BenchmarkClaims []BenchmarkClaimRecord `json:"benchmark_claims"`
	Issues          []Issue                `json:"issues"`
	Summary         Summary                `json:"summary"`
}
