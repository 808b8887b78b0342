// Package refgraph detects in-text chapter cross-references and builds
// a directed graph over the chapter index. Resolution status is always
// derived by lookup, never asserted by the caller.
package refgraph

// Status is the derived resolution of a reference.
type Status string

const (
	StatusResolved  Status = "resolved"
	StatusDangling  Status = "dangling"
	StatusAmbiguous Status = "ambiguous"
)

// Kind identifies how a reference was phrased.
type Kind string

const (
	// KindNumeric covers 第N章 / Chapter N and configured extra patterns.
	KindNumeric Kind = "numeric"
	// KindNext and KindPrev cover 次章 / 前章, resolving ordinal ±1
	// within the same book.
	KindNext Kind = "next"
	KindPrev Kind = "prev"
	// KindTitle covers case-insensitive title-substring matches.
	KindTitle Kind = "title"
)

// Reference is one detected cross-reference edge.
type Reference struct {
	SourceBook    string
	SourcePath    string
	SourceOrdinal int
	Line          int
	Snippet       string
	Kind          Kind
	// ClaimedOrdinal is the ordinal the text points at, when the
	// phrasing carries one (numeric and relative kinds).
	ClaimedOrdinal int
	// TargetPath is set only for StatusResolved.
	TargetPath    string
	TargetOrdinal int
	Status        Status
	// Candidates lists the paths of all tied targets for StatusAmbiguous.
	Candidates []string
}

// Graph holds the reference edges of a whole corpus.
type Graph struct {
	References []Reference
	edges      map[string][]string
}

// Targets returns the resolved target paths reachable from a source chapter.
func (g *Graph) Targets(source string) []string {
	return g.edges[source]
}
