// Package markdown wraps the goldmark parser for the structural
// queries the validators need: GFM tables and headings with source
// line positions. Fence scanning stays in internal/codeblock because
// it needs unterminated-fence detection, which goldmark forgives.
package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Table is one GFM table with cell text flattened to plain strings.
type Table struct {
	// Header holds the header-row cell texts.
	Header []string
	// Rows holds the data rows, one string slice per row.
	Rows [][]string
	// Line is the 1-based source line of the header row.
	Line int
}

// Heading is one Markdown heading.
type Heading struct {
	Text  string
	Level int
	Line  int
}

// Document is a parsed chapter body.
type Document struct {
	source      []byte
	root        ast.Node
	lineOffsets []int
}

var parser = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Parse builds a Document from raw chapter text.
func Parse(body string) *Document {
	source := []byte(body)
	root := parser.Parser().Parse(text.NewReader(source))
	return &Document{
		source:      source,
		root:        root,
		lineOffsets: lineOffsets(source),
	}
}

// Tables returns every GFM table in document order.
func (d *Document) Tables() []Table {
	var tables []Table
	_ = ast.Walk(d.root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		table, ok := node.(*east.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		tables = append(tables, d.flattenTable(table))
		return ast.WalkSkipChildren, nil
	})
	return tables
}

// Headings returns every heading in document order.
func (d *Document) Headings() []Heading {
	var headings []Heading
	_ = ast.Walk(d.root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		headings = append(headings, Heading{
			Text:  d.nodeText(heading),
			Level: heading.Level,
			Line:  d.nodeLine(heading),
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// lineAt converts a byte offset into a 1-based line number.
func (d *Document) lineAt(offset int) int {
	idx := sort.Search(len(d.lineOffsets), func(i int) bool {
		return d.lineOffsets[i] > offset
	})
	return idx
}

// flattenTable extracts cell texts and the header line from a table node.
func (d *Document) flattenTable(table *east.Table) Table {
	out := Table{}
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			out.Header = d.rowCells(row)
			out.Line = d.nodeLine(row)
		case *east.TableRow:
			out.Rows = append(out.Rows, d.rowCells(row))
		}
	}
	return out
}

// rowCells collects the plain text of each cell in a row node.
func (d *Document) rowCells(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, d.nodeText(cell))
	}
	return cells
}

// nodeText flattens a node's text content, trimmed.
func (d *Document) nodeText(node ast.Node) string {
	var builder strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if textNode, ok := n.(*ast.Text); ok {
			builder.Write(textNode.Segment.Value(d.source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(builder.String())
}

// nodeLine finds the source line of a node via its first text segment.
func (d *Document) nodeLine(node ast.Node) int {
	line := 0
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if textNode, ok := n.(*ast.Text); ok {
			line = d.lineAt(textNode.Segment.Start)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return line
}

// lineOffsets records the byte offset at which each line starts.
func lineOffsets(source []byte) []int {
	offsets := []int{0}
	for i, b := range source {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
