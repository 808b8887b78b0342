package markdown

import (
	"strings"
	"testing"
)

// TestTables verifies GFM table extraction with cell text and line numbers.
func TestTables(t *testing.T) {
	body := strings.Join([]string{
		"# 計測結果",
		"",
		"| メトリクス | Before | After | 改善率 |",
		"| --- | --- | --- | --- |",
		"| 起動時間 | 3.2s | 1.9s | 40.6% |",
		"| メモリ | 210MB | 180MB | 14.3% |",
	}, "\n")

	doc := Parse(body)
	tables := doc.Tables()
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	table := tables[0]
	if len(table.Header) != 4 || table.Header[3] != "改善率" {
		t.Fatalf("unexpected header %v", table.Header)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(table.Rows))
	}
	if table.Rows[0][0] != "起動時間" || table.Rows[1][3] != "14.3%" {
		t.Fatalf("unexpected rows %v", table.Rows)
	}
	if table.Line != 3 {
		t.Fatalf("expected header on line 3, got %d", table.Line)
	}
}

// TestHeadings verifies heading text, level, and line positions.
func TestHeadings(t *testing.T) {
	body := "# 概要\n\ntext\n\n## 測定環境\n\nmore\n"
	doc := Parse(body)
	headings := doc.Headings()
	if len(headings) != 2 {
		t.Fatalf("expected 2 headings, got %d", len(headings))
	}
	if headings[0].Text != "概要" || headings[0].Level != 1 || headings[0].Line != 1 {
		t.Fatalf("unexpected first heading %+v", headings[0])
	}
	if headings[1].Text != "測定環境" || headings[1].Line != 5 {
		t.Fatalf("unexpected second heading %+v", headings[1])
	}
}

// TestLineAt verifies byte-offset to line conversion.
func TestLineAt(t *testing.T) {
	doc := Parse("ab\ncd\nef")
	cases := map[int]int{0: 1, 2: 1, 3: 2, 5: 2, 6: 3, 7: 3}
	for offset, want := range cases {
		if got := doc.lineAt(offset); got != want {
			t.Fatalf("lineAt(%d) = %d, want %d", offset, got, want)
		}
	}
}

// TestNoTables verifies prose without tables yields none.
func TestNoTables(t *testing.T) {
	doc := Parse("just prose\n\nwith | pipes | inline but no table\n")
	if tables := doc.Tables(); len(tables) != 0 {
		t.Fatalf("expected no tables, got %d", len(tables))
	}
}
