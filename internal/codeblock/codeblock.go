// Package codeblock scans Markdown text for fenced code blocks.
//
// The scanner records language tags verbatim and never judges them;
// downstream reporting decides whether an empty or unknown tag is
// worth flagging. An unterminated fence yields an Unterminated record
// and no Block, and scanning stops at EOF for that file.
package codeblock

import "strings"

// Block is one fenced code block. Identity is (chapter, StartLine).
type Block struct {
	// Language is the declared tag, verbatim; may be empty.
	Language string
	// Content is the text between the fences, without the fence lines.
	Content string
	// StartLine and EndLine are the 1-based lines of the opening and
	// closing fence markers, so the span exactly brackets the block.
	StartLine int
	EndLine   int
}

// Unterminated records an opening fence with no matching close before EOF.
type Unterminated struct {
	OpenLine int
	Language string
}

// Extract scans a chapter body and returns its code blocks in order.
// Each call is independent and side-effect-free.
func Extract(body string) ([]Block, []Unterminated) {
	lines := strings.Split(body, "\n")
	var blocks []Block
	var open []Unterminated

	for i := 0; i < len(lines); i++ {
		fence, info := openingFence(lines[i])
		if fence == 0 {
			continue
		}
		start := i + 1
		closed := -1
		for j := i + 1; j < len(lines); j++ {
			if closingFence(lines[j], fence) {
				closed = j
				break
			}
		}
		if closed < 0 {
			open = append(open, Unterminated{OpenLine: start, Language: info})
			break
		}
		content := ""
		if closed > i+1 {
			content = strings.Join(lines[i+1:closed], "\n") + "\n"
		}
		blocks = append(blocks, Block{
			Language:  info,
			Content:   content,
			StartLine: start,
			EndLine:   closed + 1,
		})
		i = closed
	}
	return blocks, open
}

// openingFence reports the backtick run length and the info string of
// an opening fence line, or 0 when the line is not a fence.
func openingFence(line string) (int, string) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return 0, ""
	}
	run := backtickRun(trimmed)
	if run < 3 {
		return 0, ""
	}
	info := strings.TrimSpace(trimmed[run:])
	if strings.Contains(info, "`") {
		return 0, ""
	}
	return run, info
}

// closingFence reports whether a line closes a fence of the given length.
func closingFence(line string, fence int) bool {
	trimmed := strings.TrimSpace(line)
	run := backtickRun(trimmed)
	return run >= fence && run == len(trimmed)
}

func backtickRun(s string) int {
	n := 0
	for n < len(s) && s[n] == '`' {
		n++
	}
	return n
}
