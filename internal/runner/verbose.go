package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const verbosePrefix = "[verbose]"

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleChapter
	styleSummary
	styleError
)

const ansiReset = "\x1b[0m"

var styleCodes = map[verboseStyle]string{
	styleChapter: "\x1b[1;34m",
	styleSummary: "\x1b[1;32m",
	styleError:   "\x1b[1;31m",
}

// logVerbose writes one progress line, prefixed and optionally styled
// when the writer is a color-capable terminal.
func logVerbose(enabled bool, w io.Writer, noColor bool, style verboseStyle, format string, args ...any) {
	if !enabled || w == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	if !noColor && colorCapable(w) {
		prefix := "\x1b[2;90m" + verbosePrefix + ansiReset
		if code, ok := styleCodes[style]; ok {
			line = code + line + ansiReset
		}
		fmt.Fprintf(w, "%s %s\n", prefix, line)
		return
	}
	fmt.Fprintf(w, "%s %s\n", verbosePrefix, line)
}

// colorCapable respects NO_COLOR, CLICOLOR=0, and dumb terminals, then
// requires an actual TTY behind the writer.
func colorCapable(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
