// Package frontmatter extracts the leading YAML metadata block from a
// chapter file. Only the first ----delimited block is honored; later
// --- lines are body content (horizontal rules).
package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Status tags the outcome of parsing a front-matter block.
type Status int

const (
	// StatusOK means a block was found and carried a non-empty title.
	StatusOK Status = iota
	// StatusMissing means the file does not start with a --- block.
	StatusMissing
	// StatusMalformed means a block exists but is not valid YAML or
	// lacks a non-empty title key.
	StatusMalformed
)

// Result is the tagged outcome of a parse. Call sites must switch on
// Status rather than testing Title for emptiness.
type Result struct {
	Status Status
	Title  string
	// BodyStart is the 1-based line on which the body begins. For a
	// missing block it is 1.
	BodyStart int
	// Detail carries the malformation reason for StatusMalformed.
	Detail string
}

const delimiter = "---"

// Parse extracts the front matter from raw chapter text. It is a pure
// function: identical input always yields an identical Result.
func Parse(body string) Result {
	lines := strings.Split(body, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\r") != delimiter {
		return Result{Status: StatusMissing, BodyStart: 1}
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\r") == delimiter {
			closing = i
			break
		}
	}
	if closing < 0 {
		return Result{Status: StatusMalformed, BodyStart: 1, Detail: "front-matter block is not closed"}
	}

	block := strings.Join(lines[1:closing], "\n")
	bodyStart := closing + 2

	var meta struct {
		Title string `yaml:"title"`
	}
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return Result{Status: StatusMalformed, BodyStart: bodyStart, Detail: "invalid YAML: " + err.Error()}
	}
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		return Result{Status: StatusMalformed, BodyStart: bodyStart, Detail: "title key is absent or empty"}
	}
	return Result{Status: StatusOK, Title: title, BodyStart: bodyStart}
}
