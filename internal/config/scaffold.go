package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1

corpus:
  max_file_bytes: 2097152
  chapter_pattern: "^(\\d{2,})[-_]"

check:
  workers: 0
  methodology_window: 40
  fail_on: error

reference:
  extra_patterns: []
  cross_book_titles: true

output:
  dir: ".corpuscheck/results"
`

// Scaffold writes the default config file into dir. It refuses to
// overwrite an existing file.
func Scaffold(dir string) (string, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
