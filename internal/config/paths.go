package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigFileName is the config file searched for next to a corpus.
const ConfigFileName = ".corpuscheck.yml"

// FindConfigPath searches upward from a directory for a config file.
// An empty result with a nil error means no config exists and defaults
// apply.
func FindConfigPath(startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}
	dir = abs
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
