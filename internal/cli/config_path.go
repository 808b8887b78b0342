package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"corpuscheck/internal/config"
)

// resolveConfigPath normalizes an explicit config path or searches
// upward from CWD. An empty result means no config exists and defaults
// apply.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadConfig loads the effective config: the explicit or discovered
// file when present, normalized defaults otherwise.
func loadConfig(configPath string) (config.Config, error) {
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if resolved == "" {
		return config.Default(), nil
	}
	return config.Load(resolved)
}
