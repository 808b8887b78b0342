package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config for correctness.
func Validate(cfg *Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}
	if cfg.Corpus.MaxFileBytes < 0 {
		add("corpus.max_file_bytes", "must be >= 0")
	}
	if re, err := regexp.Compile(cfg.Corpus.ChapterPattern); err != nil {
		add("corpus.chapter_pattern", fmt.Sprintf("invalid regexp: %v", err))
	} else if re.NumSubexp() < 1 {
		add("corpus.chapter_pattern", "must capture the ordinal in a group")
	}
	if cfg.Check.Workers < 0 {
		add("check.workers", "must be >= 0")
	}
	if cfg.Check.MethodologyWindow < 1 {
		add("check.methodology_window", "must be >= 1")
	}
	switch cfg.Check.FailOn {
	case "error", "warning", "none":
	default:
		add("check.fail_on", fmt.Sprintf("must be error, warning, or none, not %q", cfg.Check.FailOn))
	}
	for i, raw := range cfg.Reference.ExtraPatterns {
		field := fmt.Sprintf("reference.extra_patterns[%d]", i)
		re, err := regexp.Compile(raw)
		if err != nil {
			add(field, fmt.Sprintf("invalid regexp: %v", err))
			continue
		}
		if re.NumSubexp() < 1 {
			add(field, "must capture the ordinal in a group")
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
