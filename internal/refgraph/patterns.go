package refgraph

import (
	"fmt"
	"regexp"
)

// Built-in reference phrasings. Numeric patterns capture the ordinal in
// their first group; relative patterns carry no group.
var (
	jpNumericRe = regexp.MustCompile(`第(\d+)章`)
	enNumericRe = regexp.MustCompile(`(?i)chapter\s+(\d+)`)
	nextRe      = regexp.MustCompile(`次章`)
	prevRe      = regexp.MustCompile(`前章`)
)

// Options configures reference detection and resolution.
type Options struct {
	// ExtraPatterns are additional numeric regexps from the config;
	// each must capture the ordinal in its first group.
	ExtraPatterns []string
	// CrossBookTitles enables title-substring resolution across books.
	CrossBookTitles bool
	// MinTitleRunes is the shortest title eligible for substring
	// matching; shorter titles produce too much noise. Zero means 3.
	MinTitleRunes int
}

// compilePatterns merges built-in and configured numeric patterns.
func compilePatterns(extra []string) ([]*regexp.Regexp, error) {
	patterns := []*regexp.Regexp{jpNumericRe, enNumericRe}
	for _, raw := range extra {
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("compile reference pattern %q: %w", raw, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("reference pattern %q must capture the ordinal in a group", raw)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}
