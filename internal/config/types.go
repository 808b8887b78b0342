package config

// Config is the parsed .corpuscheck.yml. Unknown keys are rejected at
// parse time; all fields are optional and filled in by Normalize.
type Config struct {
	Version   int             `yaml:"version"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Check     CheckConfig     `yaml:"check"`
	Reference ReferenceConfig `yaml:"reference"`
	Output    OutputConfig    `yaml:"output"`
}

// CorpusConfig bounds what the scanner accepts.
type CorpusConfig struct {
	// MaxFileBytes rejects pathological inputs; files above it are
	// skipped with a warning.
	MaxFileBytes int64 `yaml:"max_file_bytes"`
	// ChapterPattern is a regexp whose first group captures the
	// ordinal prefix of chapter filenames.
	ChapterPattern string `yaml:"chapter_pattern"`
}

// CheckConfig tunes the pipeline.
type CheckConfig struct {
	// Workers bounds the per-file parse pool; 0 means one per CPU.
	Workers int `yaml:"workers"`
	// MethodologyWindow is the line window searched above a benchmark
	// table for a methodology block.
	MethodologyWindow int `yaml:"methodology_window"`
	// FailOn is the default exit threshold: error, warning, or none.
	FailOn string `yaml:"fail_on"`
}

// ReferenceConfig tunes cross-reference detection.
type ReferenceConfig struct {
	// ExtraPatterns are additional numeric reference regexps; each
	// must capture the ordinal in its first group.
	ExtraPatterns []string `yaml:"extra_patterns"`
	// CrossBookTitles enables title matches across book boundaries.
	CrossBookTitles *bool `yaml:"cross_book_titles"`
}

// OutputConfig controls where run artifacts land.
type OutputConfig struct {
	// Dir receives results.json and report.txt per run. Normalize
	// fills in DefaultOutputDir when unset.
	Dir string `yaml:"dir"`
}
