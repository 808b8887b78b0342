package config

import "corpuscheck/internal/corpus"

// Defaults applied by Normalize.
const (
	DefaultMaxFileBytes      = 2 << 20
	DefaultMethodologyWindow = 40
	DefaultFailOn            = "error"
	DefaultOutputDir         = ".corpuscheck/results"
)

// Normalize fills defaults into a parsed config in place.
func Normalize(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if cfg.Corpus.MaxFileBytes == 0 {
		cfg.Corpus.MaxFileBytes = DefaultMaxFileBytes
	}
	if cfg.Corpus.ChapterPattern == "" {
		cfg.Corpus.ChapterPattern = corpus.DefaultChapterPattern
	}
	if cfg.Check.MethodologyWindow == 0 {
		cfg.Check.MethodologyWindow = DefaultMethodologyWindow
	}
	if cfg.Check.FailOn == "" {
		cfg.Check.FailOn = DefaultFailOn
	}
	if cfg.Reference.CrossBookTitles == nil {
		enabled := true
		cfg.Reference.CrossBookTitles = &enabled
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
}

// Default returns a fully normalized zero config, used when no config
// file exists.
func Default() Config {
	var cfg Config
	Normalize(&cfg)
	return cfg
}
