package runner

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"corpuscheck/internal/report"
)

// WriteRunOutputs writes results.json and report.txt for a run.
func WriteRunOutputs(rep *report.Report, outputDir string) (OutputPaths, error) {
	if outputDir == "" {
		return OutputPaths{}, fmt.Errorf("output directory is required")
	}
	paths, err := NewOutputPaths(outputDir, rep.RunID)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return OutputPaths{}, fmt.Errorf("create output dir: %w", err)
	}

	payload, err := report.Marshal(rep)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := os.WriteFile(paths.ResultsPath(), payload, 0o644); err != nil {
		return OutputPaths{}, fmt.Errorf("write %s: %w", filepath.Base(paths.ResultsPath()), err)
	}

	var text bytes.Buffer
	if err := report.RenderText(&text, rep, true); err != nil {
		return OutputPaths{}, err
	}
	if err := os.WriteFile(paths.ReportPath(), text.Bytes(), 0o644); err != nil {
		return OutputPaths{}, fmt.Errorf("write %s: %w", filepath.Base(paths.ReportPath()), err)
	}
	return paths, nil
}
