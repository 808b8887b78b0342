package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a results.json written by a previous run.
func Load(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("parse report %s: %w", path, err)
	}
	return r, nil
}

// Marshal renders the machine-readable report as pretty JSON.
func Marshal(r *Report) ([]byte, error) {
	payload, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(payload, '\n'), nil
}
