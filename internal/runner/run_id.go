package runner

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"corpuscheck/internal/corpus"
)

// Run identifiers sort lexically by run time. The suffix hashes the
// scanned file set, so rechecking an unchanged corpus reproduces the
// identifier and the run timestamp stays the only varying report field.
const (
	runIDTimeLayout = "20060102T150405Z"
	runIDSuffixLen  = 12
)

// NewRunID derives a run identifier from the run timestamp and the
// scanned chapter files.
func NewRunID(at time.Time, files []corpus.File) string {
	digest := sha256.New()
	for _, file := range files {
		fmt.Fprintf(digest, "%s\x00%d\x00", file.Path, file.Size)
	}
	suffix := hex.EncodeToString(digest.Sum(nil))[:runIDSuffixLen]
	return at.UTC().Format(runIDTimeLayout) + "-" + suffix
}
