package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrNoContent signals that the scan found no chapter files at all.
// It is the only fatal condition in the pipeline.
var ErrNoContent = errors.New("no chapter files found under corpus root")

// DefaultChapterPattern matches filenames with a numeric ordinal prefix.
const DefaultChapterPattern = `^(\d{2,})[-_]`

// ScanOptions configures the corpus scan.
type ScanOptions struct {
	// ChapterPattern is a regexp whose first group captures the ordinal.
	// Empty means DefaultChapterPattern.
	ChapterPattern string
}

// Scan walks root and returns every chapter file, sorted by
// (book, ordinal, path). A missing or non-directory root is an error;
// an empty result is ErrNoContent.
func Scan(root string, opts ScanOptions) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat corpus root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus root %s is not a directory", root)
	}

	pattern := opts.ChapterPattern
	if pattern == "" {
		pattern = DefaultChapterPattern
	}
	chapterRe, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile chapter pattern: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve corpus root: %w", err)
	}

	var files []File
	walkErr := filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") && path != absRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			return nil
		}
		match := chapterRe.FindStringSubmatch(entry.Name())
		if match == nil {
			return nil
		}
		ordinal, err := strconv.Atoi(match[1])
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		fileInfo, err := entry.Info()
		if err != nil {
			return err
		}
		files = append(files, File{
			Path:    filepath.ToSlash(rel),
			AbsPath: path,
			Book:    bookName(rel, absRoot),
			Ordinal: ordinal,
			Size:    fileInfo.Size(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk corpus: %w", walkErr)
	}
	if len(files) == 0 {
		return nil, ErrNoContent
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Book != files[j].Book {
			return files[i].Book < files[j].Book
		}
		if files[i].Ordinal != files[j].Ordinal {
			return files[i].Ordinal < files[j].Ordinal
		}
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// bookName derives the book identifier from a chapter's relative path.
// Chapters directly under the root belong to the root's own directory name.
func bookName(rel, absRoot string) string {
	dir := filepath.Dir(rel)
	if dir == "." {
		return filepath.Base(absRoot)
	}
	return filepath.ToSlash(dir)
}
