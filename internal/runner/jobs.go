package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"corpuscheck/internal/codeblock"
	"corpuscheck/internal/corpus"
	"corpuscheck/internal/frontmatter"
	"corpuscheck/internal/report"
)

// parseJob is one chapter file queued for parsing.
type parseJob struct {
	index int
	file  corpus.File
}

// parseResult captures the outcome of a single parse job. Skipped files
// contribute issues but no chapter.
type parseResult struct {
	index   int
	file    corpus.File
	chapter corpus.Chapter
	skipped bool
	issues  []report.Issue
	blocks  []report.CodeBlockRecord
}

// parseFiles fans chapter parsing out over a bounded worker pool and
// waits for every job before returning. Cancellation discards all
// partial results.
func parseFiles(ctx context.Context, files []corpus.File, maxBytes int64, workers int, obs RunObserver, verbose bool, verboseWriter io.Writer, noColor bool) ([]parseResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(files) {
		workers = len(files)
	}

	for _, file := range files {
		obs.OnChapterEvent(ChapterEvent{
			Book:      file.Book,
			Path:      file.Path,
			Ordinal:   file.Ordinal,
			Type:      ChapterQueued,
			EmittedAt: time.Now(),
		})
	}

	jobs := make(chan parseJob)
	resultCh := make(chan parseResult, len(files))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if ctx.Err() != nil {
					return
				}
				obs.OnChapterEvent(ChapterEvent{
					Book:      job.file.Book,
					Path:      job.file.Path,
					Ordinal:   job.file.Ordinal,
					Type:      ChapterParsing,
					EmittedAt: time.Now(),
				})
				result := parseFile(job.file, maxBytes)
				result.index = job.index
				eventType := ChapterParsed
				if result.skipped {
					eventType = ChapterSkipped
				}
				obs.OnChapterEvent(ChapterEvent{
					Book:      job.file.Book,
					Path:      job.file.Path,
					Ordinal:   job.file.Ordinal,
					Type:      eventType,
					Issues:    len(result.issues),
					EmittedAt: time.Now(),
				})
				logVerbose(verbose, verboseWriter, noColor, styleChapter,
					"Chapter %s %s issues=%d", job.file.Path, eventType, len(result.issues))
				resultCh <- result
			}
		}()
	}

	for i, file := range files {
		select {
		case jobs <- parseJob{index: i, file: file}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()
	close(resultCh)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]parseResult, len(files))
	for result := range resultCh {
		results[result.index] = result
	}
	return results, nil
}

// parseFile runs the per-file checks: size guard, readability, front
// matter, and code fences. Every defect becomes an issue, never an error.
func parseFile(file corpus.File, maxBytes int64) parseResult {
	result := parseResult{file: file}

	if maxBytes > 0 && file.Size > maxBytes {
		result.skipped = true
		result.issues = append(result.issues, report.Issue{
			Rule:     report.RuleFileTooLarge,
			Severity: report.SeverityWarning,
			Book:     file.Book,
			Chapter:  file.Path,
			Ordinal:  file.Ordinal,
			Message:  fmt.Sprintf("file is %d bytes, above the %d byte limit; skipped", file.Size, maxBytes),
		})
		return result
	}

	raw, err := os.ReadFile(file.AbsPath)
	if err != nil {
		result.skipped = true
		result.issues = append(result.issues, report.Issue{
			Rule:     report.RuleFileUnreadable,
			Severity: report.SeverityWarning,
			Book:     file.Book,
			Chapter:  file.Path,
			Ordinal:  file.Ordinal,
			Message:  fmt.Sprintf("cannot read file: %v; skipped", err),
		})
		return result
	}
	body := string(raw)

	fm := frontmatter.Parse(body)
	switch fm.Status {
	case frontmatter.StatusMissing:
		result.issues = append(result.issues, report.Issue{
			Rule:     report.RuleFrontMatterMissing,
			Severity: report.SeverityError,
			Book:     file.Book,
			Chapter:  file.Path,
			Ordinal:  file.Ordinal,
			Line:     1,
			Message:  "chapter has no leading front-matter block",
		})
	case frontmatter.StatusMalformed:
		result.issues = append(result.issues, report.Issue{
			Rule:     report.RuleFrontMatterMalformed,
			Severity: report.SeverityError,
			Book:     file.Book,
			Chapter:  file.Path,
			Ordinal:  file.Ordinal,
			Line:     1,
			Message:  fmt.Sprintf("malformed front matter: %s", fm.Detail),
		})
	}

	blocks, unterminated := codeblock.Extract(body)
	for _, block := range blocks {
		result.blocks = append(result.blocks, report.CodeBlockRecord{
			Book:      file.Book,
			Chapter:   file.Path,
			Language:  block.Language,
			StartLine: block.StartLine,
			EndLine:   block.EndLine,
		})
		if strings.TrimSpace(block.Language) == "" {
			result.issues = append(result.issues, report.Issue{
				Rule:     report.RuleCodeBlockEmptyTag,
				Severity: report.SeverityInfo,
				Book:     file.Book,
				Chapter:  file.Path,
				Ordinal:  file.Ordinal,
				Line:     block.StartLine,
				Message:  "code fence has no language tag",
			})
		}
	}
	for _, open := range unterminated {
		result.issues = append(result.issues, report.Issue{
			Rule:     report.RuleCodeBlockUnterminated,
			Severity: report.SeverityError,
			Book:     file.Book,
			Chapter:  file.Path,
			Ordinal:  file.Ordinal,
			Line:     open.OpenLine,
			Message:  fmt.Sprintf("code fence opened on line %d is never closed", open.OpenLine),
		})
	}

	result.chapter = corpus.Chapter{
		File:      file,
		Title:     fm.Title,
		Body:      body,
		BodyStart: fm.BodyStart,
		Lines:     strings.Count(body, "\n") + 1,
	}
	return result
}
