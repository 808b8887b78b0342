package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"corpuscheck/internal/report"
)

// Open opens a DuckDB database at path, creating it when absent, and
// ensures the schema exists. An empty path opens an in-memory database.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}

// RunKey returns a deterministic fingerprint of a report, excluding
// generated_at so re-running on unchanged input yields the same key.
func RunKey(rep *report.Report) (string, error) {
	if rep == nil {
		return "", errors.New("duckdb: report is nil")
	}
	keyed := *rep
	keyed.GeneratedAt = time.Time{}
	payload, err := report.Marshal(&keyed)
	if err != nil {
		return "", err
	}
	return FingerprintJSON(payload)
}

// IngestReport inserts one run and its issues, keyed by fingerprint.
// Re-ingesting the same report is a no-op; the bool reports whether the
// run row was newly inserted.
func IngestReport(ctx context.Context, db *sql.DB, rep *report.Report) (bool, error) {
	if ctx == nil {
		return false, errors.New("duckdb: context is nil")
	}
	if db == nil {
		return false, errors.New("duckdb: db is nil")
	}
	key, err := RunKey(rep)
	if err != nil {
		return false, err
	}

	result, err := db.ExecContext(
		ctx,
		`INSERT INTO runs (run_pk, run_key, run_id, generated_at,
		        corpus_root, corpus_name, corpus_commit, corpus_branch, corpus_dirty,
		        books, chapters, code_blocks, refs, benchmark_claims,
		        errors, warnings, infos)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (run_key) DO NOTHING`,
		uuid.NewString(),
		key,
		rep.RunID,
		rep.GeneratedAt,
		rep.Corpus.Root,
		rep.Corpus.Name,
		rep.Corpus.Commit,
		rep.Corpus.Branch,
		rep.Corpus.Dirty,
		rep.Summary.Books,
		rep.Summary.Chapters,
		rep.Summary.CodeBlocks,
		rep.Summary.References,
		rep.Summary.BenchmarkClaims,
		rep.Summary.Errors,
		rep.Summary.Warnings,
		rep.Summary.Infos,
	)
	if err != nil {
		return false, fmt.Errorf("insert run: %w", err)
	}
	inserted := true
	if affected, err := result.RowsAffected(); err == nil {
		inserted = affected > 0
	}

	runPK, err := lookupID(ctx, db, "runs", "run_pk", "run_key", key)
	if err != nil {
		return false, fmt.Errorf("lookup run id: %w", err)
	}

	for _, chapter := range rep.Chapters {
		chapterKey, err := FingerprintJSON(map[string]interface{}{
			"run_key": key,
			"path":    chapter.Path,
		})
		if err != nil {
			return inserted, err
		}
		if _, err := db.ExecContext(
			ctx,
			`INSERT INTO chapters (chapter_pk, chapter_key, run_pk, book, path, ordinal, title, lines)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (chapter_key) DO NOTHING`,
			uuid.NewString(),
			chapterKey,
			runPK,
			chapter.Book,
			chapter.Path,
			chapter.Ordinal,
			chapter.Title,
			chapter.Lines,
		); err != nil {
			return inserted, fmt.Errorf("insert chapter: %w", err)
		}
	}

	for _, issue := range rep.Issues {
		issueKey, err := FingerprintJSON(map[string]interface{}{
			"run_key": key,
			"rule":    issue.Rule,
			"chapter": issue.Chapter,
			"line":    issue.Line,
			"message": issue.Message,
		})
		if err != nil {
			return inserted, err
		}
		if _, err := db.ExecContext(
			ctx,
			`INSERT INTO issues (issue_pk, issue_key, run_pk, rule, severity,
			        book, chapter, ordinal, line, message)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (issue_key) DO NOTHING`,
			uuid.NewString(),
			issueKey,
			runPK,
			issue.Rule,
			string(issue.Severity),
			issue.Book,
			issue.Chapter,
			issue.Ordinal,
			issue.Line,
			issue.Message,
		); err != nil {
			return inserted, fmt.Errorf("insert issue: %w", err)
		}
	}
	return inserted, nil
}

// lookupID fetches a single ID column value for a row keyed by keyColumn.
func lookupID(ctx context.Context, db *sql.DB, table, idColumn, keyColumn, key string) (string, error) {
	query := fmt.Sprintf("SELECT CAST(%s AS VARCHAR) FROM %s WHERE %s = ?", idColumn, table, keyColumn)
	var id string
	if err := db.QueryRowContext(ctx, query, key).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}
