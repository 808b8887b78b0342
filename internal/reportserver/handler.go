package reportserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const indexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Corpus Check</title>
  </head>
  <body>
    <h1>Corpus Check</h1>
    <p>Findings history endpoints:</p>
    <ul>
      <li><a href="/api/runs">/api/runs</a></li>
      <li><a href="/api/issues">/api/issues</a></li>
      <li><a href="/data/db.duckdb">/data/db.duckdb</a></li>
    </ul>
  </body>
</html>`

// NewHandler builds the HTTP handler for the report UI, the DuckDB
// file, and the JSON endpoints.
func NewHandler(cfg Config, db *sql.DB) (http.Handler, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("reportserver: db path is required")
	}
	if db == nil {
		return nil, errors.New("reportserver: db is nil")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", serveIndex)
	mux.Handle("/data/db.duckdb", serveDatabase(cfg.DBPath))
	mux.Handle("/api/runs", serveRuns(db))
	mux.Handle("/api/issues", serveIssues(db))
	return mux, nil
}

// serveIndex writes the base HTML shell for the report UI. The "/"
// pattern matches every otherwise-unhandled path, so anything but the
// root itself is a 404.
func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexHTML)
}

// serveDatabase serves the DuckDB file from disk for browser-side processing.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}

// runRow is one element of the /api/runs response.
type runRow struct {
	RunID       string `json:"run_id"`
	GeneratedAt string `json:"generated_at"`
	CorpusName  string `json:"corpus_name"`
	Commit      string `json:"commit,omitempty"`
	Chapters    int    `json:"chapters"`
	Errors      int    `json:"errors"`
	Warnings    int    `json:"warnings"`
	Infos       int    `json:"infos"`
}

// serveRuns lists ingested runs, newest first.
func serveRuns(db *sql.DB) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.QueryContext(r.Context(),
			`SELECT run_id, CAST(generated_at AS VARCHAR), corpus_name, corpus_commit,
			        chapters, errors, warnings, infos
			 FROM runs ORDER BY run_id DESC`)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		out := make([]runRow, 0, 16)
		for rows.Next() {
			var row runRow
			if err := rows.Scan(&row.RunID, &row.GeneratedAt, &row.CorpusName, &row.Commit,
				&row.Chapters, &row.Errors, &row.Warnings, &row.Infos); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			out = append(out, row)
		}
		if err := rows.Err(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, out)
	})
}

// issueRow is one element of the /api/issues response.
type issueRow struct {
	RunID    string `json:"run_id"`
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Book     string `json:"book"`
	Chapter  string `json:"chapter,omitempty"`
	Ordinal  int    `json:"ordinal,omitempty"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
}

// serveIssues lists issues, optionally filtered by ?run_id=.
func serveIssues(db *sql.DB) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := `SELECT r.run_id, i.rule, i.severity, i.book, i.chapter, i.ordinal, i.line, i.message
		          FROM issues i JOIN runs r ON r.run_pk = i.run_pk`
		args := []interface{}{}
		if runID := r.URL.Query().Get("run_id"); runID != "" {
			query += " WHERE r.run_id = ?"
			args = append(args, runID)
		}
		query += " ORDER BY r.run_id DESC, i.book, i.chapter, i.line, i.rule"

		rows, err := db.QueryContext(r.Context(), query, args...)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		out := make([]issueRow, 0, 64)
		for rows.Next() {
			var row issueRow
			if err := rows.Scan(&row.RunID, &row.Rule, &row.Severity, &row.Book,
				&row.Chapter, &row.Ordinal, &row.Line, &row.Message); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			out = append(out, row)
		}
		if err := rows.Err(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, out)
	})
}

func writeJSON(w http.ResponseWriter, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(value)
}
