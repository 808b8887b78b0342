// Package reportserver hosts an HTTP UI over a findings history
// database: an HTML shell, the raw DuckDB file for browser-side
// processing, and JSON endpoints for runs and issues.
package reportserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"corpuscheck/internal/duckdb"
)

// Config captures the settings for serving a findings database.
type Config struct {
	Addr   string
	DBPath string
}

// Serve starts an HTTP server that hosts the report UI and data
// endpoints, shutting down gracefully when the context is cancelled.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("reportserver: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("reportserver: addr is required")
	}
	db, err := duckdb.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	handler, err := NewHandler(cfg, db)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return ignoreServerClosed(err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ignoreServerClosed(<-errCh)
	}
}

func ignoreServerClosed(err error) error {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
