package duckdb

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var ddl string

// EnsureSchema creates the findings tables and views when missing. The
// statements are idempotent, so it runs on every Open.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
