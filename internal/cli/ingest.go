package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"corpuscheck/internal/duckdb"
	"corpuscheck/internal/report"
)

// runIngest builds the handler for the ingest command.
func runIngest(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		dbPath := flags.String("db", "", "Path to the findings database")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if *dbPath == "" {
			fmt.Fprintln(stderr, "Missing --db")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() == 0 {
			fmt.Fprintln(stderr, "Expected at least one <results.json> argument")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		db, err := duckdb.Open(*dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "corpus-check: %v\n", err)
			return ExitError
		}
		defer db.Close()

		ctx := context.Background()
		for _, path := range flags.Args() {
			rep, err := report.Load(path)
			if err != nil {
				fmt.Fprintf(stderr, "corpus-check: %v\n", err)
				return ExitError
			}
			inserted, err := duckdb.IngestReport(ctx, db, &rep)
			if err != nil {
				fmt.Fprintf(stderr, "corpus-check: ingest %s: %v\n", path, err)
				return ExitError
			}
			if inserted {
				fmt.Fprintf(stdout, "Ingested %s (run %s)\n", path, rep.RunID)
			} else {
				fmt.Fprintf(stdout, "Skipped %s (already ingested)\n", path)
			}
		}
		return ExitOK
	}
}
