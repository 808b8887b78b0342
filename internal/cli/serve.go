package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"corpuscheck/internal/reportserver"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		dbPath := flags.String("db", "", "Path to the findings database")
		addr := flags.String("addr", "127.0.0.1:5000", "Address to listen on")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}
		if *dbPath == "" {
			fmt.Fprintln(stderr, "Missing --db")
			return ExitUsage
		}
		if *addr == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}
		if _, err := os.Stat(*dbPath); err != nil {
			fmt.Fprintf(stderr, "Database not found: %v\n", err)
			return ExitError
		}

		cfg := reportserver.Config{
			Addr:   *addr,
			DBPath: *dbPath,
		}
		fmt.Fprintf(stdout, "Serving findings at http://%s\n", cfg.Addr)
		if err := serveReport(context.Background(), cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
