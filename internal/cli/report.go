package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"corpuscheck/internal/report"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		// The results path may precede the flags.
		var path string
		if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
			path = args[0]
			args = args[1:]
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		format := flags.String("format", "text", "Output format: text or json")
		noColor := flags.Bool("no-color", false, "Disable color output")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		switch {
		case path == "" && flags.NArg() == 1:
			path = flags.Arg(0)
		case path != "" && flags.NArg() == 0:
		default:
			fmt.Fprintln(stderr, "Expected exactly one <results.json> argument")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		rep, err := report.Load(path)
		if err != nil {
			fmt.Fprintf(stderr, "corpus-check: %v\n", err)
			return ExitError
		}

		switch *format {
		case "json":
			payload, err := report.Marshal(&rep)
			if err != nil {
				fmt.Fprintf(stderr, "corpus-check: %v\n", err)
				return ExitError
			}
			if _, err := stdout.Write(payload); err != nil {
				return ExitError
			}
		case "text":
			if err := report.RenderText(stdout, &rep, *noColor); err != nil {
				return ExitError
			}
		default:
			fmt.Fprintf(stderr, "invalid format %q (expected text|json)\n", *format)
			return ExitUsage
		}
		return ExitOK
	}
}
