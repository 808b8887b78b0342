package cli

import (
	"fmt"
	"io"

	"corpuscheck/internal/config"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		if len(args) > 1 {
			fmt.Fprintln(stderr, "Too many arguments")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		path, err := config.Scaffold(dir)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", path)
		return ExitOK
	}
}
