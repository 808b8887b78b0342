package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  corpus-check <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"corpus-check <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("check", "Check a corpus and write the report", []string{
		"corpus-check check <root-dir> [--format=json|text] [--fail-on=error|warning|none]",
		"                   [--workers=N] [--ui=auto|live|plain] [--no-color]",
		"                   [--output-dir=DIR] [--config=PATH] [--verbose]",
	}, runCheck),
	command("validate", "Validate the .corpuscheck.yml config", []string{
		"corpus-check validate [--config=PATH]",
	}, runValidate),
	command("init", "Scaffold .corpuscheck.yml", []string{
		"corpus-check init [dir]",
	}, runInit),
	command("report", "Re-render a saved results.json", []string{
		"corpus-check report <results.json> [--format=json|text] [--no-color]",
	}, runReport),
	command("ingest", "Append run reports to a findings database", []string{
		"corpus-check ingest --db=PATH <results.json>...",
	}, runIngest),
	command("serve", "Serve the findings database over HTTP", []string{
		"corpus-check serve --db=PATH [--addr=HOST:PORT]",
	}, runServe),
	command("version", "Print the version", []string{
		"corpus-check version",
	}, runVersion),
}
