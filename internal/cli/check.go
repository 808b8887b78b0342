package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"corpuscheck/internal/report"
	"corpuscheck/internal/runner"
	"corpuscheck/internal/ui/live"
)

// runCheck builds the handler for the check command.
func runCheck(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		// The root directory may precede the flags.
		var root string
		if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
			root = args[0]
			args = args[1:]
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		format := flags.String("format", "text", "Output format: text or json")
		failOn := flags.String("fail-on", "", "Exit-1 threshold: error, warning, or none (default from config)")
		workers := flags.Int("workers", 0, "Parse worker count (0 = config, then one per CPU)")
		uiMode := flags.String("ui", "auto", "UI mode: auto, live, or plain")
		noColor := flags.Bool("no-color", false, "Disable color output")
		outputDir := flags.String("output-dir", "", "Directory for run artifacts (default from config)")
		configPath := flags.String("config", "", "Path to .corpuscheck.yml")
		verbose := flags.Bool("verbose", false, "Stream per-chapter progress to stderr")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		switch {
		case root == "" && flags.NArg() == 1:
			root = flags.Arg(0)
		case root != "" && flags.NArg() == 0:
		default:
			fmt.Fprintln(stderr, "Expected exactly one <root-dir> argument")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		if *format != "text" && *format != "json" {
			fmt.Fprintf(stderr, "invalid format %q (expected text|json)\n", *format)
			return ExitUsage
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitUsage
		}
		if *workers > 0 {
			cfg.Check.Workers = *workers
		}
		if *failOn != "" {
			switch *failOn {
			case "error", "warning", "none":
				cfg.Check.FailOn = *failOn
			default:
				fmt.Fprintf(stderr, "invalid fail-on %q (expected error|warning|none)\n", *failOn)
				return ExitUsage
			}
		}

		decision, err := resolveUIMode(*uiMode, *verbose, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		params := runner.RunParams{
			Root:          root,
			OutputDir:     *outputDir,
			Verbose:       *verbose,
			VerboseWriter: stderr,
			NoColor:       *noColor,
		}
		var controller *live.Controller
		if decision.useLive {
			controller = live.Start(stdout, live.Options{NoColor: *noColor})
			params.Observer = controller
		}

		rep, paths, err := runner.RunAndWrite(context.Background(), cfg, params)
		if controller != nil {
			controller.Close()
			controller.Wait()
		}
		if err != nil {
			fmt.Fprintf(stderr, "corpus-check: %v\n", err)
			return ExitUsage
		}

		if *format == "json" {
			payload, err := report.Marshal(&rep)
			if err != nil {
				fmt.Fprintf(stderr, "corpus-check: %v\n", err)
				return ExitUsage
			}
			if _, err := stdout.Write(payload); err != nil {
				return ExitError
			}
		} else {
			if err := report.RenderText(stdout, &rep, *noColor); err != nil {
				return ExitError
			}
		}
		fmt.Fprintf(stderr, "Results written to %s\n", paths.RunDir())

		if rep.ExceedsThreshold(cfg.Check.FailOn) {
			return ExitError
		}
		return ExitOK
	}
}
