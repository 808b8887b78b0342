package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"corpuscheck/internal/cli"

	"github.com/cucumber/godog"
)

type featureState struct {
	corpusDir   string
	previousWD  string
	stdout      bytes.Buffer
	stderr      bytes.Buffer
	exitCode    int
	initialized bool
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a corpus with contiguous chapters$`, state.aCorpusWithContiguousChapters)
	ctx.Step(`^a corpus with a dangling chapter reference$`, state.aCorpusWithDanglingReference)
	ctx.Step(`^the corpus config is invalid$`, state.theCorpusConfigIsInvalid)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output reports no findings$`, state.theOutputReportsNoFindings)
	ctx.Step(`^the output mentions "([^"]+)"$`, state.theOutputMentions)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the error message points to the invalid field$`, state.theErrorMessagePointsToInvalidField)
}

func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.initialized = false
}

func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
		s.previousWD = ""
	}
	if s.corpusDir != "" {
		_ = os.RemoveAll(s.corpusDir)
		s.corpusDir = ""
	}
}

func (s *featureState) aCorpusWithContiguousChapters() error {
	if err := s.initCorpus(); err != nil {
		return err
	}
	if err := s.writeChapter("swift/01-intro.md", "Introduction", "Welcome to the book.\n"); err != nil {
		return err
	}
	return s.writeChapter("swift/02-types.md", "Types", "All about types.\n")
}

func (s *featureState) aCorpusWithDanglingReference() error {
	if err := s.initCorpus(); err != nil {
		return err
	}
	return s.writeChapter("swift/01-intro.md", "Introduction", "See 第9章 for details.\n")
}

func (s *featureState) theCorpusConfigIsInvalid() error {
	if err := s.initCorpus(); err != nil {
		return err
	}
	return s.writeConfig(invalidConfigYAML())
}

func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "corpus-check" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("expected exit code 0, got %d (stderr: %s)", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

func (s *featureState) theOutputReportsNoFindings() error {
	output := s.stdout.String()
	if !strings.Contains(output, "0 errors, 0 warnings, 0 info findings") {
		return fmt.Errorf("expected a clean findings count, got %q", output)
	}
	return nil
}

func (s *featureState) theOutputMentions(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected %q in output, got %q", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) theErrorMessagePointsToInvalidField() error {
	errOutput := s.stderr.String()
	if !strings.Contains(errOutput, "version") {
		return fmt.Errorf("expected error to mention version, got %q", errOutput)
	}
	return nil
}

func (s *featureState) initCorpus() error {
	if s.initialized {
		return nil
	}
	dir, err := os.MkdirTemp("", "corpus-feature-*")
	if err != nil {
		return fmt.Errorf("create temp corpus: %w", err)
	}
	s.corpusDir = dir
	if err := s.writeConfig(validConfigYAML()); err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	s.initialized = true
	return nil
}

func (s *featureState) writeChapter(rel, title, body string) error {
	path := filepath.Join(s.corpusDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chapter dir: %w", err)
	}
	content := fmt.Sprintf("---\ntitle: %q\n---\n%s", title, body)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write chapter: %w", err)
	}
	return nil
}

func (s *featureState) writeConfig(contents string) error {
	if s.corpusDir == "" {
		return fmt.Errorf("corpus dir is not set")
	}
	path := filepath.Join(s.corpusDir, ".corpuscheck.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func validConfigYAML() string {
	return `version: 1

corpus:
  max_file_bytes: 2097152

check:
  workers: 2
  fail_on: error

output:
  dir: "out"
`
}

func invalidConfigYAML() string {
	return `version: 2

check:
  fail_on: error
`
}
