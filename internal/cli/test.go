package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/littlebeepers/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// ScenarioResult is the outcome of one scenario file.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Note   string   `json:"note,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run pet scenarios",
		Long: `Run YAML pet scenarios against a scratch in-memory collection.

Each scenario seeds pets, runs creates, visits, releases, and playdates
with scripted or seeded randomness, then checks its assertions. When
golden/<scenario>.golden exists next to the scenario file the trace must
match it as well.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  beepers test ./scenarios
  beepers test ./scenarios --filter "playdate-*"
  beepers test ./scenarios --update
  beepers test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, dir string, cmd *cobra.Command) error {
	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(dir); err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "scenarios directory not found", err)
	}
	files, err := findScenarioFiles(dir, opts.Filter)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to find scenarios", err)
	}

	result := TestResult{Scenarios: make([]ScenarioResult, 0, len(files)), Total: len(files)}
	if len(files) == 0 {
		if f.JSON() {
			return f.Success(result)
		}
		f.Say("No scenarios found.")
		return nil
	}

	for _, file := range files {
		f.VerboseLog("Running %s", file)
		r := runScenario(file, opts.Update)
		result.Scenarios = append(result.Scenarios, r)
		if r.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		sayScenario(f, r)
	}

	if result.Failed > 0 {
		message := fmt.Sprintf("%d scenario(s) failed", result.Failed)
		if f.JSON() {
			if err := f.encode(CLIResponse{
				Status: "error",
				Data:   result,
				Error:  &CLIError{Code: ErrCodeScenario, Message: message},
			}); err != nil {
				return err
			}
		} else {
			f.Say("\nTest Summary: %d passed, %d failed, %d total", result.Passed, result.Failed, result.Total)
		}
		return NewExitError(ExitFailure, message)
	}

	if f.JSON() {
		return f.Success(result)
	}
	f.Say("\nTest Summary: %d passed, %d failed, %d total", result.Passed, result.Failed, result.Total)
	f.Say("✓ All scenarios passed")
	return nil
}

func sayScenario(f *OutputFormatter, r ScenarioResult) {
	if !r.Pass {
		f.Say("✗ %s", r.Name)
		for _, e := range r.Errors {
			f.Say("  %s", e)
		}
		return
	}
	if r.Note != "" {
		f.Say("✓ %s (%s)", r.Name, r.Note)
		return
	}
	f.Say("✓ %s", r.Name)
}

// findScenarioFiles finds all YAML scenario files in a directory. The
// golden/ subdirectory is skipped.
func findScenarioFiles(dir string, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != dir && info.Name() == "golden" {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			matched, err := filepath.Match(filter, strings.TrimSuffix(filepath.Base(path), ext))
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// runScenario loads, runs, and checks one scenario file. With update the
// trace is written as the new golden file instead of being compared.
func runScenario(file string, update bool) ScenarioResult {
	name := filepath.Base(file)
	fail := func(msgs ...string) ScenarioResult {
		return ScenarioResult{Name: name, Errors: msgs}
	}

	scenario, err := harness.LoadScenario(file)
	if err != nil {
		return fail(fmt.Sprintf("Load error: %v", err))
	}
	name = scenario.Name

	result, err := harness.Run(scenario)
	if err != nil {
		return fail(fmt.Sprintf("Execution error: %v", err))
	}
	trace, err := harness.Snapshot(scenario.Name, scenario.SessionID, result)
	if err != nil {
		return fail(fmt.Sprintf("Trace error: %v", err))
	}

	golden := goldenFilePath(file)
	note := ""
	if update {
		if err := writeGolden(golden, trace); err != nil {
			return fail(fmt.Sprintf("Golden update error: %v", err))
		}
		note = "golden updated"
	} else {
		want, err := os.ReadFile(golden)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// assertions only
		case err != nil:
			return fail(fmt.Sprintf("Golden read error: %v", err))
		case !bytes.Equal(want, trace):
			return fail("Golden file mismatch (run with --update to regenerate)")
		}
	}

	if !result.Pass {
		return fail(result.Errors...)
	}
	return ScenarioResult{Name: name, Pass: true, Note: note}
}

// goldenFilePath returns the path to the golden file for a scenario.
func goldenFilePath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

func writeGolden(path string, trace []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create golden directory: %w", err)
	}
	if err := os.WriteFile(path, trace, 0o644); err != nil {
		return fmt.Errorf("write golden file: %w", err)
	}
	return nil
}
