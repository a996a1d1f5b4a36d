package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/littlebeepers/internal/schema"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Source string                   `json:"source"`
	Errors []schema.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check the pet collection for problems",
		Long: `Check the persisted pet collection against its schema.

Reports unknown or mistyped fields, duplicate identities (same name and
spawn date), records holding both a legacy word and a word list, records
with no vocabulary, unreadable timestamps, and malformed history events.

Without a file the configured collection is checked, whichever backend it
uses. A file argument checks that JSON document directly.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runValidateFile(rootOpts, args[0], cmd)
			}
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				raw, err := a.store.Raw(ctx)
				if err != nil {
					return outputValidateError(a.formatter, ErrCodeStore, err.Error(), nil)
				}
				return runValidate(a.formatter, a.cfg.DataPath, raw)
			})
		},
	}

	return cmd
}

func runValidateFile(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return outputValidateError(formatter, ErrCodeStore, fmt.Sprintf("read %s: %v", path, err), nil)
	}
	return runValidate(formatter, path, raw)
}

func runValidate(formatter *OutputFormatter, source string, raw []byte) error {
	formatter.VerboseLog("Validating %s (%d bytes)", source, len(raw))

	if errs := schema.Validate(raw); len(errs) > 0 {
		return outputValidationErrors(formatter, source, errs)
	}
	return outputValidateSuccess(formatter, source)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, source string) error {
	if formatter.JSON() {
		return formatter.Success(ValidationResult{Valid: true, Source: source})
	}

	fmt.Fprintf(formatter.Writer, "✓ %s is valid\n", source)
	return nil
}

// outputValidateError outputs a single validation error.
func outputValidateError(formatter *OutputFormatter, code, message string, details any) error {
	_ = formatter.Error(code, message, details)
	// Unreadable input is a command-level error (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, source string, errs []schema.ValidationError) error {
	if formatter.JSON() {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Source: source,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintf(formatter.Writer, "✗ %s failed validation\n", source)
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
