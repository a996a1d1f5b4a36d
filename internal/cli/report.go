package cli

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/littlebeepers/internal/pet"
	"github.com/roach88/littlebeepers/internal/report"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Save bool // write the pet report to report_dir
	HTML bool // render the saved report as HTML
}

// ReportResult is the JSON payload of the report command.
type ReportResult struct {
	Summary report.Summary `json:"summary"`
	Pet     string         `json:"pet,omitempty"`
	Report  string         `json:"report,omitempty"`
	Path    string         `json:"path,omitempty"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report [number]",
		Short: "Show the collection dashboard and pet status reports",
		Long: `Show collection totals, then a detailed Markdown status report.

With a pet number the report is printed for that pet and --save writes it
to report_dir. Without one, pets are chosen from a menu until you enter Q.

Examples:
  beepers report
  beepers report 2 --save
  beepers report 2 --save --html`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				if len(args) == 1 {
					return a.reportOne(ctx, args[0], opts)
				}
				return a.dashboard(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Save, "save", false, "save the pet report to report_dir")
	cmd.Flags().BoolVar(&opts.HTML, "html", false, "save as HTML instead of Markdown")

	return cmd
}

func (a *app) reportOne(ctx context.Context, arg string, opts *ReportOptions) error {
	records, err := a.keeper.Pets(ctx)
	if err != nil {
		return a.fail(err)
	}
	summary := report.Summarize(records)
	rec, err := a.choosePet(ctx, arg, "", "")
	if err != nil {
		return a.fail(err)
	}

	content, err := report.PetReport(rec, a.now())
	if err != nil {
		return a.fail(err)
	}
	result := ReportResult{Summary: summary, Pet: rec.Name, Report: content}
	if opts.Save {
		if result.Path, err = report.Save(a.cfg.ReportDir, rec.Name, content, a.now(), opts.HTML); err != nil {
			return a.fail(err)
		}
	}

	if a.formatter.JSON() {
		return a.formatter.Success(result)
	}
	a.say("%s", strings.TrimSuffix(summary.Text(), "\n"))
	a.printReport(content)
	if result.Path != "" {
		a.say("\n✅ Report saved successfully to: %s", result.Path)
	}
	return nil
}

// dashboard prints the totals and then offers per-pet reports until the
// operator quits or input ends.
func (a *app) dashboard(ctx context.Context, opts *ReportOptions) error {
	records, err := a.keeper.Pets(ctx)
	if err != nil {
		return a.fail(err)
	}
	summary := report.Summarize(records)
	if a.formatter.JSON() {
		return a.formatter.Success(ReportResult{Summary: summary})
	}

	a.say("%s", strings.TrimSuffix(summary.Text(), "\n"))
	if len(records) == 0 {
		return nil
	}

	for {
		a.say("Select a pet for a detailed report:")
		for i, rec := range records {
			a.say("  %d. %s", i+1, rec.Name)
		}
		a.say("  Q. Quit")

		choice, err := a.prompt.ask("Your choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return a.fail(err)
		}
		if strings.EqualFold(choice, "q") {
			return nil
		}

		n, convErr := strconv.Atoi(choice)
		if convErr != nil || n < 1 || n > len(records) {
			a.say("Invalid choice, please try again.")
			continue
		}
		if err := a.offerReport(records[n-1], opts); err != nil {
			return a.fail(err)
		}
		a.say("\nReturning to selection...\n")
	}
}

func (a *app) offerReport(rec pet.Record, opts *ReportOptions) error {
	content, err := report.PetReport(rec, a.now())
	if err != nil {
		return err
	}
	a.printReport(content)

	save := opts.Save
	if !save {
		answer, err := a.prompt.ask("Save this report to a file? (y/n): ")
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		save = strings.EqualFold(answer, "y")
	}
	if !save {
		return nil
	}
	path, err := report.Save(a.cfg.ReportDir, rec.Name, content, a.now(), opts.HTML)
	if err != nil {
		return err
	}
	a.say("\n✅ Report saved successfully to: %s", path)
	return nil
}

func (a *app) printReport(content string) {
	rule := strings.Repeat("=", 50)
	a.say("\n%s", rule)
	a.say("%s", strings.TrimSuffix(content, "\n"))
	a.say("%s\n", rule)
}
