package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// VisitResult summarizes a finished visit.
type VisitResult struct {
	Pet             string   `json:"pet"`
	Released        bool     `json:"released"`
	DurationSeconds int      `json:"duration_seconds"`
	Spoken          []string `json:"spoken,omitempty"`
	Saved           bool     `json:"saved"` // false when the pet had left the collection
}

// NewVisitCommand creates the visit command.
func NewVisitCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visit [number]",
		Short: "Spend time with one pet",
		Long: `Visit a pet by its collection number (see list), or choose one when no
number is given. During the visit you can view its record, ask it to speak,
release it, or return. Returning records the time spent; releasing is
permanent and records no visit.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				var arg string
				if len(args) == 1 {
					arg = args[0]
				}
				result, err := a.visit(ctx, arg)
				if errors.Is(err, errCancelled) {
					a.say("Cancelled or invalid selection.")
					return nil
				}
				if err != nil {
					return a.fail(err)
				}
				if a.formatter.JSON() {
					return a.formatter.Success(result)
				}
				return nil
			})
		},
	}

	return cmd
}

// visit runs the visit menu until the operator returns or releases the pet.
// End of input counts as returning.
func (a *app) visit(ctx context.Context, arg string) (*VisitResult, error) {
	rec, err := a.choosePet(ctx, arg,
		"Which pet would you like to visit?",
		"Choose a pet by number (or press Enter to cancel): ")
	if err != nil {
		return nil, err
	}
	v, err := a.keeper.Begin(rec)
	if err != nil {
		return nil, err
	}

	result := &VisitResult{Pet: rec.Name}
	a.say("\n--- Visiting %s the %s ---", rec.Name, rec.Species)
	for {
		a.say("\nOptions:")
		a.say("1. View pet details")
		a.say("2. Ask pet to speak")
		a.say("3. Release pet")
		a.say("4. Return to main menu")

		choice, err := a.prompt.ask("Choose an option: ")
		if errors.Is(err, io.EOF) {
			choice = "4"
		} else if err != nil {
			return nil, err
		}

		switch choice {
		case "1":
			details, err := v.Details()
			if err != nil {
				return nil, err
			}
			a.say("%s", details)

		case "2":
			word, _ := v.Speak()
			result.Spoken = append(result.Spoken, word)
			a.say("\n%s speaks a word it knows: %s", rec.Name, word)

		case "3":
			a.say("\nReleasing a pet is permanent. They will be free to explore the world on their own.")
			confirm, err := a.prompt.ask("Are you sure you want to release " + rec.Name + "? (type 'yes' to confirm): ")
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			if strings.ToLower(confirm) != "yes" {
				a.say("Release cancelled.")
				continue
			}
			found, err := v.Release(ctx)
			if err != nil {
				return nil, err
			}
			result.Released, result.Saved = true, found
			a.say("\n%s beeps thankfully for the wonderful time you spent together.", rec.Name)
			a.say("It is thrilled to go explore on its own. Goodbye, friend! 👋")
			return result, nil

		case "4":
			ev, found, err := v.End(ctx)
			if err != nil {
				return nil, err
			}
			result.DurationSeconds, result.Saved = ev.DurationSeconds, found
			if !found {
				a.say("\n%s is no longer in the collection, so nothing was saved.", rec.Name)
			}
			a.say("\n✅ Interaction of %d seconds recorded.\n", ev.DurationSeconds)
			return result, nil

		default:
			a.say("Oops, let's try that again.")
		}
	}
}
