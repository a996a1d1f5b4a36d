package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/littlebeepers/internal/care"
	"github.com/roach88/littlebeepers/internal/interaction"
	"github.com/roach88/littlebeepers/internal/pet"
	"github.com/roach88/littlebeepers/internal/playdate"
)

// PlaydateOptions holds flags for the playdate command.
type PlaydateOptions struct {
	*RootOptions
	Pets  []int // collection numbers, in selection order
	Turns int   // stop after this many turns instead of asking
}

// PlaydateResult summarizes a concluded playdate.
type PlaydateResult struct {
	SessionID       string            `json:"session_id"`
	DurationSeconds int               `json:"duration_seconds"`
	Letters         string            `json:"letters"`
	Utterances      []UtteranceResult `json:"utterances"`
	Learned         []LearnedWord     `json:"learned"`
}

// UtteranceResult is one turn of the loop.
type UtteranceResult struct {
	Pet  string `json:"pet"`
	Word string `json:"word"`
}

// LearnedWord is one participant's new word.
type LearnedWord struct {
	Pet      string   `json:"pet"`
	Word     string   `json:"word"`
	Partners []string `json:"partners"`
	Saved    bool     `json:"saved"`
}

// NewPlaydateCommand creates the playdate command.
func NewPlaydateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlaydateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "playdate",
		Short: "Host a playdate between active pets",
		Long: `Host a playdate. Pets take turns saying words they know until you type
'end'. Afterwards every participant learns a new word built from the
letters the whole group knows.

Examples:
  beepers playdate
  beepers playdate --pets 1,3 --turns 6`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				result, err := a.playdate(ctx, opts.Pets, opts.Turns)
				if err != nil {
					return a.fail(err)
				}
				if a.formatter.JSON() {
					return a.formatter.encode(CLIResponse{Status: "ok", Data: result, SessionID: result.SessionID})
				}
				return nil
			})
		},
	}

	cmd.Flags().IntSliceVar(&opts.Pets, "pets", nil, "collection numbers of the participants (see list)")
	cmd.Flags().IntVar(&opts.Turns, "turns", 0, "number of turns before the playdate ends (0 asks after every turn)")

	return cmd
}

// playdate selects participants, runs the turn loop, and concludes.
func (a *app) playdate(ctx context.Context, numbers []int, turns int) (*PlaydateResult, error) {
	sel, err := a.engine.Select(ctx)
	if err != nil {
		return nil, err
	}

	if len(numbers) > 0 {
		err = a.chooseByNumber(ctx, sel, numbers)
	} else {
		err = a.chooseInteractively(sel)
	}
	if err != nil {
		return nil, err
	}

	participants, err := sel.Finish()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errTooFewChosen, err)
	}

	result := &PlaydateResult{}
	var promptErr error
	a.say("\n🎉 The playdate begins! Type 'end' anytime to finish.\n")
	out, err := a.engine.Play(ctx, participants, func(u playdate.Utterance) bool {
		word := u.Word
		if u.Silent {
			word = care.Silent
		}
		result.Utterances = append(result.Utterances, UtteranceResult{Pet: u.Pet, Word: word})
		a.say("%s says: %s", u.Pet, word)

		more := len(result.Utterances) < turns
		if turns <= 0 {
			answer, err := a.prompt.ask("(Press Enter to continue, or type 'end' to finish): ")
			if err != nil && !errors.Is(err, io.EOF) {
				promptErr = err
			}
			more = err == nil && strings.ToLower(answer) != "end"
		}
		if !more {
			a.say("\nProcessing new friendships...")
		}
		return more
	})
	if promptErr != nil {
		a.logger.Warn("input failed, concluding playdate", "error", promptErr)
	}
	if out != nil {
		result.SessionID = out.SessionID
		result.DurationSeconds = interaction.Seconds(out.Duration)
		result.Letters = string(out.Letters)
		for _, r := range out.Results {
			result.Learned = append(result.Learned, LearnedWord{
				Pet:      r.Pet.Name,
				Word:     r.Word,
				Partners: r.Partners,
				Saved:    r.Committed,
			})
			a.say("%s learned a new word: %s", r.Pet.Name, r.Word)
		}
	}
	if err != nil {
		return nil, err
	}

	a.say("\n✅ Playdate ended and logged successfully!\n")
	return result, nil
}

// chooseInteractively adds pets one at a time until the operator enters a
// blank line or every candidate is chosen.
func (a *app) chooseInteractively(sel *playdate.Selection) error {
	for !sel.Exhausted() {
		a.say("\nAvailable pets:")
		for i, rec := range sel.Available() {
			a.say("%d. %s (%s)", i+1, rec.Name, rec.Species)
		}

		answer, err := a.prompt.ask("Choose a pet by number (Enter to stop adding): ")
		if errors.Is(err, io.EOF) || (err == nil && answer == "") {
			return nil
		}
		if err != nil {
			return err
		}

		n, convErr := strconv.Atoi(answer)
		if convErr != nil {
			a.say("Invalid choice.")
			continue
		}
		rec, err := sel.Choose(n - 1)
		if err != nil {
			a.say("Invalid choice.")
			continue
		}
		a.say("Added %s to the playdate!", rec.Name)
	}
	return nil
}

// chooseByNumber adds the pets at the given collection numbers. A number
// naming a released pet, or one already chosen, is an invalid choice.
func (a *app) chooseByNumber(ctx context.Context, sel *playdate.Selection, numbers []int) error {
	records, err := a.keeper.Pets(ctx)
	if err != nil {
		return err
	}
	for _, n := range numbers {
		if n < 1 || n > len(records) {
			return fmt.Errorf("%w: %d (have %d)", playdate.ErrInvalidChoice, n, len(records))
		}
		i := pet.Index(sel.Available(), records[n-1].ID())
		if i < 0 {
			return fmt.Errorf("%w: %s is released or already chosen", playdate.ErrInvalidChoice, records[n-1].Name)
		}
		rec, err := sel.Choose(i)
		if err != nil {
			return err
		}
		a.say("Added %s to the playdate!", rec.Name)
	}
	return nil
}
