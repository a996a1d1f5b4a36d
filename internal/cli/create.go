package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/littlebeepers/internal/pet"
)

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Hatch a new pet",
		Long: `Hatch a new Little Beeper and add it to the collection.

The pet is born knowing one secret five-letter word, which it says once.
Without a name argument the name is asked for; a blank name becomes
"Unnamed Pet".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				var name string
				if len(args) == 1 {
					name = args[0]
				} else {
					var err error
					name, err = a.prompt.ask("Enter a name for your new pet: ")
					if err != nil && !errors.Is(err, io.EOF) {
						return a.fail(err)
					}
				}

				rec, err := a.create(ctx, name)
				if err != nil {
					return a.fail(err)
				}
				if a.formatter.JSON() {
					return a.formatter.Success(rec)
				}
				return nil
			})
		},
	}

	return cmd
}

// create hatches the pet and announces it.
func (a *app) create(ctx context.Context, name string) (pet.Record, error) {
	rec, err := a.keeper.Create(ctx, name)
	if err != nil {
		return pet.Record{}, err
	}
	a.say("\n✨ %s the %s has joined your collection!", rec.Name, rec.Species)
	if words := rec.Vocabulary.Words(); len(words) > 0 {
		a.say("They already know a secret word: %s", words[0])
	}
	return rec, nil
}
