package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/littlebeepers/internal/pet"
)

// PetListing is one entry of the list output.
type PetListing struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Status  string `json:"status"`
	Words   int    `json:"words"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every pet in the collection",
		Long: `List every pet, released ones included, numbered by collection position.
The numbers are the ones visit, report, sample, and playdate --pets accept.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				records, err := a.keeper.Pets(ctx)
				if err != nil {
					return a.fail(err)
				}
				listing := listPets(records)

				if a.formatter.JSON() {
					return a.formatter.Success(listing)
				}
				if len(listing) == 0 {
					a.say("Hmm... I think all the pets are hiding right now.")
					return nil
				}
				for _, l := range listing {
					a.say("%d. %s (%s, %s) - %d word(s)", l.Number, l.Name, l.Species, l.Status, l.Words)
				}
				return nil
			})
		},
	}

	return cmd
}

func listPets(records []pet.Record) []PetListing {
	out := make([]PetListing, len(records))
	for i, rec := range records {
		out[i] = PetListing{
			Number:  i + 1,
			Name:    rec.Name,
			Species: rec.Species,
			Status:  status(rec),
			Words:   rec.Vocabulary.Len(),
		}
	}
	return out
}
