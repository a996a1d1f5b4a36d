package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

// SampleResult is the JSON payload of the sample command.
type SampleResult struct {
	Pet   string   `json:"pet"`
	Words []string `json:"words"`
	Path  string   `json:"path"`
}

// NewSampleCommand creates the sample command.
func NewSampleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample [number]",
		Short: "Record a pet's vocabulary as a WAV file",
		Long: `Render every word a pet knows as beeps and save them to audio_dir as
<Name>_vocab_YYYYMMDD.wav. Released pets can be sampled too.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				var arg string
				if len(args) == 1 {
					arg = args[0]
				}
				result, err := a.sample(ctx, arg)
				if errors.Is(err, errCancelled) {
					a.say("Invalid selection.")
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

func (a *app) sample(ctx context.Context, arg string) (*SampleResult, error) {
	rec, err := a.choosePet(ctx, arg,
		"Select a pet to create a voice sample for:",
		"Your choice: ")
	if err != nil {
		return nil, err
	}

	words := rec.Vocabulary.Words()
	a.say("\nGenerating voice sample for %s...", rec.Name)
	path, err := a.sampler.SaveSample(a.cfg.AudioDir, rec.Name, words, a.now())
	if err != nil {
		return nil, err
	}
	a.say("\n✅ Success! Audio sample saved to: %s", path)
	return &SampleResult{Pet: rec.Name, Words: words, Path: path}, nil
}
