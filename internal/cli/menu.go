package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
)

const goodbye = "\nGoodbye! Your pets will be happily entertaining themselves while you are away.\n"

// runMenu is the interactive shell. Session failures are reported and the
// operator lands back at the menu; only end of input or Exit leaves it.
func runMenu(opts *RootOptions, cmd *cobra.Command) error {
	return withApp(opts, cmd, func(ctx context.Context, a *app) error {
		a.say("\n👾 Welcome to Little Beepers!")
		a.say("Discover and care for your own unique sound-making companions. What will they have to say?\n")

		for {
			a.say("=== Main Menu ===")
			a.say("1. Create a new pet")
			a.say("2. Visit an existing pet")
			a.say("3. Host a playdate")
			a.say("4. Exit")

			choice, err := a.prompt.ask("What would you like to do? ")
			if errors.Is(err, io.EOF) {
				a.say(goodbye)
				return nil
			}
			if err != nil {
				return a.fail(err)
			}

			switch choice {
			case "1":
				err = a.menuCreate(ctx)
			case "2":
				_, err = a.visit(ctx, "")
			case "3":
				_, err = a.playdate(ctx, nil, 0)
			case "4":
				a.say(goodbye)
				return nil
			default:
				a.say("Hmm... that doesn't seem right. Please try again.")
				continue
			}

			if err != nil {
				if ctx.Err() != nil {
					return a.fail(err)
				}
				_, _, message := explain(err)
				a.logger.Debug("session ended early", "error", err)
				a.say("%s", message)
			}
			a.say("")
		}
	})
}

func (a *app) menuCreate(ctx context.Context) error {
	name, err := a.prompt.ask("Enter a name for your new pet: ")
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	_, err = a.create(ctx, name)
	return err
}
