// Command beepers keeps a collection of Little Beepers: small creatures
// that speak short words of home-row letters and learn new ones from each
// other at playdates.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/littlebeepers/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "beepers:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
