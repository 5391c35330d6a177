// Command cardsearch searches an in-memory trading card corpus from the
// command line or over HTTP.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/cardsearch/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Commands report their own failures; anything else is a usage error
	// from cobra.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCommandError)
	}
	os.Exit(exitErr.Code)
}
