// reis is a small command-line key-value store backed by a text file.
package main

import (
	"errors"
	"fmt"
	"os"

	"reis/internal/cmd"
)

var (
	run    = func() error { return cmd.Execute() }
	osExit = os.Exit
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		osExit(1)
	}
}
