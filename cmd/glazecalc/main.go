package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/glazecalc/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Tagged operation failures are ExitErrors with ExitFailure and
		// have already been printed in the requested format. Everything
		// else (bad flags, unreadable files) still needs reporting.
		var exitErr *cli.ExitError
		printed := errors.As(err, &exitErr) && exitErr.Code == cli.ExitFailure
		if !printed {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
