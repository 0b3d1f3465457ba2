package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spiffcs/elapsed/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
