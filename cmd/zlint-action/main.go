package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Version is set at build time via -ldflags "-X main.Version=...". It is
// sent as the download User-Agent; --version is the ZLint release input.
var Version = "dev"

func main() {
	// No cancellation: once started, a download or lint pass runs to completion.
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		// Errors from the run itself were already logged through the
		// selected logger; anything else came from cobra's flag parsing.
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
