package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/nxvalidate/nxvalidate"
	"github.com/nxvalidate/nxvalidate/internal/cli"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(nxvalidate.ExitGeneralError)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(nxvalidate.ExitCodeForError(err))
	}
}
