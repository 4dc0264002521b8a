package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/playlog/internal/cli"
	"github.com/vvka-141/playlog/pkg/playlog"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(playlog.ExitPanic)
		}
	}()

	if os.Getenv("PLAYLOG_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(playlog.ExitCodeForError(err))
	}
}
