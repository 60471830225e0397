package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/quantify/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // Build-time injected version string.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
