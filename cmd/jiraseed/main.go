// Package main is the entry point for the jiraseed CLI.
//
// jiraseed populates a fresh Jira instance with demonstration data: users,
// projects with components and versions, synthetic issues, and issue links
// between projects. Runs are idempotent; existing users and projects are left
// alone unless a reset is requested.
//
// Commands: populate, plan, dataset export.
//
// For detailed usage information, run:
//
//	jiraseed --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/jiraseed/cmd/jiraseed/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Interrupting a run stops it before the next request.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
