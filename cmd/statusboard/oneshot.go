package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/macrat/statusboard/internal/dashboard"
	"github.com/macrat/statusboard/internal/endpoint"
)

func (cmd *StatusboardCommand) isTerminal() bool {
	return cmd.IsTerminal != nil && cmd.IsTerminal()
}

// RunOneshot refreshes d once and prints the text dashboard.
// The exit code is 1 if the refresh failed.
func (cmd *StatusboardCommand) RunOneshot(ctx context.Context, d *dashboard.Dashboard) (exitCode int) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGHUP)
	defer stop()

	if err := d.Refresh(ctx); err != nil {
		return 1
	}

	ascii := cmd.ASCII || !cmd.isTerminal()

	if err := endpoint.WriteStatusText(cmd.OutStream, d, cmd.Config(), ascii); err != nil {
		fmt.Fprintf(cmd.ErrStream, "error: failed to render status: %s\n", err)
		return 1
	}

	return 0
}
