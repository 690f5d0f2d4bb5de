package main

import (
	"context"
	"fmt"

	"github.com/joeydtaylor/pusher-relay/pkg/serverfx"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

var serveCmd = &cli.Command{
	Name:   "serve",
	Usage:  "Start the relay HTTP server",
	Action: serveAction,
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	app := fx.New(serverfx.Module(
		serverfx.WithService(cmd.Root().Name),
		serverfx.WithConfigOptions(configOptions(cmd)...),
	))
	if err := app.Err(); err != nil {
		return cli.Exit(fmt.Errorf("failed to initialize: %w", err), 1)
	}

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return cli.Exit(fmt.Errorf("failed to start server: %w", err), 1)
	}

	select {
	case <-app.Wait():
	case <-ctx.Done():
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		return cli.Exit(fmt.Errorf("failed to stop cleanly: %w", err), 1)
	}
	return nil
}
