package main

import (
	"context"
	"fmt"

	"github.com/joeydtaylor/pusher-relay/pkg/config"
	"github.com/urfave/cli/v3"
)

var checkConfigCmd = &cli.Command{
	Name:  "check-config",
	Usage: "Load and validate the configuration, then print it with secrets masked",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := config.Load(configOptions(cmd)...)
		if err != nil {
			for _, k := range config.MissingSettings(err) {
				fmt.Fprintf(cmd.Root().ErrWriter, "missing: %s\n", k)
			}
			return cli.Exit(fmt.Errorf("invalid configuration: %w", err), 1)
		}
		fmt.Fprintf(cmd.Root().Writer, "Configuration is valid\n\n%s\n", cfg)
		return nil
	},
}
