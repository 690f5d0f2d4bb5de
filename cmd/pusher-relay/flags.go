package main

import (
	"strings"

	"github.com/joeydtaylor/pusher-relay/pkg/config"
	"github.com/urfave/cli/v3"
)

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to TOML configuration file",
			Sources: cli.EnvVars(config.EnvConfigFile),
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Path to a dotenv file (default: .env when present)",
		},
		&cli.StringFlag{
			Name:    "listen",
			Aliases: []string{"l"},
			Usage:   "Address to bind the HTTP server (default :3000)",
		},
		&cli.StringFlag{
			Name:  "payload-mode",
			Usage: "How POST /send bodies become event data: message or passthrough",
		},
		&cli.DurationFlag{
			Name:  "trigger-timeout",
			Usage: "Upper bound on one provider trigger call",
		},
	}
}

// configOptions maps the flags that were set onto config.Load options.
// Flags win over the environment and the config file.
func configOptions(cmd *cli.Command) []config.Option {
	var opts []config.Option
	if p := cmd.String("config"); p != "" {
		opts = append(opts, config.WithFile(p))
	}
	if p := cmd.String("env-file"); p != "" {
		opts = append(opts, config.WithEnvFile(p))
	}
	if cmd.IsSet("listen") {
		addr := cmd.String("listen")
		opts = append(opts, config.WithOverride(func(c *config.Config) { c.Server.ListenAddress = addr }))
	}
	if cmd.IsSet("payload-mode") {
		mode := config.PayloadMode(strings.ToLower(strings.TrimSpace(cmd.String("payload-mode"))))
		opts = append(opts, config.WithOverride(func(c *config.Config) { c.Relay.PayloadMode = mode }))
	}
	if cmd.IsSet("trigger-timeout") {
		d := cmd.Duration("trigger-timeout")
		opts = append(opts, config.WithOverride(func(c *config.Config) { c.Relay.TriggerTimeout = d }))
	}
	return opts
}
