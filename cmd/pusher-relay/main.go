package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// Version is set during build using ldflags
var Version = "dev"

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "pusher-relay",
		Version: Version,
		Usage:   "Relay HTTP POSTs to Pusher Channels",
		Flags:   configFlags(),
		Action:  serveAction,
		Commands: []*cli.Command{
			serveCmd,
			checkConfigCmd,
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
