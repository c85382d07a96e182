package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Set via -ldflags at release build time.
var (
	version   = "dev"
	commit    = ""
	buildTime = ""
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("version:    %s\n", version)
			if commit != "" {
				fmt.Printf("commit:     %s\n", commit)
			}
			if buildTime != "" {
				fmt.Printf("build time: %s\n", buildTime)
			}
			return nil
		},
	}
}
