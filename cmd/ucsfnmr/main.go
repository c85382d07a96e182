package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hobofan/ucsf-nmr/internal/logger"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "ucsfnmr",
		Usage: "Inspect UCSF (Sparky) NMR spectrum files",
		Flags: loggingFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			applyLoggingConfig(cmd, LoadConfig())
			if debug {
				logLevel = "debug"
			}
			return logger.WithContext(ctx, logger.Build(logFormat, logLevel)), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			infoCmd(),
			tilesCmd(),
			dumpCmd(),
			boundsCmd(),
			catalogCmd(),
			serveCmd(),
			versionCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
