package main

import "github.com/urfave/cli/v3"

var (
	logLevel    string
	logFormat   string
	debug       bool
	jsonOut     bool
	catalogPath string
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func jsonFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "json",
		Usage:       "emit JSON instead of text output",
		Destination: &jsonOut,
	}
}

func catalogFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "catalog",
		Usage:       "path to the catalog database",
		Destination: &catalogPath,
	}
}
