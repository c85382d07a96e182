package main

import (
	"context"
	"fmt"

	ucsf "github.com/hobofan/ucsf-nmr"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

func boundsCmd() *cli.Command {
	return &cli.Command{
		Name:      "bounds",
		Usage:     "Print the smallest and largest sample of a spectrum",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errors.New("missing spectrum file argument")
			}
			f, err := ucsf.Open(path)
			if err != nil {
				return errors.Wrapf(err, "open %s", path)
			}

			min, max, err := f.Bounds()
			if err != nil {
				return errors.Wrapf(err, "bounds of %s", path)
			}
			if jsonOut {
				return printJSON(map[string]float32{"min": min, "max": max})
			}
			fmt.Printf("min: %g\nmax: %g\n", min, max)
			return nil
		},
	}
}
