package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	ucsf "github.com/hobofan/ucsf-nmr"
	"github.com/hobofan/ucsf-nmr/internal/logger"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

type denseDumpJSON struct {
	Points []int     `json:"points"`
	Values []float32 `json:"values"`
}

func dumpCmd() *cli.Command {
	var (
		format string
		output string
	)
	return &cli.Command{
		Name:      "dump",
		Usage:     "Write the dense sample grid of a spectrum",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (csv, json)",
				Value:       "csv",
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write to a file instead of stdout",
				Destination: &output,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errors.New("missing spectrum file argument")
			}
			f, err := ucsf.Open(path)
			if err != nil {
				return errors.Wrapf(err, "open %s", path)
			}

			out := io.Writer(os.Stdout)
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return errors.Wrapf(err, "create %s", output)
				}
				defer file.Close()
				out = file
			}

			logger.FromContext(ctx).Debug("dumping dense grid",
				"path", path,
				"format", format,
				"samples", len(f.Data()),
			)

			switch format {
			case "csv":
				return dumpCSV(out, f)
			case "json":
				return dumpJSON(out, f)
			default:
				return errors.Errorf("unknown format %q", format)
			}
		},
	}
}

// dumpCSV writes one row per grid point: the coordinates, then the value.
func dumpCSV(w io.Writer, f *ucsf.File) error {
	cw := csv.NewWriter(w)
	points := f.PointCounts()

	header := make([]string, 0, len(points)+1)
	for i := range points {
		header = append(header, fmt.Sprintf("i%d", i))
	}
	header = append(header, "value")
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(points)+1)
	for index, v := range f.DenseData() {
		for d, c := range ucsf.Unflatten(points, index) {
			record[d] = strconv.Itoa(c)
		}
		record[len(points)] = strconv.FormatFloat(float64(v), 'g', -1, 32)
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// dumpJSON writes the grid shape and the row-major values in one document.
func dumpJSON(w io.Writer, f *ucsf.File) error {
	return json.NewEncoder(w).Encode(denseDumpJSON{
		Points: f.PointCounts(),
		Values: f.DenseData(),
	})
}
