package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	ucsf "github.com/hobofan/ucsf-nmr"
	"github.com/hobofan/ucsf-nmr/internal/logger"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

type tileJSON struct {
	Index      int   `json:"index"`
	TileCoords []int `json:"tile_coords"`
	Starts     []int `json:"starts"`
	Lengths    []int `json:"lengths"`
	Samples    int   `json:"samples"`
	Padded     bool  `json:"padded"`
}

func tilesCmd() *cli.Command {
	return &cli.Command{
		Name:      "tiles",
		Usage:     "List the tile layout of a spectrum",
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
			logger.FromContext(ctx).Debug("spectrum decoded", "path", path, "tiles", f.NumTiles())

			counts := f.TileCounts()
			if jsonOut {
				views := make([]tileJSON, 0, f.NumTiles())
				tiles := f.Tiles()
				for tiles.Next() {
					tile := tiles.Tile()
					views = append(views, tileJSON{
						Index:      tile.Index,
						TileCoords: ucsf.Unflatten(counts, tile.Index),
						Starts:     tile.AxisStarts,
						Lengths:    tile.AxisLengths,
						Samples:    tile.Len(),
						Padded:     tilePadded(f, tile),
					})
				}
				return printJSON(views)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tTILE\tSTART\tLENGTH\tSAMPLES\tPADDED")
			tiles := f.Tiles()
			for tiles.Next() {
				tile := tiles.Tile()
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%v\n",
					tile.Index,
					intsString(ucsf.Unflatten(counts, tile.Index)),
					intsString(tile.AxisStarts),
					intsString(tile.AxisLengths),
					tile.Len(),
					tilePadded(f, tile))
			}
			return w.Flush()
		},
	}
}
