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

type axisInfoJSON struct {
	Nucleus       string  `json:"nucleus"`
	Points        int     `json:"points"`
	TileSize      int     `json:"tile_size"`
	Tiles         int     `json:"tiles"`
	Padding       int     `json:"padding"`
	Frequency     float32 `json:"frequency_mhz"`
	SpectralWidth float32 `json:"spectral_width_hz"`
	Center        float32 `json:"center_ppm"`
}

type spectrumInfoJSON struct {
	Path       string         `json:"path"`
	Version    int            `json:"format_version"`
	Dimensions int            `json:"dimensions"`
	Components int            `json:"components"`
	Samples    int            `json:"samples"`
	Tiles      int            `json:"tiles"`
	Axes       []axisInfoJSON `json:"axes"`
}

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Print header and axis information for a spectrum",
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
			logger.FromContext(ctx).Debug("spectrum decoded",
				"path", path,
				"dimensions", f.Header.Dimensions,
				"samples", len(f.Data()),
			)

			if jsonOut {
				return printJSON(infoView(path, f))
			}
			return printInfo(path, f)
		},
	}
}

func infoView(path string, f *ucsf.File) spectrumInfoJSON {
	out := spectrumInfoJSON{
		Path:       path,
		Version:    f.Header.FormatVersion,
		Dimensions: f.Header.Dimensions,
		Components: f.Header.Components,
		Samples:    len(f.Data()),
		Tiles:      f.NumTiles(),
	}
	for _, ax := range f.Axes {
		out.Axes = append(out.Axes, axisInfoJSON{
			Nucleus:       ax.Nucleus,
			Points:        ax.DataPoints,
			TileSize:      ax.TileSize,
			Tiles:         ax.NumTiles(),
			Padding:       ax.Padding(),
			Frequency:     ax.Frequency,
			SpectralWidth: ax.SpectralWidth,
			Center:        ax.Center,
		})
	}
	return out
}

func printInfo(path string, f *ucsf.File) error {
	fmt.Printf("file:        %s\n", path)
	fmt.Printf("version:     %d\n", f.Header.FormatVersion)
	fmt.Printf("dimensions:  %d\n", f.Header.Dimensions)
	fmt.Printf("components:  %d\n", f.Header.Components)
	fmt.Printf("samples:     %d\n", len(f.Data()))
	fmt.Printf("tiles:       %d\n", f.NumTiles())
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "AXIS\tNUCLEUS\tPOINTS\tTILE\tTILES\tPADDING\tFREQ (MHZ)\tWIDTH (HZ)\tCENTER (PPM)")
	for i, ax := range f.Axes {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%.3f\t%.3f\t%.3f\n",
			i, ax.Nucleus, ax.DataPoints, ax.TileSize, ax.NumTiles(), ax.Padding(),
			ax.Frequency, ax.SpectralWidth, ax.Center)
	}
	return w.Flush()
}
