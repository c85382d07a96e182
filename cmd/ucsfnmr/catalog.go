package main

import (
	"context"
	"crypto/sha1"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	ucsf "github.com/hobofan/ucsf-nmr"
	"github.com/hobofan/ucsf-nmr/internal/catalog"
	"github.com/hobofan/ucsf-nmr/internal/logger"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

type entryAxisJSON struct {
	Position      int     `json:"position"`
	Nucleus       string  `json:"nucleus"`
	Points        int     `json:"points"`
	TileSize      int     `json:"tile_size"`
	Frequency     float64 `json:"frequency_mhz"`
	SpectralWidth float64 `json:"spectral_width_hz"`
	Center        float64 `json:"center_ppm"`
}

type entryJSON struct {
	ID         string          `json:"id"`
	SHA1       string          `json:"sha1"`
	Path       string          `json:"path"`
	Dimensions int             `json:"dimensions"`
	Samples    int             `json:"samples"`
	SizeBytes  int64           `json:"size_bytes"`
	Min        *float64        `json:"min,omitempty"`
	Max        *float64        `json:"max,omitempty"`
	ScannedAt  time.Time       `json:"scanned_at"`
	Axes       []entryAxisJSON `json:"axes,omitempty"`
}

func catalogCmd() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Maintain the local spectrum catalog",
		Commands: []*cli.Command{
			catalogScanCmd(),
			catalogListCmd(),
			catalogShowCmd(),
		},
	}
}

func catalogScanCmd() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Decode spectra and record them in the catalog",
		ArgsUsage: "<file>...",
		Flags:     []cli.Flag{catalogFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return errors.New("missing spectrum file arguments")
			}
			log := logger.FromContext(ctx)

			cat, _, err := openCatalog(LoadConfig())
			if err != nil {
				return err
			}
			defer cat.Close()

			for _, path := range cmd.Args().Slice() {
				entry, err := scanIntoCatalog(cat, path)
				if err != nil {
					return errors.Wrapf(err, "scan %s", path)
				}
				log.Info("spectrum cataloged",
					"id", entry.ID,
					"path", path,
					"dimensions", entry.Dimensions,
					"samples", entry.Samples,
				)
			}
			return nil
		},
	}
}

func catalogListCmd() *cli.Command {
	var nucleus string
	return &cli.Command{
		Name:  "list",
		Usage: "List cataloged spectra",
		Flags: []cli.Flag{
			catalogFlag(),
			jsonFlag(),
			&cli.StringFlag{
				Name:        "nucleus",
				Usage:       "only spectra observing this nucleus",
				Destination: &nucleus,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cat, _, err := openCatalog(LoadConfig())
			if err != nil {
				return err
			}
			defer cat.Close()

			var entries []catalog.Entry
			if nucleus != "" {
				entries, err = cat.FindByNucleus(nucleus)
			} else {
				entries, err = cat.List()
			}
			if err != nil {
				return errors.Wrap(err, "list catalog")
			}

			if jsonOut {
				views := make([]entryJSON, 0, len(entries))
				for i := range entries {
					views = append(views, entryView(&entries[i]))
				}
				return printJSON(views)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPATH\tDIM\tSAMPLES\tSIZE\tMIN\tMAX\tSCANNED")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
					e.ID, e.Path, e.Dimensions, e.Samples, e.SizeBytes,
					nullFloat(e.Min), nullFloat(e.Max),
					e.ScannedAt.Local().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func catalogShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one catalog entry with its axes",
		ArgsUsage: "<id>",
		Flags:     []cli.Flag{catalogFlag(), jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return errors.New("missing catalog id argument")
			}

			cat, _, err := openCatalog(LoadConfig())
			if err != nil {
				return err
			}
			defer cat.Close()

			entry, err := cat.Get(id)
			if err != nil {
				return errors.Wrapf(err, "load entry %s", id)
			}
			if entry == nil {
				return errors.Errorf("no catalog entry %s", id)
			}

			if jsonOut {
				return printJSON(entryView(entry))
			}

			fmt.Printf("id:          %s\n", entry.ID)
			fmt.Printf("sha1:        %s\n", entry.SHA1)
			fmt.Printf("path:        %s\n", entry.Path)
			fmt.Printf("dimensions:  %d\n", entry.Dimensions)
			fmt.Printf("samples:     %d\n", entry.Samples)
			fmt.Printf("size:        %d\n", entry.SizeBytes)
			fmt.Printf("min:         %s\n", nullFloat(entry.Min))
			fmt.Printf("max:         %s\n", nullFloat(entry.Max))
			fmt.Printf("scanned:     %s\n", entry.ScannedAt.Local().Format(time.RFC3339))
			fmt.Println()

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "AXIS\tNUCLEUS\tPOINTS\tTILE\tFREQ (MHZ)\tWIDTH (HZ)\tCENTER (PPM)")
			for _, ax := range entry.Axes {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%.3f\t%.3f\t%.3f\n",
					ax.Position, ax.Nucleus, ax.Points, ax.TileSize,
					ax.Frequency, ax.SpectralWidth, ax.Center)
			}
			return w.Flush()
		},
	}
}

func openCatalog(cfg Config) (*catalog.Catalog, string, error) {
	path, err := resolveCatalogPath(cfg)
	if err != nil {
		return nil, "", errors.Wrap(err, "resolve catalog path")
	}
	cat, err := catalog.Open(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, "open catalog %s", path)
	}
	return cat, path, nil
}

func scanIntoCatalog(cat *catalog.Catalog, path string) (*catalog.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ucsf.Parse(data)
	if err != nil {
		return nil, err
	}
	sha := fmt.Sprintf("%x", sha1.Sum(data))
	return cat.Add(path, sha, int64(len(data)), f)
}

func entryView(e *catalog.Entry) entryJSON {
	out := entryJSON{
		ID:         e.ID,
		SHA1:       e.SHA1,
		Path:       e.Path,
		Dimensions: e.Dimensions,
		Samples:    e.Samples,
		SizeBytes:  e.SizeBytes,
		ScannedAt:  e.ScannedAt,
	}
	if e.Min.Valid {
		min := e.Min.Float64
		out.Min = &min
	}
	if e.Max.Valid {
		max := e.Max.Float64
		out.Max = &max
	}
	for _, ax := range e.Axes {
		out.Axes = append(out.Axes, entryAxisJSON{
			Position:      ax.Position,
			Nucleus:       ax.Nucleus,
			Points:        ax.Points,
			TileSize:      ax.TileSize,
			Frequency:     ax.Frequency,
			SpectralWidth: ax.SpectralWidth,
			Center:        ax.Center,
		})
	}
	return out
}
