// Package api exposes the spectrum catalog and on-demand decoding over
// HTTP.
package api

import (
	"crypto/sha1"
	"fmt"
	"net/http"
	"os"

	ucsf "github.com/hobofan/ucsf-nmr"
	"github.com/hobofan/ucsf-nmr/internal/catalog"
	"github.com/hobofan/ucsf-nmr/internal/logger"
	"github.com/labstack/echo/v5"
)

// Server carries the handlers' dependencies.
type Server struct {
	catalog *catalog.Catalog
	log     logger.Logger
}

// NewServer wires the handlers to cat. A nil log falls back to the
// default logger.
func NewServer(cat *catalog.Catalog, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{catalog: cat, log: log}
}

// Register installs the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/spectra", s.handleListSpectra)
	e.POST("/v1/spectra", s.handleScanSpectrum)
	e.GET("/v1/spectra/:id", s.handleGetSpectrum)
	e.GET("/v1/spectra/:id/tiles", s.handleSpectrumTiles)
	e.GET("/v1/spectra/:id/bounds", s.handleSpectrumBounds)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListSpectra(c *echo.Context) error {
	var (
		entries []catalog.Entry
		err     error
	)
	if nucleus := c.QueryParam("nucleus"); nucleus != "" {
		entries, err = s.catalog.FindByNucleus(nucleus)
	} else {
		entries, err = s.catalog.List()
	}
	if err != nil {
		return writeServerError(c, err.Error())
	}

	out := make([]SpectrumSummary, 0, len(entries))
	for i := range entries {
		out = append(out, summaryFromEntry(&entries[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleScanSpectrum(c *echo.Context) error {
	req, err := decodeJSON[scanRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if req.Path == "" {
		return writeBadRequest(c, "path is required")
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	f, err := ucsf.Parse(data)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	sha := fmt.Sprintf("%x", sha1.Sum(data))
	entry, err := s.catalog.Add(req.Path, sha, int64(len(data)), f)
	if err != nil {
		return writeServerError(c, err.Error())
	}
	s.log.Info("spectrum scanned",
		"id", entry.ID,
		"path", req.Path,
		"dimensions", entry.Dimensions,
		"samples", entry.Samples,
	)
	return c.JSON(http.StatusCreated, summaryFromEntry(entry))
}

func (s *Server) handleGetSpectrum(c *echo.Context) error {
	entry, err := s.catalog.Get(c.Param("id"))
	if err != nil {
		return writeServerError(c, err.Error())
	}
	if entry == nil {
		return writeNotFound(c, "no spectrum with this id")
	}
	return c.JSON(http.StatusOK, summaryFromEntry(entry))
}

func (s *Server) handleSpectrumTiles(c *echo.Context) error {
	f, entry, err := s.openCataloged(c)
	if f == nil {
		return err
	}

	counts := f.TileCounts()
	views := make([]TileView, 0, f.NumTiles())
	tiles := f.Tiles()
	for tiles.Next() {
		tile := tiles.Tile()
		padded := false
		for d, l := range tile.AxisLengths {
			if l < f.Axes[d].TileSize {
				padded = true
			}
		}
		views = append(views, TileView{
			Index:      tile.Index,
			TileCoords: ucsf.Unflatten(counts, tile.Index),
			Starts:     tile.AxisStarts,
			Lengths:    tile.AxisLengths,
			Samples:    tile.Len(),
			Padded:     padded,
		})
	}
	s.log.Debug("tiles listed", "id", entry.ID, "tiles", len(views))
	return c.JSON(http.StatusOK, views)
}

func (s *Server) handleSpectrumBounds(c *echo.Context) error {
	f, _, err := s.openCataloged(c)
	if f == nil {
		return err
	}

	min, max, err := f.Bounds()
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, "no_bounds_error", err.Error())
	}
	return c.JSON(http.StatusOK, BoundsView{Min: float64(min), Max: float64(max)})
}

// openCataloged looks up the entry for :id and re-decodes its file. A nil
// File means the response has already been written and the returned error
// is the handler's result.
func (s *Server) openCataloged(c *echo.Context) (*ucsf.File, *catalog.Entry, error) {
	entry, err := s.catalog.Get(c.Param("id"))
	if err != nil {
		return nil, nil, writeServerError(c, err.Error())
	}
	if entry == nil {
		return nil, nil, writeNotFound(c, "no spectrum with this id")
	}

	f, err := ucsf.Open(entry.Path)
	if err != nil {
		return nil, nil, writeServerError(c, fmt.Sprintf("decode %s: %v", entry.Path, err))
	}
	return f, entry, nil
}
