package api

import (
	"time"

	"github.com/hobofan/ucsf-nmr/internal/catalog"
)

// SpectrumSummary is the wire representation of a cataloged spectrum.
// Axes are included where the handler loaded them.
type SpectrumSummary struct {
	ID         string     `json:"id"`
	SHA1       string     `json:"sha1"`
	Path       string     `json:"path"`
	Dimensions int        `json:"dimensions"`
	Samples    int        `json:"samples"`
	SizeBytes  int64      `json:"size_bytes"`
	Min        *float64   `json:"min,omitempty"`
	Max        *float64   `json:"max,omitempty"`
	ScannedAt  time.Time  `json:"scanned_at"`
	Axes       []AxisView `json:"axes,omitempty"`
}

// AxisView is one axis of a spectrum.
type AxisView struct {
	Position      int     `json:"position"`
	Nucleus       string  `json:"nucleus"`
	Points        int     `json:"points"`
	TileSize      int     `json:"tile_size"`
	Frequency     float64 `json:"frequency"`
	SpectralWidth float64 `json:"spectral_width"`
	Center        float64 `json:"center"`
}

// TileView is the geometry of one tile of a decoded spectrum.
type TileView struct {
	Index      int   `json:"index"`
	TileCoords []int `json:"tile_coords"`
	Starts     []int `json:"starts"`
	Lengths    []int `json:"lengths"`
	Samples    int   `json:"samples"`
	Padded     bool  `json:"padded"`
}

// BoundsView is the sample range of a spectrum.
type BoundsView struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ResponseError is the error body for non-2xx responses.
type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type scanRequest struct {
	Path string `json:"path"`
}

func summaryFromEntry(e *catalog.Entry) SpectrumSummary {
	out := SpectrumSummary{
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
		out.Axes = append(out.Axes, AxisView{
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
