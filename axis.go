package ucsf

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
)

// AxisHeader describes one dimension of the sample grid: the nucleus
// measured along it, its extent in valid data points, how those points are
// cut into tiles, and the spectrometer calibration for the axis. The
// trailing opaque region is kept verbatim in Remainder.
type AxisHeader struct {
	Nucleus       string
	DataPoints    int
	TileSize      int
	Frequency     float32 // Spectrometer frequency, MHz.
	SpectralWidth float32 // Spectral width, Hz.
	Center        float32 // Center of the spectrum, ppm.
	Remainder     []byte
}

// decodeAxisHeader consumes one 128-byte axis record from buf and returns
// it together with the remaining bytes.
func decodeAxisHeader(buf []byte) (AxisHeader, []byte, error) {
	if len(buf) < axisHeaderLen {
		return AxisHeader{}, nil, FormatError("truncated axis record")
	}

	a := AxisHeader{
		Nucleus:       nucleusLabel(buf[axOffNucleus : axOffNucleus+8]),
		DataPoints:    int(binary.BigEndian.Uint32(buf[axOffDataPoints:])),
		TileSize:      int(binary.BigEndian.Uint32(buf[axOffTileSize:])),
		Frequency:     math.Float32frombits(binary.BigEndian.Uint32(buf[axOffFrequency:])),
		SpectralWidth: math.Float32frombits(binary.BigEndian.Uint32(buf[axOffWidth:])),
		Center:        math.Float32frombits(binary.BigEndian.Uint32(buf[axOffCenter:])),
		Remainder:     append([]byte(nil), buf[axOffRemainder:axisHeaderLen]...),
	}
	if a.DataPoints == 0 {
		return AxisHeader{}, nil, FormatError("axis with zero data points")
	}
	if a.TileSize == 0 {
		return AxisHeader{}, nil, FormatError("axis with zero tile size")
	}
	return a, buf[axisHeaderLen:], nil
}

// nucleusLabel decodes a NUL-padded label field, dropping everything from
// the first NUL and trimming trailing spaces.
func nucleusLabel(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return strings.TrimRight(string(field), " ")
}

// NumTiles returns how many tiles the axis is cut into. A partially filled
// final tile still counts.
func (a AxisHeader) NumTiles() int {
	return (a.DataPoints + a.TileSize - 1) / a.TileSize
}

// PaddedSize returns the stored extent of the axis: NumTiles full tiles,
// padding included.
func (a AxisHeader) PaddedSize() int {
	return a.NumTiles() * a.TileSize
}

// Padding returns how many stored points along the axis are zero padding.
// The whole shortfall sits in the final tile.
func (a AxisHeader) Padding() int {
	return a.PaddedSize() - a.DataPoints
}

// TileIsPadded reports whether tile i is the final, partially filled tile
// slot along this axis.
func (a AxisHeader) TileIsPadded(i int) bool {
	return i >= a.DataPoints/a.TileSize
}

// TilePadding returns how many points of tile i are padding: zero for
// interior tiles, the axis overhang for the final one.
func (a AxisHeader) TilePadding(i int) int {
	if !a.TileIsPadded(i) {
		return 0
	}
	return a.Padding()
}

// TileLen returns how many valid points tile i holds along this axis.
func (a AxisHeader) TileLen(i int) int {
	return a.TileSize - a.TilePadding(i)
}

// TileStart returns the absolute position of the first point of tile i
// along this axis.
func (a AxisHeader) TileStart(i int) int {
	return i * a.TileSize
}
