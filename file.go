// Package ucsf decodes UCSF (Sparky) NMR spectrum files: a fixed binary
// header, one record per axis, and the sample grid stored as fixed-size
// rectangular tiles with zero padding on boundary tiles. The decoder is
// read-only; it exposes the tiles, their samples with absolute
// coordinates, and a dense padding-free reconstruction.
package ucsf

import "math"

// File is a decoded spectrum: the file header, its axes in file order,
// and every valid sample. A File is built once by Parse and never mutated.
//
// Samples live in a single packed buffer in tile-major order: tiles in
// row-major order over the tile grid (axis 0 slowest), each tile row-major
// over its own valid lengths, padding already dropped. Tile boundaries are
// kept as cumulative offsets, so tile i spans offsets[i]:offsets[i+1].
type File struct {
	Header FileHeader
	Axes   []AxisHeader

	data    []float32
	offsets []int
}

// Data returns the packed sample buffer in tile-major storage order. The
// slice is shared with the File and must not be modified.
func (f *File) Data() []float32 { return f.data }

// NumTiles returns the total number of tiles in the file.
func (f *File) NumTiles() int { return len(f.offsets) - 1 }

// PointCounts returns the valid extent of every axis, in axis order.
func (f *File) PointCounts() []int {
	points := make([]int, len(f.Axes))
	for d, ax := range f.Axes {
		points[d] = ax.DataPoints
	}
	return points
}

// TileCounts returns the number of tiles along every axis, in axis order.
func (f *File) TileCounts() []int {
	counts := make([]int, len(f.Axes))
	for d, ax := range f.Axes {
		counts[d] = ax.NumTiles()
	}
	return counts
}

// PaddedCounts returns the stored extent of every axis, padding included.
func (f *File) PaddedCounts() []int {
	padded := make([]int, len(f.Axes))
	for d, ax := range f.Axes {
		padded[d] = ax.PaddedSize()
	}
	return padded
}

// Tile returns a view of the tile at linear row-major index i. It panics
// when i is out of range, as a slice index would.
func (f *File) Tile(i int) Tile {
	tc := Unflatten(f.TileCounts(), i)
	lens := make([]int, len(f.Axes))
	starts := make([]int, len(f.Axes))
	for d, ax := range f.Axes {
		lens[d] = ax.TileLen(tc[d])
		starts[d] = ax.TileStart(tc[d])
	}
	return Tile{
		Index:       i,
		AxisLengths: lens,
		AxisStarts:  starts,
		Data:        f.data[f.offsets[i]:f.offsets[i+1]],
	}
}

// Tiles returns a single-pass iterator over every tile in linear
// row-major order. A fresh iterator starts over from the File.
func (f *File) Tiles() *TileIter { return &TileIter{f: f, cur: -1} }

// DenseData reconstructs the spectrum as a fresh padding-free buffer,
// row-major over the true per-axis point counts. Every valid sample of
// every tile lands at Flatten(PointCounts, coords); no padding value is
// carried over.
func (f *File) DenseData() []float32 {
	points := f.PointCounts()
	dense := make([]float32, product(points))
	tiles := f.Tiles()
	for tiles.Next() {
		samples := tiles.Tile().Samples()
		for samples.Next() {
			s := samples.Sample()
			dense[Flatten(points, s.Coords)] = s.Value
		}
	}
	return dense
}

// Bounds scans the spectrum once and returns its smallest and largest
// sample. NaN samples are ignored; when nothing remains to compare Bounds
// returns ErrNoBounds.
func (f *File) Bounds() (min, max float32, err error) {
	found := false
	for _, v := range f.data {
		if math.IsNaN(float64(v)) {
			continue
		}
		if !found {
			min, max = v, v
			found = true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if !found {
		return 0, 0, ErrNoBounds
	}
	return min, max, nil
}
