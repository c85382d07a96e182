package ucsf

// Tile is a read-only view of one tile's valid samples. AxisLengths holds
// the tile's valid extent along every axis (shorter than the tile size on
// a padded boundary tile), AxisStarts the absolute position of its first
// point. Data is a sub-slice of the File's packed buffer, row-major over
// AxisLengths; it must not be modified and is only valid while the File
// is held.
type Tile struct {
	Index       int
	AxisLengths []int
	AxisStarts  []int
	Data        []float32
}

// Len returns the number of valid samples in the tile.
func (t Tile) Len() int { return len(t.Data) }

// Samples returns a single-pass iterator over the tile's samples paired
// with their absolute coordinates.
func (t Tile) Samples() *SampleIter { return &SampleIter{t: t, cur: -1} }

// A Sample pairs one decoded value with its absolute position in the
// spectrum.
type Sample struct {
	Coords []int
	Value  float32
}

// TileIter walks a File's tiles in linear row-major order. Call Next to
// advance, then Tile for the current view. It cannot be restarted; take a
// new iterator from the File instead.
type TileIter struct {
	f   *File
	cur int
}

// Next advances the iterator, reporting whether a tile is available.
func (it *TileIter) Next() bool {
	if it.cur+1 >= it.f.NumTiles() {
		return false
	}
	it.cur++
	return true
}

// Tile returns the tile at the iterator's current position.
func (it *TileIter) Tile() Tile { return it.f.Tile(it.cur) }

// SampleIter walks one tile's valid samples in the tile's row-major
// order. Call Next to advance, then Sample for the current value. It
// cannot be restarted; take a new iterator from the Tile instead.
type SampleIter struct {
	t   Tile
	cur int
}

// Next advances the iterator, reporting whether a sample is available.
func (it *SampleIter) Next() bool {
	if it.cur+1 >= it.t.Len() {
		return false
	}
	it.cur++
	return true
}

// Sample returns the sample at the iterator's current position. Its
// coordinates are the tile-local position offset by the tile's absolute
// start on every axis.
func (it *SampleIter) Sample() Sample {
	coords := Unflatten(it.t.AxisLengths, it.cur)
	for d, start := range it.t.AxisStarts {
		coords[d] += start
	}
	return Sample{Coords: coords, Value: it.t.Data[it.cur]}
}
