package ucsf

// Row-major coordinate mapping, axis 0 slowest. The same two functions
// serve the tile grid and the in-tile sample grids, whatever the file's
// dimensionality.

// Flatten linearizes coords into a flat row-major index over a grid with
// the given per-axis sizes. It panics when coords and sizes disagree in
// length, as a slice index would.
func Flatten(sizes, coords []int) int {
	if len(coords) != len(sizes) {
		panic("ucsf: coordinate dimensionality mismatch")
	}
	index := 0
	for d, size := range sizes {
		index = index*size + coords[d]
	}
	return index
}

// Unflatten recovers the per-axis coordinates of a flat row-major index.
// It is the exact inverse of Flatten for every index in [0, product(sizes)).
func Unflatten(sizes []int, index int) []int {
	coords := make([]int, len(sizes))
	for d := len(sizes) - 1; d >= 0; d-- {
		coords[d] = index % sizes[d]
		index /= sizes[d]
	}
	return coords
}

// product multiplies the elements of sizes. The empty product is 1.
func product(sizes []int) int {
	p := 1
	for _, size := range sizes {
		p *= size
	}
	return p
}
