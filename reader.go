package ucsf

// Resources:
// https://www.cgl.ucsf.edu/home/sparky/manual/files.html (UCSF format, axis records)
// https://nmrglue.readthedocs.io/en/latest/reference/fileio.html#module-nmrglue.fileio.sparky
//
// The sample stream always stores full, rectangular, tile-size-aligned
// blocks; the valid region of a boundary tile is narrower. Extraction is
// the single place reconciling bytes consumed from the stream with samples
// that are semantically meaningful.

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Decode reads a UCSF spectrum from r and parses it.
func Decode(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a UCSF spectrum from data. Everything the returned File
// keeps is copied out of data, so the caller may recycle or unmap the
// buffer afterwards. Bytes beyond the declared sample stream are ignored.
func Parse(data []byte) (*File, error) {
	hdr, rest, err := decodeFileHeader(data)
	if err != nil {
		return nil, err
	}

	axes := make([]AxisHeader, hdr.Dimensions)
	for i := range axes {
		if axes[i], rest, err = decodeAxisHeader(rest); err != nil {
			return nil, err
		}
	}

	f := &File{Header: hdr, Axes: axes}
	if err := f.extractSamples(rest); err != nil {
		return nil, err
	}
	return f, nil
}

// extractSamples decodes the raw big-endian sample stream into the packed
// buffer, dropping boundary-tile padding. On disk every tile occupies a
// full block of product(TileSize) samples; the packed buffer keeps only
// each tile's valid region, so a tile's offset is the cumulative size of
// every tile before it, not a multiple of its own size.
func (f *File) extractSamples(raw []byte) error {
	dims := len(f.Axes)
	sizes := make([]int, dims)  // full tile extent per axis
	counts := make([]int, dims) // tiles per axis
	padded := make([]int, dims) // stored extent per axis
	points := make([]int, dims) // valid extent per axis
	for d, ax := range f.Axes {
		sizes[d] = ax.TileSize
		counts[d] = ax.NumTiles()
		padded[d] = ax.PaddedSize()
		points[d] = ax.DataPoints
	}

	stored, ok := checkedProduct(padded)
	if !ok || stored > math.MaxInt/sampleLen {
		return FormatError("sample stream too large to address")
	}
	if need := stored * sampleLen; len(raw) < need {
		return FormatError(fmt.Sprintf("sample stream holds %d bytes, need %d", len(raw), need))
	}

	// Row strides inside one stored tile block.
	strides := make([]int, dims)
	stride := 1
	for d := dims - 1; d >= 0; d-- {
		strides[d] = stride
		stride *= sizes[d]
	}
	tileBlock := product(sizes)

	numTiles := product(counts)
	f.data = make([]float32, product(points))
	f.offsets = make([]int, numTiles+1)

	lens := make([]int, dims)
	di := 0
	for t := 0; t < numTiles; t++ {
		tc := Unflatten(counts, t)
		for d, ax := range f.Axes {
			lens[d] = ax.TileLen(tc[d])
		}
		block := raw[t*tileBlock*sampleLen : (t+1)*tileBlock*sampleLen]
		di = copyValidRegion(f.data, di, block, strides, lens, 0, 0)
		f.offsets[t+1] = di
	}
	return nil
}

// copyValidRegion walks the valid region of one stored tile block in
// row-major order and decodes it into dst starting at index di, the
// innermost axis as one contiguous run. It returns the next free index.
func copyValidRegion(dst []float32, di int, block []byte, strides, lens []int, dim, off int) int {
	if dim == len(lens)-1 {
		base := off * sampleLen
		for k := 0; k < lens[dim]; k++ {
			dst[di] = math.Float32frombits(binary.BigEndian.Uint32(block[base+k*sampleLen:]))
			di++
		}
		return di
	}
	for j := 0; j < lens[dim]; j++ {
		di = copyValidRegion(dst, di, block, strides, lens, dim+1, off+j*strides[dim])
	}
	return di
}

// checkedProduct multiplies the elements of sizes, reporting false on
// overflow.
func checkedProduct(sizes []int) (int, bool) {
	p := 1
	for _, size := range sizes {
		if size != 0 && p > math.MaxInt/size {
			return 0, false
		}
		p *= size
	}
	return p, true
}
