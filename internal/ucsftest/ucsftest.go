// Package ucsftest builds tiny spectrum images for tests in other packages.
package ucsftest

import (
	"encoding/binary"
	"math"
)

// Build writes a spectrum with one axis per nucleus, every axis points
// long with the given tile size, and fill stored at every position.
func Build(nuclei []string, points, tile int, fill float32) []byte {
	hdr := make([]byte, 180)
	copy(hdr, "UCSF NMR")
	hdr[10] = byte(len(nuclei))
	hdr[11] = 1
	binary.BigEndian.PutUint16(hdr[12:14], 2)

	buf := hdr
	stored := 1
	for _, nucleus := range nuclei {
		rec := make([]byte, 128)
		copy(rec, nucleus)
		binary.BigEndian.PutUint32(rec[8:12], uint32(points))
		binary.BigEndian.PutUint32(rec[16:20], uint32(tile))
		binary.BigEndian.PutUint32(rec[20:24], math.Float32bits(500.13))
		binary.BigEndian.PutUint32(rec[24:28], math.Float32bits(6000))
		binary.BigEndian.PutUint32(rec[28:32], math.Float32bits(4.7))
		buf = append(buf, rec...)
		stored *= (points + tile - 1) / tile * tile
	}

	var sample [4]byte
	binary.BigEndian.PutUint32(sample[:], math.Float32bits(fill))
	for i := 0; i < stored; i++ {
		buf = append(buf, sample[:]...)
	}
	return buf
}
