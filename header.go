package ucsf

import (
	"bytes"
	"encoding/binary"
)

// FileHeader is the fixed preamble of a UCSF file: how many axes the
// spectrum has, how many components each data point carries and the format
// version. The free-form trailing region is kept verbatim in Remainder and
// never interpreted.
type FileHeader struct {
	Dimensions    int
	Components    int
	FormatVersion int
	Remainder     []byte
}

// decodeFileHeader consumes the 180-byte preamble from buf and returns the
// header together with the remaining bytes. The magic is checked first,
// then the component count, then the format version, each with its own
// error type.
func decodeFileHeader(buf []byte) (FileHeader, []byte, error) {
	if len(buf) < len(magic) || !bytes.Equal(buf[:len(magic)], []byte(magic)) {
		return FileHeader{}, nil, FormatError("missing UCSF NMR magic")
	}
	if len(buf) < fileHeaderLen {
		return FileHeader{}, nil, FormatError("truncated file header")
	}

	h := FileHeader{
		Dimensions:    int(buf[hdrOffDimensions]),
		Components:    int(buf[hdrOffComponents]),
		FormatVersion: int(binary.BigEndian.Uint16(buf[hdrOffVersion:])),
		Remainder:     append([]byte(nil), buf[hdrOffRemainder:fileHeaderLen]...),
	}
	if h.Components != 1 {
		return FileHeader{}, nil, UnsupportedComponentsError(h.Components)
	}
	if h.FormatVersion != formatVersion {
		return FileHeader{}, nil, UnsupportedVersionError(h.FormatVersion)
	}
	if h.Dimensions < 1 {
		return FileHeader{}, nil, FormatError("zero axis count")
	}
	return h, buf[fileHeaderLen:], nil
}
