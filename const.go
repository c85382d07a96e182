package ucsf

// A UCSF (Sparky) file is laid out as a fixed 180-byte file header, one
// 128-byte record per axis, and the sample stream. Samples are float32
// values grouped into fixed-size rectangular tiles: tiles are stored in
// row-major order over the tile grid, samples row-major inside each tile,
// and the final tile along an axis is zero-padded up to the tile size.
//
// Every multi-byte field in the file is big-endian.

const (
	magic = "UCSF NMR" // First 8 bytes of every UCSF file.

	fileHeaderLen = 180 // Magic, global counts, free-form metadata.
	axisHeaderLen = 128 // One record per axis.
	sampleLen     = 4   // One big-endian IEEE-754 float32.

	formatVersion = 2 // The only version this package decodes.
)

// File header layout. Bytes 8-9 are reserved and skipped; everything from
// hdrOffRemainder on is free-form metadata kept verbatim.
const (
	hdrOffDimensions = 10 // uint8 axis count.
	hdrOffComponents = 11 // uint8 components per data point, 1 for real data.
	hdrOffVersion    = 12 // uint16 format version.
	hdrOffRemainder  = 14
)

// Axis record layout. Bytes 12-15 are reserved and skipped; everything
// from axOffRemainder on is kept verbatim.
const (
	axOffNucleus    = 0  // 8 bytes, NUL-padded label such as "15N" or "1H".
	axOffDataPoints = 8  // uint32 valid data points along the axis.
	axOffTileSize   = 16 // uint32 points per tile along the axis.
	axOffFrequency  = 20 // float32 spectrometer frequency (MHz).
	axOffWidth      = 24 // float32 spectral width (Hz).
	axOffCenter     = 28 // float32 center of the spectrum (ppm).
	axOffRemainder  = 32
)
