package ucsf_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	ucsf "github.com/hobofan/ucsf-nmr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTwoAxisSpectrum(t *testing.T) {
	axes := []axisSpec{
		{nucleus: "15N", points: 256, tile: 128, freq: 60.833, width: 1824.818, center: 117.043},
		{nucleus: "1H", points: 352, tile: 176, freq: 600.283, width: 3305.289, center: 8.2446},
	}
	value := func(c []int) float32 { return float32(1000*c[0] + c[1]) }

	f, err := ucsf.Parse(buildSpectrum(axes, value))
	require.NoError(t, err)

	assert.Equal(t, 2, f.Header.Dimensions)
	assert.Equal(t, 1, f.Header.Components)
	assert.Equal(t, 2, f.Header.FormatVersion)
	require.Len(t, f.Axes, 2)

	assert.Equal(t, "15N", f.Axes[0].Nucleus)
	assert.Equal(t, 256, f.Axes[0].DataPoints)
	assert.Equal(t, 128, f.Axes[0].TileSize)
	assert.Equal(t, float32(60.833), f.Axes[0].Frequency)
	assert.Equal(t, float32(1824.818), f.Axes[0].SpectralWidth)
	assert.Equal(t, float32(117.043), f.Axes[0].Center)
	assert.Equal(t, "1H", f.Axes[1].Nucleus)
	assert.Equal(t, 352, f.Axes[1].DataPoints)
	assert.Equal(t, 176, f.Axes[1].TileSize)

	assert.Equal(t, []int{2, 2}, f.TileCounts())
	assert.Equal(t, 4, f.NumTiles())
	assert.Len(t, f.Data(), 256*352)

	first := f.Tile(0)
	assert.Equal(t, []int{0, 0}, first.AxisStarts)
	assert.Equal(t, []int{128, 176}, first.AxisLengths)

	dense := f.DenseData()
	for _, c := range [][]int{{0, 0}, {0, 200}, {130, 10}, {127, 175}, {128, 176}, {255, 351}} {
		assert.Equal(t, value(c), dense[ucsf.Flatten([]int{256, 352}, c)], "coords %v", c)
	}
}

func TestParseOneAxisSpectrum(t *testing.T) {
	axes := []axisSpec{{nucleus: "13C", points: 257, tile: 64}}
	value := func(c []int) float32 { return float32(c[0]) }

	f, err := ucsf.Parse(buildSpectrum(axes, value))
	require.NoError(t, err)

	assert.Equal(t, []int{5}, f.TileCounts())
	require.Len(t, f.Data(), 257)

	boundary := f.Tile(4)
	assert.Equal(t, []int{1}, boundary.AxisLengths)
	assert.Equal(t, []int{256}, boundary.AxisStarts)
	assert.Equal(t, []float32{256}, boundary.Data)

	for i, v := range f.Data() {
		if float32(i) != v {
			t.Fatalf("sample %d: got %v", i, v)
		}
	}
}

func TestParsePaddedSpectrum(t *testing.T) {
	axes := []axisSpec{
		{nucleus: "15N", points: 5, tile: 2},
		{nucleus: "1H", points: 3, tile: 2},
	}
	value := func(c []int) float32 { return float32(10*c[0] + c[1]) }

	f, err := ucsf.Parse(buildSpectrum(axes, value))
	require.NoError(t, err)

	assert.Equal(t, []int{3, 2}, f.TileCounts())
	assert.Equal(t, 6, f.NumTiles())
	require.Len(t, f.Data(), 15)

	wantLens := [][]int{{2, 2}, {2, 1}, {2, 2}, {2, 1}, {1, 2}, {1, 1}}
	wantStarts := [][]int{{0, 0}, {0, 2}, {2, 0}, {2, 2}, {4, 0}, {4, 2}}

	// Tiles are packed back to back: each one starts where the previous
	// trimmed tile ended, not at a multiple of its own size.
	offset := 0
	for i := 0; i < f.NumTiles(); i++ {
		tile := f.Tile(i)
		assert.Equal(t, wantLens[i], tile.AxisLengths, "tile %d", i)
		assert.Equal(t, wantStarts[i], tile.AxisStarts, "tile %d", i)
		assert.Equal(t, f.Data()[offset:offset+tile.Len()], tile.Data, "tile %d", i)
		offset += tile.Len()
	}
	assert.Equal(t, len(f.Data()), offset)

	seen := 0
	tiles := f.Tiles()
	for tiles.Next() {
		samples := tiles.Tile().Samples()
		for samples.Next() {
			s := samples.Sample()
			assert.Equal(t, value(s.Coords), s.Value, "coords %v", s.Coords)
			seen++
		}
	}
	assert.Equal(t, 15, seen)
	assert.False(t, tiles.Next())
}

func TestParseThreeAxisSpectrum(t *testing.T) {
	axes := []axisSpec{
		{nucleus: "15N", points: 4, tile: 2},
		{nucleus: "13C", points: 3, tile: 2},
		{nucleus: "1H", points: 5, tile: 4},
	}
	value := func(c []int) float32 { return float32(100*c[0] + 10*c[1] + c[2]) }

	f, err := ucsf.Parse(buildSpectrum(axes, value))
	require.NoError(t, err)

	assert.Equal(t, []int{2, 2, 2}, f.TileCounts())
	assert.Equal(t, 8, f.NumTiles())
	require.Len(t, f.Data(), 4*3*5)

	dense := f.DenseData()
	points := f.PointCounts()
	eachCoord(points, func(c []int) {
		assert.Equal(t, value(c), dense[ucsf.Flatten(points, c)], "coords %v", c)
	})
}

func TestParseRejectsUnsupportedComponents(t *testing.T) {
	data := buildSpectrum([]axisSpec{{nucleus: "1H", points: 4, tile: 2}}, zero)
	data[11] = 2
	// Corrupt the version too: the component error must still win.
	data[12], data[13] = 0xff, 0xff

	_, err := ucsf.Parse(data)
	var cerr ucsf.UnsupportedComponentsError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, int(cerr))
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	data := buildSpectrum([]axisSpec{{nucleus: "1H", points: 4, tile: 2}}, zero)
	binary.BigEndian.PutUint16(data[12:14], 3)

	_, err := ucsf.Parse(data)
	var verr ucsf.UnsupportedVersionError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 3, int(verr))
}

func TestParseRejectsBadMagic(t *testing.T) {
	data := buildSpectrum([]axisSpec{{nucleus: "1H", points: 4, tile: 2}}, zero)
	copy(data, "BOGUS!!!")

	_, err := ucsf.Parse(data)
	var ferr ucsf.FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, err.Error(), "magic")
}

func TestParseRejectsZeroDimensions(t *testing.T) {
	data := buildSpectrum([]axisSpec{{nucleus: "1H", points: 4, tile: 2}}, zero)
	data[10] = 0

	_, err := ucsf.Parse(data)
	var ferr ucsf.FormatError
	assert.ErrorAs(t, err, &ferr)
}

func TestParseRejectsZeroAxisFields(t *testing.T) {
	t.Run("data points", func(t *testing.T) {
		data := buildSpectrum([]axisSpec{{nucleus: "1H", points: 4, tile: 2}}, zero)
		binary.BigEndian.PutUint32(data[188:192], 0)

		_, err := ucsf.Parse(data)
		var ferr ucsf.FormatError
		assert.ErrorAs(t, err, &ferr)
	})
	t.Run("tile size", func(t *testing.T) {
		data := buildSpectrum([]axisSpec{{nucleus: "1H", points: 4, tile: 2}}, zero)
		binary.BigEndian.PutUint32(data[196:200], 0)

		_, err := ucsf.Parse(data)
		var ferr ucsf.FormatError
		assert.ErrorAs(t, err, &ferr)
	})
}

func TestParseTruncatedInputs(t *testing.T) {
	full := buildSpectrum([]axisSpec{
		{nucleus: "15N", points: 5, tile: 2},
		{nucleus: "1H", points: 3, tile: 2},
	}, zero)

	cuts := []struct {
		name string
		n    int
	}{
		{"empty", 0},
		{"magic only", 8},
		{"partial header", 100},
		{"header only", 180},
		{"one axis record", 180 + 128},
		{"partial second axis", 180 + 128 + 60},
		{"headers only", 180 + 2*128},
		{"partial sample stream", len(full) - 4},
	}
	for _, tc := range cuts {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ucsf.Parse(full[:tc.n])
			var ferr ucsf.FormatError
			assert.ErrorAs(t, err, &ferr)
		})
	}
}

func TestParseIgnoresTrailingBytes(t *testing.T) {
	data := buildSpectrum([]axisSpec{{nucleus: "1H", points: 4, tile: 2}}, func(c []int) float32 {
		return float32(c[0])
	})
	want, err := ucsf.Parse(data)
	require.NoError(t, err)

	got, err := ucsf.Parse(append(data, 0xde, 0xad, 0xbe, 0xef))
	require.NoError(t, err)
	assert.Equal(t, want.Data(), got.Data())
}

func TestParsePreservesOpaqueRegions(t *testing.T) {
	f, err := ucsf.Parse(buildSpectrum([]axisSpec{{nucleus: "1H", points: 4, tile: 2}}, zero))
	require.NoError(t, err)

	wantHdr := make([]byte, 166)
	for i := range wantHdr {
		wantHdr[i] = byte(i)
	}
	assert.Equal(t, wantHdr, f.Header.Remainder)

	wantAx := make([]byte, 96)
	for i := range wantAx {
		wantAx[i] = byte(0x60 + i%32)
	}
	assert.Equal(t, wantAx, f.Axes[0].Remainder)
}

func TestParseCopiesOutOfInputBuffer(t *testing.T) {
	data := buildSpectrum([]axisSpec{{nucleus: "1H", points: 4, tile: 2}}, func(c []int) float32 {
		return float32(c[0] + 1)
	})
	f, err := ucsf.Parse(data)
	require.NoError(t, err)

	samples := append([]float32(nil), f.Data()...)
	remainder := append([]byte(nil), f.Header.Remainder...)
	for i := range data {
		data[i] = 0
	}

	assert.Equal(t, samples, f.Data())
	assert.Equal(t, remainder, f.Header.Remainder)
	assert.Equal(t, "1H", f.Axes[0].Nucleus)
}

func TestNucleusLabels(t *testing.T) {
	cases := []struct {
		name  string
		field string
		want  string
	}{
		{"nul padded", "1H\x00\x00\x00\x00\x00\x00", "1H"},
		{"space padded", "15N     ", "15N"},
		{"space then nul", "13C \x00xyz", "13C"},
		{"full width", "ABCDEFGH", "ABCDEFGH"},
		{"leading space kept", " 31P\x00\x00\x00\x00", " 31P"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := buildSpectrum([]axisSpec{{nucleus: "xx", points: 4, tile: 2}}, zero)
			copy(data[180:188], tc.field)

			f, err := ucsf.Parse(data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.Axes[0].Nucleus)
		})
	}
}

func TestDecodeFromReader(t *testing.T) {
	data := buildSpectrum([]axisSpec{{nucleus: "1H", points: 4, tile: 2}}, func(c []int) float32 {
		return float32(2 * c[0])
	})
	want, err := ucsf.Parse(data)
	require.NoError(t, err)

	got, err := ucsf.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, want.Header, got.Header)
	assert.Equal(t, want.Axes, got.Axes)
	assert.Equal(t, want.Data(), got.Data())
}

///////////////////////////
//                       //
// Fixtures              //
//                       //
///////////////////////////

type axisSpec struct {
	nucleus string
	points  int
	tile    int
	freq    float32
	width   float32
	center  float32
}

func zero([]int) float32 { return 0 }

// buildSpectrum assembles a valid UCSF file: header, one record per axis,
// and a sample stream laid out tile by tile with zero padding, carrying
// value(coords) at every valid position. The free-form regions are filled
// with recognizable patterns.
func buildSpectrum(axes []axisSpec, value func(coords []int) float32) []byte {
	buf := new(bytes.Buffer)
	writeFileHeader(buf, len(axes), 1, 2)
	for _, ax := range axes {
		writeAxisRecord(buf, ax)
	}
	writeSampleStream(buf, axes, value)
	return buf.Bytes()
}

func writeFileHeader(buf *bytes.Buffer, dims, components, version int) {
	buf.WriteString("UCSF NMR")
	buf.Write([]byte{0, 0})
	buf.WriteByte(byte(dims))
	buf.WriteByte(byte(components))
	var v [2]byte
	binary.BigEndian.PutUint16(v[:], uint16(version))
	buf.Write(v[:])
	rem := make([]byte, 166)
	for i := range rem {
		rem[i] = byte(i)
	}
	buf.Write(rem)
}

func writeAxisRecord(buf *bytes.Buffer, ax axisSpec) {
	label := make([]byte, 8)
	copy(label, ax.nucleus)
	buf.Write(label)

	var u [4]byte
	binary.BigEndian.PutUint32(u[:], uint32(ax.points))
	buf.Write(u[:])
	buf.Write([]byte{0, 0, 0, 0})
	binary.BigEndian.PutUint32(u[:], uint32(ax.tile))
	buf.Write(u[:])
	binary.BigEndian.PutUint32(u[:], math.Float32bits(ax.freq))
	buf.Write(u[:])
	binary.BigEndian.PutUint32(u[:], math.Float32bits(ax.width))
	buf.Write(u[:])
	binary.BigEndian.PutUint32(u[:], math.Float32bits(ax.center))
	buf.Write(u[:])

	rem := make([]byte, 96)
	for i := range rem {
		rem[i] = byte(0x60 + i%32)
	}
	buf.Write(rem)
}

func writeSampleStream(buf *bytes.Buffer, axes []axisSpec, value func([]int) float32) {
	counts := make([]int, len(axes))
	sizes := make([]int, len(axes))
	for d, ax := range axes {
		sizes[d] = ax.tile
		counts[d] = (ax.points + ax.tile - 1) / ax.tile
	}

	abs := make([]int, len(axes))
	var u [4]byte
	eachCoord(counts, func(tc []int) {
		eachCoord(sizes, func(local []int) {
			valid := true
			for d := range abs {
				abs[d] = tc[d]*axes[d].tile + local[d]
				if abs[d] >= axes[d].points {
					valid = false
				}
			}
			var v float32
			if valid {
				v = value(abs)
			}
			binary.BigEndian.PutUint32(u[:], math.Float32bits(v))
			buf.Write(u[:])
		})
	})
}

// eachCoord visits every coordinate of a grid in row-major order, axis 0
// slowest, without going through the package under test.
func eachCoord(sizes []int, visit func([]int)) {
	coords := make([]int, len(sizes))
	for {
		visit(coords)
		d := len(sizes) - 1
		for ; d >= 0; d-- {
			coords[d]++
			if coords[d] < sizes[d] {
				break
			}
			coords[d] = 0
		}
		if d < 0 {
			return
		}
	}
}
