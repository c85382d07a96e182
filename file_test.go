package ucsf_test

import (
	"math"
	"testing"

	ucsf "github.com/hobofan/ucsf-nmr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenseDataRoundTrip(t *testing.T) {
	axes := []axisSpec{
		{nucleus: "15N", points: 5, tile: 2},
		{nucleus: "1H", points: 3, tile: 2},
	}
	value := func(c []int) float32 { return float32(10*c[0] + c[1]) }

	f := mustParse(t, axes, value)
	dense := f.DenseData()
	require.Len(t, dense, 15)

	points := f.PointCounts()
	eachCoord(points, func(c []int) {
		assert.Equal(t, value(c), dense[ucsf.Flatten(points, c)], "coords %v", c)
	})
}

func TestDenseDataMatchesTileSamples(t *testing.T) {
	f := mustParse(t, []axisSpec{
		{nucleus: "15N", points: 7, tile: 3},
		{nucleus: "1H", points: 4, tile: 4},
	}, func(c []int) float32 { return float32(c[0]*c[1]) - 3.5 })

	dense := f.DenseData()
	points := f.PointCounts()
	tiles := f.Tiles()
	for tiles.Next() {
		samples := tiles.Tile().Samples()
		for samples.Next() {
			s := samples.Sample()
			assert.Equal(t, s.Value, dense[ucsf.Flatten(points, s.Coords)], "coords %v", s.Coords)
		}
	}
}

func TestCountAccessors(t *testing.T) {
	f := mustParse(t, []axisSpec{
		{nucleus: "15N", points: 5, tile: 2},
		{nucleus: "1H", points: 3, tile: 2},
	}, zero)

	assert.Equal(t, []int{5, 3}, f.PointCounts())
	assert.Equal(t, []int{3, 2}, f.TileCounts())
	assert.Equal(t, []int{6, 4}, f.PaddedCounts())
}

func TestBounds(t *testing.T) {
	f := mustParse(t, []axisSpec{
		{nucleus: "15N", points: 5, tile: 2},
		{nucleus: "1H", points: 3, tile: 2},
	}, func(c []int) float32 { return float32(10*c[0]+c[1]) - 7 })

	min, max, err := f.Bounds()
	require.NoError(t, err)
	assert.Equal(t, float32(-7), min)
	assert.Equal(t, float32(35), max)
}

func TestBoundsIgnoresPadding(t *testing.T) {
	// Every stored value is 5; the zeros padding the boundary tiles must
	// not leak into the minimum.
	f := mustParse(t, []axisSpec{
		{nucleus: "15N", points: 5, tile: 2},
		{nucleus: "1H", points: 3, tile: 2},
	}, func([]int) float32 { return 5 })

	min, max, err := f.Bounds()
	require.NoError(t, err)
	assert.Equal(t, float32(5), min)
	assert.Equal(t, float32(5), max)
}

func TestBoundsSkipsNaN(t *testing.T) {
	nan := float32(math.NaN())
	f := mustParse(t, []axisSpec{
		{nucleus: "15N", points: 5, tile: 2},
		{nucleus: "1H", points: 3, tile: 2},
	}, func(c []int) float32 {
		// Poison the would-be extremes.
		if (c[0] == 0 && c[1] == 0) || (c[0] == 4 && c[1] == 2) {
			return nan
		}
		return float32(10*c[0] + c[1])
	})

	min, max, err := f.Bounds()
	require.NoError(t, err)
	assert.Equal(t, float32(1), min)
	assert.Equal(t, float32(41), max)
}

func TestBoundsAllNaN(t *testing.T) {
	nan := float32(math.NaN())
	f := mustParse(t, []axisSpec{
		{nucleus: "15N", points: 5, tile: 2},
		{nucleus: "1H", points: 3, tile: 2},
	}, func([]int) float32 { return nan })

	_, _, err := f.Bounds()
	assert.ErrorIs(t, err, ucsf.ErrNoBounds)
}
