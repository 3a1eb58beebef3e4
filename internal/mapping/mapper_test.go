package mapping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestDepthProjectorCentre(t *testing.T) {
	d, err := NewDepthProjector(DefaultWidth, DefaultHeight)
	require.NoError(t, err)

	sp, err := d.ToScreen(r3.Vec{Z: 2})
	require.NoError(t, err)
	assert.Equal(t, ScreenPoint{X: 320, Y: 240}, sp)
}

func TestDepthProjectorAxes(t *testing.T) {
	d, err := NewDepthProjector(DefaultWidth, DefaultHeight)
	require.NoError(t, err)

	// 1m right and 1m up at 2m depth: 571.26/2 = 285.63 px off centre.
	sp, err := d.ToScreen(r3.Vec{X: 1, Y: 1, Z: 2})
	require.NoError(t, err)
	assert.Equal(t, ScreenPoint{X: 605, Y: -45}, sp)

	sp, err = d.ToScreen(r3.Vec{X: -0.5, Y: -0.5, Z: 2})
	require.NoError(t, err)
	assert.Equal(t, 177.0, sp.X)
	assert.Equal(t, 382.0, sp.Y)
}

func TestDepthProjectorScalesWithResolution(t *testing.T) {
	d, err := NewDepthProjector(320, 240)
	require.NoError(t, err)
	sp, err := d.ToScreen(r3.Vec{X: 1, Z: 2})
	require.NoError(t, err)
	assert.Equal(t, ScreenPoint{X: 302, Y: 120}, sp)
}

func TestDepthProjectorRejectsNonPositiveDepth(t *testing.T) {
	d, err := NewDepthProjector(DefaultWidth, DefaultHeight)
	require.NoError(t, err)
	for _, z := range []float64{0, -1} {
		_, err := d.ToScreen(r3.Vec{Z: z})
		assert.True(t, errors.Is(err, ErrInvalidDepth), "z=%v", z)
	}
}

func TestNewDepthProjectorInvalidResolution(t *testing.T) {
	_, err := NewDepthProjector(0, 480)
	assert.Error(t, err)
}

func TestMapperFunc(t *testing.T) {
	var m Mapper = MapperFunc(func(p r3.Vec) (ScreenPoint, error) {
		return ScreenPoint{X: p.X * 10, Y: p.Y * 10}, nil
	})
	sp, err := m.ToScreen(r3.Vec{X: 1, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, ScreenPoint{X: 10, Y: 20}, sp)
}
