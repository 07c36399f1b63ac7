package bearing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearingFactorsUndrained(t *testing.T) {
	f, err := BearingFactors(0)
	require.NoError(t, err)
	assert.Equal(t, math.Pi+2, f.Nc)
	assert.Equal(t, 1.0, f.Nq)
	assert.Equal(t, 0.0, f.Ngamma)
	assert.Equal(t, 1.0, f.Kp)
}

func TestBearingFactorsTable(t *testing.T) {
	tests := []struct {
		phi            float64
		nq, nc, ngamma float64
	}{
		{10, 2.47, 8.34, 0.37},
		{20, 6.40, 14.83, 2.87},
		{30, 18.40, 30.14, 15.67},
		{40, 64.20, 75.31, 93.69},
	}
	for _, tt := range tests {
		f, err := BearingFactors(tt.phi)
		require.NoError(t, err)
		assert.InDelta(t, tt.nq, f.Nq, 0.01, "Nq phi=%g", tt.phi)
		assert.InDelta(t, tt.nc, f.Nc, 0.01, "Nc phi=%g", tt.phi)
		assert.InDelta(t, tt.ngamma, f.Ngamma, 0.01, "Ngamma phi=%g", tt.phi)
	}

	f, err := BearingFactors(30)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, f.Kp, 1e-12)
}

func TestBearingFactorsRange(t *testing.T) {
	for _, phi := range []float64{-1, 90, 120, math.NaN()} {
		_, err := BearingFactors(phi)
		var pe *ParameterError
		assert.True(t, errors.As(err, &pe), "phi=%g", phi)
	}
}

func TestShapeFactors(t *testing.T) {
	f30, _ := BearingFactors(30)
	s, err := ShapeFactors(f30, 2, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.6, s.Sc, 1e-12)
	assert.InDelta(t, 1.3, s.Sq, 1e-12)
	assert.Equal(t, s.Sq, s.Sgamma)

	// strip footing tends to no correction
	s, err = ShapeFactors(f30, 1, 1e9)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s.Sq, 1e-6)

	f8, _ := BearingFactors(8)
	s, err = ShapeFactors(f8, 2, 4)
	require.NoError(t, err)
	assert.Greater(t, s.Sc, 1.0)
	assert.Equal(t, 1.0, s.Sq)
	assert.Equal(t, 1.0, s.Sgamma)

	for _, dims := range [][2]float64{{0, 2}, {2, 0}, {-1, 2}} {
		_, err := ShapeFactors(f30, dims[0], dims[1])
		var ge *GeometryError
		assert.True(t, errors.As(err, &ge), "B=%g L=%g", dims[0], dims[1])
	}
}

func TestDepthFactors(t *testing.T) {
	f30, _ := BearingFactors(30)
	d, err := DepthFactors(f30, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0866, d.Dq, 1e-4)
	assert.InDelta(t, 1.1732, d.Dc, 1e-4)
	assert.Equal(t, d.Dq, d.Dgamma)

	f0, _ := BearingFactors(0)
	d, err = DepthFactors(f0, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.1, d.Dc, 1e-12)
	assert.Equal(t, 1.0, d.Dq)
	assert.Equal(t, 1.0, d.Dgamma)

	surface, err := DepthFactors(f30, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, Depth{Dc: 1, Dq: 1, Dgamma: 1}, surface)

	_, err = DepthFactors(f30, -0.5, 2)
	var ge *GeometryError
	assert.True(t, errors.As(err, &ge))
	_, err = DepthFactors(f30, 1, 0)
	assert.True(t, errors.As(err, &ge))
}
