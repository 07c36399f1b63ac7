package soil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoStrata() []Stratum {
	return []Stratum{
		{ID: 1, Description: "Silty sand", TopM: 0, BottomM: 3, GammaMoistKNM3: 18, GammaSatKNM3: 20, CohesionKPa: 0, PhiDeg: 32},
		{ID: 2, Description: "Soft clay", TopM: 3, BottomM: 10, GammaMoistKNM3: 17, GammaSatKNM3: 19, CohesionKPa: 40, PhiDeg: 0},
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Stratum) []Stratum
	}{
		{"empty", func([]Stratum) []Stratum { return nil }},
		{"ids not consecutive", func(s []Stratum) []Stratum { s[1].ID = 3; return s }},
		{"ids start at zero", func(s []Stratum) []Stratum { s[0].ID = 0; s[1].ID = 1; return s }},
		{"first not at surface", func(s []Stratum) []Stratum { s[0].TopM = 0.5; return s }},
		{"gap", func(s []Stratum) []Stratum { s[1].TopM = 3.5; return s }},
		{"overlap", func(s []Stratum) []Stratum { s[1].TopM = 2.5; return s }},
		{"inverted", func(s []Stratum) []Stratum { s[1].BottomM = 2; return s }},
		{"zero moist weight", func(s []Stratum) []Stratum { s[0].GammaMoistKNM3 = 0; return s }},
		{"saturated below water", func(s []Stratum) []Stratum { s[0].GammaSatKNM3 = 9; return s }},
		{"negative cohesion", func(s []Stratum) []Stratum { s[1].CohesionKPa = -1; return s }},
		{"phi too large", func(s []Stratum) []Stratum { s[0].PhiDeg = 90; return s }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.mutate(twoStrata()), 2)
			var se *StratigraphyError
			require.Error(t, err)
			assert.True(t, errors.As(err, &se), "want StratigraphyError, got %T", err)
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	in := twoStrata()
	p, err := New(in, 2)
	require.NoError(t, err)

	in[0].PhiDeg = 10
	assert.Equal(t, 32.0, p.At(0).PhiDeg)

	out := p.Strata()
	out[1].CohesionKPa = 99
	assert.Equal(t, 40.0, p.At(1).CohesionKPa)
}

func TestLocate(t *testing.T) {
	p, err := New(twoStrata(), 2)
	require.NoError(t, err)

	tests := []struct {
		depth float64
		want  int
	}{
		{0, 1},
		{2.99, 1},
		{3, 2},
		{9.99, 2},
	}
	for _, tt := range tests {
		_, s, err := p.Locate(tt.depth)
		require.NoError(t, err)
		assert.Equal(t, tt.want, s.ID, "depth %.2f", tt.depth)
	}

	for _, d := range []float64{10, 12, -0.1} {
		_, _, err := p.Locate(d)
		var se *StratigraphyError
		assert.True(t, errors.As(err, &se), "depth %.2f", d)
	}

	below, ok := p.Below(0)
	assert.True(t, ok)
	assert.Equal(t, 2, below.ID)
	_, ok = p.Below(1)
	assert.False(t, ok)
}

func TestEffectiveStress(t *testing.T) {
	tests := []struct {
		name  string
		gwl   float64
		depth float64
		want  float64
	}{
		{"dry within first", 5, 2, 36},
		{"dry across contact", 20, 5, 3*18 + 2*17},
		{"water table inside first", 1, 2, 18 + (20 - WaterUnitWeightKNM3)},
		{"water table at surface", 0, 2, 2 * (20 - WaterUnitWeightKNM3)},
		{"water table above ground", -2, 2, 2 * (20 - WaterUnitWeightKNM3)},
		{"submerged across contact", 1, 4, 18 + 2*(20-WaterUnitWeightKNM3) + (19 - WaterUnitWeightKNM3)},
		{"profile bottom", 20, 10, 3*18 + 7*17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(twoStrata(), tt.gwl)
			require.NoError(t, err)
			q, err := p.EffectiveStress(tt.depth)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, q, 1e-9)
		})
	}

	p, err := New(twoStrata(), 2)
	require.NoError(t, err)
	_, err = p.EffectiveStress(10.5)
	var se *StratigraphyError
	assert.True(t, errors.As(err, &se))
}

func TestEffectiveUnitWeight(t *testing.T) {
	buoyant := 20 - WaterUnitWeightKNM3
	tests := []struct {
		name string
		gwl  float64
		base float64
		b    float64
		want float64
	}{
		{"water table deep", 10, 1, 1.5, 18},
		{"water table above base", 0.5, 1, 1.5, buoyant},
		{"water table at base", 1, 1, 1.5, buoyant},
		{"water table inside zone", 1.5, 1, 1, 0.5*18 + 0.5*buoyant},
		{"water table at zone bottom", 2, 1, 1, 18},
		{"zone crosses contact", 20, 2, 2, 0.5*18 + 0.5*17},
		{"zone below profile", 20, 9, 2, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(twoStrata(), tt.gwl)
			require.NoError(t, err)
			g, err := p.EffectiveUnitWeight(tt.base, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, g, 1e-9)
		})
	}
}

func TestOverburdenIntegral(t *testing.T) {
	// dry uniform soil: integral of 18 z from 1 to 2 = 9 (4 - 1)
	p, err := New(twoStrata(), 20)
	require.NoError(t, err)
	got, err := p.OverburdenIntegral(1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 27.0, got, 1e-9)

	// water table at 1.5 m: 18 kN/m3 to 1.5 m, buoyant below
	p, err = New(twoStrata(), 1.5)
	require.NoError(t, err)
	buoyant := 20 - WaterUnitWeightKNM3
	want := (18*1*0.5 + 0.5*18*0.25) + (27*0.5 + 0.5*buoyant*0.25)
	got, err = p.OverburdenIntegral(1, 2)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)

	zero, err := p.OverburdenIntegral(2, 2)
	require.NoError(t, err)
	assert.Zero(t, zero)

	_, err = p.OverburdenIntegral(2, 1)
	assert.Error(t, err)
}

func TestStress(t *testing.T) {
	p, err := New(twoStrata(), 20)
	require.NoError(t, err)
	s, err := p.Stress(1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 18.0, s.QKPa, 1e-9)
	assert.InDelta(t, 18.0, s.GammaKNM3, 1e-9)

	_, err = p.Stress(1, 0)
	assert.Error(t, err)
}
