package autodesign

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	bearing "Meyerhof/internal/calc/bearing"
	soil "Meyerhof/internal/soil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(load float64) FootingAutoInput {
	return FootingAutoInput{
		Method:      bearing.MethodBowlesFS3,
		WaterTableM: 50,
		Strata: []soil.Stratum{
			{ID: 1, Description: "Dense sand", TopM: 0, BottomM: 20, GammaMoistKNM3: 18, GammaSatKNM3: 20, PhiDeg: 30},
		},
		Support:      "P1",
		DepthM:       1,
		DesignLoadKN: load,
	}
}

func TestFootingFindsSmallestWidth(t *testing.T) {
	res, err := Footing(input(1000))
	require.NoError(t, err)
	require.True(t, res.Check.Pass)
	assert.Equal(t, res.RequiredWidthM, res.RequiredLengthM)

	// one step narrower must fail
	smaller := input(1000)
	smaller.MinWidthM = res.RequiredWidthM - defaultStepM
	smaller.MaxWidthM = smaller.MinWidthM
	_, err = Footing(smaller)
	assert.ErrorIs(t, err, ErrNoFootingFits)

	// B = 2 m carries 1000 kN comfortably, so the answer is at most that
	assert.LessOrEqual(t, res.RequiredWidthM, 2.0)
}

func TestFootingRatio(t *testing.T) {
	in := input(1500)
	in.Ratio = 2
	res, err := Footing(in)
	require.NoError(t, err)
	assert.InDelta(t, 2*res.RequiredWidthM, res.RequiredLengthM, 1e-9)
}

func TestFootingErrors(t *testing.T) {
	in := input(1e7)
	_, err := Footing(in)
	assert.ErrorIs(t, err, ErrNoFootingFits)

	in = input(100)
	in.Method = "unknown"
	_, err = Footing(in)
	var de *bearing.DesignMethodError
	assert.True(t, errors.As(err, &de))

	in = input(100)
	in.Ratio = 0.5
	_, err = Footing(in)
	var ge *bearing.GeometryError
	assert.True(t, errors.As(err, &ge))

	in = input(0)
	_, err = Footing(in)
	var le *bearing.LoadError
	assert.True(t, errors.As(err, &le))
}

func TestHandlerFooting(t *testing.T) {
	h := &Handler{}
	for _, tt := range []struct {
		load float64
		want int
	}{
		{1000, http.StatusOK},
		{1e7, http.StatusUnprocessableEntity},
		{-1, http.StatusBadRequest},
	} {
		body, _ := json.Marshal(input(tt.load))
		rec := httptest.NewRecorder()
		h.Footing(rec, httptest.NewRequest(http.MethodPost, "/api/tools/bearing/size", bytes.NewReader(body)))
		assert.Equal(t, tt.want, rec.Code, "load %g", tt.load)
	}
}
