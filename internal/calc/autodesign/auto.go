// Package autodesign finds the smallest footing that carries a load.
package autodesign

import (
	"errors"
	"fmt"
	"math"

	bearing "Meyerhof/internal/calc/bearing"
	soil "Meyerhof/internal/soil"
)

type FootingAutoInput struct {
	Method       string         `json:"method"`
	WaterTableM  float64        `json:"gwl_m"`
	Strata       []soil.Stratum `json:"strata"`
	Support      string         `json:"support"`
	DepthM       float64        `json:"df_m"`
	DesignLoadKN float64        `json:"load_kn"`
	// Ratio is L/B; 0 means square.
	Ratio     float64 `json:"ratio,omitempty"`
	MinWidthM float64 `json:"min_b_m,omitempty"`
	MaxWidthM float64 `json:"max_b_m,omitempty"`
	StepM     float64 `json:"step_m,omitempty"`
}

type FootingAutoResult struct {
	RequiredWidthM  float64             `json:"required_b_m"`
	RequiredLengthM float64             `json:"required_l_m"`
	Check           bearing.CheckResult `json:"check"`
	Tried           int                 `json:"tried"`
	Notes           string              `json:"notes"`
}

// ErrNoFootingFits is returned when no width in the search range passes.
var ErrNoFootingFits = errors.New("autodesign: no footing width in range carries the load")

const (
	defaultMinWidthM = 0.5
	defaultMaxWidthM = 6
	defaultStepM     = 0.05
)

// Footing tries widths from MinWidthM to MaxWidthM in StepM increments and
// returns the first that passes the check.
func Footing(in FootingAutoInput) (FootingAutoResult, error) {
	m, err := bearing.LookupMethod(in.Method)
	if err != nil {
		return FootingAutoResult{}, err
	}
	p, err := soil.New(in.Strata, in.WaterTableM)
	if err != nil {
		return FootingAutoResult{}, err
	}
	return Size(p, m, in)
}

// Size is Footing for an already validated profile and method.
func Size(p *soil.Stratigraphy, m bearing.DesignMethod, in FootingAutoInput) (FootingAutoResult, error) {
	ratio := in.Ratio
	if ratio == 0 {
		ratio = 1
	}
	lo, hi, step := orDefault(in.MinWidthM, defaultMinWidthM), orDefault(in.MaxWidthM, defaultMaxWidthM), orDefault(in.StepM, defaultStepM)
	if !(ratio >= 1) {
		return FootingAutoResult{}, &bearing.GeometryError{Field: "L/B", Value: ratio}
	}
	if !(lo > 0 && hi >= lo && step > 0) {
		return FootingAutoResult{}, fmt.Errorf("autodesign: invalid width range %g to %g m by %g m", lo, hi, step)
	}

	n := int(math.Floor((hi-lo)/step+1e-9)) + 1
	for i := 0; i < n; i++ {
		b := math.Round((lo+float64(i)*step)*1e6) / 1e6
		res, err := bearing.Check(p, bearing.FootingRecord{
			Support:      in.Support,
			WidthM:       b,
			LengthM:      b * ratio,
			DepthM:       in.DepthM,
			DesignLoadKN: in.DesignLoadKN,
		}, m)
		if err != nil {
			return FootingAutoResult{}, err
		}
		if res.Pass {
			return FootingAutoResult{
				RequiredWidthM:  b,
				RequiredLengthM: b * ratio,
				Check:           res,
				Tried:           i + 1,
				Notes:           "Smallest width in the search range that satisfies the bearing check.",
			}, nil
		}
	}
	return FootingAutoResult{}, ErrNoFootingFits
}

func orDefault(v, d float64) float64 {
	if v == 0 {
		return d
	}
	return v
}
