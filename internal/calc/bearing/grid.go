package bearing

import (
	"fmt"
	"math"
	"sort"

	soil "Meyerhof/internal/soil"
)

// GeometrySet is the capacity grid: every embedment depth against every
// width. Ratios adds L = k B families; without it footings are square.
type GeometrySet struct {
	DepthsM []float64 `json:"depths_m" yaml:"depths_m"`
	WidthsM []float64 `json:"widths_m" yaml:"widths_m"`
	Ratios  []float64 `json:"ratios,omitempty" yaml:"ratios,omitempty"`
}

// CombinationResult is one grid point.
type CombinationResult struct {
	DepthM             float64 `json:"df_m"`
	WidthM             float64 `json:"b_m"`
	LengthM            float64 `json:"l_m"`
	RatioBL            float64 `json:"b_l_ratio"`
	StratumID          int     `json:"stratum_id"`
	StratumDescription string  `json:"stratum_description"`
	BottomStratumID    int     `json:"bottom_stratum_id,omitempty"`
	TwoLayer           bool    `json:"two_layer"`
	Cohesion1KPa       float64 `json:"c1_kpa"`
	Phi1Deg            float64 `json:"phi1_deg"`
	Cohesion2KPa       float64 `json:"c2_kpa"`
	Phi2Deg            float64 `json:"phi2_deg"`
	QultSingleKPa      float64 `json:"qult_single_kpa"`
	QultKPa            float64 `json:"qult_kpa"`
	CapacityKPa        float64 `json:"capacity_kpa"`
}

// sortedUnique returns an ascending copy of v without repeated values.
func sortedUnique(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	sort.Float64s(out)
	n := 0
	for i, x := range out {
		if i > 0 && x == out[n-1] {
			continue
		}
		out[n] = x
		n++
	}
	return out[:n]
}

// Points expands the set in output order: Df ascending, then B ascending,
// then L/B ascending.
func (s GeometrySet) Points() ([]Geometry, error) {
	depths := sortedUnique(s.DepthsM)
	widths := sortedUnique(s.WidthsM)
	ratios := sortedUnique(s.Ratios)
	if len(ratios) == 0 {
		ratios = []float64{1}
	}
	for _, d := range depths {
		if !(d >= 0) || math.IsInf(d, 0) {
			return nil, &GeometryError{Field: "Df", Value: d}
		}
	}
	for _, b := range widths {
		if !(b > 0) || math.IsInf(b, 0) {
			return nil, &GeometryError{Field: "B", Value: b}
		}
	}
	for _, k := range ratios {
		if !(k >= 1) || math.IsInf(k, 0) {
			return nil, &GeometryError{Field: "L/B", Value: k}
		}
	}

	out := make([]Geometry, 0, len(depths)*len(widths)*len(ratios))
	for _, d := range depths {
		for _, b := range widths {
			for _, k := range ratios {
				out = append(out, Geometry{DepthM: d, WidthM: b, LengthM: b * k})
			}
		}
	}
	return out, nil
}

// Generate computes the capacity at every point of set. Points are
// independent; the first failing point (in output order) aborts the grid.
func Generate(p *soil.Stratigraphy, set GeometrySet, m DesignMethod, opts ...Option) ([]CombinationResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	points, err := set.Points()
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	out := make([]CombinationResult, len(points))
	err = mapIndexed(len(points), o.workers, func(i int) error {
		r, err := Combination(p, points[i], m)
		if err != nil {
			return fmt.Errorf("combination Df = %g m, B = %g m, L = %g m: %w",
				points[i].DepthM, points[i].WidthM, points[i].LengthM, err)
		}
		out[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Combination evaluates a single grid point.
func Combination(p *soil.Stratigraphy, g Geometry, m DesignMethod) (CombinationResult, error) {
	u, err := UltimateCapacity(p, g)
	if err != nil {
		return CombinationResult{}, err
	}
	idx := u.StratumID - 1
	top := p.At(idx)
	// c2 and phi2 repeat the bearing stratum when nothing lies below it
	next, ok := p.Below(idx)
	if !ok {
		next = top
	}
	return CombinationResult{
		DepthM:             g.DepthM,
		WidthM:             g.WidthM,
		LengthM:            g.LengthM,
		RatioBL:            g.WidthM / g.LengthM,
		StratumID:          u.StratumID,
		StratumDescription: u.StratumDescription,
		BottomStratumID:    u.BottomStratumID,
		TwoLayer:           u.TwoLayer,
		Cohesion1KPa:       top.CohesionKPa,
		Phi1Deg:            top.PhiDeg,
		Cohesion2KPa:       next.CohesionKPa,
		Phi2Deg:            next.PhiDeg,
		QultSingleKPa:      u.Top.QultKPa,
		QultKPa:            u.QultKPa,
		CapacityKPa:        m.Capacity(u.QultKPa),
	}, nil
}
