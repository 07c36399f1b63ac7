// Package bearing computes Meyerhof (1963) bearing capacities of shallow
// foundations on layered soil and checks footings against them.
//
// Everything here is a pure function of its arguments: a validated
// soil.Stratigraphy, footing geometry and an explicit DesignMethod.
package bearing

import (
	soil "Meyerhof/internal/soil"
)

// Geometry is a rectangular footing base B x L at embedment depth Df.
type Geometry struct {
	DepthM  float64 `json:"df_m"`
	WidthM  float64 `json:"b_m"`
	LengthM float64 `json:"l_m"`
}

func (g Geometry) Validate() error { return checkGeometry(g.WidthM, g.LengthM, g.DepthM) }

// SingleLayerResult is the capacity of a homogeneous stratum together with
// the terms that produced it.
type SingleLayerResult struct {
	StratumID      int         `json:"stratum_id"`
	Factors        Factors     `json:"factors"`
	Shape          Shape       `json:"shape"`
	Depth          Depth       `json:"depth"`
	Stress         soil.Stress `json:"stress"`
	CohesionTerm   float64     `json:"cohesion_term_kpa"`
	OverburdenTerm float64     `json:"overburden_term_kpa"`
	SelfWeightTerm float64     `json:"self_weight_term_kpa"`
	QultKPa        float64     `json:"qult_kpa"`
}

// SingleLayer returns qult = c Nc Sc Dc + q Nq Sq Dq + 0.5 g' B Ng Sg Dg for
// stratum s carrying a footing of geometry g, with the effective stresses
// taken from profile p.
func SingleLayer(p *soil.Stratigraphy, s soil.Stratum, g Geometry) (SingleLayerResult, error) {
	if err := g.Validate(); err != nil {
		return SingleLayerResult{}, err
	}
	st, err := p.Stress(g.DepthM, g.WidthM)
	if err != nil {
		return SingleLayerResult{}, err
	}
	return capacity(s, g, st)
}

// capacity evaluates the Meyerhof equation for the strength of s under
// already computed stresses.
func capacity(s soil.Stratum, g Geometry, st soil.Stress) (SingleLayerResult, error) {
	f, err := BearingFactors(s.PhiDeg)
	if err != nil {
		return SingleLayerResult{}, err
	}
	sh, err := ShapeFactors(f, g.WidthM, g.LengthM)
	if err != nil {
		return SingleLayerResult{}, err
	}
	d, err := DepthFactors(f, g.DepthM, g.WidthM)
	if err != nil {
		return SingleLayerResult{}, err
	}

	r := SingleLayerResult{
		StratumID:      s.ID,
		Factors:        f,
		Shape:          sh,
		Depth:          d,
		Stress:         st,
		CohesionTerm:   s.CohesionKPa * f.Nc * sh.Sc * d.Dc,
		OverburdenTerm: st.QKPa * f.Nq * sh.Sq * d.Dq,
		SelfWeightTerm: 0.5 * st.GammaKNM3 * g.WidthM * f.Ngamma * sh.Sgamma * d.Dgamma,
	}
	r.QultKPa = r.CohesionTerm + r.OverburdenTerm + r.SelfWeightTerm
	return r, nil
}
