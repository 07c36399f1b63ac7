package bearing

import (
	"fmt"
	"math"

	soil "Meyerhof/internal/soil"
)

// FootingRecord is a proposed footing and the axial load it carries. Under
// LRFD the load is expected to be factored already.
type FootingRecord struct {
	Support      string  `json:"support" yaml:"support"`
	WidthM       float64 `json:"b_m" yaml:"b_m"`
	LengthM      float64 `json:"l_m" yaml:"l_m"`
	DepthM       float64 `json:"df_m" yaml:"df_m"`
	DesignLoadKN float64 `json:"load_kn" yaml:"load_kn"`
}

func (r FootingRecord) Validate() error {
	if err := checkGeometry(r.WidthM, r.LengthM, r.DepthM); err != nil {
		return err
	}
	if !(r.DesignLoadKN > 0) || math.IsInf(r.DesignLoadKN, 0) {
		return &LoadError{Support: r.Support, LoadKN: r.DesignLoadKN}
	}
	return nil
}

// Geometry orients the record so B is the smaller plan dimension.
func (r FootingRecord) Geometry() Geometry {
	b, l := r.WidthM, r.LengthM
	if l < b {
		b, l = l, b
	}
	return Geometry{DepthM: r.DepthM, WidthM: b, LengthM: l}
}

type CheckResult struct {
	Support      string  `json:"support"`
	WidthM       float64 `json:"b_m"`
	LengthM      float64 `json:"l_m"`
	DepthM       float64 `json:"df_m"`
	DesignLoadKN float64 `json:"load_kn"`
	StratumID    int     `json:"stratum_id"`
	TwoLayer     bool    `json:"two_layer"`
	QultKPa      float64 `json:"qult_kpa"`
	CapacityKPa  float64 `json:"capacity_kpa"`
	DemandKPa    float64 `json:"demand_kpa"`
	Ratio        float64 `json:"ratio"`
	Pass         bool    `json:"pass"`
}

// Check verifies one footing against the capacity of the soil under its
// actual dimensions.
func Check(p *soil.Stratigraphy, rec FootingRecord, m DesignMethod) (CheckResult, error) {
	if err := rec.Validate(); err != nil {
		return CheckResult{}, err
	}
	if err := m.Validate(); err != nil {
		return CheckResult{}, err
	}
	g := rec.Geometry()
	u, err := UltimateCapacity(p, g)
	if err != nil {
		return CheckResult{}, err
	}

	capacity := m.Capacity(u.QultKPa)
	demand := rec.DesignLoadKN / (g.WidthM * g.LengthM)
	res := CheckResult{
		Support:      rec.Support,
		WidthM:       rec.WidthM,
		LengthM:      rec.LengthM,
		DepthM:       rec.DepthM,
		DesignLoadKN: rec.DesignLoadKN,
		StratumID:    u.StratumID,
		TwoLayer:     u.TwoLayer,
		QultKPa:      u.QultKPa,
		CapacityKPa:  capacity,
		DemandKPa:    demand,
		Ratio:        capacity / demand,
	}
	switch m.Kind {
	case KindLRFD:
		// factored resistance against the factored load effect
		res.Pass = capacity >= demand
	default:
		res.Pass = res.Ratio >= 1
	}
	return res, nil
}

// CheckAll checks every record in order. The first failing record aborts
// the list.
func CheckAll(p *soil.Stratigraphy, recs []FootingRecord, m DesignMethod, opts ...Option) ([]CheckResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	out := make([]CheckResult, len(recs))
	err := mapIndexed(len(recs), o.workers, func(i int) error {
		r, err := Check(p, recs[i], m)
		if err != nil {
			return fmt.Errorf("footing %q: %w", recs[i].Support, err)
		}
		out[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
