// Package soil models a layered soil profile and the effective stresses
// acting in it.
package soil

import (
	"fmt"
	"math"
)

// WaterUnitWeightKNM3 is the unit weight of water used for buoyant weights.
const WaterUnitWeightKNM3 = 9.81

// contact tolerance between consecutive strata
const contactTol = 1e-9

type Stratum struct {
	ID             int     `json:"id" yaml:"id"`
	Description    string  `json:"description" yaml:"description"`
	TopM           float64 `json:"top_m" yaml:"top_m"`
	BottomM        float64 `json:"bottom_m" yaml:"bottom_m"`
	GammaMoistKNM3 float64 `json:"gamma_moist_kn_m3" yaml:"gamma_moist_kn_m3"`
	GammaSatKNM3   float64 `json:"gamma_sat_kn_m3" yaml:"gamma_sat_kn_m3"`
	CohesionKPa    float64 `json:"cohesion_kpa" yaml:"cohesion_kpa"` // undrained shear strength when PhiDeg == 0
	PhiDeg         float64 `json:"phi_deg" yaml:"phi_deg"`
}

// Undrained reports whether the stratum is analysed in total stress (phi = 0).
func (s Stratum) Undrained() bool { return s.PhiDeg == 0 }

func (s Stratum) ThicknessM() float64 { return s.BottomM - s.TopM }

// GammaBuoyantKNM3 is the submerged unit weight.
func (s Stratum) GammaBuoyantKNM3() float64 { return s.GammaSatKNM3 - WaterUnitWeightKNM3 }

// Contains reports whether depth lies in [TopM, BottomM).
func (s Stratum) Contains(depthM float64) bool {
	return s.TopM <= depthM && depthM < s.BottomM
}

// SameStrength reports whether two strata share unit weights and strength
// parameters, regardless of their position in the profile.
func (s Stratum) SameStrength(o Stratum) bool {
	return s.GammaMoistKNM3 == o.GammaMoistKNM3 &&
		s.GammaSatKNM3 == o.GammaSatKNM3 &&
		s.CohesionKPa == o.CohesionKPa &&
		s.PhiDeg == o.PhiDeg
}

// StratigraphyError reports an invalid profile or a depth the profile does
// not define.
type StratigraphyError struct {
	StratumID int
	DepthM    float64
	Reason    string
}

func (e *StratigraphyError) Error() string {
	switch {
	case e.StratumID > 0:
		return fmt.Sprintf("stratigraphy: stratum %d: %s", e.StratumID, e.Reason)
	case !math.IsNaN(e.DepthM):
		return fmt.Sprintf("stratigraphy: depth %.3f m: %s", e.DepthM, e.Reason)
	default:
		return "stratigraphy: " + e.Reason
	}
}

func profileError(id int, format string, args ...any) error {
	return &StratigraphyError{StratumID: id, DepthM: math.NaN(), Reason: fmt.Sprintf(format, args...)}
}

func depthError(depthM float64, format string, args ...any) error {
	return &StratigraphyError{DepthM: depthM, Reason: fmt.Sprintf(format, args...)}
}

// Stratigraphy is an ordered, validated soil profile plus the water table
// depth measured from the ground surface. It is immutable once built.
type Stratigraphy struct {
	strata     []Stratum
	waterTable float64
}

// New validates strata and returns the profile. The slice is copied.
func New(strata []Stratum, waterTableM float64) (*Stratigraphy, error) {
	if len(strata) == 0 {
		return nil, profileError(0, "no strata defined")
	}
	if math.IsNaN(waterTableM) || math.IsInf(waterTableM, 0) {
		return nil, profileError(0, "water table depth must be finite")
	}
	for i, s := range strata {
		if s.ID != i+1 {
			return nil, profileError(0, "stratum ids must be consecutive from 1, got %d at position %d", s.ID, i+1)
		}
		if s.TopM >= s.BottomM {
			return nil, profileError(s.ID, "top %.3f m must be above bottom %.3f m", s.TopM, s.BottomM)
		}
		if i == 0 && math.Abs(s.TopM) > contactTol {
			return nil, profileError(s.ID, "first stratum must start at the surface, starts at %.3f m", s.TopM)
		}
		if i > 0 && math.Abs(s.TopM-strata[i-1].BottomM) > contactTol {
			return nil, profileError(s.ID, "top %.3f m does not meet bottom %.3f m of stratum %d",
				s.TopM, strata[i-1].BottomM, strata[i-1].ID)
		}
		if s.GammaMoistKNM3 <= 0 {
			return nil, profileError(s.ID, "moist unit weight must be positive")
		}
		if s.GammaSatKNM3 < WaterUnitWeightKNM3 {
			return nil, profileError(s.ID, "saturated unit weight %.2f kN/m3 is below the unit weight of water", s.GammaSatKNM3)
		}
		if s.CohesionKPa < 0 {
			return nil, profileError(s.ID, "cohesion must not be negative")
		}
		if s.PhiDeg < 0 || s.PhiDeg >= 90 {
			return nil, profileError(s.ID, "friction angle %.2f deg outside [0, 90)", s.PhiDeg)
		}
	}

	out := make([]Stratum, len(strata))
	copy(out, strata)
	// snap contacts so later lookups see exactly contiguous strata
	out[0].TopM = 0
	for i := 1; i < len(out); i++ {
		out[i].TopM = out[i-1].BottomM
	}
	return &Stratigraphy{strata: out, waterTable: waterTableM}, nil
}

// Strata returns a copy of the profile.
func (p *Stratigraphy) Strata() []Stratum {
	out := make([]Stratum, len(p.strata))
	copy(out, p.strata)
	return out
}

func (p *Stratigraphy) Len() int { return len(p.strata) }

// WaterTableM is the water table depth as given (negative above ground).
func (p *Stratigraphy) WaterTableM() float64 { return p.waterTable }

// BottomM is the bottom of the deepest defined stratum.
func (p *Stratigraphy) BottomM() float64 { return p.strata[len(p.strata)-1].BottomM }

// At returns the stratum at position i (0-based).
func (p *Stratigraphy) At(i int) Stratum { return p.strata[i] }

// Locate returns the index and stratum containing depth (top inclusive,
// bottom exclusive).
func (p *Stratigraphy) Locate(depthM float64) (int, Stratum, error) {
	if depthM < 0 {
		return -1, Stratum{}, depthError(depthM, "depth is above the ground surface")
	}
	for i, s := range p.strata {
		if s.Contains(depthM) {
			return i, s, nil
		}
	}
	return -1, Stratum{}, depthError(depthM, "no stratum defined (profile ends at %.3f m)", p.BottomM())
}

// Below returns the stratum immediately under position i.
func (p *Stratigraphy) Below(i int) (Stratum, bool) {
	if i < 0 || i+1 >= len(p.strata) {
		return Stratum{}, false
	}
	return p.strata[i+1], true
}
