package bearing

import (
	"fmt"
	"sort"
	"strconv"
)

type Kind string

const (
	KindFS   Kind = "FS"
	KindLRFD Kind = "LRFD"
)

// Enumerated design methods.
const (
	MethodBowlesFS3  = "Bowles_FS_3.0"
	MethodAASHTO2020 = "AASHTO_2020"
)

// Failure modes of the AASHTO LRFD resistance factor table for spread
// footings. ModeBearing governs the bearing capacity check.
const (
	ModeBearing                  = "bearing"
	ModeBearingPlateLoadTest     = "bearing_plate_load_test"
	ModeSlidingPrecastOnSand     = "sliding_precast_on_sand"
	ModeSlidingCastInPlaceOnSand = "sliding_cast_in_place_on_sand"
	ModeSlidingClay              = "sliding_clay"
	ModeSlidingSoilOnSoil        = "sliding_soil_on_soil"
	ModePassive                  = "passive"
)

// DesignMethod turns an ultimate pressure into the capacity a footing is
// checked against. It is passed explicitly to every calculation.
type DesignMethod struct {
	Name              string             `json:"name"`
	Kind              Kind               `json:"kind"`
	SafetyFactor      float64            `json:"safety_factor,omitempty"`
	ResistanceFactors map[string]float64 `json:"resistance_factors,omitempty"`
	Governing         string             `json:"governing,omitempty"`
}

// Methods lists the enumerated method names.
func Methods() []string {
	return []string{MethodBowlesFS3, MethodAASHTO2020}
}

// LookupMethod resolves an enumerated method name.
func LookupMethod(name string) (DesignMethod, error) {
	switch name {
	case MethodBowlesFS3:
		return DesignMethod{Name: MethodBowlesFS3, Kind: KindFS, SafetyFactor: 3.0}, nil
	case MethodAASHTO2020:
		// AASHTO LRFD Bridge Design Specifications, Table 10.5.5.2.2-1
		return DesignMethod{
			Name: MethodAASHTO2020,
			Kind: KindLRFD,
			ResistanceFactors: map[string]float64{
				ModeBearing:                  0.45,
				ModeBearingPlateLoadTest:     0.55,
				ModeSlidingPrecastOnSand:     0.90,
				ModeSlidingCastInPlaceOnSand: 0.80,
				ModeSlidingClay:              0.85,
				ModeSlidingSoilOnSoil:        0.90,
				ModePassive:                  0.50,
			},
			Governing: ModeBearing,
		}, nil
	}
	return DesignMethod{}, &DesignMethodError{Method: name}
}

// FactorOfSafety builds a custom allowable-stress method.
func FactorOfSafety(fs float64) (DesignMethod, error) {
	name := "FS_" + strconv.FormatFloat(fs, 'f', -1, 64)
	if !(fs >= 1) {
		return DesignMethod{}, &DesignMethodError{Method: name, Reason: "safety factor must be at least 1"}
	}
	return DesignMethod{Name: name, Kind: KindFS, SafetyFactor: fs}, nil
}

// LRFD builds a custom resistance factor method; governing names the
// failure mode used for bearing.
func LRFD(name string, factors map[string]float64, governing string) (DesignMethod, error) {
	if len(factors) == 0 {
		return DesignMethod{}, &DesignMethodError{Method: name, Reason: "no resistance factors"}
	}
	out := make(map[string]float64, len(factors))
	for mode, phi := range factors {
		if !(phi > 0 && phi <= 1) {
			return DesignMethod{}, &DesignMethodError{Method: name, Reason: fmt.Sprintf("resistance factor %s = %g outside (0, 1]", mode, phi)}
		}
		out[mode] = phi
	}
	if _, ok := out[governing]; !ok {
		return DesignMethod{}, &DesignMethodError{Method: name, Reason: fmt.Sprintf("no resistance factor for governing mode %q", governing)}
	}
	return DesignMethod{Name: name, Kind: KindLRFD, ResistanceFactors: out, Governing: governing}, nil
}

// Validate reports whether the method can derive capacities.
func (m DesignMethod) Validate() error {
	switch m.Kind {
	case KindFS:
		if !(m.SafetyFactor >= 1) {
			return &DesignMethodError{Method: m.Name, Reason: "safety factor must be at least 1"}
		}
	case KindLRFD:
		phi, ok := m.ResistanceFactors[m.Governing]
		if !ok || !(phi > 0 && phi <= 1) {
			return &DesignMethodError{Method: m.Name, Reason: fmt.Sprintf("invalid resistance factor for %q", m.Governing)}
		}
	default:
		return &DesignMethodError{Method: m.Name, Reason: fmt.Sprintf("unknown kind %q", m.Kind)}
	}
	return nil
}

// ResistanceFactor is the multiplier applied to qult: 1/FS or phi.
func (m DesignMethod) ResistanceFactor() float64 {
	if m.Kind == KindLRFD {
		return m.ResistanceFactors[m.Governing]
	}
	return 1 / m.SafetyFactor
}

// Capacity converts an ultimate pressure to the allowable (FS) or factored
// (LRFD) pressure.
func (m DesignMethod) Capacity(qultKPa float64) float64 {
	if m.Kind == KindLRFD {
		return qultKPa * m.ResistanceFactors[m.Governing]
	}
	return qultKPa / m.SafetyFactor
}

// Modes returns the method's failure modes in sorted order.
func (m DesignMethod) Modes() []string {
	out := make([]string, 0, len(m.ResistanceFactors))
	for mode := range m.ResistanceFactors {
		out = append(out, mode)
	}
	sort.Strings(out)
	return out
}
