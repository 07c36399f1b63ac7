package loads

import (
	"fmt"

	bearing "Meyerhof/internal/calc/bearing"
)

// Named combinations.
const (
	ComboService   = "Service"
	ComboServiceI  = "Service I"
	ComboStrengthI = "Strength I"
)

type Input struct {
	Method string  `json:"method"`
	Combo  string  `json:"combo,omitempty"`
	DeadKN float64 `json:"dead_kn"`
	LiveKN float64 `json:"live_kn"`
}

type Result struct {
	DesignLoadKN float64 `json:"design_load_kn"`
	ComboName    string  `json:"combo_name"`
	DeadFactor   float64 `json:"dead_factor"`
	LiveFactor   float64 `json:"live_factor"`
	Notes        string  `json:"notes"`
	// Bearing reports whether the load may be checked against bearing
	// capacity under the method it was combined for.
	Bearing bool `json:"bearing"`
}

type combo struct {
	name    string
	gDead   float64
	gLive   float64
	notes   string
	bearing bool
}

var combos = map[string]combo{
	ComboService:   {ComboService, 1.0, 1.0, "Unfactored service loads checked against allowable pressure.", true},
	ComboServiceI:  {ComboServiceI, 1.0, 1.0, "AASHTO Service I, used for settlement rather than bearing.", false},
	ComboStrengthI: {ComboStrengthI, 1.25, 1.75, "AASHTO Strength I with maximum DC and LL factors.", true},
}

// Default returns the combination a method checks bearing with.
func Default(m bearing.DesignMethod) string {
	if m.Kind == bearing.KindLRFD {
		return ComboStrengthI
	}
	return ComboService
}

// Combine factors the dead and live loads with the method's bearing
// combination.
func Combine(m bearing.DesignMethod, deadKN, liveKN float64) (Result, error) {
	return ForBearing(m, Default(m), deadKN, liveKN)
}

// ForBearing is CombineNamed restricted to combinations that feed a bearing
// check. Service I is rejected: its unfactored load is for settlement and
// must not meet the factored LRFD resistance.
func ForBearing(m bearing.DesignMethod, name string, deadKN, liveKN float64) (Result, error) {
	r, err := CombineNamed(m, name, deadKN, liveKN)
	if err != nil {
		return Result{}, err
	}
	if !r.Bearing {
		return Result{}, fmt.Errorf("combination %q is not a bearing combination", name)
	}
	return r, nil
}

// CombineNamed factors the loads with the named combination.
func CombineNamed(m bearing.DesignMethod, name string, deadKN, liveKN float64) (Result, error) {
	if err := m.Validate(); err != nil {
		return Result{}, err
	}
	c, ok := combos[name]
	if !ok {
		return Result{}, fmt.Errorf("unknown load combination %q", name)
	}
	if m.Kind == bearing.KindFS && name != ComboService {
		return Result{}, fmt.Errorf("combination %q is not defined for %s", name, m.Name)
	}
	if m.Kind == bearing.KindLRFD && name == ComboService {
		return Result{}, fmt.Errorf("combination %q is not defined for %s", name, m.Name)
	}
	if !(deadKN > 0) {
		return Result{}, fmt.Errorf("invalid dead load %g kN", deadKN)
	}
	if !(liveKN >= 0) {
		return Result{}, fmt.Errorf("invalid live load %g kN", liveKN)
	}
	return Result{
		DesignLoadKN: deadKN*c.gDead + liveKN*c.gLive,
		ComboName:    c.name,
		DeadFactor:   c.gDead,
		LiveFactor:   c.gLive,
		Notes:        c.notes,
		Bearing:      c.bearing,
	}, nil
}

// Calculate resolves the method by name and combines the loads.
func Calculate(in Input) (Result, error) {
	m, err := bearing.LookupMethod(in.Method)
	if err != nil {
		return Result{}, err
	}
	name := in.Combo
	if name == "" {
		name = Default(m)
	}
	return CombineNamed(m, name, in.DeadKN, in.LiveKN)
}
