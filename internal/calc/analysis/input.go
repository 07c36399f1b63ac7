// Package analysis turns a bearing capacity project document into core
// values, runs it and serves it over HTTP.
package analysis

import (
	"errors"
	"fmt"

	bearing "Meyerhof/internal/calc/bearing"
	loads "Meyerhof/internal/calc/loads"
	soil "Meyerhof/internal/soil"
)

// Input is a project as it arrives from a file, a workbook or a request.
type Input struct {
	Title        string         `json:"title" yaml:"title"`
	Method       string         `json:"method,omitempty" yaml:"method,omitempty"`
	SafetyFactor float64        `json:"safety_factor,omitempty" yaml:"safety_factor,omitempty"`
	WaterTableM  float64        `json:"gwl_m" yaml:"gwl_m"`
	Strata       []soil.Stratum `json:"strata" yaml:"strata"`
	DepthsM      []float64      `json:"depths_m" yaml:"depths_m"`
	WidthsM      []float64      `json:"widths_m" yaml:"widths_m"`
	Ratios       []float64      `json:"ratios,omitempty" yaml:"ratios,omitempty"`
	Footings     []Footing      `json:"footings,omitempty" yaml:"footings,omitempty"`
}

// Footing carries either a design load or dead and live loads to be
// combined under the project's method.
type Footing struct {
	Support string  `json:"support" yaml:"support"`
	WidthM  float64 `json:"b_m" yaml:"b_m"`
	LengthM float64 `json:"l_m" yaml:"l_m"`
	DepthM  float64 `json:"df_m" yaml:"df_m"`
	LoadKN  float64 `json:"load_kn,omitempty" yaml:"load_kn,omitempty"`
	DeadKN  float64 `json:"dead_kn,omitempty" yaml:"dead_kn,omitempty"`
	LiveKN  float64 `json:"live_kn,omitempty" yaml:"live_kn,omitempty"`
}

// Project is a validated Input.
type Project struct {
	Title    string
	Profile  *soil.Stratigraphy
	Method   bearing.DesignMethod
	Grid     bearing.GeometrySet
	Footings []bearing.FootingRecord

	// load combination failures, parallel to Footings
	footingErrs []error
}

// ErrEmptyGrid is returned when the input lists no depth or no width.
var ErrEmptyGrid = errors.New("analysis: depth and width lists must not be empty")

// resolveMethod picks the custom safety factor when one is given, the named
// method otherwise, and fallback when the input names none.
func (in Input) resolveMethod(fallback string) (bearing.DesignMethod, error) {
	if in.SafetyFactor != 0 {
		return bearing.FactorOfSafety(in.SafetyFactor)
	}
	name := in.Method
	if name == "" {
		name = fallback
	}
	return bearing.LookupMethod(name)
}

// Build validates the input. The method defaults to Bowles_FS_3.0.
func (in Input) Build() (Project, error) {
	return in.BuildWithDefault(bearing.MethodBowlesFS3)
}

// BuildWithDefault is Build with a different method for inputs that name
// none.
func (in Input) BuildWithDefault(method string) (Project, error) {
	m, err := in.resolveMethod(method)
	if err != nil {
		return Project{}, err
	}
	p, err := soil.New(in.Strata, in.WaterTableM)
	if err != nil {
		return Project{}, err
	}
	grid := bearing.GeometrySet{DepthsM: in.DepthsM, WidthsM: in.WidthsM, Ratios: in.Ratios}
	if len(grid.DepthsM) == 0 || len(grid.WidthsM) == 0 {
		return Project{}, ErrEmptyGrid
	}
	if _, err := grid.Points(); err != nil {
		return Project{}, err
	}

	proj := Project{
		Title:       in.Title,
		Profile:     p,
		Method:      m,
		Grid:        grid,
		Footings:    make([]bearing.FootingRecord, len(in.Footings)),
		footingErrs: make([]error, len(in.Footings)),
	}
	for i, f := range in.Footings {
		proj.Footings[i], proj.footingErrs[i] = f.record(m)
	}
	return proj, nil
}

func (f Footing) record(m bearing.DesignMethod) (bearing.FootingRecord, error) {
	rec := bearing.FootingRecord{
		Support:      f.Support,
		WidthM:       f.WidthM,
		LengthM:      f.LengthM,
		DepthM:       f.DepthM,
		DesignLoadKN: f.LoadKN,
	}
	if f.LoadKN != 0 || (f.DeadKN == 0 && f.LiveKN == 0) {
		return rec, nil
	}
	c, err := loads.Combine(m, f.DeadKN, f.LiveKN)
	if err != nil {
		return rec, fmt.Errorf("footing %q: %w", f.Support, err)
	}
	rec.DesignLoadKN = c.DesignLoadKN
	return rec, nil
}
