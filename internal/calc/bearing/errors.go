package bearing

import (
	"fmt"
	"math"

	soil "Meyerhof/internal/soil"
)

// StratigraphyError is re-exported so callers of this package can match
// profile errors without importing soil.
type StratigraphyError = soil.StratigraphyError

// GeometryError reports a non-positive or infinite footing dimension, or a
// negative or infinite embedment depth.
type GeometryError struct {
	Field string
	Value float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry: %s = %g is out of range", e.Field, e.Value)
}

// InsufficientStratigraphyError is returned when the failure zone under a
// footing reaches below the bearing stratum and no stratum is defined there.
type InsufficientStratigraphyError struct {
	StratumID int
	DepthM    float64
	ZoneM     float64
}

func (e *InsufficientStratigraphyError) Error() string {
	return fmt.Sprintf("stratigraphy: failure zone of %.3f m below Df = %.3f m leaves stratum %d and no stratum is defined beneath it",
		e.ZoneM, e.DepthM, e.StratumID)
}

// DesignMethodError reports an unknown or malformed design method.
type DesignMethodError struct {
	Method string
	Reason string
}

func (e *DesignMethodError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("design method %q is not recognized", e.Method)
	}
	return fmt.Sprintf("design method %q: %s", e.Method, e.Reason)
}

// LoadError reports a footing design load that cannot produce a demand
// pressure.
type LoadError struct {
	Support string
	LoadKN  float64
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("footing %q: design load %g kN must be positive", e.Support, e.LoadKN)
}

// ParameterError reports a strength parameter outside the range the
// capacity formulas are defined for.
type ParameterError struct {
	Name  string
	Value float64
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("parameter %s = %g is out of range", e.Name, e.Value)
}

func checkGeometry(widthM, lengthM, depthM float64) error {
	switch {
	case !(widthM > 0) || math.IsInf(widthM, 0):
		return &GeometryError{Field: "B", Value: widthM}
	case !(lengthM > 0) || math.IsInf(lengthM, 0):
		return &GeometryError{Field: "L", Value: lengthM}
	case !(depthM >= 0) || math.IsInf(depthM, 0):
		return &GeometryError{Field: "Df", Value: depthM}
	}
	return nil
}
