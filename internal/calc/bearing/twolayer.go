package bearing

import (
	"math"

	soil "Meyerhof/internal/soil"
)

// Ultimate is the governing ultimate capacity of a footing, after the
// two-layer check.
type Ultimate struct {
	Geometry           Geometry           `json:"geometry"`
	StratumID          int                `json:"stratum_id"`
	StratumDescription string             `json:"stratum_description"`
	BottomStratumID    int                `json:"bottom_stratum_id,omitempty"`
	TwoLayer           bool               `json:"two_layer"`
	ThicknessM         float64            `json:"h1_m"`    // Df to the bottom of the bearing stratum
	CriticalDepthM     float64            `json:"hcrit_m"` // depth reached by the failure wedge
	Top                SingleLayerResult  `json:"top"`
	Bottom             *SingleLayerResult `json:"bottom,omitempty"`
	PunchingKPa        float64            `json:"punching_kpa,omitempty"`
	QultKPa            float64            `json:"qult_kpa"`
}

// CriticalDepth is the depth below the base reached by the passive wedge,
// B tan(45 + phi/2) / 2.
func CriticalDepth(phiDeg, widthM float64) float64 {
	return widthM * math.Tan(rad(45+phiDeg/2)) / 2
}

// UltimateCapacity finds the stratum containing Df and returns its
// capacity, corrected for the stratum below when the failure zone reaches it.
func UltimateCapacity(p *soil.Stratigraphy, g Geometry) (Ultimate, error) {
	if err := g.Validate(); err != nil {
		return Ultimate{}, err
	}
	idx, _, err := p.Locate(g.DepthM)
	if err != nil {
		return Ultimate{}, err
	}
	return TwoLayer(p, idx, g)
}

// TwoLayer evaluates the footing on stratum idx of p. When the stratum is
// thinner under the base than the critical depth, the capacity of the
// stratum below plus the shear carried on vertical planes through the top
// layer (punching) governs, capped by the capacity of the top layer alone.
func TwoLayer(p *soil.Stratigraphy, idx int, g Geometry) (Ultimate, error) {
	if err := g.Validate(); err != nil {
		return Ultimate{}, err
	}
	top := p.At(idx)
	qt, err := SingleLayer(p, top, g)
	if err != nil {
		return Ultimate{}, err
	}

	u := Ultimate{
		Geometry:           g,
		StratumID:          top.ID,
		StratumDescription: top.Description,
		ThicknessM:         top.BottomM - g.DepthM,
		CriticalDepthM:     CriticalDepth(top.PhiDeg, g.WidthM),
		Top:                qt,
		QultKPa:            qt.QultKPa,
	}
	if u.ThicknessM >= u.CriticalDepthM {
		return u, nil
	}

	below, ok := p.Below(idx)
	if !ok {
		return Ultimate{}, &InsufficientStratigraphyError{StratumID: top.ID, DepthM: g.DepthM, ZoneM: u.CriticalDepthM}
	}
	// bottom layer strength under the same stresses and geometry
	qb, err := capacity(below, g, qt.Stress)
	if err != nil {
		return Ultimate{}, err
	}

	punch, err := punching(p, top, qt, qb, g, u.ThicknessM)
	if err != nil {
		return Ultimate{}, err
	}

	u.TwoLayer = true
	u.BottomStratumID = below.ID
	u.Bottom = &qb
	u.PunchingKPa = punch
	u.QultKPa = math.Min(qt.QultKPa, qb.QultKPa+punch)
	return u, nil
}

// punching is the resistance of the vertical shear planes through the top
// layer, distributed over the base area. Adhesion and the punching shear
// coefficient fall from c1 and Kp1 towards half of them as the bottom
// layer weakens relative to the top.
func punching(p *soil.Stratigraphy, top soil.Stratum, qt, qb SingleLayerResult, g Geometry, h1 float64) (float64, error) {
	ratio := 1.0
	if qt.QultKPa > 0 {
		ratio = math.Min(qb.QultKPa/qt.QultKPa, 1)
	}
	w := (1 + ratio) / 2
	adhesion := w * top.CohesionKPa
	ks := w * qt.Factors.Kp

	pv, err := p.OverburdenIntegral(g.DepthM, g.DepthM+h1)
	if err != nil {
		return 0, err
	}
	perimeter := 2 * (g.WidthM + g.LengthM)
	area := g.WidthM * g.LengthM
	return perimeter * (adhesion*h1 + pv*ks*math.Tan(rad(top.PhiDeg))) / area, nil
}
