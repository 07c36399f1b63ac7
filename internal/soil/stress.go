package soil

import "math"

// Stress is the effective overburden at a footing base and the effective
// unit weight of the soil wedge under it.
type Stress struct {
	QKPa      float64 `json:"q_kpa"`
	GammaKNM3 float64 `json:"gamma_kn_m3"`
}

// piece is a depth interval of constant effective unit weight.
type piece struct {
	top, bottom float64
	gamma       float64
}

// pieces splits [a, b] at strata contacts and at the water table. With
// extend set the deepest stratum is assumed to continue below the profile.
func (p *Stratigraphy) pieces(a, b float64, extend bool) []piece {
	gwl := math.Max(p.waterTable, 0)
	last := len(p.strata) - 1

	var out []piece
	add := func(top, bottom, gamma float64) {
		if bottom > top {
			out = append(out, piece{top: top, bottom: bottom, gamma: gamma})
		}
	}
	for i, s := range p.strata {
		bot := s.BottomM
		if extend && i == last {
			bot = math.Max(bot, b)
		}
		lo, hi := math.Max(a, s.TopM), math.Min(b, bot)
		if hi <= lo {
			continue
		}
		switch {
		case hi <= gwl:
			add(lo, hi, s.GammaMoistKNM3)
		case lo >= gwl:
			add(lo, hi, s.GammaBuoyantKNM3())
		default:
			add(lo, gwl, s.GammaMoistKNM3)
			add(gwl, hi, s.GammaBuoyantKNM3())
		}
	}
	return out
}

func (p *Stratigraphy) checkDepth(depthM float64) (float64, error) {
	if depthM < 0 {
		return 0, depthError(depthM, "depth is above the ground surface")
	}
	bottom := p.BottomM()
	if depthM > bottom {
		if depthM-bottom > contactTol {
			return 0, depthError(depthM, "no stratum defined (profile ends at %.3f m)", bottom)
		}
		depthM = bottom
	}
	return depthM, nil
}

// EffectiveStress integrates unit weight from the surface down to depth:
// moist above the water table, buoyant below it.
func (p *Stratigraphy) EffectiveStress(depthM float64) (float64, error) {
	d, err := p.checkDepth(depthM)
	if err != nil {
		return 0, err
	}
	q := 0.0
	for _, pc := range p.pieces(0, d, false) {
		q += pc.gamma * (pc.bottom - pc.top)
	}
	return q, nil
}

// OverburdenIntegral returns the integral of the effective vertical stress
// over [topM, bottomM]. The stress is linear inside every piece, so the
// trapezoid sum is exact.
func (p *Stratigraphy) OverburdenIntegral(topM, bottomM float64) (float64, error) {
	if bottomM < topM {
		return 0, depthError(bottomM, "integration bottom is above its top %.3f m", topM)
	}
	a, err := p.checkDepth(topM)
	if err != nil {
		return 0, err
	}
	b, err := p.checkDepth(bottomM)
	if err != nil {
		return 0, err
	}
	q, err := p.EffectiveStress(a)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, pc := range p.pieces(a, b, false) {
		h := pc.bottom - pc.top
		total += q*h + 0.5*pc.gamma*h*h
		q += pc.gamma * h
	}
	return total, nil
}

// EffectiveUnitWeight averages the effective unit weight over the zone of
// depth widthM below baseM. A water table inside the zone blends moist and
// buoyant weights in proportion to the thickness on each side of it.
func (p *Stratigraphy) EffectiveUnitWeight(baseM, widthM float64) (float64, error) {
	base, err := p.checkDepth(baseM)
	if err != nil {
		return 0, err
	}
	if widthM <= 0 {
		return 0, depthError(baseM, "averaging zone width must be positive")
	}
	sum := 0.0
	for _, pc := range p.pieces(base, base+widthM, true) {
		sum += pc.gamma * (pc.bottom - pc.top)
	}
	return sum / widthM, nil
}

// Stress returns the effective overburden at baseM and the effective unit
// weight over a zone of widthM below it.
func (p *Stratigraphy) Stress(baseM, widthM float64) (Stress, error) {
	q, err := p.EffectiveStress(baseM)
	if err != nil {
		return Stress{}, err
	}
	g, err := p.EffectiveUnitWeight(baseM, widthM)
	if err != nil {
		return Stress{}, err
	}
	return Stress{QKPa: q, GammaKNM3: g}, nil
}
