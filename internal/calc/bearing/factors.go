package bearing

import "math"

// Factors are Meyerhof's bearing capacity factors for one friction angle.
type Factors struct {
	PhiDeg float64 `json:"phi_deg"`
	Nq     float64 `json:"nq"`
	Nc     float64 `json:"nc"`
	Ngamma float64 `json:"ngamma"`
	Kp     float64 `json:"kp"`
}

type Shape struct {
	Sc     float64 `json:"sc"`
	Sq     float64 `json:"sq"`
	Sgamma float64 `json:"sgamma"`
}

type Depth struct {
	Dc     float64 `json:"dc"`
	Dq     float64 `json:"dq"`
	Dgamma float64 `json:"dgamma"`
}

// Below this friction angle only the cohesion shape and depth factors apply.
const smallPhiDeg = 10

func rad(deg float64) float64 { return deg * math.Pi / 180 }

// passiveCoefficient is tan^2(45 + phi/2).
func passiveCoefficient(phiDeg float64) float64 {
	t := math.Tan(rad(45 + phiDeg/2))
	return t * t
}

// BearingFactors returns Nq, Nc, Ngamma and Kp. phi = 0 is the undrained
// limit where Nc = pi + 2.
func BearingFactors(phiDeg float64) (Factors, error) {
	if !(phiDeg >= 0 && phiDeg < 90) {
		return Factors{}, &ParameterError{Name: "phi", Value: phiDeg}
	}
	kp := passiveCoefficient(phiDeg)
	if phiDeg == 0 {
		return Factors{PhiDeg: 0, Nq: 1, Nc: math.Pi + 2, Ngamma: 0, Kp: 1}, nil
	}
	tanPhi := math.Tan(rad(phiDeg))
	nq := math.Exp(math.Pi*tanPhi) * kp
	return Factors{
		PhiDeg: phiDeg,
		Nq:     nq,
		Nc:     (nq - 1) / tanPhi,
		Ngamma: (nq - 1) * math.Tan(rad(1.4*phiDeg)),
		Kp:     kp,
	}, nil
}

// ShapeFactors applies Meyerhof's aspect-ratio corrections for a B x L base.
func ShapeFactors(f Factors, widthM, lengthM float64) (Shape, error) {
	if err := checkGeometry(widthM, lengthM, 0); err != nil {
		return Shape{}, err
	}
	ratio := widthM / lengthM
	s := Shape{Sc: 1 + 0.2*f.Kp*ratio, Sq: 1, Sgamma: 1}
	if f.PhiDeg > smallPhiDeg {
		s.Sq = 1 + 0.1*f.Kp*ratio
		s.Sgamma = s.Sq
	}
	return s, nil
}

// DepthFactors applies Meyerhof's embedment corrections.
func DepthFactors(f Factors, depthM, widthM float64) (Depth, error) {
	if err := checkGeometry(widthM, 1, depthM); err != nil {
		return Depth{}, err
	}
	k := math.Sqrt(f.Kp) * depthM / widthM
	d := Depth{Dc: 1 + 0.2*k, Dq: 1, Dgamma: 1}
	if f.PhiDeg > smallPhiDeg {
		d.Dq = 1 + 0.1*k
		d.Dgamma = d.Dq
	}
	return d, nil
}
