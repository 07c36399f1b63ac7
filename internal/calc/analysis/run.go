package analysis

import (
	"runtime"
	"time"

	bearing "Meyerhof/internal/calc/bearing"
	soil "Meyerhof/internal/soil"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Outcome is the check of one footing. Exactly one of Result and Error is
// set.
type Outcome struct {
	Support string               `json:"support"`
	Result  *bearing.CheckResult `json:"result,omitempty"`
	Error   string               `json:"error,omitempty"`
}

type Summary struct {
	Points     int     `json:"points"`
	MinQultKPa float64 `json:"min_qult_kpa"`
	MaxQultKPa float64 `json:"max_qult_kpa"`
	TwoLayer   int     `json:"two_layer_points"`
	Footings   int     `json:"footings"`
	Passed     int     `json:"passed"`
	Failed     int     `json:"failed"`
	Errored    int     `json:"errored"`
}

// Report is everything a run produces. Reports are not persisted.
type Report struct {
	RunID        string                      `json:"run_id"`
	Title        string                      `json:"title"`
	Method       bearing.DesignMethod        `json:"method"`
	WaterTableM  float64                     `json:"gwl_m"`
	Strata       []soil.Stratum              `json:"strata"`
	Combinations []bearing.CombinationResult `json:"combinations"`
	Outcomes     []Outcome                   `json:"outcomes"`
	Summary      Summary                     `json:"summary"`
	CreatedAt    time.Time                   `json:"created_at"`
}

type Options struct {
	// Workers bounds concurrent evaluations; <= 0 uses GOMAXPROCS.
	Workers int
}

// Run generates the capacity grid and checks every footing. A grid failure
// aborts the run; a footing failure is recorded in its Outcome and the
// remaining footings are still checked.
func Run(p Project, opts Options) (Report, error) {
	combos, err := bearing.Generate(p.Profile, p.Grid, p.Method, bearing.WithWorkers(opts.Workers))
	if err != nil {
		return Report{}, err
	}

	outcomes := make([]Outcome, len(p.Footings))
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, rec := range p.Footings {
		g.Go(func() error {
			outcomes[i] = checkOne(p, i, rec)
			return nil
		})
	}
	_ = g.Wait()

	r := Report{
		RunID:        uuid.NewString(),
		Title:        p.Title,
		Method:       p.Method,
		WaterTableM:  p.Profile.WaterTableM(),
		Strata:       p.Profile.Strata(),
		Combinations: combos,
		Outcomes:     outcomes,
		CreatedAt:    time.Now().UTC(),
	}
	r.Summary = summarize(combos, outcomes)
	return r, nil
}

func checkOne(p Project, i int, rec bearing.FootingRecord) Outcome {
	out := Outcome{Support: rec.Support}
	if i < len(p.footingErrs) && p.footingErrs[i] != nil {
		out.Error = p.footingErrs[i].Error()
		return out
	}
	res, err := bearing.Check(p.Profile, rec, p.Method)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.Result = &res
	return out
}

func summarize(combos []bearing.CombinationResult, outcomes []Outcome) Summary {
	s := Summary{Points: len(combos), Footings: len(outcomes)}
	if len(combos) > 0 {
		q := make([]float64, len(combos))
		for i, c := range combos {
			q[i] = c.QultKPa
			if c.TwoLayer {
				s.TwoLayer++
			}
		}
		s.MinQultKPa = floats.Min(q)
		s.MaxQultKPa = floats.Max(q)
	}
	for _, o := range outcomes {
		switch {
		case o.Result == nil:
			s.Errored++
		case o.Result.Pass:
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}
