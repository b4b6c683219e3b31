package experiment

import (
	"context"
	"time"

	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/sim"
)

type Comparison struct {
	SubSteps    int
	EnergyDrift float64
	Metrics     map[string]float64
	Final       []float64
	Elapsed     time.Duration
}

// CompareSubSteps runs s once per sub-step count, concurrently, each run on
// its own world.
func CompareSubSteps(ctx context.Context, s *config.Scenario, counts []int) ([]Comparison, error) {
	runs := make([]*sim.Simulator, len(counts))
	for i, n := range counts {
		variant := s.Clone()
		variant.SubSteps = n

		exp := New(variant)
		if err := exp.Setup("energy_drift", "momentum_drift", "containment"); err != nil {
			return nil, err
		}
		runs[i] = exp.Simulator()
	}

	start := time.Now()
	results, err := sim.NewEnsemble(runs...).Run(ctx, sim.RunConfig{
		Frames:        s.Frames,
		ValidateState: true,
	})
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	out := make([]Comparison, len(results))
	for i, res := range results {
		out[i] = Comparison{
			SubSteps:    counts[i],
			EnergyDrift: res.EnergyDrift,
			Metrics:     res.Metrics,
			Final:       res.Positions[len(res.Positions)-1],
			Elapsed:     elapsed,
		}
	}
	return out, nil
}
