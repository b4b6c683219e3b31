package sim

import (
	"github.com/san-kum/boxsim/internal/dynamo"
)

type RunConfig struct {
	Frames        int
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Frames:        600,
		ValidateState: true,
	}
}

// Result holds one row per recorded frame, including the initial state.
// Positions[f][i] and Velocities[f][i] belong to BodyIDs[i].
type Result struct {
	BodyIDs     []string
	Times       []float64
	Positions   [][]float64
	Velocities  [][]float64
	Metrics     map[string]float64
	EnergyDrift float64
	FramesRun   int
}

func (r *Result) record(bodies []dynamo.Body, t float64) {
	pos := make([]float64, len(bodies))
	vel := make([]float64, len(bodies))
	for i := range bodies {
		pos[i] = bodies[i].Position
		vel[i] = dynamo.Velocity(&bodies[i])
	}
	r.Times = append(r.Times, t)
	r.Positions = append(r.Positions, pos)
	r.Velocities = append(r.Velocities, vel)
}

// Series returns the position history of one body.
func (r *Result) Series(id string) []float64 {
	idx := -1
	for i, bid := range r.BodyIDs {
		if bid == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]float64, len(r.Positions))
	for f, row := range r.Positions {
		out[f] = row[idx]
	}
	return out
}
