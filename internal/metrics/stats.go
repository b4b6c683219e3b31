package metrics

import (
	"github.com/san-kum/boxsim/internal/dynamo"
	"github.com/san-kum/boxsim/internal/physics"
	"gonum.org/v1/gonum/floats"
)

type BodyStats struct {
	ID            string
	Velocity      float64
	KineticEnergy float64
}

type SpringStats struct {
	Name          string
	Force         float64
	ElasticEnergy float64
}

// Stats is a snapshot of per-body and per-spring energy. Velocities are in
// position units per frame.
type Stats struct {
	Bodies       []BodyStats
	Springs      []SpringStats
	TotalKinetic float64
	TotalElastic float64
	Total        float64
	Momentum     float64
}

// Compute builds a Stats snapshot. Springs whose endpoints are missing from
// bodies are skipped.
func Compute(bodies []dynamo.Body, springs []dynamo.Spring) Stats {
	st := Stats{
		Bodies:  make([]BodyStats, 0, len(bodies)),
		Springs: make([]SpringStats, 0, len(springs)),
	}

	index := make(map[string]int, len(bodies))
	ke := make([]float64, 0, len(bodies))
	p := make([]float64, 0, len(bodies))
	for i := range bodies {
		b := &bodies[i]
		index[b.ID] = i

		v := dynamo.Velocity(b)
		e := KineticEnergy(b.Mass, v)
		st.Bodies = append(st.Bodies, BodyStats{ID: b.ID, Velocity: v, KineticEnergy: e})
		ke = append(ke, e)
		p = append(p, b.Mass*v)
	}

	ee := make([]float64, 0, len(springs))
	for _, s := range springs {
		a, okA := index[s.A]
		b, okB := index[s.B]
		if !okA || !okB {
			continue
		}
		posA, posB := bodies[a].Position, bodies[b].Position
		e := physics.ElasticEnergy(s, posA, posB)
		st.Springs = append(st.Springs, SpringStats{
			Name:          s.Name(),
			Force:         physics.SpringForce(s, posA, posB),
			ElasticEnergy: e,
		})
		ee = append(ee, e)
	}

	st.TotalKinetic = floats.Sum(ke)
	st.TotalElastic = floats.Sum(ee)
	st.Total = st.TotalKinetic + st.TotalElastic
	st.Momentum = floats.Sum(p)
	return st
}

// KineticEnergy returns 0.5*m*v^2.
func KineticEnergy(mass, v float64) float64 {
	return 0.5 * mass * v * v
}
