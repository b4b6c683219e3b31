package metrics

import (
	"math"

	"github.com/san-kum/boxsim/internal/dynamo"
)

// MomentumDrift is the largest absolute change in total momentum relative to
// the first frame. Collisions and springs conserve momentum; walls and
// gravity do not.
type MomentumDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(bodies []dynamo.Body, springs []dynamo.Spring, t float64) {
	p := 0.0
	for i := range bodies {
		p += bodies[i].Mass * dynamo.Velocity(&bodies[i])
	}
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, math.Abs(p-m.initial))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}
