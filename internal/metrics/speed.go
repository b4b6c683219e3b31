package metrics

import (
	"math"

	"github.com/san-kum/boxsim/internal/dynamo"
)

type MeanSpeed struct {
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{}
}

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(bodies []dynamo.Body, springs []dynamo.Spring, t float64) {
	for i := range bodies {
		m.sum += math.Abs(dynamo.Velocity(&bodies[i]))
		m.samples++
	}
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}
