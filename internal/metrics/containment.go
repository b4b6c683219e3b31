package metrics

import (
	"github.com/san-kum/boxsim/internal/dynamo"
	"github.com/san-kum/boxsim/internal/physics"
)

// Containment is the fraction of frames in which every body was inside the
// bounds.
type Containment struct {
	lower, upper float64
	violations   int
	samples      int
}

func NewContainment(lower, upper float64) *Containment {
	return &Containment{lower: lower, upper: upper}
}

func (c *Containment) Name() string { return "containment" }

func (c *Containment) Observe(bodies []dynamo.Body, springs []dynamo.Spring, t float64) {
	c.samples++
	for i := range bodies {
		if !physics.InBounds(&bodies[i], c.lower, c.upper) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
