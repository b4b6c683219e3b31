package dynamo

import (
	"fmt"
	"math"
)

// Body is a point mass on the vertical axis. Velocity is never stored; it is
// the difference between Position and PrevPosition.
type Body struct {
	ID           string
	Position     float64
	PrevPosition float64
	Acc          float64
	Mass         float64
	Radius       float64
}

// NewBody returns a body at rest at pos.
func NewBody(id string, pos, mass, radius float64) Body {
	return Body{
		ID:           id,
		Position:     pos,
		PrevPosition: pos,
		Mass:         mass,
		Radius:       radius,
	}
}

// Velocity returns the implicit per-step velocity of b.
func Velocity(b *Body) float64 {
	return b.Position - b.PrevPosition
}

// SetVelocity rewrites PrevPosition so that Velocity(b) == v.
func SetVelocity(b *Body, v float64) {
	b.PrevPosition = b.Position - v
}

func (b *Body) IsValid() bool {
	for _, v := range [...]float64{b.Position, b.PrevPosition, b.Acc} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (b *Body) Validate() error {
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return fmt.Errorf("%w: body %q has mass %g", ErrInvalidMass, b.ID, b.Mass)
	}
	if !(b.Radius >= 0) || math.IsInf(b.Radius, 0) {
		return fmt.Errorf("%w: body %q has radius %g", ErrInvalidRadius, b.ID, b.Radius)
	}
	if !b.IsValid() {
		return fmt.Errorf("%w: body %q", ErrInvalidState, b.ID)
	}
	return nil
}

// Spring is a linear spring between two distinct bodies, referenced by ID.
type Spring struct {
	A             string
	B             string
	Stiffness     float64
	RestingLength float64
}

// Name identifies the spring as "a-b".
func (s Spring) Name() string {
	return s.A + "-" + s.B
}

func (s Spring) Validate() error {
	if s.A == s.B {
		return fmt.Errorf("%w: spring %s connects a body to itself", ErrInvalidSpring, s.Name())
	}
	if !(s.Stiffness >= 0) || math.IsInf(s.Stiffness, 0) {
		return fmt.Errorf("%w: spring %s has stiffness %g", ErrInvalidSpring, s.Name(), s.Stiffness)
	}
	if !(s.RestingLength >= 0) || math.IsInf(s.RestingLength, 0) {
		return fmt.Errorf("%w: spring %s has resting length %g", ErrInvalidSpring, s.Name(), s.RestingLength)
	}
	return nil
}

// Config describes the containment interval and time stepping of a world.
type Config struct {
	LowerBound float64
	UpperBound float64
	SubSteps   int
	Timestep   float64
	// Gravity is the acceleration every body starts each macro-step with.
	Gravity float64
}

func DefaultConfig() Config {
	return Config{
		LowerBound: 0,
		UpperBound: 600,
		SubSteps:   14,
		Timestep:   1,
	}
}

// SubDt is the duration of a single sub-step.
func (c Config) SubDt() float64 {
	return c.Timestep / float64(c.SubSteps)
}

func (c Config) Validate() error {
	if math.IsNaN(c.LowerBound) || math.IsNaN(c.UpperBound) || !(c.LowerBound < c.UpperBound) {
		return fmt.Errorf("%w: lower %g, upper %g", ErrInvalidBounds, c.LowerBound, c.UpperBound)
	}
	if c.SubSteps < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSubSteps, c.SubSteps)
	}
	if !(c.Timestep > 0) || math.IsInf(c.Timestep, 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidTimestep, c.Timestep)
	}
	if math.IsNaN(c.Gravity) || math.IsInf(c.Gravity, 0) {
		return fmt.Errorf("%w: gravity %g", ErrParameterBounds, c.Gravity)
	}
	return nil
}

// Sign returns -1, 0 or 1. Zero maps to zero so that coincident bodies get no
// directional push.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(bodies []Body, springs []Spring, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every frame.
type Observer interface {
	OnFrame(bodies []Body, t float64)
}
