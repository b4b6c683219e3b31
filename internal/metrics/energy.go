package metrics

import (
	"math"

	"github.com/san-kum/boxsim/internal/dynamo"
)

// Energy is the mean total (kinetic + elastic) energy over the run.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(bodies []dynamo.Body, springs []dynamo.Spring, t float64) {
	e.totalEnergy += Compute(bodies, springs).Total
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative deviation from the first observed
// total energy.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []dynamo.Body, springs []dynamo.Spring, t float64) {
	energy := Compute(bodies, springs).Total

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// SmoothedKinetic is the windowed mean of total kinetic energy, i.e. the
// value the stats overlay would show at the end of the run.
type SmoothedKinetic struct {
	window *Window
}

func NewSmoothedKinetic(size int) *SmoothedKinetic {
	return &SmoothedKinetic{window: NewWindow(size)}
}

func (s *SmoothedKinetic) Name() string { return "kinetic_smoothed" }

func (s *SmoothedKinetic) Observe(bodies []dynamo.Body, springs []dynamo.Spring, t float64) {
	s.window.Push(Compute(bodies, nil).TotalKinetic)
}

func (s *SmoothedKinetic) Value() float64 { return s.window.Mean() }

func (s *SmoothedKinetic) Reset() { s.window.Reset() }
