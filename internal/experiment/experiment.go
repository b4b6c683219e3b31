package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/sim"
	"github.com/san-kum/boxsim/internal/storage"
)

type Experiment struct {
	scenario  *config.Scenario
	simulator *sim.Simulator
}

func New(s *config.Scenario) *Experiment {
	return &Experiment{scenario: s}
}

// Setup builds the world and attaches the given metrics. With no metrics the
// registry defaults are used.
func (e *Experiment) Setup(metricNames ...string) error {
	world, err := buildWorld(e.scenario)
	if err != nil {
		return err
	}

	registry := NewRegistry()
	if len(metricNames) == 0 {
		metricNames = registry.ListMetrics()
	}

	e.simulator = sim.New(world)
	for _, name := range metricNames {
		m, err := registry.GetMetric(name, e.scenario)
		if err != nil {
			return err
		}
		e.simulator.AddMetric(m)
	}
	return nil
}

func buildWorld(s *config.Scenario) (*sim.World, error) {
	cfg, bodies, springs, err := s.Build()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	world, err := sim.NewWorld(cfg, bodies, springs)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return world, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, sim.RunConfig{
		Frames:        e.scenario.Frames,
		ValidateState: true,
	})
}

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}

// Metadata describes the scenario for the run store.
func (e *Experiment) Metadata() storage.RunMetadata {
	s := e.scenario
	return storage.RunMetadata{
		Scenario:   s.Name,
		Timestep:   s.Timestep,
		SubSteps:   s.SubSteps,
		LowerBound: s.LowerBound,
		UpperBound: s.UpperBound,
		Gravity:    s.Gravity,
	}
}
