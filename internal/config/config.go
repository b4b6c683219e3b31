package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/san-kum/boxsim/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLowerBound = 0.0
	DefaultUpperBound = 600.0
	DefaultSubSteps   = 14
	DefaultTimestep   = 1.0
	DefaultFrames     = 600
	DefaultMass       = 10.0
	DefaultHalfSize   = 6.0
)

// Scenario is the on-disk description of a world and how long to run it.
type Scenario struct {
	Name       string         `yaml:"name"`
	LowerBound float64        `yaml:"lower_bound"`
	UpperBound float64        `yaml:"upper_bound"`
	SubSteps   int            `yaml:"sub_steps"`
	Timestep   float64        `yaml:"timestep"`
	Gravity    float64        `yaml:"gravity"`
	Frames     int            `yaml:"frames"`
	Bodies     []BodyConfig   `yaml:"bodies"`
	Springs    []SpringConfig `yaml:"springs,omitempty"`
}

// BodyConfig gives the initial state of one body. When PrevPosition is
// omitted it is derived from Velocity.
type BodyConfig struct {
	ID           string   `yaml:"id,omitempty"`
	Position     float64  `yaml:"position"`
	PrevPosition *float64 `yaml:"previous_position,omitempty"`
	Velocity     float64  `yaml:"velocity,omitempty"`
	Mass         float64  `yaml:"mass"`
	Radius       float64  `yaml:"radius"`
}

type SpringConfig struct {
	A             string  `yaml:"a"`
	B             string  `yaml:"b"`
	Stiffness     float64 `yaml:"stiffness"`
	RestingLength float64 `yaml:"resting_length"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Name:       "custom",
		LowerBound: DefaultLowerBound,
		UpperBound: DefaultUpperBound,
		SubSteps:   DefaultSubSteps,
		Timestep:   DefaultTimestep,
		Frames:     DefaultFrames,
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultScenario()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets can be modified by callers.
func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Bodies = make([]BodyConfig, len(s.Bodies))
	for i, b := range s.Bodies {
		c.Bodies[i] = b
		if b.PrevPosition != nil {
			p := *b.PrevPosition
			c.Bodies[i].PrevPosition = &p
		}
	}
	c.Springs = append([]SpringConfig(nil), s.Springs...)
	return &c
}

func (s *Scenario) SimConfig() dynamo.Config {
	return dynamo.Config{
		LowerBound: s.LowerBound,
		UpperBound: s.UpperBound,
		SubSteps:   s.SubSteps,
		Timestep:   s.Timestep,
		Gravity:    s.Gravity,
	}
}

// Validate checks the scenario-level fields. Body and spring checks happen
// when the world is built.
func (s *Scenario) Validate() error {
	if s.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, s.Frames)
	}
	if len(s.Bodies) == 0 {
		return fmt.Errorf("%w: scenario %q has no bodies", dynamo.ErrParameterBounds, s.Name)
	}
	return s.SimConfig().Validate()
}

// Build converts the scenario into kernel types. Bodies without an ID get a
// generated one, which is written back so springs and later runs agree.
func (s *Scenario) Build() (dynamo.Config, []dynamo.Body, []dynamo.Spring, error) {
	if err := s.Validate(); err != nil {
		return dynamo.Config{}, nil, nil, err
	}

	bodies := make([]dynamo.Body, len(s.Bodies))
	for i := range s.Bodies {
		bc := &s.Bodies[i]
		if bc.ID == "" {
			bc.ID = "body-" + uuid.NewString()[:8]
		}
		prev := bc.Position - bc.Velocity
		if bc.PrevPosition != nil {
			prev = *bc.PrevPosition
		}
		bodies[i] = dynamo.Body{
			ID:           bc.ID,
			Position:     bc.Position,
			PrevPosition: prev,
			Mass:         bc.Mass,
			Radius:       bc.Radius,
		}
	}

	springs := make([]dynamo.Spring, len(s.Springs))
	for i, sc := range s.Springs {
		springs[i] = dynamo.Spring{
			A:             sc.A,
			B:             sc.B,
			Stiffness:     sc.Stiffness,
			RestingLength: sc.RestingLength,
		}
	}

	return s.SimConfig(), bodies, springs, nil
}
