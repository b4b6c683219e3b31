package sim

import (
	"fmt"

	"github.com/san-kum/boxsim/internal/dynamo"
	"github.com/san-kum/boxsim/internal/physics"
)

// World is a validated set of bodies and springs. Springs are resolved to
// body indices once, so each step applies every spring exactly once without
// looking bodies up by ID.
type World struct {
	Config  dynamo.Config
	Bodies  []dynamo.Body
	Springs []dynamo.Spring
	links   []physics.Link
	t       float64
}

// NewWorld validates cfg, bodies and springs. The bodies slice is used in
// place: stepping the world mutates the caller's slice.
func NewWorld(cfg dynamo.Config, bodies []dynamo.Body, springs []dynamo.Spring) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	links, err := resolveLinks(bodies, springs)
	if err != nil {
		return nil, err
	}
	return &World{
		Config:  cfg,
		Bodies:  bodies,
		Springs: springs,
		links:   links,
	}, nil
}

func resolveLinks(bodies []dynamo.Body, springs []dynamo.Spring) ([]physics.Link, error) {
	index := make(map[string]int, len(bodies))
	for i := range bodies {
		if err := bodies[i].Validate(); err != nil {
			return nil, err
		}
		if _, ok := index[bodies[i].ID]; ok {
			return nil, fmt.Errorf("%w: %q", dynamo.ErrDuplicateBody, bodies[i].ID)
		}
		index[bodies[i].ID] = i
	}

	type pair struct{ lo, hi int }
	seen := make(map[pair]bool, len(springs))
	links := make([]physics.Link, 0, len(springs))

	for _, s := range springs {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		a, ok := index[s.A]
		if !ok {
			return nil, fmt.Errorf("%w: spring %s references %q", dynamo.ErrUnknownBody, s.Name(), s.A)
		}
		b, ok := index[s.B]
		if !ok {
			return nil, fmt.Errorf("%w: spring %s references %q", dynamo.ErrUnknownBody, s.Name(), s.B)
		}

		p := pair{a, b}
		if b < a {
			p = pair{b, a}
		}
		if seen[p] {
			return nil, fmt.Errorf("%w: %s", dynamo.ErrDuplicateSpring, s.Name())
		}
		seen[p] = true

		links = append(links, physics.Link{Spring: s, A: a, B: b})
	}
	return links, nil
}

// Step advances the world by one macro timestep.
func (w *World) Step() {
	step(w.Config, w.Bodies, w.links)
	w.t += w.Config.Timestep
}

// Time is the simulated time elapsed since the world was created.
func (w *World) Time() float64 { return w.t }

// Body returns the body with the given ID.
func (w *World) Body(id string) (*dynamo.Body, bool) {
	for i := range w.Bodies {
		if w.Bodies[i].ID == id {
			return &w.Bodies[i], true
		}
	}
	return nil, false
}

// Validate reports the first body holding a NaN or Inf.
func (w *World) Validate() error {
	for i := range w.Bodies {
		if !w.Bodies[i].IsValid() {
			return fmt.Errorf("%w: body %q", dynamo.ErrInvalidState, w.Bodies[i].ID)
		}
	}
	return nil
}
