package sim

import (
	"github.com/san-kum/boxsim/internal/dynamo"
	"github.com/san-kum/boxsim/internal/integrators"
	"github.com/san-kum/boxsim/internal/physics"
)

// Step validates its inputs and advances bodies by one macro timestep of
// cfg. Drivers that step the same set repeatedly should build a World once
// instead.
func Step(cfg dynamo.Config, bodies []dynamo.Body, springs []dynamo.Spring) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	links, err := resolveLinks(bodies, springs)
	if err != nil {
		return err
	}
	step(cfg, bodies, links)
	return nil
}

// step runs the sub-step pipeline: integrate and bound every body, resolve
// every unordered pair, then accumulate spring forces for the next
// integration. Acceleration is reset once per macro-step, so spring
// contributions build up over the sub-steps of a frame.
func step(cfg dynamo.Config, bodies []dynamo.Body, links []physics.Link) {
	n := cfg.SubSteps
	dt := cfg.SubDt()

	for i := range bodies {
		bodies[i].Acc = cfg.Gravity
		integrators.ToSubSteps(&bodies[i], n)
	}

	verlet := integrators.NewVerlet()
	for sub := 0; sub < n; sub++ {
		verlet.Step(dt, bodies)
		for i := range bodies {
			physics.ApplyBounds(&bodies[i], cfg.LowerBound, cfg.UpperBound)
		}
		physics.ResolveCollisions(dt, bodies)
		physics.ApplySprings(links, bodies)
	}

	for i := range bodies {
		integrators.FromSubSteps(&bodies[i], n)
	}
}
