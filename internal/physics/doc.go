// Package physics implements the per-sub-step constraints and forces of the
// box simulation. All functions mutate bodies in place and never fail;
// degenerate inputs (zero timestep, zero mass, coincident bodies) contribute
// nothing instead of producing NaN.
//
//   - [ApplyBounds]: clamp into the containment interval, keeping speed
//   - [ResolveCollision]: elastic impulse plus mass-weighted de-penetration
//   - [AccumulateSpringForce]: Hooke's law, added into Body.Acc
//
// # Energy
//
// Kinetic energy of a collision pair is conserved by [ResolveCollision]:
//
//	ke := 0.5*a.Mass*va*va + 0.5*b.Mass*vb*vb
//
// while [ElasticEnergy] gives the potential stored in a spring.
package physics
