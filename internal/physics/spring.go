package physics

import "github.com/san-kum/boxsim/internal/dynamo"

// SpringForce returns the Hooke's law force magnitude of s for bodies at
// posA and posB: positive when stretched, negative when compressed.
func SpringForce(s dynamo.Spring, posA, posB float64) float64 {
	return s.Stiffness * (abs(posA-posB) - s.RestingLength)
}

// ElasticEnergy returns 0.5*k*d^2 for the current displacement of s.
func ElasticEnergy(s dynamo.Spring, posA, posB float64) float64 {
	d := abs(posA-posB) - s.RestingLength
	return 0.5 * s.Stiffness * d * d
}

// AccumulateSpringForce adds the acceleration s exerts on a and b to their
// Acc fields. Coincident bodies get no force since the direction is undefined.
func AccumulateSpringForce(s dynamo.Spring, a, b *dynamo.Body) {
	delta := a.Position - b.Position
	dir := dynamo.Sign(delta)
	if dir == 0 {
		return
	}

	force := s.Stiffness * (abs(delta) - s.RestingLength)
	forceA := -force * dir

	if a.Mass > 0 {
		a.Acc += forceA / a.Mass
	}
	if b.Mass > 0 {
		b.Acc -= forceA / b.Mass
	}
}

// Link is a spring whose endpoints have been resolved to body indices.
type Link struct {
	Spring dynamo.Spring
	A, B   int
}

// ApplySprings accumulates every link's force exactly once.
func ApplySprings(links []Link, bodies []dynamo.Body) {
	for _, l := range links {
		AccumulateSpringForce(l.Spring, &bodies[l.A], &bodies[l.B])
	}
}
