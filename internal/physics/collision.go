package physics

import "github.com/san-kum/boxsim/internal/dynamo"

// Overlap returns the penetration depth of i and j, zero when they are apart
// or just touching.
func Overlap(i, j *dynamo.Body) float64 {
	d := abs(i.Position-j.Position) - (i.Radius + j.Radius)
	if d >= 0 {
		return 0
	}
	return -d
}

// ResolveCollision separates two overlapping bodies and exchanges momentum
// with the 1-D elastic collision formula. The outcome does not depend on the
// argument order.
func ResolveCollision(dt float64, i, j *dynamo.Body) {
	overlap := Overlap(i, j)
	if overlap == 0 || dt <= 0 {
		return
	}

	totalMass := i.Mass + j.Mass
	if totalMass <= 0 {
		return
	}

	vi := dynamo.Velocity(i) / dt
	vj := dynamo.Velocity(j) / dt
	viNext := (vi*(i.Mass-j.Mass) + 2*j.Mass*vj) / totalMass
	vjNext := (vj*(j.Mass-i.Mass) + 2*i.Mass*vi) / totalMass

	pushI := overlap * j.Mass / totalMass
	pushJ := overlap * i.Mass / totalMass

	jToI := dynamo.Sign(i.Position - j.Position)
	i.Position += pushI * jToI
	j.Position -= pushJ * jToI

	i.PrevPosition = i.Position - viNext*dt
	j.PrevPosition = j.Position - vjNext*dt
}

// ResolveCollisions runs ResolveCollision over every unordered pair once.
func ResolveCollisions(dt float64, bodies []dynamo.Body) {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			ResolveCollision(dt, &bodies[i], &bodies[j])
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
