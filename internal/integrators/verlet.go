package integrators

import "github.com/san-kum/boxsim/internal/dynamo"

// Integrate advances b by one Position Verlet step of length dt:
//
//	next = 2*pos - prev + acc*dt*dt
func Integrate(dt float64, b *dynamo.Body) {
	next := 2*b.Position - b.PrevPosition + b.Acc*dt*dt
	b.PrevPosition = b.Position
	b.Position = next
}

type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dt float64, bodies []dynamo.Body) {
	for i := range bodies {
		Integrate(dt, &bodies[i])
	}
}

// ToSubSteps rescales the implicit velocity of b by 1/n so that n sub-steps
// cover the same distance as one macro-step.
func ToSubSteps(b *dynamo.Body, n int) {
	v := dynamo.Velocity(b)
	b.PrevPosition = b.Position - v/float64(n)
}

// FromSubSteps undoes ToSubSteps.
func FromSubSteps(b *dynamo.Body, n int) {
	v := dynamo.Velocity(b)
	b.PrevPosition = b.Position - v*float64(n)
}
