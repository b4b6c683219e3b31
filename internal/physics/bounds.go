package physics

import "github.com/san-kum/boxsim/internal/dynamo"

// ApplyBounds clamps b into [lower+radius, upper-radius]. On a clamp the
// previous position is placed at Position plus the pre-clamp velocity, so the
// speed of the body is kept. A body already inside the interval is untouched.
func ApplyBounds(b *dynamo.Body, lower, upper float64) {
	v := dynamo.Velocity(b)

	if b.Position < lower+b.Radius {
		b.Position = lower + b.Radius
		b.PrevPosition = b.Position + v
	}
	if b.Position > upper-b.Radius {
		b.Position = upper - b.Radius
		b.PrevPosition = b.Position + v
	}
}

// InBounds reports whether b lies fully inside [lower, upper].
func InBounds(b *dynamo.Body, lower, upper float64) bool {
	return b.Position >= lower+b.Radius && b.Position <= upper-b.Radius
}
