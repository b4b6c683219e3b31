package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for world validation and runs.
var (
	// ErrInvalidMass indicates a body with non-positive or non-finite mass.
	ErrInvalidMass = errors.New("dynamo: body mass must be positive")

	// ErrInvalidRadius indicates a body with negative or non-finite radius.
	ErrInvalidRadius = errors.New("dynamo: body radius must be non-negative")

	// ErrInvalidBounds indicates lower bound >= upper bound.
	ErrInvalidBounds = errors.New("dynamo: lower bound must be below upper bound")

	// ErrInvalidSubSteps indicates a sub-step count below one.
	ErrInvalidSubSteps = errors.New("dynamo: sub-step count must be at least 1")

	// ErrInvalidTimestep indicates a non-positive macro timestep.
	ErrInvalidTimestep = errors.New("dynamo: timestep must be positive")

	// ErrInvalidSpring indicates a spring with bad endpoints or parameters.
	ErrInvalidSpring = errors.New("dynamo: invalid spring")

	// ErrUnknownBody indicates a spring referencing a body that does not exist.
	ErrUnknownBody = errors.New("dynamo: unknown body")

	// ErrDuplicateBody indicates two bodies sharing an ID.
	ErrDuplicateBody = errors.New("dynamo: duplicate body id")

	// ErrDuplicateSpring indicates two springs on the same unordered pair.
	ErrDuplicateSpring = errors.New("dynamo: duplicate spring for body pair")

	// ErrInvalidState indicates a NaN or Inf position, previous position or acceleration.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")
)

// SimulationError wraps an error with the frame it was detected at.
type SimulationError struct {
	Frame   int
	Time    float64
	Body    string
	Wrapped error
}

func (e *SimulationError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("frame %d (t=%.4f) body %q: %v", e.Frame, e.Time, e.Body, e.Wrapped)
	}
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
