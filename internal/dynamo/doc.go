// Package dynamo provides the core data types of the 1-D box simulation.
//
// The package defines the entities shared by every other package:
//
//   - [Body]: a point mass on the vertical axis, stored as current and
//     previous position (Position Verlet); velocity is derived by [Velocity]
//   - [Spring]: a linear spring between two bodies referenced by ID
//   - [Config]: containment bounds, macro timestep and sub-step count
//
// # Validation
//
// Kernel functions in the integrators and physics packages never fail. All
// preconditions (positive mass, ordered bounds, at least one sub-step) are
// checked up front by the Validate methods, which wrap the sentinel errors of
// this package:
//
//	if err := cfg.Validate(); errors.Is(err, dynamo.ErrInvalidBounds) {
//	    ...
//	}
package dynamo
