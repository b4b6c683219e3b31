// Package analysis inspects recorded runs.
//
//   - [PowerSpectrum] and [DominantPeriod]: oscillation frequency of a body's
//     position history, e.g. a spring pair
//   - [NewPhasePortrait]: position against velocity of one body
//
// Both work on plain series, so they accept columns loaded from the run store
// as well as [sim.Result] histories.
package analysis
