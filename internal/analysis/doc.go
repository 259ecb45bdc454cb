// Package analysis inspects recorded runs.
//
//   - [DominantPeriod]: cycle length of the piston trace from its spectrum
//   - [CrossingPeriod]: cycle length from crank wrap-arounds
//   - [NewPhasePortrait]: crank angle against piston position
//
// A run at constant inputs should show one dominant period close to
// [ExpectedPeriod]:
//
//	period, _ := analysis.DominantPeriod(storage.PistonTrace(samples))
//	want := analysis.ExpectedPeriod(meta.Speed)
package analysis
