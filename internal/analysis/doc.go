// Package analysis characterizes linear closed loops in the frequency
// and root-locus domains.
//
// The package includes tools for judging and charting a loop:
//
//   - [Classify]: stability and oscillation verdict from closed-loop poles
//   - [Response]: frequency response with unwrapped phase
//   - [AnnotateBode]: 45° phase grid, crossing ticks and quadrant labels
//   - [Nyquist]: polar curve with its mirrored branch
//   - [Locus]: root-locus branches over a gain sweep
//   - [DominantFrequency]: oscillation frequency from a step response
//
// # Stability
//
// A loop is stable when every pole lies strictly in the left half plane:
//
//	report := analysis.Classify(poles)
//	if !report.Stable {
//	    // At least one pole has a non-negative real part
//	}
package analysis
