package analysis

import "math"

// imagTol is the absolute imaginary magnitude below which an eigenvalue is
// treated as real, absorbing root-finder noise on real poles.
const imagTol = 1e-9

// Report classifies a closed-loop system from its pole locations.
type Report struct {
	Stable      bool
	Oscillatory bool
}

// Classify inspects closed-loop poles. Stable requires every pole strictly in
// the left half plane; a pole on the imaginary axis counts as unstable (the
// marginal case is deliberately classified as unstable). Oscillatory means at
// least one decaying oscillatory mode exists: a pole with negative real part
// and non-zero imaginary part. The two flags are independent.
func Classify(poles []complex128) Report {
	r := Report{Stable: true}
	for _, p := range poles {
		if real(p) >= 0 {
			r.Stable = false
		}
		if real(p) < 0 && math.Abs(imag(p)) > imagTol {
			r.Oscillatory = true
		}
	}
	return r
}
