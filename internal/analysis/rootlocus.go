package analysis

import (
	"math"

	"github.com/christmascoding/regelungsmaster/internal/lti"
)

// RootLocus holds the closed-loop pole trajectories of an open-loop system
// as the feedback gain sweeps, plus the annotation data drawn on top.
type RootLocus struct {
	Gains    []float64
	Branches [][]complex128 // Branches[i] are the poles at Gains[i]

	OpenPoles []complex128
	OpenZeros []complex128

	Centroid    complex128
	HasCentroid bool
}

// Centroid computes the root-locus asymptote centroid (sum of poles minus
// sum of zeros over the excess pole count). When the pole and zero counts
// match no centroid exists and ok is false; the case is skipped outright
// rather than produced as NaN.
func Centroid(poles, zeros []complex128) (complex128, bool) {
	if len(poles) == len(zeros) {
		return 0, false
	}
	var sum complex128
	for _, p := range poles {
		sum += p
	}
	for _, z := range zeros {
		sum -= z
	}
	return sum / complex(float64(len(poles)-len(zeros)), 0), true
}

// Locus sweeps the feedback gain over a geometric grid from near zero to
// maxGain and records the roots of den + k*num at each step.
func Locus(open lti.TransferFunction, maxGain float64, points int) *RootLocus {
	if points < 2 {
		points = 2
	}
	if maxGain <= 0 {
		maxGain = 100
	}

	rl := &RootLocus{
		Gains:     make([]float64, 0, points+1),
		Branches:  make([][]complex128, 0, points+1),
		OpenPoles: open.Poles(),
		OpenZeros: open.Zeros(),
	}
	rl.Centroid, rl.HasCentroid = Centroid(rl.OpenPoles, rl.OpenZeros)

	// Geometric grid over four decades below maxGain, anchored at k=0.
	minGain := maxGain * 1e-4
	ratio := math.Pow(maxGain/minGain, 1/float64(points-1))

	rl.Gains = append(rl.Gains, 0)
	rl.Branches = append(rl.Branches, rl.OpenPoles)

	k := minGain
	for i := 0; i < points; i++ {
		den := open.Den.Add(open.Num.Scale(k))
		rl.Gains = append(rl.Gains, k)
		rl.Branches = append(rl.Branches, lti.Roots(den))
		k *= ratio
	}
	return rl
}

// LeadLagMarkers returns the root-locus marker positions -1/z and -1/p of an
// active lead/lag element. Markers for a zero-valued parameter are dropped.
func LeadLagMarkers(z, p float64) (zero, pole complex128, zeroOK, poleOK bool) {
	if z != 0 {
		zero, zeroOK = complex(-1/z, 0), true
	}
	if p != 0 {
		pole, poleOK = complex(-1/p, 0), true
	}
	return
}
