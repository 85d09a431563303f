package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// DominantFrequency estimates the dominant oscillation frequency (rad/s) of a
// uniformly sampled response by locating the peak bin of its spectrum. The
// signal is detrended against its final value first, so the step-response
// plateau does not bury the oscillatory mode in the DC bin. Returns ok=false
// when no oscillatory content stands out.
func DominantFrequency(y []float64, dt float64) (float64, bool) {
	if len(y) < 8 || dt <= 0 {
		return 0, false
	}

	detrended := make([]float64, len(y))
	final := y[len(y)-1]
	total := 0.0
	for i, v := range y {
		detrended[i] = v - final
		total += math.Abs(detrended[i])
	}
	if total == 0 {
		return 0, false
	}

	spec := fft.FFTReal(detrended)

	// Skip DC; only the first half carries unique frequencies.
	peak := 0.0
	peakBin := 0
	for i := 1; i < len(spec)/2; i++ {
		if m := cmplx.Abs(spec[i]); m > peak {
			peak = m
			peakBin = i
		}
	}
	if peakBin == 0 {
		return 0, false
	}

	// The transient itself always has spectral content; require the peak to
	// stand clear of the neighboring average before calling it oscillatory.
	if peakBin == 1 {
		decay := cmplx.Abs(spec[1]) / (cmplx.Abs(spec[2]) + 1e-300)
		if decay < 2 {
			return 0, false
		}
	}

	freqHz := float64(peakBin) / (float64(len(y)) * dt)
	return 2 * math.Pi * freqHz, true
}
