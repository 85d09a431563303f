package analysis

import (
	"math"
	"math/cmplx"

	"github.com/christmascoding/regelungsmaster/internal/lti"
)

// FrequencyResponse holds magnitude and phase curves over an angular
// frequency sweep. Phase is in radians and unwrapped (no 2π jumps).
type FrequencyResponse struct {
	Omega []float64
	Mag   []float64
	Phase []float64
}

// LogSpace returns n logarithmically spaced points from 10^minExp to 10^maxExp.
func LogSpace(minExp, maxExp float64, n int) []float64 {
	if n < 2 {
		return []float64{math.Pow(10, minExp)}
	}
	w := make([]float64, n)
	step := (maxExp - minExp) / float64(n-1)
	for i := range w {
		w[i] = math.Pow(10, minExp+float64(i)*step)
	}
	return w
}

// Response evaluates G(jω) over the sweep. The phase curve is unwrapped so
// the 45°-grid crossing scan sees a continuous curve.
func Response(g lti.TransferFunction, omega []float64) *FrequencyResponse {
	fr := &FrequencyResponse{
		Omega: omega,
		Mag:   make([]float64, len(omega)),
		Phase: make([]float64, len(omega)),
	}
	prev := 0.0
	for i, w := range omega {
		v := g.Eval(complex(0, w))
		fr.Mag[i] = cmplx.Abs(v)

		ph := cmplx.Phase(v)
		if i > 0 {
			for ph-prev > math.Pi {
				ph -= 2 * math.Pi
			}
			for ph-prev < -math.Pi {
				ph += 2 * math.Pi
			}
		}
		fr.Phase[i] = ph
		prev = ph
	}
	return fr
}

// GainDB returns the magnitude curve in decibels.
func (fr *FrequencyResponse) GainDB() []float64 {
	db := make([]float64, len(fr.Mag))
	for i, m := range fr.Mag {
		db[i] = 20 * math.Log10(m)
	}
	return db
}

// PhaseDeg returns the phase curve in degrees.
func (fr *FrequencyResponse) PhaseDeg() []float64 {
	deg := make([]float64, len(fr.Phase))
	for i, p := range fr.Phase {
		deg[i] = p * 180 / math.Pi
	}
	return deg
}

// NyquistCurve is the open-loop frequency response traced in the complex
// plane, with the mirrored branch for negative frequencies.
type NyquistCurve struct {
	Re, Im             []float64
	MirrorRe, MirrorIm []float64
}

// Nyquist evaluates the parametric Nyquist curve of g over the sweep.
func Nyquist(g lti.TransferFunction, omega []float64) *NyquistCurve {
	n := len(omega)
	c := &NyquistCurve{
		Re:       make([]float64, n),
		Im:       make([]float64, n),
		MirrorRe: make([]float64, n),
		MirrorIm: make([]float64, n),
	}
	for i, w := range omega {
		v := g.Eval(complex(0, w))
		c.Re[i] = real(v)
		c.Im[i] = imag(v)
		c.MirrorRe[i] = real(v)
		c.MirrorIm[i] = -imag(v)
	}
	return c
}
