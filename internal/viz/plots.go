package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/christmascoding/regelungsmaster/internal/analysis"
	"github.com/christmascoding/regelungsmaster/internal/ss"
)

// StepPlot renders the closed-loop step response as a line chart.
func StepPlot(res *ss.StepResult, width, height int) string {
	if res == nil || len(res.Output) == 0 {
		return "step response unavailable"
	}
	span := res.Time[len(res.Time)-1]
	return asciigraph.Plot(res.Output,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("step response, 0..%.1fs", span)),
	)
}

// BodePlot renders the gain and phase charts plus the 45° annotation lines:
// one line per crossing tick and the visible quadrant labels.
func BodePlot(fr *analysis.FrequencyResponse, ann *analysis.BodeAnnotations, width, height int) string {
	if fr == nil || ann == nil || len(fr.Omega) == 0 {
		return "frequency response unavailable"
	}

	var b strings.Builder
	b.WriteString(asciigraph.Plot(fr.GainDB(),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("gain [dB] over log ω"),
	))
	b.WriteString("\n\n")
	b.WriteString(asciigraph.Plot(fr.PhaseDeg(),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("phase [°] over log ω, grid %v..%v", ann.PhaseMin, ann.PhaseMax)),
	))
	b.WriteString("\n")

	for _, tick := range ann.Ticks {
		b.WriteString(fmt.Sprintf("  %+6.0f° crossing at ω=%.3g  [%.3g..%.3g]\n",
			tick.Level, tick.Freq, tick.FreqLo, tick.FreqHi))
	}
	if len(ann.Labels) > 0 {
		b.WriteString("  quadrants:")
		for _, l := range ann.Labels {
			b.WriteString(fmt.Sprintf(" %s@%+.0f°", l.Name, l.Phase))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// NyquistPlot renders the open-loop Nyquist curve with its mirror branch and
// the critical point -1.
func NyquistPlot(curve *analysis.NyquistCurve, width, height int) string {
	if curve == nil || len(curve.Re) == 0 {
		return "nyquist curve unavailable"
	}

	c := NewCanvas(width, height)
	xs := append(append([]float64{}, curve.Re...), curve.MirrorRe...)
	ys := append(append([]float64{}, curve.Im...), curve.MirrorIm...)
	c.Fit(append(xs, -1), append(ys, 0))
	c.Axes()

	for i := 1; i < len(curve.Re); i++ {
		c.Line(curve.Re[i-1], curve.Im[i-1], curve.Re[i], curve.Im[i])
		c.Line(curve.MirrorRe[i-1], curve.MirrorIm[i-1], curve.MirrorRe[i], curve.MirrorIm[i])
	}
	c.Mark(-1, 0, '+')

	return c.String() + "nyquist: + marks the critical point -1\n"
}

// LocusMarkers carries the optional lead/lag markers drawn onto the locus.
type LocusMarkers struct {
	LeadZero, LeadPole     complex128
	LeadZeroOK, LeadPoleOK bool
}

// LocusPlot renders the root-locus branches with open-loop poles (x),
// zeros (o), the asymptote centroid (#) and lead/lag markers.
func LocusPlot(rl *analysis.RootLocus, markers LocusMarkers, width, height int) string {
	if rl == nil || len(rl.Branches) == 0 {
		return "root locus unavailable"
	}

	var xs, ys []float64
	for _, branch := range rl.Branches {
		for _, p := range branch {
			xs = append(xs, real(p))
			ys = append(ys, imag(p))
		}
	}
	for _, p := range rl.OpenPoles {
		xs = append(xs, real(p))
		ys = append(ys, imag(p))
	}
	for _, z := range rl.OpenZeros {
		xs = append(xs, real(z))
		ys = append(ys, imag(z))
	}
	if rl.HasCentroid {
		xs = append(xs, real(rl.Centroid))
		ys = append(ys, imag(rl.Centroid))
	}

	c := NewCanvas(width, height)
	c.Fit(xs, ys)
	c.Axes()

	for _, branch := range rl.Branches {
		for _, p := range branch {
			c.Dot(real(p), imag(p))
		}
	}
	for _, p := range rl.OpenPoles {
		c.Mark(real(p), imag(p), 'x')
	}
	for _, z := range rl.OpenZeros {
		c.Mark(real(z), imag(z), 'o')
	}
	if rl.HasCentroid {
		c.Mark(real(rl.Centroid), imag(rl.Centroid), '#')
	}
	if markers.LeadZeroOK {
		c.Mark(real(markers.LeadZero), imag(markers.LeadZero), 'Z')
	}
	if markers.LeadPoleOK {
		c.Mark(real(markers.LeadPole), imag(markers.LeadPole), 'P')
	}

	legend := "locus: x poles, o zeros, # centroid"
	if markers.LeadZeroOK || markers.LeadPoleOK {
		legend += ", Z/P lead-lag"
	}
	if rl.HasCentroid {
		legend += fmt.Sprintf("  (centroid %.3g%+.3gi)", real(rl.Centroid), imag(rl.Centroid))
	}
	return c.String() + legend + "\n"
}

// PoleTable formats pole locations for the verdict readout.
func PoleTable(poles []complex128) string {
	if len(poles) == 0 {
		return "  (no finite poles)\n"
	}
	var b strings.Builder
	for _, p := range poles {
		b.WriteString(fmt.Sprintf("  %10.4f %+10.4fi\n", real(p), imag(p)))
	}
	return b.String()
}
