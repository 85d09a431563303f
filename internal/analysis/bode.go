package analysis

import "math"

const (
	phasePad  = 10.0 // degrees of padding before rounding out to 45° multiples
	gridStep  = 45.0
	tickWidth = 0.02 // crossing ticks span ±2% of the crossing frequency
)

// quadrantLabels maps display labels to fixed phase levels.
var quadrantLabels = map[string]float64{
	"Q1": 45,
	"Q2": 135,
	"Q3": -135,
	"Q4": -45,
}

// PhaseTick marks where the phase curve crosses a 45° grid level. The tick is
// a short horizontal segment [FreqLo, FreqHi] at the grid level, centered on
// the interpolated crossing frequency.
type PhaseTick struct {
	Level  float64
	Freq   float64
	FreqLo float64
	FreqHi float64
}

// QuadrantLabel is a fixed-phase annotation drawn at the sweep midpoint.
type QuadrantLabel struct {
	Name  string
	Phase float64
	Freq  float64
}

// BodeAnnotations carries everything the phase chart overlays: padded 45°
// bounds, grid levels, crossing ticks and quadrant labels. The computation is
// pure and reproduces bit for bit for identical inputs.
type BodeAnnotations struct {
	PhaseMin  float64
	PhaseMax  float64
	GridLines []float64
	Ticks     []PhaseTick
	Labels    []QuadrantLabel
}

// AnnotateBode computes the 45°-grid annotation of a phase curve given in
// degrees over the sweep omega.
func AnnotateBode(phaseDeg, omega []float64) *BodeAnnotations {
	a := &BodeAnnotations{}
	if len(phaseDeg) == 0 || len(phaseDeg) != len(omega) {
		return a
	}

	min, max := phaseDeg[0], phaseDeg[0]
	for _, p := range phaseDeg {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	a.PhaseMin = gridStep * math.Floor((min-phasePad)/gridStep)
	a.PhaseMax = gridStep * math.Ceil((max+phasePad)/gridStep)

	for level := a.PhaseMin; level <= a.PhaseMax; level += gridStep {
		a.GridLines = append(a.GridLines, level)
		a.Ticks = append(a.Ticks, crossings(phaseDeg, omega, level)...)
	}

	mid := omega[len(omega)/2]
	for _, name := range []string{"Q1", "Q2", "Q3", "Q4"} {
		phi := quadrantLabels[name]
		if a.PhaseMin <= phi && phi <= a.PhaseMax {
			a.Labels = append(a.Labels, QuadrantLabel{Name: name, Phase: phi, Freq: mid})
		}
	}
	return a
}

// crossings scans consecutive sample pairs for a strict sign change of
// (p1-target)*(p2-target) and linearly interpolates each crossing frequency.
func crossings(phaseDeg, omega []float64, target float64) []PhaseTick {
	var ticks []PhaseTick
	for i := 0; i < len(phaseDeg)-1; i++ {
		p1, p2 := phaseDeg[i], phaseDeg[i+1]
		if (p1-target)*(p2-target) >= 0 {
			continue
		}
		alpha := (target - p1) / (p2 - p1)
		w := omega[i] + alpha*(omega[i+1]-omega[i])
		ticks = append(ticks, PhaseTick{
			Level:  target,
			Freq:   w,
			FreqLo: w * (1 - tickWidth),
			FreqHi: w * (1 + tickWidth),
		})
	}
	return ticks
}
