// Package export writes the analysis charts to image files.
package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/christmascoding/regelungsmaster/internal/pipeline"
)

var (
	gridGray   = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	tickBlack  = color.RGBA{A: 255}
	centroidM  = color.RGBA{R: 200, B: 200, A: 255}
	markerBlue = color.RGBA{B: 220, A: 255}
	markerRed  = color.RGBA{R: 220, A: 255}
)

// WritePNGs renders step, Bode (gain and phase), Nyquist and root-locus
// charts into dir. Charts whose data is missing (e.g. a skipped step
// response) are left out without error.
func WritePNGs(dir string, r *pipeline.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: cannot create directory: %w", err)
	}

	if r.Step != nil {
		if err := stepPNG(filepath.Join(dir, "step.png"), r); err != nil {
			return err
		}
	}
	if r.Freq != nil {
		if err := gainPNG(filepath.Join(dir, "bode_gain.png"), r); err != nil {
			return err
		}
		if err := phasePNG(filepath.Join(dir, "bode_phase.png"), r); err != nil {
			return err
		}
	}
	if r.Nyquist != nil {
		if err := nyquistPNG(filepath.Join(dir, "nyquist.png"), r); err != nil {
			return err
		}
	}
	if r.Locus != nil {
		if err := locusPNG(filepath.Join(dir, "rootlocus.png"), r); err != nil {
			return err
		}
	}
	return nil
}

func newXYs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(6*vg.Inch, 4.5*vg.Inch, path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func stepPNG(path string, r *pipeline.Result) error {
	p := plot.New()
	p.Title.Text = "Step response"
	p.X.Label.Text = "t [s]"
	p.Y.Label.Text = "y"

	line, err := plotter.NewLine(newXYs(r.Step.Time, r.Step.Output))
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), line)
	return save(p, path)
}

func gainPNG(path string, r *pipeline.Result) error {
	p := plot.New()
	p.Title.Text = "Bode gain"
	p.X.Label.Text = "ω [rad/s]"
	p.Y.Label.Text = "gain [dB]"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}

	line, err := plotter.NewLine(newXYs(r.Freq.Omega, r.Freq.GainDB()))
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), line)
	return save(p, path)
}

// phasePNG draws the phase curve with the 45° grid, the interpolated
// crossing ticks and the quadrant labels.
func phasePNG(path string, r *pipeline.Result) error {
	p := plot.New()
	p.Title.Text = "Bode phase"
	p.X.Label.Text = "ω [rad/s]"
	p.Y.Label.Text = "phase [°]"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}

	line, err := plotter.NewLine(newXYs(r.Freq.Omega, r.Freq.PhaseDeg()))
	if err != nil {
		return err
	}
	p.Add(line)

	ann := r.Bode
	p.Y.Min = ann.PhaseMin
	p.Y.Max = ann.PhaseMax

	wMin := r.Freq.Omega[0]
	wMax := r.Freq.Omega[len(r.Freq.Omega)-1]
	for _, level := range ann.GridLines {
		grid, err := plotter.NewLine(newXYs([]float64{wMin, wMax}, []float64{level, level}))
		if err != nil {
			return err
		}
		grid.LineStyle.Color = gridGray
		grid.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		grid.LineStyle.Width = vg.Points(0.5)
		p.Add(grid)
	}

	for _, tick := range ann.Ticks {
		seg, err := plotter.NewLine(newXYs([]float64{tick.FreqLo, tick.FreqHi}, []float64{tick.Level, tick.Level}))
		if err != nil {
			return err
		}
		seg.LineStyle.Color = tickBlack
		seg.LineStyle.Width = vg.Points(2)
		p.Add(seg)
	}

	if len(ann.Labels) > 0 {
		xys := make(plotter.XYs, len(ann.Labels))
		texts := make([]string, len(ann.Labels))
		for i, l := range ann.Labels {
			xys[i].X = l.Freq
			xys[i].Y = l.Phase
			texts[i] = l.Name
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return err
		}
		p.Add(labels)
	}
	return save(p, path)
}

func nyquistPNG(path string, r *pipeline.Result) error {
	p := plot.New()
	p.Title.Text = "Nyquist"
	p.X.Label.Text = "Re"
	p.Y.Label.Text = "Im"

	line, err := plotter.NewLine(newXYs(r.Nyquist.Re, r.Nyquist.Im))
	if err != nil {
		return err
	}
	mirror, err := plotter.NewLine(newXYs(r.Nyquist.MirrorRe, r.Nyquist.MirrorIm))
	if err != nil {
		return err
	}
	mirror.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}

	critical, err := plotter.NewScatter(newXYs([]float64{-1}, []float64{0}))
	if err != nil {
		return err
	}
	critical.GlyphStyle = draw.GlyphStyle{Shape: draw.PlusGlyph{}, Radius: vg.Points(4), Color: markerRed}

	p.Add(plotter.NewGrid(), line, mirror, critical)
	return save(p, path)
}

func locusPNG(path string, r *pipeline.Result) error {
	p := plot.New()
	p.Title.Text = "Root locus"
	p.X.Label.Text = "Re"
	p.Y.Label.Text = "Im"

	rl := r.Locus
	var pts plotter.XYs
	for _, branch := range rl.Branches {
		for _, pole := range branch {
			pts = append(pts, plotter.XY{X: real(pole), Y: imag(pole)})
		}
	}
	branches, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	branches.GlyphStyle.Radius = vg.Points(1)
	p.Add(plotter.NewGrid(), branches)

	if err := addMarkers(p, rl.OpenPoles, draw.CrossGlyph{}, markerRed); err != nil {
		return err
	}
	if err := addMarkers(p, rl.OpenZeros, draw.RingGlyph{}, markerBlue); err != nil {
		return err
	}
	if rl.HasCentroid {
		if err := addMarkers(p, []complex128{rl.Centroid}, draw.BoxGlyph{}, centroidM); err != nil {
			return err
		}
	}
	if r.LeadZeroOK {
		if err := addMarkers(p, []complex128{r.LeadZero}, draw.CircleGlyph{}, markerBlue); err != nil {
			return err
		}
	}
	if r.LeadPoleOK {
		if err := addMarkers(p, []complex128{r.LeadPole}, draw.PyramidGlyph{}, markerRed); err != nil {
			return err
		}
	}
	return save(p, path)
}

func addMarkers(p *plot.Plot, points []complex128, shape draw.GlyphDrawer, col color.Color) error {
	if len(points) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = real(pt)
		xys[i].Y = imag(pt)
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	sc.GlyphStyle = draw.GlyphStyle{Shape: shape, Radius: vg.Points(4), Color: col}
	p.Add(sc)
	return nil
}
