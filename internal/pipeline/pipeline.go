// Package pipeline runs the full analysis chain: parse, build, compose,
// classify, annotate. One call per user interaction, no state in between.
package pipeline

import (
	"fmt"

	"github.com/christmascoding/regelungsmaster/internal/analysis"
	"github.com/christmascoding/regelungsmaster/internal/config"
	"github.com/christmascoding/regelungsmaster/internal/controllers"
	"github.com/christmascoding/regelungsmaster/internal/lti"
	"github.com/christmascoding/regelungsmaster/internal/parse"
	"github.com/christmascoding/regelungsmaster/internal/ss"
)

// Input is the raw state of the user-facing controls.
type Input struct {
	ZPK   bool
	Num   string
	Den   string
	Zeros string
	Poles string

	Controller controllers.Kind
	Kp, Ki, Kd float64

	LeadLag bool
	Z, P    float64
}

// InputFromConfig seeds an Input from the configured defaults.
func InputFromConfig(in config.InputConfig) Input {
	return Input{
		ZPK:        in.ZPK,
		Num:        in.Num,
		Den:        in.Den,
		Zeros:      in.Zeros,
		Poles:      in.Poles,
		Controller: controllers.Kind(in.Controller),
		Kp:         in.Kp,
		Ki:         in.Ki,
		Kd:         in.Kd,
		LeadLag:    in.LeadLag,
		Z:          in.Z,
		P:          in.P,
	}
}

// Result carries everything the rendering surfaces display. All fields are
// valid even after input errors; Notices lists what went wrong and which
// fallbacks were substituted.
type Result struct {
	Plant      lti.TransferFunction
	Controller lti.TransferFunction
	LeadLag    lti.TransferFunction
	OpenLoop   lti.TransferFunction
	ClosedLoop lti.TransferFunction

	ClosedPoles []complex128
	Stability   analysis.Report

	Freq    *analysis.FrequencyResponse
	Bode    *analysis.BodeAnnotations
	Nyquist *analysis.NyquistCurve
	Locus   *analysis.RootLocus
	Step    *ss.StepResult

	// Dominant oscillation frequency read off the step response spectrum.
	OscFreq   float64
	OscFreqOK bool

	// Root-locus markers of an active lead/lag element (-1/z, -1/p).
	LeadZero, LeadPole     complex128
	LeadZeroOK, LeadPoleOK bool

	Notices []string
}

// Run executes one full, deterministic recompute. It never fails: every
// construction error collapses to the identity system plus a notice, so the
// charts always have a valid system to draw.
func Run(in Input, cfg *config.Config) *Result {
	r := &Result{}

	r.Plant = buildPlant(in, r)
	r.Controller = controllers.Compose(in.Controller, in.Kp, in.Ki, in.Kd)
	if in.LeadLag {
		r.LeadLag = controllers.LeadLag(in.Z, in.P)
		r.LeadZero, r.LeadPole, r.LeadZeroOK, r.LeadPoleOK = analysis.LeadLagMarkers(in.Z, in.P)
	} else {
		r.LeadLag = lti.Identity()
	}

	r.OpenLoop = r.Controller.Mul(r.Plant).Mul(r.LeadLag)

	closed, err := r.OpenLoop.Feedback()
	if err != nil {
		r.notef("closed loop: %v", err)
		closed = lti.Identity()
	}
	r.ClosedLoop = closed

	r.ClosedPoles = r.ClosedLoop.Poles()
	r.Stability = analysis.Classify(r.ClosedPoles)

	w := analysis.LogSpace(cfg.Sweep.MinExp, cfg.Sweep.MaxExp, cfg.Sweep.Points)
	r.Freq = analysis.Response(r.OpenLoop, w)
	r.Bode = analysis.AnnotateBode(r.Freq.PhaseDeg(), w)
	r.Nyquist = analysis.Nyquist(r.OpenLoop, w)
	r.Locus = analysis.Locus(r.OpenLoop, cfg.Locus.MaxGain, cfg.Locus.Points)

	step, err := ss.StepResponse(r.ClosedLoop, cfg.Step.Points)
	if err != nil {
		r.notef("step response: %v", err)
	} else {
		r.Step = step
		r.OscFreq, r.OscFreqOK = analysis.DominantFrequency(step.Output, step.Dt)
	}
	return r
}

func buildPlant(in Input, r *Result) lti.TransferFunction {
	if in.ZPK {
		zeros, err := parse.ComplexList(in.Zeros)
		if err != nil {
			r.notef("zeros: %v", err)
			return lti.Identity()
		}
		poles, err := parse.ComplexList(in.Poles)
		if err != nil {
			r.notef("poles: %v", err)
			return lti.Identity()
		}
		// Gain is fixed at 1 here; the input surface has no gain control.
		g, err := lti.FromZPK(zeros, poles, 1)
		if err != nil {
			r.notef("zero/pole system: %v", err)
			return lti.Identity()
		}
		return g
	}

	num, err := parse.ComplexList(in.Num)
	if err != nil {
		r.notef("numerator: %v", err)
		return lti.Identity()
	}
	den, err := parse.ComplexList(in.Den)
	if err != nil {
		r.notef("denominator: %v", err)
		return lti.Identity()
	}
	g, err := lti.FromComplex(num, den)
	if err != nil {
		r.notef("transfer function: %v", err)
		return lti.Identity()
	}
	return g
}

func (r *Result) notef(format string, args ...any) {
	r.Notices = append(r.Notices, fmt.Sprintf(format, args...))
}
