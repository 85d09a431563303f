// Package controllers builds the tunable compensator transfer functions.
package controllers

import "github.com/christmascoding/regelungsmaster/internal/lti"

// Kind selects the controller structure.
type Kind string

const (
	P  Kind = "P"
	PI Kind = "PI"
	PD Kind = "PD"
)

// Kinds lists the selectable controller kinds in display order.
func Kinds() []Kind {
	return []Kind{P, PI, PD}
}

// Compose builds the controller transfer function for the given gains.
// Unknown kinds fall back to a pure P controller.
//
// Note the PI form: Kp(1 + Ki/s) realized as [Kp*Ki, Kp]/[1, 0], with Kp*Ki
// as the constant numerator term. This is NOT the textbook (Kp*s + Ki)/s;
// the parameterization is kept exactly as the tool has always computed it.
func Compose(kind Kind, kp, ki, kd float64) lti.TransferFunction {
	switch kind {
	case PI:
		return lti.TransferFunction{
			Num: lti.Polynomial{kp * ki, kp},
			Den: lti.Polynomial{1, 0},
		}
	case PD:
		return lti.TransferFunction{
			Num: lti.Polynomial{kd, kp},
			Den: lti.Polynomial{1},
		}
	default:
		return lti.TransferFunction{
			Num: lti.Polynomial{kp},
			Den: lti.Polynomial{1},
		}
	}
}

// LeadLag builds the first-order compensator (1 + z*s)/(1 + p*s).
// When the element is disabled callers use lti.Identity instead.
func LeadLag(z, p float64) lti.TransferFunction {
	return lti.TransferFunction{
		Num: lti.Polynomial{z, 1},
		Den: lti.Polynomial{p, 1},
	}
}
