// Package ss realizes transfer functions in state space and simulates their
// step response with a fixed-step RK4 integrator.
package ss

import (
	"math"

	"github.com/christmascoding/regelungsmaster/internal/lti"
)

// State is a dense state vector.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// StateSpace is the controllable canonical realization x' = Ax + Bu,
// y = Cx + Du of a proper single-input single-output transfer function.
type StateSpace struct {
	A [][]float64
	B []float64
	C []float64
	D float64
}

// FromTransferFunction realizes g in controllable canonical form. Improper
// systems (numerator degree above denominator degree) have no realization
// and fail with lti.ErrImproper.
func FromTransferFunction(g lti.TransferFunction) (*StateSpace, error) {
	num := g.Num.Trim()
	den := g.Den.Trim()
	if len(den) == 0 {
		return nil, lti.ErrInvalidSystem
	}
	if len(num) > len(den) {
		return nil, lti.ErrImproper
	}

	n := len(den) - 1

	// Normalize monic and pad the numerator to n+1 coefficients.
	a := make([]float64, n+1)
	for i, c := range den {
		a[i] = c / den[0]
	}
	b := make([]float64, n+1)
	for i, c := range num {
		b[n+1-len(num)+i] = c / den[0]
	}

	sys := &StateSpace{D: b[0]}
	if n == 0 {
		return sys, nil
	}

	sys.A = make([][]float64, n)
	for i := 0; i < n-1; i++ {
		sys.A[i] = make([]float64, n)
		sys.A[i][i+1] = 1
	}
	bottom := make([]float64, n)
	for j := 0; j < n; j++ {
		bottom[j] = -a[n-j]
	}
	sys.A[n-1] = bottom

	sys.B = make([]float64, n)
	sys.B[n-1] = 1

	sys.C = make([]float64, n)
	for j := 0; j < n; j++ {
		sys.C[j] = b[n-j] - a[n-j]*b[0]
	}
	return sys, nil
}

// Order returns the state dimension.
func (s *StateSpace) Order() int {
	return len(s.B)
}

// Derive evaluates x' = Ax + Bu.
func (s *StateSpace) Derive(x State, u float64) State {
	n := len(x)
	dx := make(State, n)
	for i := 0; i < n; i++ {
		v := s.B[i] * u
		row := s.A[i]
		for j := 0; j < n; j++ {
			v += row[j] * x[j]
		}
		dx[i] = v
	}
	return dx
}

// Output evaluates y = Cx + Du.
func (s *StateSpace) Output(x State, u float64) float64 {
	y := s.D * u
	for i, c := range s.C {
		y += c * x[i]
	}
	return y
}

// Horizon picks a step-response time span from the system poles: seven time
// constants of the slowest decaying pole, clamped to [1, 100] seconds.
// Systems with no strictly stable pole get a fixed 10 second window.
func Horizon(poles []complex128) float64 {
	slowest := math.Inf(1)
	for _, p := range poles {
		if re := real(p); re < 0 && -re < slowest {
			slowest = -re
		}
	}
	if math.IsInf(slowest, 1) {
		return 10
	}
	t := 7 / slowest
	if t < 1 {
		return 1
	}
	if t > 100 {
		return 100
	}
	return t
}
