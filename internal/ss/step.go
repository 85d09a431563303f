package ss

import "github.com/christmascoding/regelungsmaster/internal/lti"

// StepResult is a sampled unit-step response.
type StepResult struct {
	Time   []float64
	Output []float64
	Dt     float64
}

// rk4 advances x' = f(x) one fixed step; scratch buffers are reused across
// steps, mirroring the simulator's integrator.
type rk4 struct {
	scratch State
}

func (r *rk4) ensureScratch(n int) {
	if len(r.scratch) != n {
		r.scratch = make(State, n)
	}
}

func (r *rk4) step(sys *StateSpace, x State, u, dt float64) State {
	n := len(x)
	r.ensureScratch(n)

	k1 := sys.Derive(x, u)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*k1[i]
	}
	k2 := sys.Derive(r.scratch, u)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*k2[i]
	}
	k3 := sys.Derive(r.scratch, u)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*k3[i]
	}
	k4 := sys.Derive(r.scratch, u)

	next := make(State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		next[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return next
}

// StepResponse simulates the unit-step response of g from zero initial state.
// The time span comes from Horizon over the system poles; points sets the
// sample count. Improper systems propagate lti.ErrImproper.
func StepResponse(g lti.TransferFunction, points int) (*StepResult, error) {
	sys, err := FromTransferFunction(g)
	if err != nil {
		return nil, err
	}
	if points < 2 {
		points = 2
	}

	span := Horizon(lti.Roots(g.Den))
	dt := span / float64(points-1)

	res := &StepResult{
		Time:   make([]float64, points),
		Output: make([]float64, points),
		Dt:     dt,
	}

	x := make(State, sys.Order())
	integ := &rk4{}
	const u = 1.0

	res.Output[0] = sys.Output(x, u)
	for i := 1; i < points; i++ {
		x = integ.step(sys, x, u, dt)
		res.Time[i] = float64(i) * dt
		res.Output[i] = sys.Output(x, u)
	}
	return res, nil
}
