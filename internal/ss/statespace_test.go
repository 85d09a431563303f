package ss

import (
	"errors"
	"math"
	"testing"

	"github.com/christmascoding/regelungsmaster/internal/lti"
)

func TestFromTransferFunctionSecondOrder(t *testing.T) {
	// 1/(s^2+2s+1): A bottom row [-1 -2], B [0 1], C [1 0], D 0.
	g, _ := lti.New(lti.Polynomial{1}, lti.Polynomial{1, 2, 1})

	sys, err := FromTransferFunction(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sys.Order() != 2 {
		t.Fatalf("expected order 2, got %d", sys.Order())
	}
	if sys.A[0][1] != 1 || sys.A[1][0] != -1 || sys.A[1][1] != -2 {
		t.Errorf("unexpected A: %v", sys.A)
	}
	if sys.B[0] != 0 || sys.B[1] != 1 {
		t.Errorf("unexpected B: %v", sys.B)
	}
	if sys.C[0] != 1 || sys.C[1] != 0 {
		t.Errorf("unexpected C: %v", sys.C)
	}
	if sys.D != 0 {
		t.Errorf("expected D=0, got %v", sys.D)
	}
}

func TestFromTransferFunctionFeedthrough(t *testing.T) {
	// (s+2)/(s+1) = 1 + 1/(s+1): D must be 1.
	g, _ := lti.New(lti.Polynomial{1, 2}, lti.Polynomial{1, 1})

	sys, err := FromTransferFunction(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sys.D-1) > 1e-12 {
		t.Errorf("expected D=1, got %v", sys.D)
	}
	if math.Abs(sys.C[0]-1) > 1e-12 {
		t.Errorf("expected C=[1], got %v", sys.C)
	}
}

func TestFromTransferFunctionImproper(t *testing.T) {
	g := lti.TransferFunction{Num: lti.Polynomial{1, 0, 0}, Den: lti.Polynomial{1, 1}}

	_, err := FromTransferFunction(g)
	if !errors.Is(err, lti.ErrImproper) {
		t.Fatalf("expected ErrImproper, got %v", err)
	}
}

func TestFromTransferFunctionPureGain(t *testing.T) {
	g, _ := lti.New(lti.Polynomial{3}, lti.Polynomial{2})

	sys, err := FromTransferFunction(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sys.Order() != 0 {
		t.Errorf("expected order 0, got %d", sys.Order())
	}
	if math.Abs(sys.D-1.5) > 1e-12 {
		t.Errorf("expected D=1.5, got %v", sys.D)
	}
}

func TestHorizon(t *testing.T) {
	// Slowest pole at -0.5 gives 14s.
	span := Horizon([]complex128{-0.5, -10})
	if math.Abs(span-14) > 1e-12 {
		t.Errorf("expected 14, got %v", span)
	}

	// No stable poles: fixed window.
	if span := Horizon([]complex128{1, 0}); span != 10 {
		t.Errorf("expected 10 for unstable system, got %v", span)
	}

	// Clamps.
	if span := Horizon([]complex128{-1000}); span != 1 {
		t.Errorf("expected clamp to 1, got %v", span)
	}
	if span := Horizon([]complex128{-1e-5}); span != 100 {
		t.Errorf("expected clamp to 100, got %v", span)
	}
}

func TestStepResponseFirstOrder(t *testing.T) {
	// 1/(s+1): y(t) = 1 - e^{-t}.
	g, _ := lti.New(lti.Polynomial{1}, lti.Polynomial{1, 1})

	res, err := StepResponse(g, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Time) != 500 || len(res.Output) != 500 {
		t.Fatalf("expected 500 samples, got %d/%d", len(res.Time), len(res.Output))
	}
	if res.Output[0] != 0 {
		t.Errorf("expected zero initial output, got %v", res.Output[0])
	}

	for i := 0; i < len(res.Time); i += 50 {
		want := 1 - math.Exp(-res.Time[i])
		if math.Abs(res.Output[i]-want) > 1e-6 {
			t.Errorf("t=%.3f: expected %v, got %v", res.Time[i], want, res.Output[i])
		}
	}

	final := res.Output[len(res.Output)-1]
	if math.Abs(final-1) > 1e-2 {
		t.Errorf("expected settled output near 1, got %v", final)
	}
}

func TestStepResponseDCGain(t *testing.T) {
	// 2/(s^2+3s+2) has DC gain 1.
	g, _ := lti.New(lti.Polynomial{2}, lti.Polynomial{1, 3, 2})

	res, err := StepResponse(g, 400)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	final := res.Output[len(res.Output)-1]
	if math.Abs(final-1) > 1e-2 {
		t.Errorf("expected final value near 1, got %v", final)
	}
}
