package lti

import (
	"errors"
	"math"
	"sort"
	"testing"
)

func TestNewRejectsZeroDenominator(t *testing.T) {
	_, err := New(Polynomial{1}, Polynomial{0, 0})
	if !errors.Is(err, ErrInvalidSystem) {
		t.Fatalf("expected ErrInvalidSystem, got %v", err)
	}

	_, err = New(Polynomial{1}, nil)
	if !errors.Is(err, ErrInvalidSystem) {
		t.Fatalf("expected ErrInvalidSystem for empty denominator, got %v", err)
	}
}

func TestIdentity(t *testing.T) {
	g := Identity()
	if len(g.Num) != 1 || g.Num[0] != 1 || len(g.Den) != 1 || g.Den[0] != 1 {
		t.Errorf("expected 1/1, got %v/%v", g.Num, g.Den)
	}
}

func TestMulSeriesComposition(t *testing.T) {
	// controller Kp/1 times plant 1/(s^2+2s+1)
	kp := 2.5
	ctrl, _ := New(Polynomial{kp}, Polynomial{1})
	plant, _ := New(Polynomial{1}, Polynomial{1, 2, 1})

	open := ctrl.Mul(plant)

	if len(open.Num) != 1 || math.Abs(open.Num[0]-kp) > 1e-12 {
		t.Errorf("expected numerator [%v], got %v", kp, open.Num)
	}
	wantDen := Polynomial{1, 2, 1}
	for i := range wantDen {
		if math.Abs(open.Den[i]-wantDen[i]) > 1e-12 {
			t.Errorf("denominator %d: expected %v, got %v", i, wantDen[i], open.Den[i])
		}
	}
}

func TestFeedbackReduction(t *testing.T) {
	// L = 1/(s+1); L/(1+L) = 1/(s+2)
	open, _ := New(Polynomial{1}, Polynomial{1, 1})

	closed, err := open.Feedback()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(closed.Den[0]-1) > 1e-12 || math.Abs(closed.Den[1]-2) > 1e-12 {
		t.Errorf("expected denominator [1 2], got %v", closed.Den)
	}
}

func TestFeedbackIdempotentDerivation(t *testing.T) {
	open, _ := New(Polynomial{3}, Polynomial{1, 2, 1})

	first, err := open.Feedback()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := open.Feedback()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.Den) != len(second.Den) {
		t.Fatalf("coefficient count differs between derivations")
	}
	for i := range first.Den {
		if first.Den[i] != second.Den[i] {
			t.Errorf("denominator %d differs: %v vs %v", i, first.Den[i], second.Den[i])
		}
	}
}

func TestFeedbackSingular(t *testing.T) {
	// L = -1/1 makes 1+L identically zero.
	open, _ := New(Polynomial{-1}, Polynomial{1})

	_, err := open.Feedback()
	if !errors.Is(err, ErrSingularFeedback) {
		t.Fatalf("expected ErrSingularFeedback, got %v", err)
	}
}

func TestFromZPKExpansion(t *testing.T) {
	// zeros at -1, poles at -1,-3: (s+1)/((s+1)(s+3)) = (s+1)/(s^2+4s+3)
	g, err := FromZPK([]complex128{-1}, []complex128{-1, -3}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantNum := Polynomial{1, 1}
	wantDen := Polynomial{1, 4, 3}
	for i := range wantNum {
		if math.Abs(g.Num[i]-wantNum[i]) > 1e-12 {
			t.Errorf("numerator %d: expected %v, got %v", i, wantNum[i], g.Num[i])
		}
	}
	for i := range wantDen {
		if math.Abs(g.Den[i]-wantDen[i]) > 1e-12 {
			t.Errorf("denominator %d: expected %v, got %v", i, wantDen[i], g.Den[i])
		}
	}
}

func TestZPKRoundTrip(t *testing.T) {
	zeros := []complex128{-2}
	poles := []complex128{-1, -3}

	g, err := FromZPK(zeros, poles, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotPoles := g.Poles()
	if len(gotPoles) != 2 {
		t.Fatalf("expected 2 poles, got %d", len(gotPoles))
	}
	sort.Slice(gotPoles, func(i, j int) bool { return real(gotPoles[i]) < real(gotPoles[j]) })
	if math.Abs(real(gotPoles[0])+3) > 1e-9 || math.Abs(real(gotPoles[1])+1) > 1e-9 {
		t.Errorf("expected poles -3, -1, got %v", gotPoles)
	}

	gotZeros := g.Zeros()
	if len(gotZeros) != 1 || math.Abs(real(gotZeros[0])+2) > 1e-9 {
		t.Errorf("expected zero -2, got %v", gotZeros)
	}
}

func TestEvalFrequencyResponse(t *testing.T) {
	// G = 1/(s+1); |G(j1)| = 1/sqrt(2)
	g, _ := New(Polynomial{1}, Polynomial{1, 1})

	v := g.Eval(complex(0, 1))
	mag := math.Hypot(real(v), imag(v))
	if math.Abs(mag-1/math.Sqrt2) > 1e-12 {
		t.Errorf("expected magnitude %v, got %v", 1/math.Sqrt2, mag)
	}
}
