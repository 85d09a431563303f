package analysis

import (
	"math"
	"testing"

	"github.com/christmascoding/regelungsmaster/internal/lti"
)

func TestCentroid(t *testing.T) {
	// poles {-1,-3}, zeros {-2}: (-1-3-(-2))/(2-1) = -2
	c, ok := Centroid([]complex128{-1, -3}, []complex128{-2})
	if !ok {
		t.Fatal("expected a centroid")
	}
	if math.Abs(real(c)+2) > 1e-12 || math.Abs(imag(c)) > 1e-12 {
		t.Errorf("expected centroid -2, got %v", c)
	}
}

func TestCentroidEqualCounts(t *testing.T) {
	_, ok := Centroid([]complex128{-1}, []complex128{-2})
	if !ok {
		t.Fatal("expected centroid for unequal counts")
	}

	if _, ok := Centroid([]complex128{-1, -2}, []complex128{-3, -4}); ok {
		t.Error("expected no centroid for equal pole/zero counts")
	}
	if _, ok := Centroid(nil, nil); ok {
		t.Error("expected no centroid for empty sets")
	}
}

func TestLocusStartsAtOpenPoles(t *testing.T) {
	open, _ := lti.New(lti.Polynomial{1}, lti.Polynomial{1, 3, 2})
	rl := Locus(open, 100, 50)

	if len(rl.Branches) != len(rl.Gains) {
		t.Fatalf("branch/gain count mismatch: %d vs %d", len(rl.Branches), len(rl.Gains))
	}
	if rl.Gains[0] != 0 {
		t.Fatalf("expected gain grid anchored at 0, got %v", rl.Gains[0])
	}

	// k=0 branch must sit on the open-loop poles -1, -2.
	for _, p := range rl.Branches[0] {
		d1 := math.Hypot(real(p)+1, imag(p))
		d2 := math.Hypot(real(p)+2, imag(p))
		if d1 > 1e-9 && d2 > 1e-9 {
			t.Errorf("k=0 pole %v not at an open-loop pole", p)
		}
	}
}

func TestLocusBranchesMoveLeftForStableLoop(t *testing.T) {
	// 1/(s(s+2)): increasing gain drives the pair complex with real part -1.
	open, _ := lti.New(lti.Polynomial{1}, lti.Polynomial{1, 2, 0})
	rl := Locus(open, 50, 80)

	last := rl.Branches[len(rl.Branches)-1]
	if len(last) != 2 {
		t.Fatalf("expected 2 poles per branch, got %d", len(last))
	}
	for _, p := range last {
		if math.Abs(real(p)+1) > 1e-6 {
			t.Errorf("expected real part -1 at high gain, got %v", p)
		}
		if math.Abs(imag(p)) < 1 {
			t.Errorf("expected strongly oscillatory pole at high gain, got %v", p)
		}
	}
}

func TestLeadLagMarkers(t *testing.T) {
	zero, pole, zok, pok := LeadLagMarkers(1.0, 2.0)
	if !zok || !pok {
		t.Fatal("expected both markers")
	}
	if real(zero) != -1 || real(pole) != -0.5 {
		t.Errorf("expected markers -1 and -0.5, got %v, %v", zero, pole)
	}

	_, _, zok, pok = LeadLagMarkers(0, 2.0)
	if zok {
		t.Error("zero-valued z must not produce a marker")
	}
	if !pok {
		t.Error("expected pole marker")
	}
}
