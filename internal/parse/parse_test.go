package parse

import (
	"errors"
	"math"
	"testing"
)

func TestComplexListEmpty(t *testing.T) {
	got, err := ComplexList("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty sequence, got %v", got)
	}
}

func TestComplexListReals(t *testing.T) {
	got, err := ComplexList("1, 2, 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []complex128{1, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestComplexListComplex(t *testing.T) {
	got, err := ComplexList("-1+2j, 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 values, got %d", len(got))
	}
	if real(got[0]) != -1 || imag(got[0]) != 2 {
		t.Errorf("expected -1+2j, got %v", got[0])
	}
	if got[1] != 3 {
		t.Errorf("expected 3, got %v", got[1])
	}
}

func TestComplexListISuffix(t *testing.T) {
	got, err := ComplexList("0.5-1.5i")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(real(got[0])-0.5) > 1e-12 || math.Abs(imag(got[0])+1.5) > 1e-12 {
		t.Errorf("expected 0.5-1.5i, got %v", got[0])
	}
}

func TestComplexListWhitespaceAndEmptyTokens(t *testing.T) {
	got, err := ComplexList(" 1 ,, 2 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected [1 2], got %v", got)
	}
}

func TestComplexListBadToken(t *testing.T) {
	_, err := ComplexList("1, abc, 3")
	if err == nil {
		t.Fatal("expected error for bad token")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if perr.Token != "abc" {
		t.Errorf("expected offending token abc, got %q", perr.Token)
	}
}
