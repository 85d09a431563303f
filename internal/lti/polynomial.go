// Package lti models linear time-invariant systems as rational transfer
// functions in the Laplace variable s.
package lti

import "math"

// Polynomial holds real coefficients ordered from highest degree to lowest.
// An empty slice is the zero polynomial.
type Polynomial []float64

// realTol bounds the relative imaginary residue tolerated when collapsing
// complex products (conjugate-pair expansions) to real coefficients.
const realTol = 1e-9

func (p Polynomial) Clone() Polynomial {
	c := make(Polynomial, len(p))
	copy(c, p)
	return c
}

// Trim strips leading zero coefficients. The zero polynomial trims to nil.
func (p Polynomial) Trim() Polynomial {
	i := 0
	for i < len(p) && p[i] == 0 {
		i++
	}
	return p[i:]
}

// Degree returns the polynomial degree, or -1 for the zero polynomial.
func (p Polynomial) Degree() int {
	return len(p.Trim()) - 1
}

// IsZero reports whether every coefficient is zero.
func (p Polynomial) IsZero() bool {
	for _, c := range p {
		if c != 0 {
			return false
		}
	}
	return true
}

// Add returns p+q, aligning the two coefficient lists at the constant term.
func (p Polynomial) Add(q Polynomial) Polynomial {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	sum := make(Polynomial, n)
	for i, c := range p {
		sum[n-len(p)+i] += c
	}
	for i, c := range q {
		sum[n-len(q)+i] += c
	}
	return sum
}

// Mul returns the product polynomial p*q.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	if len(p) == 0 || len(q) == 0 {
		return nil
	}
	prod := make(Polynomial, len(p)+len(q)-1)
	for i, a := range p {
		for j, b := range q {
			prod[i+j] += a * b
		}
	}
	return prod
}

// Scale returns p with every coefficient multiplied by k.
func (p Polynomial) Scale(k float64) Polynomial {
	s := make(Polynomial, len(p))
	for i, c := range p {
		s[i] = c * k
	}
	return s
}

// Eval evaluates the polynomial at a complex point using Horner's rule.
func (p Polynomial) Eval(s complex128) complex128 {
	var v complex128
	for _, c := range p {
		v = v*s + complex(c, 0)
	}
	return v
}

// fromComplex collapses complex coefficients to a real polynomial. It fails
// with ErrComplexCoefficients when any imaginary part exceeds realTol relative
// to the coefficient magnitude scale.
func fromComplex(cs []complex128) (Polynomial, error) {
	scale := 0.0
	for _, c := range cs {
		if a := math.Abs(real(c)); a > scale {
			scale = a
		}
		if a := math.Abs(imag(c)); a > scale {
			scale = a
		}
	}
	if scale == 0 {
		scale = 1
	}
	p := make(Polynomial, len(cs))
	for i, c := range cs {
		if math.Abs(imag(c)) > realTol*scale {
			return nil, ErrComplexCoefficients
		}
		p[i] = real(c)
	}
	return p, nil
}

// expandRoots expands ∏(s - rᵢ) into highest-first complex coefficients.
// No roots expand to the constant polynomial 1.
func expandRoots(roots []complex128) []complex128 {
	coeffs := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] -= c * r
		}
		coeffs = next
	}
	return coeffs
}
