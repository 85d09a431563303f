package lti

// TransferFunction is a ratio of two real polynomials in s. Values are
// immutable once constructed; composition returns fresh instances.
type TransferFunction struct {
	Num Polynomial
	Den Polynomial
}

// Identity returns the unit system 1/1, the safe fallback after any
// construction error.
func Identity() TransferFunction {
	return TransferFunction{Num: Polynomial{1}, Den: Polynomial{1}}
}

// New builds a transfer function from coefficient lists. An empty numerator
// denotes the zero polynomial. A denominator that is empty or identically
// zero has no finite poles and is rejected.
func New(num, den Polynomial) (TransferFunction, error) {
	if den.IsZero() || len(den) == 0 {
		return TransferFunction{}, &SystemError{Num: num, Den: den, Wrapped: ErrInvalidSystem}
	}
	if num == nil {
		num = Polynomial{0}
	}
	return TransferFunction{Num: num.Clone(), Den: den.Clone()}, nil
}

// FromComplex builds a transfer function from complex coefficient lists,
// as produced by the input parser. Coefficients must be numerically real.
func FromComplex(num, den []complex128) (TransferFunction, error) {
	n, err := fromComplex(num)
	if err != nil {
		return TransferFunction{}, err
	}
	d, err := fromComplex(den)
	if err != nil {
		return TransferFunction{}, err
	}
	return New(n, d)
}

// FromZPK expands a zero/pole/gain triple into coefficient form via
// polynomial expansion of ∏(s-zᵢ) and ∏(s-pⱼ). Complex zeros and poles must
// pair into conjugates so the expanded coefficients come out real.
func FromZPK(zeros, poles []complex128, gain float64) (TransferFunction, error) {
	num, err := fromComplex(expandRoots(zeros))
	if err != nil {
		return TransferFunction{}, err
	}
	den, err := fromComplex(expandRoots(poles))
	if err != nil {
		return TransferFunction{}, err
	}
	return New(num.Scale(gain), den)
}

// Mul composes two systems in series: numerators and denominators multiply.
func (g TransferFunction) Mul(h TransferFunction) TransferFunction {
	return TransferFunction{
		Num: g.Num.Mul(h.Num),
		Den: g.Den.Mul(h.Den),
	}
}

// Feedback closes the loop under unity negative feedback: G/(1+G). The
// numerator is unchanged, the denominator becomes den+num after degree
// alignment. Fails only when 1+G is identically zero.
func (g TransferFunction) Feedback() (TransferFunction, error) {
	den := g.Den.Add(g.Num)
	if den.IsZero() {
		return TransferFunction{}, &SystemError{Num: g.Num, Den: g.Den, Wrapped: ErrSingularFeedback}
	}
	return TransferFunction{Num: g.Num.Clone(), Den: den}, nil
}

// Eval evaluates the frequency response G(s) at a complex point.
func (g TransferFunction) Eval(s complex128) complex128 {
	return g.Num.Eval(s) / g.Den.Eval(s)
}

// Poles returns the roots of the denominator polynomial.
func (g TransferFunction) Poles() []complex128 {
	return Roots(g.Den)
}

// Zeros returns the roots of the numerator polynomial.
func (g TransferFunction) Zeros() []complex128 {
	return Roots(g.Num)
}
