package lti

import "errors"

// Domain errors for system construction.
var (
	// ErrInvalidSystem indicates a degenerate denominator (empty or identically zero).
	ErrInvalidSystem = errors.New("lti: invalid system (zero denominator polynomial)")

	// ErrSingularFeedback indicates the closed-loop denominator 1+L is identically zero.
	ErrSingularFeedback = errors.New("lti: singular feedback (1 + open loop is zero)")

	// ErrComplexCoefficients indicates coefficients with a non-negligible imaginary part.
	ErrComplexCoefficients = errors.New("lti: coefficients must be real")

	// ErrImproper indicates a transfer function whose numerator degree exceeds
	// its denominator degree, which has no state-space realization.
	ErrImproper = errors.New("lti: improper transfer function")
)

// SystemError wraps a construction error with the offending coefficients.
type SystemError struct {
	Num     []float64
	Den     []float64
	Wrapped error
}

func (e *SystemError) Error() string {
	return e.Wrapped.Error()
}

func (e *SystemError) Unwrap() error {
	return e.Wrapped
}
