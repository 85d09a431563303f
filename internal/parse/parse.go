// Package parse turns user-entered coefficient lists into numeric sequences.
package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a token that is neither a complex nor a real literal.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: invalid number %q", e.Token)
}

// ComplexList parses a comma-separated list of numbers into complex values.
// Whitespace is ignored, empty tokens are skipped and an empty input yields
// an empty (non-nil) slice. Both "i" and "j" imaginary suffixes are accepted;
// tokens that fail complex parsing fall back to plain floats.
func ComplexList(s string) ([]complex128, error) {
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)

	result := []complex128{}
	if s == "" {
		return result, nil
	}

	for _, part := range strings.Split(s, ",") {
		if part == "" {
			continue
		}
		v, err := parseToken(part)
		if err != nil {
			return nil, &ParseError{Token: part}
		}
		result = append(result, v)
	}
	return result, nil
}

func parseToken(tok string) (complex128, error) {
	if c, err := strconv.ParseComplex(tok, 128); err == nil {
		return c, nil
	}
	// The original tool's notation uses "j" for the imaginary unit.
	if strings.ContainsAny(tok, "jJ") {
		alt := strings.ReplaceAll(strings.ReplaceAll(tok, "j", "i"), "J", "i")
		if c, err := strconv.ParseComplex(alt, 128); err == nil {
			return c, nil
		}
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}
	return complex(f, 0), nil
}
