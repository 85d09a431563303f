package lti

import "gonum.org/v1/gonum/mat"

// Roots finds all roots of p as eigenvalues of its companion matrix.
// Constant and zero polynomials have no roots. Multiplicity is preserved
// implicitly by the eigensolver.
func Roots(p Polynomial) []complex128 {
	p = p.Trim()
	n := len(p) - 1
	if n < 1 {
		return nil
	}

	// Companion matrix of the monic polynomial, first row -a1..-an,
	// ones on the subdiagonal.
	c := mat.NewDense(n, n, nil)
	lead := p[0]
	for j := 0; j < n; j++ {
		c.Set(0, j, -p[j+1]/lead)
	}
	for i := 1; i < n; i++ {
		c.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(c, mat.EigenNone); !ok {
		return nil
	}
	return eig.Values(nil)
}
