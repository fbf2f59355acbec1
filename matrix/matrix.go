package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CholLower returns the lower triangular Cholesky factor L of p such that
// L*L' = p + tol*I. The tolerance is added to the diagonal to guard against
// covariances which are positive semi-definite only up to floating point
// error. It returns error if the regularized matrix is not positive definite.
func CholLower(p mat.Symmetric, tol float64) (*mat.TriDense, error) {
	n := p.SymmetricDim()
	if n == 0 {
		return nil, fmt.Errorf("invalid matrix dimension: %d", n)
	}

	reg := mat.NewSymDense(n, nil)
	reg.CopySym(p)
	for i := 0; i < n; i++ {
		reg.SetSym(i, i, reg.At(i, i)+tol)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(reg); !ok {
		return nil, fmt.Errorf("cholesky factorization failed")
	}

	l := mat.NewTriDense(n, mat.Lower, nil)
	chol.LTo(l)

	return l, nil
}

// HStack returns a new matrix with a and b stacked side by side: [a, b].
// It panics if a and b do not have the same number of rows.
func HStack(a, b mat.Matrix) *mat.Dense {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra != rb {
		panic("matrix: row dimension mismatch")
	}

	s := mat.NewDense(ra, ca+cb, nil)
	s.Slice(0, ra, 0, ca).(*mat.Dense).Copy(a)
	s.Slice(0, ra, ca, ca+cb).(*mat.Dense).Copy(b)

	return s
}

// BlockDiagSym returns the block diagonal composition [[a, 0], [0, b]]
// of the two symmetric matrices a and b.
func BlockDiagSym(a, b mat.Symmetric) *mat.SymDense {
	na, nb := a.SymmetricDim(), b.SymmetricDim()

	s := mat.NewSymDense(na+nb, nil)
	for i := 0; i < na; i++ {
		for j := i; j < na; j++ {
			s.SetSym(i, j, a.At(i, j))
		}
	}
	for i := 0; i < nb; i++ {
		for j := i; j < nb; j++ {
			s.SetSym(na+i, na+j, b.At(i, j))
		}
	}

	return s
}

// ToSym copies the upper triangle of the square matrix m into a new
// symmetric matrix. It panics if m is not square.
func ToSym(m mat.Matrix) *mat.SymDense {
	r, c := m.Dims()
	if r != c {
		panic("matrix: square matrix required")
	}

	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			s.SetSym(i, j, m.At(i, j))
		}
	}

	return s
}
