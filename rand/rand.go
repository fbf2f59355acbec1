package rand

import (
	"fmt"
	"math"
	rnd "math/rand"

	"gonum.org/v1/gonum/mat"
)

// WithCovN draws n random samples from a zero-mean Normal (aka Gaussian) distribution with covariance cov.
// It returns a matrix which contains the randomly generated samples stored in its columns.
// It fails with error if n is smaller than 1 or if SVD factorization of cov fails.
func WithCovN(cov mat.Symmetric, n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid number of samples requested: %d", n)
	}

	// Use SVD instead of Cholesky as Cholesky can be numerically unstable if cov is (almost) singular
	var svd mat.SVD
	ok := svd.Factorize(cov, mat.SVDFull)
	if !ok {
		return nil, fmt.Errorf("SVD factorization failed")
	}

	u := new(mat.Dense)
	svd.UTo(u)
	vals := svd.Values(nil)
	for i := range vals {
		vals[i] = math.Sqrt(vals[i])
	}
	diag := mat.NewDiagDense(len(vals), vals)
	u.Mul(u, diag)

	rows, _ := cov.Dims()
	data := make([]float64, rows*n)
	for i := range data {
		data[i] = rnd.NormFloat64()
	}
	samples := mat.NewDense(rows, n, data)
	samples.Mul(u, samples)

	return samples, nil
}
