package sigma

import (
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-ukfm"
	"github.com/milosgajdos/go-ukfm/matrix"
	"gonum.org/v1/gonum/mat"
)

// Tolerance is added to the covariance diagonal before factorization.
// It masks covariances which are positive semi-definite only up to
// floating point error; a truly indefinite covariance still fails.
const Tolerance = 1e-6

// Set is a set of sigma point perturbations drawn from a covariance matrix.
type Set struct {
	// W stores the 2n perturbation vectors in its columns, assembled as
	// [S, -S] so that points come in symmetric pairs straddling the mean.
	W *mat.Dense
	// Weights stores 2n+1 weights. Weights[0] is the mean point weight,
	// Weights[1:] belong to the perturbation columns of W.
	Weights []float64
}

// Points generates sigma point perturbations and weights from a covariance.
type Points interface {
	// Generate generates a new sigma point set from cov
	Generate(cov mat.Symmetric) (*Set, error)
}

// Merwe is Van der Merwe scaled sigma point sampling.
type Merwe struct {
	// Alpha is alpha parameter (0,1]
	Alpha float64
	// Beta is beta parameter (2 is optimal choice for Gaussian)
	Beta float64
	// Kappa is kappa parameter
	Kappa float64
}

// NewMerwe creates Merwe sampling with the default
// parameters alpha=0.001, beta=2, kappa=0.
func NewMerwe() *Merwe {
	return &Merwe{
		Alpha: 0.001,
		Beta:  2.0,
		Kappa: 0.0,
	}
}

// Generate generates a new sigma point set from cov.
// It returns error if cov fails to factorize or if the sampling
// parameters yield a non-positive n+lambda.
func (m *Merwe) Generate(cov mat.Symmetric) (*Set, error) {
	n := float64(cov.SymmetricDim())
	lambda := m.Alpha*m.Alpha*(n+m.Kappa) - n
	w0 := lambda/(n+lambda) + (1 - m.Alpha*m.Alpha + m.Beta)

	return generate(cov, lambda, w0)
}

// Julier is Julier simplex-free sigma point sampling where
// lambda is chosen directly rather than derived.
type Julier struct {
	// Lambda is the spread parameter
	Lambda float64
}

// NewJulier creates Julier sampling with the conventional
// default lambda = 3 - n for state dimension n.
func NewJulier(n int) *Julier {
	return &Julier{
		Lambda: 3 - float64(n),
	}
}

// Generate generates a new sigma point set from cov.
// It returns error if cov fails to factorize or if lambda
// yields a non-positive n+lambda.
func (j *Julier) Generate(cov mat.Symmetric) (*Set, error) {
	n := float64(cov.SymmetricDim())
	w0 := j.Lambda / (n + j.Lambda)

	return generate(cov, j.Lambda, w0)
}

// generate factorizes cov and assembles the [S, -S] perturbation
// columns scaled by sqrt(n+lambda) together with the weights.
func generate(cov mat.Symmetric, lambda, w0 float64) (*Set, error) {
	n := cov.SymmetricDim()
	if n <= 0 {
		return nil, fmt.Errorf("invalid covariance dimension: %d", n)
	}

	if float64(n)+lambda <= 0 {
		return nil, fmt.Errorf("%w: n+lambda = %v", filter.ErrInvalidSigmaParams, float64(n)+lambda)
	}

	l, err := matrix.CholLower(cov, Tolerance)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", filter.ErrNotPositiveDefinite, err)
	}

	s := mat.NewDense(n, n, nil)
	s.Copy(l)
	s.Scale(math.Sqrt(float64(n)+lambda), s)

	neg := mat.NewDense(n, n, nil)
	neg.Scale(-1, s)

	weights := make([]float64, 2*n+1)
	weights[0] = w0
	w := 1 / (2 * (float64(n) + lambda))
	for i := 1; i < len(weights); i++ {
		weights[i] = w
	}

	return &Set{
		W:       matrix.HStack(s, neg),
		Weights: weights,
	}, nil
}
