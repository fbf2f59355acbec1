package noise

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Zero is zero noise: zero mean and zero covariance of a given dimension.
type Zero struct {
	// mean stores zero mean values
	mean []float64
	// cov is zero covariance matrix
	cov *mat.SymDense
}

// NewZero creates new zero noise of the given size.
// It returns error if size is not positive.
func NewZero(size int) (*Zero, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid noise dimension: %d", size)
	}

	return &Zero{
		mean: make([]float64, size),
		cov:  mat.NewSymDense(size, nil),
	}, nil
}

// Sample returns a vector of zero values.
func (z *Zero) Sample() mat.Vector {
	return mat.NewVecDense(len(z.mean), nil)
}

// Cov returns a zero valued covariance matrix.
func (z *Zero) Cov() mat.Symmetric {
	cov := mat.NewSymDense(z.cov.SymmetricDim(), nil)
	cov.CopySym(z.cov)

	return cov
}

// Mean returns Zero mean.
func (z *Zero) Mean() []float64 {
	mean := make([]float64, len(z.mean))
	copy(mean, z.mean)

	return mean
}

// Reset does nothing: it's here to implement filter.Noise interface.
func (z *Zero) Reset() error {
	return nil
}

// String implements the Stringer interface.
func (z *Zero) String() string {
	return fmt.Sprintf("Zero{\nMean=%v\nCov=%v\n}", z.Mean(), mat.Formatted(z.Cov(), mat.Prefix("    "), mat.Squeeze()))
}
