package noise

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// None is noise with empty mean and zero size covariance matrix.
// Unlike Zero it carries no dimension at all: filters treat it as
// the absence of noise and skip the noise propagation entirely.
type None struct{}

// NewNone creates new None noise and returns it
func NewNone() (*None, error) {
	return &None{}, nil
}

// Sample returns zero size vector.
func (n *None) Sample() mat.Vector {
	return &mat.VecDense{}
}

// Cov returns zero size covariance matrix.
func (n *None) Cov() mat.Symmetric {
	return &mat.SymDense{}
}

// Mean returns None mean.
func (n *None) Mean() []float64 {
	return nil
}

// Reset does nothing: it's here to implement filter.Noise interface.
func (n *None) Reset() error {
	return nil
}

// String implements the Stringer interface.
func (n *None) String() string {
	return fmt.Sprintf("None{\nMean=%v\nCov=%v\n}", n.Mean(), mat.Formatted(n.Cov(), mat.Prefix("    "), mat.Squeeze()))
}
