package sim

import (
	"fmt"

	filter "github.com/milosgajdos/go-ukfm"
	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// InitCond implements filter.InitCond
type InitCond struct {
	state filter.Manifold
	cov   *mat.SymDense
}

// NewInitCond creates new InitCond and returns it
func NewInitCond(state filter.Manifold, cov mat.Symmetric) *InitCond {
	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)

	return &InitCond{
		state: state,
		cov:   c,
	}
}

// State returns initial state
func (c *InitCond) State() filter.Manifold {
	return c.state
}

// Cov returns initial covariance
func (c *InitCond) Cov() mat.Symmetric {
	cov := mat.NewSymDense(c.cov.SymmetricDim(), nil)
	cov.CopySym(c.cov)

	return cov
}

// ErrorCov returns the empirical covariance of the estimation errors
// stored in the columns of e.
// It returns error if e is nil or has no columns.
func ErrorCov(e *mat.Dense) (mat.Symmetric, error) {
	if e == nil {
		return nil, fmt.Errorf("invalid error data supplied")
	}

	return matrix.Cov(e, "cols")
}
