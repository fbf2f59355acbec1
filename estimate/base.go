package estimate

import (
	"fmt"

	filter "github.com/milosgajdos/go-ukfm"
	"gonum.org/v1/gonum/mat"
)

// Base is base manifold estimate
type Base struct {
	// val is estimated value
	val filter.Manifold
	// cov is estimated covariance
	cov *mat.SymDense
}

// NewBase returns base estimate given val with zero covariance
func NewBase(val filter.Manifold) (*Base, error) {
	if val == nil {
		return nil, fmt.Errorf("invalid estimate value: %v", val)
	}

	return &Base{
		val: val,
		cov: mat.NewSymDense(val.Dim(), nil),
	}, nil
}

// NewBaseWithCov returns base estimate given val and covariance
func NewBaseWithCov(val filter.Manifold, cov mat.Symmetric) (*Base, error) {
	if val == nil {
		return nil, fmt.Errorf("invalid estimate value: %v", val)
	}

	if val.Dim() != cov.SymmetricDim() {
		return nil, fmt.Errorf("invalid dimensions. val: %d, cov: %d x %d", val.Dim(), cov.SymmetricDim(), cov.SymmetricDim())
	}

	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)

	return &Base{
		val: val,
		cov: c,
	}, nil
}

// Val returns estimated value
func (b *Base) Val() filter.Manifold {
	return b.val
}

// Cov returns covariance estimate
func (b *Base) Cov() mat.Symmetric {
	cov := mat.NewSymDense(b.cov.SymmetricDim(), nil)
	cov.CopySym(b.cov)

	return cov
}
