package manifold

import (
	filter "github.com/milosgajdos/go-ukfm"
	"gonum.org/v1/gonum/mat"
)

// Compound is a product of manifolds. Its tangent space is the
// concatenation of the part tangent spaces in part order.
type Compound struct {
	parts []filter.Manifold
}

// NewCompound creates a new compound manifold point from parts
func NewCompound(parts ...filter.Manifold) *Compound {
	p := make([]filter.Manifold, len(parts))
	copy(p, parts)

	return &Compound{parts: p}
}

// Dim returns the sum of the part tangent space dimensions
func (c *Compound) Dim() int {
	dim := 0
	for _, p := range c.parts {
		dim += p.Dim()
	}

	return dim
}

// Retract retracts each part with its slice of v
func (c *Compound) Retract(v mat.Vector) filter.Manifold {
	parts := make([]filter.Manifold, len(c.parts))

	offset := 0
	for i, p := range c.parts {
		d := p.Dim()
		pv := mat.NewVecDense(d, nil)
		for j := 0; j < d; j++ {
			pv.SetVec(j, v.AtVec(offset+j))
		}
		parts[i] = p.Retract(pv)
		offset += d
	}

	return &Compound{parts: parts}
}

// InverseRetract concatenates the part tangent vectors carrying m to c.
// It panics if m is not a Compound with the same part structure.
func (c *Compound) InverseRetract(m filter.Manifold) mat.Vector {
	o := m.(*Compound)

	v := mat.NewVecDense(c.Dim(), nil)

	offset := 0
	for i, p := range c.parts {
		pv := p.InverseRetract(o.parts[i])
		for j := 0; j < pv.Len(); j++ {
			v.SetVec(offset+j, pv.AtVec(j))
		}
		offset += pv.Len()
	}

	return v
}

// At returns the i-th part of the compound
func (c *Compound) At(i int) filter.Manifold {
	return c.parts[i]
}

// Parts returns all parts of the compound
func (c *Compound) Parts() []filter.Manifold {
	p := make([]filter.Manifold, len(c.parts))
	copy(p, c.parts)

	return p
}
