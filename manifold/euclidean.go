package manifold

import (
	filter "github.com/milosgajdos/go-ukfm"
	"gonum.org/v1/gonum/mat"
)

// Euclidean is flat R^n where retraction is plain vector addition.
type Euclidean struct {
	v *mat.VecDense
}

// NewEuclidean creates a new Euclidean manifold point from v
func NewEuclidean(v mat.Vector) *Euclidean {
	val := &mat.VecDense{}
	val.CloneFromVec(v)

	return &Euclidean{v: val}
}

// Dim returns the tangent space dimension
func (e *Euclidean) Dim() int {
	return e.v.Len()
}

// Retract returns the point e + v
func (e *Euclidean) Retract(v mat.Vector) filter.Manifold {
	r := mat.NewVecDense(e.v.Len(), nil)
	r.AddVec(e.v, v)

	return &Euclidean{v: r}
}

// InverseRetract returns the tangent vector e - m.
// It panics if m is not Euclidean of the same dimension.
func (e *Euclidean) InverseRetract(m filter.Manifold) mat.Vector {
	o := m.(*Euclidean)

	r := mat.NewVecDense(e.v.Len(), nil)
	r.SubVec(e.v, o.v)

	return r
}

// Vec returns the point coordinates
func (e *Euclidean) Vec() mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(e.v)

	return v
}
