package estimate

import (
	"testing"

	"github.com/milosgajdos/go-ukfm/manifold"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewBase(t *testing.T) {
	assert := assert.New(t)

	val := manifold.NewEuclidean(mat.NewVecDense(2, []float64{1.0, 1.0}))
	cov := mat.NewSymDense(2, []float64{1.0, 0.0, 0.0, 1.0})

	b, err := NewBase(val)
	assert.NotNil(b)
	assert.NoError(err)

	b, err = NewBase(nil)
	assert.Nil(b)
	assert.Error(err)

	b, err = NewBaseWithCov(val, cov)
	assert.NotNil(b)
	assert.NoError(err)

	b, err = NewBaseWithCov(val, mat.NewSymDense(1, []float64{1.0}))
	assert.Nil(b)
	assert.Error(err)
}

func TestValCov(t *testing.T) {
	assert := assert.New(t)

	val := manifold.NewEuclidean(mat.NewVecDense(2, []float64{1.0, 2.0}))
	cov := mat.NewSymDense(2, []float64{1.0, 2.0, 2.0, 4.0})

	b, err := NewBaseWithCov(val, cov)
	assert.NotNil(b)
	assert.NoError(err)

	v := b.Val().(*manifold.Euclidean).Vec()
	for i := 0; i < v.Len(); i++ {
		assert.Equal(val.Vec().AtVec(i), v.AtVec(i))
	}

	c := b.Cov()
	r, _ := c.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			assert.Equal(cov.At(i, j), c.At(i, j))
		}
	}
}
