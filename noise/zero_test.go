package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewZero(t *testing.T) {
	assert := assert.New(t)

	z, err := NewZero(2)
	assert.NotNil(z)
	assert.NoError(err)

	z, err = NewZero(0)
	assert.Nil(z)
	assert.Error(err)

	z, err = NewZero(-3)
	assert.Nil(z)
	assert.Error(err)
}

func TestZeroMeanCovSample(t *testing.T) {
	assert := assert.New(t)

	size := 3
	z, err := NewZero(size)
	assert.NotNil(z)
	assert.NoError(err)

	mean := z.Mean()
	assert.Equal(size, len(mean))
	for _, m := range mean {
		assert.Equal(0.0, m)
	}

	cov := z.Cov()
	assert.Equal(size, cov.SymmetricDim())
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			assert.Equal(0.0, cov.At(i, j))
		}
	}

	sample := z.Sample()
	assert.Equal(size, sample.Len())
	for i := 0; i < size; i++ {
		assert.Equal(0.0, sample.AtVec(i))
	}

	assert.NoError(z.Reset())
}
