package sigma

import (
	"errors"
	"math"
	"testing"

	filter "github.com/milosgajdos/go-ukfm"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestWeightsSumToOne(t *testing.T) {
	assert := assert.New(t)

	cov := mat.NewSymDense(3, []float64{
		1, 0.1, 0,
		0.1, 2, 0.2,
		0, 0.2, 1.5,
	})

	for _, points := range []Points{
		NewJulier(3),
		&Julier{Lambda: 2.0},
	} {
		set, err := points.Generate(cov)
		assert.NotNil(set)
		assert.NoError(err)

		assert.Equal(2*3+1, len(set.Weights))
		assert.InDelta(1.0, floats.Sum(set.Weights), 1e-10)
	}

	// the Merwe mean weight carries the covariance correction term
	// on top of the unit weight sum
	for _, m := range []*Merwe{
		NewMerwe(),
		{Alpha: 0.5, Beta: 2.0, Kappa: 1.0},
	} {
		set, err := m.Generate(cov)
		assert.NotNil(set)
		assert.NoError(err)

		assert.Equal(2*3+1, len(set.Weights))
		corr := 1 - m.Alpha*m.Alpha + m.Beta
		assert.InDelta(1.0, floats.Sum(set.Weights)-corr, 1e-6)
	}
}

func TestIsotropicCovariance(t *testing.T) {
	assert := assert.New(t)

	n := 3
	sigma := 2.0
	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		cov.SetSym(i, i, sigma*sigma)
	}

	m := NewMerwe()
	set, err := m.Generate(cov)
	assert.NotNil(set)
	assert.NoError(err)

	rows, cols := set.W.Dims()
	assert.Equal(n, rows)
	assert.Equal(2*n, cols)

	lambda := m.Alpha*m.Alpha*(float64(n)+m.Kappa) - float64(n)
	norm := sigma * math.Sqrt(float64(n)+lambda)

	for j := 0; j < cols; j++ {
		assert.InDelta(norm, mat.Norm(set.W.ColView(j), 2), 1e-3)
	}

	// points come in symmetric pairs: v_i = -v_{i+n}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			assert.InDelta(-set.W.At(i, j), set.W.At(i, j+n), 1e-10)
		}
	}
}

func TestNotPositiveDefinite(t *testing.T) {
	assert := assert.New(t)

	cov := mat.NewSymDense(2, []float64{-1, 0, 0, 1})

	for _, points := range []Points{NewMerwe(), NewJulier(2)} {
		set, err := points.Generate(cov)
		assert.Nil(set)
		assert.Error(err)
		assert.True(errors.Is(err, filter.ErrNotPositiveDefinite))
	}
}

func TestInvalidParams(t *testing.T) {
	assert := assert.New(t)

	cov := mat.NewSymDense(2, []float64{1, 0, 0, 1})

	// n + lambda = 0
	j := &Julier{Lambda: -2}
	set, err := j.Generate(cov)
	assert.Nil(set)
	assert.True(errors.Is(err, filter.ErrInvalidSigmaParams))

	// n + lambda < 0
	j.Lambda = -5
	set, err = j.Generate(cov)
	assert.Nil(set)
	assert.True(errors.Is(err, filter.ErrInvalidSigmaParams))

	m := &Merwe{Alpha: 1.0, Beta: 2.0, Kappa: -5.0}
	set, err = m.Generate(cov)
	assert.Nil(set)
	assert.True(errors.Is(err, filter.ErrInvalidSigmaParams))

	// zero size covariance
	set, err = NewMerwe().Generate(&mat.SymDense{})
	assert.Nil(set)
	assert.Error(err)
}
