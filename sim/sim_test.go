package sim

import (
	"math"
	"testing"

	"github.com/milosgajdos/go-ukfm/manifold"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestInitCond(t *testing.T) {
	assert := assert.New(t)

	state := NewState(0.1, 1.0, 2.0)
	cov := mat.NewSymDense(3, nil)

	ic := NewInitCond(state, cov)
	assert.NotNil(ic)
	assert.Equal(3, ic.State().Dim())
	assert.Equal(3, ic.Cov().SymmetricDim())
}

func TestUnicycleTransition(t *testing.T) {
	assert := assert.New(t)

	robot := NewUnicycle()
	f := robot.Transition()

	// heading 0, driving straight for 1s at 1m/s
	x := NewState(0.0, 0.0, 0.0)
	u := mat.NewVecDense(2, []float64{1.0, 0.0})

	next, err := f(x, &mat.VecDense{}, u, 1.0)
	assert.NoError(err)

	pos := Position(next)
	assert.InDelta(1.0, pos.AtVec(0), 1e-12)
	assert.InDelta(0.0, pos.AtVec(1), 1e-12)

	// turning in place for 1s at pi/2 rad/s
	u = mat.NewVecDense(2, []float64{0.0, math.Pi / 2})
	next, err = f(x, &mat.VecDense{}, u, 1.0)
	assert.NoError(err)
	assert.InDelta(math.Pi/2, next.(*manifold.Compound).At(0).(*manifold.SO2).Angle(), 1e-12)

	// invalid control input
	_, err = f(x, &mat.VecDense{}, mat.NewVecDense(3, nil), 1.0)
	assert.Error(err)

	// invalid process noise dimension
	_, err = f(x, mat.NewVecDense(3, nil), mat.NewVecDense(2, nil), 1.0)
	assert.Error(err)
}

func TestUnicycleMeasurement(t *testing.T) {
	assert := assert.New(t)

	robot := NewUnicycle()
	h := robot.PositionMeasurement()

	x := NewState(0.5, 1.0, -2.0)

	z, err := h(x)
	assert.NoError(err)
	assert.Equal(2, z.Len())
	assert.InDelta(1.0, z.AtVec(0), 1e-12)
	assert.InDelta(-2.0, z.AtVec(1), 1e-12)
}

func TestErrorCov(t *testing.T) {
	assert := assert.New(t)

	e := mat.NewDense(2, 4, []float64{
		0.1, -0.1, 0.2, -0.2,
		0.0, 0.1, -0.1, 0.0,
	})

	cov, err := ErrorCov(e)
	assert.NotNil(cov)
	assert.NoError(err)
	assert.Equal(2, cov.SymmetricDim())

	cov, err = ErrorCov(nil)
	assert.Nil(cov)
	assert.Error(err)
}

func TestNew2DPlot(t *testing.T) {
	assert := assert.New(t)

	data := mat.NewDense(3, 2, []float64{0, 0, 1, 1, 2, 2})

	p, err := New2DPlot(data, data, data)
	assert.NotNil(p)
	assert.NoError(err)

	p, err = New2DPlot(nil, data, data)
	assert.Nil(p)
	assert.Error(err)

	p, err = New2DPlot(mat.NewDense(3, 1, nil), data, data)
	assert.Nil(p)
	assert.Error(err)
}
