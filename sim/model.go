package sim

import (
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-ukfm"
	"github.com/milosgajdos/go-ukfm/manifold"
	"gonum.org/v1/gonum/mat"
)

// Unicycle is a planar unicycle robot whose state lives on SO(2) x R^2:
// a heading and a 2D position. It is driven by a control input
// u = [v, omega]: forward speed and turn rate.
type Unicycle struct{}

// NewUnicycle creates a new unicycle model and returns it
func NewUnicycle() *Unicycle {
	return &Unicycle{}
}

// NewState returns a unicycle state with heading theta and position (x, y)
func NewState(theta, x, y float64) *manifold.Compound {
	return manifold.NewCompound(
		manifold.NewSO2(theta),
		manifold.NewEuclidean(mat.NewVecDense(2, []float64{x, y})),
	)
}

// Transition returns the unicycle kinematics as a filter.Transition.
// The process noise q = [q_theta, q_v] perturbs the turn rate and the
// forward speed; passing a zero length q means no noise.
func (c *Unicycle) Transition() filter.Transition {
	return func(x filter.Manifold, q, u mat.Vector, dt float64) (filter.Manifold, error) {
		cm, ok := x.(*manifold.Compound)
		if !ok {
			return nil, fmt.Errorf("invalid state type: %T", x)
		}

		theta := cm.At(0).(*manifold.SO2).Angle()
		pos := cm.At(1).(*manifold.Euclidean).Vec()

		if u.Len() != 2 {
			return nil, fmt.Errorf("invalid control input: %v", u)
		}
		v, omega := u.AtVec(0), u.AtVec(1)

		var qTheta, qV float64
		switch q.Len() {
		case 0:
		case 2:
			qTheta, qV = q.AtVec(0), q.AtVec(1)
		default:
			return nil, fmt.Errorf("invalid process noise: %v", q)
		}

		vn := v + qV
		px := pos.AtVec(0) + vn*math.Cos(theta)*dt
		py := pos.AtVec(1) + vn*math.Sin(theta)*dt

		return NewState(theta+(omega+qTheta)*dt, px, py), nil
	}
}

// PositionMeasurement returns a filter.Measurement observing the
// unicycle position.
func (c *Unicycle) PositionMeasurement() filter.Measurement {
	return func(x filter.Manifold) (mat.Vector, error) {
		cm, ok := x.(*manifold.Compound)
		if !ok {
			return nil, fmt.Errorf("invalid state type: %T", x)
		}

		return cm.At(1).(*manifold.Euclidean).Vec(), nil
	}
}

// Position returns the position part of a unicycle state
func Position(x filter.Manifold) mat.Vector {
	return x.(*manifold.Compound).At(1).(*manifold.Euclidean).Vec()
}
