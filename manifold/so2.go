package manifold

import (
	"math"

	filter "github.com/milosgajdos/go-ukfm"
	"gonum.org/v1/gonum/mat"
)

// SO2 is the group of planar rotations, parametrized by
// an angle wrapped to [-pi, pi).
type SO2 struct {
	theta float64
}

// NewSO2 creates a new planar rotation with angle theta
func NewSO2(theta float64) *SO2 {
	return &SO2{theta: wrapAngle(theta)}
}

// Dim returns the tangent space dimension
func (s *SO2) Dim() int {
	return 1
}

// Retract rotates s by the tangent angle v[0]
func (s *SO2) Retract(v mat.Vector) filter.Manifold {
	return NewSO2(s.theta + v.AtVec(0))
}

// InverseRetract returns the tangent angle carrying m to s.
// It panics if m is not SO2.
func (s *SO2) InverseRetract(m filter.Manifold) mat.Vector {
	o := m.(*SO2)

	return mat.NewVecDense(1, []float64{wrapAngle(s.theta - o.theta)})
}

// Angle returns the rotation angle
func (s *SO2) Angle() float64 {
	return s.theta
}

// wrapAngle wraps a to [-pi, pi)
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}

	return a - math.Pi
}
