package manifold

import (
	"math"

	filter "github.com/milosgajdos/go-ukfm"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// SO3 is the group of spatial rotations represented by a unit quaternion.
// Tangent vectors are rotation vectors (axis scaled by angle) applied on
// the right: q * Exp(v).
type SO3 struct {
	q quat.Number
}

// NewSO3 creates a new spatial rotation from q. The quaternion is
// normalized, so q need not be of unit length. The identity rotation is
// NewSO3(quat.Number{Real: 1}).
func NewSO3(q quat.Number) *SO3 {
	n := quat.Abs(q)

	return &SO3{q: quat.Scale(1/n, q)}
}

// Dim returns the tangent space dimension
func (s *SO3) Dim() int {
	return 3
}

// Retract rotates s by the rotation vector v
func (s *SO3) Retract(v mat.Vector) filter.Manifold {
	return &SO3{q: quat.Mul(s.q, expSO3(v.AtVec(0), v.AtVec(1), v.AtVec(2)))}
}

// InverseRetract returns the rotation vector carrying m to s.
// It panics if m is not SO3.
func (s *SO3) InverseRetract(m filter.Manifold) mat.Vector {
	o := m.(*SO3)

	x, y, z := logSO3(quat.Mul(quat.Conj(o.q), s.q))

	return mat.NewVecDense(3, []float64{x, y, z})
}

// Quat returns the unit quaternion of the rotation
func (s *SO3) Quat() quat.Number {
	return s.q
}

// expSO3 maps a rotation vector to a unit quaternion
func expSO3(x, y, z float64) quat.Number {
	theta := math.Sqrt(x*x + y*y + z*z)

	// sin(theta/2)/theta; series expansion near zero
	s := 0.5
	if theta > 1e-10 {
		s = math.Sin(theta/2) / theta
	}

	return quat.Number{
		Real: math.Cos(theta / 2),
		Imag: s * x,
		Jmag: s * y,
		Kmag: s * z,
	}
}

// logSO3 maps a unit quaternion to a rotation vector
func logSO3(q quat.Number) (x, y, z float64) {
	// q and -q are the same rotation; pick the short way round
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}

	n := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if n < 1e-10 {
		return 2 * q.Imag, 2 * q.Jmag, 2 * q.Kmag
	}
	theta := 2 * math.Atan2(n, q.Real)

	return theta * q.Imag / n, theta * q.Jmag / n, theta * q.Kmag / n
}
