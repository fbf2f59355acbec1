package filter

import "gonum.org/v1/gonum/mat"

// Manifold is a smooth state space where only local perturbations,
// expressed as tangent space vectors, add and subtract meaningfully.
// Manifold values are immutable: Retract returns a new value.
type Manifold interface {
	// Dim returns the dimension of the manifold tangent space
	Dim() int
	// Retract applies tangent perturbation v and returns the resulting point.
	// Retracting a zero vector must return a point equal to the receiver.
	Retract(v mat.Vector) Manifold
	// InverseRetract returns the tangent vector carrying m to the receiver.
	// For small v, m.Retract(v).InverseRetract(m) must approximately equal v.
	InverseRetract(m Manifold) mat.Vector
}

// Transition propagates state x to the next step given
// process noise q, control input u and time step dt.
type Transition func(x Manifold, q, u mat.Vector, dt float64) (Manifold, error)

// Measurement observes the state whose noise
// has already been composed into it.
type Measurement func(x Manifold) (mat.Vector, error)

// MeasurementWithNoise observes state x given
// state noise q and measurement noise r.
type MeasurementWithNoise func(x Manifold, q, r mat.Vector) (mat.Vector, error)

// Filter is a manifold dynamical system filter.
type Filter interface {
	// Predict estimates the next internal state of the system
	Predict(dt float64) (Estimate, error)
	// Update updates the system state based on external measurement
	Update(h Measurement, z mat.Vector, r mat.Symmetric) (Estimate, error)
}

// InitCond is initial state condition of the filter
type InitCond interface {
	// State returns initial filter state
	State() Manifold
	// Cov returns initial state covariance
	Cov() mat.Symmetric
}

// Estimate is dynamical system filter estimate
type Estimate interface {
	// Val returns estimate value
	Val() Manifold
	// Cov returns estimate covariance
	Cov() mat.Symmetric
}

// Noise is dynamical system noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
	// Reset resets the noise
	Reset() error
}
