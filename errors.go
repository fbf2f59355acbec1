package filter

import "errors"

var (
	// ErrNotPositiveDefinite is returned when a covariance matrix fails its
	// Cholesky factorization even after tolerance regularization. It signals
	// an inconsistent covariance supplied or accumulated by the caller.
	ErrNotPositiveDefinite = errors.New("covariance matrix is not positive definite")

	// ErrSingularInnovation is returned when the innovation covariance can not
	// be inverted while computing the Kalman gain.
	ErrSingularInnovation = errors.New("innovation covariance matrix is singular")

	// ErrInvalidSigmaParams is returned when sigma point sampling parameters
	// yield a non-positive n+lambda for the covariance dimension at hand.
	ErrInvalidSigmaParams = errors.New("invalid sigma point parameters")
)
