package ukfm

import (
	"fmt"

	filter "github.com/milosgajdos/go-ukfm"
	"github.com/milosgajdos/go-ukfm/estimate"
	"github.com/milosgajdos/go-ukfm/matrix"
	"github.com/milosgajdos/go-ukfm/noise"
	"github.com/milosgajdos/go-ukfm/sigma"
	"gonum.org/v1/gonum/mat"
)

// UKFM is Unscented Kalman Filter on manifolds. It maintains a manifold
// valued state estimate and its covariance in the tangent space at the
// estimate, following Brossard, Barrau and Bonnabel
// "A Code for Unscented Kalman Filtering on Manifolds (UKF-M)" (ICRA 2020).
//
// UKFM is not safe for concurrent use: Predict and Update mutate the
// stored state and covariance in place.
type UKFM struct {
	// x is the manifold state estimate
	x filter.Manifold
	// p is the state covariance in the tangent space at x
	p *mat.SymDense
	// f is the state transition function
	f filter.Transition
	// q is process noise
	q filter.Noise
	// u is control input
	u *mat.VecDense
	// points generates sigma point perturbations
	points sigma.Points
	// inn is innovation vector
	inn *mat.VecDense
	// k is Kalman gain
	k *mat.Dense
}

// New creates new UKFM and returns it.
// It accepts the following parameters:
//   - init:   initial condition of the filter
//   - f:      state transition function; may be nil and set later via SetTransition
//   - q:      process noise; nil means no process noise
//   - u:      control input passed to f; may be nil
//   - points: sigma point sampling; nil selects Merwe sampling with default parameters
//
// It returns error if the initial condition dimensions are invalid.
func New(init filter.InitCond, f filter.Transition, q filter.Noise, u mat.Vector, points sigma.Points) (*UKFM, error) {
	if init == nil || init.State() == nil {
		return nil, fmt.Errorf("invalid initial condition: %v", init)
	}

	x := init.State()
	if x.Dim() <= 0 {
		return nil, fmt.Errorf("invalid state dimension: %d", x.Dim())
	}

	if init.Cov().SymmetricDim() != x.Dim() {
		return nil, fmt.Errorf("invalid covariance dimension: %d != %d", init.Cov().SymmetricDim(), x.Dim())
	}

	if q == nil {
		q, _ = noise.NewNone()
	}

	if points == nil {
		points = sigma.NewMerwe()
	}

	p := mat.NewSymDense(init.Cov().SymmetricDim(), nil)
	p.CopySym(init.Cov())

	ctl := &mat.VecDense{}
	if u != nil {
		ctl.CloneFromVec(u)
	}

	return &UKFM{
		x:      x,
		p:      p,
		f:      f,
		q:      q,
		u:      ctl,
		points: points,
		inn:    &mat.VecDense{},
		k:      &mat.Dense{},
	}, nil
}

// Predict propagates the state estimate and its covariance one step forward
// with time step dt and returns the new estimate. The covariance is the sum
// of two sigma point passes: one drawn from the state covariance and one
// drawn from the process noise covariance.
// It returns error if sigma points fail to generate or if the transition
// function fails; the stored state and covariance are only mutated once
// every step has succeeded.
func (k *UKFM) Predict(dt float64) (filter.Estimate, error) {
	if k.f == nil {
		return nil, fmt.Errorf("no transition function set")
	}

	n := k.x.Dim()
	qDim := k.q.Cov().SymmetricDim()

	// project the mean through f with zero noise
	xPred, err := k.f(k.x, zeroVec(qDim), k.u, dt)
	if err != nil {
		return nil, fmt.Errorf("failed to propagate state: %v", err)
	}

	cov := mat.NewDense(n, n, nil)
	outer := mat.NewDense(n, n, nil)

	// state uncertainty contribution: perturb the state, propagate,
	// measure the deviation from the projected mean in the tangent space
	set, err := k.points.Generate(k.p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate state sigma points: %w", err)
	}

	_, cols := set.W.Dims()
	for i := 0; i < cols; i++ {
		xi, err := k.f(k.x.Retract(set.W.ColView(i)), zeroVec(qDim), k.u, dt)
		if err != nil {
			return nil, fmt.Errorf("failed to propagate sigma point: %v", err)
		}
		e := xi.InverseRetract(xPred)
		// point i pairs with weight i+1: the mean weight is skipped since
		// the zero perturbation point cancels in a retraction based mean
		outer.Outer(set.Weights[i+1], e, e)
		cov.Add(cov, outer)
	}

	// process noise contribution
	if _, ok := k.q.(*noise.None); !ok {
		qSet, err := k.points.Generate(k.q.Cov())
		if err != nil {
			return nil, fmt.Errorf("failed to generate process noise sigma points: %w", err)
		}

		_, qCols := qSet.W.Dims()
		for i := 0; i < qCols; i++ {
			xi, err := k.f(k.x, qSet.W.ColView(i), k.u, dt)
			if err != nil {
				return nil, fmt.Errorf("failed to propagate noise sigma point: %v", err)
			}
			e := xi.InverseRetract(xPred)
			outer.Outer(qSet.Weights[i+1], e, e)
			cov.Add(cov, outer)
		}
	}

	// it's safe to update the filter state
	k.x = xPred
	k.p.CopySym(matrix.ToSym(cov))

	return estimate.NewBaseWithCov(k.x, k.p)
}

// Update corrects the state estimate with measurement z and measurement
// noise covariance r, and returns the corrected estimate. The measurement
// function h observes a state whose noise has already been composed into
// it, so r is added to the innovation covariance directly.
// It returns error if sigma points fail to generate, if h fails, or if the
// innovation covariance is singular; the stored state and covariance are
// only mutated once the full correction has been computed.
func (k *UKFM) Update(h filter.Measurement, z mat.Vector, r mat.Symmetric) (filter.Estimate, error) {
	if h == nil {
		return nil, fmt.Errorf("no measurement function given")
	}

	n := k.x.Dim()
	m := z.Len()

	if r.SymmetricDim() != m {
		return nil, fmt.Errorf("invalid measurement noise dimension: %d != %d", r.SymmetricDim(), m)
	}

	set, err := k.points.Generate(k.p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sigma points: %w", err)
	}
	_, cols := set.W.Dims()

	// observe the unperturbed state and all perturbed sigma points
	ys := mat.NewDense(m, cols+1, nil)
	y0, err := h(k.x.Retract(zeroVec(n)))
	if err != nil {
		return nil, fmt.Errorf("failed to observe state: %v", err)
	}
	if y0.Len() != m {
		return nil, fmt.Errorf("invalid measurement function output: %d != %d", y0.Len(), m)
	}
	setCol(ys, 0, y0)

	for i := 1; i <= cols; i++ {
		yi, err := h(k.x.Retract(set.W.ColView(i - 1)))
		if err != nil {
			return nil, fmt.Errorf("failed to observe sigma point: %v", err)
		}
		setCol(ys, i, yi)
	}

	yMean := measMean(ys, set.Weights)

	// innovation covariance; r is added directly since the measurement
	// noise was not part of the sampled covariance
	s := innCov(ys, yMean, set.Weights)
	s.Add(s, r)

	t := crossCov(set.W, ys, yMean, set.Weights)

	return k.correct(t, s, z, yMean)
}

// UpdateWithNoise corrects the state estimate with measurement z and
// measurement noise covariance r, and returns the corrected estimate.
// The measurement function h takes the state noise and measurement noise
// explicitly, so the sigma points are drawn from the block diagonal
// augmentation [[P, 0], [0, r]] and r is not added to the innovation
// covariance again.
// Failure semantics are the same as for Update.
func (k *UKFM) UpdateWithNoise(h filter.MeasurementWithNoise, z mat.Vector, r mat.Symmetric) (filter.Estimate, error) {
	if h == nil {
		return nil, fmt.Errorf("no measurement function given")
	}

	n := k.x.Dim()
	rn := r.SymmetricDim()
	m := z.Len()

	set, err := k.points.Generate(matrix.BlockDiagSym(k.p, r))
	if err != nil {
		return nil, fmt.Errorf("failed to generate augmented sigma points: %w", err)
	}
	_, cols := set.W.Dims()

	// split the augmented perturbations into state noise and measurement noise blocks
	wp := set.W.Slice(0, n, 0, cols).(*mat.Dense)
	wv := set.W.Slice(n, n+rn, 0, cols).(*mat.Dense)

	ys := mat.NewDense(m, cols+1, nil)
	y0, err := h(k.x, zeroVec(n), zeroVec(rn))
	if err != nil {
		return nil, fmt.Errorf("failed to observe state: %v", err)
	}
	if y0.Len() != m {
		return nil, fmt.Errorf("invalid measurement function output: %d != %d", y0.Len(), m)
	}
	setCol(ys, 0, y0)

	for i := 1; i <= cols; i++ {
		yi, err := h(k.x, wp.ColView(i-1), wv.ColView(i-1))
		if err != nil {
			return nil, fmt.Errorf("failed to observe sigma point: %v", err)
		}
		setCol(ys, i, yi)
	}

	yMean := measMean(ys, set.Weights)
	s := innCov(ys, yMean, set.Weights)
	t := crossCov(wp, ys, yMean, set.Weights)

	return k.correct(t, s, z, yMean)
}

// correct computes the Kalman gain from cross covariance t and innovation
// covariance s, applies the state and covariance corrections and commits them.
func (k *UKFM) correct(t, s *mat.Dense, z mat.Vector, yMean *mat.VecDense) (filter.Estimate, error) {
	sInv := &mat.Dense{}
	if err := sInv.Inverse(s); err != nil {
		return nil, fmt.Errorf("%w: %v", filter.ErrSingularInnovation, err)
	}

	gain := &mat.Dense{}
	gain.Mul(t, sInv)

	// innovation vector
	inn := &mat.VecDense{}
	inn.SubVec(z, yMean)

	// state correction mapped back onto the manifold
	corr := &mat.VecDense{}
	corr.MulVec(gain, inn)
	xNew := k.x.Retract(corr)

	// covariance correction: P - K*S*K'
	ks := &mat.Dense{}
	ks.Mul(gain, s)
	ksk := &mat.Dense{}
	ksk.Mul(ks, gain.T())
	pNew := &mat.Dense{}
	pNew.Sub(k.p, ksk)

	// it's safe to update the filter state
	k.x = xNew
	k.p.CopySym(matrix.ToSym(pNew))
	k.inn = inn
	k.k = gain

	return estimate.NewBaseWithCov(k.x, k.p)
}

// State returns the current state estimate
func (k *UKFM) State() filter.Manifold {
	return k.x
}

// Cov returns the current state covariance
func (k *UKFM) Cov() mat.Symmetric {
	cov := mat.NewSymDense(k.p.SymmetricDim(), nil)
	cov.CopySym(k.p)

	return cov
}

// SetCov sets the state covariance matrix to cov.
// It returns error if cov is nil or its dimensions do not match the state dimension.
func (k *UKFM) SetCov(cov mat.Symmetric) error {
	if cov == nil {
		return fmt.Errorf("invalid covariance matrix: %v", cov)
	}

	if cov.SymmetricDim() != k.p.SymmetricDim() {
		return fmt.Errorf("invalid covariance matrix dims: [%d x %d]", cov.SymmetricDim(), cov.SymmetricDim())
	}

	k.p.CopySym(cov)

	return nil
}

// Gain returns Kalman gain of the most recent update
func (k *UKFM) Gain() mat.Matrix {
	gain := &mat.Dense{}
	gain.CloneFrom(k.k)

	return gain
}

// Innovation returns the innovation vector of the most recent update
func (k *UKFM) Innovation() mat.Vector {
	inn := &mat.VecDense{}
	inn.CloneFromVec(k.inn)

	return inn
}

// SetTransition sets the state transition function
func (k *UKFM) SetTransition(f filter.Transition) {
	k.f = f
}

// SetProcessNoise sets the process noise. Nil means no process noise.
func (k *UKFM) SetProcessNoise(q filter.Noise) {
	if q == nil {
		q, _ = noise.NewNone()
	}
	k.q = q
}

// SetCtl sets the control input passed to the transition function
func (k *UKFM) SetCtl(u mat.Vector) {
	ctl := &mat.VecDense{}
	if u != nil {
		ctl.CloneFromVec(u)
	}
	k.u = ctl
}

// SetPoints sets the sigma point sampling strategy and its parameters.
// It returns error if points is nil.
func (k *UKFM) SetPoints(points sigma.Points) error {
	if points == nil {
		return fmt.Errorf("invalid sigma points: %v", points)
	}
	k.points = points

	return nil
}

// measMean returns the weighted mean of the measurement sigma points
// stored in the columns of ys.
func measMean(ys *mat.Dense, weights []float64) *mat.VecDense {
	m, cols := ys.Dims()

	yMean := mat.NewVecDense(m, nil)
	for i := 0; i < cols; i++ {
		yMean.AddScaledVec(yMean, weights[i], ys.ColView(i))
	}

	return yMean
}

// innCov returns the weighted covariance of the measurement sigma points
// around their mean.
func innCov(ys *mat.Dense, yMean *mat.VecDense, weights []float64) *mat.Dense {
	m, cols := ys.Dims()

	s := mat.NewDense(m, m, nil)
	outer := mat.NewDense(m, m, nil)
	d := mat.NewVecDense(m, nil)

	for i := 0; i < cols; i++ {
		d.SubVec(ys.ColView(i), yMean)
		outer.Outer(weights[i], d, d)
		s.Add(s, outer)
	}

	return s
}

// crossCov returns the weighted cross covariance between the state noise
// perturbations in the columns of w and the centered measurement sigma
// points. The mean point carries no perturbation and is skipped.
func crossCov(w, ys *mat.Dense, yMean *mat.VecDense, weights []float64) *mat.Dense {
	n, cols := w.Dims()
	m, _ := ys.Dims()

	t := mat.NewDense(n, m, nil)
	outer := mat.NewDense(n, m, nil)
	d := mat.NewVecDense(m, nil)

	for i := 0; i < cols; i++ {
		d.SubVec(ys.ColView(i+1), yMean)
		outer.Outer(weights[i+1], w.ColView(i), d)
		t.Add(t, outer)
	}

	return t
}

// zeroVec returns a zero vector of dimension d
func zeroVec(d int) *mat.VecDense {
	if d == 0 {
		return &mat.VecDense{}
	}

	return mat.NewVecDense(d, nil)
}

// setCol copies vector v into column c of m
func setCol(m *mat.Dense, c int, v mat.Vector) {
	for i := 0; i < v.Len(); i++ {
		m.Set(i, c, v.AtVec(i))
	}
}
