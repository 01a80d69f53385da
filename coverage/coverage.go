package coverage

import (
	"context"
	"math"

	"github.com/hupe1980/pointsearch/model"
)

const (
	// DefaultTolerance is the absolute radius tolerance used when none is given.
	DefaultTolerance = 1e-6

	// DefaultMaxIterations bounds the number of probes when none is given.
	DefaultMaxIterations = 64
)

// Oracle returns the number of distinct points within r of the fixed centroids.
// It must be monotonically non-decreasing in r.
type Oracle func(ctx context.Context, r float64) (int, error)

// Probe describes one oracle evaluation inside the search loop.
type Probe struct {
	Iteration int
	Radius    float64
	Count     int
	Lo        float64
	Hi        float64
}

// Observer receives every probe.
type Observer func(Probe)

// Params configures FindRadius.
type Params struct {
	// TargetFraction is the fraction p of points to cover, in (0, 1].
	TargetFraction float64

	// TotalPoints is N, the size of the point set.
	TotalPoints int

	// TargetCount, when positive, replaces ceil(p·N) as the number of points
	// to cover. It is clamped to N.
	TargetCount int

	// UpperBound is a radius expected to cover every point.
	// If it does not, it is doubled until it does.
	UpperBound float64

	// Tolerance is the absolute radius tolerance ε. Values <= 0 use DefaultTolerance.
	Tolerance float64

	// MaxIterations caps the number of probes. Values <= 0 use DefaultMaxIterations.
	MaxIterations int

	Strategy Strategy
	Observer Observer
}

// Result is the outcome of a coverage search.
type Result struct {
	// Radius is the smallest probed radius that reaches Target.
	Radius float64

	// Count is the coverage count at Radius.
	Count int

	// Target is k = ceil(p·N), or Params.TargetCount when set.
	Target int

	// Iterations is the number of probes made inside the search loop.
	Iterations int

	// Converged is false when MaxIterations was hit before the interval
	// shrank below the tolerance.
	Converged bool
}

// TargetCount returns k = ceil(p·N), clamped to [1, N].
func TargetCount(p float64, n int) int {
	k := int(math.Ceil(p * float64(n)))
	return max(1, min(k, n))
}

// UpperBound returns a radius at which every point of box is within reach of
// some centroid: the smallest over centroids of the distance to the farthest
// box corner. For centroids inside the box this is at most the box diagonal.
// It returns +Inf when there are no centroids.
func UpperBound(box model.BoundingBox, centroids []model.Centroid) float64 {
	best := math.Inf(1)
	for _, c := range centroids {
		best = math.Min(best, box.FarthestDistance(c.X, c.Y))
	}
	return best
}

// FindRadius searches for the smallest radius r with oracle(r) >= ceil(p·N).
func FindRadius(ctx context.Context, oracle Oracle, params Params) (Result, error) {
	p := params.TargetFraction
	if !(p > 0 && p <= 1) {
		return Result{}, &ErrInvalidTarget{Fraction: p}
	}

	if params.TotalPoints <= 0 {
		return Result{}, ErrEmptyInput
	}

	eps := params.Tolerance
	if !(eps > 0) {
		eps = DefaultTolerance
	}

	maxIter := params.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	k := TargetCount(p, params.TotalPoints)
	if params.TargetCount > 0 {
		k = min(params.TargetCount, params.TotalPoints)
	}
	res := Result{Target: k}

	countLo, err := oracle(ctx, 0)
	if err != nil {
		return Result{}, err
	}
	if countLo >= k {
		res.Count = countLo
		res.Converged = true
		return res, nil
	}

	hi := params.UpperBound
	if !(hi > 0) || math.IsInf(hi, 0) {
		hi = 1
	}

	countHi, err := oracle(ctx, hi)
	if err != nil {
		return Result{}, err
	}
	for doublings := 0; countHi < k; doublings++ {
		if doublings >= maxIter {
			return Result{}, ErrUnreachable
		}
		hi *= 2
		if countHi, err = oracle(ctx, hi); err != nil {
			return Result{}, err
		}
	}

	lo := 0.0

	for hi-lo >= eps && res.Iterations < maxIter {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		res.Iterations++
		r := params.Strategy.next(res.Iterations, lo, countLo, hi, countHi, k)

		n, err := oracle(ctx, r)
		if err != nil {
			return Result{}, err
		}

		if n >= k {
			hi, countHi = r, n
		} else {
			lo, countLo = r, n
		}

		if params.Observer != nil {
			params.Observer(Probe{Iteration: res.Iterations, Radius: r, Count: n, Lo: lo, Hi: hi})
		}
	}

	res.Radius = hi
	res.Count = countHi
	res.Converged = hi-lo < eps

	return res, nil
}
