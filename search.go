package pointsearch

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/hupe1980/pointsearch/coverage"
	"github.com/hupe1980/pointsearch/matchset"
	"github.com/hupe1980/pointsearch/model"
)

// RangeSearch returns every point within r of c, ordered by ID.
// A negative or NaN radius returns no points.
func (i *Index) RangeSearch(c model.Centroid, r float64) []model.Point {
	out := i.idx.RangeSearch(c, r)
	slices.SortFunc(out, func(a, b model.Point) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// MatchAny returns the IDs of every point within r of at least one centroid.
// Each point appears at most once regardless of how many centroids reach it.
func (i *Index) MatchAny(ctx context.Context, centroids []model.Centroid, r float64) (*matchset.MatchSet, error) {
	start := time.Now()
	set, err := i.engine.MatchAny(ctx, centroids, r)

	i.opts.metricsCollector.RecordMatch(len(centroids), set.Len(), time.Since(start), err)
	i.logger.LogMatch(ctx, len(centroids), r, set, err)

	return set, err
}

// CoverageCount returns |MatchAny(centroids, r)|.
func (i *Index) CoverageCount(ctx context.Context, centroids []model.Centroid, r float64) (int, error) {
	set, err := i.MatchAny(ctx, centroids, r)
	if err != nil {
		return 0, err
	}
	return set.Len(), nil
}

type coverageOptions struct {
	tolerance     float64
	maxIterations int
	strategy      coverage.Strategy
	observer      coverage.Observer
	targetCount   int
}

// CoverageOption overrides the index-level coverage configuration for one call.
type CoverageOption func(*coverageOptions)

// WithCoverageTolerance sets the absolute radius tolerance for one search.
func WithCoverageTolerance(eps float64) CoverageOption {
	return func(o *coverageOptions) {
		o.tolerance = eps
	}
}

// WithCoverageMaxIterations caps the number of probes for one search.
func WithCoverageMaxIterations(n int) CoverageOption {
	return func(o *coverageOptions) {
		o.maxIterations = n
	}
}

// WithCoverageStrategy sets the probe strategy for one search.
func WithCoverageStrategy(s coverage.Strategy) CoverageOption {
	return func(o *coverageOptions) {
		o.strategy = s
	}
}

// WithCoverageTargetCount replaces ceil(p·N) with an explicit number of
// points to cover. Callers that derive k from a rounded percentage use it
// to keep float noise out of the target.
func WithCoverageTargetCount(k int) CoverageOption {
	return func(o *coverageOptions) {
		o.targetCount = k
	}
}

// WithCoverageObserver receives every probe of the search.
func WithCoverageObserver(fn coverage.Observer) CoverageOption {
	return func(o *coverageOptions) {
		o.observer = fn
	}
}

// FindRadiusForCoverage returns the smallest radius r such that at least
// ceil(p·N) points lie within r of some centroid.
//
// Result.Radius is an upper-bound approximation within the configured
// tolerance of the exact threshold, which is always one of the finite
// centroid-point distances.
func (i *Index) FindRadiusForCoverage(ctx context.Context, centroids []model.Centroid, p float64, optFns ...CoverageOption) (coverage.Result, error) {
	opts := coverageOptions{
		tolerance:     i.opts.tolerance,
		maxIterations: i.opts.maxIterations,
		strategy:      i.opts.strategy,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	start := time.Now()
	res, err := i.findRadius(ctx, centroids, p, opts)

	i.opts.metricsCollector.RecordCoverage(res.Iterations, res.Converged, time.Since(start), err)
	i.logger.LogCoverage(ctx, p, res, err)

	return res, err
}

func (i *Index) findRadius(ctx context.Context, centroids []model.Centroid, p float64, opts coverageOptions) (coverage.Result, error) {
	if !(p > 0 && p <= 1) {
		return coverage.Result{}, &ErrInvalidTarget{Fraction: p}
	}
	if !(opts.tolerance > 0) {
		return coverage.Result{}, &ErrInvalidConfig{Name: "Tolerance", Value: opts.tolerance}
	}
	if len(centroids) == 0 {
		return coverage.Result{}, ErrNoCentroids
	}

	// Counting goes straight to the engine so probes are not reported as matches.
	counter := i.engine.Counter(centroids)

	res, err := coverage.FindRadius(ctx, counter, coverage.Params{
		TargetFraction: p,
		TotalPoints:    i.Len(),
		TargetCount:    opts.targetCount,
		UpperBound:     coverage.UpperBound(i.Bounds(), centroids),
		Tolerance:      opts.tolerance,
		MaxIterations:  opts.maxIterations,
		Strategy:       opts.strategy,
		Observer: func(pr coverage.Probe) {
			i.logger.LogCoverageProbe(ctx, pr)
			if opts.observer != nil {
				opts.observer(pr)
			}
		},
	})

	return res, translateError(err)
}
