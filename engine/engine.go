package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/pointsearch/index"
	"github.com/hupe1980/pointsearch/matchset"
	"github.com/hupe1980/pointsearch/model"
	"github.com/hupe1980/pointsearch/resource"
)

// cancelCheckInterval is the number of visited points between context checks.
const cancelCheckInterval = 4096

// Options contains configuration options for the engine.
type Options struct {
	// Concurrency is the per-call fan-out. Values <= 0 use GOMAXPROCS.
	Concurrency int

	// Controller caps in-flight centroid searches process-wide. Optional.
	Controller *resource.Controller
}

// DefaultOptions contains the default configuration options for the engine.
var DefaultOptions = Options{}

// Engine runs radius queries against an immutable index.
// It is safe for concurrent use.
type Engine struct {
	idx  index.Index
	opts Options
}

// New creates an engine over idx.
func New(idx index.Index, optFns ...func(o *Options)) *Engine {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}

	return &Engine{idx: idx, opts: opts}
}

// Index returns the underlying index.
func (e *Engine) Index() index.Index {
	return e.idx
}

// Concurrency returns the effective per-call fan-out.
func (e *Engine) Concurrency() int {
	return e.opts.Concurrency
}

// MatchAny returns the IDs of every point within r of at least one centroid.
//
// An empty centroid list or a negative radius yields an empty set. The only
// errors are context errors.
func (e *Engine) MatchAny(ctx context.Context, centroids []model.Centroid, r float64) (*matchset.MatchSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(centroids) == 0 || !index.ValidRadius(r) || e.idx == nil || e.idx.Len() == 0 {
		return matchset.New(), nil
	}

	workers := min(e.opts.Concurrency, len(centroids))
	if workers <= 1 {
		set := matchset.New()
		if err := e.searchInto(ctx, set, centroids, r); err != nil {
			return nil, err
		}
		return set, nil
	}

	parts := make([]*matchset.MatchSet, workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (len(centroids) + workers - 1) / workers
	for w := range workers {
		lo := w * chunk
		if lo >= len(centroids) {
			break
		}
		hi := min(lo+chunk, len(centroids))

		g.Go(func() error {
			set := matchset.New()
			if err := e.searchInto(gctx, set, centroids[lo:hi], r); err != nil {
				return err
			}
			parts[w] = set
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return matchset.Merge(parts...), nil
}

// CoverageCount returns the number of distinct points within r of at least one centroid.
// It is monotonically non-decreasing in r.
func (e *Engine) CoverageCount(ctx context.Context, centroids []model.Centroid, r float64) (int, error) {
	set, err := e.MatchAny(ctx, centroids, r)
	if err != nil {
		return 0, err
	}
	return set.Len(), nil
}

// Counter returns CoverageCount bound to centroids.
func (e *Engine) Counter(centroids []model.Centroid) func(ctx context.Context, r float64) (int, error) {
	return func(ctx context.Context, r float64) (int, error) {
		return e.CoverageCount(ctx, centroids, r)
	}
}

func (e *Engine) searchInto(ctx context.Context, set *matchset.MatchSet, centroids []model.Centroid, r float64) error {
	rc := e.opts.Controller

	for _, c := range centroids {
		if err := rc.AcquireSearch(ctx); err != nil {
			return err
		}

		var err error
		visited := 0
		e.idx.RangeVisit(c, r, func(p model.Point) bool {
			set.Add(p.ID)
			visited++
			if visited%cancelCheckInterval == 0 {
				if err = ctx.Err(); err != nil {
					return false
				}
			}
			return true
		})

		rc.ReleaseSearch()

		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
