package pointsearch

import (
	"context"
	"time"

	"github.com/hupe1980/pointsearch/engine"
	"github.com/hupe1980/pointsearch/index"
	"github.com/hupe1980/pointsearch/index/flat"
	"github.com/hupe1980/pointsearch/index/quadtree"
	"github.com/hupe1980/pointsearch/model"
	"github.com/hupe1980/pointsearch/pointstore"
)

// Stats holds structural statistics of the underlying spatial index.
type Stats = index.Stats

// Index answers radius and coverage queries over an immutable point set.
//
// An Index is safe for concurrent use; no query mutates shared state.
type Index struct {
	store  *pointstore.Store
	idx    index.Index
	engine *engine.Engine
	opts   options
	logger *Logger
}

// Build indexes store. The store must outlive the Index.
//
// Example:
//
//	store, _ := pointstore.New([][2]float64{{0, 0}, {1, 0}, {0, 1}})
//	idx, err := pointsearch.Build(ctx, store, pointsearch.WithLeafCapacity(8))
func Build(ctx context.Context, store *pointstore.Store, optFns ...Option) (*Index, error) {
	opts := applyOptions(optFns)
	logger := opts.logger.WithIndex(opts.kind)

	start := time.Now()
	i, err := build(ctx, store, opts)
	elapsed := time.Since(start)

	var stats Stats
	if i != nil {
		stats = i.idx.Stats()
	}

	opts.metricsCollector.RecordBuild(store.Len(), elapsed, err)
	logger.LogBuild(ctx, store.Len(), stats, elapsed, err)

	if err != nil {
		return nil, err
	}

	i.logger = logger
	return i, nil
}

func build(ctx context.Context, store *pointstore.Store, opts options) (*Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}

	var (
		idx index.Index
		err error
	)

	switch opts.kind {
	case KindFlat:
		idx, err = flat.New(store)
	default:
		idx, err = quadtree.New(store, func(o *quadtree.Options) {
			o.LeafCapacity = opts.leafCapacity
			o.MaxDepth = opts.maxDepth
		})
	}
	if err != nil {
		return nil, translateError(err)
	}

	eng := engine.New(idx, func(o *engine.Options) {
		o.Concurrency = opts.concurrency
		o.Controller = opts.controller
	})

	return &Index{
		store:  store,
		idx:    idx,
		engine: eng,
		opts:   opts,
	}, nil
}

// FromPairs builds an index over (x, y) pairs. Point IDs are the pair positions.
// A NaN or infinite coordinate fails with ErrNonFinitePoint.
func FromPairs(ctx context.Context, pairs [][2]float64, optFns ...Option) (*Index, error) {
	store, err := pointstore.New(pairs)
	if err != nil {
		return nil, translateError(err)
	}
	return Build(ctx, store, optFns...)
}

// Len returns the number of indexed points.
func (i *Index) Len() int {
	return i.store.Len()
}

// Bounds returns the tight bounding box of the indexed points.
func (i *Index) Bounds() model.BoundingBox {
	return i.store.Bounds()
}

// Stats returns structural statistics of the underlying spatial index.
func (i *Index) Stats() Stats {
	return i.idx.Stats()
}

// Store returns the point store backing the index.
func (i *Index) Store() *pointstore.Store {
	return i.store
}

// IndexName returns the name of the underlying spatial index.
func (i *Index) IndexName() string {
	return i.idx.Name()
}

// Kind returns the kind of the underlying spatial index.
func (i *Index) Kind() IndexKind {
	return i.opts.kind
}

// Logger returns the logger the index reports to.
func (i *Index) Logger() *Logger {
	return i.logger
}
