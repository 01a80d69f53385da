// This file implements fluent builder APIs for creating and configuring indexes.
// Builders are immutable - each method returns a new builder with the updated configuration.

package pointsearch

import (
	"context"

	"github.com/hupe1980/pointsearch/coverage"
	"github.com/hupe1980/pointsearch/index/quadtree"
	"github.com/hupe1980/pointsearch/pointstore"
	"github.com/hupe1980/pointsearch/resource"
)

// =============================================================================
// Quadtree Builder (Immutable)
// =============================================================================

// Quadtree creates a new quadtree index builder over store.
//
// Example:
//
//	idx, err := pointsearch.Quadtree(store).
//	    LeafCapacity(16).
//	    MaxDepth(20).
//	    Tolerance(1e-4).
//	    Concurrency(4).
//	    Build(ctx)
func Quadtree(store *pointstore.Store) QuadtreeBuilder {
	return QuadtreeBuilder{
		store:        store,
		leafCapacity: quadtree.DefaultOptions.LeafCapacity,
		maxDepth:     quadtree.DefaultOptions.MaxDepth,
	}
}

// QuadtreeBuilder is an immutable fluent builder for quadtree-backed indexes.
type QuadtreeBuilder struct {
	store        *pointstore.Store
	leafCapacity int
	maxDepth     int
	common       commonConfig
}

// LeafCapacity sets the number of points a leaf holds before it splits.
// Default: 16.
func (b QuadtreeBuilder) LeafCapacity(c int) QuadtreeBuilder {
	b.leafCapacity = c
	return b
}

// MaxDepth bounds the tree height. Default: 20.
func (b QuadtreeBuilder) MaxDepth(d int) QuadtreeBuilder {
	b.maxDepth = d
	return b
}

// Tolerance sets the absolute radius tolerance of coverage searches.
func (b QuadtreeBuilder) Tolerance(eps float64) QuadtreeBuilder {
	b.common.tolerance = &eps
	return b
}

// MaxIterations caps the number of probes of a coverage search.
func (b QuadtreeBuilder) MaxIterations(n int) QuadtreeBuilder {
	b.common.maxIterations = &n
	return b
}

// Strategy sets the probe strategy of coverage searches.
func (b QuadtreeBuilder) Strategy(s coverage.Strategy) QuadtreeBuilder {
	b.common.strategy = &s
	return b
}

// Concurrency sets the per-call fan-out of multi-centroid queries.
func (b QuadtreeBuilder) Concurrency(n int) QuadtreeBuilder {
	b.common.concurrency = n
	return b
}

// Controller shares a process-wide resource controller.
func (b QuadtreeBuilder) Controller(rc *resource.Controller) QuadtreeBuilder {
	b.common.controller = rc
	return b
}

// Logger sets the structured logger for operation tracing.
func (b QuadtreeBuilder) Logger(l *Logger) QuadtreeBuilder {
	b.common.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b QuadtreeBuilder) Metrics(mc MetricsCollector) QuadtreeBuilder {
	b.common.metrics = mc
	return b
}

// Build builds the index.
func (b QuadtreeBuilder) Build(ctx context.Context) (*Index, error) {
	opts := append(b.common.options(),
		WithIndexKind(KindQuadtree),
		WithLeafCapacity(b.leafCapacity),
		WithMaxDepth(b.maxDepth),
	)
	return Build(ctx, b.store, opts...)
}

// =============================================================================
// Flat Builder (Immutable)
// =============================================================================

// Flat creates a new brute-force index builder over store.
// Every query scans all points; useful as a reference and for small inputs.
func Flat(store *pointstore.Store) FlatBuilder {
	return FlatBuilder{store: store}
}

// FlatBuilder is an immutable fluent builder for scan-backed indexes.
type FlatBuilder struct {
	store  *pointstore.Store
	common commonConfig
}

// Tolerance sets the absolute radius tolerance of coverage searches.
func (b FlatBuilder) Tolerance(eps float64) FlatBuilder {
	b.common.tolerance = &eps
	return b
}

// MaxIterations caps the number of probes of a coverage search.
func (b FlatBuilder) MaxIterations(n int) FlatBuilder {
	b.common.maxIterations = &n
	return b
}

// Strategy sets the probe strategy of coverage searches.
func (b FlatBuilder) Strategy(s coverage.Strategy) FlatBuilder {
	b.common.strategy = &s
	return b
}

// Concurrency sets the per-call fan-out of multi-centroid queries.
func (b FlatBuilder) Concurrency(n int) FlatBuilder {
	b.common.concurrency = n
	return b
}

// Controller shares a process-wide resource controller.
func (b FlatBuilder) Controller(rc *resource.Controller) FlatBuilder {
	b.common.controller = rc
	return b
}

// Logger sets the structured logger for operation tracing.
func (b FlatBuilder) Logger(l *Logger) FlatBuilder {
	b.common.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b FlatBuilder) Metrics(mc MetricsCollector) FlatBuilder {
	b.common.metrics = mc
	return b
}

// Build builds the index.
func (b FlatBuilder) Build(ctx context.Context) (*Index, error) {
	return Build(ctx, b.store, append(b.common.options(), WithIndexKind(KindFlat))...)
}

// commonConfig holds the settings shared by all builders.
// Pointer fields distinguish "unset" from an explicit zero.
type commonConfig struct {
	tolerance     *float64
	maxIterations *int
	strategy      *coverage.Strategy
	concurrency   int
	controller    *resource.Controller
	logger        *Logger
	metrics       MetricsCollector
}

func (c commonConfig) options() []Option {
	opts := []Option{
		WithConcurrency(c.concurrency),
		WithResourceController(c.controller),
	}
	if c.tolerance != nil {
		opts = append(opts, WithTolerance(*c.tolerance))
	}
	if c.maxIterations != nil {
		opts = append(opts, WithMaxIterations(*c.maxIterations))
	}
	if c.strategy != nil {
		opts = append(opts, WithSearchStrategy(*c.strategy))
	}
	if c.logger != nil {
		opts = append(opts, WithLogger(c.logger))
	}
	if c.metrics != nil {
		opts = append(opts, WithMetricsCollector(c.metrics))
	}
	return opts
}
