package pointsearch

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hupe1980/pointsearch/coverage"
	"github.com/hupe1980/pointsearch/index/quadtree"
	"github.com/hupe1980/pointsearch/resource"
)

// IndexKind selects the spatial index backing an Index.
type IndexKind int

const (
	// KindQuadtree is the default region quadtree.
	KindQuadtree IndexKind = iota

	// KindFlat scans every point. Useful as a reference and for tiny inputs.
	KindFlat
)

func (k IndexKind) String() string {
	switch k {
	case KindQuadtree:
		return "quadtree"
	case KindFlat:
		return "flat"
	default:
		return fmt.Sprintf("IndexKind(%d)", int(k))
	}
}

// ParseIndexKind parses "quadtree" or "flat".
func ParseIndexKind(s string) (IndexKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quadtree", "":
		return KindQuadtree, nil
	case "flat":
		return KindFlat, nil
	default:
		return KindQuadtree, &ErrInvalidConfig{Name: "IndexKind", Value: s}
	}
}

type options struct {
	kind             IndexKind
	leafCapacity     int
	maxDepth         int
	tolerance        float64
	maxIterations    int
	strategy         coverage.Strategy
	concurrency      int
	controller       *resource.Controller
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Build.
type Option func(*options)

// WithIndexKind selects the spatial index. Default: KindQuadtree.
func WithIndexKind(kind IndexKind) Option {
	return func(o *options) {
		o.kind = kind
	}
}

// WithLeafCapacity sets the number of points a quadtree leaf holds before it splits.
// Default: 16.
func WithLeafCapacity(c int) Option {
	return func(o *options) {
		o.leafCapacity = c
	}
}

// WithMaxDepth bounds the quadtree height. Leaves at this depth are never
// split, which keeps many identical points from recursing forever.
// Default: 20.
func WithMaxDepth(d int) Option {
	return func(o *options) {
		o.maxDepth = d
	}
}

// WithTolerance sets the absolute radius tolerance of coverage searches.
// Default: 1e-6.
func WithTolerance(eps float64) Option {
	return func(o *options) {
		o.tolerance = eps
	}
}

// WithMaxIterations caps the number of probes of a coverage search. Default: 64.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithSearchStrategy sets the probe strategy of coverage searches.
func WithSearchStrategy(s coverage.Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithConcurrency sets the per-call fan-out of multi-centroid queries.
// Values <= 0 use GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithResourceController shares a process-wide limit on concurrent centroid
// searches (and IO, for the pointio helpers) between indexes.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pointsearch.BasicMetricsCollector{}
//	idx, _ := pointsearch.Build(ctx, store, pointsearch.WithMetricsCollector(metrics))
//	// ... use idx ...
//	stats := metrics.GetStats()
//	fmt.Printf("Matches: %d, Avg latency: %dns\n", stats.MatchCount, stats.MatchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := pointsearch.NewJSONLogger(slog.LevelInfo)
//	idx, _ := pointsearch.Build(ctx, store, pointsearch.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		kind:             KindQuadtree,
		leafCapacity:     quadtree.DefaultOptions.LeafCapacity,
		maxDepth:         quadtree.DefaultOptions.MaxDepth,
		tolerance:        coverage.DefaultTolerance,
		maxIterations:    coverage.DefaultMaxIterations,
		strategy:         coverage.Bisect,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}

func (o *options) validate() error {
	switch o.kind {
	case KindQuadtree, KindFlat:
	default:
		return &ErrInvalidConfig{Name: "IndexKind", Value: o.kind}
	}
	if !(o.tolerance > 0) {
		return &ErrInvalidConfig{Name: "Tolerance", Value: o.tolerance}
	}
	if o.maxIterations < 1 {
		return &ErrInvalidConfig{Name: "MaxIterations", Value: o.maxIterations}
	}
	switch o.strategy {
	case coverage.Bisect, coverage.Interpolate:
	default:
		return &ErrInvalidConfig{Name: "Strategy", Value: o.strategy}
	}
	return nil
}
