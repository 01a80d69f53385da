package pointsearch

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/pointsearch/coverage"
	"github.com/hupe1980/pointsearch/matchset"
)

// Logger wraps slog.Logger with pointsearch-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithIndex adds the index kind to the logger.
func (l *Logger) WithIndex(kind IndexKind) *Logger {
	return &Logger{
		Logger: l.Logger.With("index", kind.String()),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBuild logs an index build.
func (l *Logger) LogBuild(ctx context.Context, points int, stats Stats, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"points", points,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "index built",
			"points", points,
			"nodes", stats.Nodes,
			"leaves", stats.Leaves,
			"max_depth", stats.MaxDepthReached,
			"overfull_leaves", stats.OverfullLeaves,
			"duration", duration,
		)
	}
}

// LogMatch logs a multi-centroid radius query.
func (l *Logger) LogMatch(ctx context.Context, centroids int, radius float64, set *matchset.MatchSet, err error) {
	if err != nil {
		l.ErrorContext(ctx, "match failed",
			"centroids", centroids,
			"radius", radius,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "match completed",
			"centroids", centroids,
			"radius", radius,
			"matches", set.Len(),
			"set_bytes", set.SizeInBytes(),
		)
	}
}

// LogCoverageProbe logs one probe of a coverage search.
func (l *Logger) LogCoverageProbe(ctx context.Context, p coverage.Probe) {
	l.DebugContext(ctx, "trying radius",
		"iteration", p.Iteration,
		"radius", p.Radius,
		"count", p.Count,
		"lo", p.Lo,
		"hi", p.Hi,
	)
}

// LogCoverage logs the outcome of a coverage search.
func (l *Logger) LogCoverage(ctx context.Context, fraction float64, res coverage.Result, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "coverage search failed",
			"fraction", fraction,
			"error", err,
		)
	case !res.Converged:
		l.WarnContext(ctx, "coverage search hit the iteration cap before reaching tolerance",
			"fraction", fraction,
			"target", res.Target,
			"radius", res.Radius,
			"count", res.Count,
			"iterations", res.Iterations,
		)
	default:
		l.InfoContext(ctx, "coverage search completed",
			"fraction", fraction,
			"target", res.Target,
			"radius", res.Radius,
			"count", res.Count,
			"iterations", res.Iterations,
		)
	}
}
