package pointsearch

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see the promcollector package).
type MetricsCollector interface {
	// RecordBuild is called after each index build.
	// points is the size of the point store, err is nil if successful.
	RecordBuild(points int, duration time.Duration, err error)

	// RecordMatch is called after each MatchAny or CoverageCount call.
	RecordMatch(centroids, matches int, duration time.Duration, err error)

	// RecordCoverage is called after each coverage search.
	// iterations is the number of probes, converged reports whether the
	// tolerance was reached before the iteration cap.
	RecordCoverage(iterations int, converged bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)          {}
func (NoopMetricsCollector) RecordMatch(int, int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordCoverage(int, bool, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount          atomic.Int64
	BuildErrors         atomic.Int64
	BuildTotalNanos     atomic.Int64
	PointsIndexed       atomic.Int64
	MatchCount          atomic.Int64
	MatchErrors         atomic.Int64
	MatchTotalNanos     atomic.Int64
	MatchedPoints       atomic.Int64
	CoverageCount       atomic.Int64
	CoverageErrors      atomic.Int64
	CoverageUnconverged atomic.Int64
	CoverageProbes      atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(points int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.PointsIndexed.Add(int64(points))
}

// RecordMatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMatch(_, matches int, duration time.Duration, err error) {
	b.MatchCount.Add(1)
	b.MatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MatchErrors.Add(1)
		return
	}
	b.MatchedPoints.Add(int64(matches))
}

// RecordCoverage implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCoverage(iterations int, converged bool, _ time.Duration, err error) {
	b.CoverageCount.Add(1)
	if err != nil {
		b.CoverageErrors.Add(1)
		return
	}
	b.CoverageProbes.Add(int64(iterations))
	if !converged {
		b.CoverageUnconverged.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:          b.BuildCount.Load(),
		BuildErrors:         b.BuildErrors.Load(),
		BuildAvgNanos:       avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		PointsIndexed:       b.PointsIndexed.Load(),
		MatchCount:          b.MatchCount.Load(),
		MatchErrors:         b.MatchErrors.Load(),
		MatchAvgNanos:       avg(b.MatchTotalNanos.Load(), b.MatchCount.Load()),
		MatchedPoints:       b.MatchedPoints.Load(),
		CoverageCount:       b.CoverageCount.Load(),
		CoverageErrors:      b.CoverageErrors.Load(),
		CoverageUnconverged: b.CoverageUnconverged.Load(),
		CoverageProbes:      b.CoverageProbes.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount          int64
	BuildErrors         int64
	BuildAvgNanos       int64
	PointsIndexed       int64
	MatchCount          int64
	MatchErrors         int64
	MatchAvgNanos       int64
	MatchedPoints       int64
	CoverageCount       int64
	CoverageErrors      int64
	CoverageUnconverged int64
	CoverageProbes      int64
}
