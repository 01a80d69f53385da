// Package promcollector exports pointsearch metrics to Prometheus.
package promcollector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/pointsearch"
)

// Compile-time check to ensure Collector satisfies the metrics interface.
var _ pointsearch.MetricsCollector = (*Collector)(nil)

// Collector implements pointsearch.MetricsCollector on Prometheus metrics.
type Collector struct {
	opLatency     *prometheus.HistogramVec
	pointsIndexed prometheus.Counter
	matchedPoints prometheus.Counter
	centroids     prometheus.Histogram
	probes        prometheus.Histogram
	unconverged   prometheus.Counter
}

// New creates a collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pointsearch_operation_latency_seconds",
			Help:    "Latency of index operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		pointsIndexed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pointsearch_points_indexed_total",
			Help: "Total points indexed by successful builds",
		}),
		matchedPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pointsearch_matched_points_total",
			Help: "Total distinct points returned by radius queries",
		}),
		centroids: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pointsearch_query_centroids",
			Help:    "Number of centroids per radius query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		probes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pointsearch_coverage_probes",
			Help:    "Number of probes per coverage search",
			Buckets: prometheus.LinearBuckets(4, 8, 8),
		}),
		unconverged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pointsearch_coverage_unconverged_total",
			Help: "Coverage searches that hit the iteration cap before reaching tolerance",
		}),
	}

	reg.MustRegister(
		c.opLatency,
		c.pointsIndexed,
		c.matchedPoints,
		c.centroids,
		c.probes,
		c.unconverged,
	)

	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordBuild implements pointsearch.MetricsCollector.
func (c *Collector) RecordBuild(points int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("build", status(err)).Observe(d.Seconds())
	if err == nil {
		c.pointsIndexed.Add(float64(points))
	}
}

// RecordMatch implements pointsearch.MetricsCollector.
func (c *Collector) RecordMatch(centroids, matches int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("match", status(err)).Observe(d.Seconds())
	if err == nil {
		c.centroids.Observe(float64(centroids))
		c.matchedPoints.Add(float64(matches))
	}
}

// RecordCoverage implements pointsearch.MetricsCollector.
func (c *Collector) RecordCoverage(iterations int, converged bool, d time.Duration, err error) {
	c.opLatency.WithLabelValues("coverage", status(err)).Observe(d.Seconds())
	if err != nil {
		return
	}
	c.probes.Observe(float64(iterations))
	if !converged {
		c.unconverged.Inc()
	}
}
