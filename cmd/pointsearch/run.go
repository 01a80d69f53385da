package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/hupe1980/pointsearch"
	"github.com/hupe1980/pointsearch/blobstore"
	"github.com/hupe1980/pointsearch/blobstore/resolver"
	"github.com/hupe1980/pointsearch/internal/tui"
	"github.com/hupe1980/pointsearch/matchset"
	"github.com/hupe1980/pointsearch/model"
	"github.com/hupe1980/pointsearch/pointio"
	"github.com/hupe1980/pointsearch/pointstore"
	"github.com/hupe1980/pointsearch/promcollector"
	"github.com/hupe1980/pointsearch/render"
	"github.com/hupe1980/pointsearch/resource"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	exitOK = iota
	exitUsage
	exitInput
	exitQuery
)

type environment struct {
	stdout io.Writer
	stderr io.Writer

	// memory backs mem:// locations.
	memory *blobstore.MemoryStore
}

// exitError carries the exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func fail(code int, format string, args ...any) error {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}

func run(ctx context.Context, args []string, env environment) int {
	cfg, err := parseFlags(args, env.stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(env.stderr, "pointsearch:", err)
		return exitUsage
	}

	logger := newLogger(cfg, env.stderr)

	if err := execute(ctx, cfg, env, logger); err != nil {
		code := exitQuery
		var ee *exitError
		if errors.As(err, &ee) {
			code = ee.code
		}
		logger.ErrorContext(ctx, "pointsearch failed", "error", err, "exit_code", code)
		fmt.Fprintln(env.stderr, "pointsearch:", err)
		return code
	}
	return exitOK
}

func newLogger(cfg config, w io.Writer) *pointsearch.Logger {
	opts := &slog.HandlerOptions{Level: cfg.logLevel}
	if cfg.logJSON {
		return pointsearch.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return pointsearch.NewLogger(slog.NewTextHandler(w, opts))
}

func execute(ctx context.Context, cfg config, env environment, logger *pointsearch.Logger) error {
	var rc *resource.Controller
	if cfg.ioLimit > 0 {
		rc = resource.NewController(resource.Config{IOLimitBytesPerSec: cfg.ioLimit})
	}

	var metrics pointsearch.MetricsCollector = pointsearch.NoopMetricsCollector{}
	if cfg.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		metrics = promcollector.New(reg)

		shutdown, err := serveMetrics(cfg.metricsAddr, reg, logger)
		if err != nil {
			return fail(exitUsage, "metrics: %w", err)
		}
		defer shutdown()
	}

	readOpts := func(o *pointio.ReadOptions) {
		o.SkipHeader = !cfg.noHeader
		o.Strict = cfg.strict
		o.Logger = logger.Logger
		o.Controller = rc
	}

	store, centroids, err := load(ctx, cfg, env, logger, readOpts)
	if err != nil {
		return err
	}

	idx, err := pointsearch.Build(ctx, store,
		pointsearch.WithIndexKind(cfg.kind),
		pointsearch.WithLeafCapacity(cfg.leafCapacity),
		pointsearch.WithMaxDepth(cfg.maxDepth),
		pointsearch.WithTolerance(cfg.tolerance),
		pointsearch.WithMaxIterations(cfg.maxIterations),
		pointsearch.WithSearchStrategy(cfg.strategy),
		pointsearch.WithConcurrency(cfg.concurrency),
		pointsearch.WithResourceController(rc),
		pointsearch.WithMetricsCollector(metrics),
		pointsearch.WithLogger(logger),
	)
	if err != nil {
		var ic *pointsearch.ErrInvalidConfig
		if errors.As(err, &ic) {
			return fail(exitUsage, "build index: %w", err)
		}
		return fail(exitInput, "build index: %w", err)
	}

	if cfg.interactive {
		return tui.Run(ctx, tui.Config{
			Index:     idx,
			Centroids: centroids,
			Radius:    cfg.radius,
			Fraction:  cfg.targetPercent / 100,
		})
	}

	summary, matches, err := query(ctx, cfg, idx, centroids)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := report(&out, cfg, idx, summary, matches); err != nil {
		return fail(exitQuery, "write results: %w", err)
	}

	if cfg.plot {
		out.WriteString(render.Plot(render.Scene{
			Points:    idx.Store().Points(),
			Matches:   matches,
			Centroids: centroids,
			Radius:    summary.Radius,
		}, cfg.plotWidth, cfg.plotHeight))
		out.WriteByte('\n')
	}

	if cfg.output == "" {
		_, err := env.stdout.Write(out.Bytes())
		return err
	}

	loc, err := resolve(ctx, cfg.output, env)
	if err != nil {
		return fail(exitUsage, "output: %w", err)
	}
	if err := pointio.Save(ctx, loc.Store, loc.Name, out.Bytes(), rc); err != nil {
		return fail(exitQuery, "%w", err)
	}
	logger.InfoContext(ctx, "results written", "output", cfg.output, "bytes", out.Len())
	return nil
}

func resolve(ctx context.Context, uri string, env environment) (resolver.Location, error) {
	return resolver.Resolve(ctx, uri, func(o *resolver.Options) {
		if env.memory != nil {
			o.Memory = env.memory
		}
	})
}

func load(ctx context.Context, cfg config, env environment, logger *pointsearch.Logger, readOpts func(*pointio.ReadOptions)) (*pointstore.Store, []model.Centroid, error) {
	ploc, err := resolve(ctx, cfg.pointsURI, env)
	if err != nil {
		return nil, nil, fail(exitUsage, "points: %w", err)
	}
	store, pstats, err := pointio.Load(ctx, ploc.Store, ploc.Name, readOpts)
	if err != nil {
		return nil, nil, fail(exitInput, "points: %w", err)
	}
	logger.InfoContext(ctx, "points loaded", "source", cfg.pointsURI, "points", pstats.Records, "skipped", pstats.Skipped)

	cloc, err := resolve(ctx, cfg.centroidsURI, env)
	if err != nil {
		return nil, nil, fail(exitUsage, "centroids: %w", err)
	}
	centroids, cstats, err := pointio.LoadCentroids(ctx, cloc.Store, cloc.Name, readOpts)
	if err != nil {
		return nil, nil, fail(exitInput, "centroids: %w", err)
	}
	logger.InfoContext(ctx, "centroids loaded", "source", cfg.centroidsURI, "centroids", cstats.Records, "skipped", cstats.Skipped)

	return store, centroids, nil
}

func query(ctx context.Context, cfg config, idx *pointsearch.Index, centroids []model.Centroid) (pointio.Summary, *matchset.MatchSet, error) {
	if !cfg.coverageMode() {
		matches, err := idx.MatchAny(ctx, centroids, cfg.radius)
		if err != nil {
			return pointio.Summary{}, nil, fail(exitQuery, "match: %w", err)
		}
		return pointio.Summary{Count: matches.Len(), Radius: cfg.radius}, matches, nil
	}

	p := cfg.targetPercent / 100
	res, err := idx.FindRadiusForCoverage(ctx, centroids, p,
		pointsearch.WithCoverageTargetCount(percentTarget(cfg.targetPercent, idx.Len())))
	if err != nil {
		return pointio.Summary{}, nil, fail(exitQuery, "coverage search: %w", err)
	}

	s := pointio.Summary{
		Count:      res.Count,
		Radius:     res.Radius,
		Coverage:   true,
		Target:     res.Target,
		Iterations: res.Iterations,
		Converged:  res.Converged,
		Fraction:   p,
	}
	if !cfg.listPoints && !cfg.plot {
		return s, nil, nil
	}

	matches, err := idx.MatchAny(ctx, centroids, res.Radius)
	if err != nil {
		return pointio.Summary{}, nil, fail(exitQuery, "match: %w", err)
	}
	return s, matches, nil
}

// percentTarget returns ceil(percent·n/100). Products within 1e-9 of an
// integer are snapped to it first, so 7% of 100 points asks for 7 and not 8.
func percentTarget(percent float64, n int) int {
	v := percent * float64(n) / 100
	if r := math.Round(v); math.Abs(v-r) <= 1e-9*math.Max(1, r) {
		v = r
	}
	return max(1, min(int(math.Ceil(v)), n))
}

func report(w io.Writer, cfg config, idx *pointsearch.Index, s pointio.Summary, matches *matchset.MatchSet) error {
	withCodec := func(o *pointio.WriteOptions) { o.Codec = cfg.codec }

	if !cfg.listPoints {
		return pointio.WriteSummary(w, s, cfg.format, withCodec)
	}

	store := idx.Store()
	points := make([]model.Point, 0, matches.Len())
	for id := range matches.All() {
		points = append(points, store.At(id))
	}
	return pointio.WriteMatches(w, points, cfg.format, withCodec)
}

// serveMetrics exposes reg on addr until the returned function is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *pointsearch.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
