package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/pointsearch"
	"github.com/hupe1980/pointsearch/codec"
	"github.com/hupe1980/pointsearch/coverage"
	"github.com/hupe1980/pointsearch/index/quadtree"
	"github.com/hupe1980/pointsearch/pointio"
)

const usageLine = "usage: pointsearch [flags] <points> <centroids>"

type config struct {
	pointsURI    string
	centroidsURI string

	radius        float64
	targetPercent float64
	listPoints    bool

	kind          pointsearch.IndexKind
	leafCapacity  int
	maxDepth      int
	tolerance     float64
	maxIterations int
	strategy      coverage.Strategy
	concurrency   int

	format pointio.Format
	codec  codec.Codec
	output string

	plot        bool
	plotWidth   int
	plotHeight  int
	interactive bool

	noHeader bool
	strict   bool

	logLevel    slog.Level
	logJSON     bool
	metricsAddr string
	ioLimit     int64
}

// coverageMode reports whether a target percentage was given.
func (c config) coverageMode() bool {
	return c.targetPercent != 0
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var (
		cfg       config
		kind      string
		strategy  string
		format    string
		codecName string
		logLevel  string
	)

	fs := flag.NewFlagSet("pointsearch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	fs.Float64Var(&cfg.radius, "radius", 5, "the radius in which to search for points")
	fs.Float64Var(&cfg.targetPercent, "target-percent", 0, "search for the radius that covers this percentage of points (0 < p <= 100)")
	fs.BoolVar(&cfg.listPoints, "list-points", false, "list the found points rather than just their count")

	fs.StringVar(&kind, "index", "quadtree", "index kind: quadtree or flat")
	fs.IntVar(&cfg.leafCapacity, "capacity", quadtree.DefaultOptions.LeafCapacity, "quadtree leaf capacity")
	fs.IntVar(&cfg.maxDepth, "max-depth", quadtree.DefaultOptions.MaxDepth, "quadtree depth limit")
	fs.Float64Var(&cfg.tolerance, "tolerance", coverage.DefaultTolerance, "coverage search radius tolerance")
	fs.IntVar(&cfg.maxIterations, "max-iter", coverage.DefaultMaxIterations, "coverage search iteration cap")
	fs.StringVar(&strategy, "strategy", "bisect", "coverage search strategy: bisect or interpolate")
	fs.IntVar(&cfg.concurrency, "concurrency", 0, "centroid search workers (0 = GOMAXPROCS)")

	fs.StringVar(&format, "format", "csv", "output format: csv or json")
	fs.StringVar(&codecName, "codec", codec.Default.Name(), "json codec: "+strings.Join(codec.Names(), ", "))
	fs.StringVar(&cfg.output, "output", "", "write results to this location instead of stdout (path, s3://, minio://)")

	fs.BoolVar(&cfg.plot, "plot", false, "print a braille plot of points, matches and centroids")
	fs.IntVar(&cfg.plotWidth, "plot-width", 80, "plot width in terminal cells")
	fs.IntVar(&cfg.plotHeight, "plot-height", 24, "plot height in terminal cells")
	fs.BoolVar(&cfg.interactive, "interactive", false, "open the interactive viewer")

	fs.BoolVar(&cfg.noHeader, "no-header", false, "input files have no header line")
	fs.BoolVar(&cfg.strict, "strict", false, "fail on malformed records instead of skipping them")

	fs.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.logJSON, "log-json", false, "log as JSON")
	fs.StringVar(&cfg.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.Int64Var(&cfg.ioLimit, "io-limit", 0, "limit file IO to this many bytes per second (0 = unlimited)")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return config{}, errors.New("expected a point file and a centroid file")
	}
	cfg.pointsURI, cfg.centroidsURI = fs.Arg(0), fs.Arg(1)

	var err error
	if cfg.kind, err = pointsearch.ParseIndexKind(kind); err != nil {
		return config{}, err
	}
	if cfg.strategy, err = coverage.ParseStrategy(strategy); err != nil {
		return config{}, err
	}
	if cfg.format, err = pointio.ParseFormat(format); err != nil {
		return config{}, err
	}

	var ok bool
	if cfg.codec, ok = codec.ByName(codecName); !ok {
		return config{}, fmt.Errorf("unknown codec %q", codecName)
	}

	if err := cfg.logLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return config{}, fmt.Errorf("invalid log level %q", logLevel)
	}

	if cfg.coverageMode() && !(cfg.targetPercent > 0 && cfg.targetPercent <= 100) {
		return config{}, fmt.Errorf("target-percent must be in (0, 100], got %g", cfg.targetPercent)
	}
	if cfg.plot && (cfg.plotWidth <= 0 || cfg.plotHeight <= 0) {
		return config{}, fmt.Errorf("plot size must be positive, got %dx%d", cfg.plotWidth, cfg.plotHeight)
	}
	if cfg.ioLimit < 0 {
		return config{}, fmt.Errorf("io-limit must be non-negative, got %d", cfg.ioLimit)
	}

	return cfg, nil
}
