package pointio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hupe1980/pointsearch/model"
	"github.com/hupe1980/pointsearch/pointstore"
	"github.com/hupe1980/pointsearch/resource"
)

// ErrMalformedRecord is matched by every *RecordError.
var ErrMalformedRecord = errors.New("pointio: malformed record")

// RecordError describes a record that could not be parsed.
type RecordError struct {
	Line   int
	Record string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("pointio: line %d: invalid record %q: %v", e.Line, e.Record, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Is reports whether target is ErrMalformedRecord.
func (e *RecordError) Is(target error) bool { return target == ErrMalformedRecord }

// ReadOptions configures record parsing.
type ReadOptions struct {
	// SkipHeader discards the first record. Default: true.
	SkipHeader bool

	// Strict fails on the first malformed record instead of skipping it.
	Strict bool

	// Logger receives a warning per skipped record. Default: slog.Default().
	Logger *slog.Logger

	// Source names the input in log messages.
	Source string

	// Controller throttles reads in Load and LoadCentroids. Optional.
	Controller *resource.Controller
}

func defaultReadOptions(optFns []func(*ReadOptions)) ReadOptions {
	opts := ReadOptions{SkipHeader: true}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts
}

// ReadStats summarizes a read.
type ReadStats struct {
	Records int // accepted records
	Skipped int // malformed records that were skipped
	Header  bool
}

// ReadPoints parses points in input order; the n-th accepted record gets ID n.
func ReadPoints(r io.Reader, optFns ...func(*ReadOptions)) (*pointstore.Store, ReadStats, error) {
	b := pointstore.NewBuilder(0)

	stats, err := readPairs(r, defaultReadOptions(optFns), func(x, y float64) error {
		_, err := b.Append(x, y)
		return err
	})
	if err != nil {
		return nil, stats, err
	}
	return b.Build(), stats, nil
}

// ReadCentroids parses centroids in input order.
func ReadCentroids(r io.Reader, optFns ...func(*ReadOptions)) ([]model.Centroid, ReadStats, error) {
	var centroids []model.Centroid

	stats, err := readPairs(r, defaultReadOptions(optFns), func(x, y float64) error {
		centroids = append(centroids, model.Centroid{X: x, Y: y})
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	return centroids, stats, nil
}

func readPairs(r io.Reader, opts ReadOptions, emit func(x, y float64) error) (ReadStats, error) {
	var stats ReadStats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.LazyQuotes = true

	skipHeader := opts.SkipHeader

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}

		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return stats, err
			}
			if rerr := skip(&stats, opts, &RecordError{Line: pe.Line, Err: pe.Err}); rerr != nil {
				return stats, rerr
			}
			continue
		}

		if skipHeader {
			skipHeader = false
			stats.Header = true
			continue
		}

		x, y, err := parsePair(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			if rerr := skip(&stats, opts, &RecordError{Line: line, Record: strings.Join(rec, ","), Err: err}); rerr != nil {
				return stats, rerr
			}
			continue
		}

		if err := emit(x, y); err != nil {
			return stats, err
		}
		stats.Records++
	}
}

func skip(stats *ReadStats, opts ReadOptions, err *RecordError) error {
	if opts.Strict {
		return err
	}
	stats.Skipped++
	opts.Logger.Warn("skipping invalid record",
		"source", opts.Source,
		"line", err.Line,
		"record", err.Record,
		"error", err.Err,
	)
	return nil
}

var errTooFewFields = errors.New("expected at least two fields")

func parsePair(rec []string) (x, y float64, err error) {
	if len(rec) < 2 {
		return 0, 0, errTooFewFields
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(rec[0]), 64); err != nil {
		return 0, 0, err
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(rec[1]), 64); err != nil {
		return 0, 0, err
	}
	if !pointstore.IsFinite(x, y) {
		return 0, 0, fmt.Errorf("non-finite coordinate (%g, %g)", x, y)
	}
	return x, y, nil
}
