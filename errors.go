package pointsearch

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pointsearch/coverage"
	"github.com/hupe1980/pointsearch/index"
	"github.com/hupe1980/pointsearch/pointstore"
)

var (
	// ErrEmptyInput is returned when building an index or searching coverage over zero points.
	ErrEmptyInput = errors.New("empty point set")

	// ErrNoCentroids is returned by a coverage search without centroids,
	// which can never reach a positive target.
	ErrNoCentroids = errors.New("no centroids")

	// ErrTooManyPoints is returned when a point set exceeds the 32-bit ID space.
	ErrTooManyPoints = errors.New("too many points")

	// ErrNonFinitePoint is returned when a coordinate is NaN or infinite.
	ErrNonFinitePoint = errors.New("non-finite point")
)

// ErrInvalidTarget indicates a coverage fraction outside (0, 1].
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidTarget struct {
	Fraction float64
	cause    error
}

func (e *ErrInvalidTarget) Error() string {
	return fmt.Sprintf("invalid target fraction: %g (want 0 < p <= 1)", e.Fraction)
}

func (e *ErrInvalidTarget) Unwrap() error { return e.cause }

// ErrInvalidConfig indicates an invalid configuration value.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidConfig struct {
	Name  string
	Value any
	cause error
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid config: %s=%v", e.Name, e.Value)
}

func (e *ErrInvalidConfig) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Empty input unification.
	if errors.Is(err, index.ErrEmptyInput) || errors.Is(err, coverage.ErrEmptyInput) {
		return fmt.Errorf("%w: %w", ErrEmptyInput, err)
	}
	if errors.Is(err, pointstore.ErrTooManyPoints) {
		return fmt.Errorf("%w: %w", ErrTooManyPoints, err)
	}
	if errors.Is(err, pointstore.ErrNonFinite) {
		return fmt.Errorf("%w: %w", ErrNonFinitePoint, err)
	}

	// Argument normalization.
	var it *coverage.ErrInvalidTarget
	if errors.As(err, &it) {
		return &ErrInvalidTarget{Fraction: it.Fraction, cause: err}
	}
	var io *index.ErrInvalidOption
	if errors.As(err, &io) {
		return &ErrInvalidConfig{Name: io.Name, Value: io.Value, cause: err}
	}

	return err
}
