package coverage

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the point set is empty.
	ErrEmptyInput = errors.New("coverage: empty point set")

	// ErrUnreachable is returned when no probed radius reaches the target,
	// which only happens when the oracle is not monotone or has no centroids.
	ErrUnreachable = errors.New("coverage: target count unreachable")
)

// ErrInvalidTarget is returned when the target fraction is outside (0, 1].
type ErrInvalidTarget struct {
	Fraction float64
}

func (e *ErrInvalidTarget) Error() string {
	return fmt.Sprintf("coverage: target fraction %g outside (0, 1]", e.Fraction)
}
