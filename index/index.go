package index

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pointsearch/model"
)

// ErrEmptyInput is returned when an index is built from zero points.
var ErrEmptyInput = errors.New("empty input")

// ErrInvalidOption is a named error type for out-of-range build options.
type ErrInvalidOption struct {
	Name  string // Option name
	Value any    // Rejected value
}

// Error returns the error message for an invalid option.
func (e *ErrInvalidOption) Error() string {
	return fmt.Sprintf("invalid option %s: %v", e.Name, e.Value)
}

// Index is a read-only spatial index over a point store.
type Index interface {
	// Name returns the implementation name ("Quadtree", "Flat").
	Name() string

	// Len returns the number of indexed points.
	Len() int

	// Bounds returns the bounding box of the indexed points.
	Bounds() model.BoundingBox

	// RangeVisit calls fn for every point within r of c.
	// Iteration stops early when fn returns false. Order is unspecified.
	RangeVisit(c model.Centroid, r float64, fn func(model.Point) bool)

	// RangeSearch returns every point within r of c, in unspecified order.
	RangeSearch(c model.Centroid, r float64) []model.Point

	// Stats returns structural statistics about the index.
	Stats() Stats
}

// Within is the shared match predicate: squared distance <= r².
func Within(c model.Centroid, p model.Point, r float64) bool {
	return c.Within(p, r)
}

// ValidRadius reports whether r can match anything.
// Negative and NaN radii are valid inputs that match nothing.
func ValidRadius(r float64) bool {
	return r >= 0
}
