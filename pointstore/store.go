// Package pointstore holds the immutable, ordered point sequence an index is built from.
//
// A point's ID is its position in the store. Once built, a Store is read-only
// and safe for concurrent use; indexes reference its entries by ID instead of
// copying coordinates.
package pointstore

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/hupe1980/pointsearch/model"
)

var (
	// ErrTooManyPoints is returned when a store would exceed the ID space.
	ErrTooManyPoints = errors.New("pointstore: too many points")

	// ErrNonFinite is returned for a NaN or infinite coordinate.
	ErrNonFinite = errors.New("pointstore: non-finite coordinate")
)

// Store is an immutable ordered sequence of points.
type Store struct {
	points []model.Point
	bounds model.BoundingBox
}

// New creates a store from (x, y) pairs. The ordinal position becomes the ID.
func New(pairs [][2]float64) (*Store, error) {
	b := NewBuilder(len(pairs))
	for _, p := range pairs {
		if _, err := b.Append(p[0], p[1]); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// MustNew is like New but panics on error. Intended for tests and examples.
func MustNew(pairs [][2]float64) *Store {
	s, err := New(pairs)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of points.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// At returns the point with the given ID. It panics if id is out of range.
func (s *Store) At(id model.ID) model.Point {
	return s.points[id]
}

// Bounds returns the tight bounding box of all points.
// An empty store reports model.EmptyBox().
func (s *Store) Bounds() model.BoundingBox {
	if s == nil {
		return model.EmptyBox()
	}
	return s.bounds
}

// All returns an iterator over the points in ID order.
func (s *Store) All() iter.Seq[model.Point] {
	return func(yield func(model.Point) bool) {
		if s == nil {
			return
		}
		for _, p := range s.points {
			if !yield(p) {
				return
			}
		}
	}
}

// Points returns the backing slice. Callers must not modify it.
func (s *Store) Points() []model.Point {
	if s == nil {
		return nil
	}
	return s.points
}

// Builder accumulates points in input order. It is not safe for concurrent use.
type Builder struct {
	points []model.Point
	bounds model.BoundingBox
	built  bool
}

// NewBuilder creates a builder with capacity for sizeHint points.
func NewBuilder(sizeHint int) *Builder {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Builder{
		points: make([]model.Point, 0, sizeHint),
		bounds: model.EmptyBox(),
	}
}

// Append adds a point and returns its ID.
// NaN and infinite coordinates fail with ErrNonFinite.
func (b *Builder) Append(x, y float64) (model.ID, error) {
	if b.built {
		panic("pointstore: Append after Build")
	}
	if !IsFinite(x, y) {
		return 0, fmt.Errorf("%w: point %d is (%g, %g)", ErrNonFinite, len(b.points), x, y)
	}
	if uint64(len(b.points)) > uint64(model.MaxID) {
		return 0, ErrTooManyPoints
	}
	id := model.ID(len(b.points))
	b.points = append(b.points, model.Point{X: x, Y: y, ID: id})
	b.bounds = b.bounds.Extend(x, y)
	return id, nil
}

// Len returns the number of points appended so far.
func (b *Builder) Len() int { return len(b.points) }

// Build freezes the builder into a Store. The builder must not be reused.
func (b *Builder) Build() *Store {
	b.built = true
	pts := b.points
	b.points = nil
	return &Store{points: pts, bounds: b.bounds}
}

// IsFinite reports whether both coordinates are finite numbers.
func IsFinite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}
