package model

import (
	"fmt"
	"math"
)

// ID is a dense, ordinal point identifier.
// It is the position of the point in the input sequence it was loaded from.
type ID = uint32

// MaxID is the largest representable point identifier.
const MaxID = ^ID(0)

// Point is an indexed 2D point. It is immutable once created.
type Point struct {
	X  float64
	Y  float64
	ID ID
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("Point(%d:%g,%g)", p.ID, p.X, p.Y)
}

// Centroid is the reference point of a radius query.
type Centroid struct {
	X float64
	Y float64
}

// String returns a string representation of the Centroid.
func (c Centroid) String() string {
	return fmt.Sprintf("Centroid(%g,%g)", c.X, c.Y)
}

// SquaredDistance returns the squared Euclidean distance between c and p.
func (c Centroid) SquaredDistance(p Point) float64 {
	dx := p.X - c.X
	dy := p.Y - c.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between c and p.
func (c Centroid) Distance(p Point) float64 {
	return math.Sqrt(c.SquaredDistance(p))
}

// Within reports whether p lies within radius r of c (boundary inclusive).
// A negative or NaN radius never matches.
func (c Centroid) Within(p Point, r float64) bool {
	if !(r >= 0) {
		return false
	}
	return c.SquaredDistance(p) <= r*r
}
