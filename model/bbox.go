package model

import (
	"fmt"
	"math"
)

// Quadrant identifies one of the four equal-area children of a BoundingBox.
type Quadrant int

const (
	NW Quadrant = iota
	NE
	SW
	SE
)

// Quadrants lists all quadrants in child-slot order.
var Quadrants = [4]Quadrant{NW, NE, SW, SE}

func (q Quadrant) String() string {
	switch q {
	case NW:
		return "NW"
	case NE:
		return "NE"
	case SW:
		return "SW"
	case SE:
		return "SE"
	default:
		return fmt.Sprintf("Unknown(%d)", int(q))
	}
}

// BoundingBox is a closed axis-aligned box: both boundaries are inclusive.
//
// The zero value is the degenerate box at the origin. Use EmptyBox to start an
// accumulation with Extend.
type BoundingBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// EmptyBox returns a box that contains nothing and grows on the first Extend.
func EmptyBox() BoundingBox {
	return BoundingBox{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// IsEmpty reports whether the box contains no point at all.
func (b BoundingBox) IsEmpty() bool {
	return !(b.MinX <= b.MaxX && b.MinY <= b.MaxY)
}

// Extend returns the smallest box containing b and (x, y).
func (b BoundingBox) Extend(x, y float64) BoundingBox {
	if x < b.MinX {
		b.MinX = x
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if y > b.MaxY {
		b.MaxY = y
	}
	return b
}

// Contains reports whether (x, y) lies inside the closed box.
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Intersects reports whether two closed boxes share at least one point.
// Touching edges count as an intersection.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.MinX <= o.MaxX && b.MaxX >= o.MinX &&
		b.MinY <= o.MaxY && b.MaxY >= o.MinY
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() (x, y float64) {
	return b.MinX + (b.MaxX-b.MinX)/2, b.MinY + (b.MaxY-b.MinY)/2
}

// Width returns the extent along the x axis.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the extent along the y axis.
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Diagonal returns the length of the box diagonal.
func (b BoundingBox) Diagonal() float64 {
	return math.Hypot(b.Width(), b.Height())
}

// QuadrantOf returns the quadrant of b that owns (x, y).
//
// A coordinate on a split line belongs to the east (x) or north (y) side,
// so every point maps to exactly one quadrant.
func (b BoundingBox) QuadrantOf(x, y float64) Quadrant {
	mx, my := b.Center()
	switch {
	case x < mx && y >= my:
		return NW
	case x >= mx && y >= my:
		return NE
	case x < mx:
		return SW
	default:
		return SE
	}
}

// Quadrant returns the equal-area child box for q.
func (b BoundingBox) Quadrant(q Quadrant) BoundingBox {
	mx, my := b.Center()
	switch q {
	case NW:
		return BoundingBox{MinX: b.MinX, MinY: my, MaxX: mx, MaxY: b.MaxY}
	case NE:
		return BoundingBox{MinX: mx, MinY: my, MaxX: b.MaxX, MaxY: b.MaxY}
	case SW:
		return BoundingBox{MinX: b.MinX, MinY: b.MinY, MaxX: mx, MaxY: my}
	default:
		return BoundingBox{MinX: mx, MinY: b.MinY, MaxX: b.MaxX, MaxY: my}
	}
}

// SquareAround returns the bounding square of the disk of radius r around c.
func SquareAround(c Centroid, r float64) BoundingBox {
	return BoundingBox{
		MinX: c.X - r,
		MinY: c.Y - r,
		MaxX: c.X + r,
		MaxY: c.Y + r,
	}
}

// FarthestDistance returns the distance from (x, y) to the farthest corner of b.
// Every point inside b lies within this distance of (x, y).
func (b BoundingBox) FarthestDistance(x, y float64) float64 {
	dx := math.Max(math.Abs(x-b.MinX), math.Abs(x-b.MaxX))
	dy := math.Max(math.Abs(y-b.MinY), math.Abs(y-b.MaxY))
	return math.Hypot(dx, dy)
}

// String returns a string representation of the BoundingBox.
func (b BoundingBox) String() string {
	return fmt.Sprintf("Box[(%g,%g)-(%g,%g)]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}
