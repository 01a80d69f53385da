// Package flat provides an exact brute-force index.
//
// Flat scans every point for every query. It is the reference implementation
// the quadtree is verified against, and a reasonable choice for small inputs.
package flat

import (
	"github.com/hupe1980/pointsearch/index"
	"github.com/hupe1980/pointsearch/model"
	"github.com/hupe1980/pointsearch/pointstore"
)

// Compile-time check to ensure Flat satisfies the index interface.
var _ index.Index = (*Flat)(nil)

// Flat is a brute-force index over a point store.
type Flat struct {
	store *pointstore.Store
}

// New creates a flat index over store. Empty stores are rejected.
func New(store *pointstore.Store) (*Flat, error) {
	if store.Len() == 0 {
		return nil, index.ErrEmptyInput
	}
	return &Flat{store: store}, nil
}

func (*Flat) Name() string { return "Flat" }

// Len returns the number of points.
func (f *Flat) Len() int {
	if f == nil {
		return 0
	}
	return f.store.Len()
}

// Bounds returns the tight bounding box of the points.
func (f *Flat) Bounds() model.BoundingBox {
	if f == nil {
		return model.EmptyBox()
	}
	return f.store.Bounds()
}

// RangeVisit calls fn for every point within r of c, in ID order.
func (f *Flat) RangeVisit(c model.Centroid, r float64, fn func(model.Point) bool) {
	if f == nil || !index.ValidRadius(r) {
		return
	}
	for _, p := range f.store.Points() {
		if index.Within(c, p, r) && !fn(p) {
			return
		}
	}
}

// RangeSearch returns every point within r of c, in ID order.
func (f *Flat) RangeSearch(c model.Centroid, r float64) []model.Point {
	var out []model.Point
	f.RangeVisit(c, r, func(p model.Point) bool {
		out = append(out, p)
		return true
	})
	return out
}

// Stats reports the flat index as a single leaf.
func (f *Flat) Stats() index.Stats {
	n := f.Len()
	return index.Stats{
		Name:          f.Name(),
		Points:        n,
		Nodes:         1,
		Leaves:        1,
		LargestLeaf:   n,
		LeafCapacity:  n,
		InternalNodes: 0,
	}
}
