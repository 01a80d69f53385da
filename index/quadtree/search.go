package quadtree

import (
	"github.com/hupe1980/pointsearch/index"
	"github.com/hupe1980/pointsearch/model"
)

// RangeVisit calls fn for every point within r of c.
//
// Only nodes whose box intersects the bounding square of the query disk are
// entered. Iteration stops when fn returns false. A negative or NaN radius
// visits nothing.
func (t *Tree) RangeVisit(c model.Centroid, r float64, fn func(model.Point) bool) {
	if t == nil || len(t.nodes) == 0 || !index.ValidRadius(r) {
		return
	}

	query := model.SquareAround(c, r)

	var stackBuf [3*MaxDepthLimit + 4]int32
	stack := append(stackBuf[:0], 0)

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[i]
		if !n.box.Intersects(query) {
			continue
		}

		switch n.kind {
		case leafNode:
			for _, id := range t.ids[n.start:n.end] {
				p := t.store.At(id)
				if index.Within(c, p, r) && !fn(p) {
					return
				}
			}
		case internalNode:
			// Push in reverse so NW is visited first.
			for q := 3; q >= 0; q-- {
				if ch := n.children[q]; ch != noChild {
					stack = append(stack, ch)
				}
			}
		}
	}
}

// RangeSearch returns every point within r of c, in unspecified order.
func (t *Tree) RangeSearch(c model.Centroid, r float64) []model.Point {
	var out []model.Point
	t.RangeVisit(c, r, func(p model.Point) bool {
		out = append(out, p)
		return true
	})
	return out
}

// VisitLeaves calls fn for every leaf in depth-first NW, NE, SW, SE order.
// ids aliases the tree's internal storage and must not be modified.
func (t *Tree) VisitLeaves(fn func(depth int, box model.BoundingBox, ids []model.ID) bool) {
	if t == nil || len(t.nodes) == 0 {
		return
	}
	t.visitLeaves(0, fn)
}

func (t *Tree) visitLeaves(i int32, fn func(int, model.BoundingBox, []model.ID) bool) bool {
	n := &t.nodes[i]
	if n.kind == leafNode {
		return fn(int(n.depth), n.box, t.ids[n.start:n.end])
	}
	for _, ch := range n.children {
		if ch == noChild {
			continue
		}
		if !t.visitLeaves(ch, fn) {
			return false
		}
	}
	return true
}
