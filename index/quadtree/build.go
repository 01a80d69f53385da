package quadtree

import (
	"github.com/hupe1980/pointsearch/model"
	"github.com/hupe1980/pointsearch/pointstore"
)

// builder partitions a permutation of point IDs in place.
type builder struct {
	store   *pointstore.Store
	opts    Options
	nodes   []node
	ids     []model.ID
	scratch []model.ID
	quads   []model.Quadrant
}

func newBuilder(store *pointstore.Store, opts Options) *builder {
	n := store.Len()
	ids := make([]model.ID, n)
	for i := range ids {
		ids[i] = model.ID(i)
	}

	// A rough guess: one leaf per LeafCapacity points plus internal overhead.
	hint := 2*n/opts.LeafCapacity + 1

	return &builder{
		store:   store,
		opts:    opts,
		nodes:   make([]node, 0, hint),
		ids:     ids,
		scratch: make([]model.ID, n),
		quads:   make([]model.Quadrant, n),
	}
}

// build creates the node for ids[start:end] and returns its arena index.
func (b *builder) build(box model.BoundingBox, start, end uint32, depth int) int32 {
	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, node{
		box:      box,
		kind:     leafNode,
		depth:    uint8(depth),
		start:    start,
		end:      end,
		children: [4]int32{noChild, noChild, noChild, noChild},
	})

	count := int(end - start)
	if count <= b.opts.LeafCapacity || depth >= b.opts.MaxDepth {
		return idx
	}

	offsets := b.partition(box, start, end)

	var children [4]int32
	for _, q := range model.Quadrants {
		lo, hi := offsets[q], offsets[q+1]
		if lo == hi {
			children[q] = noChild
			continue
		}
		children[q] = b.build(box.Quadrant(q), lo, hi, depth+1)
	}

	// b.nodes may have been reallocated by the recursive calls.
	n := &b.nodes[idx]
	n.kind = internalNode
	n.start, n.end = 0, 0
	n.children = children

	return idx
}

// partition reorders ids[start:end] so that each quadrant is contiguous,
// in NW, NE, SW, SE order, and returns the five window boundaries.
func (b *builder) partition(box model.BoundingBox, start, end uint32) [5]uint32 {
	var counts [4]uint32
	for i := start; i < end; i++ {
		p := b.store.At(b.ids[i])
		q := box.QuadrantOf(p.X, p.Y)
		b.quads[i] = q
		counts[q]++
	}

	var offsets [5]uint32
	offsets[0] = start
	for q := 0; q < 4; q++ {
		offsets[q+1] = offsets[q] + counts[q]
	}

	next := [4]uint32{offsets[0], offsets[1], offsets[2], offsets[3]}
	for i := start; i < end; i++ {
		q := b.quads[i]
		b.scratch[next[q]] = b.ids[i]
		next[q]++
	}
	copy(b.ids[start:end], b.scratch[start:end])

	return offsets
}
