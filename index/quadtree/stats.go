package quadtree

import "github.com/hupe1980/pointsearch/index"

// Stats returns structural statistics computed at build time.
func (t *Tree) Stats() index.Stats {
	if t == nil {
		return index.Stats{Name: "Quadtree"}
	}
	return t.stats
}

func (t *Tree) computeStats() index.Stats {
	st := index.Stats{
		Name:         t.Name(),
		Points:       len(t.ids),
		Nodes:        len(t.nodes),
		LeafCapacity: t.opts.LeafCapacity,
		MaxDepth:     t.opts.MaxDepth,
	}

	for i := range t.nodes {
		n := &t.nodes[i]
		if n.kind == internalNode {
			st.InternalNodes++
			continue
		}
		st.Leaves++
		size := int(n.end - n.start)
		if size > st.LargestLeaf {
			st.LargestLeaf = size
		}
		if size > t.opts.LeafCapacity {
			st.OverfullLeaves++
		}
		if int(n.depth) > st.MaxDepthReached {
			st.MaxDepthReached = int(n.depth)
		}
	}

	return st
}
