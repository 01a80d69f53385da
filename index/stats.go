package index

import (
	"fmt"
	"io"
)

// Stats describes the shape of an index.
type Stats struct {
	Name string

	Points        int
	Nodes         int
	Leaves        int
	InternalNodes int

	// MaxDepthReached is the deepest leaf (root = 0).
	MaxDepthReached int
	// LargestLeaf is the point count of the fullest leaf.
	LargestLeaf int
	// OverfullLeaves counts leaves above capacity because the depth limit was hit.
	OverfullLeaves int

	LeafCapacity int
	MaxDepth     int
}

// Print writes a human-readable report of s to w.
func (s Stats) Print(w io.Writer) {
	fmt.Fprintf(w, "%s:\n", s.Name)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintf(w, "\tLeafCapacity = %d\n", s.LeafCapacity)
	fmt.Fprintf(w, "\tMaxDepth = %d\n", s.MaxDepth)
	fmt.Fprintln(w, "Shape:")
	fmt.Fprintf(w, "\tpoints = %d\n", s.Points)
	fmt.Fprintf(w, "\tnodes = %d (internal %d, leaves %d)\n", s.Nodes, s.InternalNodes, s.Leaves)
	fmt.Fprintf(w, "\tdepth = %d\n", s.MaxDepthReached)
	fmt.Fprintf(w, "\tlargest leaf = %d\n", s.LargestLeaf)
	fmt.Fprintf(w, "\toverfull leaves = %d\n", s.OverfullLeaves)
}
