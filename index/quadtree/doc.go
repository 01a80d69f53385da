// Package quadtree implements a read-only point quadtree for radius queries.
//
// # Structure
//
// Nodes live in a single arena slice and refer to their children by index, so
// the tree has no pointers between nodes. A node is either a leaf, owning a
// contiguous window of a permutation of point IDs, or an internal node with
// four child slots (NW, NE, SW, SE). Quadrants that received no points are
// left empty (slot = -1), so no materialised node is ever empty.
//
// # Build
//
// The root box is the tight bounding box of the store. A node with more than
// LeafCapacity points and depth < MaxDepth is split into four equal-area
// quadrants at its centre. A point on a split line goes to the east/north
// side. Splitting stops at MaxDepth even if the leaf is over capacity, which
// bounds the depth for heavily duplicated coordinates.
//
// # Query
//
// RangeVisit descends from the root and only enters nodes whose box intersects
// the bounding square of the query disk; leaf points are tested exactly with
// dx² + dy² <= r².
//
// Trees are immutable after New and safe for concurrent readers.
package quadtree
