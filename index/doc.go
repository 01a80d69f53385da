// Package index provides the spatial index interface and its implementations.
//
// pointsearch ships two indexes over a pointstore.Store:
//
//   - quadtree: hierarchical partition with bounding-square pruning (default)
//   - flat: exact brute-force scan, used as the reference oracle in tests
//
// # Index Interface
//
// All implementations satisfy Index:
//
//	type Index interface {
//	    Name() string
//	    Len() int
//	    Bounds() model.BoundingBox
//	    RangeVisit(c model.Centroid, r float64, fn func(model.Point) bool)
//	    RangeSearch(c model.Centroid, r float64) []model.Point
//	    Stats() Stats
//	}
//
// # Radius Semantics
//
// A point p matches a query (c, r) iff (p.X-c.X)² + (p.Y-c.Y)² <= r². A negative
// or NaN radius always yields an empty result; it is never an error. Both
// implementations share the predicate in Within so their results are
// bit-for-bit comparable.
//
// Indexes are immutable after construction and safe for concurrent readers.
package index
