// Package pointsearch indexes a static set of 2D points and answers radius
// and coverage queries over it.
//
// # Quick Start
//
//	ctx := context.Background()
//	idx, _ := pointsearch.FromPairs(ctx, [][2]float64{{0, 0}, {1, 0}, {0, 1}, {10, 10}})
//
//	// All points within 1.5 of any centroid, each reported once.
//	set, _ := idx.MatchAny(ctx, []model.Centroid{{X: 0, Y: 0}}, 1.5)
//	fmt.Println(set.IDs())
//
//	// Smallest radius covering 60% of the points.
//	res, _ := idx.FindRadiusForCoverage(ctx, []model.Centroid{{X: 0, Y: 0}}, 0.6)
//	fmt.Println(res.Radius)
//
// # Index Kinds
//
// The default index is a region quadtree (package index/quadtree) built once
// over the point store. Each leaf holds at most LeafCapacity points unless it
// sits at MaxDepth, which bounds recursion on duplicate coordinates. Queries
// descend only into nodes whose box intersects the bounding square of the
// query disk.
//
// KindFlat scans every point and serves as a reference.
//
// # Coverage Search
//
// FindRadiusForCoverage narrows a radius interval until it is shorter than the
// tolerance and returns its upper end, so the result is always an upper bound
// on the exact threshold. Two strategies are available: plain bisection
// (default) and quadratic interpolation of count against radius, which falls
// back to bisection every second probe.
//
// # Concurrency
//
// An Index is immutable after Build. Queries are lock-free and can run from
// any number of goroutines. Multi-centroid queries fan out internally; a
// shared resource.Controller caps the total number of in-flight centroid
// searches across indexes.
package pointsearch
