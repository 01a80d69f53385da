// Package testutil provides testing utilities for pointsearch.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random point sets and centroids and for
// computing exact radius matches by brute force.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pairs := rng.UniformPairs(1000, 0, 100)        // uniform in [0, 100)²
//	pairs = rng.ClusteredPairs(1000, 5, 0, 100, 2)  // gaussian blobs
//	centroids := rng.Centroids(3, 0, 100)
//
// # Exact Matches (Ground Truth)
//
//	ids := testutil.BruteForce(store, centroids, radius)
package testutil
