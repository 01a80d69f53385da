package testutil

import (
	"math"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/pointsearch/model"
	"github.com/hupe1980/pointsearch/pointstore"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Range returns a pseudo-random number in [minVal, maxVal).
func (r *RNG) Range(minVal, maxVal float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return minVal + r.rand.Float64()*(maxVal-minVal)
}

// UniformPairs generates num coordinates uniformly distributed in [minVal, maxVal)².
func (r *RNG) UniformPairs(num int, minVal, maxVal float64) [][2]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	pairs := make([][2]float64, num)
	for i := range pairs {
		pairs[i] = [2]float64{minVal + r.rand.Float64()*span, minVal + r.rand.Float64()*span}
	}
	return pairs
}

// ClusteredPairs generates num coordinates in gaussian blobs around
// clusters random centres in [minVal, maxVal)². Useful for exercising deep,
// unbalanced trees.
func (r *RNG) ClusteredPairs(num, clusters int, minVal, maxVal, spread float64) [][2]float64 {
	centres := r.UniformPairs(clusters, minVal, maxVal)

	r.mu.Lock()
	defer r.mu.Unlock()

	pairs := make([][2]float64, num)
	for i := range pairs {
		c := centres[i%clusters]
		pairs[i] = [2]float64{
			c[0] + r.rand.NormFloat64()*spread,
			c[1] + r.rand.NormFloat64()*spread,
		}
	}
	return pairs
}

// GridPairs generates a side×side lattice with unit spacing starting at the origin.
// Lattice points sit exactly on quadrant split lines, which stresses tie-breaking.
func GridPairs(side int) [][2]float64 {
	pairs := make([][2]float64, 0, side*side)
	for y := range side {
		for x := range side {
			pairs = append(pairs, [2]float64{float64(x), float64(y)})
		}
	}
	return pairs
}

// DuplicatePairs returns num copies of the same coordinate.
func DuplicatePairs(num int, x, y float64) [][2]float64 {
	pairs := make([][2]float64, num)
	for i := range pairs {
		pairs[i] = [2]float64{x, y}
	}
	return pairs
}

// Centroids generates num centroids uniformly distributed in [minVal, maxVal)².
func (r *RNG) Centroids(num int, minVal, maxVal float64) []model.Centroid {
	pairs := r.UniformPairs(num, minVal, maxVal)
	out := make([]model.Centroid, len(pairs))
	for i, p := range pairs {
		out[i] = model.Centroid{X: p[0], Y: p[1]}
	}
	return out
}

// Store builds a point store from pairs, panicking on error.
func Store(pairs [][2]float64) *pointstore.Store {
	return pointstore.MustNew(pairs)
}

// BruteForce returns the ascending IDs of every point within r of any centroid.
func BruteForce(store *pointstore.Store, centroids []model.Centroid, r float64) []model.ID {
	var out []model.ID
	for p := range store.All() {
		for _, c := range centroids {
			if c.Within(p, r) {
				out = append(out, p.ID)
				break
			}
		}
	}
	return out
}

// BruteForceCount returns len(BruteForce(store, centroids, r)).
func BruteForceCount(store *pointstore.Store, centroids []model.Centroid, r float64) int {
	return len(BruteForce(store, centroids, r))
}

// MinimalCoverageRadius returns the exact smallest radius at which at least k
// points are within reach of some centroid: the k-th smallest nearest-centroid
// distance. It returns NaN when k is out of range or there are no centroids.
func MinimalCoverageRadius(store *pointstore.Store, centroids []model.Centroid, k int) float64 {
	if k <= 0 || k > store.Len() || len(centroids) == 0 {
		return math.NaN()
	}
	nearest := make([]float64, 0, store.Len())
	for p := range store.All() {
		best := math.Inf(1)
		for _, c := range centroids {
			best = math.Min(best, c.Distance(p))
		}
		nearest = append(nearest, best)
	}
	slices.Sort(nearest)
	return nearest[k-1]
}

// IDs returns the IDs of points in ascending order.
func IDs(points []model.Point) []model.ID {
	out := make([]model.ID, len(points))
	for i, p := range points {
		out[i] = p.ID
	}
	slices.Sort(out)
	return out
}
