package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/pointsearch/index"
	"github.com/hupe1980/pointsearch/index/flat"
	"github.com/hupe1980/pointsearch/index/quadtree"
	"github.com/hupe1980/pointsearch/model"
	"github.com/hupe1980/pointsearch/resource"
	"github.com/hupe1980/pointsearch/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree(t testing.TB, pairs [][2]float64) *quadtree.Tree {
	t.Helper()
	tree, err := quadtree.New(testutil.Store(pairs), func(o *quadtree.Options) {
		o.LeafCapacity = 2
	})
	require.NoError(t, err)
	return tree
}

func fivePoints() [][2]float64 {
	return [][2]float64{{0, 0}, {1, 0}, {0, 1}, {10, 10}, {10, 11}}
}

func TestMatchAny(t *testing.T) {
	e := New(newTree(t, fivePoints()))
	ctx := context.Background()
	centroids := []model.Centroid{{X: 0, Y: 0}, {X: 10, Y: 10}}

	set, err := e.MatchAny(ctx, centroids, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []model.ID{0, 1, 2, 3, 4}, set.IDs())

	set, err = e.MatchAny(ctx, centroids, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []model.ID{0, 3}, set.IDs())

	n, err := e.CoverageCount(ctx, centroids, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMatchAnyEdgeCases(t *testing.T) {
	e := New(newTree(t, fivePoints()))
	ctx := context.Background()

	set, err := e.MatchAny(ctx, nil, 100)
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())

	set, err = e.MatchAny(ctx, []model.Centroid{{X: 0, Y: 0}}, -1)
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())

	// Duplicate centroids never double count.
	n, err := e.CoverageCount(ctx, []model.Centroid{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0.1, Y: 0}}, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var zero quadtree.Tree
	set, err = New(&zero).MatchAny(ctx, []model.Centroid{{}}, 1)
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())
}

func TestMatchAnyMatchesBruteForce(t *testing.T) {
	rng := testutil.NewRNG(21)
	pairs := rng.ClusteredPairs(3000, 5, 0, 200, 10)
	store := testutil.Store(pairs)
	centroids := rng.Centroids(40, 0, 200)

	tree := newTree(t, pairs)
	scan, err := flat.New(store)
	require.NoError(t, err)

	rc := resource.NewController(resource.Config{MaxConcurrentSearches: 2})

	for _, idx := range []index.Index{tree, scan} {
		for _, conc := range []int{1, 3, 8, 64} {
			e := New(idx, func(o *Options) {
				o.Concurrency = conc
				o.Controller = rc
			})

			for _, r := range []float64{0, 2.5, 9, 40} {
				t.Run(fmt.Sprintf("%s/C%d/R%g", idx.Name(), conc, r), func(t *testing.T) {
					set, err := e.MatchAny(context.Background(), centroids, r)
					require.NoError(t, err)

					want := testutil.BruteForce(store, centroids, r)
					if len(want) == 0 {
						assert.True(t, set.IsEmpty())
						return
					}
					assert.Equal(t, want, set.IDs())
				})
			}
		}
	}

	assert.Equal(t, int64(0), rc.InFlight(), "every slot is released")
	assert.Positive(t, rc.Completed())
}

func TestCoverageCountMonotonic(t *testing.T) {
	rng := testutil.NewRNG(8)
	e := New(newTree(t, rng.UniformPairs(2000, -10, 10)), func(o *Options) { o.Concurrency = 4 })
	counter := e.Counter(rng.Centroids(6, -10, 10))

	prev := -1
	for r := 0.0; r <= 30; r += 0.25 {
		n, err := counter(context.Background(), r)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, prev, "radius %g", r)
		prev = n
	}
	assert.Equal(t, 2000, prev)
}

func TestIdempotent(t *testing.T) {
	rng := testutil.NewRNG(5)
	e := New(newTree(t, rng.UniformPairs(1000, 0, 50)), func(o *Options) { o.Concurrency = 4 })
	centroids := rng.Centroids(10, 0, 50)

	first, err := e.MatchAny(context.Background(), centroids, 4)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := e.MatchAny(context.Background(), centroids, 4)
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}
}

func TestCancellation(t *testing.T) {
	rng := testutil.NewRNG(1)
	e := New(newTree(t, rng.UniformPairs(500, 0, 10)), func(o *Options) { o.Concurrency = 4 })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.MatchAny(ctx, rng.Centroids(8, 0, 10), 3)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = e.CoverageCount(ctx, nil, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrencyDefault(t *testing.T) {
	e := New(newTree(t, fivePoints()))
	assert.Positive(t, e.Concurrency())
	assert.Equal(t, "Quadtree", e.Index().Name())
}

func BenchmarkMatchAny(b *testing.B) {
	rng := testutil.NewRNG(42)
	tree := newTree(b, rng.UniformPairs(200_000, 0, 1000))
	centroids := rng.Centroids(64, 0, 1000)

	for _, conc := range []int{1, 4, 16} {
		e := New(tree, func(o *Options) { o.Concurrency = conc })
		b.Run(fmt.Sprintf("Concurrency%d", conc), func(b *testing.B) {
			for b.Loop() {
				if _, err := e.MatchAny(context.Background(), centroids, 25); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
