package quadtree

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/hupe1980/pointsearch/index"
	"github.com/hupe1980/pointsearch/model"
	"github.com/hupe1980/pointsearch/pointstore"
	"github.com/hupe1980/pointsearch/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fivePoints() *pointstore.Store {
	return testutil.Store([][2]float64{{0, 0}, {1, 0}, {0, 1}, {10, 10}, {10, 11}})
}

func withOptions(capacity, depth int) func(o *Options) {
	return func(o *Options) {
		o.LeafCapacity = capacity
		o.MaxDepth = depth
	}
}

func TestQuadtree(t *testing.T) {
	for _, capacity := range []int{1, 2, 16} {
		t.Run(fmt.Sprintf("Capacity%d", capacity), func(t *testing.T) {
			tree, err := New(fivePoints(), withOptions(capacity, 20))
			require.NoError(t, err)

			got := tree.RangeSearch(model.Centroid{X: 0, Y: 0}, 1.5)
			assert.Equal(t, []model.ID{0, 1, 2}, testutil.IDs(got))

			got = tree.RangeSearch(model.Centroid{X: 10, Y: 10}, 1.5)
			assert.Equal(t, []model.ID{3, 4}, testutil.IDs(got))

			got = tree.RangeSearch(model.Centroid{X: 5, Y: 5}, 1)
			assert.Empty(t, got)
		})
	}
}

func TestEmptyInput(t *testing.T) {
	_, err := New(pointstore.MustNew(nil))
	assert.ErrorIs(t, err, index.ErrEmptyInput)
}

func TestInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		fn   func(o *Options)
		opt  string
	}{
		{"ZeroCapacity", withOptions(0, 4), "LeafCapacity"},
		{"NegativeDepth", withOptions(4, -1), "MaxDepth"},
		{"DepthTooLarge", withOptions(4, MaxDepthLimit+1), "MaxDepth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(fivePoints(), tt.fn)
			var invalid *index.ErrInvalidOption
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.opt, invalid.Name)
		})
	}
}

func TestZeroValueTree(t *testing.T) {
	var tree Tree

	assert.Empty(t, tree.RangeSearch(model.Centroid{}, math.Inf(1)))
	assert.Equal(t, 0, tree.Len())
	assert.True(t, tree.Bounds().IsEmpty())

	var nilTree *Tree
	assert.Empty(t, nilTree.RangeSearch(model.Centroid{}, 1))
	assert.Equal(t, "Quadtree", nilTree.Stats().Name)
}

func TestRadiusEdgeCases(t *testing.T) {
	tree, err := New(fivePoints(), withOptions(1, 20))
	require.NoError(t, err)

	assert.Empty(t, tree.RangeSearch(model.Centroid{X: 0, Y: 0}, -1), "negative radius matches nothing")
	assert.Empty(t, tree.RangeSearch(model.Centroid{X: 0, Y: 0}, math.NaN()), "NaN radius matches nothing")
	assert.Equal(t, []model.ID{0}, testutil.IDs(tree.RangeSearch(model.Centroid{X: 0, Y: 0}, 0)), "zero radius matches coincident points")
	assert.Equal(t, []model.ID{0, 1, 2}, testutil.IDs(tree.RangeSearch(model.Centroid{X: 0, Y: 0}, 1)), "boundary is inclusive")
	assert.Len(t, tree.RangeSearch(model.Centroid{X: -1e9, Y: 1e9}, math.Inf(1)), 5)
}

func TestCompleteness(t *testing.T) {
	rng := testutil.NewRNG(4711)

	datasets := map[string][][2]float64{
		"Uniform":   rng.UniformPairs(2000, -50, 50),
		"Clustered": rng.ClusteredPairs(2000, 7, -50, 50, 1.5),
		"Grid":      testutil.GridPairs(40),
		"Mixed":     append(testutil.DuplicatePairs(300, 3, 3), rng.UniformPairs(300, 0, 6)...),
	}

	configs := []Options{
		{LeafCapacity: 1, MaxDepth: 8},
		{LeafCapacity: 4, MaxDepth: 20},
		DefaultOptions,
		{LeafCapacity: 64, MaxDepth: 3},
		{LeafCapacity: 8, MaxDepth: 0},
	}

	for name, pairs := range datasets {
		store := testutil.Store(pairs)
		b := store.Bounds()

		for _, cfg := range configs {
			t.Run(fmt.Sprintf("%s/C%d-D%d", name, cfg.LeafCapacity, cfg.MaxDepth), func(t *testing.T) {
				tree, err := New(store, withOptions(cfg.LeafCapacity, cfg.MaxDepth))
				require.NoError(t, err)

				for i := 0; i < 40; i++ {
					c := model.Centroid{
						X: rng.Range(b.MinX-5, b.MaxX+5),
						Y: rng.Range(b.MinY-5, b.MaxY+5),
					}
					r := rng.Range(0, b.Diagonal()/4)
					if i%10 == 0 {
						r = 0
					}

					want := testutil.BruteForce(store, []model.Centroid{c}, r)
					got := testutil.IDs(tree.RangeSearch(c, r))
					if len(want) == 0 {
						assert.Empty(t, got, "centroid %v radius %g", c, r)
						continue
					}
					assert.Equal(t, want, got, "centroid %v radius %g", c, r)
				}
			})
		}
	}
}

func TestPartitionInvariant(t *testing.T) {
	rng := testutil.NewRNG(99)

	for _, cfg := range []Options{{LeafCapacity: 1, MaxDepth: 10}, {LeafCapacity: 5, MaxDepth: 20}, DefaultOptions} {
		pairs := append(rng.ClusteredPairs(1500, 4, 0, 1000, 20), testutil.DuplicatePairs(50, 500, 500)...)
		store := testutil.Store(pairs)

		tree, err := New(store, withOptions(cfg.LeafCapacity, cfg.MaxDepth))
		require.NoError(t, err)

		seen := make([]int, store.Len())
		total := 0
		tree.VisitLeaves(func(depth int, box model.BoundingBox, ids []model.ID) bool {
			assert.NotEmpty(t, ids, "materialised leaves are never empty")
			assert.True(t, len(ids) <= cfg.LeafCapacity || depth == cfg.MaxDepth,
				"leaf of %d points at depth %d", len(ids), depth)
			for _, id := range ids {
				p := store.At(id)
				assert.True(t, box.Contains(p.X, p.Y), "%v outside %v", p, box)
				seen[id]++
			}
			total += len(ids)
			return true
		})

		assert.Equal(t, store.Len(), total)
		for id, n := range seen {
			assert.Equal(t, 1, n, "point %d appears in %d leaves", id, n)
		}

		st := tree.Stats()
		assert.Equal(t, store.Len(), st.Points)
		assert.Equal(t, st.Nodes, st.Leaves+st.InternalNodes)
		assert.LessOrEqual(t, st.MaxDepthReached, cfg.MaxDepth)
	}
}

func TestDepthLimit(t *testing.T) {
	store := testutil.Store(testutil.DuplicatePairs(100, 2, 2))

	tree, err := New(store, withOptions(4, 6))
	require.NoError(t, err)

	st := tree.Stats()
	assert.Equal(t, 6, st.MaxDepthReached)
	assert.Equal(t, 1, st.Leaves)
	assert.Equal(t, 6, st.InternalNodes)
	assert.Equal(t, 1, st.OverfullLeaves)
	assert.Equal(t, 100, st.LargestLeaf)

	assert.Len(t, tree.RangeSearch(model.Centroid{X: 2, Y: 2}, 0), 100)
}

func TestSplitLineTieBreak(t *testing.T) {
	store := testutil.Store(testutil.GridPairs(9))

	tree, err := New(store, withOptions(1, 20))
	require.NoError(t, err)

	for p := range store.All() {
		got := tree.RangeSearch(model.Centroid{X: p.X, Y: p.Y}, 0)
		require.Len(t, got, 1, "lattice point %v", p)
		assert.Equal(t, p.ID, got[0].ID)
	}
}

func TestRangeVisitEarlyStop(t *testing.T) {
	tree, err := New(testutil.Store(testutil.GridPairs(10)), withOptions(2, 20))
	require.NoError(t, err)

	n := 0
	tree.RangeVisit(model.Centroid{X: 5, Y: 5}, 100, func(model.Point) bool {
		n++
		return n < 7
	})
	assert.Equal(t, 7, n)
}

func TestIdempotentQueries(t *testing.T) {
	rng := testutil.NewRNG(3)
	tree, err := New(testutil.Store(rng.UniformPairs(1000, 0, 10)), withOptions(4, 20))
	require.NoError(t, err)

	c := model.Centroid{X: 4, Y: 6}
	first := testutil.IDs(tree.RangeSearch(c, 2.5))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, testutil.IDs(tree.RangeSearch(c, 2.5)))
	}
}

func TestConcurrentReaders(t *testing.T) {
	rng := testutil.NewRNG(11)
	store := testutil.Store(rng.UniformPairs(5000, 0, 100))
	tree, err := New(store, withOptions(8, 20))
	require.NoError(t, err)

	centroids := rng.Centroids(32, 0, 100)
	want := make([][]model.ID, len(centroids))
	for i, c := range centroids {
		want[i] = testutil.BruteForce(store, []model.Centroid{c}, 7)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, c := range centroids {
				got := testutil.IDs(tree.RangeSearch(c, 7))
				if len(want[i]) == 0 {
					assert.Empty(t, got)
					continue
				}
				assert.Equal(t, want[i], got)
			}
		}()
	}
	wg.Wait()
}
