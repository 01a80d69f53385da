package quadtree

import (
	"fmt"
	"testing"

	"github.com/hupe1980/pointsearch/index"
	"github.com/hupe1980/pointsearch/index/flat"
	"github.com/hupe1980/pointsearch/model"
	"github.com/hupe1980/pointsearch/testutil"
)

func BenchmarkBuild(b *testing.B) {
	for _, n := range []int{10_000, 100_000} {
		store := testutil.Store(testutil.NewRNG(42).UniformPairs(n, 0, 1000))

		b.Run(fmt.Sprintf("N%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := New(store); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRangeSearch(b *testing.B) {
	rng := testutil.NewRNG(42)
	store := testutil.Store(rng.UniformPairs(100_000, 0, 1000))
	centroids := rng.Centroids(256, 0, 1000)

	tree, err := New(store)
	if err != nil {
		b.Fatal(err)
	}
	scan, err := flat.New(store)
	if err != nil {
		b.Fatal(err)
	}

	for _, idx := range []index.Index{tree, scan} {
		for _, r := range []float64{1, 10, 50} {
			b.Run(fmt.Sprintf("%s/R%g", idx.Name(), r), func(b *testing.B) {
				i := 0
				for b.Loop() {
					n := 0
					idx.RangeVisit(centroids[i%len(centroids)], r, func(model.Point) bool {
						n++
						return true
					})
					i++
				}
			})
		}
	}
}
