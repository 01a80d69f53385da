package flat

import (
	"testing"

	"github.com/hupe1980/pointsearch/index"
	"github.com/hupe1980/pointsearch/model"
	"github.com/hupe1980/pointsearch/pointstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fivePoints() *pointstore.Store {
	return pointstore.MustNew([][2]float64{{0, 0}, {1, 0}, {0, 1}, {10, 10}, {10, 11}})
}

func TestFlat(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		_, err := New(pointstore.MustNew(nil))
		assert.ErrorIs(t, err, index.ErrEmptyInput)
	})

	t.Run("RangeSearch", func(t *testing.T) {
		f, err := New(fivePoints())
		require.NoError(t, err)

		got := f.RangeSearch(model.Centroid{X: 0, Y: 0}, 1.5)
		require.Len(t, got, 3)
		assert.Equal(t, model.ID(0), got[0].ID)
		assert.Equal(t, model.ID(1), got[1].ID)
		assert.Equal(t, model.ID(2), got[2].ID)
	})

	t.Run("NegativeRadius", func(t *testing.T) {
		f, err := New(fivePoints())
		require.NoError(t, err)

		assert.Empty(t, f.RangeSearch(model.Centroid{X: 0, Y: 0}, -1))
	})

	t.Run("EarlyStop", func(t *testing.T) {
		f, err := New(fivePoints())
		require.NoError(t, err)

		n := 0
		f.RangeVisit(model.Centroid{X: 5, Y: 5}, 100, func(model.Point) bool {
			n++
			return n < 2
		})
		assert.Equal(t, 2, n)
	})

	t.Run("Stats", func(t *testing.T) {
		f, err := New(fivePoints())
		require.NoError(t, err)

		st := f.Stats()
		assert.Equal(t, "Flat", st.Name)
		assert.Equal(t, 5, st.Points)
		assert.Equal(t, 1, st.Leaves)
	})
}
