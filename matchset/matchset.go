// Package matchset provides the set of point IDs produced by a radius query.
package matchset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/pointsearch/model"
)

// MatchSet is a set of point IDs backed by a 32-bit Roaring bitmap.
//
// A MatchSet is not safe for concurrent mutation.
type MatchSet struct {
	rb *roaring.Bitmap
}

// New creates a new empty set.
func New() *MatchSet {
	return &MatchSet{rb: roaring.New()}
}

// Of creates a set holding ids.
func Of(ids ...model.ID) *MatchSet {
	return &MatchSet{rb: roaring.BitmapOf(ids...)}
}

// Merge returns the union of sets. Nil sets are skipped.
func Merge(sets ...*MatchSet) *MatchSet {
	bms := make([]*roaring.Bitmap, 0, len(sets))
	for _, s := range sets {
		if s != nil && s.rb != nil {
			bms = append(bms, s.rb)
		}
	}
	switch len(bms) {
	case 0:
		return New()
	case 1:
		return &MatchSet{rb: bms[0].Clone()}
	}
	return &MatchSet{rb: roaring.FastOr(bms...)}
}

// Add adds id to the set.
func (s *MatchSet) Add(id model.ID) {
	s.rb.Add(id)
}

// Contains reports whether id is in the set.
func (s *MatchSet) Contains(id model.ID) bool {
	if s == nil {
		return false
	}
	return s.rb.Contains(id)
}

// Len returns the number of IDs in the set.
func (s *MatchSet) Len() int {
	if s == nil {
		return 0
	}
	return int(s.rb.GetCardinality())
}

// IsEmpty reports whether the set has no IDs.
func (s *MatchSet) IsEmpty() bool {
	return s == nil || s.rb.IsEmpty()
}

// IDs returns the IDs in ascending order.
func (s *MatchSet) IDs() []model.ID {
	if s == nil {
		return nil
	}
	return s.rb.ToArray()
}

// All returns an iterator over the IDs in ascending order.
func (s *MatchSet) All() iter.Seq[model.ID] {
	return func(yield func(model.ID) bool) {
		if s == nil {
			return
		}
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Union adds every ID of other to s.
func (s *MatchSet) Union(other *MatchSet) {
	if other == nil {
		return
	}
	s.rb.Or(other.rb)
}

// Equal reports whether both sets hold the same IDs.
func (s *MatchSet) Equal(other *MatchSet) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return s.IsEmpty() && other.IsEmpty()
	}
	return s.rb.Equals(other.rb)
}

// Clone returns a deep copy of the set.
func (s *MatchSet) Clone() *MatchSet {
	if s == nil {
		return New()
	}
	return &MatchSet{rb: s.rb.Clone()}
}

// SizeInBytes returns the in-memory size of the underlying bitmap.
func (s *MatchSet) SizeInBytes() uint64 {
	if s == nil {
		return 0
	}
	return s.rb.GetSizeInBytes()
}
