package quadtree

import (
	"github.com/hupe1980/pointsearch/index"
	"github.com/hupe1980/pointsearch/model"
	"github.com/hupe1980/pointsearch/pointstore"
)

// Compile-time check to ensure Tree satisfies the index interface.
var _ index.Index = (*Tree)(nil)

// MaxDepthLimit is the largest accepted MaxDepth.
const MaxDepthLimit = 64

// Options contains configuration options for the quadtree.
type Options struct {
	// LeafCapacity is the maximum number of points a leaf holds before it is split.
	// It must be >= 1.
	LeafCapacity int

	// MaxDepth bounds the tree height (root = depth 0). Leaves at MaxDepth are
	// never split, even when they exceed LeafCapacity.
	// It must be in [0, MaxDepthLimit].
	MaxDepth int
}

// DefaultOptions contains the default configuration options for the quadtree.
var DefaultOptions = Options{
	LeafCapacity: 16,
	MaxDepth:     20,
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.LeafCapacity < 1 {
		return &index.ErrInvalidOption{Name: "LeafCapacity", Value: o.LeafCapacity}
	}
	if o.MaxDepth < 0 || o.MaxDepth > MaxDepthLimit {
		return &index.ErrInvalidOption{Name: "MaxDepth", Value: o.MaxDepth}
	}
	return nil
}

type nodeKind uint8

const (
	leafNode nodeKind = iota
	internalNode
)

const noChild int32 = -1

// node is a tagged variant: leaves use start/end, internal nodes use children.
type node struct {
	box      model.BoundingBox
	kind     nodeKind
	depth    uint8
	start    uint32
	end      uint32
	children [4]int32
}

// Tree is an immutable quadtree over a point store.
//
// The zero value is an empty tree that answers every query with no results.
type Tree struct {
	store *pointstore.Store
	opts  Options
	nodes []node
	ids   []model.ID
	stats index.Stats
}

// New builds a quadtree over store.
// It returns index.ErrEmptyInput for an empty store.
func New(store *pointstore.Store, optFns ...func(o *Options)) (*Tree, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if store.Len() == 0 {
		return nil, index.ErrEmptyInput
	}

	b := newBuilder(store, opts)
	b.build(store.Bounds(), 0, uint32(store.Len()), 0)

	t := &Tree{
		store: store,
		opts:  opts,
		nodes: b.nodes,
		ids:   b.ids,
	}
	t.stats = t.computeStats()

	return t, nil
}

func (*Tree) Name() string { return "Quadtree" }

// Len returns the number of indexed points.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ids)
}

// Bounds returns the root bounding box.
func (t *Tree) Bounds() model.BoundingBox {
	if t == nil || len(t.nodes) == 0 {
		return model.EmptyBox()
	}
	return t.nodes[0].box
}

// Options returns the options the tree was built with.
func (t *Tree) Options() Options {
	return t.opts
}

// Store returns the point store backing the tree.
func (t *Tree) Store() *pointstore.Store {
	return t.store
}
