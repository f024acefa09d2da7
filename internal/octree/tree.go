package octree

import (
	"sync"

	"github.com/pkg/errors"
)

type slotKind uint8

const (
	slotEmpty slotKind = iota
	slotLeaf
	slotNode
)

// slot references a child: a leaf in Tree.leaves or a node in Tree.nodes.
type slot struct {
	kind  slotKind
	index int32
}

type node struct {
	children [8]slot
}

// Tree is an immutable octree. Nodes live in one contiguous arena (root at
// index 0) and refer to their children by index. Queries never mutate the
// tree, so any number of goroutines may query it at once.
type Tree[M any] struct {
	nodes  []node
	leaves []Leaf[M]

	validated sync.Once
}

// Child is one entry of the nested literal a tree is built from: empty, a
// leaf, a nested node or an already built subtree.
type Child[M any] struct {
	leaf     Leaf[M]
	children *[8]Child[M]
	subtree  *Tree[M]
}

// Empty is an unoccupied octant.
func Empty[M any]() Child[M] { return Child[M]{} }

// LeafOf places l in an octant. A nil leaf is an empty octant.
func LeafOf[M any](l Leaf[M]) Child[M] { return Child[M]{leaf: l} }

// NodeOf subdivides an octant into eight more.
func NodeOf[M any](children [8]Child[M]) Child[M] { return Child[M]{children: &children} }

// Subtree grafts an already built tree into an octant. The result answers
// queries exactly like the subtree would on its own at that placement.
func Subtree[M any](t *Tree[M]) Child[M] { return Child[M]{subtree: t} }

// IsEmpty reports whether c occupies nothing.
func (c Child[M]) IsEmpty() bool {
	return c.leaf == nil && c.children == nil && (c.subtree == nil || len(c.subtree.nodes) == 0)
}

// Build compiles the nested literal rooted at children into a tree.
func Build[M any](children [8]Child[M]) *Tree[M] {
	t := &Tree[M]{nodes: make([]node, 1, 1+countNodes(children))}
	t.fill(0, children)
	DebugLog("octree built", "nodes", len(t.nodes), "leaves", len(t.leaves))
	return t
}

func countNodes[M any](children [8]Child[M]) int {
	n := 0
	for _, c := range children {
		switch {
		case c.subtree != nil:
			n += len(c.subtree.nodes)
		case c.children != nil:
			n += 1 + countNodes(*c.children)
		}
	}
	return n
}

func (t *Tree[M]) fill(idx int, children [8]Child[M]) {
	for i, c := range children {
		s := t.add(c)
		t.nodes[idx].children[i] = s
	}
}

func (t *Tree[M]) add(c Child[M]) slot {
	switch {
	case c.subtree != nil:
		if len(c.subtree.nodes) == 0 {
			return slot{}
		}
		return t.graft(c.subtree, 0)
	case c.children != nil:
		idx := len(t.nodes)
		t.nodes = append(t.nodes, node{})
		t.fill(idx, *c.children)
		return slot{kind: slotNode, index: int32(idx)}
	case c.leaf != nil:
		t.leaves = append(t.leaves, c.leaf)
		return slot{kind: slotLeaf, index: int32(len(t.leaves) - 1)}
	}
	return slot{}
}

// graft copies node at of src (and everything below it) into t's arena.
// Leaves are shared, not copied.
func (t *Tree[M]) graft(src *Tree[M], at int32) slot {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{})
	for i, s := range src.nodes[at].children {
		var ns slot
		switch s.kind {
		case slotLeaf:
			t.leaves = append(t.leaves, src.leaves[s.index])
			ns = slot{kind: slotLeaf, index: int32(len(t.leaves) - 1)}
		case slotNode:
			ns = t.graft(src, s.index)
		}
		t.nodes[idx].children[i] = ns
	}
	return slot{kind: slotNode, index: int32(idx)}
}

// Builder assembles a tree from leaves addressed by octant path or by cell
// coordinates. It is only a construction aid: the built tree is immutable.
type Builder[M any] struct {
	root [8]Child[M]
	n    int
}

func NewBuilder[M any]() *Builder[M] { return &Builder[M]{} }

// Set places leaf at the octant reached by following path from the root,
// creating intermediate nodes. It fails on an out of range index, on a path
// running through an existing leaf and on an already occupied target.
func (b *Builder[M]) Set(path []int, leaf Leaf[M]) error {
	if len(path) == 0 {
		return errors.New("empty octant path")
	}
	if leaf == nil {
		return errors.Errorf("nil leaf at path %v", path)
	}
	level := &b.root
	for d, i := range path {
		if i < 0 || i > 7 {
			return errors.Errorf("octant index %d out of range at depth %d of path %v", i, d, path)
		}
		c := &level[i]
		if d == len(path)-1 {
			if !c.IsEmpty() {
				return errors.Errorf("octant path %v is already occupied", path)
			}
			*c = LeafOf(leaf)
			b.n++
			return nil
		}
		if c.leaf != nil || c.subtree != nil {
			return errors.Errorf("octant path %v runs through a leaf at depth %d", path, d)
		}
		if c.children == nil {
			c.children = &[8]Child[M]{}
		}
		level = c.children
	}
	return nil
}

// SetCell places leaf in cell (x, y, z) of the regular grid of 2^depth
// cells per axis; x, y and z grow toward the positive side of their axis.
func (b *Builder[M]) SetCell(depth, x, y, z int, leaf Leaf[M]) error {
	path, err := CellPath(depth, x, y, z)
	if err != nil {
		return err
	}
	return b.Set(path, leaf)
}

// Len is the number of leaves placed so far.
func (b *Builder[M]) Len() int { return b.n }

// Build compiles everything placed so far.
func (b *Builder[M]) Build() *Tree[M] { return Build(b.root) }

// CellPath converts grid cell coordinates at the given depth into the
// octant path from the root.
func CellPath(depth, x, y, z int) ([]int, error) {
	if depth < 1 {
		return nil, errors.Errorf("depth must be >= 1, got %d", depth)
	}
	n := 1 << depth
	if x < 0 || y < 0 || z < 0 || x >= n || y >= n || z >= n {
		return nil, errors.Errorf("cell (%d, %d, %d) outside a %d^3 grid", x, y, z, n)
	}
	path := make([]int, depth)
	for l := 0; l < depth; l++ {
		shift := depth - 1 - l
		path[l] = OctantIndex((x>>shift)&1 == 1, (y>>shift)&1 == 1, (z>>shift)&1 == 1)
	}
	return path, nil
}

// Visit describes one node or leaf reached by Walk.
type Visit[M any] struct {
	Path    []int
	Pos     Vec3
	Extents Vec3
	Leaf    Leaf[M] // nil for nodes
}

// Depth is the number of octant steps from the root.
func (v Visit[M]) Depth() int { return len(v.Path) }

// Walk visits every node (pre-order, canonical child order) and leaf placed
// in the cell pos/extents. Returning false from fn on a node skips its
// children; returning false on a leaf is ignored.
func (t *Tree[M]) Walk(pos, extents Vec3, fn func(Visit[M]) bool) {
	if len(t.nodes) == 0 {
		return
	}
	t.walk(0, nil, pos, extents, fn)
}

func (t *Tree[M]) walk(idx int32, path []int, pos, extents Vec3, fn func(Visit[M]) bool) {
	if !fn(Visit[M]{Path: path, Pos: pos, Extents: extents}) {
		return
	}
	for i, s := range t.nodes[idx].children {
		if s.kind == slotEmpty {
			continue
		}
		cpos, cext := ChildBounds(pos, extents, i)
		cpath := append(path[:len(path):len(path)], i)
		switch s.kind {
		case slotLeaf:
			fn(Visit[M]{Path: cpath, Pos: cpos, Extents: cext, Leaf: t.leaves[s.index]})
		case slotNode:
			t.walk(s.index, cpath, cpos, cext, fn)
		}
	}
}

// Counts summarizes a tree's shape.
type Counts struct {
	Nodes    int
	Leaves   int
	MaxDepth int // deepest leaf, in octant steps from the root
}

func (t *Tree[M]) Counts() Counts {
	c := Counts{}
	t.Walk(RootPos, RootExtents, func(v Visit[M]) bool {
		if v.Leaf == nil {
			c.Nodes++
			return true
		}
		c.Leaves++
		if v.Depth() > c.MaxDepth {
			c.MaxDepth = v.Depth()
		}
		return true
	})
	return c
}

// Size is zero: a tree takes its extent from the caller.
func (t *Tree[M]) Size() Vec3 { return Vec3{} }
