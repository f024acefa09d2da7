package octree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOctantIndex_CanonicalOrder(t *testing.T) {
	want := []Vec3{
		V(-1, -1, -1), V(1, -1, -1), V(-1, -1, 1), V(1, -1, 1),
		V(-1, 1, -1), V(1, 1, -1), V(-1, 1, 1), V(1, 1, 1),
	}
	for i, s := range want {
		assert.Equal(t, s, OctantSign(i), "octant %d", i)
		assert.Equal(t, i, OctantIndex(s.X > 0, s.Y > 0, s.Z > 0))
	}
}

func TestChildBounds(t *testing.T) {
	pos, ext := ChildBounds(V(1, 1, 1), V(2, 2, 2), 3) // +x -y +z
	assert.Equal(t, V(2, 0, 2), pos)
	assert.Equal(t, V(1, 1, 1), ext)
}

func TestBuild_Arena(t *testing.T) {
	tree := Build([8]Child[int]{
		LeafOf[int](cellLeaf{id: 0}),
		NodeOf(fullNode(10)),
		Empty[int](),
		NodeOf([8]Child[int]{
			NodeOf([8]Child[int]{7: LeafOf[int](cellLeaf{id: 99})}),
		}),
	})
	require.Len(t, tree.nodes, 4)
	require.Len(t, tree.leaves, 10)

	c := tree.Counts()
	assert.Equal(t, Counts{Nodes: 4, Leaves: 10, MaxDepth: 3}, c)

	assert.Equal(t, slot{kind: slotLeaf, index: 0}, tree.nodes[0].children[0])
	assert.Equal(t, slotNode, tree.nodes[0].children[1].kind)
	assert.Equal(t, slotEmpty, tree.nodes[0].children[2].kind)
	assert.Equal(t, slotEmpty, tree.nodes[0].children[4].kind)
}

func TestBuild_NilLeafIsEmpty(t *testing.T) {
	tree := Build([8]Child[int]{LeafOf[int](nil)})
	assert.Equal(t, 0, tree.Counts().Leaves)
	_, ok := tree.Intersect(V(-2, 0, 0), V(1, 0, 0))
	assert.False(t, ok)
}

func TestSubtree_Graft(t *testing.T) {
	sub := Build(fullNode(0))
	tree := Build([8]Child[int]{
		Subtree(sub),
		Subtree[int](nil),
		Subtree(&Tree[int]{}),
	})
	assert.Equal(t, Counts{Nodes: 2, Leaves: 8, MaxDepth: 2}, tree.Counts())
	// The grafted copy does not alias the source arena.
	assert.Len(t, sub.nodes, 1)
}

func TestCellPath(t *testing.T) {
	path, err := CellPath(2, 3, 0, 2)
	require.NoError(t, err)
	// Level 0: x=1 y=0 z=1 -> +x -y +z = 3; level 1: x=1 y=0 z=0 -> 1.
	assert.Equal(t, []int{3, 1}, path)

	path, err = CellPath(1, 0, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, path)

	_, err = CellPath(0, 0, 0, 0)
	assert.Error(t, err)
	_, err = CellPath(2, 4, 0, 0)
	assert.Error(t, err)
	_, err = CellPath(2, 0, -1, 0)
	assert.Error(t, err)
}

func TestBuilder(t *testing.T) {
	b := NewBuilder[int]()
	require.NoError(t, b.Set([]int{0}, cellLeaf{id: 1}))
	require.NoError(t, b.Set([]int{7, 7}, cellLeaf{id: 2}))
	require.NoError(t, b.SetCell(2, 0, 3, 3, cellLeaf{id: 3}))

	assert.Error(t, b.Set(nil, cellLeaf{}), "empty path")
	assert.Error(t, b.Set([]int{8}, cellLeaf{}), "index out of range")
	assert.Error(t, b.Set([]int{0}, cellLeaf{}), "occupied")
	assert.Error(t, b.Set([]int{0, 1}, cellLeaf{}), "through a leaf")
	assert.Error(t, b.Set([]int{7}, cellLeaf{}), "occupied by a node")
	assert.Error(t, b.Set([]int{1}, nil), "nil leaf")
	assert.Equal(t, 3, b.Len())

	tree := b.Build()
	assert.Equal(t, Counts{Nodes: 3, Leaves: 3, MaxDepth: 2}, tree.Counts())

	// Cell (0, 3, 3) at depth 2 spans x in [-0.5,-0.25], y and z in [0.25,0.5].
	hit, ok := tree.Intersect(V(-0.375, 0.375, -2), V(0, 0, 1))
	require.True(t, ok)
	assert.Equal(t, 3, hit.Meta)
	assert.InDelta(t, 2.25, hit.Min, 1e-12)
}

func TestWalk(t *testing.T) {
	tree := Build([8]Child[int]{
		1: LeafOf[int](cellLeaf{id: 1}),
		6: NodeOf([8]Child[int]{0: LeafOf[int](cellLeaf{id: 60})}),
	})
	var leaves []Visit[int]
	nodes := 0
	tree.Walk(RootPos, RootExtents, func(v Visit[int]) bool {
		if v.Leaf == nil {
			nodes++
			return true
		}
		leaves = append(leaves, v)
		return true
	})
	assert.Equal(t, 2, nodes)
	require.Len(t, leaves, 2)
	assert.Equal(t, []int{1}, leaves[0].Path)
	assert.Equal(t, V(0.25, -0.25, -0.25), leaves[0].Pos)
	assert.Equal(t, []int{6, 0}, leaves[1].Path)
	assert.Equal(t, V(-0.375, 0.125, 0.125), leaves[1].Pos)
	assert.Equal(t, V(0.125, 0.125, 0.125), leaves[1].Extents)

	// Pruning a node skips its children.
	count := 0
	tree.Walk(RootPos, RootExtents, func(v Visit[int]) bool {
		count++
		return v.Depth() == 0
	})
	assert.Equal(t, 3, count)
}
