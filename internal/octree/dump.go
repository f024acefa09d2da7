package octree

import (
	"fmt"
	"io"
	"strings"
)

// Dump prints the tree placed in pos/extents with one tab of indentation
// per level: every node with its subtree counts, every leaf with its cell.
func (t *Tree[M]) Dump(w io.Writer, pos, extents Vec3) error {
	if len(t.nodes) == 0 {
		_, err := fmt.Fprintln(w, "[OCTREE] <empty>")
		return err
	}
	total := t.Counts()
	if _, err := fmt.Fprintf(w, "[OCTREE] root: nodes=%d leaves=%d depth=%d\n", total.Nodes, total.Leaves, total.MaxDepth); err != nil {
		return err
	}
	memo := make(map[int32]Counts, len(t.nodes))
	t.count(0, memo)
	return t.dump(w, 0, nil, pos, extents, memo)
}

func (t *Tree[M]) count(idx int32, memo map[int32]Counts) Counts {
	c := Counts{Nodes: 1}
	for _, s := range t.nodes[idx].children {
		switch s.kind {
		case slotLeaf:
			c.Leaves++
			c.MaxDepth = max(c.MaxDepth, 1)
		case slotNode:
			sub := t.count(s.index, memo)
			c.Nodes += sub.Nodes
			c.Leaves += sub.Leaves
			c.MaxDepth = max(c.MaxDepth, sub.MaxDepth+1)
		}
	}
	memo[idx] = c
	return c
}

func (t *Tree[M]) dump(w io.Writer, idx int32, path []int, pos, extents Vec3, memo map[int32]Counts) error {
	ind := strings.Repeat("\t", len(path))
	c := memo[idx]
	if _, err := fmt.Fprintf(w, "%sNODE  path=%v nodes=%d leaves=%d | pos=(%.5g,%.5g,%.5g) ext=(%.5g,%.5g,%.5g)\n",
		ind, path, c.Nodes, c.Leaves,
		pos.X, pos.Y, pos.Z,
		extents.X, extents.Y, extents.Z,
	); err != nil {
		return err
	}
	for i, s := range t.nodes[idx].children {
		cpos, cext := ChildBounds(pos, extents, i)
		cpath := append(path[:len(path):len(path)], i)
		switch s.kind {
		case slotLeaf:
			if _, err := fmt.Fprintf(w, "%s\tLEAF  path=%v %v | pos=(%.5g,%.5g,%.5g) ext=(%.5g,%.5g,%.5g)\n",
				ind, cpath, t.leaves[s.index],
				cpos.X, cpos.Y, cpos.Z,
				cext.X, cext.Y, cext.Z,
			); err != nil {
				return err
			}
		case slotNode:
			if err := t.dump(w, s.index, cpath, cpos, cext, memo); err != nil {
				return err
			}
		}
	}
	return nil
}
