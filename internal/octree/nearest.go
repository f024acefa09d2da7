package octree

import "sort"

// candidate is a child whose bounding box the ray hits.
type candidate struct {
	slot    slot
	pos     Vec3
	extents Vec3
	hit     IntersectionData[Box]
}

// candidates slab-tests every present child of node idx, keeps the boxes
// the filter accepts and returns them sorted by entry distance. Ties keep
// the canonical octant order.
func (t *Tree[M]) candidates(idx int32, pos, extents, origin, direction Vec3, filter Filter, buf []candidate) []candidate {
	half := extents.Mul(0.5)
	for i, s := range t.nodes[idx].children {
		if s.kind == slotEmpty {
			continue
		}
		cpos := pos.Add(MulElem(octantSigns[i], half))
		cext := half
		if s.kind == slotLeaf {
			if size := LeafSize(t.leaves[s.index]); !isZero(size) {
				cext = minElem(half, size)
			}
		}
		hit, ok := NewAxisAlignedBox(cpos, cext).Intersect(origin, direction)
		if !ok || !filter.accept(hit) {
			continue
		}
		buf = append(buf, candidate{slot: s, pos: cpos, extents: cext, hit: hit})
	}
	sort.SliceStable(buf, func(i, j int) bool { return buf[i].hit.Min < buf[j].hit.Min })
	return buf
}

// intersectNode returns the first leaf hit found while descending into the
// hit children in increasing entry distance. Sibling boxes are disjoint, so
// the ray spans of any two of them do not interleave and the first child
// that reports a hit holds the nearest one.
func (t *Tree[M]) intersectNode(idx int32, pos, extents, origin, direction Vec3) (IntersectionData[M], bool) {
	var buf [8]candidate
	for _, c := range t.candidates(idx, pos, extents, origin, direction, nil, buf[:0]) {
		if hit, ok := t.intersectSlot(c, origin, direction); ok {
			return hit, true
		}
	}
	return IntersectionData[M]{}, false
}

func (t *Tree[M]) intersectSlot(c candidate, origin, direction Vec3) (IntersectionData[M], bool) {
	switch c.slot.kind {
	case slotLeaf:
		return t.leaves[c.slot.index].IntersectInPlace(c.pos, c.extents, origin, direction)
	case slotNode:
		return t.intersectNode(c.slot.index, c.pos, c.extents, origin, direction)
	}
	return IntersectionData[M]{}, false
}

// IntersectInPlace returns the nearest leaf hit of the tree placed in the
// cell centered at pos with half-extents extents.
func (t *Tree[M]) IntersectInPlace(pos, extents, origin, direction Vec3) (IntersectionData[M], bool) {
	if len(t.nodes) == 0 {
		return IntersectionData[M]{}, false
	}
	t.debugValidate(pos, extents)
	return t.intersectNode(0, pos, extents, origin, direction)
}

// Intersect is IntersectInPlace on the unit cube centered at the origin.
func (t *Tree[M]) Intersect(origin, direction Vec3) (IntersectionData[M], bool) {
	return t.IntersectInPlace(RootPos, RootExtents, origin, direction)
}
