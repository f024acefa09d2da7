package octree

import "iter"

// RayIterator lazily streams leaf hits. Its state is the queue of candidate
// boxes not yet descended into (sorted by entry distance) and the iterator
// of the candidate currently being drained. Hits of one candidate are all
// produced before anything from the next one, so ordering is exact between
// siblings and approximate inside a candidate. Candidates that are never
// reached cost nothing beyond their box test, so a caller can stop pulling
// at any point.
type RayIterator[M any] struct {
	tree      *Tree[M]
	origin    Vec3
	direction Vec3
	filter    Filter
	pending   []candidate
	active    Iterator[M]
	descents  *int
}

// RayIterator streams the tree's leaf hits for the cell pos/extents,
// skipping every subtree whose box the filter rejects.
func (t *Tree[M]) RayIterator(pos, extents, origin, direction Vec3, filter Filter) Iterator[M] {
	return t.NewRayIterator(pos, extents, origin, direction, filter)
}

// NewRayIterator is RayIterator returning the concrete type.
func (t *Tree[M]) NewRayIterator(pos, extents, origin, direction Vec3, filter Filter) *RayIterator[M] {
	return t.rootIterator(pos, extents, origin, direction, filter, new(int))
}

func (t *Tree[M]) rootIterator(pos, extents, origin, direction Vec3, filter Filter, descents *int) *RayIterator[M] {
	if len(t.nodes) == 0 {
		return &RayIterator[M]{tree: t, descents: descents}
	}
	t.debugValidate(pos, extents)
	return t.newRayIterator(0, pos, extents, origin, direction, filter, descents)
}

func (t *Tree[M]) newRayIterator(idx int32, pos, extents, origin, direction Vec3, filter Filter, descents *int) *RayIterator[M] {
	return &RayIterator[M]{
		tree:      t,
		origin:    origin,
		direction: direction,
		filter:    filter,
		pending:   t.candidates(idx, pos, extents, origin, direction, filter, make([]candidate, 0, 8)),
		descents:  descents,
	}
}

// Next returns the next leaf hit.
func (it *RayIterator[M]) Next() (IntersectionData[M], bool) {
	for {
		if it.active != nil {
			if hit, ok := it.active.Next(); ok {
				return hit, true
			}
			it.active = nil
		}
		if len(it.pending) == 0 {
			return IntersectionData[M]{}, false
		}
		c := it.pending[0]
		it.pending = it.pending[1:]
		it.active = it.descend(c)
	}
}

// Pending is the number of sibling candidates not yet descended into.
func (it *RayIterator[M]) Pending() int { return len(it.pending) }

// Descents is the number of candidates descended into so far, counted
// across the whole traversal rooted at the iterator the tree returned,
// nested trees included. Other Iterable leaves count as one descent each.
func (it *RayIterator[M]) Descents() int { return *it.descents }

func (it *RayIterator[M]) descend(c candidate) Iterator[M] {
	*it.descents++
	switch c.slot.kind {
	case slotNode:
		return it.tree.newRayIterator(c.slot.index, c.pos, c.extents, it.origin, it.direction, it.filter, it.descents)
	case slotLeaf:
		l := it.tree.leaves[c.slot.index]
		if sub, ok := l.(*Tree[M]); ok {
			return sub.rootIterator(c.pos, c.extents, it.origin, it.direction, it.filter, it.descents)
		}
		if sub, ok := l.(Iterable[M]); ok {
			return sub.RayIterator(c.pos, c.extents, it.origin, it.direction, it.filter)
		}
		return &leafIterator[M]{leaf: l, pos: c.pos, extents: c.extents, origin: it.origin, direction: it.direction}
	}
	return nil
}

// leafIterator yields a plain leaf's hit, computed on the first pull.
type leafIterator[M any] struct {
	leaf      Leaf[M]
	pos       Vec3
	extents   Vec3
	origin    Vec3
	direction Vec3
	done      bool
}

func (it *leafIterator[M]) Next() (IntersectionData[M], bool) {
	if it.done {
		return IntersectionData[M]{}, false
	}
	it.done = true
	return it.leaf.IntersectInPlace(it.pos, it.extents, it.origin, it.direction)
}

// All adapts it to range-over-func. Breaking out of the loop is the
// cancellation: nothing past the last yielded hit is explored.
func All[M any](it Iterator[M]) iter.Seq[IntersectionData[M]] {
	return func(yield func(IntersectionData[M]) bool) {
		for {
			hit, ok := it.Next()
			if !ok || !yield(hit) {
				return
			}
		}
	}
}

// Collect drains it.
func Collect[M any](it Iterator[M]) []IntersectionData[M] {
	var out []IntersectionData[M]
	for hit := range All(it) {
		out = append(out, hit)
	}
	return out
}

// First pulls from it until pred accepts a hit and stops there.
func First[M any](it Iterator[M], pred func(IntersectionData[M]) bool) (IntersectionData[M], bool) {
	for hit := range All(it) {
		if pred == nil || pred(hit) {
			return hit, true
		}
	}
	return IntersectionData[M]{}, false
}
