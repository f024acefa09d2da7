package octree

import "math"

// cellLeaf fills its cell and tags hits with id.
type cellLeaf struct{ id int }

func (l cellLeaf) IntersectInPlace(pos, extents, origin, direction Vec3) (IntersectionData[int], bool) {
	hit, ok := NewAxisAlignedBox(pos, extents).Intersect(origin, direction)
	return Attach(hit, l.id), ok
}

// countingLeaf is a cellLeaf recording how often it is asked for a hit.
type countingLeaf struct {
	cellLeaf
	calls *int
}

func (l countingLeaf) IntersectInPlace(pos, extents, origin, direction Vec3) (IntersectionData[int], bool) {
	*l.calls++
	return l.cellLeaf.IntersectInPlace(pos, extents, origin, direction)
}

// sizedLeaf is a box of fixed half-extents centered in its cell.
type sizedLeaf struct {
	cellLeaf
	size Vec3
}

func (l sizedLeaf) Size() Vec3 { return l.size }

// missLeaf never reports a hit.
type missLeaf struct{}

func (missLeaf) IntersectInPlace(_, _, _, _ Vec3) (IntersectionData[int], bool) {
	return IntersectionData[int]{}, false
}

func almostEq(a, b Real) bool { return math.Abs(a-b) < 1e-9 }

func vecAlmostEq(a, b Vec3) bool {
	return almostEq(a.X, b.X) && almostEq(a.Y, b.Y) && almostEq(a.Z, b.Z)
}

// fullNode places cellLeaf{id: base+i} in every octant.
func fullNode(base int) [8]Child[int] {
	var c [8]Child[int]
	for i := range c {
		c[i] = LeafOf[int](cellLeaf{id: base + i})
	}
	return c
}

func ids(hits []IntersectionData[int]) []int {
	out := make([]int, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.Meta)
	}
	return out
}
