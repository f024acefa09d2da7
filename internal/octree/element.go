package octree

// Leaf is the contract a caller-defined leaf payload must satisfy: find the
// ray's intersection with the leaf placed in the cell centered at pos with
// half-extents extents.
type Leaf[M any] interface {
	IntersectInPlace(pos, extents, origin, direction Vec3) (IntersectionData[M], bool)
}

// Sizer is implemented by leaves that occupy less than their cell. Size
// returns the leaf's half-extents; zero means the leaf fills its cell.
// Composite elements (trees) report zero and take their extent from the
// caller.
type Sizer interface {
	Size() Vec3
}

// Iterable is implemented by elements that stream their own hits. Leaves
// that are not Iterable are streamed as a single IntersectInPlace call.
type Iterable[M any] interface {
	RayIterator(pos, extents, origin, direction Vec3, filter Filter) Iterator[M]
}

// Element is the full capability set: nearest hit, leaf size and a lazy
// ray iterator. *Tree implements it, so a tree can sit in another tree's
// leaf slot.
type Element[M any] interface {
	Leaf[M]
	Sizer
	Iterable[M]
}

// Iterator yields intersections one at a time until ok is false.
type Iterator[M any] interface {
	Next() (IntersectionData[M], bool)
}

// Filter decides, from a coarse box-level intersection, whether the subtree
// behind that box is worth visiting. A nil Filter accepts everything.
type Filter func(IntersectionData[Box]) bool

func (f Filter) accept(d IntersectionData[Box]) bool { return f == nil || f(d) }

// AcceptAll keeps every candidate box.
func AcceptAll(IntersectionData[Box]) bool { return true }

// AheadOnly drops boxes lying entirely behind the ray origin.
func AheadOnly(d IntersectionData[Box]) bool { return d.Max > 0 }

// Within drops boxes entered at or beyond maxDist.
func Within(maxDist Real) Filter {
	return func(d IntersectionData[Box]) bool { return d.Min < maxDist }
}

// And accepts a box only when every non-nil filter accepts it.
func And(filters ...Filter) Filter {
	return func(d IntersectionData[Box]) bool {
		for _, f := range filters {
			if !f.accept(d) {
				return false
			}
		}
		return true
	}
}

// LeafSize returns the half-extents a leaf declares through Sizer, or zero.
func LeafSize[M any](l Leaf[M]) Vec3 {
	if s, ok := l.(Sizer); ok {
		return s.Size()
	}
	return Vec3{}
}
