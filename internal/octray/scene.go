package octray

import (
	"github.com/lukaszgryglicki/octray/internal/octree"
)

// Nearest returns the closest leaf hit that is not entirely behind the
// ray origin. A leaf the origin sits in counts, with a negative Min.
func (s *Scene) Nearest(origin, direction Vec3) (Hit, bool) {
	it := s.Stream(origin, direction, octree.AheadOnly)
	hit, ok := octree.First[Material](it, ahead)
	instrumentRay("nearest", ok, hit.Min)
	return hit, ok
}

// ahead reports whether some of the hit lies in front of the ray origin.
func ahead(h Hit) bool { return h.Ordered().Max > 0 }

// Stream returns the iterator over every leaf hit, roughly nearest first.
// Only the first pull does any traversal work.
func (s *Scene) Stream(origin, direction Vec3, filter octree.Filter) *octree.RayIterator[Material] {
	return s.Tree.NewRayIterator(s.Center, s.HalfExtent, origin, direction, filter)
}

// StreamAll drains Stream and records the ray's metrics. It also returns
// how many candidate boxes were descended into.
func (s *Scene) StreamAll(origin, direction Vec3, filter octree.Filter) ([]Hit, int) {
	it := s.Stream(origin, direction, filter)
	hits := octree.Collect[Material](it)
	// Order inside one candidate is approximate.
	var nearest Hit
	for i, h := range hits {
		if i == 0 {
			nearest = h
			continue
		}
		nearest = octree.Nearer(nearest, h)
	}
	instrumentRay("stream", len(hits) > 0, nearest.Min)
	instrumentDescents(it.Descents())
	return hits, it.Descents()
}

// LightList returns the scene's lights without their names.
func (s *Scene) LightList() []Light {
	ls := make([]Light, len(s.Lights))
	for i, l := range s.Lights {
		ls[i] = l.Light
	}
	return ls
}

// Bounds is the scene's root cell as a box: the unit root cube scaled to
// the scene's extents and moved to its center.
func (s *Scene) Bounds() octree.AxisAlignedBox {
	b := octree.NewAxisAlignedBox(octree.RootPos, octree.RootExtents)
	b.Scale(octree.MulElem(s.HalfExtent, octree.V(2, 2, 2)))
	b.Translate(s.Center)
	return b
}

// Cell returns the center and half-extents of grid cell x, y, z at the
// scene depth.
func (s *Scene) Cell(x, y, z int) (Vec3, Vec3) {
	n := Real(int(1) << s.Depth)
	ext := s.HalfExtent.Mul(1 / n)
	pos := s.Bounds().Min().Add(octree.MulElem(ext, octree.V(Real(2*x+1), Real(2*y+1), Real(2*z+1))))
	return pos, ext
}
