package octree

import "math"

// boxAxes are the outward normals of the +x, +y and +z faces. Face i of
// the six (-x, -y, -z, +x, +y, +z) lies on axis i%3.
var boxAxes = [3]Vec3{{X: 1}, {Y: 1}, {Z: 1}}

// AxisAlignedBox is a box given by its center and half-extents.
type AxisAlignedBox struct {
	Pos     Vec3
	Extents Vec3
}

func NewAxisAlignedBox(pos, extents Vec3) AxisAlignedBox {
	return AxisAlignedBox{Pos: pos, Extents: extents}
}

// Translate moves the box by v.
func (b *AxisAlignedBox) Translate(v Vec3) { b.Pos = b.Pos.Add(v) }

// Scale multiplies the half-extents component-wise by s.
func (b *AxisAlignedBox) Scale(s Vec3) { b.Extents = MulElem(b.Extents, s) }

func (b AxisAlignedBox) Min() Vec3 { return b.Pos.Sub(b.Extents) }
func (b AxisAlignedBox) Max() Vec3 { return b.Pos.Add(b.Extents) }

func (b AxisAlignedBox) Volume() Real {
	return 8 * b.Extents.X * b.Extents.Y * b.Extents.Z
}

// Contains reports whether p lies inside the box, faces included.
func (b AxisAlignedBox) Contains(p Vec3) bool { return b.containsLocal(p.Sub(b.Pos)) }

func (b AxisAlignedBox) containsLocal(p Vec3) bool {
	p = p.Abs()
	return p.X <= b.Extents.X && p.Y <= b.Extents.Y && p.Z <= b.Extents.Z
}

// Intersect runs the six-plane slab test. A face plane hit is kept only if
// the hit point, pulled toward the center by ContainmentShrink, lies inside
// the face on the two axes the face spans. At least two surviving hits are
// needed; the nearest gives Min and InNormal, the farthest gives Max and
// OutNormal (its face normal). Distances are not clamped: a box around or
// behind the origin yields negative values.
func (b AxisAlignedBox) Intersect(origin, direction Vec3) (IntersectionData[Box], bool) {
	local := origin.Sub(b.Pos)

	var near, far IntersectionData[Box]
	found := 0
	for i := 0; i < 6; i++ {
		axis := i % 3
		face := Plane{Normal: boxAxes[axis], Dist: Axis(b.Extents, axis)}
		if i < 3 {
			face = face.Invert()
		}
		h, ok := face.Intersect(local, direction)
		if !ok || !isFinite(h.Min) {
			continue
		}
		if !b.withinFace(local.Add(direction.Mul(h.Min)).Mul(ContainmentShrink), axis) {
			continue
		}
		if found == 0 {
			near, far = h, h
		} else {
			if h.Min < near.Min {
				near = h
			}
			if h.Min > far.Min {
				far = h
			}
		}
		found++
	}
	if found < 2 {
		return IntersectionData[Box]{}, false
	}
	return IntersectionData[Box]{
		Min:       near.Min,
		Max:       far.Min,
		InNormal:  near.InNormal,
		OutNormal: far.InNormal,
	}, true
}

// withinFace reports whether the local point p lies inside the box on every
// axis except the face's own.
func (b AxisAlignedBox) withinFace(p Vec3, axis int) bool {
	p = p.Abs()
	for a := 0; a < 3; a++ {
		if a != axis && Axis(p, a) > Axis(b.Extents, a) {
			return false
		}
	}
	return true
}

// overlapVolume is the volume shared by a and b.
func overlapVolume(a, b AxisAlignedBox) Real {
	aMin, aMax, bMin, bMax := a.Min(), a.Max(), b.Min(), b.Max()
	dx := math.Min(aMax.X, bMax.X) - math.Max(aMin.X, bMin.X)
	dy := math.Min(aMax.Y, bMax.Y) - math.Max(aMin.Y, bMin.Y)
	dz := math.Min(aMax.Z, bMax.Z) - math.Max(aMin.Z, bMin.Z)
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return 0
	}
	return dx * dy * dz
}
