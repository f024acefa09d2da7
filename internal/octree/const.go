package octree

const (
	// ContainmentShrink scales a candidate plane hit toward the box center
	// before the containment test, so rays running along a face shared by
	// two octants still hit both boxes.
	ContainmentShrink = 0.999999
	// tilingTolerance is relative to the parent volume.
	tilingTolerance = 1e-9
	// leafSizeTolerance is relative to the cell half-extent.
	leafSizeTolerance = 1e-9
)

// Root placement used by Tree.Intersect: a unit cube centered at the origin.
var (
	RootPos     = V(0, 0, 0)
	RootExtents = V(0.5, 0.5, 0.5)
)

// octantSigns is the canonical child order: index bit 0 is the X sign,
// bit 1 the Z sign, bit 2 the Y sign. It never changes.
var octantSigns = [8]Vec3{
	{X: -1, Y: -1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: 1},

	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: 1},
}

// OctantIndex returns the canonical child index of the octant on the
// positive (true) or negative (false) side of each axis.
func OctantIndex(posX, posY, posZ bool) int {
	i := 0
	if posX {
		i |= 1
	}
	if posZ {
		i |= 2
	}
	if posY {
		i |= 4
	}
	return i
}

// OctantSign returns the (±1, ±1, ±1) corner of octant i.
func OctantSign(i int) Vec3 { return octantSigns[i&7] }

// ChildBounds returns the center and half-extents of octant i of the cell
// at pos with half-extents extents.
func ChildBounds(pos, extents Vec3, i int) (Vec3, Vec3) {
	half := extents.Mul(0.5)
	return pos.Add(MulElem(octantSigns[i&7], half)), half
}
