package octray

import (
	"math"

	"github.com/lukaszgryglicki/octray/internal/octree"
)

type (
	Vec3 = octree.Vec3
	Real = octree.Real
	Hit  = octree.IntersectionData[Material]
	Tree = octree.Tree[Material]
)

// Voxel fills its whole cell.
type Voxel struct {
	Material Material
}

func (v Voxel) IntersectInPlace(pos, extents, origin, direction Vec3) (Hit, bool) {
	hit, ok := octree.NewAxisAlignedBox(pos, extents).Intersect(origin, direction)
	if !ok {
		return Hit{}, false
	}
	return octree.Attach(hit, v.Material), true
}

func (v Voxel) String() string { return "voxel " + v.Material.String() }

// Ellipsoid is centered in its cell with semi-axes Radii. Zero Radii
// inscribe it in the cell.
type Ellipsoid struct {
	Radii    Vec3
	Material Material
}

// Size reports the semi-axes so the tree can cull with a tight box.
func (e Ellipsoid) Size() Vec3 { return e.Radii }

// IntersectInPlace solves |(O + tD - C) / R|^2 = 1 for t. Normals are the
// outward gradient at the entry and exit points.
func (e Ellipsoid) IntersectInPlace(pos, extents, origin, direction Vec3) (Hit, bool) {
	r := e.Radii
	if r.X == 0 && r.Y == 0 && r.Z == 0 {
		r = extents
	}
	co := divElem(origin.Sub(pos), r)
	d := divElem(direction, r)

	a := d.Dot(d)
	b := 2 * co.Dot(d)
	c := co.Dot(co) - 1
	disc := b*b - 4*a*c
	if a == 0 || disc < 0 {
		return Hit{}, false
	}
	s := math.Sqrt(disc)
	t0 := (-b - s) / (2 * a)
	t1 := (-b + s) / (2 * a)

	normal := func(t Real) Vec3 {
		p := origin.Add(direction.Mul(t)).Sub(pos)
		return divElem(divElem(p, r), r).Normalize()
	}
	return Hit{
		Min:       t0,
		Max:       t1,
		InNormal:  normal(t0),
		OutNormal: normal(t1),
		Meta:      e.Material,
	}, true
}

func (e Ellipsoid) String() string { return "ellipsoid " + e.Material.String() }

func divElem(a, b Vec3) Vec3 { return Vec3{X: a.X / b.X, Y: a.Y / b.Y, Z: a.Z / b.Z} }
