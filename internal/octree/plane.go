package octree

// Plane is the set of points p with Normal·p == Dist, i.e. the plane at
// signed distance Dist from the coordinate origin along Normal.
type Plane struct {
	Normal Vec3
	Dist   Real
}

// Invert flips the plane normal.
func (p Plane) Invert() Plane {
	return Plane{Normal: Vec3{}.Sub(p.Normal), Dist: p.Dist}
}

// Intersect returns the ray parameter at which origin + t*direction crosses
// the plane as the degenerate interval (t, t). A ray exactly parallel to the
// plane (Normal·direction == 0) misses; there is no epsilon here.
func (p Plane) Intersect(origin, direction Vec3) (IntersectionData[Box], bool) {
	denom := p.Normal.Dot(direction)
	if denom == 0 {
		return IntersectionData[Box]{}, false
	}
	t := p.Normal.Dot(p.Normal.Mul(p.Dist).Sub(origin)) / denom
	return IntersectionData[Box]{
		Min:       t,
		Max:       t,
		InNormal:  p.Normal,
		OutNormal: Vec3{}.Sub(p.Normal),
	}, true
}
