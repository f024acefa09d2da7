package octree

// Box is the empty payload of box-level (coarse) intersections.
type Box = struct{}

// IntersectionData is a ray/volume intersection: the ray enters at Min and
// leaves at Max (ray-parameter units, so only physical distances when the
// direction is unit length). InNormal and OutNormal are the outward surface
// normals at the entry and exit points. Meta is the payload of the leaf that
// was hit.
type IntersectionData[M any] struct {
	Min, Max  Real
	InNormal  Vec3
	OutNormal Vec3
	Meta      M
}

// WithMeta maps the payload of d through f, leaving the geometry untouched.
func WithMeta[M, N any](d IntersectionData[M], f func(M) N) IntersectionData[N] {
	return IntersectionData[N]{
		Min:       d.Min,
		Max:       d.Max,
		InNormal:  d.InNormal,
		OutNormal: d.OutNormal,
		Meta:      f(d.Meta),
	}
}

// Attach replaces the payload of d with meta.
func Attach[M, N any](d IntersectionData[M], meta N) IntersectionData[N] {
	return WithMeta(d, func(M) N { return meta })
}

// Bounds drops the payload.
func (d IntersectionData[M]) Bounds() IntersectionData[Box] {
	return Attach(d, Box{})
}

// Ordered returns d with Min <= Max, swapping the normals along with the
// distances when needed.
func (d IntersectionData[M]) Ordered() IntersectionData[M] {
	if d.Min > d.Max {
		d.Min, d.Max = d.Max, d.Min
		d.InNormal, d.OutNormal = d.OutNormal, d.InNormal
	}
	return d
}

// Point is the entry point of the ray origin + t*direction.
func (d IntersectionData[M]) Point(origin, direction Vec3) Vec3 {
	return origin.Add(direction.Mul(d.Min))
}

// ExitPoint is the exit point of the ray origin + t*direction.
func (d IntersectionData[M]) ExitPoint(origin, direction Vec3) Vec3 {
	return origin.Add(direction.Mul(d.Max))
}

// Ahead reports whether the entry lies strictly in front of the origin.
func (d IntersectionData[M]) Ahead() bool { return d.Min > 0 }

// Length is the ray-parameter span between entry and exit.
func (d IntersectionData[M]) Length() Real { return d.Max - d.Min }

// Nearer returns whichever of a and b is entered first; a wins ties.
func Nearer[M any](a, b IntersectionData[M]) IntersectionData[M] {
	if b.Min < a.Min {
		return b
	}
	return a
}
