package octray

import (
	"math"

	"github.com/lukaszgryglicki/octray/internal/octree"
)

// Light is anything that illuminates a surface point.
type Light interface {
	Intensity() Real
	// Toward returns the unit direction from point to the light and the
	// distance to it. casts is false for lights that throw no shadows.
	Toward(point, normal Vec3) (dir Vec3, dist Real, casts bool)
}

// PointLight radiates from Position.
type PointLight struct {
	Position Vec3
	Power    Real
}

func (l PointLight) Intensity() Real { return l.Power }

func (l PointLight) Toward(point, _ Vec3) (Vec3, Real, bool) {
	v := l.Position.Sub(point)
	dist := v.Norm()
	if dist == 0 {
		return v, 0, false
	}
	return v.Mul(1 / dist), dist, true
}

// GlobalLight shines from infinitely far along -Direction; Direction points
// toward the light.
type GlobalLight struct {
	Direction Vec3
	Power     Real
}

func (l GlobalLight) Intensity() Real { return l.Power }

func (l GlobalLight) Toward(_, _ Vec3) (Vec3, Real, bool) {
	return l.Direction.Normalize(), math.Inf(1), true
}

// AmbientLight lights every surface equally and is never blocked.
type AmbientLight struct {
	Power Real
}

func (l AmbientLight) Intensity() Real { return l.Power }

func (l AmbientLight) Toward(_, normal Vec3) (Vec3, Real, bool) {
	return normal, 0, false
}

// Occluded reports whether an opaque leaf lies between point and light.
// The shadow ray streams hits and stops at the first blocker; boxes behind
// the point or past the light are never descended into.
func (s *Scene) Occluded(point, normal Vec3, light Light) bool {
	dir, dist, casts := light.Toward(point, normal)
	if !casts {
		return false
	}
	origin := point.Add(normal.Mul(ShadowBias))
	it := s.Tree.RayIterator(s.Center, s.HalfExtent, origin, dir, octree.And(octree.AheadOnly, octree.Within(dist)))
	_, blocked := octree.First(it, func(h Hit) bool {
		return h.Meta.Opaque && h.Max > ShadowBias && h.Min < dist
	})
	instrumentOcclusion(blocked)
	return blocked
}

// Visibility sums the light reaching the surface point of hit: ambient
// lights fully, the others by the cosine of their incidence when nothing
// blocks them.
func (s *Scene) Visibility(origin, direction Vec3, hit Hit, lights []Light) Real {
	point := hit.Point(origin, direction)
	normal := hit.InNormal
	total := 0.0
	for _, l := range lights {
		dir, _, casts := l.Toward(point, normal)
		if !casts {
			total += l.Intensity()
			continue
		}
		cos := normal.Dot(dir)
		if cos <= 0 || s.Occluded(point, normal, l) {
			continue
		}
		total += l.Intensity() * cos
	}
	return total
}
