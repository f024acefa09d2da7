package octree

import (
	"math"

	"github.com/golang/geo/r3"
)

type Real = float64

// Vec3 is a position or a direction in tree space.
type Vec3 = r3.Vector

// V is shorthand for a Vec3 literal.
func V(x, y, z Real) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// MulElem returns the component-wise product of a and b.
func MulElem(a, b Vec3) Vec3 { return Vec3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z} }

// Axis returns component i (0=X, 1=Y, 2=Z) of v.
func Axis(v Vec3, i int) Real {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func minElem(a, b Vec3) Vec3 {
	return Vec3{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func isZero(v Vec3) bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }
