package octray

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszgryglicki/octray/internal/octree"
)

type countingVoxel struct {
	Voxel
	calls *int
}

func (v countingVoxel) IntersectInPlace(pos, extents, origin, direction Vec3) (Hit, bool) {
	*v.calls++
	return v.Voxel.IntersectInPlace(pos, extents, origin, direction)
}

func TestLights_Toward(t *testing.T) {
	dir, dist, casts := PointLight{Position: octree.V(0, 3, 4), Power: 1}.Toward(octree.V(0, 0, 0), octree.V(0, 1, 0))
	assert.True(t, casts)
	assert.InDelta(t, 5, dist, 1e-12)
	vecNear(t, octree.V(0, .6, .8), dir)

	dir, dist, casts = GlobalLight{Direction: octree.V(0, 0, -2)}.Toward(octree.V(1, 1, 1), octree.V(0, 0, -1))
	assert.True(t, casts)
	assert.True(t, math.IsInf(dist, 1))
	assert.Equal(t, octree.V(0, 0, -1), dir)

	_, _, casts = AmbientLight{Power: .3}.Toward(octree.V(0, 0, 0), octree.V(0, 0, 1))
	assert.False(t, casts)
}

func TestOccluded(t *testing.T) {
	glass := Material{Name: "glass"}
	s := gridScene(t, map[[3]int]octree.Leaf[Material]{
		{0, 0, 0}: Voxel{Material: red},
		{1, 0, 0}: Voxel{Material: glass},
	})
	below := octree.V(-.25, -.25, -1)
	up := octree.V(0, 0, 1)

	assert.True(t, s.Occluded(below, up, PointLight{Position: octree.V(-.25, -.25, 1), Power: 1}))
	assert.True(t, s.Occluded(below, up, GlobalLight{Direction: up, Power: 1}))
	// The light sits in front of the voxel.
	assert.False(t, s.Occluded(below, up, PointLight{Position: octree.V(-.25, -.25, -.75), Power: 1}))
	// Transparent leaves do not block.
	assert.False(t, s.Occluded(octree.V(.25, -.25, -1), up, GlobalLight{Direction: up, Power: 1}))
	// Nothing behind the point counts.
	assert.False(t, s.Occluded(octree.V(-.25, -.25, 1), up, GlobalLight{Direction: up, Power: 1}))
	assert.False(t, s.Occluded(below, up, AmbientLight{Power: 1}))
}

func TestOccluded_StopsAtFirstBlocker(t *testing.T) {
	near, far := 0, 0
	s := gridScene(t, map[[3]int]octree.Leaf[Material]{
		{0, 0, 0}: countingVoxel{Voxel{Material: red}, &near},
		{0, 0, 1}: countingVoxel{Voxel{Material: red}, &far},
	})
	blocked := testutil.ToFloat64(occlusionTotal.WithLabelValues("blocked"))

	assert.True(t, s.Occluded(octree.V(-.25, -.25, -1), octree.V(0, 0, 1), GlobalLight{Direction: octree.V(0, 0, 1), Power: 1}))
	assert.Equal(t, 1, near)
	assert.Equal(t, 0, far)
	assert.Equal(t, blocked+1, testutil.ToFloat64(occlusionTotal.WithLabelValues("blocked")))
}

func TestVisibility(t *testing.T) {
	s := gridScene(t, map[[3]int]octree.Leaf[Material]{
		{0, 0, 0}: Voxel{Material: red},
		{0, 0, 1}: Voxel{Material: red},
	})
	origin, dir := octree.V(-.25, -.25, -2), octree.V(0, 0, 1)
	hit, ok := s.Nearest(origin, dir)
	require.True(t, ok)
	vecNear(t, octree.V(0, 0, -1), hit.InNormal)

	lights := []Light{
		AmbientLight{Power: .2},
		GlobalLight{Direction: octree.V(0, 0, -1), Power: .5},
		// Behind the surface.
		GlobalLight{Direction: octree.V(0, 0, 1), Power: 4},
		PointLight{Position: octree.V(-.25, -.25, -1.5), Power: 1},
	}
	assert.InDelta(t, 1.7, s.Visibility(origin, dir, hit, lights), 1e-9)
}
