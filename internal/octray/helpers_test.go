package octray

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lukaszgryglicki/octray/internal/octree"
)

const sceneYAML = `
depth: 1
materials:
  red:
    color: {r: 1, g: 0, b: 0}
  glass:
    color: {r: 0.5, g: 0.5, b: 1}
    opaque: false
voxels:
  - cell: [0, 0, 0]
    material: red
  - cell: [0, 0, 1]
    material: glass
ellipsoids:
  - cell: [1, 1, 1]
    material: red
lights:
  - name: sun
    kind: global
    direction: [0, 0, -1]
    intensity: 0.5
  - kind: ambient
    intensity: 0.2
rays:
  - name: up
    origin: [-0.25, -0.25, -2]
    direction: [0, 0, 2]
  - name: away
    origin: [-0.25, -0.25, -2]
    direction: [0, 0, -1]
`

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// gridScene builds a depth 1 scene in the unit cube with leaves in the
// given cells.
func gridScene(t *testing.T, leaves map[[3]int]octree.Leaf[Material]) *Scene {
	t.Helper()
	b := octree.NewBuilder[Material]()
	for c, l := range leaves {
		require.NoError(t, b.SetCell(1, c[0], c[1], c[2], l))
	}
	return &Scene{
		Tree:       b.Build(),
		Center:     octree.V(0, 0, 0),
		HalfExtent: octree.V(.5, .5, .5),
		Depth:      1,
	}
}
