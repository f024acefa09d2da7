package octray

import (
	"log/slog"

	"github.com/lukaszgryglicki/octray/internal/octree"
)

var (
	Debug  = false // set to true for verbose debug output
	logger = slog.Default()
	// Compile time checks that every leaf kind and light satisfies its contract
	_ octree.Leaf[Material] = Voxel{}
	_ octree.Leaf[Material] = Ellipsoid{}
	_ octree.Sizer          = Ellipsoid{}
	_ Light                 = PointLight{}
	_ Light                 = GlobalLight{}
	_ Light                 = AmbientLight{}
)

// SetDebug switches debug output and tree invariant checks on or off.
func SetDebug(on bool) {
	Debug = on
	octree.Debug = on
}

// SetLogger replaces the logger of this package and of the octree core.
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	logger = l
	octree.SetLogger(l)
}

func debugLog(msg string, args ...any) {
	if !Debug {
		return
	}
	logger.Debug(msg, args...)
}
