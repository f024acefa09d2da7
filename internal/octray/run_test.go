package octray

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), writeScene(t, sceneYAML), &out))
	got := out.String()

	for _, want := range []string{
		"depth=1",
		"leaves=3 lights=2 rays=2",
		"[RAY] up origin=(-0.2500,-0.2500,-2.0000) dir=(0.0000,0.0000,1.0000)",
		"\tnearest: red(1,0,0) t=[1.5000,2.0000]",
		"\t\tentry=(-0.2500,-0.2500,-0.5000) exit=(-0.2500,-0.2500,0.0000) span=0.5000",
		"\tstream: 2 hits, 2 descents",
		"\t\t#1 glass(0.5,0.5,1) t=[2.0000,2.5000]",
		"\tlight sun: occluded=false",
		"\tlight ambient#1: occluded=false",
		"\tvisibility: 0.7000",
		"[RAY] away",
		"\tnearest: miss",
	} {
		assert.Contains(t, got, want)
	}
	// Both voxels lie behind the "away" ray: it misses and prints nothing
	// after its nearest line.
	assert.True(t, strings.HasSuffix(got, "[RAY] away origin=(-0.2500,-0.2500,-2.0000) dir=(0.0000,0.0000,-1.0000)\n\tnearest: miss\n"))
	assert.NotContains(t, got, "t=[-")
}

func TestRun_NoRayLogWithoutDebug(t *testing.T) {
	cache = &RayLogCache{rays: make(map[string][]RayLog)}
	require.False(t, Debug)

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), writeScene(t, sceneYAML), &out))
	assert.Empty(t, cache.rays)
	assert.NotContains(t, out.String(), "logs")
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), "missing.yaml", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading scene config missing.yaml")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Run(ctx, writeScene(t, sceneYAML), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run interrupted")
}
