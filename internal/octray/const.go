package octray

const (
	DefaultDepth      = 3
	MaxDepth          = 10
	DefaultHalfExtent = 0.5
	BenchResolution   = 128 // rays per side of the bench grid
	// ShadowBias lifts shadow ray origins off the surface they start on.
	ShadowBias = 1e-6
)
