package octray

import "fmt"

// RGB stores color components; each should be in [0,1].
type RGB struct {
	R, G, B float64
}

// clamp01 clamps each channel to [0,1].
func (c RGB) clamp01() RGB {
	cl := func(x float64) float64 {
		if x < 0 {
			return 0
		}
		if x > 1 {
			return 1
		}
		return x
	}
	return RGB{cl(c.R), cl(c.G), cl(c.B)}
}

// Material is the payload every scene leaf carries into its hits.
type Material struct {
	Name   string
	Color  RGB
	Opaque bool // blocks shadow rays
}

func (m Material) String() string {
	return fmt.Sprintf("%s(%.3g,%.3g,%.3g)", m.Name, m.Color.R, m.Color.G, m.Color.B)
}
