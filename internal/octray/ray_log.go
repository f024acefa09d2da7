package octray

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

type Category uint8

const (
	HitLeaf  Category = iota // ray hit a leaf
	Miss                     // ray missed every leaf
	Occluded                 // shadow ray blocked
	Lit                      // shadow ray reached its light
)

func (c Category) String() string {
	switch c {
	case HitLeaf:
		return "hit"
	case Miss:
		return "miss"
	case Occluded:
		return "occluded"
	case Lit:
		return "lit"
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

type RayLog struct {
	Name      string
	Category  Category
	Origin    Vec3
	Direction Vec3
	Point     Vec3 // hit point, if any
	Distance  Real // distance to the hit or to the light
}

type RayLogCache struct {
	mu   sync.Mutex
	rays map[string][]RayLog // ray name -> logs
}

var cache = &RayLogCache{
	rays: make(map[string][]RayLog),
}

func logRay(name string, category Category, origin, direction, point Vec3, distance Real) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.rays[name] = append(cache.rays[name], RayLog{
		Name:      name,
		Category:  category,
		Origin:    origin,
		Direction: direction,
		Point:     point,
		Distance:  distance,
	})
}

// raysStats prints how many logs of each category every ray name has.
func raysStats(w io.Writer) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	names := make([]string, 0, len(cache.rays))
	for k := range cache.rays {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		per := map[Category]int{}
		for _, l := range cache.rays[k] {
			per[l.Category]++
		}
		fmt.Fprintf(w, "Ray %s: %d logs", k, len(cache.rays[k]))
		for c := HitLeaf; c <= Lit; c++ {
			if per[c] > 0 {
				fmt.Fprintf(w, " %s=%d", c, per[c])
			}
		}
		fmt.Fprintln(w)
	}
}
