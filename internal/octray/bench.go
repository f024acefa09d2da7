package octray

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/lukaszgryglicki/octray/internal/octree"
)

type BenchOptions struct {
	Workers    int // 0 means GOMAXPROCS
	Resolution int // rays per side of the grid
	Stream     bool
}

type BenchResult struct {
	Rays     int64
	Hits     int64
	Leaves   int64 // leaf hits seen, equal to Hits unless streaming
	Descents int64
	Elapsed  time.Duration
}

// Bench casts a Resolution x Resolution grid of rays along +z through the
// scene's x/y face, spread over Workers goroutines sharing the read-only
// tree. Each worker owns whole rows.
func Bench(ctx context.Context, s *Scene, opts BenchOptions) (BenchResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	res := opts.Resolution
	if res <= 0 {
		res = BenchResolution
	}
	if workers > res {
		workers = res
	}

	bounds := s.Bounds()
	lo := bounds.Min()
	size := bounds.Max().Sub(lo)
	z := lo.Z - size.Z
	dir := octree.V(0, 0, 1)

	var rays, hits, leaves, descents int64
	nextPrint := int64(1)
	if total := int64(res) * int64(res); total >= 100 {
		nextPrint = total / 100
	}

	start := time.Now()
	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		wid := w
		eg.Go(func() error {
			for row := wid; row < res; row += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				y := lo.Y + size.Y*(Real(row)+0.5)/Real(res)
				for col := 0; col < res; col++ {
					x := lo.X + size.X*(Real(col)+0.5)/Real(res)
					origin := octree.V(x, y, z)
					if opts.Stream {
						found, d := s.StreamAll(origin, dir, octree.AheadOnly)
						atomic.AddInt64(&leaves, int64(len(found)))
						atomic.AddInt64(&descents, int64(d))
						if len(found) > 0 {
							atomic.AddInt64(&hits, 1)
						}
					} else if _, ok := s.Nearest(origin, dir); ok {
						atomic.AddInt64(&hits, 1)
						atomic.AddInt64(&leaves, 1)
					}
					if fired := atomic.AddInt64(&rays, 1); fired%nextPrint == 0 {
						debugLog("bench progress", "percent", float64(fired)*100/float64(res*res))
					}
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return BenchResult{}, errors.Wrap(err, "bench interrupted")
	}

	r := BenchResult{
		Rays:     rays,
		Hits:     hits,
		Leaves:   leaves,
		Descents: descents,
		Elapsed:  time.Since(start),
	}
	debugLog("bench done", "rays", r.Rays, "hits", r.Hits, "elapsed", r.Elapsed)
	return r, nil
}
