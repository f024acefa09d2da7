package octray

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/pkg/errors"

	"github.com/lukaszgryglicki/octray/internal/octree"
)

// Run loads the scene at cfgPath and answers every configured ray: the
// nearest hit, the full hit stream and, for the nearest hit, what each
// light contributes.
func Run(ctx context.Context, cfgPath string, w io.Writer) error {
	scene, err := LoadScene(cfgPath)
	if err != nil {
		return err
	}
	c := scene.Tree.Counts()
	if _, err := fmt.Fprintf(w, "[SCENE] %s: depth=%d nodes=%d leaves=%d lights=%d rays=%d\n",
		cfgPath, scene.Depth, c.Nodes, c.Leaves, len(scene.Lights), len(scene.Rays)); err != nil {
		return err
	}

	start := time.Now()
	for _, r := range scene.Rays {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "run interrupted")
		}
		if err := scene.Query(w, r); err != nil {
			return errors.Wrapf(err, "ray %s", r.Name)
		}
	}
	debugLog("run done", "rays", len(scene.Rays), "elapsed", time.Since(start))
	if Debug {
		raysStats(w)
	}
	return nil
}

// Query writes the nearest hit, the hit stream and the light report for a
// single ray.
func (s *Scene) Query(w io.Writer, r NamedRay) error {
	if _, err := fmt.Fprintf(w, "[RAY] %s origin=%s dir=%s\n", r.Name, fmtVec(r.Origin), fmtVec(r.Direction)); err != nil {
		return err
	}
	hit, ok := s.Nearest(r.Origin, r.Direction)
	if !ok {
		if Debug {
			logRay(r.Name, Miss, r.Origin, r.Direction, Vec3{}, 0)
		}
		_, err := fmt.Fprintln(w, "\tnearest: miss")
		return err
	}
	point := hit.Point(r.Origin, r.Direction)
	if Debug {
		logRay(r.Name, HitLeaf, r.Origin, r.Direction, point, hit.Min)
	}
	if _, err := fmt.Fprintf(w, "\tnearest: %s\n", fmtHit(hit)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\t\tentry=%s exit=%s span=%.4f\n",
		fmtVec(point), fmtVec(hit.ExitPoint(r.Origin, r.Direction)), hit.Length()); err != nil {
		return err
	}

	hits, descents := s.StreamAll(r.Origin, r.Direction, octree.AheadOnly)
	hits = slices.DeleteFunc(hits, func(h Hit) bool { return !ahead(h) })
	if _, err := fmt.Fprintf(w, "\tstream: %d hits, %d descents\n", len(hits), descents); err != nil {
		return err
	}
	for i, h := range hits {
		if _, err := fmt.Fprintf(w, "\t\t#%d %s\n", i, fmtHit(h)); err != nil {
			return err
		}
	}

	for _, l := range s.Lights {
		blocked := s.Occluded(point, hit.InNormal, l.Light)
		if Debug {
			dir, dist, _ := l.Toward(point, hit.InNormal)
			category := Lit
			if blocked {
				category = Occluded
			}
			logRay(r.Name+"/"+l.Name, category, point, dir, point, dist)
		}
		if _, err := fmt.Fprintf(w, "\tlight %s: occluded=%v\n", l.Name, blocked); err != nil {
			return err
		}
	}
	if len(s.Lights) > 0 {
		v := s.Visibility(r.Origin, r.Direction, hit, s.LightList())
		if _, err := fmt.Fprintf(w, "\tvisibility: %.4f\n", v); err != nil {
			return err
		}
	}
	return nil
}

func fmtVec(v Vec3) string { return fmt.Sprintf("(%.4f,%.4f,%.4f)", v.X, v.Y, v.Z) }

func fmtHit(h Hit) string {
	return fmt.Sprintf("%s t=[%.4f,%.4f] in=%s out=%s", h.Meta, h.Min, h.Max, fmtVec(h.InNormal), fmtVec(h.OutNormal))
}
