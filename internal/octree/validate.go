package octree

import (
	"math"

	"github.com/pkg/errors"
)

// CheckTiling verifies that the eight canonical children of the cell
// pos/extents are contained in it, pairwise non-overlapping and together
// cover its whole volume. Nearest-hit queries are only correct when this
// holds. Bounds are taken as the floating point corners actually computed,
// so a cell too small for the magnitude of its position fails.
func CheckTiling(pos, extents Vec3) error {
	parent := NewAxisAlignedBox(pos, extents)
	pMin, pMax := parent.Min(), parent.Max()
	size := pMax.Sub(pMin)
	if !(size.X > 0 && size.Y > 0 && size.Z > 0) {
		return errors.Errorf("cell [%v, %v] has no volume", pMin, pMax)
	}
	vol := size.X * size.Y * size.Z
	slack := size.Mul(tilingTolerance)

	var boxes [8]AxisAlignedBox
	sum := 0.0
	for i := range boxes {
		boxes[i] = NewAxisAlignedBox(ChildBounds(pos, extents, i))
		bMin, bMax := boxes[i].Min(), boxes[i].Max()
		span := bMax.Sub(bMin)
		for a := 0; a < 3; a++ {
			if math.Abs(Axis(span, a)-Axis(size, a)/2) > Axis(slack, a) {
				return errors.Errorf("octant %d [%v, %v] spans %v, half of its parent is %v",
					i, bMin, bMax, span, size.Mul(0.5))
			}
			if Axis(bMin, a) < Axis(pMin, a)-Axis(slack, a) || Axis(bMax, a) > Axis(pMax, a)+Axis(slack, a) {
				return errors.Errorf("octant %d [%v, %v] sticks out of its parent [%v, %v]", i, bMin, bMax, pMin, pMax)
			}
		}
		for j := 0; j < i; j++ {
			if ov := overlapVolume(boxes[i], boxes[j]); ov > tilingTolerance*vol {
				return errors.Errorf("octants %d and %d overlap by %g", j, i, ov)
			}
		}
		sum += span.X * span.Y * span.Z
	}
	if math.Abs(sum-vol) > tilingTolerance*vol {
		return errors.Errorf("octants cover %g of a parent volume of %g", sum, vol)
	}
	return nil
}

// Validate walks the tree placed in pos/extents, checks the tiling of every
// node and that no sized leaf is larger than its cell. Leaves that can
// validate themselves (nested trees) are validated in their cells.
func (t *Tree[M]) Validate(pos, extents Vec3) error {
	var err error
	t.Walk(pos, extents, func(v Visit[M]) bool {
		if err != nil {
			return false
		}
		if v.Leaf == nil {
			if e := CheckTiling(v.Pos, v.Extents); e != nil {
				err = errors.Wrapf(e, "node %v", v.Path)
				return false
			}
			return true
		}
		if size := LeafSize(v.Leaf); !fitsCell(size, v.Extents) {
			err = errors.Errorf("leaf %v of size %v exceeds its cell half-extents %v", v.Path, size, v.Extents)
			return false
		}
		if sub, ok := v.Leaf.(interface{ Validate(pos, extents Vec3) error }); ok {
			if e := sub.Validate(v.Pos, v.Extents); e != nil {
				err = errors.Wrapf(e, "leaf %v", v.Path)
			}
		}
		return true
	})
	return err
}

func fitsCell(size, extents Vec3) bool {
	for i := 0; i < 3; i++ {
		if Axis(size, i) > Axis(extents, i)*(1+leafSizeTolerance) {
			return false
		}
	}
	return true
}

// debugValidate validates the tree once, on its first query, when Debug is
// on. A broken tree is a programming error, so it panics.
func (t *Tree[M]) debugValidate(pos, extents Vec3) {
	if !Debug {
		return
	}
	t.validated.Do(func() {
		if err := t.Validate(pos, extents); err != nil {
			panic(err)
		}
		DebugLog("octree validated", "pos", pos, "extents", extents, "nodes", len(t.nodes), "leaves", len(t.leaves))
	})
}
