package predicate

import (
	"math"

	"github.com/chazu/voxtrack/pkg/kernel"
	"github.com/chazu/voxtrack/pkg/kspace"
)

// FromSolid digitises a 3-D solid: point p belongs to the shape when the
// world position p*scale lies inside s. scale is the voxel edge length in
// world units.
func FromSolid(s kernel.Solid, scale float64) Predicate {
	return Func(func(p kspace.Point) bool {
		return s.Inside(float64(p[0])*scale, float64(p[1])*scale, float64(p[2])*scale)
	})
}

// SolidDomain returns domain bounds covering the bounding box of s at the
// given scale, grown by margin points on every side so the digitised
// shape is surrounded by exterior points.
func SolidDomain(s kernel.Solid, scale float64, margin int) (lower, upper []int) {
	lo, hi := s.BoundingBox()
	lower = make([]int, 3)
	upper = make([]int, 3)
	for i := range 3 {
		lower[i] = int(math.Floor(lo[i]/scale)) - margin
		upper[i] = int(math.Ceil(hi[i]/scale)) + margin
	}
	return lower, upper
}
