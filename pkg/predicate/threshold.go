package predicate

import (
	"github.com/chazu/voxtrack/pkg/kspace"
	"github.com/chazu/voxtrack/pkg/volume"
)

// Threshold returns the shape {p : lo <= img(p) <= hi}. Points outside
// the image domain are outside the shape. An empty range (lo > hi)
// produces an empty shape.
func Threshold(img *volume.Image, lo, hi int) Predicate {
	return Func(func(p kspace.Point) bool {
		v, ok := img.At(p)
		return ok && lo <= v && v <= hi
	})
}
