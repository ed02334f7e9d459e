// Package volume holds scalar images over rectangular digital domains and
// reads them from .vol files. Shapes are derived from an image by
// thresholding (see predicate.Threshold).
package volume

import (
	"fmt"

	"github.com/chazu/voxtrack/pkg/kspace"
)

// Image maps every point of a rectangular domain to an int value.
// Values are stored with axis 0 varying fastest.
type Image struct {
	dim    int
	lower  kspace.Point
	upper  kspace.Point
	values []int
}

// MaxLen bounds the number of points of an image.
const MaxLen = 1 << 30

// New returns a zero-filled image over [lower, upper].
func New(lower, upper []int) (*Image, error) {
	size, err := domainLen(lower, upper)
	if err != nil {
		return nil, err
	}
	img := &Image{dim: len(lower), values: make([]int, size)}
	copy(img.lower[:], lower)
	copy(img.upper[:], upper)
	return img, nil
}

// domainLen returns the number of points of [lower, upper].
func domainLen(lower, upper []int) (int, error) {
	if len(lower) != len(upper) || len(lower) == 0 || len(lower) > kspace.MaxDimension {
		return 0, fmt.Errorf("volume: invalid domain bounds %v..%v", lower, upper)
	}
	size := 1
	for i := range lower {
		if lower[i] > upper[i] {
			return 0, fmt.Errorf("volume: axis %d: lower %d > upper %d", i, lower[i], upper[i])
		}
		if lower[i] < -kspace.MaxCoordinate || upper[i] > kspace.MaxCoordinate {
			return 0, fmt.Errorf("volume: axis %d: bounds [%d, %d] exceed ±%d",
				i, lower[i], upper[i], kspace.MaxCoordinate)
		}
		extent := upper[i] - lower[i] + 1
		if extent > MaxLen/size {
			return 0, fmt.Errorf("volume: domain %v..%v exceeds %d points", lower, upper, MaxLen)
		}
		size *= extent
	}
	return size, nil
}

// Dimension returns the number of axes.
func (img *Image) Dimension() int { return img.dim }

// Domain returns the domain bounds as slices, ready for kspace.New.
func (img *Image) Domain() (lower, upper []int) {
	return append([]int(nil), img.lower[:img.dim]...), append([]int(nil), img.upper[:img.dim]...)
}

// Len returns the number of points of the domain.
func (img *Image) Len() int { return len(img.values) }

// Contains reports whether p lies in the domain.
func (img *Image) Contains(p kspace.Point) bool {
	for i := 0; i < img.dim; i++ {
		if p[i] < img.lower[i] || p[i] > img.upper[i] {
			return false
		}
	}
	return true
}

// At returns the value at p and whether p lies in the domain.
func (img *Image) At(p kspace.Point) (int, bool) {
	if !img.Contains(p) {
		return 0, false
	}
	return img.values[img.index(p)], true
}

// Set stores v at p. Points outside the domain are ignored.
func (img *Image) Set(p kspace.Point, v int) {
	if img.Contains(p) {
		img.values[img.index(p)] = v
	}
}

// Fill sets every point of the domain to f(p).
func (img *Image) Fill(f func(p kspace.Point) int) {
	p := img.lower
	for i := range img.values {
		img.values[i] = f(p)
		for a := 0; a < img.dim; a++ {
			if p[a] < img.upper[a] {
				p[a]++
				break
			}
			p[a] = img.lower[a]
		}
	}
}

func (img *Image) index(p kspace.Point) int {
	idx := 0
	stride := 1
	for i := 0; i < img.dim; i++ {
		idx += (p[i] - img.lower[i]) * stride
		stride *= img.upper[i] - img.lower[i] + 1
	}
	return idx
}
