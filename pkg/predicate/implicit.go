package predicate

import (
	"math"

	"github.com/chazu/voxtrack/pkg/kspace"
)

// Implicit is the n-D shape {p : |p - Center| <= Radius} measured in the
// L^Power norm, n being len(Center). Power 1 is a diamond, 2 a Euclidean
// ball and +Inf a hypercube.
type Implicit struct {
	Center []float64
	Radius float64
	Power  float64
}

// Ball returns the Euclidean ball of the given radius.
func Ball(center []float64, radius float64) Implicit {
	return Implicit{Center: center, Radius: radius, Power: 2}
}

// Norm1Ball returns the ball of the L1 norm, a cross-polytope.
func Norm1Ball(center []float64, radius float64) Implicit {
	return Implicit{Center: center, Radius: radius, Power: 1}
}

// HyperCube returns the axis-aligned cube of the given half width.
func HyperCube(center []float64, halfWidth float64) Implicit {
	return Implicit{Center: center, Radius: halfWidth, Power: math.Inf(1)}
}

// RoundedHyperCube returns the ball of the L^power norm: a hypercube of
// the given half width whose corners round off as power decreases.
func RoundedHyperCube(center []float64, halfWidth, power float64) Implicit {
	return Implicit{Center: center, Radius: halfWidth, Power: power}
}

// Contains reports whether p lies in the shape. Boundary points are inside.
func (s Implicit) Contains(p kspace.Point) bool {
	switch {
	case math.IsInf(s.Power, 1):
		for i, c := range s.Center {
			if math.Abs(float64(p[i])-c) > s.Radius {
				return false
			}
		}
		return true
	case s.Power == 1:
		sum := 0.0
		for i, c := range s.Center {
			sum += math.Abs(float64(p[i]) - c)
		}
		return sum <= s.Radius
	case s.Power == 2:
		sum := 0.0
		for i, c := range s.Center {
			d := float64(p[i]) - c
			sum += d * d
		}
		return sum <= s.Radius*s.Radius
	}
	sum := 0.0
	for i, c := range s.Center {
		sum += math.Pow(math.Abs(float64(p[i])-c), s.Power)
	}
	return sum <= math.Pow(s.Radius, s.Power)
}

// Domain returns bounds covering the shape, grown by margin points on
// every side, ready for kspace.New.
func (s Implicit) Domain(margin int) (lower, upper []int) {
	lower = make([]int, len(s.Center))
	upper = make([]int, len(s.Center))
	for i, c := range s.Center {
		lower[i] = int(math.Floor(c-s.Radius)) - margin
		upper[i] = int(math.Ceil(c+s.Radius)) + margin
	}
	return lower, upper
}
