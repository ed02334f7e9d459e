package topology

import (
	"fmt"

	"github.com/chazu/voxtrack/pkg/kspace"
)

// follower names one of the three surfels that may continue a bel in a
// tracking direction.
type follower int

const (
	bendInward  follower = iota + 1 // between the inner spel and its neighbour
	translate                       // the bel shifted along the direction
	bendOutward                     // between the outer spel's neighbour and the outer spel
)

// neighborhood is the local configuration of a bel along one tracking
// direction d: its inner spel v, outer spel w, and a = v+d, b = w+d.
type neighborhood struct {
	inner, outer kspace.Point
	a, b         kspace.Point
}

func newNeighborhood(inner, outer kspace.Point, axis, step int) neighborhood {
	d := kspace.Unit(axis, step)
	return neighborhood{inner: inner, outer: outer, a: inner.Add(d), b: outer.Add(d)}
}

// sides returns the inner and outer points of follower f.
func (n neighborhood) sides(f follower) (in, out kspace.Point) {
	switch f {
	case bendInward:
		return n.inner, n.a
	case translate:
		return n.a, n.b
	default:
		return n.b, n.outer
	}
}

// choose resolves the follower from the membership of a and b.
func choose(interior, inA, inB bool) follower {
	if interior {
		switch {
		case inB:
			return bendOutward
		case inA:
			return translate
		default:
			return bendInward
		}
	}
	switch {
	case !inA:
		return bendInward
	case !inB:
		return translate
	default:
		return bendOutward
	}
}

// separates reports whether follower f is a bel given the membership of
// a and b, the inner spel being inside and the outer one outside.
func separates(f follower, inA, inB bool) bool {
	switch f {
	case bendInward:
		return !inA
	case translate:
		return inA && !inB
	default:
		return inB
	}
}

// priority lists the followers in the order a rule prefers them when only
// the set of bels is known.
func priority(interior bool) [3]follower {
	if interior {
		return [3]follower{bendOutward, translate, bendInward}
	}
	return [3]follower{bendInward, translate, bendOutward}
}

// bel builds the surfel between two points known to be adjacent.
func bel(space *kspace.Space, in, out kspace.Point) kspace.SCell {
	b, err := space.Bel(in, out)
	if err != nil {
		panic(fmt.Sprintf("topology: follower construction: %v", err))
	}
	return b
}
