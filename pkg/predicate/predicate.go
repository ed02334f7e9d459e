// Package predicate provides membership predicates over digital points:
// pure functions answering whether a point belongs to a shape. Trackers
// and seed searches consume them through the Predicate interface only.
package predicate

import "github.com/chazu/voxtrack/pkg/kspace"

// Predicate tells whether a point lies inside a shape. Implementations
// must answer consistently for the lifetime of a traversal.
type Predicate interface {
	Contains(p kspace.Point) bool
}

// Func adapts an ordinary function to Predicate.
type Func func(p kspace.Point) bool

// Contains calls f(p).
func (f Func) Contains(p kspace.Point) bool {
	return f(p)
}

// Constant returns a predicate answering v everywhere.
func Constant(v bool) Predicate {
	return Func(func(kspace.Point) bool { return v })
}

// Not returns the complement of p.
func Not(p Predicate) Predicate {
	return Func(func(q kspace.Point) bool { return !p.Contains(q) })
}

// And returns the intersection of ps. And() is true everywhere.
func And(ps ...Predicate) Predicate {
	return Func(func(q kspace.Point) bool {
		for _, p := range ps {
			if !p.Contains(q) {
				return false
			}
		}
		return true
	})
}

// Or returns the union of ps. Or() is false everywhere.
func Or(ps ...Predicate) Predicate {
	return Func(func(q kspace.Point) bool {
		for _, p := range ps {
			if p.Contains(q) {
				return true
			}
		}
		return false
	})
}

// Within restricts p to the domain of space: points outside the domain
// are never contained.
func Within(space *kspace.Space, p Predicate) Predicate {
	return Func(func(q kspace.Point) bool {
		return space.Contains(q) && p.Contains(q)
	})
}
