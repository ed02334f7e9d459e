package predicate

import (
	"iter"
	"maps"

	"github.com/chazu/voxtrack/pkg/kspace"
)

// Set is a digital set: an explicit collection of points.
type Set struct {
	points map[kspace.Point]struct{}
}

// NewSet returns a set holding points.
func NewSet(points ...kspace.Point) *Set {
	s := &Set{points: make(map[kspace.Point]struct{}, len(points))}
	for _, p := range points {
		s.Insert(p)
	}
	return s
}

// Insert adds p to the set.
func (s *Set) Insert(p kspace.Point) {
	s.points[p] = struct{}{}
}

// Remove deletes p from the set.
func (s *Set) Remove(p kspace.Point) {
	delete(s.points, p)
}

// Contains reports whether p is in the set.
func (s *Set) Contains(p kspace.Point) bool {
	_, ok := s.points[p]
	return ok
}

// Len returns the number of points.
func (s *Set) Len() int {
	return len(s.points)
}

// Points yields the points in unspecified order.
func (s *Set) Points() iter.Seq[kspace.Point] {
	return maps.Keys(s.points)
}

// Collect builds the set of domain points satisfying p.
func Collect(space *kspace.Space, p Predicate) *Set {
	s := NewSet()
	for q := range space.Points() {
		if p.Contains(q) {
			s.Insert(q)
		}
	}
	return s
}
