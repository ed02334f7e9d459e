package topology

import (
	"github.com/chazu/voxtrack/pkg/errs"
	"github.com/chazu/voxtrack/pkg/kspace"
	"github.com/chazu/voxtrack/pkg/predicate"
	"go.uber.org/zap"
)

// Tracker is the lazy boundary container: it knows the space, the
// predicate and the adjacency rule, and recomputes the neighbours of a bel
// from its local geometry on every query. It keeps no other state and is
// safe for concurrent use when the predicate is.
//
// Points outside the space domain are exterior, so in a closed space the
// boundary of a shape touching the domain border is closed by border
// surfels. In an open space such surfels do not exist and the boundary
// stops there.
type Tracker struct {
	space *kspace.Space
	pred  predicate.Predicate
	adj   Adjacency
}

// NewTracker builds a tracker. It fails with errs.ErrConfiguration when
// the adjacency rule does not match the space dimension.
func NewTracker(space *kspace.Space, pred predicate.Predicate, adj Adjacency) (*Tracker, error) {
	if adj.Dimension() != space.Dimension() {
		return nil, errs.Configuration("topology.NewTracker", "adjacency covers %d axes, space has %d",
			adj.Dimension(), space.Dimension())
	}
	return &Tracker{space: space, pred: pred, adj: adj}, nil
}

// Space returns the tracked space.
func (t *Tracker) Space() *kspace.Space { return t.space }

// Adjacency returns the rule in use.
func (t *Tracker) Adjacency() Adjacency { return t.adj }

// Predicate returns the membership predicate.
func (t *Tracker) Predicate() predicate.Predicate { return t.pred }

// IsBel reports whether b is a surfel of the space separating an inside
// point (its direct incident spel) from an outside one.
func (t *Tracker) IsBel(b kspace.SCell) bool {
	if !t.space.IsSurfel(b) || !t.space.IsInside(b.KCoords) {
		return false
	}
	return t.in(t.space.Inner(b)) && !t.in(t.space.Outer(b))
}

// Neighbors returns the bels adjacent to b, at most two per axis other
// than b's orthogonal axis: axes ascending, positive direction first.
//
// It fails with errs.ErrPrecondition when b is not a surfel of the space
// and with errs.ErrConfiguration when b is not a bel of the predicate or
// the adjacency rule resolves to a surfel that is not a bel.
func (t *Tracker) Neighbors(b kspace.SCell) ([]kspace.SCell, error) {
	const op = "topology.Tracker.Neighbors"
	if !t.space.IsSurfel(b) || !t.space.IsInside(b.KCoords) {
		return nil, errs.Precondition(op, "%v is not a surfel of %v", b, t.space)
	}
	orth := t.space.OrthDir(b)
	inner, outer := t.space.Inner(b), t.space.Outer(b)
	if !t.in(inner) || t.in(outer) {
		logger().Warn("tracking from a surfel off the boundary", zap.Stringer("surfel", b))
		return nil, errs.Configuration(op, "%v does not separate the shape from its complement", b)
	}

	n := t.space.Dimension()
	out := make([]kspace.SCell, 0, 2*(n-1))
	for axis := 0; axis < n; axis++ {
		if axis == orth {
			continue
		}
		for _, step := range [2]int{1, -1} {
			nb := newNeighborhood(inner, outer, axis, step)
			inA, inB := t.in(nb.a), t.in(nb.b)
			f := choose(t.adj.Interior(orth, axis), inA, inB)

			if !separates(f, inA, inB) {
				return nil, errs.Configuration(op, "adjacency resolution from %v along axis %d step %d is contradictory",
					b, axis, step)
			}
			fin, fout := nb.sides(f)
			next := bel(t.space, fin, fout)
			if !t.space.IsInside(next.KCoords) {
				continue
			}
			out = append(out, next)
		}
	}
	return out, nil
}

func (t *Tracker) in(p kspace.Point) bool {
	return t.space.Contains(p) && t.pred.Contains(p)
}
