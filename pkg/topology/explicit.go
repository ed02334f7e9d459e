package topology

import (
	"iter"
	"maps"

	"github.com/chazu/voxtrack/pkg/errs"
	"github.com/chazu/voxtrack/pkg/kspace"
	"github.com/chazu/voxtrack/pkg/predicate"
)

// ExplicitContainer is a boundary given as a precomputed set of bels.
// Neighbours are resolved by set membership: among the followers present
// in the set, the one the adjacency rule prefers wins. For the boundary of
// a predicate it agrees with the Tracker.
type ExplicitContainer struct {
	space *kspace.Space
	adj   Adjacency
	bels  map[kspace.SCell]struct{}
}

// NewExplicitContainer stores bels. It fails with errs.ErrConfiguration on
// a dimension mismatch and errs.ErrPrecondition when some cell is not a
// surfel of the space.
func NewExplicitContainer(space *kspace.Space, adj Adjacency, bels []kspace.SCell) (*ExplicitContainer, error) {
	const op = "topology.NewExplicitContainer"
	if adj.Dimension() != space.Dimension() {
		return nil, errs.Configuration(op, "adjacency covers %d axes, space has %d", adj.Dimension(), space.Dimension())
	}
	c := &ExplicitContainer{space: space, adj: adj, bels: make(map[kspace.SCell]struct{}, len(bels))}
	for _, b := range bels {
		if !space.IsSurfel(b) || !space.IsInside(b.KCoords) {
			return nil, errs.Precondition(op, "%v is not a surfel of %v", b, space)
		}
		c.bels[b] = struct{}{}
	}
	return c, nil
}

// Space returns the space of the bels.
func (c *ExplicitContainer) Space() *kspace.Space { return c.space }

// Len returns the number of bels.
func (c *ExplicitContainer) Len() int { return len(c.bels) }

// Contains reports whether b belongs to the set.
func (c *ExplicitContainer) Contains(b kspace.SCell) bool {
	_, ok := c.bels[b]
	return ok
}

// Surfels yields the bels in unspecified order.
func (c *ExplicitContainer) Surfels() iter.Seq[kspace.SCell] {
	return maps.Keys(c.bels)
}

// Neighbors returns the bels of the set adjacent to b, in the same order
// as Tracker.Neighbors. It fails with errs.ErrPrecondition when b is not
// in the set.
func (c *ExplicitContainer) Neighbors(b kspace.SCell) ([]kspace.SCell, error) {
	if !c.Contains(b) {
		return nil, errs.Precondition("topology.ExplicitContainer.Neighbors", "%v is not in the surfel set", b)
	}
	orth := c.space.OrthDir(b)
	inner, outer := c.space.Inner(b), c.space.Outer(b)
	n := c.space.Dimension()
	out := make([]kspace.SCell, 0, 2*(n-1))
	for axis := 0; axis < n; axis++ {
		if axis == orth {
			continue
		}
		for _, step := range [2]int{1, -1} {
			nb := newNeighborhood(inner, outer, axis, step)
			for _, f := range priority(c.adj.Interior(orth, axis)) {
				fin, fout := nb.sides(f)
				next := bel(c.space, fin, fout)
				if c.Contains(next) {
					out = append(out, next)
					break
				}
			}
		}
	}
	return out, nil
}

// ExtractBoundary returns every bel of pred in space, scanning the whole
// domain. Points outside the domain count as exterior, as for the Tracker.
// The order is deterministic: domain points in Space.Points order, then
// axes ascending, positive side first.
func ExtractBoundary(space *kspace.Space, pred predicate.Predicate) []kspace.SCell {
	in := predicate.Within(space, pred)
	var bels []kspace.SCell
	for p := range space.Points() {
		if !in.Contains(p) {
			continue
		}
		for axis := 0; axis < space.Dimension(); axis++ {
			for _, step := range [2]int{1, -1} {
				q := p.Add(kspace.Unit(axis, step))
				if in.Contains(q) {
					continue
				}
				if b := bel(space, p, q); space.IsInside(b.KCoords) {
					bels = append(bels, b)
				}
			}
		}
	}
	return bels
}
