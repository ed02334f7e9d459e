package topology

import (
	"math/rand/v2"

	"github.com/chazu/voxtrack/pkg/errs"
	"github.com/chazu/voxtrack/pkg/kspace"
	"github.com/chazu/voxtrack/pkg/predicate"
	"go.uber.org/zap"
)

// SearchOption configures FindABel.
type SearchOption func(*search)

type search struct {
	start    kspace.Point
	hasStart bool
	seed     uint64
}

// WithStart starts the search at p instead of the domain centre.
func WithStart(p kspace.Point) SearchOption {
	return func(s *search) {
		s.start = p
		s.hasStart = true
	}
}

// WithSeed seeds the random phase of the search. Equal seeds give equal
// results on equal inputs.
func WithSeed(seed uint64) SearchOption {
	return func(s *search) { s.seed = seed }
}

// FindABel searches the domain of space for a bel of pred, spending at
// most maxSteps predicate evaluations. It first walks the axes through
// the start point, then samples random domain points and walks an
// axis-aligned path towards any sample whose membership differs from the
// start.
//
// The domain border is not a boundary for the search: a predicate constant
// over the domain never yields a bel. FindABel fails with errs.ErrNotFound
// when the budget runs out (immediately when maxSteps <= 0) and with
// errs.ErrPrecondition when the start point lies outside the domain.
func FindABel(space *kspace.Space, pred predicate.Predicate, maxSteps int, opts ...SearchOption) (kspace.SCell, error) {
	const op = "topology.FindABel"
	s := search{start: space.Center(), seed: 1}
	for _, opt := range opts {
		opt(&s)
	}
	if maxSteps <= 0 {
		return kspace.SCell{}, errs.NotFound(op, "no search budget")
	}
	if !space.Contains(s.start) {
		return kspace.SCell{}, errs.Precondition(op, "start point %v outside %v", s.start, space)
	}

	steps := 0
	probe := func(p kspace.Point) bool {
		steps++
		return pred.Contains(p)
	}
	found := func(p, q kspace.Point, pIn bool) (kspace.SCell, error) {
		if !pIn {
			p, q = q, p
		}
		b := bel(space, p, q)
		logger().Debug("seed bel found", zap.Stringer("bel", b), zap.Int("steps", steps))
		return b, nil
	}

	startIn := probe(s.start)

	for axis := 0; axis < space.Dimension(); axis++ {
		for _, step := range [2]int{1, -1} {
			prev, prevIn := s.start, startIn
			d := kspace.Unit(axis, step)
			for q := prev.Add(d); space.Contains(q); q = q.Add(d) {
				if steps >= maxSteps {
					return kspace.SCell{}, exhausted(op, steps)
				}
				if qIn := probe(q); qIn != prevIn {
					return found(prev, q, prevIn)
				}
				prev = q
			}
		}
	}

	rng := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	lower, upper := space.Lower(), space.Upper()
	for steps < maxSteps {
		var target kspace.Point
		for i := 0; i < space.Dimension(); i++ {
			target[i] = lower[i] + rng.IntN(upper[i]-lower[i]+1)
		}
		if probe(target) == startIn {
			continue
		}
		// Walk axis by axis from the start; the membership must change
		// before reaching the target.
		cur, curIn := s.start, startIn
		for i := 0; i < space.Dimension(); i++ {
			step := 1
			if target[i] < cur[i] {
				step = -1
			}
			for cur[i] != target[i] {
				next := cur.Add(kspace.Unit(i, step))
				var nextIn bool
				if next == target {
					nextIn = !startIn
				} else {
					if steps >= maxSteps {
						return kspace.SCell{}, exhausted(op, steps)
					}
					nextIn = probe(next)
				}
				if nextIn != curIn {
					return found(cur, next, curIn)
				}
				cur = next
			}
		}
	}
	return kspace.SCell{}, exhausted(op, steps)
}

func exhausted(op string, steps int) error {
	logger().Debug("seed search exhausted", zap.Int("steps", steps))
	return errs.NotFound(op, "no bel found in %d steps", steps)
}
