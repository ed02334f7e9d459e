package topology

import (
	"github.com/chazu/voxtrack/pkg/graph"
	"github.com/chazu/voxtrack/pkg/kspace"
)

// Container is a strategy producing the boundary adjacency of a digital
// surface: the lazy Tracker or the precomputed ExplicitContainer.
type Container interface {
	Space() *kspace.Space
	Neighbors(b kspace.SCell) ([]kspace.SCell, error)
}

var (
	_ Container = (*Tracker)(nil)
	_ Container = (*ExplicitContainer)(nil)

	_ graph.Graph[kspace.SCell] = (*DigitalSurface)(nil)
)

// DigitalSurface exposes a boundary container as a graph whose vertices
// are bels. It adds no state of its own.
type DigitalSurface struct {
	container Container
}

// NewDigitalSurface takes ownership of c; the caller should not keep
// using it directly.
func NewDigitalSurface(c Container) *DigitalSurface {
	return &DigitalSurface{container: c}
}

// Container returns the underlying container.
func (s *DigitalSurface) Container() Container { return s.container }

// Space returns the space of the surface.
func (s *DigitalSurface) Space() *kspace.Space { return s.container.Space() }

// Neighbors returns the bels adjacent to b.
func (s *DigitalSurface) Neighbors(b kspace.SCell) ([]kspace.SCell, error) {
	return s.container.Neighbors(b)
}

// Degree returns the number of bels adjacent to b.
func (s *DigitalSurface) Degree(b kspace.SCell) (int, error) {
	nbrs, err := s.container.Neighbors(b)
	if err != nil {
		return 0, err
	}
	return len(nbrs), nil
}

// TrackBoundary collects the connected component of seed, in
// breadth-first order.
func TrackBoundary(s *DigitalSurface, seed kspace.SCell) ([]kspace.SCell, error) {
	var bels []kspace.SCell
	for n, err := range graph.NewBreadthFirstVisitor[kspace.SCell](s, seed).All() {
		if err != nil {
			return nil, err
		}
		bels = append(bels, n.Vertex)
	}
	return bels, nil
}
