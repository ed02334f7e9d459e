package topology

import (
	"fmt"

	"github.com/chazu/voxtrack/pkg/kspace"
)

// Adjacency selects, for every pair of axes, which of the locally valid
// followers of a bel is its neighbour. Interior adjacency connects bels
// through the inside of the shape at diagonal configurations, exterior
// adjacency through the outside. The table is kept symmetric so that
// tracked adjacency is symmetric.
type Adjacency struct {
	dim      int
	interior [kspace.MaxDimension][kspace.MaxDimension]bool
}

// NewAdjacency returns a uniform rule over dim axes: interior for every
// pair of axes when interior is true, exterior otherwise.
func NewAdjacency(dim int, interior bool) Adjacency {
	a := Adjacency{dim: dim}
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			a.interior[i][j] = interior
		}
	}
	return a
}

// ParseAdjacency builds a uniform rule from "interior" or "exterior".
func ParseAdjacency(dim int, name string) (Adjacency, error) {
	switch name {
	case "interior":
		return NewAdjacency(dim, true), nil
	case "exterior":
		return NewAdjacency(dim, false), nil
	}
	return Adjacency{}, fmt.Errorf("topology: unknown adjacency %q, expected interior or exterior", name)
}

// Dimension returns the number of axes the rule covers.
func (a Adjacency) Dimension() int {
	return a.dim
}

// Set chooses the rule for the pair (i, j), and symmetrically (j, i).
func (a *Adjacency) Set(i, j int, interior bool) {
	a.interior[i][j] = interior
	a.interior[j][i] = interior
}

// Interior reports whether the pair (orth, track) uses interior adjacency.
func (a Adjacency) Interior(orth, track int) bool {
	return a.interior[orth][track]
}

// Opposite swaps interior and exterior on every pair. Tracking the
// complement of a shape with the opposite rule yields the same surfels
// with reversed orientation.
func (a Adjacency) Opposite() Adjacency {
	o := Adjacency{dim: a.dim}
	for i := 0; i < a.dim; i++ {
		for j := 0; j < a.dim; j++ {
			o.interior[i][j] = !a.interior[i][j]
		}
	}
	return o
}
