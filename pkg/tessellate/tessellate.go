// Package tessellate turns traversed surfels of a 3-D digital surface into
// a triangle mesh and writes it out. One quad (two triangles) is produced
// per surfel, tagged with the traversal distance of that surfel.
package tessellate

import (
	"fmt"

	"github.com/chazu/voxtrack/pkg/graph"
	"github.com/chazu/voxtrack/pkg/kernel"
	"github.com/chazu/voxtrack/pkg/kspace"
)

// Tessellate builds a mesh from visited surfels of a 3-D space. A point p
// sits at world position p*scale, so surfel quads lie halfway between
// voxel centres. Quads are wound counter-clockwise seen from the outside,
// and their normals point from the inner spel to the outer one.
func Tessellate(space *kspace.Space, nodes []graph.Node[kspace.SCell], scale float64) (*kernel.Mesh, error) {
	if space.Dimension() != 3 {
		return nil, fmt.Errorf("tessellate: need a 3-D space, got %d-D", space.Dimension())
	}
	if scale <= 0 {
		return nil, fmt.Errorf("tessellate: scale must be positive, got %g", scale)
	}
	m := &kernel.Mesh{
		Vertices: make([]float32, 0, 12*len(nodes)),
		Normals:  make([]float32, 0, 12*len(nodes)),
		Indices:  make([]uint32, 0, 6*len(nodes)),
		Layers:   make([]uint32, 0, 2*len(nodes)),
	}
	for _, n := range nodes {
		if err := addQuad(m, space, n, scale); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func addQuad(m *kernel.Mesh, space *kspace.Space, n graph.Node[kspace.SCell], scale float64) error {
	b := n.Vertex
	k := space.OrthDir(b)
	if k < 0 {
		return fmt.Errorf("tessellate: %v is not a surfel", b)
	}
	u, v := (k+1)%3, (k+2)%3
	out := space.Outer(b)[k] - space.Inner(b)[k]

	var normal [3]float32
	normal[k] = float32(out)

	// Corners in Khalimsky units, counter-clockwise around +e_k.
	corners := [4][2]int{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	if out < 0 {
		corners[1], corners[3] = corners[3], corners[1]
	}
	base := uint32(m.VertexCount())
	for _, c := range corners {
		kc := b.KCoords
		kc[u] += c[0]
		kc[v] += c[1]
		for i := range 3 {
			m.Vertices = append(m.Vertices, float32(float64(kc[i]-1)/2*scale))
		}
		m.Normals = append(m.Normals, normal[:]...)
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
	m.Layers = append(m.Layers, uint32(n.Distance), uint32(n.Distance))
	return nil
}
