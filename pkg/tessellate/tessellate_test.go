package tessellate

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chazu/voxtrack/pkg/graph"
	"github.com/chazu/voxtrack/pkg/kernel"
	"github.com/chazu/voxtrack/pkg/kspace"
	"github.com/chazu/voxtrack/pkg/predicate"
	"github.com/chazu/voxtrack/pkg/topology"
)

func newSpace(t *testing.T, dim int) *kspace.Space {
	t.Helper()
	lower := make([]int, dim)
	upper := make([]int, dim)
	for i := range upper {
		upper[i] = 4
	}
	s, err := kspace.New(lower, upper, true)
	if err != nil {
		t.Fatalf("kspace.New: %v", err)
	}
	return s
}

// voxelNodes tracks the boundary of a single voxel at (2,2,2).
func voxelNodes(t *testing.T, space *kspace.Space) []graph.Node[kspace.SCell] {
	t.Helper()
	pred := predicate.NewSet(kspace.Pt(2, 2, 2))
	tr, err := topology.NewTracker(space, pred, topology.NewAdjacency(3, true))
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	seed, err := topology.FindABel(space, pred, 1000)
	if err != nil {
		t.Fatalf("FindABel: %v", err)
	}
	var nodes []graph.Node[kspace.SCell]
	for n, err := range graph.NewBreadthFirstVisitor[kspace.SCell](topology.NewDigitalSurface(tr), seed).All() {
		if err != nil {
			t.Fatalf("traversal: %v", err)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func vertex(m *kernel.Mesh, i uint32) [3]float64 {
	return [3]float64{float64(m.Vertices[3*i]), float64(m.Vertices[3*i+1]), float64(m.Vertices[3*i+2])}
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func TestSingleVoxelCube(t *testing.T) {
	space := newSpace(t, 3)
	nodes := voxelNodes(t, space)
	m, err := Tessellate(space, nodes, 1)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if m.VertexCount() != 24 {
		t.Errorf("VertexCount() = %d, want 24", m.VertexCount())
	}
	if m.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", m.TriangleCount())
	}
	if len(m.Layers) != m.TriangleCount() {
		t.Fatalf("%d layers for %d triangles", len(m.Layers), m.TriangleCount())
	}
	if m.MaxLayer() != 2 {
		t.Errorf("MaxLayer() = %d, want 2", m.MaxLayer())
	}

	center := [3]float64{2, 2, 2}
	for tri := 0; tri < m.TriangleCount(); tri++ {
		i0, i1, i2 := m.Indices[3*tri], m.Indices[3*tri+1], m.Indices[3*tri+2]
		a, b, c := vertex(m, i0), vertex(m, i1), vertex(m, i2)
		n := [3]float64{float64(m.Normals[3*i0]), float64(m.Normals[3*i0+1]), float64(m.Normals[3*i0+2])}

		for _, p := range [][3]float64{a, b, c} {
			for axis := range 3 {
				if d := p[axis] - center[axis]; d != 0.5 && d != -0.5 {
					t.Fatalf("triangle %d: vertex %v is not a voxel corner", tri, p)
				}
			}
		}
		mid := [3]float64{(a[0] + b[0] + c[0]) / 3, (a[1] + b[1] + c[1]) / 3, (a[2] + b[2] + c[2]) / 3}
		if dot(sub(mid, center), n) <= 0 {
			t.Errorf("triangle %d: normal %v points inward", tri, n)
		}
		if dot(cross(sub(b, a), sub(c, a)), n) <= 0 {
			t.Errorf("triangle %d: winding disagrees with normal %v", tri, n)
		}
	}
}

func TestTessellateScale(t *testing.T) {
	space := newSpace(t, 3)
	m, err := Tessellate(space, voxelNodes(t, space), 0.5)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	for i := 0; i < m.VertexCount(); i++ {
		for _, x := range vertex(m, uint32(i)) {
			if x != 0.75 && x != 1.25 {
				t.Fatalf("vertex %d coordinate %g, want 0.75 or 1.25", i, x)
			}
		}
	}
}

func TestTessellateRejects(t *testing.T) {
	flat := newSpace(t, 2)
	if _, err := Tessellate(flat, nil, 1); err == nil {
		t.Error("expected an error for a 2-D space")
	}

	space := newSpace(t, 3)
	if _, err := Tessellate(space, nil, 0); err == nil {
		t.Error("expected an error for a zero scale")
	}
	spel, err := space.SEncode(kspace.Pt(1, 1, 1), kspace.Positive)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Tessellate(space, []graph.Node[kspace.SCell]{{Vertex: spel}}, 1); err == nil {
		t.Error("expected an error for a spel")
	}
}

func TestTessellateEmpty(t *testing.T) {
	m, err := Tessellate(newSpace(t, 3), nil, 1)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if !m.IsEmpty() {
		t.Error("expected an empty mesh")
	}
}

func TestWriteOBJ(t *testing.T) {
	space := newSpace(t, 3)
	m, err := Tessellate(space, voxelNodes(t, space), 1)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	m.Name = "voxel"

	var buf bytes.Buffer
	if err := Write(&buf, m, FormatOBJ); err != nil {
		t.Fatalf("Write: %v", err)
	}
	counts := map[string]int{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		counts[strings.Fields(line)[0]]++
	}
	want := map[string]int{"o": 1, "v": 24, "vn": 24, "f": 12}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("%d %q lines, want %d", counts[k], k, n)
		}
	}
	if !strings.Contains(buf.String(), "f 1//1 2//2 3//3\n") {
		t.Error("faces should use 1-based indices")
	}
}

func TestWriteJSON(t *testing.T) {
	space := newSpace(t, 3)
	m, err := Tessellate(space, voxelNodes(t, space), 1)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	m.Name = "voxel"

	var buf bytes.Buffer
	if err := Write(&buf, m, FormatJSON); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got kernel.Mesh
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if got.Name != "voxel" || got.TriangleCount() != 12 || len(got.Layers) != 12 {
		t.Errorf("decoded mesh %q with %d triangles and %d layers", got.Name, got.TriangleCount(), len(got.Layers))
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, &kernel.Mesh{}, Format("stl")); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
