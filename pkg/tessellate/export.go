package tessellate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/chazu/voxtrack/pkg/kernel"
)

// Format names a mesh output encoding.
type Format string

const (
	FormatOBJ  Format = "obj"
	FormatJSON Format = "json"
)

// Write encodes m to w in the given format.
func Write(w io.Writer, m *kernel.Mesh, f Format) error {
	switch f {
	case FormatOBJ:
		return WriteOBJ(w, m)
	case FormatJSON:
		return WriteJSON(w, m)
	}
	return fmt.Errorf("tessellate: unknown mesh format %q", f)
}

// WriteJSON encodes m as a single JSON object.
func WriteJSON(w io.Writer, m *kernel.Mesh) error {
	if err := json.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("tessellate: encoding mesh: %w", err)
	}
	return nil
}

// WriteOBJ encodes m as Wavefront OBJ with per-vertex normals. Triangle
// layers are not representable and are dropped.
func WriteOBJ(w io.Writer, m *kernel.Mesh) error {
	bw := bufio.NewWriter(w)
	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		fmt.Fprintf(bw, "v %g %g %g\n", m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2])
	}
	for i := 0; i+2 < len(m.Normals); i += 3 {
		fmt.Fprintf(bw, "vn %g %g %g\n", m.Normals[i], m.Normals[i+1], m.Normals[i+2])
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("tessellate: writing obj: %w", err)
	}
	return nil
}
