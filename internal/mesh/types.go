// Package mesh builds the procedural primitive meshes served to the WebGL
// client: cube, UV sphere, plane, torus and icosphere.
package mesh

import (
	"fmt"
	"math"
)

// Topology describes how the index buffer is interpreted.
type Topology uint8

const (
	// Triangles is a triangle list: every three indices form one triangle.
	Triangles Topology = iota
	// Points is a point list: indices are 0..N-1, one per vertex.
	Points
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case Triangles:
		return "triangles"
	case Points:
		return "points"
	default:
		return fmt.Sprintf("Topology(%d)", uint8(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Topology) MarshalText() ([]byte, error) {
	if t > Points {
		return nil, fmt.Errorf("%w: unknown topology %d", ErrInvalidMesh, uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Topology) UnmarshalText(text []byte) error {
	switch string(text) {
	case "triangles", "":
		*t = Triangles
	case "points":
		*t = Points
	default:
		return fmt.Errorf("%w: unknown topology %q", ErrInvalidMesh, text)
	}
	return nil
}

// Mesh is a GPU-ready buffer set. Vertices and Normals hold xyz triples,
// Colors RGBA quads and UVs uv pairs, all flattened. A nil optional buffer
// means the attribute is absent.
type Mesh struct {
	Vertices []float32 `json:"vertices"`
	Indices  []uint32  `json:"indices"`
	Normals  []float32 `json:"normals"`
	Colors   []float32 `json:"colors"`
	UVs      []float32 `json:"uvs"`

	Topology Topology `json:"topology,omitempty"`
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32 `json:"min"`
	Max [3]float32 `json:"max"`
}

// VertexCount returns the number of xyz triples.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// IndexCount returns the length of the index buffer.
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// Validate checks the buffer length and index range invariants.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %d vertex floats is not a multiple of 3", ErrInvalidMesh, len(m.Vertices))
	}
	n := m.VertexCount()
	if m.Topology == Triangles && len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at position %d out of range (vertex count %d)", ErrInvalidMesh, idx, i, n)
		}
	}
	if m.Normals != nil && len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("%w: %d normal floats for %d vertex floats", ErrInvalidMesh, len(m.Normals), len(m.Vertices))
	}
	if m.Colors != nil && len(m.Colors) != 4*n {
		return fmt.Errorf("%w: %d color floats for %d vertices", ErrInvalidMesh, len(m.Colors), n)
	}
	if m.UVs != nil && len(m.UVs) != 2*n {
		return fmt.Errorf("%w: %d uv floats for %d vertices", ErrInvalidMesh, len(m.UVs), n)
	}
	for _, buf := range []struct {
		name   string
		values []float32
	}{
		{"vertex", m.Vertices},
		{"normal", m.Normals},
		{"color", m.Colors},
		{"uv", m.UVs},
	} {
		for i, v := range buf.values {
			if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("%w: %s float %d is not finite", ErrInvalidMesh, buf.name, i)
			}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: cloneSlice(m.Vertices),
		Indices:  cloneSlice(m.Indices),
		Normals:  cloneSlice(m.Normals),
		Colors:   cloneSlice(m.Colors),
		UVs:      cloneSlice(m.UVs),
		Topology: m.Topology,
	}
}

// WithColor returns a copy whose every vertex is tinted c.
// A mesh without a color buffer is returned as a plain copy.
func (m *Mesh) WithColor(c [4]float32) *Mesh {
	out := m.Clone()
	if out.Colors != nil {
		out.Colors = fillColor(m.VertexCount(), c)
	}
	return out
}

// Bounds computes the axis-aligned bounding box of the vertices.
// An empty mesh has zero bounds.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) < 3 {
		return Bounds{}
	}
	b := Bounds{
		Min: [3]float32{m.Vertices[0], m.Vertices[1], m.Vertices[2]},
		Max: [3]float32{m.Vertices[0], m.Vertices[1], m.Vertices[2]},
	}
	for i := 3; i+2 < len(m.Vertices); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := m.Vertices[i+axis]
			if v < b.Min[axis] {
				b.Min[axis] = v
			}
			if v > b.Max[axis] {
				b.Max[axis] = v
			}
		}
	}
	return b
}

// White is the default vertex color.
var White = [4]float32{1, 1, 1, 1}

func fillColor(n int, c [4]float32) []float32 {
	out := make([]float32, 0, 4*n)
	for range n {
		out = append(out, c[0], c[1], c[2], c[3])
	}
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
