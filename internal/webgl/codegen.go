// Package webgl flattens meshes and scenes into the records the browser
// renderer uploads to its buffers, and serves the shader programs it
// compiles.
package webgl

import (
	"github.com/Faultbox/serverworld/internal/mesh"
	"github.com/Faultbox/serverworld/internal/scene"
	"github.com/Faultbox/serverworld/pkg/math"
)

// MeshData is a mesh in transport form.
type MeshData struct {
	Vertices    []float32   `json:"vertices"`
	Indices     []uint32    `json:"indices"`
	Normals     []float32   `json:"normals"`
	Colors      []float32   `json:"colors"`
	UVs         []float32   `json:"uvs"`
	VertexCount int         `json:"vertex_count"`
	IndexCount  int         `json:"index_count"`
	Topology    string      `json:"topology"`
	Bounds      mesh.Bounds `json:"bounds"`
}

// ObjectData is an object in transport form. ModelMatrix is column-major
// T·R·S and NormalMatrix the matching inverse-transpose 3x3.
type ObjectData struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Position     [3]float32     `json:"position"`
	Rotation     [3]float32     `json:"rotation"`
	Scale        [3]float32     `json:"scale"`
	Mesh         MeshData       `json:"mesh"`
	Material     map[string]any `json:"material"`
	Visible      bool           `json:"visible"`
	CustomData   map[string]any `json:"custom_data"`
	ModelMatrix  [16]float32    `json:"model_matrix"`
	NormalMatrix [9]float32     `json:"normal_matrix"`
}

// CameraData is a camera in transport form.
type CameraData struct {
	Position   [3]float32  `json:"position"`
	Target     [3]float32  `json:"target"`
	Up         [3]float32  `json:"up"`
	Fov        float32     `json:"fov"`
	Near       float32     `json:"near"`
	Far        float32     `json:"far"`
	ViewMatrix [16]float32 `json:"view_matrix"`
}

// SceneData is a whole scene in transport form.
type SceneData struct {
	SceneID         string              `json:"scene_id"`
	Name            string              `json:"name"`
	Objects         []ObjectData        `json:"objects"`
	Servers         []scene.ServerState `json:"servers"`
	Camera          CameraData          `json:"camera"`
	BackgroundColor [4]float32          `json:"background_color"`
	AmbientLight    [3]float32          `json:"ambient_light"`
}

// Mesh converts m. vertex_count is always len(vertices)/3.
func Mesh(m *mesh.Mesh) MeshData {
	if m == nil {
		return MeshData{Vertices: []float32{}, Indices: []uint32{}, Topology: mesh.Triangles.String()}
	}
	return MeshData{
		Vertices:    m.Vertices,
		Indices:     m.Indices,
		Normals:     m.Normals,
		Colors:      m.Colors,
		UVs:         m.UVs,
		VertexCount: m.VertexCount(),
		IndexCount:  m.IndexCount(),
		Topology:    m.Topology.String(),
		Bounds:      m.Bounds(),
	}
}

// Object converts o and computes its model matrix from position, XYZ
// Euler rotation and scale.
func Object(o scene.Object3D) ObjectData {
	model := ModelMatrix(o.Position, o.Rotation, o.Scale)
	return ObjectData{
		ID:           o.ID,
		Name:         o.Name,
		Position:     o.Position.Array(),
		Rotation:     o.Rotation.Array(),
		Scale:        o.Scale.Array(),
		Mesh:         Mesh(o.Mesh),
		Material:     o.Material,
		Visible:      o.Visible,
		CustomData:   o.CustomData,
		ModelMatrix:  model,
		NormalMatrix: model.NormalMatrix(),
	}
}

// ModelMatrix composes translation, rotation and scale.
func ModelMatrix(position, rotation, scale scene.Vector3) math.Mat4 {
	return math.TRS(
		math.V3(position.X, position.Y, position.Z),
		math.QuatFromEuler(rotation.X, rotation.Y, rotation.Z),
		math.V3(scale.X, scale.Y, scale.Z),
	)
}

// Camera converts c and computes its view matrix.
func Camera(c scene.Camera) CameraData {
	view := math.LookAt(
		math.V3(c.Position.X, c.Position.Y, c.Position.Z),
		math.V3(c.Target.X, c.Target.Y, c.Target.Z),
		math.V3(c.Up.X, c.Up.Y, c.Up.Z),
	)
	return CameraData{
		Position:   c.Position.Array(),
		Target:     c.Target.Array(),
		Up:         c.Up.Array(),
		Fov:        c.Fov,
		Near:       c.Near,
		Far:        c.Far,
		ViewMatrix: view,
	}
}

// Scene converts s with every object.
func Scene(s scene.Scene3D) SceneData {
	objects := make([]ObjectData, 0, len(s.Objects))
	for _, o := range s.Objects {
		objects = append(objects, Object(o))
	}
	servers := s.Servers
	if servers == nil {
		servers = []scene.ServerState{}
	}
	return SceneData{
		SceneID:         s.ID,
		Name:            s.Name,
		Objects:         objects,
		Servers:         servers,
		Camera:          Camera(s.Camera),
		BackgroundColor: s.BackgroundColor.RGBA(),
		AmbientLight:    s.AmbientLight.RGB(),
	}
}
