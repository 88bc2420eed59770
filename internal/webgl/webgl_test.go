package webgl

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/serverworld/internal/mesh"
	"github.com/Faultbox/serverworld/internal/particles"
	"github.com/Faultbox/serverworld/internal/scene"
)

func TestMeshCounts(t *testing.T) {
	sphere, err := mesh.Sphere(1, 8, 6)
	require.NoError(t, err)

	data := Mesh(sphere)
	assert.Equal(t, len(sphere.Vertices)/3, data.VertexCount)
	assert.Equal(t, len(sphere.Indices), data.IndexCount)
	assert.Equal(t, "triangles", data.Topology)
	assert.InDelta(t, 1, data.Bounds.Max[1], 1e-5)
}

func TestMeshJSONShape(t *testing.T) {
	cube, err := mesh.Cube(2)
	require.NoError(t, err)

	raw, err := json.Marshal(Mesh(cube))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"vertices", "indices", "normals", "colors", "uvs", "vertex_count", "index_count"} {
		assert.Contains(t, decoded, key)
	}
	assert.Nil(t, decoded["uvs"], "absent buffer encodes as null")
	assert.EqualValues(t, 24, decoded["vertex_count"])
	assert.EqualValues(t, 36, decoded["index_count"])
}

func TestMeshPoints(t *testing.T) {
	cloud, err := particles.Generate(particles.NewSource(7), particles.Options{Count: 5, AreaSize: 1, HeightMax: 1})
	require.NoError(t, err)
	data := Mesh(cloud)
	assert.Equal(t, "points", data.Topology)
	assert.Equal(t, 5, data.VertexCount)
}

func TestObjectModelMatrix(t *testing.T) {
	cube, err := mesh.Cube(1)
	require.NoError(t, err)
	obj := scene.NewObject3D("Box", cube)
	obj.ID = "box"
	obj.Position = scene.Vector3{X: 1, Y: 2, Z: 3}
	obj.Scale = scene.Vector3{X: 2, Y: 2, Z: 2}

	data := Object(obj)
	assert.Equal(t, [3]float32{1, 2, 3}, data.Position)
	assert.Equal(t, [3]float32{2, 2, 2}, data.Scale)
	assert.Equal(t, float32(2), data.ModelMatrix[0])
	assert.Equal(t, float32(1), data.ModelMatrix[12])
	assert.Equal(t, float32(2), data.ModelMatrix[13])
	assert.Equal(t, float32(3), data.ModelMatrix[14])
	assert.InDelta(t, 0.5, data.NormalMatrix[0], 1e-5)
	assert.True(t, data.Visible)
}

func TestObjectRotation(t *testing.T) {
	cube, err := mesh.Cube(1)
	require.NoError(t, err)
	obj := scene.NewObject3D("Box", cube)
	obj.Rotation = scene.Vector3{Y: 1.5707964}

	m := ModelMatrix(obj.Position, obj.Rotation, obj.Scale)
	// Image of +x is the first column.
	p := [3]float32{m[0], m[1], m[2]}
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, -1, p[2], 1e-5)
}

func TestScene(t *testing.T) {
	sc, err := scene.DemoScene()
	require.NoError(t, err)

	data := Scene(sc)
	assert.Equal(t, scene.DemoSceneID, data.SceneID)
	require.Len(t, data.Objects, 2)
	assert.Equal(t, [4]float32{0.1, 0.1, 0.1, 1}, data.BackgroundColor)
	assert.Equal(t, [3]float32{0.2, 0.2, 0.2}, data.AmbientLight)
	assert.NotNil(t, data.Servers)

	// Camera at z=10 looking at the origin: view translation is -10 on z.
	assert.InDelta(t, -10, data.Camera.ViewMatrix[14], 1e-5)
	assert.Equal(t, float32(75), data.Camera.Fov)
}

func TestPrograms(t *testing.T) {
	basic := Basic()
	assert.True(t, strings.Contains(basic.VertexShader, "uNormalMatrix"))
	assert.True(t, strings.Contains(basic.FragmentShader, "gl_FragColor"))
	assert.Equal(t, "mat3", basic.Uniforms["uNormalMatrix"])
	assert.Equal(t, []string{"aPosition", "aNormal", "aColor"}, basic.Attributes)

	particle := Particle()
	assert.Contains(t, particle.VertexShader, "gl_PointSize")
	assert.Contains(t, particle.FragmentShader, "discard")
	assert.Equal(t, "float", particle.Uniforms["uTime"])
	assert.Len(t, particle.Attributes, 4)

	for _, name := range ProgramNames() {
		p, ok := LookupProgram(name)
		assert.True(t, ok)
		for _, attr := range p.Attributes {
			assert.Contains(t, p.VertexShader, "attribute ")
			assert.Contains(t, p.VertexShader, attr)
		}
	}
	_, ok := LookupProgram("toon")
	assert.False(t, ok)
}
