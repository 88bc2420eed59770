package mesh

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTorus(t *testing.T) {
	const R, r = float32(2), float32(0.5)
	m, err := Torus(R, r, 32, 16)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, 32*16, m.VertexCount())
	assert.Len(t, m.Indices, 6*32*16)
	assert.Len(t, m.Colors, 4*32*16)

	for i := range m.VertexCount() {
		v := vertexAt(m, i)
		axial := math32.Sqrt(v[0]*v[0] + v[2]*v[2])
		assert.GreaterOrEqual(t, axial, R-r-1e-4)
		assert.LessOrEqual(t, axial, R+r+1e-4)
		assert.InDelta(t, 1, length(normalAt(m, i)), tol)
	}
}

func TestTorusIndicesWrap(t *testing.T) {
	m, err := Torus(2, 1, 3, 2)
	require.NoError(t, err)

	// Last cell (i=2, j=1) wraps to row 0 and column 0.
	last := m.Indices[len(m.Indices)-6:]
	assert.Equal(t, []uint32{5, 1, 4, 1, 0, 4}, last)
}

func TestIcosphereBase(t *testing.T) {
	m, err := Icosphere(2, 0)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, 12, m.VertexCount())
	assert.Len(t, m.Indices, 60)
	assert.Equal(t, []uint32{0, 11, 5}, m.Indices[:3])
	for i := range m.VertexCount() {
		assert.InDelta(t, 2, length(vertexAt(m, i)), 1e-4)
	}
}

func TestIcosphereSubdivision(t *testing.T) {
	for n := 0; n <= 4; n++ {
		m, err := Icosphere(1.5, n)
		require.NoError(t, err)
		require.NoError(t, m.Validate())

		pow := 1 << (2 * n)
		assert.Equal(t, 10*pow+2, m.VertexCount(), "subdivisions=%d", n)
		assert.Len(t, m.Indices, 3*20*pow, "subdivisions=%d", n)

		for i := range m.VertexCount() {
			assert.InDelta(t, 1.5, length(vertexAt(m, i)), 1e-4)
			assert.InDelta(t, 1, length(normalAt(m, i)), tol)
		}
	}
}

func TestIcosphereOutwardWinding(t *testing.T) {
	m, err := Icosphere(1, 2)
	require.NoError(t, err)

	for tri := 0; tri < len(m.Indices); tri += 3 {
		a := vertexAt(m, int(m.Indices[tri]))
		b := vertexAt(m, int(m.Indices[tri+1]))
		c := vertexAt(m, int(m.Indices[tri+2]))
		e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		cross := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		centroid := [3]float32{a[0] + b[0] + c[0], a[1] + b[1] + c[1], a[2] + b[2] + c[2]}
		dot := cross[0]*centroid[0] + cross[1]*centroid[1] + cross[2]*centroid[2]
		assert.Greater(t, dot, float32(0), "face %d winds inward", tri/3)
	}
}

func TestIcosphereRejectsSubdivisions(t *testing.T) {
	for _, n := range []int{-1, MaxIcosphereSubdivisions + 1, 30, 1<<31 - 1} {
		m, err := Icosphere(1, n)
		assert.Nil(t, m, "subdivisions=%d", n)
		require.Error(t, err, "subdivisions=%d", n)
		var pe *ParamError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "subdivisions", pe.Param)
	}
}
