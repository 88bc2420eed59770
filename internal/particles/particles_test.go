package particles

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/serverworld/internal/mesh"
)

// fixedSource replays a fixed sequence.
type fixedSource struct {
	values []float32
	i      int
}

func (f *fixedSource) Float32() float32 {
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

func TestGenerate(t *testing.T) {
	opts := Options{Count: 500, AreaSize: 8, HeightMin: 1, HeightMax: 3}
	m, err := Generate(NewSource(42), opts)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, mesh.Points, m.Topology)
	assert.Equal(t, 500, m.VertexCount())
	assert.Nil(t, m.Normals)
	assert.Len(t, m.Colors, 4*500)

	for i, idx := range m.Indices {
		assert.Equal(t, uint32(i), idx)
	}

	for i := range m.VertexCount() {
		x, y, z := m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]
		assert.GreaterOrEqual(t, x, float32(-4))
		assert.LessOrEqual(t, x, float32(4))
		assert.GreaterOrEqual(t, z, float32(-4))
		assert.LessOrEqual(t, z, float32(4))
		assert.GreaterOrEqual(t, y, float32(1))
		assert.LessOrEqual(t, y, float32(3))
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	opts := DefaultOptions()
	a, err := Generate(NewSource(7), opts)
	require.NoError(t, err)
	b, err := Generate(NewSource(7), opts)
	require.NoError(t, err)
	c, err := Generate(NewSource(8), opts)
	require.NoError(t, err)

	assert.Equal(t, a.Vertices, b.Vertices)
	assert.Equal(t, a.Colors, b.Colors)
	assert.NotEqual(t, a.Vertices, c.Vertices)
}

func TestGenerateFixedSource(t *testing.T) {
	src := &fixedSource{values: []float32{0, 0.5, 1, 0.1}}
	m, err := Generate(src, Options{Count: 1, AreaSize: 10, HeightMin: 0, HeightMax: 4})
	require.NoError(t, err)

	assert.Equal(t, []float32{-5, 2, 5}, m.Vertices)
	assert.InDeltaSlice(t, []float32{1, 0.3, 0, 1}, m.Colors, 1e-6)
}

func TestHueRamp(t *testing.T) {
	tests := []struct {
		hue  float32
		want [4]float32
	}{
		{0, [4]float32{1, 0, 0, 1}},
		{0.33, [4]float32{1, 1, 0, 1}},
		{0.66, [4]float32{0, 1, 0, 1}},
		{0.99, [4]float32{0, 0.01, 0.99, 1}},
	}

	for _, tt := range tests {
		got := HueRamp(tt.hue)
		for i := range got {
			assert.InDelta(t, tt.want[i], got[i], 1e-5, "hue %v channel %d", tt.hue, i)
		}
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero count", Options{Count: 0, AreaSize: 1, HeightMax: 1}},
		{"negative area", Options{Count: 1, AreaSize: -1, HeightMax: 1}},
		{"inverted range", Options{Count: 1, AreaSize: 1, HeightMin: 2, HeightMax: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(NewSource(1), tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, mesh.ErrInvalidParams))
		})
	}
}
