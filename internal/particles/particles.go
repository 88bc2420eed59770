// Package particles generates point-cloud meshes for particle systems.
package particles

import (
	"math/rand/v2"

	"github.com/Faultbox/serverworld/internal/mesh"
)

// Source supplies uniform random numbers in [0, 1).
type Source interface {
	Float32() float32
}

// NewSource returns a seeded PCG source. Equal seeds yield equal particle
// systems.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Options controls particle system generation.
type Options struct {
	Count     int
	AreaSize  float32
	HeightMin float32
	HeightMax float32
}

// DefaultOptions returns the generator defaults.
func DefaultOptions() Options {
	return Options{
		Count:     1000,
		AreaSize:  10,
		HeightMin: 0,
		HeightMax: 5,
	}
}

// Generate scatters opts.Count particles uniformly over a square area of
// side AreaSize centered on the origin, with heights in
// [HeightMin, HeightMax]. The mesh uses point topology.
func Generate(src Source, opts Options) (*mesh.Mesh, error) {
	if opts.Count < 1 {
		return nil, &mesh.ParamError{Param: "particle_count", Value: opts.Count, Reason: "must be at least 1"}
	}
	if opts.AreaSize < 0 {
		return nil, &mesh.ParamError{Param: "area_size", Value: opts.AreaSize, Reason: "must not be negative"}
	}
	if opts.HeightMin > opts.HeightMax {
		return nil, &mesh.ParamError{
			Param:  "height_range",
			Value:  [2]float32{opts.HeightMin, opts.HeightMax},
			Reason: "minimum exceeds maximum",
		}
	}

	vertices := make([]float32, 0, opts.Count*3)
	colors := make([]float32, 0, opts.Count*4)
	indices := make([]uint32, 0, opts.Count)
	span := opts.HeightMax - opts.HeightMin

	for i := range opts.Count {
		x := (src.Float32() - 0.5) * opts.AreaSize
		y := src.Float32()*span + opts.HeightMin
		z := (src.Float32() - 0.5) * opts.AreaSize
		vertices = append(vertices, x, y, z)

		c := HueRamp(src.Float32())
		colors = append(colors, c[0], c[1], c[2], c[3])

		indices = append(indices, uint32(i))
	}

	return &mesh.Mesh{
		Vertices: vertices,
		Indices:  indices,
		Colors:   colors,
		Topology: mesh.Points,
	}, nil
}

// HueRamp maps hue in [0, 1) through red -> yellow -> green -> blue with
// breakpoints at 0.33 and 0.66.
func HueRamp(hue float32) [4]float32 {
	switch {
	case hue < 0.33:
		return [4]float32{1, hue * 3, 0, 1}
	case hue < 0.66:
		return [4]float32{1 - (hue-0.33)*3, 1, 0, 1}
	default:
		return [4]float32{0, 1 - (hue-0.66)*3, (hue - 0.66) * 3, 1}
	}
}
