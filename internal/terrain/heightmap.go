package terrain

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/serverworld/internal/mesh"
)

// BuildHeightmap sums octaves of sin/cos waves into a height x width field.
// Each octave halves the amplitude and doubles the frequency, starting at 1.
// This is a deterministic fractal approximation, not gradient noise.
func BuildHeightmap(opts Options) (*Heightmap, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	heights := make([][]float32, opts.Height)
	for y := range opts.Height {
		heights[y] = make([]float32, opts.Width)
		for x := range opts.Width {
			var value float32
			amplitude := float32(1)
			frequency := float32(1)

			for range opts.Octaves {
				nx := float32(x) * frequency / float32(opts.Width)
				ny := float32(y) * frequency / float32(opts.Height)
				value += amplitude * math32.Sin(nx*2*math32.Pi) * math32.Cos(ny*2*math32.Pi)
				amplitude *= 0.5
				frequency *= 2
			}

			heights[y][x] = value * opts.HeightScale
		}
	}

	return &Heightmap{
		Heights: heights,
		Width:   opts.Width,
		Height:  opts.Height,
		Scale:   opts.Scale,
	}, nil
}

// At returns the raw sample at grid column x, row y, clamped to the grid.
func (h *Heightmap) At(x, y int) float32 {
	x = clampi(x, 0, h.Width-1)
	y = clampi(y, 0, h.Height-1)
	return h.Heights[y][x]
}

// HeightAt returns the bilinearly interpolated height at a world position.
// Positions outside the grid are clamped to its edge.
func (h *Heightmap) HeightAt(worldX, worldZ float32) float32 {
	// Invert x' = (x - w/2) * scale / w.
	fx := worldX*float32(h.Width)/h.Scale + float32(h.Width)/2
	fz := worldZ*float32(h.Height)/h.Scale + float32(h.Height)/2

	fx = clampf(fx, 0, float32(h.Width-1))
	fz = clampf(fz, 0, float32(h.Height-1))

	x0 := int(fx)
	z0 := int(fz)
	fracX := fx - float32(x0)
	fracZ := fz - float32(z0)

	// Lerp along X on both rows, then along Z.
	near := h.At(x0, z0)*(1-fracX) + h.At(x0+1, z0)*fracX
	far := h.At(x0, z0+1)*(1-fracX) + h.At(x0+1, z0+1)*fracX
	return near*(1-fracZ) + far*fracZ
}

func (o Options) validate() error {
	if o.Width < 2 {
		return &mesh.ParamError{Param: "width", Value: o.Width, Reason: "must be at least 2"}
	}
	if o.Height < 2 {
		return &mesh.ParamError{Param: "height", Value: o.Height, Reason: "must be at least 2"}
	}
	if o.Octaves < 1 {
		return &mesh.ParamError{Param: "octaves", Value: o.Octaves, Reason: "must be at least 1"}
	}
	if !(o.Scale > 0) {
		return &mesh.ParamError{Param: "scale", Value: o.Scale, Reason: "must be positive"}
	}
	if !(o.HeightScale > 0) {
		return &mesh.ParamError{Param: "height_scale", Value: o.HeightScale, Reason: "must be positive"}
	}
	return nil
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampi(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
