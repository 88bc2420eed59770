package terrain

import (
	"github.com/Faultbox/serverworld/internal/mesh"
	"github.com/Faultbox/serverworld/pkg/math"
)

// BuildMesh creates a terrain mesh from a generated heightmap.
// The grid is centered on the origin and spans opts.Scale on X and Z.
func BuildMesh(opts Options) (*mesh.Mesh, error) {
	hm, err := BuildHeightmap(opts)
	if err != nil {
		return nil, err
	}
	return hm.Mesh(opts.HeightScale), nil
}

// Mesh triangulates the heightmap. heightScale sets the range used to
// pick each vertex's color band.
func (h *Heightmap) Mesh(heightScale float32) *mesh.Mesh {
	count := h.Width * h.Height
	vertices := make([]float32, 0, count*3)
	normals := make([]float32, 0, count*3)
	colors := make([]float32, 0, count*4)

	for y := range h.Height {
		for x := range h.Width {
			worldX := (float32(x) - float32(h.Width)/2) * h.Scale / float32(h.Width)
			worldZ := (float32(y) - float32(h.Height)/2) * h.Scale / float32(h.Height)
			worldY := h.Heights[y][x]

			vertices = append(vertices, worldX, worldY, worldZ)
			normals = h.normal(x, y).Append(normals)

			c := bandColor(worldY, heightScale)
			colors = append(colors, c[0], c[1], c[2], c[3])
		}
	}

	indices := make([]uint32, 0, 6*(h.Width-1)*(h.Height-1))
	for y := 0; y < h.Height-1; y++ {
		for x := 0; x < h.Width-1; x++ {
			topLeft := uint32(y*h.Width + x)
			topRight := uint32(y*h.Width + x + 1)
			bottomLeft := uint32((y+1)*h.Width + x)
			bottomRight := uint32((y+1)*h.Width + x + 1)

			indices = append(indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}

	return &mesh.Mesh{
		Vertices: vertices,
		Indices:  indices,
		Normals:  normals,
		Colors:   colors,
	}
}

// normal estimates the surface normal with central differences. Border
// samples lack a neighbor on one side and point straight up.
func (h *Heightmap) normal(x, y int) math.Vec3 {
	if x == 0 || y == 0 || x == h.Width-1 || y == h.Height-1 {
		return math.Vec3{X: 0, Y: 1, Z: 0}
	}
	dx := h.Heights[y][x+1] - h.Heights[y][x-1]
	dz := h.Heights[y+1][x] - h.Heights[y-1][x]
	return math.Vec3{X: -dx, Y: 2, Z: -dz}.Normalize()
}

func bandColor(worldY, heightScale float32) [4]float32 {
	ratio := (worldY + heightScale) / (2 * heightScale)
	switch {
	case ratio < 0.3:
		return WaterColor
	case ratio < 0.6:
		return GrassColor
	default:
		return MountainColor
	}
}
