package mesh

import "github.com/chewxy/math32"

// cubeFaces lists the 24 cube corners in units of the half extent, four per
// face in the order front, back, top, bottom, right, left.
var cubeFaces = [6]struct {
	normal  [3]float32
	corners [4][3]float32
}{
	{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{[3]float32{0, 0, -1}, [4][3]float32{{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}}},
	{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}}},
	{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}}},
	{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
}

// Cube builds an axis-aligned cube centered on the origin with edge length
// size. Faces do not share vertices so each keeps a flat normal.
func Cube(size float32) (*Mesh, error) {
	if err := requireNonNegative("size", size); err != nil {
		return nil, err
	}
	s := size / 2

	vertices := make([]float32, 0, 24*3)
	normals := make([]float32, 0, 24*3)
	indices := make([]uint32, 0, 36)

	for i, face := range cubeFaces {
		for _, c := range face.corners {
			vertices = append(vertices, c[0]*s, c[1]*s, c[2]*s)
			normals = append(normals, face.normal[0], face.normal[1], face.normal[2])
		}
		base := uint32(i * 4)
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Normals:  normals,
		Colors:   fillColor(24, White),
	}, nil
}

// Sphere builds a UV sphere of (rings+1)*(segments+1) vertices. The seam
// column and the pole rows are duplicated so every grid cell is a quad.
func Sphere(radius float32, segments, rings int) (*Mesh, error) {
	if err := requireNonNegative("radius", radius); err != nil {
		return nil, err
	}
	if err := requirePositive("segments", segments); err != nil {
		return nil, err
	}
	if err := requirePositive("rings", rings); err != nil {
		return nil, err
	}

	count := (rings + 1) * (segments + 1)
	vertices := make([]float32, 0, count*3)
	normals := make([]float32, 0, count*3)

	for ring := 0; ring <= rings; ring++ {
		theta := float32(ring) * math32.Pi / float32(rings)
		sinTheta, cosTheta := math32.Sincos(theta)

		for segment := 0; segment <= segments; segment++ {
			phi := float32(segment) * 2 * math32.Pi / float32(segments)
			sinPhi, cosPhi := math32.Sincos(phi)

			x := cosPhi * sinTheta
			y := cosTheta
			z := sinPhi * sinTheta

			vertices = append(vertices, x*radius, y*radius, z*radius)
			normals = append(normals, x, y, z)
		}
	}

	indices := make([]uint32, 0, 6*segments*rings)
	for ring := 0; ring < rings; ring++ {
		for segment := 0; segment < segments; segment++ {
			first := uint32(ring*(segments+1) + segment)
			second := first + uint32(segments) + 1

			indices = append(indices,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Normals:  normals,
		Colors:   fillColor(count, White),
	}, nil
}

// Plane builds a width x height grid in the XY plane facing +Z.
func Plane(width, height float32, widthSegments, heightSegments int) (*Mesh, error) {
	if err := requireNonNegative("width", width); err != nil {
		return nil, err
	}
	if err := requireNonNegative("height", height); err != nil {
		return nil, err
	}
	if err := requirePositive("width_segments", widthSegments); err != nil {
		return nil, err
	}
	if err := requirePositive("height_segments", heightSegments); err != nil {
		return nil, err
	}

	gridX := widthSegments + 1
	gridY := heightSegments + 1
	segmentWidth := width / float32(widthSegments)
	segmentHeight := height / float32(heightSegments)

	count := gridX * gridY
	vertices := make([]float32, 0, count*3)
	normals := make([]float32, 0, count*3)

	for iy := 0; iy < gridY; iy++ {
		y := float32(iy)*segmentHeight - height/2
		for ix := 0; ix < gridX; ix++ {
			x := float32(ix)*segmentWidth - width/2
			vertices = append(vertices, x, y, 0)
			normals = append(normals, 0, 0, 1)
		}
	}

	indices := make([]uint32, 0, 6*widthSegments*heightSegments)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(ix + gridX*iy)
			b := uint32(ix + gridX*(iy+1))
			c := uint32((ix + 1) + gridX*(iy+1))
			d := uint32((ix + 1) + gridX*iy)

			indices = append(indices,
				a, b, d,
				b, c, d,
			)
		}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Normals:  normals,
		Colors:   fillColor(count, White),
	}, nil
}
