package mesh

import (
	"strconv"

	"github.com/chewxy/math32"

	"github.com/Faultbox/serverworld/pkg/math"
)

// Torus builds a closed torus around the Y axis. Rows and columns wrap, so
// no seam vertices are duplicated.
func Torus(majorRadius, minorRadius float32, majorSegments, minorSegments int) (*Mesh, error) {
	if err := requireNonNegative("major_radius", majorRadius); err != nil {
		return nil, err
	}
	if err := requireNonNegative("minor_radius", minorRadius); err != nil {
		return nil, err
	}
	if err := requirePositive("major_segments", majorSegments); err != nil {
		return nil, err
	}
	if err := requirePositive("minor_segments", minorSegments); err != nil {
		return nil, err
	}

	count := majorSegments * minorSegments
	vertices := make([]float32, 0, count*3)
	normals := make([]float32, 0, count*3)
	colors := make([]float32, 0, count*4)

	for i := 0; i < majorSegments; i++ {
		theta := float32(i) * 2 * math32.Pi / float32(majorSegments)
		sinTheta, cosTheta := math32.Sincos(theta)

		for j := 0; j < minorSegments; j++ {
			phi := float32(j) * 2 * math32.Pi / float32(minorSegments)
			sinPhi, cosPhi := math32.Sincos(phi)

			ring := majorRadius + minorRadius*cosPhi
			vertices = append(vertices, ring*cosTheta, minorRadius*sinPhi, ring*sinTheta)
			normals = append(normals, cosPhi*cosTheta, sinPhi, cosPhi*sinTheta)
			colors = append(colors, (cosTheta+1)*0.5, (sinPhi+1)*0.5, (cosPhi+1)*0.5, 1)
		}
	}

	indices := make([]uint32, 0, 6*count)
	for i := 0; i < majorSegments; i++ {
		next := (i + 1) % majorSegments
		for j := 0; j < minorSegments; j++ {
			nj := (j + 1) % minorSegments

			first := uint32(i*minorSegments + j)
			second := uint32(next*minorSegments + j)
			third := uint32(i*minorSegments + nj)
			fourth := uint32(next*minorSegments + nj)

			indices = append(indices,
				first, second, third,
				second, fourth, third,
			)
		}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Normals:  normals,
		Colors:   colors,
	}, nil
}

// goldenRatio is (1 + sqrt 5) / 2.
var goldenRatio = (1 + math32.Sqrt(5)) / 2

// icosahedronVertices are the 12 corners of a regular icosahedron before
// projection onto the sphere.
var icosahedronVertices = [12]math.Vec3{
	{X: -1, Y: goldenRatio, Z: 0}, {X: 1, Y: goldenRatio, Z: 0}, {X: -1, Y: -goldenRatio, Z: 0}, {X: 1, Y: -goldenRatio, Z: 0},
	{X: 0, Y: -1, Z: goldenRatio}, {X: 0, Y: 1, Z: goldenRatio}, {X: 0, Y: -1, Z: -goldenRatio}, {X: 0, Y: 1, Z: -goldenRatio},
	{X: goldenRatio, Y: 0, Z: -1}, {X: goldenRatio, Y: 0, Z: 1}, {X: -goldenRatio, Y: 0, Z: -1}, {X: -goldenRatio, Y: 0, Z: 1},
}

var icosahedronFaces = [20][3]uint32{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// MaxIcosphereSubdivisions bounds Icosphere refinement at 10*4^10+2
// vertices.
const MaxIcosphereSubdivisions = 10

// Icosphere builds a geodesic sphere: a regular icosahedron refined by
// subdivisions rounds of midpoint splitting. Each round turns every triangle
// into four and pushes the new vertices back onto the sphere, giving
// 10*4^n+2 vertices and 20*4^n faces. Zero subdivisions yields the bare
// icosahedron.
func Icosphere(radius float32, subdivisions int) (*Mesh, error) {
	if err := requireNonNegative("radius", radius); err != nil {
		return nil, err
	}
	if subdivisions < 0 {
		return nil, &ParamError{Param: "subdivisions", Value: subdivisions, Reason: "must not be negative"}
	}
	if subdivisions > MaxIcosphereSubdivisions {
		return nil, &ParamError{Param: "subdivisions", Value: subdivisions, Reason: "must be at most " + strconv.Itoa(MaxIcosphereSubdivisions)}
	}

	// Work on the unit sphere; scale once at the end.
	points := make([]math.Vec3, 0, 10*(1<<(2*subdivisions))+2)
	for _, v := range icosahedronVertices {
		points = append(points, v.Normalize())
	}
	faces := icosahedronFaces[:]

	for range subdivisions {
		midpoints := make(map[[2]uint32]uint32, len(faces)*3/2)
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{min(a, b), max(a, b)}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			idx := uint32(len(points))
			points = append(points, points[a].Midpoint(points[b]).Normalize())
			midpoints[key] = idx
			return idx
		}

		refined := make([][3]uint32, 0, len(faces)*4)
		for _, f := range faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			refined = append(refined,
				[3]uint32{f[0], ab, ca},
				[3]uint32{f[1], bc, ab},
				[3]uint32{f[2], ca, bc},
				[3]uint32{ab, bc, ca},
			)
		}
		faces = refined
	}

	vertices := make([]float32, 0, len(points)*3)
	normals := make([]float32, 0, len(points)*3)
	colors := make([]float32, 0, len(points)*4)
	for _, p := range points {
		vertices = p.Scale(radius).Append(vertices)
		normals = p.Append(normals)
		colors = append(colors, (p.X+1)*0.5, (p.Y+1)*0.5, (p.Z+1)*0.5, 1)
	}

	indices := make([]uint32, 0, len(faces)*3)
	for _, f := range faces {
		indices = append(indices, f[0], f[1], f[2])
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Normals:  normals,
		Colors:   colors,
	}, nil
}
