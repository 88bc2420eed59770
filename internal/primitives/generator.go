package primitives

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Faultbox/serverworld/internal/mesh"
	"github.com/Faultbox/serverworld/internal/particles"
	"github.com/Faultbox/serverworld/internal/terrain"
)

// Limits bounds the work a single generation request may ask for.
// Zero fields are unlimited.
type Limits struct {
	MaxSegments     int // sphere/plane/torus segment and ring counts
	MaxSubdivisions int // icosphere refinement rounds
	MaxTerrainSize  int // terrain grid width and height
	MaxParticles    int // particle count
}

// DefaultLimits returns conservative limits for a public endpoint.
func DefaultLimits() Limits {
	return Limits{
		MaxSegments:     256,
		MaxSubdivisions: 6,
		MaxTerrainSize:  512,
		MaxParticles:    100000,
	}
}

// Generator dispatches primitive kinds to their mesh builders.
type Generator struct {
	Limits Limits

	// NewSource returns the random source for one particle request.
	NewSource func() particles.Source
}

// NewGenerator creates a generator. A non-zero seed makes particle output
// reproducible across requests; zero seeds each request from the clock.
func NewGenerator(limits Limits, seed uint64) *Generator {
	return &Generator{
		Limits: limits,
		NewSource: func() particles.Source {
			if seed != 0 {
				return particles.NewSource(seed)
			}
			return particles.NewSource(uint64(time.Now().UnixNano()))
		},
	}
}

// Generate builds the mesh for kind from params. Parameters whose mesh
// would hold non-finite values are rejected.
func (g *Generator) Generate(kind Kind, params Params) (*mesh.Mesh, error) {
	m, err := g.build(kind, params)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", mesh.ErrInvalidParams, kind, err)
	}
	return m, nil
}

func (g *Generator) build(kind Kind, params Params) (*mesh.Mesh, error) {
	switch kind {
	case Cube:
		return g.cube(params)
	case Sphere:
		return g.sphere(params)
	case Plane:
		return g.plane(params)
	case Torus:
		return g.torus(params)
	case Icosphere:
		return g.icosphere(params)
	case Terrain:
		return g.terrain(params)
	case Particles:
		return g.particles(params)
	default:
		return nil, &UnknownKindError{Name: kind.String()}
	}
}

// GenerateByName parses name and generates the mesh.
func (g *Generator) GenerateByName(name string, params Params) (*mesh.Mesh, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return g.Generate(kind, params)
}

func (g *Generator) cube(p Params) (*mesh.Mesh, error) {
	size, err := p.Float("size", 1)
	if err != nil {
		return nil, err
	}
	return mesh.Cube(size)
}

func (g *Generator) sphere(p Params) (*mesh.Mesh, error) {
	var d decoder
	radius := d.float(p, "radius", 1)
	segments := d.count(p, "segments", 16, g.Limits.MaxSegments)
	rings := d.count(p, "rings", 16, g.Limits.MaxSegments)
	if d.err != nil {
		return nil, d.err
	}
	return mesh.Sphere(radius, segments, rings)
}

func (g *Generator) plane(p Params) (*mesh.Mesh, error) {
	var d decoder
	width := d.float(p, "width", 1)
	height := d.float(p, "height", 1)
	widthSegments := d.count(p, "width_segments", 1, g.Limits.MaxSegments)
	heightSegments := d.count(p, "height_segments", 1, g.Limits.MaxSegments)
	if d.err != nil {
		return nil, d.err
	}
	return mesh.Plane(width, height, widthSegments, heightSegments)
}

func (g *Generator) torus(p Params) (*mesh.Mesh, error) {
	var d decoder
	majorRadius := d.float(p, "major_radius", 2)
	minorRadius := d.float(p, "minor_radius", 1)
	majorSegments := d.count(p, "major_segments", 32, g.Limits.MaxSegments)
	minorSegments := d.count(p, "minor_segments", 16, g.Limits.MaxSegments)
	if d.err != nil {
		return nil, d.err
	}
	return mesh.Torus(majorRadius, minorRadius, majorSegments, minorSegments)
}

func (g *Generator) icosphere(p Params) (*mesh.Mesh, error) {
	var d decoder
	radius := d.float(p, "radius", 1)
	subdivisions := d.count(p, "subdivisions", 2, g.Limits.MaxSubdivisions)
	if d.err != nil {
		return nil, d.err
	}
	return mesh.Icosphere(radius, subdivisions)
}

func (g *Generator) terrain(p Params) (*mesh.Mesh, error) {
	def := terrain.DefaultOptions()
	var d decoder
	opts := terrain.Options{
		Width:       d.count(p, "width", def.Width, g.Limits.MaxTerrainSize),
		Height:      d.count(p, "height", def.Height, g.Limits.MaxTerrainSize),
		Scale:       d.float(p, "scale", def.Scale),
		HeightScale: d.float(p, "height_scale", def.HeightScale),
		Octaves:     d.count(p, "octaves", def.Octaves, 16),
	}
	if d.err != nil {
		return nil, d.err
	}
	return terrain.BuildMesh(opts)
}

func (g *Generator) particles(p Params) (*mesh.Mesh, error) {
	def := particles.DefaultOptions()
	var d decoder
	count := d.count(p, "particle_count", def.Count, g.Limits.MaxParticles)
	area := d.float(p, "area_size", def.AreaSize)
	heightRange := d.rng(p, "height_range", [2]float32{def.HeightMin, def.HeightMax})
	if d.err != nil {
		return nil, d.err
	}
	return particles.Generate(g.NewSource(), particles.Options{
		Count:     count,
		AreaSize:  area,
		HeightMin: heightRange[0],
		HeightMax: heightRange[1],
	})
}

// decoder reads several parameters and keeps the first error.
type decoder struct {
	err error
}

func (d *decoder) float(p Params, name string, def float32) float32 {
	if d.err != nil {
		return def
	}
	v, err := p.Float(name, def)
	d.err = err
	return v
}

func (d *decoder) count(p Params, name string, def, limit int) int {
	if d.err != nil {
		return def
	}
	v, err := p.Int(name, def)
	if err != nil {
		d.err = err
		return def
	}
	if limit > 0 && v > limit {
		d.err = &mesh.ParamError{Param: name, Value: v, Reason: "exceeds limit " + strconv.Itoa(limit)}
	}
	return v
}

func (d *decoder) rng(p Params, name string, def [2]float32) [2]float32 {
	if d.err != nil {
		return def
	}
	v, err := p.Range(name, def)
	d.err = err
	return v
}
