package primitives

// Info describes one primitive for the client's primitive picker.
type Info struct {
	Type        Kind     `json:"type"`
	Description string   `json:"description"`
	Parameters  []string `json:"parameters"`
}

// Catalog lists every primitive kind with its parameters.
func Catalog() []Info {
	out := make([]Info, 0, kindCount)
	for _, k := range Kinds() {
		out = append(out, describe(k))
	}
	return out
}

func describe(k Kind) Info {
	switch k {
	case Cube:
		return Info{k, "Basic cube primitive", []string{"size"}}
	case Sphere:
		return Info{k, "UV sphere primitive", []string{"radius", "segments", "rings"}}
	case Plane:
		return Info{k, "Flat plane primitive", []string{"width", "height", "width_segments", "height_segments"}}
	case Torus:
		return Info{k, "Closed torus around the Y axis", []string{"major_radius", "minor_radius", "major_segments", "minor_segments"}}
	case Icosphere:
		return Info{k, "Geodesic sphere from a subdivided icosahedron", []string{"radius", "subdivisions"}}
	case Terrain:
		return Info{k, "Heightmap terrain with height-banded colors", []string{"width", "height", "scale", "height_scale", "octaves"}}
	case Particles:
		return Info{k, "Random point cloud for particle systems", []string{"particle_count", "area_size", "height_range"}}
	default:
		return Info{Type: k}
	}
}
