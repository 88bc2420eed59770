package webgl

import (
	"sort"

	"github.com/Faultbox/serverworld/internal/webgl/shaders"
)

// Program is a shader pair with its uniform types and attribute names.
// Sources are passed to the client untouched.
type Program struct {
	VertexShader   string            `json:"vertex_shader"`
	FragmentShader string            `json:"fragment_shader"`
	Uniforms       map[string]string `json:"uniforms"`
	Attributes     []string          `json:"attributes"`
}

// Basic returns the lit mesh program.
func Basic() Program {
	return Program{
		VertexShader:   shaders.BasicVertexShader,
		FragmentShader: shaders.BasicFragmentShader,
		Uniforms: map[string]string{
			"uModelMatrix":      "mat4",
			"uViewMatrix":       "mat4",
			"uProjectionMatrix": "mat4",
			"uNormalMatrix":     "mat3",
			"uLightPosition":    "vec3",
			"uLightColor":       "vec3",
			"uAmbientLight":     "vec3",
		},
		Attributes: []string{"aPosition", "aNormal", "aColor"},
	}
}

// Particle returns the point sprite program.
func Particle() Program {
	return Program{
		VertexShader:   shaders.ParticleVertexShader,
		FragmentShader: shaders.ParticleFragmentShader,
		Uniforms: map[string]string{
			"uViewMatrix":       "mat4",
			"uProjectionMatrix": "mat4",
			"uTime":             "float",
		},
		Attributes: []string{"aPosition", "aSize", "aColor", "aLife"},
	}
}

var programs = map[string]func() Program{
	"basic":    Basic,
	"particle": Particle,
}

// LookupProgram returns the program registered under name.
func LookupProgram(name string) (Program, bool) {
	fn, ok := programs[name]
	if !ok {
		return Program{}, false
	}
	return fn(), true
}

// ProgramNames lists the registered programs in sorted order.
func ProgramNames() []string {
	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
