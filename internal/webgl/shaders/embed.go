// Package shaders provides the embedded GLSL ES sources sent to the client.
package shaders

import _ "embed"

// BasicVertexShader transforms lit, vertex-colored meshes.
//
//go:embed basic.vert
var BasicVertexShader string

// BasicFragmentShader applies ambient plus one point light.
//
//go:embed basic.frag
var BasicFragmentShader string

// ParticleVertexShader sizes points by view depth and bobs them over time.
//
//go:embed particle.vert
var ParticleVertexShader string

// ParticleFragmentShader draws round, life-faded points.
//
//go:embed particle.frag
var ParticleFragmentShader string
