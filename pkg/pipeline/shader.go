package pipeline

import "image/color"

// Shader is one programmable stage: a stateful callable from In to Out.
// Shaders are constructed against the host surface and own their
// uniforms (matrices, lights, camera). The pipeline never mutates
// shader state during a submission; callers adjust uniforms between
// submissions and call Update to refresh derived state.
type Shader[In, Out any] interface {
	Apply(in In) Out
	Update()
}

// Context composes the three shader slots of a pipeline. The vertex
// stage output type doubles as the geometry stage's per-vertex input,
// and the geometry output payload is what the rasterizer interpolates
// and feeds to the fragment stage.
type Context[VIn any, VOut Payload[VOut], GOut Payload[GOut]] struct {
	Vertex   Shader[VIn, VOut]
	Geometry Shader[Triangle[VOut], Triangle[GOut]]
	Fragment Shader[GOut, color.RGBA]
}

// Update refreshes the uniforms of all three stages.
func (c *Context[VIn, VOut, GOut]) Update() {
	c.Vertex.Update()
	c.Geometry.Update()
	c.Fragment.Update()
}

// DefaultVertexShader passes vertices through unchanged.
type DefaultVertexShader struct {
	Surf Surface
}

// Apply returns the input vertex unchanged.
func (s *DefaultVertexShader) Apply(v Vertex) Vertex { return v }

// Update is a no-op; the default shader has no uniforms.
func (s *DefaultVertexShader) Update() {}

// DefaultGeometryShader passes triangles through unchanged.
type DefaultGeometryShader struct {
	Surf Surface
}

// Apply returns the input triangle unchanged.
func (s *DefaultGeometryShader) Apply(tri Triangle[Vertex]) Triangle[Vertex] { return tri }

// Update is a no-op; the default shader has no uniforms.
func (s *DefaultGeometryShader) Update() {}

// DefaultFragmentShader shades every fragment opaque black.
type DefaultFragmentShader struct {
	Surf Surface
}

// Apply returns opaque black for any fragment.
func (s *DefaultFragmentShader) Apply(Vertex) color.RGBA { return color.RGBA{A: 255} }

// Update is a no-op; the default shader has no uniforms.
func (s *DefaultFragmentShader) Update() {}

// DefaultContext builds a context of pass-through vertex and geometry
// stages and a black fragment stage, making a pipeline usable without
// custom shaders.
func DefaultContext(surf Surface) Context[Vertex, Vertex, Vertex] {
	return Context[Vertex, Vertex, Vertex]{
		Vertex:   &DefaultVertexShader{Surf: surf},
		Geometry: &DefaultGeometryShader{Surf: surf},
		Fragment: &DefaultFragmentShader{Surf: surf},
	}
}
