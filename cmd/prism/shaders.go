package main

import (
	"image/color"
	"math"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/pipeline"
	"github.com/taigrr/prism/pkg/render"
)

// Light holds the directional light uniforms shared by the viewer
// shaders.
type Light struct {
	Dir     math3d.Vec3
	Ambient float64
	Diffuse float64
}

// DefaultLight is the light the viewer starts with.
func DefaultLight() Light {
	return Light{
		Dir:     math3d.V3(0.5, 1, 0.3).Normalize(),
		Ambient: 0.3,
		Diffuse: 0.7,
	}
}

// GouraudVertexShader transforms model-space vertices into clip space
// and computes per-vertex diffuse lighting. Camera, model matrix, and
// light are shader-owned uniforms; call Update after changing them.
type GouraudVertexShader struct {
	Surf   pipeline.Surface
	Camera *render.Camera
	Model  math3d.Mat4
	Light  Light

	mvp    math3d.Mat4
	normal math3d.Mat4
}

// NewGouraudVertexShader creates the shader with identity model matrix.
func NewGouraudVertexShader(surf pipeline.Surface, cam *render.Camera) *GouraudVertexShader {
	s := &GouraudVertexShader{
		Surf:   surf,
		Camera: cam,
		Model:  math3d.Identity(),
		Light:  DefaultLight(),
	}
	s.Update()
	return s
}

// Update recomputes the derived matrices from the uniforms.
func (s *GouraudVertexShader) Update() {
	s.mvp = s.Camera.ViewProjectionMatrix().Mul(s.Model)
	// Normal matrix: inverse transpose of the model matrix.
	s.normal = s.Model.Inverse().Transpose()
}

// Apply projects the vertex and bakes lighting into its color.
func (s *GouraudVertexShader) Apply(v pipeline.Vertex) pipeline.Vertex {
	n := s.normal.MulVec3Dir(v.Normal).Normalize()

	intensity := s.Light.Ambient + s.Light.Diffuse*math.Max(0, n.Dot(s.Light.Dir))

	return pipeline.Vertex{
		Position: s.mvp.MulVec4(v.Position),
		UV:       v.UV,
		Normal:   n,
		Color:    v.Color.Scale(intensity),
	}
}

// TexturedFragShader samples the texture and modulates it by the
// interpolated (lit) vertex color.
type TexturedFragShader struct {
	Surf pipeline.Surface
	Tex  *render.Texture
}

// Apply shades one fragment.
func (s *TexturedFragShader) Apply(v pipeline.Vertex) color.RGBA {
	return modulate(s.Tex.Sample(v.UV.X, v.UV.Y), v.Color)
}

// Update is a no-op; the texture needs no per-frame refresh.
func (s *TexturedFragShader) Update() {}

// FlatFragShader shades fragments with the interpolated vertex color
// over a base color.
type FlatFragShader struct {
	Surf pipeline.Surface
	Base render.Color
}

// Apply shades one fragment.
func (s *FlatFragShader) Apply(v pipeline.Vertex) color.RGBA {
	return modulate(s.Base, v.Color)
}

// Update is a no-op.
func (s *FlatFragShader) Update() {}

// modulate multiplies a color channelwise by a [0,1] vector, clamped.
func modulate(c render.Color, f math3d.Vec3) color.RGBA {
	return color.RGBA{
		R: clamp8(float64(c.R) * f.X),
		G: clamp8(float64(c.G) * f.Y),
		B: clamp8(float64(c.B) * f.Z),
		A: c.A,
	}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
