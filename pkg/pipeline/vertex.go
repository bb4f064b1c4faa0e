package pipeline

import "github.com/taigrr/prism/pkg/math3d"

// Vertex is the standard payload used by the default shaders, the model
// loaders, and the viewer: a clip-space position plus UV, normal, and
// color attributes, all interpolated in lockstep.
type Vertex struct {
	Position math3d.Vec4
	UV       math3d.Vec2
	Normal   math3d.Vec3
	Color    math3d.Vec3
}

// NewVertex creates a vertex from a 3D position with w=1 and zero
// attributes.
func NewVertex(pos math3d.Vec3) Vertex {
	return Vertex{Position: math3d.V4FromV3(pos, 1)}
}

// Pos returns the homogeneous position.
func (v Vertex) Pos() math3d.Vec4 {
	return v.Position
}

// SetPos returns a copy with the position replaced.
func (v Vertex) SetPos(p math3d.Vec4) Vertex {
	v.Position = p
	return v
}

// Scale multiplies position and all attributes by s.
func (v Vertex) Scale(s float64) Vertex {
	v.Position = v.Position.Scale(s)
	v.UV = v.UV.Scale(s)
	v.Normal = v.Normal.Scale(s)
	v.Color = v.Color.Scale(s)
	return v
}

// Lerp returns (1-alpha)*a + alpha*b componentwise.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Vertex) Lerp(b Vertex, alpha float64) Vertex {
	return Vertex{
		Position: a.Position.Lerp(b.Position, alpha),
		UV:       a.UV.Lerp(b.UV, alpha),
		Normal:   a.Normal.Lerp(b.Normal, alpha),
		Color:    a.Color.Lerp(b.Color, alpha),
	}
}

// Berp returns (bary.X*v0 + bary.Y*v1 + bary.Z*v2) * d componentwise,
// with the receiver as v0.
func (v0 Vertex) Berp(bary math3d.Vec3, v1, v2 Vertex, d float64) Vertex {
	return Vertex{
		Position: math3d.Blerp4(bary, v0.Position, v1.Position, v2.Position).Scale(d),
		UV:       math3d.Blerp2(bary, v0.UV, v1.UV, v2.UV).Scale(d),
		Normal:   math3d.Blerp3(bary, v0.Normal, v1.Normal, v2.Normal).Scale(d),
		Color:    math3d.Blerp3(bary, v0.Color, v1.Color, v2.Color).Scale(d),
	}
}
