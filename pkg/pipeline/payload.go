package pipeline

import "github.com/taigrr/prism/pkg/math3d"

// Payload is the contract every vertex payload flowing through a
// pipeline must satisfy. A payload carries a clip-space position plus
// any number of interpolable attributes (UVs, normals, colors, ...).
//
// Interpolation contract: Scale, Lerp, and Berp must apply the same
// weights to the position and to EVERY attribute. Perspective-correct
// rasterization depends on this — the pipeline divides whole payloads
// by w and later reconstructs them with Berp, so an attribute that
// interpolates differently from the position comes out warped.
//
// All three methods are value methods returning the combined payload,
// matching the math3d vector types.
type Payload[T any] interface {
	// Pos returns the homogeneous position.
	Pos() math3d.Vec4
	// SetPos returns a copy with the position replaced.
	SetPos(p math3d.Vec4) T
	// Scale multiplies position and all attributes by s.
	Scale(s float64) T
	// Lerp returns (1-alpha)*a + alpha*b componentwise, where the
	// receiver is a.
	Lerp(b T, alpha float64) T
	// Berp returns (bary.X*v0 + bary.Y*v1 + bary.Z*v2) * d
	// componentwise, where the receiver is v0.
	Berp(bary math3d.Vec3, v1, v2 T, d float64) T
}
