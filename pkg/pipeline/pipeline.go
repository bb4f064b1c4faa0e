package pipeline

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// epsW is the smallest |w| accepted at the perspective divide.
// Triangles carrying a smaller w are dropped rather than divided.
const epsW = 1e-9

// Pipeline runs indexed triangle meshes through the shader context and
// rasterizes the survivors into the host surface:
//
//	vertex transform -> triangle assembly (+ back-face and trivial
//	frustum rejects) -> homogeneous clip -> geometry stage ->
//	perspective divide + screen map -> rasterize (+ depth test +
//	fragment stage + pixel write)
//
// Processing is synchronous and single-threaded; Submit returns once
// every pixel of the mesh has been plotted.
type Pipeline[VIn any, VOut Payload[VOut], GOut Payload[GOut]] struct {
	surf Surface

	// Ctx holds the shader triple. Callers may reach in to adjust
	// shader uniforms between submissions.
	Ctx Context[VIn, VOut, GOut]

	transformed []VOut // vertex stage output, reused across submissions
	clipped     []VOut // clipper scratch, reused across triangles
}

// New creates a pipeline rendering into surf with the given context.
func New[VIn any, VOut Payload[VOut], GOut Payload[GOut]](surf Surface, ctx Context[VIn, VOut, GOut]) *Pipeline[VIn, VOut, GOut] {
	return &Pipeline[VIn, VOut, GOut]{surf: surf, Ctx: ctx}
}

// Surface returns the host surface the pipeline draws into.
func (p *Pipeline[VIn, VOut, GOut]) Surface() Surface {
	return p.surf
}

// Submit runs the mesh through the full pipeline. It fails fast if the
// mesh shape invariants are violated and otherwise returns after every
// covered pixel has been plotted.
func (p *Pipeline[VIn, VOut, GOut]) Submit(mesh Mesh[VIn]) error {
	if err := mesh.validate(); err != nil {
		return err
	}

	// Vertex stage: transform each source vertex exactly once.
	if cap(p.transformed) < len(mesh.Vertices) {
		p.transformed = make([]VOut, len(mesh.Vertices))
	}
	p.transformed = p.transformed[:len(mesh.Vertices)]
	for i, v := range mesh.Vertices {
		p.transformed[i] = p.Ctx.Vertex.Apply(v)
	}

	// Assembly: group index triples, cull, and clip in index order.
	for idx := 0; idx+2 < len(mesh.Indices); idx += 3 {
		v0 := p.transformed[mesh.Indices[idx]]
		v1 := p.transformed[mesh.Indices[idx+1]]
		v2 := p.transformed[mesh.Indices[idx+2]]

		p0, p1, p2 := v0.Pos(), v1.Pos(), v2.Pos()

		if backFacing(p0, p1, p2) {
			continue
		}
		if trivialReject(p0, p1, p2) {
			continue
		}
		// All three vertices behind the camera.
		if p0.Z < 0 && p1.Z < 0 && p2.Z < 0 {
			continue
		}

		p.clipAndDraw(v0, v1, v2)
	}
	return nil
}

// backFacing reports whether the clip-space triangle winds away from
// the eye. Eye-facing triangles give a strictly negative dot. The
// source formulation normalizes -v0 first; the sign is unaffected, and
// skipping the normalize keeps the test defined when v0 sits at the
// origin.
func backFacing(p0, p1, p2 math3d.Vec4) bool {
	vv0, vv1, vv2 := p0.Vec3(), p1.Vec3(), p2.Vec3()
	n := vv1.Sub(vv0).Cross(vv2.Sub(vv0))
	return vv0.Negate().Dot(n) >= 0
}

// trivialReject reports whether all three vertices lie strictly beyond
// the same clip-space half-space on any axis.
func trivialReject(p0, p1, p2 math3d.Vec4) bool {
	if (p0.X > p0.W && p1.X > p1.W && p2.X > p2.W) ||
		(p0.X < -p0.W && p1.X < -p1.W && p2.X < -p2.W) {
		return true
	}
	if (p0.Y > p0.W && p1.Y > p1.W && p2.Y > p2.W) ||
		(p0.Y < -p0.W && p1.Y < -p1.W && p2.Y < -p2.W) {
		return true
	}
	if (p0.Z > p0.W && p1.Z > p1.W && p2.Z > p2.W) ||
		(p0.Z < -p0.W && p1.Z < -p1.W && p2.Z < -p2.W) {
		return true
	}
	return false
}

// clipAndDraw clips one triangle, fan-triangulates the resulting
// polygon, and sends each output triangle through the geometry stage,
// the screen map, and the rasterizer.
func (p *Pipeline[VIn, VOut, GOut]) clipAndDraw(v0, v1, v2 VOut) {
	p.clipped = clipTriangle(v0, v1, v2, p.clipped)

	for i := 1; i+1 < len(p.clipped); i++ {
		tri := p.Ctx.Geometry.Apply(Tri(p.clipped[0], p.clipped[i], p.clipped[i+1]))

		var ok bool
		if tri.A, ok = p.toScreen(tri.A); !ok {
			continue
		}
		if tri.B, ok = p.toScreen(tri.B); !ok {
			continue
		}
		if tri.C, ok = p.toScreen(tri.C); !ok {
			continue
		}

		p.drawTriangle(tri)
	}
}

// toScreen applies the perspective divide to the whole payload and maps
// the position into pixel coordinates (origin top-left, y down).
//
// After this step pos.XY are pixel coordinates, pos.W holds 1/w_clip,
// and every attribute holds attr_clip/w_clip. The divide via Scale
// would leave pos.W at 1/w^2, so it is overwritten to restore the
// invariant the rasterizer depends on.
func (p *Pipeline[VIn, VOut, GOut]) toScreen(v GOut) (GOut, bool) {
	pos := v.Pos()
	if math.Abs(pos.W) < epsW {
		return v, false
	}
	invW := 1 / pos.W

	v = v.Scale(invW)
	pos = v.Pos()
	pos.W = invW

	pos.X = ((pos.X + 1) * float64(p.surf.Width())) / 2
	pos.Y = ((-pos.Y + 1) * float64(p.surf.Height())) / 2

	return v.SetPos(pos), true
}
