package render

import (
	"github.com/taigrr/prism/pkg/math3d"
)

// Wireframe renders mesh edges as projected lines, bypassing the
// triangle pipeline. Used for x-ray views.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// DrawLine3D draws a line between two world-space points.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	x1, y1, _, vis1 := w.camera.WorldToScreen(p1, w.fb.Width, w.fb.Height)
	x2, y2, _, vis2 := w.camera.WorldToScreen(p2, w.fb.Width, w.fb.Height)

	// Only draw if at least one endpoint is visible; proper clipping is
	// the triangle pipeline's job.
	if !vis1 && !vis2 {
		return
	}

	w.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), color)
}

// EdgeMesh is anything that exposes triangle corners as world-space
// positions.
type EdgeMesh interface {
	TriangleCount() int
	TrianglePositions(i int) (a, b, c math3d.Vec3)
}

// DrawMesh draws every triangle edge of the mesh under the given
// transform.
func (w *Wireframe) DrawMesh(mesh EdgeMesh, transform math3d.Mat4, color Color) {
	for i := 0; i < mesh.TriangleCount(); i++ {
		a, b, c := mesh.TrianglePositions(i)
		v0 := transform.MulVec3(a)
		v1 := transform.MulVec3(b)
		v2 := transform.MulVec3(c)
		w.DrawLine3D(v0, v1, color)
		w.DrawLine3D(v1, v2, color)
		w.DrawLine3D(v2, v0, color)
	}
}
