package pipeline

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
)

// solidFragShader shades every fragment a fixed color.
type solidFragShader struct {
	c color.RGBA
}

func (s *solidFragShader) Apply(Vertex) color.RGBA { return s.c }
func (s *solidFragShader) Update()                 {}

// captureFragShader records every fragment payload it shades.
type captureFragShader struct {
	frags []Vertex
}

func (s *captureFragShader) Apply(v Vertex) color.RGBA {
	s.frags = append(s.frags, v)
	return color.RGBA{255, 255, 255, 255}
}
func (s *captureFragShader) Update() {}

// recordTarget wraps a render target and records plot coordinates in
// emission order.
type recordTarget struct {
	*render.Target
	plots [][2]int
}

func (r *recordTarget) Plot(x, y int, c color.RGBA) {
	r.plots = append(r.plots, [2]int{x, y})
	r.Target.Plot(x, y, c)
}

func solidPipeline(target *render.Target, c color.RGBA) *Pipeline[Vertex, Vertex, Vertex] {
	ctx := DefaultContext(target)
	ctx.Fragment = &solidFragShader{c: c}
	return New[Vertex](target, ctx)
}

// quad builds two counter-clockwise triangles covering the NDC
// rectangle [x0,x1]x[y0,y1] at the given clip z and w. Clip-space
// coordinates are NDC scaled by w.
func quad(x0, y0, x1, y1, z, w float64) Mesh[Vertex] {
	return NewMesh(
		[]Vertex{
			clipVertex(x0*w, y0*w, z, w),
			clipVertex(x1*w, y0*w, z, w),
			clipVertex(x1*w, y1*w, z, w),
			clipVertex(x0*w, y1*w, z, w),
		},
		[]uint32{0, 1, 2, 0, 2, 3},
	)
}

func countColor(fb *render.Framebuffer, c color.RGBA) int {
	n := 0
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if fb.GetPixel(x, y) == c {
				n++
			}
		}
	}
	return n
}

// Full-screen quad with a white fragment shader: every pixel plotted
// white, depth buffer filled with 1.0.
func TestSubmitFullScreenQuad(t *testing.T) {
	target := render.NewTarget(800, 600)
	white := color.RGBA{255, 255, 255, 255}
	p := solidPipeline(target, white)

	if err := p.Submit(quad(-1, -1, 1, 1, 0.5, 1)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	for y := 0; y < target.Height(); y++ {
		for x := 0; x < target.Width(); x++ {
			if got := target.FB.GetPixel(x, y); got != white {
				t.Fatalf("pixel (%d, %d) = %v, want white", x, y, got)
			}
			if d := target.Depth.At(x, y); math.Abs(d-1.0) > 1e-12 {
				t.Fatalf("depth (%d, %d) = %v, want 1.0", x, y, d)
			}
		}
	}
}

// Two overlapping quads at different eye depths: the nearer one wins
// the overlap, depth values never increase.
func TestSubmitOcclusion(t *testing.T) {
	target := render.NewTarget(200, 100)
	red := color.RGBA{255, 0, 0, 255}
	green := color.RGBA{0, 255, 0, 255}

	p := solidPipeline(target, red)

	// Far quad: NDC x in [-1, 0.5] at w=2 (eye depth 2).
	if err := p.Submit(quad(-1, -1, 0.5, 1, 1, 2)); err != nil {
		t.Fatalf("Submit far quad: %v", err)
	}

	// Snapshot depth to verify the test-and-set never raises a cell.
	before := make([]float64, target.Width()*target.Height())
	for y := 0; y < target.Height(); y++ {
		for x := 0; x < target.Width(); x++ {
			before[y*target.Width()+x] = target.Depth.At(x, y)
		}
	}

	// Near quad: NDC x in [-0.5, 1] at w=1 (eye depth 1).
	p.Ctx.Fragment = &solidFragShader{c: green}
	if err := p.Submit(quad(-0.5, -1, 1, 1, 0.25, 1)); err != nil {
		t.Fatalf("Submit near quad: %v", err)
	}

	// NDC x=-0.5 maps to screen x=50, x=0.5 to 150.
	if got := target.FB.GetPixel(20, 50); got != red {
		t.Errorf("red-only region pixel = %v, want red", got)
	}
	if got := target.FB.GetPixel(100, 50); got != green {
		t.Errorf("overlap pixel = %v, want green", got)
	}
	if got := target.FB.GetPixel(170, 50); got != green {
		t.Errorf("green-only region pixel = %v, want green", got)
	}

	if d := target.Depth.At(100, 50); math.Abs(d-1.0) > 1e-12 {
		t.Errorf("overlap depth = %v, want 1.0", d)
	}
	if d := target.Depth.At(20, 50); math.Abs(d-2.0) > 1e-12 {
		t.Errorf("red-only depth = %v, want 2.0", d)
	}

	for y := 0; y < target.Height(); y++ {
		for x := 0; x < target.Width(); x++ {
			if target.Depth.At(x, y) > before[y*target.Width()+x] {
				t.Fatalf("depth at (%d, %d) increased", x, y)
			}
		}
	}
}

// A triangle spanning the left and right planes is clipped before
// rasterization; pixels stay inside the screen and in its top half.
func TestSubmitClippedTriangle(t *testing.T) {
	target := render.NewTarget(100, 100)
	rec := &recordTarget{Target: target}
	ctx := DefaultContext(rec)
	ctx.Fragment = &solidFragShader{c: color.RGBA{255, 255, 255, 255}}
	p := New[Vertex](rec, ctx)

	mesh := NewMesh(
		[]Vertex{
			clipVertex(-2, 0, 0.5, 1),
			clipVertex(2, 0, 0.5, 1),
			clipVertex(0, 2, 0.5, 1),
		},
		[]uint32{0, 1, 2},
	)
	if err := p.Submit(mesh); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(rec.plots) == 0 {
		t.Fatal("clipped triangle plotted no pixels")
	}
	for _, pt := range rec.plots {
		if pt[0] < 0 || pt[0] >= 100 || pt[1] < 0 || pt[1] >= 100 {
			t.Fatalf("pixel (%d, %d) outside the surface", pt[0], pt[1])
		}
		// The triangle occupies NDC y >= 0, i.e. the top half.
		if pt[1] > 50 {
			t.Fatalf("pixel (%d, %d) below the triangle's NDC extent", pt[0], pt[1])
		}
	}
}

// barycentric2D is an independent reimplementation used to compute
// expected interpolation values in tests.
func barycentric2D(ax, ay, bx, by, cx, cy, px, py float64) (l0, l1, l2 float64) {
	v0x, v0y := bx-ax, by-ay
	v1x, v1y := cx-ax, cy-ay
	v2x, v2y := px-ax, py-ay
	d00 := v0x*v0x + v0y*v0y
	d01 := v0x*v1x + v0y*v1y
	d11 := v1x*v1x + v1y*v1y
	d20 := v2x*v0x + v2y*v0y
	d21 := v2x*v1x + v2y*v1y
	denom := d00*d11 - d01*d01
	l1 = (d11*d20 - d01*d21) / denom
	l2 = (d00*d21 - d01*d20) / denom
	return 1 - l1 - l2, l1, l2
}

// Perspective-correct UV interpolation across a triangle with strongly
// varying w, checked against the reconstruction formula and against the
// (wrong) affine result.
func TestSubmitPerspectiveCorrectUV(t *testing.T) {
	const size = 100
	target := render.NewTarget(size, size)
	rec := &recordTarget{Target: target}

	capture := &captureFragShader{}
	ctx := DefaultContext(rec)
	ctx.Fragment = capture
	p := New[Vertex](rec, ctx)

	// Near vertex at w=1, far vertices at w=10.
	a := clipVertex(-0.5, -0.5, 0.5, 1)
	a.UV = math3d.V2(0, 0)
	b := clipVertex(5, -5, 5, 10)
	b.UV = math3d.V2(1, 0)
	c := clipVertex(0, 5, 5, 10)
	c.UV = math3d.V2(0, 1)

	if err := p.Submit(NewMesh([]Vertex{a, b, c}, []uint32{0, 1, 2})); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(rec.plots) == 0 || len(rec.plots) != len(capture.frags) {
		t.Fatalf("plots %d, frags %d; want equal and nonzero", len(rec.plots), len(capture.frags))
	}

	// Screen positions: a -> (25, 75), b -> (75, 75), c -> (50, 25).
	ax, ay := 25.0, 75.0
	bx, by := 75.0, 75.0
	cx, cy := 50.0, 25.0
	invW := [3]float64{1, 0.1, 0.1}
	uvs := [3]math3d.Vec2{a.UV, b.UV, c.UV}

	// Interior pixel near the screen centroid.
	px, py := 50, 58
	sampleX, sampleY := float64(px)+0.5, float64(py)+0.5

	var got *Vertex
	for i, pt := range rec.plots {
		if pt[0] == px && pt[1] == py {
			got = &capture.frags[i]
			break
		}
	}
	if got == nil {
		t.Fatalf("no fragment recorded at (%d, %d)", px, py)
	}

	l0, l1, l2 := barycentric2D(ax, ay, bx, by, cx, cy, sampleX, sampleY)
	oneOverW := l0*invW[0] + l1*invW[1] + l2*invW[2]
	wEye := 1 / oneOverW

	wantU := (l0*uvs[0].X*invW[0] + l1*uvs[1].X*invW[1] + l2*uvs[2].X*invW[2]) * wEye
	wantV := (l0*uvs[0].Y*invW[0] + l1*uvs[1].Y*invW[1] + l2*uvs[2].Y*invW[2]) * wEye

	if math.Abs(got.UV.X-wantU) > 1e-4 || math.Abs(got.UV.Y-wantV) > 1e-4 {
		t.Errorf("UV at (%d, %d) = (%v, %v), want (%v, %v)", px, py, got.UV.X, got.UV.Y, wantU, wantV)
	}

	// The affine result must differ visibly, or the test proves nothing.
	affineU := l0*uvs[0].X + l1*uvs[1].X + l2*uvs[2].X
	if math.Abs(affineU-wantU) < 0.01 {
		t.Fatalf("test triangle too flat: affine %v vs perspective %v", affineU, wantU)
	}
}

// Reconstructed barycentric weights sum to 1: a constant attribute
// passes through perspective division and Berp unchanged.
func TestSubmitWeightSum(t *testing.T) {
	target := render.NewTarget(100, 100)
	capture := &captureFragShader{}
	ctx := DefaultContext(target)
	ctx.Fragment = capture
	p := New[Vertex](target, ctx)

	one := math3d.V3(1, 1, 1)
	a := clipVertex(-0.5, -0.5, 0.5, 1)
	a.Color = one
	b := clipVertex(5, -5, 5, 10)
	b.Color = one
	c := clipVertex(0, 5, 5, 10)
	c.Color = one

	if err := p.Submit(NewMesh([]Vertex{a, b, c}, []uint32{0, 1, 2})); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(capture.frags) == 0 {
		t.Fatal("no fragments shaded")
	}
	for i, f := range capture.frags {
		if math.Abs(f.Color.X-1) > 1e-5 {
			t.Fatalf("fragment %d: constant attribute = %v, want 1 (weights do not sum to 1)", i, f.Color.X)
		}
	}
}

// Two coincident triangles with opposite winding: exactly one is drawn,
// decided by winding alone.
func TestSubmitBackFaceCull(t *testing.T) {
	target := render.NewTarget(100, 100)
	red := color.RGBA{255, 0, 0, 255}
	green := color.RGBA{0, 255, 0, 255}

	vertices := []Vertex{
		clipVertex(-0.5, -0.5, 0.5, 1),
		clipVertex(0.5, -0.5, 0.5, 1),
		clipVertex(0, 0.5, 0.5, 1),
	}

	p := solidPipeline(target, red)
	if err := p.Submit(NewMesh(vertices, []uint32{0, 1, 2})); err != nil {
		t.Fatalf("Submit front-facing: %v", err)
	}
	frontPixels := countColor(target.FB, red)
	if frontPixels == 0 {
		t.Fatal("front-facing triangle plotted no pixels")
	}

	p.Ctx.Fragment = &solidFragShader{c: green}
	if err := p.Submit(NewMesh(vertices, []uint32{0, 2, 1})); err != nil {
		t.Fatalf("Submit back-facing: %v", err)
	}
	if n := countColor(target.FB, green); n != 0 {
		t.Errorf("back-facing triangle plotted %d pixels, want 0", n)
	}
}

// A triangle entirely beyond one clip half-space is trivially rejected:
// no pixels, depth untouched.
func TestSubmitTrivialReject(t *testing.T) {
	target := render.NewTarget(100, 100)
	p := solidPipeline(target, color.RGBA{255, 255, 255, 255})

	mesh := NewMesh(
		[]Vertex{
			clipVertex(2, 0, 0.5, 1),
			clipVertex(3, 1, 0.5, 1),
			clipVertex(2.5, 2, 0.5, 1),
		},
		[]uint32{0, 1, 2},
	)
	if err := p.Submit(mesh); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if n := countColor(target.FB, color.RGBA{255, 255, 255, 255}); n != 0 {
		t.Errorf("rejected triangle plotted %d pixels", n)
	}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if !math.IsInf(target.Depth.At(x, y), 1) {
				t.Fatalf("depth at (%d, %d) modified by rejected triangle", x, y)
			}
		}
	}
}

// Triangles entirely behind the camera are dropped during assembly.
func TestSubmitBehindCamera(t *testing.T) {
	target := render.NewTarget(100, 100)
	p := solidPipeline(target, color.RGBA{255, 255, 255, 255})

	mesh := NewMesh(
		[]Vertex{
			clipVertex(-0.5, -0.5, -0.5, 1),
			clipVertex(0.5, -0.5, -0.5, 1),
			clipVertex(0, 0.5, -0.5, 1),
		},
		[]uint32{0, 1, 2},
	)
	if err := p.Submit(mesh); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if n := countColor(target.FB, color.RGBA{255, 255, 255, 255}); n != 0 {
		t.Errorf("behind-camera triangle plotted %d pixels", n)
	}
}

func TestSubmitValidation(t *testing.T) {
	target := render.NewTarget(10, 10)
	p := New[Vertex](target, DefaultContext(target))

	tri := []Vertex{
		clipVertex(-0.5, -0.5, 0.5, 1),
		clipVertex(0.5, -0.5, 0.5, 1),
		clipVertex(0, 0.5, 0.5, 1),
	}

	tests := []struct {
		name string
		mesh Mesh[Vertex]
	}{
		{"index count not multiple of 3", NewMesh(tri, []uint32{0, 1})},
		{"too few vertices", NewMesh(tri[:2], []uint32{0, 1, 0})},
		{"index out of range", NewMesh(tri, []uint32{0, 1, 3})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := p.Submit(tc.mesh); err == nil {
				t.Error("Submit accepted an invalid mesh")
			}
		})
	}
}

// The default context renders opaque black without custom shaders.
func TestDefaultContext(t *testing.T) {
	target := render.NewTarget(50, 50)
	target.Clear(color.RGBA{10, 20, 30, 255})
	p := New[Vertex](target, DefaultContext(target))

	if err := p.Submit(quad(-1, -1, 1, 1, 0.5, 1)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := target.FB.GetPixel(25, 25); got != (color.RGBA{A: 255}) {
		t.Errorf("center pixel = %v, want opaque black", got)
	}
}

func BenchmarkSubmitQuad(b *testing.B) {
	target := render.NewTarget(200, 200)
	p := solidPipeline(target, color.RGBA{255, 255, 255, 255})
	mesh := quad(-0.8, -0.8, 0.8, 0.8, 0.5, 1)

	for b.Loop() {
		target.ClearDepth()
		if err := p.Submit(mesh); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSubmitClipped(b *testing.B) {
	target := render.NewTarget(200, 200)
	p := solidPipeline(target, color.RGBA{255, 255, 255, 255})
	mesh := NewMesh(
		[]Vertex{
			clipVertex(-2, 0, 0.5, 1),
			clipVertex(2, 0, 0.5, 1),
			clipVertex(0, 2, 0.5, 1),
		},
		[]uint32{0, 1, 2},
	)

	for b.Loop() {
		target.ClearDepth()
		if err := p.Submit(mesh); err != nil {
			b.Fatal(err)
		}
	}
}
