package pipeline

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
)

func sampleVertex(seed float64) Vertex {
	return Vertex{
		Position: math3d.V4(seed, seed*2, seed*3, 1+seed),
		UV:       math3d.V2(seed*0.1, seed*0.2),
		Normal:   math3d.V3(seed, -seed, seed*0.5),
		Color:    math3d.V3(seed*0.3, seed*0.6, seed*0.9),
	}
}

func vertexAlmostEqual(a, b Vertex, tol float64) bool {
	return math.Abs(a.Position.X-b.Position.X) < tol &&
		math.Abs(a.Position.Y-b.Position.Y) < tol &&
		math.Abs(a.Position.Z-b.Position.Z) < tol &&
		math.Abs(a.Position.W-b.Position.W) < tol &&
		math.Abs(a.UV.X-b.UV.X) < tol &&
		math.Abs(a.UV.Y-b.UV.Y) < tol &&
		math.Abs(a.Normal.X-b.Normal.X) < tol &&
		math.Abs(a.Normal.Y-b.Normal.Y) < tol &&
		math.Abs(a.Normal.Z-b.Normal.Z) < tol &&
		math.Abs(a.Color.X-b.Color.X) < tol &&
		math.Abs(a.Color.Y-b.Color.Y) < tol &&
		math.Abs(a.Color.Z-b.Color.Z) < tol
}

func TestVertexLerpIdentity(t *testing.T) {
	// lerp(v, v, alpha) = v for any alpha.
	v := sampleVertex(1.5)

	for _, alpha := range []float64{0, 0.25, 0.5, 0.75, 1} {
		got := v.Lerp(v, alpha)
		if !vertexAlmostEqual(got, v, 1e-12) {
			t.Errorf("Lerp(v, v, %v) = %+v, want %+v", alpha, got, v)
		}
	}
}

func TestVertexLerpEndpoints(t *testing.T) {
	a := sampleVertex(1)
	b := sampleVertex(3)

	if got := a.Lerp(b, 0); !vertexAlmostEqual(got, a, 1e-12) {
		t.Errorf("Lerp(a, b, 0) = %+v, want a", got)
	}
	if got := a.Lerp(b, 1); !vertexAlmostEqual(got, b, 1e-12) {
		t.Errorf("Lerp(a, b, 1) = %+v, want b", got)
	}

	mid := a.Lerp(b, 0.5)
	wantU := (a.UV.X + b.UV.X) / 2
	if math.Abs(mid.UV.X-wantU) > 1e-12 {
		t.Errorf("Lerp midpoint UV.X = %v, want %v", mid.UV.X, wantU)
	}
}

func TestVertexBerpCorners(t *testing.T) {
	// berp((1,0,0), v0, v1, v2, 1) = v0 and symmetrically.
	v0 := sampleVertex(1)
	v1 := sampleVertex(2)
	v2 := sampleVertex(4)

	tests := []struct {
		name string
		bary math3d.Vec3
		want Vertex
	}{
		{"corner v0", math3d.V3(1, 0, 0), v0},
		{"corner v1", math3d.V3(0, 1, 0), v1},
		{"corner v2", math3d.V3(0, 0, 1), v2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := v0.Berp(tc.bary, v1, v2, 1)
			if !vertexAlmostEqual(got, tc.want, 1e-12) {
				t.Errorf("Berp(%v) = %+v, want %+v", tc.bary, got, tc.want)
			}
		})
	}
}

func TestVertexBerpScalesAllAttributes(t *testing.T) {
	v0 := sampleVertex(1)
	v1 := sampleVertex(2)
	v2 := sampleVertex(4)
	bary := math3d.V3(0.2, 0.3, 0.5)
	d := 2.5

	got := v0.Berp(bary, v1, v2, d)
	wantU := (bary.X*v0.UV.X + bary.Y*v1.UV.X + bary.Z*v2.UV.X) * d
	wantNX := (bary.X*v0.Normal.X + bary.Y*v1.Normal.X + bary.Z*v2.Normal.X) * d

	if math.Abs(got.UV.X-wantU) > 1e-12 {
		t.Errorf("Berp UV.X = %v, want %v", got.UV.X, wantU)
	}
	if math.Abs(got.Normal.X-wantNX) > 1e-12 {
		t.Errorf("Berp Normal.X = %v, want %v", got.Normal.X, wantNX)
	}
}

func TestVertexScale(t *testing.T) {
	v := sampleVertex(2)
	got := v.Scale(0.5)

	if math.Abs(got.Position.W-v.Position.W*0.5) > 1e-12 {
		t.Errorf("Scale Position.W = %v, want %v", got.Position.W, v.Position.W*0.5)
	}
	if math.Abs(got.UV.Y-v.UV.Y*0.5) > 1e-12 {
		t.Errorf("Scale UV.Y = %v, want %v", got.UV.Y, v.UV.Y*0.5)
	}
	if math.Abs(got.Color.Z-v.Color.Z*0.5) > 1e-12 {
		t.Errorf("Scale Color.Z = %v, want %v", got.Color.Z, v.Color.Z*0.5)
	}
}
