package pipeline

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// drawTriangle rasterizes one screen-space triangle: bounding-box scan,
// barycentric coverage, depth test, perspective-correct attribute
// reconstruction, fragment stage, pixel write.
//
// On entry pos.XY of each vertex are pixel coordinates and pos.W holds
// 1/w_clip (see toScreen).
func (p *Pipeline[VIn, VOut, GOut]) drawTriangle(tri Triangle[GOut]) {
	a, b, c := tri.A.Pos(), tri.B.Pos(), tri.C.Pos()

	minX := int(math.Max(0, math.Floor(min3(a.X, b.X, c.X))))
	maxX := int(math.Min(float64(p.surf.Width()-1), math.Ceil(max3(a.X, b.X, c.X))))
	minY := int(math.Max(0, math.Floor(min3(a.Y, b.Y, c.Y))))
	maxY := int(math.Min(float64(p.surf.Height()-1), math.Ceil(max3(a.Y, b.Y, c.Y))))

	// Loop-invariant barycentric setup, hoisted out of the pixel scan.
	v0 := math3d.V2(b.X-a.X, b.Y-a.Y)
	v1 := math3d.V2(c.X-a.X, c.Y-a.Y)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		// Collinear in screen space; nothing to cover.
		return
	}
	invDenom := 1 / denom

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			// Sample at the pixel center.
			v2 := math3d.V2(float64(x)+0.5-a.X, float64(y)+0.5-a.Y)
			d20 := v2.Dot(v0)
			d21 := v2.Dot(v1)

			l1 := (d11*d20 - d01*d21) * invDenom
			l2 := (d00*d21 - d01*d20) * invDenom
			l0 := 1 - l1 - l2

			// Pixels on a zero barycentric are covered.
			if l0 < 0 || l1 < 0 || l2 < 0 {
				continue
			}

			// pos.W holds 1/w, so the interpolated value inverts back
			// to the eye-space w at this pixel.
			oneOverW := l0*a.W + l1*b.W + l2*c.W
			if oneOverW == 0 {
				continue
			}
			wEye := 1 / oneOverW

			if !p.surf.DepthTestSet(x, y, wEye) {
				continue
			}

			frag := tri.A.Berp(math3d.V3(l0, l1, l2), tri.B, tri.C, wEye)
			p.surf.Plot(x, y, p.Ctx.Fragment.Apply(frag))
		}
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
