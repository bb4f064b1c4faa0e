package render

import "testing"

func checkerTex() *Texture {
	// 2x2: red green / blue yellow.
	t := NewTexture(2, 2)
	t.SetPixel(0, 0, RGB(255, 0, 0))
	t.SetPixel(1, 0, RGB(0, 255, 0))
	t.SetPixel(0, 1, RGB(0, 0, 255))
	t.SetPixel(1, 1, RGB(255, 255, 0))
	return t
}

func TestTextureSampleNearest(t *testing.T) {
	tex := checkerTex()

	tests := []struct {
		name string
		u, v float64
		want Color
	}{
		// V is flipped: v=1 samples the top image row.
		{"bottom left", 0.25, 0.25, RGB(0, 0, 255)},
		{"bottom right", 0.75, 0.25, RGB(255, 255, 0)},
		{"top left", 0.25, 0.75, RGB(255, 0, 0)},
		{"top right", 0.75, 0.75, RGB(0, 255, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestTextureWrapRepeat(t *testing.T) {
	tex := checkerTex()

	// u=1.25 wraps to 0.25, v=-0.75 wraps to 0.25.
	if got, want := tex.Sample(1.25, 0.25), tex.Sample(0.25, 0.25); got != want {
		t.Errorf("repeat wrap u: got %v, want %v", got, want)
	}
	if got, want := tex.Sample(0.25, -0.75), tex.Sample(0.25, 0.25); got != want {
		t.Errorf("repeat wrap v: got %v, want %v", got, want)
	}
}

func TestTextureWrapClamp(t *testing.T) {
	tex := checkerTex()
	tex.WrapU = WrapClamp
	tex.WrapV = WrapClamp

	if got, want := tex.Sample(2.0, 0.25), tex.Sample(1.0, 0.25); got != want {
		t.Errorf("clamp wrap u: got %v, want %v", got, want)
	}
	if got, want := tex.Sample(0.25, -1.0), tex.Sample(0.25, 0.0); got != want {
		t.Errorf("clamp wrap v: got %v, want %v", got, want)
	}
}

func TestTextureBilinearBlends(t *testing.T) {
	tex := NewTexture(2, 1)
	tex.SetPixel(0, 0, RGB(0, 0, 0))
	tex.SetPixel(1, 0, RGB(200, 200, 200))
	tex.FilterMode = FilterBilinear
	tex.WrapU = WrapClamp
	tex.WrapV = WrapClamp

	// Halfway between the two texels.
	got := tex.Sample(0.5, 0.5)
	if got.R < 80 || got.R > 120 {
		t.Errorf("bilinear midpoint R = %d, want ~100", got.R)
	}
}

func TestNewCheckerTexture(t *testing.T) {
	c1 := RGB(255, 255, 255)
	c2 := RGB(0, 0, 0)
	tex := NewCheckerTexture(4, 4, 2, c1, c2)

	if tex.GetPixel(0, 0) != c1 {
		t.Error("first cell should be c1")
	}
	if tex.GetPixel(2, 0) != c2 {
		t.Error("adjacent cell should be c2")
	}
	if tex.GetPixel(2, 2) != c1 {
		t.Error("diagonal cell should be c1")
	}
}
