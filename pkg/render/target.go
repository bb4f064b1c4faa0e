package render

import "image/color"

// Target pairs a framebuffer with a depth buffer to form the host
// surface a pipeline renders into. It satisfies pipeline.Surface.
type Target struct {
	FB    *Framebuffer
	Depth *DepthBuffer
}

// NewTarget creates a render target with matching color and depth
// dimensions.
func NewTarget(width, height int) *Target {
	return &Target{
		FB:    NewFramebuffer(width, height),
		Depth: NewDepthBuffer(width, height),
	}
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.FB.Width }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.FB.Height }

// Plot writes a single pixel; out-of-range coordinates are a no-op.
func (t *Target) Plot(x, y int, c color.RGBA) {
	t.FB.SetPixel(x, y, c)
}

// DepthTestSet overwrites the depth at (x, y) and returns true iff
// depth < current and (x, y) is in range.
func (t *Target) DepthTestSet(x, y int, depth float64) bool {
	return t.Depth.TestSet(x, y, depth)
}

// ClearDepth resets every depth cell to +Inf.
func (t *Target) ClearDepth() {
	t.Depth.Clear()
}

// Clear fills the framebuffer with c and resets the depth buffer.
// Call at frame start.
func (t *Target) Clear(c color.RGBA) {
	t.FB.Clear(c)
	t.Depth.Clear()
}
