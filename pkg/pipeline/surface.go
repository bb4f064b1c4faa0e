// Package pipeline implements a programmable software rasterization
// pipeline: vertex transform, triangle assembly, homogeneous clipping,
// perspective-correct rasterization with depth testing.
package pipeline

import "image/color"

// Surface is the host render target a pipeline draws into. It is
// borrowed mutably for the duration of a Submit call; nothing else may
// touch the depth or color storage while a submission runs.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int
	// Height returns the surface height in pixels.
	Height() int
	// Plot writes a single pixel. Out-of-range coordinates are a no-op.
	Plot(x, y int, c color.RGBA)
	// DepthTestSet overwrites the depth cell at (x, y) and returns true
	// iff depth < current and the coordinates are in range.
	DepthTestSet(x, y int, depth float64) bool
	// ClearDepth resets every depth cell to +Inf.
	ClearDepth()
}
