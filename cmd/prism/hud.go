package main

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
)

// HUD renders an overlay with model info and mode state.
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time

	fpsStyle   lipgloss.Style
	titleStyle lipgloss.Style
	polyStyle  lipgloss.Style
	modeStyle  lipgloss.Style
}

// NewHUD creates a new HUD.
func NewHUD(filename string, polyCount int) *HUD {
	base := lipgloss.NewStyle().Background(lipgloss.Color("0"))
	return &HUD{
		filename:   filename,
		polyCount:  polyCount,
		fpsTime:    time.Now(),
		fpsStyle:   base.Foreground(lipgloss.Color("10")),
		titleStyle: base.Foreground(lipgloss.Color("15")).Bold(true),
		polyStyle:  base.Foreground(lipgloss.Color("14")).Bold(true),
		modeStyle:  base.Foreground(lipgloss.Color("15")),
	}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// moveTo positions the cursor (1-based row and column).
func moveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

// Render draws the HUD overlay directly to the terminal.
func (h *HUD) Render(width, height int, viewState *ViewState) {
	const clearLine = "\x1b[2K"

	// Always clear the HUD rows so toggling off works.
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !viewState.ShowHUD {
		return
	}

	// Top left: FPS.
	fmt.Print(moveTo(1, 1) + h.fpsStyle.Render(fmt.Sprintf(" %.0f FPS ", h.fps)))

	// Top middle: filename.
	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + h.titleStyle.Render(" "+h.filename+" "))

	// Top right: polygon count.
	polyCol := max(width-14, 1)
	fmt.Print(moveTo(1, polyCol) + h.polyStyle.Render(fmt.Sprintf(" %d polys ", h.polyCount)))

	// Bottom: mode checkboxes.
	checkTex := "[ ]"
	if viewState.TextureEnabled && viewState.RenderMode != RenderModeWireframe {
		checkTex = "[x]"
	}
	checkWire := "[ ]"
	if viewState.RenderMode == RenderModeWireframe {
		checkWire = "[x]"
	}
	mode := fmt.Sprintf(" %s Texture  %s X-Ray ", checkTex, checkWire)
	fmt.Print(moveTo(height, 1) + h.modeStyle.Render(mode))
}
