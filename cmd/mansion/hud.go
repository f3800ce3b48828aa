package main

import (
	"fmt"
	"time"

	"github.com/taigrr/mansion/pkg/render"
)

// HUD tracks frame rate and prints it over the top terminal row.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() float64 {
	return h.fps
}

// Line formats the status text.
func (h *HUD) Line(st render.Stats) string {
	return fmt.Sprintf(" %.0f FPS  %d faces  %d culled  %d meshes culled ",
		h.fps, st.FacesDrawn, st.FacesCulled, st.MeshesCulled)
}

// Render draws the status line at the top-left corner.
func (h *HUD) Render(st render.Stats) {
	const (
		reset   = "\x1b[0m"
		bgBlack = "\x1b[40m"
		fgGreen = "\x1b[92m"
		home    = "\x1b[1;1H"
	)
	fmt.Print(home + bgBlack + fgGreen + h.Line(st) + reset)
}
