// Package debug draws the F8 overlay: frame statistics, the parallax camera
// and the bounding boxes of the registered layers.
package debug

import (
	"fmt"

	"linux-backdrop/internal/engine2D/parallax"
	"linux-backdrop/internal/engine2D/particle"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Snapshot is what the overlay shows for one frame.
type Snapshot struct {
	FPS        int
	Frames     uint64
	Pending    int
	Stats      particle.FrameStats
	Camera     parallax.Camera
	Layers     int
	Registered int
	TrackID    string
}

// Lines formats a snapshot; both hosts print these.
func Lines(s Snapshot) []string {
	return []string{
		fmt.Sprintf("FPS: %d  frame %d", s.FPS, s.Frames),
		fmt.Sprintf("Particles: %d  segments: %d", s.Stats.Particles, s.Stats.Segments),
		fmt.Sprintf("Target: %.1f, %.1f", s.Camera.Target.X, s.Camera.Target.Y),
		fmt.Sprintf("Smooth: %.1f, %.1f", s.Camera.Smooth.X, s.Camera.Smooth.Y),
		fmt.Sprintf("Pending callbacks: %d", s.Pending),
		fmt.Sprintf("Layers: %d  parallax: %d", s.Layers, s.Registered),
		fmt.Sprintf("Track: %s", s.TrackID),
	}
}

type DebugOverlay struct {
	ShowBoundingBoxes bool

	fontHeight int32
	lineHeight int32
	padding    int32
}

func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{
		ShowBoundingBoxes: true,
		fontHeight:        16,
		lineHeight:        20,
		padding:           10,
	}
}

// Update handles the overlay's own keys. B toggles the bounding boxes.
func (d *DebugOverlay) Update() {
	if rl.IsKeyPressed(rl.KeyB) {
		d.ShowBoundingBoxes = !d.ShowBoundingBoxes
	}
}

// Draw renders the statistics panel and, when enabled, the layer boxes.
func (d *DebugOverlay) Draw(s Snapshot, boxes []Box) {
	if d.ShowBoundingBoxes {
		d.drawBoundingBoxes(boxes)
	}

	lines := Lines(s)
	width := int32(0)
	for _, line := range lines {
		if w := rl.MeasureText(line, d.fontHeight); w > width {
			width = w
		}
	}
	height := int32(len(lines))*d.lineHeight + 2*d.padding
	rl.DrawRectangle(0, 0, width+2*d.padding, height, rl.Fade(rl.Black, 0.7))

	y := d.padding
	for _, line := range lines {
		rl.DrawText(line, d.padding, y, d.fontHeight, rl.White)
		y += d.lineHeight
	}
}
