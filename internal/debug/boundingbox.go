package debug

import (
	"linux-backdrop/internal/engine2D"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Box is a layer outline in screen pixels.
type Box struct {
	Name     string
	Rect     rl.Rectangle
	Parallax bool
}

// LayerBoxes collects the on-screen rectangles of the renderer's layers at
// their current translation.
func LayerBoxes(r *engine2D.Renderer) []Box {
	boxes := make([]Box, 0, len(r.Layers))
	for _, l := range r.Layers {
		_, parallax := l.DepthAttr()
		boxes = append(boxes, Box{Name: l.Name, Rect: r.LayerRect(l), Parallax: parallax})
	}
	return boxes
}

func (d *DebugOverlay) drawBoundingBoxes(boxes []Box) {
	for _, box := range boxes {
		col := rl.NewColor(0, 255, 255, 100)
		if box.Parallax {
			col = rl.NewColor(0, 255, 0, 255)
		}
		rect := box.Rect
		rl.DrawRectangleLines(int32(rect.X), int32(rect.Y), int32(rect.Width), int32(rect.Height), col)

		// Origin point
		cx := rect.X + rect.Width/2
		cy := rect.Y + rect.Height/2
		rl.DrawRectangle(int32(cx-2), int32(cy-2), 4, 4, rl.Red)

		rl.DrawText(box.Name, int32(rect.X), int32(rect.Y)-d.fontHeight, d.fontHeight/2+4, col)
	}
}
