package engine2D

import (
	"image/color"

	"linux-backdrop/internal/wallpaper"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Canvas is the particle field's drawing surface: a render texture the size
// of the window. Draw calls must happen between Begin and End.
type Canvas struct {
	target rl.RenderTexture2D
	loaded bool
	width  int32
	height int32
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(float64(width), float64(height))
	return c
}

func toRL(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// Resize reallocates the backing texture when the size changed. The old
// contents are dropped.
func (c *Canvas) Resize(width, height float64) {
	w, h := int32(width), int32(height)
	if w <= 0 || h <= 0 {
		return
	}
	if c.loaded && w == c.width && h == c.height {
		return
	}
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
	}
	c.target = rl.LoadRenderTexture(w, h)
	rl.SetTextureFilter(c.target.Texture, rl.FilterBilinear)
	c.width, c.height = w, h
	c.loaded = true
}

func (c *Canvas) Begin() {
	rl.BeginTextureMode(c.target)
}

func (c *Canvas) End() {
	rl.EndTextureMode()
}

func (c *Canvas) Clear(x, y, width, height float64) {
	rl.BeginScissorMode(int32(x), int32(y), int32(width), int32(height))
	rl.ClearBackground(rl.Blank)
	rl.EndScissorMode()
}

func (c *Canvas) FillCircle(center wallpaper.Vec2, radius float64, col color.NRGBA, alpha float64) {
	rl.DrawCircleV(rl.NewVector2(float32(center.X), float32(center.Y)), float32(radius), rl.Fade(toRL(col), float32(alpha)))
}

func (c *Canvas) StrokeLine(from, to wallpaper.Vec2, col color.NRGBA, width float64) {
	rl.DrawLineEx(
		rl.NewVector2(float32(from.X), float32(from.Y)),
		rl.NewVector2(float32(to.X), float32(to.Y)),
		float32(width),
		toRL(col),
	)
}

func (c *Canvas) Texture() rl.Texture2D {
	return c.target.Texture
}

func (c *Canvas) Size() (int32, int32) {
	return c.width, c.height
}

func (c *Canvas) Unload() {
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
		c.loaded = false
	}
}
