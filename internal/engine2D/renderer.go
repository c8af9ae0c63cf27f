package engine2D

import (
	"math"
	"time"

	"linux-backdrop/internal/engine2D/shader"
	"linux-backdrop/internal/utils"
	"linux-backdrop/internal/wallpaper"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func NewRenderer(scene wallpaper.Scene, layers []*RenderLayer, canvas *Canvas) *Renderer {
	return &Renderer{
		Layers:      layers,
		Canvas:      canvas,
		SceneWidth:  scene.General.OrthogonalProjection.Width,
		SceneHeight: scene.General.OrthogonalProjection.Height,
		ScalingMode: scene.General.ScalingMode,
		RenderScale: 1,
		BgColor:     scene.General.BackgroundColor(),
		StartTime:   time.Now(),
	}
}

// Viewport maps a scene onto a screen: "fit" letterboxes, anything else
// fills and crops. Offsets center the scaled scene.
func Viewport(screenWidth, screenHeight, sceneWidth, sceneHeight int, scalingMode string) (scale, offsetX, offsetY float64) {
	if sceneWidth <= 0 || sceneHeight <= 0 {
		return 1, 0, 0
	}
	scaleW := float64(screenWidth) / float64(sceneWidth)
	scaleH := float64(screenHeight) / float64(sceneHeight)

	if scalingMode == "fit" {
		scale = math.Min(scaleW, scaleH)
	} else {
		scale = math.Max(scaleW, scaleH)
	}

	offsetX = (float64(screenWidth) - float64(sceneWidth)*scale) / 2
	offsetY = (float64(screenHeight) - float64(sceneHeight)*scale) / 2
	return scale, offsetX, offsetY
}

// UpdateViewport calculates render scale and scene offsets from the window size.
func (r *Renderer) UpdateViewport(screenWidth, screenHeight int) {
	r.RenderScale, r.SceneOffsetX, r.SceneOffsetY = Viewport(screenWidth, screenHeight, r.SceneWidth, r.SceneHeight, r.ScalingMode)
}

// UpdateMouse stores the pointer normalized to -1..1 over the screen, and
// the smoothed camera normalized the same way for the shader parallax input.
func (r *Renderer) UpdateMouse(screenX, screenY float64, smooth wallpaper.Vec2) {
	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	if w <= 0 || h <= 0 {
		return
	}
	r.MouseX = screenX/w*2 - 1
	r.MouseY = screenY/h*2 - 1
	r.ParallaxX = smooth.X / (w / 2)
	r.ParallaxY = smooth.Y / (h / 2)
}

// LayerRect is the on-screen rectangle of a layer, parallax offset included.
func (r *Renderer) LayerRect(l *RenderLayer) rl.Rectangle {
	x, y, w, h := l.Bounds(r.RenderScale, r.SceneOffsetX, r.SceneOffsetY)
	return rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
}

// Render clears to the scene background, composites the particle canvas and
// draws the layers in order.
func (r *Renderer) Render() {
	rl.ClearBackground(toRL(r.BgColor))

	if r.Canvas != nil {
		r.drawCanvas()
	}

	screenW, screenH := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	for _, l := range r.Layers {
		rect := r.LayerRect(l)
		if rect.X+rect.Width < 0 || rect.X > screenW || rect.Y+rect.Height < 0 || rect.Y > screenH {
			continue
		}
		r.renderLayer(l, rect)
	}
}

func (r *Renderer) drawCanvas() {
	texture := r.Canvas.Texture()
	w, h := float32(texture.Width), float32(texture.Height)
	// Render textures are stored upside down.
	source := rl.NewRectangle(0, 0, w, -h)
	dest := rl.NewRectangle(0, 0, w, h)

	if r.Effect != nil {
		rl.BeginShaderMode(r.Effect.Shader)
		r.Effect.Apply(shader.GlobalState{
			Time:      time.Since(r.StartTime).Seconds(),
			PointerX:  r.MouseX,
			PointerY:  r.MouseY,
			ParallaxX: r.ParallaxX,
			ParallaxY: r.ParallaxY,
		}, texture)
		rl.DrawTexturePro(texture, source, dest, rl.NewVector2(0, 0), 0, rl.White)
		rl.EndShaderMode()
		return
	}
	rl.DrawTexturePro(texture, source, dest, rl.NewVector2(0, 0), 0, rl.White)
}

func (r *Renderer) renderLayer(l *RenderLayer, rect rl.Rectangle) {
	switch l.Kind {
	case LayerImage:
		if l.Image == nil {
			return
		}
		source := rl.NewRectangle(0, 0, float32(l.Image.Width), float32(l.Image.Height))
		rl.DrawTexturePro(*l.Image, source, rect, rl.NewVector2(0, 0), 0, toRL(l.Tint))
	case LayerText:
		drawLines(l.Text(), rect, r.RenderScale, toRL(l.Tint))
	case LayerCard, LayerEmbed:
		rl.DrawRectangleRounded(rect, 0.12, 8, toRL(l.Tint))
		rl.DrawRectangleLinesEx(rect, 1, rl.Fade(rl.White, 0.08))
		drawLines(l.Text(), rect, r.RenderScale, rl.RayWhite)
	}

	if utils.DebugMode && l.Depth.Set {
		rl.DrawRectangleLinesEx(rect, 1, rl.Fade(rl.Red, 0.5))
	}
}

// Unload releases the canvas, the effect and every layer texture.
func (r *Renderer) Unload() {
	for _, l := range r.Layers {
		if l.Image != nil {
			rl.UnloadTexture(*l.Image)
			l.Image = nil
		}
	}
	if r.Effect != nil {
		r.Effect.Unload()
	}
	if r.Canvas != nil {
		r.Canvas.Unload()
	}
	unloadFonts()
}
