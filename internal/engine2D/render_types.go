package engine2D

import (
	"image/color"
	"time"

	"linux-backdrop/internal/engine2D/parallax"
	"linux-backdrop/internal/engine2D/shader"
	"linux-backdrop/internal/wallpaper"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer composites the particle canvas and the scene layers.
type Renderer struct {
	Layers       []*RenderLayer
	Canvas       *Canvas
	Effect       *shader.Effect
	SceneWidth   int
	SceneHeight  int
	ScalingMode  string
	RenderScale  float64
	SceneOffsetX float64
	SceneOffsetY float64
	BgColor      color.NRGBA
	MouseX       float64
	MouseY       float64
	ParallaxX    float64
	ParallaxY    float64
	StartTime    time.Time
}

type LayerKind int

const (
	LayerImage LayerKind = iota
	LayerText
	LayerCard
	LayerEmbed
)

func (k LayerKind) String() string {
	switch k {
	case LayerImage:
		return "image"
	case LayerText:
		return "text"
	case LayerCard:
		return "card"
	case LayerEmbed:
		return "embed"
	}
	return "unknown"
}

// RenderLayer is a drawable positioned in scene units by its center. Layers
// with a depth attribute are moved by the parallax engine through
// SetTranslate; Offset is in screen pixels.
type RenderLayer struct {
	Name   string
	Kind   LayerKind
	Origin wallpaper.Vec2
	Size   wallpaper.Vec2
	Scale  float64
	Tint   color.NRGBA
	Depth  wallpaper.DepthAttr
	Image  *rl.Texture2D
	Lines  []string
	// Caption, when set, replaces Lines on every frame.
	Caption func() []string
	Offset  parallax.Translate
}
