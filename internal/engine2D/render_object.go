package engine2D

import (
	"fmt"
	"image/color"

	"linux-backdrop/internal/engine2D/parallax"
	"linux-backdrop/internal/feed"
	"linux-backdrop/internal/wallpaper"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	cardSize   = wallpaper.Vec2{X: 280, Y: 120}
	cardGap    = 24.0
	embedSize  = wallpaper.Vec2{X: 320, Y: 96}
	panelColor = color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xcc}
)

func (l *RenderLayer) DepthAttr() (string, bool) {
	return l.Depth.Raw, l.Depth.Set
}

func (l *RenderLayer) SetTranslate(t parallax.Translate) {
	l.Offset = t
}

// Text returns the lines drawn for the layer this frame.
func (l *RenderLayer) Text() []string {
	if l.Caption != nil {
		return l.Caption()
	}
	return l.Lines
}

// Bounds returns the top-left corner and size of the layer in screen pixels
// for the given viewport, including its parallax offset.
func (l *RenderLayer) Bounds(renderScale, sceneOffsetX, sceneOffsetY float64) (x, y, w, h float64) {
	scale := l.Scale
	if scale == 0 {
		scale = 1
	}
	w = l.Size.X * scale * renderScale
	h = l.Size.Y * scale * renderScale
	cx := sceneOffsetX + l.Origin.X*renderScale + l.Offset.X
	cy := sceneOffsetY + l.Origin.Y*renderScale + l.Offset.Y
	return cx - w/2, cy - h/2, w, h
}

// NewSceneLayer wraps a scene layer. A zero size takes the image size.
func NewSceneLayer(layer wallpaper.Layer, image *rl.Texture2D) *RenderLayer {
	l := &RenderLayer{
		Name:   layer.Name,
		Kind:   LayerImage,
		Origin: layer.Origin,
		Size:   layer.Size,
		Scale:  layer.Scale,
		Tint:   wallpaper.ColorFromString(layer.Color, color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		Depth:  layer.Depth,
		Image:  image,
	}
	if image == nil {
		l.Kind = LayerText
		if layer.Text != "" {
			l.Lines = []string{layer.Text}
		}
	}
	if (l.Size.X <= 0 || l.Size.Y <= 0) && image != nil {
		l.Size = wallpaper.Vec2{X: float64(image.Width), Y: float64(image.Height)}
	}
	return l
}

// CardOrigins lays n cards of the given width side by side, centered on
// origin.
func CardOrigins(n int, origin wallpaper.Vec2, width, gap float64) []wallpaper.Vec2 {
	if n <= 0 {
		return nil
	}
	total := float64(n)*width + float64(n-1)*gap
	left := origin.X - total/2 + width/2

	origins := make([]wallpaper.Vec2, n)
	for i := range origins {
		origins[i] = wallpaper.Vec2{X: left + float64(i)*(width+gap), Y: origin.Y}
	}
	return origins
}

// NewCardLayers builds one card per repository. A zero origin places the
// row in the lower third of the scene.
func NewCardLayers(repos []feed.Repository, cfg wallpaper.GitHubFeed, sceneWidth, sceneHeight int) []*RenderLayer {
	origin := cfg.Origin
	if origin == (wallpaper.Vec2{}) {
		origin = wallpaper.Vec2{X: float64(sceneWidth) / 2, Y: float64(sceneHeight) * 0.72}
	}

	layers := make([]*RenderLayer, 0, len(repos))
	for i, center := range CardOrigins(len(repos), origin, cardSize.X, cardGap) {
		repo := repos[i]
		layers = append(layers, &RenderLayer{
			Name:   "repo:" + repo.Name,
			Kind:   LayerCard,
			Origin: center,
			Size:   cardSize,
			Scale:  1,
			Tint:   panelColor,
			Depth:  cfg.Depth,
			Lines: []string{
				repo.Name,
				repo.DisplayDescription(),
				fmt.Sprintf("★ %d  ·  %s", repo.Stars, repo.DisplayLanguage()),
			},
		})
	}
	return layers
}

// NewEmbedLayer is the now-playing panel; it reads the embed on every frame.
func NewEmbedLayer(embed *feed.Embed, cfg wallpaper.NowPlayingFeed, sceneWidth, sceneHeight int) *RenderLayer {
	origin := cfg.Origin
	if origin == (wallpaper.Vec2{}) {
		origin = wallpaper.Vec2{X: float64(sceneWidth) - embedSize.X/2 - 32, Y: embedSize.Y/2 + 32}
	}

	return &RenderLayer{
		Name:   "now-playing",
		Kind:   LayerEmbed,
		Origin: origin,
		Size:   embedSize,
		Scale:  1,
		Tint:   panelColor,
		Depth:  cfg.Depth,
		Caption: func() []string {
			label := embed.Label()
			if label == "" {
				label = "Spotify"
			}
			return []string{"Now playing", label, embed.Source()}
		},
	}
}
