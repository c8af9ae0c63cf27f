package wallpaper

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type Vec2 struct {
	X, Y float64
}

type Scene struct {
	General General `json:"general"`
	Layers  []Layer `json:"layers"`
	Feeds   Feeds   `json:"feeds"`
	Version int     `json:"version"`
}

type General struct {
	ClearColor           string               `json:"clearcolor"`
	Background           string               `json:"background"`
	OrthogonalProjection OrthogonalProjection `json:"orthogonalprojection"`
	Particles            ParticleSettings     `json:"particles"`
	Parallax             ParallaxSettings     `json:"parallax"`
	Sound                SoundSettings        `json:"sound"`
	Shader               ShaderSettings       `json:"shader"`
	ScalingMode          string               `json:"scalingmode"`
}

type OrthogonalProjection struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ParticleSettings configures the particle field. Zero values select the
// defaults from DefaultScene.
type ParticleSettings struct {
	Count           int      `json:"count"`
	MaxSpeed        float64  `json:"maxspeed"`
	MaxRadius       float64  `json:"maxradius"`
	Alpha           float64  `json:"alpha"`
	ConnectDistance float64  `json:"connectdistance"`
	LineWidth       float64  `json:"linewidth"`
	LineColor       string   `json:"linecolor"`
	LineAlpha       float64  `json:"linealpha"`
	Palette         []string `json:"palette"`
}

type ParallaxSettings struct {
	Smoothing    float64 `json:"smoothing"`
	DefaultDepth float64 `json:"defaultdepth"`
	GlobalMouse  bool    `json:"globalmouse"`
}

// ShaderSettings names an optional fragment shader applied when the particle
// canvas is composited. Constants are bound to matching g_ uniforms.
type ShaderSettings struct {
	File      string                 `json:"file"`
	Combos    map[string]int         `json:"combos"`
	Constants map[string]interface{} `json:"constantshadervalues"`
}

type SoundSettings struct {
	File   string  `json:"file"`
	Volume float64 `json:"volume"`
}

// Layer is a drawable scene element. Layers that carry a depth attribute
// follow the pointer parallax.
type Layer struct {
	Name   string    `json:"name"`
	Image  string    `json:"image"`
	Text   string    `json:"text"`
	Origin Vec2      `json:"origin"`
	Size   Vec2      `json:"size"`
	Color  string    `json:"color"`
	Scale  float64   `json:"scale"`
	Depth  DepthAttr `json:"depth"`
}

type Feeds struct {
	GitHub     GitHubFeed     `json:"github"`
	NowPlaying NowPlayingFeed `json:"nowplaying"`
}

type GitHubFeed struct {
	User    string    `json:"user"`
	BaseURL string    `json:"baseurl"`
	Cards   int       `json:"cards"`
	Depth   DepthAttr `json:"depth"`
	Origin  Vec2      `json:"origin"`
}

type NowPlayingFeed struct {
	Interval string    `json:"interval"`
	TrackID  string    `json:"trackid"`
	Depth    DepthAttr `json:"depth"`
	Origin   Vec2      `json:"origin"`
}

// DepthAttr keeps the raw depth attribute of an element. Scenes may write it
// as a number or a string; parsing and defaulting happen at read time.
type DepthAttr struct {
	Raw string
	Set bool
}

func Depth(raw string) DepthAttr {
	return DepthAttr{Raw: raw, Set: true}
}

func (d *DepthAttr) UnmarshalJSON(data []byte) error {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	switch v := value.(type) {
	case nil:
		*d = DepthAttr{}
	case float64:
		*d = Depth(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		*d = Depth(v)
	case bool:
		*d = Depth(strconv.FormatBool(v))
	default:
		// Objects and arrays are present but not numeric.
		*d = Depth(string(data))
	}
	return nil
}

func (d DepthAttr) MarshalJSON() ([]byte, error) {
	if !d.Set {
		return []byte("null"), nil
	}
	return json.Marshal(d.Raw)
}

// DefaultScene returns the built-in backdrop: two-color particle network on
// a near-black background, no layers.
func DefaultScene() Scene {
	var scene Scene
	scene.ApplyDefaults()
	return scene
}

func (s *Scene) ApplyDefaults() {
	g := &s.General
	if g.OrthogonalProjection.Width <= 0 || g.OrthogonalProjection.Height <= 0 {
		g.OrthogonalProjection = OrthogonalProjection{Width: 1280, Height: 720}
	}
	if g.ClearColor == "" && g.Background == "" {
		g.Background = "#050508"
	}

	p := &g.Particles
	if p.Count <= 0 {
		p.Count = 60
	}
	if p.MaxSpeed <= 0 {
		p.MaxSpeed = 0.25
	}
	if p.MaxRadius <= 0 {
		p.MaxRadius = 2
	}
	if p.Alpha <= 0 {
		p.Alpha = 0.4
	}
	if p.ConnectDistance <= 0 {
		p.ConnectDistance = 100
	}
	if p.LineWidth <= 0 {
		p.LineWidth = 0.5
	}
	if p.LineColor == "" {
		p.LineColor = "#ffffff"
	}
	if p.LineAlpha <= 0 {
		p.LineAlpha = 0.05
	}
	if len(p.Palette) == 0 {
		p.Palette = []string{"#00ff88", "#7000ff"}
	}

	if g.Parallax.Smoothing <= 0 || g.Parallax.Smoothing > 1 {
		g.Parallax.Smoothing = 0.08
	}
	if g.Parallax.DefaultDepth == 0 {
		g.Parallax.DefaultDepth = 20
	}
	if g.ScalingMode != "fit" {
		g.ScalingMode = "fill"
	}
	if g.Sound.Volume <= 0 {
		g.Sound.Volume = 0.5
	}

	if s.Feeds.GitHub.Cards <= 0 || s.Feeds.GitHub.Cards > 4 {
		s.Feeds.GitHub.Cards = 4
	}
	if !s.Feeds.GitHub.Depth.Set {
		s.Feeds.GitHub.Depth = Depth("25")
	}
	if s.Feeds.NowPlaying.Interval == "" {
		s.Feeds.NowPlaying.Interval = "30s"
	}
}

// LoadScene reads a scene file. A missing file yields DefaultScene.
func LoadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultScene(), nil
	}
	if err != nil {
		return Scene{}, fmt.Errorf("read scene %s: %w", path, err)
	}

	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return Scene{}, fmt.Errorf("parse scene %s: %w", path, err)
	}
	scene.ApplyDefaults()
	return scene, nil
}

// ParseColor parses a space separated "r g b" triple of 0..1 floats.
func ParseColor(colorStr string) (float64, float64, float64) {
	colorParts := strings.Fields(colorStr)
	if len(colorParts) < 3 {
		return 0, 0, 0
	}
	red, _ := strconv.ParseFloat(colorParts[0], 64)
	green, _ := strconv.ParseFloat(colorParts[1], 64)
	blue, _ := strconv.ParseFloat(colorParts[2], 64)
	return red, green, blue
}

// ColorFromString accepts "#rrggbb" or an "r g b" triple and returns an
// opaque color, or fallback when s is neither.
func ColorFromString(s string, fallback color.NRGBA) color.NRGBA {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return fallback
		}
		r, g, b := c.Clamped().RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}
	}

	if len(strings.Fields(s)) < 3 {
		return fallback
	}
	r, g, b := ParseColor(s)
	c := colorful.Color{R: r, G: g, B: b}.Clamped()
	r8, g8, b8 := c.RGB255()
	return color.NRGBA{R: r8, G: g8, B: b8, A: 255}
}

// BackgroundColor resolves the scene clear color; Background wins over the
// legacy "r g b" ClearColor.
func (g General) BackgroundColor() color.NRGBA {
	black := color.NRGBA{A: 255}
	if g.Background != "" {
		return ColorFromString(g.Background, black)
	}
	return ColorFromString(g.ClearColor, black)
}
