// Package parallax moves depth-tagged elements against a smoothed pointer.
package parallax

import (
	"math"
	"strconv"
	"strings"

	"linux-backdrop/internal/wallpaper"
)

// Translate is a 3D translation applied to an element's visual transform.
type Translate struct {
	X, Y, Z float64
}

// Element is a drawable node carrying a raw depth attribute. ok is false when
// the node has no depth attribute at all.
type Element interface {
	DepthAttr() (raw string, ok bool)
	SetTranslate(Translate)
}

type Options struct {
	Smoothing    float64
	DefaultDepth float64
}

func DefaultOptions() Options {
	return Options{Smoothing: 0.08, DefaultDepth: 20}
}

func OptionsFromSettings(s wallpaper.ParallaxSettings) Options {
	opts := DefaultOptions()
	if s.Smoothing > 0 && s.Smoothing <= 1 {
		opts.Smoothing = s.Smoothing
	}
	if s.DefaultDepth != 0 && !math.IsNaN(s.DefaultDepth) && !math.IsInf(s.DefaultDepth, 0) {
		opts.DefaultDepth = s.DefaultDepth
	}
	return opts
}

// Camera holds the raw pointer offset from the viewport center (Target) and
// its filtered value (Smooth).
type Camera struct {
	Target wallpaper.Vec2
	Smooth wallpaper.Vec2
}

type Engine struct {
	elements []Element
	opts     Options
	camera   Camera
	width    float64
	height   float64
}

// Scan returns the candidates that carry a depth attribute. The result is the
// engine's registry for the lifetime of the host.
func Scan(candidates []Element) []Element {
	var registry []Element
	for _, c := range candidates {
		if _, ok := c.DepthAttr(); ok {
			registry = append(registry, c)
		}
	}
	return registry
}

func NewEngine(elements []Element, opts Options) *Engine {
	if opts.Smoothing <= 0 || opts.Smoothing > 1 {
		opts.Smoothing = DefaultOptions().Smoothing
	}
	return &Engine{elements: elements, opts: opts}
}

// OnResize records the viewport used to center pointer coordinates.
func (e *Engine) OnResize(width, height float64) {
	e.width = width
	e.height = height
}

// OnPointerMove stores the pointer offset from the viewport center.
func (e *Engine) OnPointerMove(x, y float64) {
	e.camera.Target = wallpaper.Vec2{X: x - e.width/2, Y: y - e.height/2}
}

// Step moves the smoothed camera a fixed fraction toward the target and
// translates every registered element. The fraction is per frame, not per
// second.
func (e *Engine) Step() {
	e.camera.Smooth.X += (e.camera.Target.X - e.camera.Smooth.X) * e.opts.Smoothing
	e.camera.Smooth.Y += (e.camera.Target.Y - e.camera.Smooth.Y) * e.opts.Smoothing

	for _, el := range e.elements {
		raw, _ := el.DepthAttr()
		el.SetTranslate(Offset(e.camera.Smooth, ParseDepth(raw, e.opts.DefaultDepth)))
	}
}

func (e *Engine) Camera() Camera {
	return e.camera
}

func (e *Engine) Elements() []Element {
	return e.elements
}

// Offset maps the camera through a depth factor: -smooth / (1000 / depth).
// Depth 0 never moves.
func Offset(smooth wallpaper.Vec2, depth float64) Translate {
	if depth == 0 {
		return Translate{}
	}
	divisor := 1000 / depth
	return Translate{X: -smooth.X / divisor, Y: -smooth.Y / divisor}
}

// ParseDepth reads a depth attribute, returning fallback when it is empty or
// not a finite number.
func ParseDepth(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
