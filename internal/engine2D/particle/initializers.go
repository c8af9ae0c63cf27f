package particle

import (
	"image/color"
	"math"
	"math/rand"

	"linux-backdrop/internal/wallpaper"
)

var (
	defaultPalette = []color.NRGBA{
		{R: 0x00, G: 0xff, B: 0x88, A: 0xff},
		{R: 0x70, G: 0x00, B: 0xff, A: 0xff},
	}
	defaultLineColor = color.NRGBA{R: 255, G: 255, B: 255, A: 13}
)

func DefaultOptions() Options {
	return Options{
		Count:           60,
		MaxSpeed:        0.25,
		MaxRadius:       2,
		Alpha:           0.4,
		ConnectDistance: 100,
		LineWidth:       0.5,
		LineColor:       defaultLineColor,
		Palette:         defaultPalette,
	}
}

// withDefaults fills every zero or negative field from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Count <= 0 {
		o.Count = d.Count
	}
	if o.MaxSpeed <= 0 {
		o.MaxSpeed = d.MaxSpeed
	}
	if o.MaxRadius <= 0 {
		o.MaxRadius = d.MaxRadius
	}
	if o.Alpha <= 0 {
		o.Alpha = d.Alpha
	}
	if o.ConnectDistance <= 0 {
		o.ConnectDistance = d.ConnectDistance
	}
	if o.LineWidth <= 0 {
		o.LineWidth = d.LineWidth
	}
	if o.LineColor == (color.NRGBA{}) {
		o.LineColor = d.LineColor
	}
	if len(o.Palette) == 0 {
		o.Palette = d.Palette
	}
	return o
}

// OptionsFromSettings converts scene settings, keeping defaults for any
// value the scene leaves unset or gets wrong.
func OptionsFromSettings(s wallpaper.ParticleSettings) Options {
	opts := DefaultOptions()
	if s.Count > 0 {
		opts.Count = s.Count
	}
	if s.MaxSpeed > 0 {
		opts.MaxSpeed = s.MaxSpeed
	}
	if s.MaxRadius > 0 {
		opts.MaxRadius = s.MaxRadius
	}
	if s.Alpha > 0 {
		opts.Alpha = math.Min(s.Alpha, 1)
	}
	if s.ConnectDistance > 0 {
		opts.ConnectDistance = s.ConnectDistance
	}
	if s.LineWidth > 0 {
		opts.LineWidth = s.LineWidth
	}

	lineColor := wallpaper.ColorFromString(s.LineColor, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	if s.LineAlpha > 0 {
		lineColor.A = uint8(math.Round(math.Min(s.LineAlpha, 1) * 255))
	} else {
		lineColor.A = defaultLineColor.A
	}
	opts.LineColor = lineColor

	var palette []color.NRGBA
	for _, entry := range s.Palette {
		c := wallpaper.ColorFromString(entry, color.NRGBA{})
		if c.A == 0 {
			continue
		}
		palette = append(palette, c)
	}
	if len(palette) > 0 {
		opts.Palette = palette
	}
	return opts
}

// newParticle places a particle uniformly over bounds with a constant
// velocity in [-MaxSpeed, MaxSpeed] per axis.
func newParticle(rng *rand.Rand, bounds Bounds, opts Options) *Particle {
	return &Particle{
		Position: wallpaper.Vec2{
			X: rng.Float64() * bounds.Width,
			Y: rng.Float64() * bounds.Height,
		},
		Velocity: wallpaper.Vec2{
			X: (rng.Float64() - 0.5) * 2 * opts.MaxSpeed,
			Y: (rng.Float64() - 0.5) * 2 * opts.MaxSpeed,
		},
		Radius: rng.Float64() * opts.MaxRadius,
		Color:  opts.Palette[rng.Intn(len(opts.Palette))],
	}
}
