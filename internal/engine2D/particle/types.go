package particle

import (
	"image/color"

	"linux-backdrop/internal/wallpaper"
)

// Surface is the 2D raster target the field draws on.
type Surface interface {
	Resize(width, height float64)
	Clear(x, y, width, height float64)
	FillCircle(center wallpaper.Vec2, radius float64, c color.NRGBA, alpha float64)
	StrokeLine(from, to wallpaper.Vec2, c color.NRGBA, width float64)
}

type Particle struct {
	Position wallpaper.Vec2
	Velocity wallpaper.Vec2
	Radius   float64
	Color    color.NRGBA
}

// Bounds are the wrap limits of the field in surface units.
type Bounds struct {
	Width, Height float64
}

type Options struct {
	Count           int
	MaxSpeed        float64
	MaxRadius       float64
	Alpha           float64
	ConnectDistance float64
	LineWidth       float64
	LineColor       color.NRGBA
	Palette         []color.NRGBA
}

// FrameStats summarizes one Step for the debug overlay.
type FrameStats struct {
	Particles int
	Segments  int
}

type Field struct {
	Particles []*Particle
	bounds    Bounds
	opts      Options
}
