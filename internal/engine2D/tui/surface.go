// Package tui renders the backdrop into a terminal through tcell. One cell
// covers CellWidth x CellHeight surface units, so the field keeps the same
// coordinates and speeds as in the window host.
package tui

import (
	"image/color"
	"math"

	"linux-backdrop/internal/wallpaper"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	CellWidth  = 8
	CellHeight = 16
)

const (
	discRune = '•'
	lineRune = '·'
	// Lines are drawn at a few percent alpha; below this floor they would
	// vanish into the background on a 24 bit terminal.
	minLineAlpha = 0.2
)

type cell struct {
	x, y int
}

// Surface implements particle.Surface on a tcell screen.
type Surface struct {
	screen tcell.Screen
	bg     colorful.Color
	width  float64
	height float64
	discs  map[cell]bool
}

func NewSurface(screen tcell.Screen, background color.NRGBA) *Surface {
	cols, rows := screen.Size()
	return &Surface{
		screen: screen,
		bg:     toColorful(background),
		width:  float64(cols * CellWidth),
		height: float64(rows * CellHeight),
		discs:  make(map[cell]bool),
	}
}

// Units converts a terminal size in cells to surface units.
func Units(cols, rows int) (float64, float64) {
	return float64(cols * CellWidth), float64(rows * CellHeight)
}

// CellAt returns the cell holding a surface point.
func CellAt(p wallpaper.Vec2) (int, int) {
	return int(math.Floor(p.X / CellWidth)), int(math.Floor(p.Y / CellHeight))
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// blend mixes c over the background at alpha.
func (s *Surface) blend(c color.NRGBA, alpha float64) tcell.Color {
	alpha = math.Max(0, math.Min(1, alpha))
	return toTcell(s.bg.BlendRgb(toColorful(c), alpha))
}

func (s *Surface) background() tcell.Style {
	return tcell.StyleDefault.Background(toTcell(s.bg))
}

func (s *Surface) Resize(width, height float64) {
	s.width = width
	s.height = height
}

func (s *Surface) Clear(x, y, width, height float64) {
	x0, y0 := CellAt(wallpaper.Vec2{X: x, Y: y})
	x1 := int(math.Ceil((x + width) / CellWidth))
	y1 := int(math.Ceil((y + height) / CellHeight))
	style := s.background()

	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			s.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
	s.discs = make(map[cell]bool)
}

// FillCircle marks every cell whose center lies inside the disc, and at
// least the cell holding the center.
func (s *Surface) FillCircle(center wallpaper.Vec2, radius float64, c color.NRGBA, alpha float64) {
	style := s.background().Foreground(s.blend(c, alpha*float64(c.A)/255))

	cx, cy := CellAt(center)
	s.setDisc(cx, cy, style)

	r := int(math.Ceil(radius / CellWidth))
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			mx := (float64(x) + 0.5) * CellWidth
			my := (float64(y) + 0.5) * CellHeight
			if math.Hypot(mx-center.X, my-center.Y) <= radius {
				s.setDisc(x, y, style)
			}
		}
	}
}

func (s *Surface) setDisc(x, y int, style tcell.Style) {
	s.screen.SetContent(x, y, discRune, nil, style)
	s.discs[cell{x, y}] = true
}

// StrokeLine walks the cells between both ends (Bresenham). Cells holding a
// disc drawn this frame are left alone. width is ignored; a cell is the
// thinnest line a terminal has.
func (s *Surface) StrokeLine(from, to wallpaper.Vec2, c color.NRGBA, width float64) {
	alpha := math.Max(float64(c.A)/255, minLineAlpha)
	style := s.background().Foreground(s.blend(c, alpha))

	x0, y0 := CellAt(from)
	x1, y1 := CellAt(to)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		if !s.discs[cell{x0, y0}] {
			s.screen.SetContent(x0, y0, lineRune, nil, style)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
