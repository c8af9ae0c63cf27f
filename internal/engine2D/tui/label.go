package tui

import (
	"math"

	"linux-backdrop/internal/engine2D/parallax"
	"linux-backdrop/internal/wallpaper"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Label is a block of text anchored at a cell. Labels with a depth attribute
// take part in the parallax; their offset is converted from surface units to
// whole cells when drawn.
type Label struct {
	Name  string
	Col   int
	Row   int
	Width int
	Style tcell.Style
	Depth wallpaper.DepthAttr
	Lines []string
	// Caption, when set, replaces Lines on every draw.
	Caption func() []string
	Offset  parallax.Translate
}

func (l *Label) DepthAttr() (string, bool) {
	return l.Depth.Raw, l.Depth.Set
}

func (l *Label) SetTranslate(t parallax.Translate) {
	l.Offset = t
}

func (l *Label) Text() []string {
	if l.Caption != nil {
		return l.Caption()
	}
	return l.Lines
}

// Position is the top-left cell after the parallax offset.
func (l *Label) Position() (int, int) {
	return l.Col + int(math.Round(l.Offset.X/CellWidth)), l.Row + int(math.Round(l.Offset.Y/CellHeight))
}

// Draw writes the label, truncating every line to Width cells when Width is
// set. The first line is bold.
func (l *Label) Draw(screen tcell.Screen) {
	col, row := l.Position()
	for i, line := range l.Text() {
		style := l.Style
		if i == 0 {
			style = style.Bold(true)
		}
		if l.Width > 0 {
			line = runewidth.Truncate(line, l.Width, "…")
		}
		x := col
		for _, r := range line {
			screen.SetContent(x, row+i, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}
}
