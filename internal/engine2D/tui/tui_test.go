package tui

import (
	"context"
	"image/color"
	"math/rand"
	"testing"

	"linux-backdrop/internal/engine2D/frame"
	"linux-backdrop/internal/engine2D/parallax"
	"linux-backdrop/internal/engine2D/particle"
	"linux-backdrop/internal/feed"
	"linux-backdrop/internal/wallpaper"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBackground = color.NRGBA{R: 5, G: 5, B: 8, A: 255}

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestSurfaceDiscLandsInCell(t *testing.T) {
	screen := newScreen(t, 20, 10)
	surface := NewSurface(screen, testBackground)
	surface.Clear(0, 0, 160, 160)

	green := color.NRGBA{R: 0x00, G: 0xff, B: 0x88, A: 0xff}
	surface.FillCircle(wallpaper.Vec2{X: 20, Y: 40}, 1.5, green, 1)

	assert.Equal(t, discRune, runeAt(screen, 2, 2))
	assert.Equal(t, ' ', runeAt(screen, 3, 2))
	assert.Equal(t, ' ', runeAt(screen, 2, 3))

	_, _, style, _ := screen.GetContent(2, 2)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0x00, 0xff, 0x88), fg)
	assert.Equal(t, tcell.NewRGBColor(5, 5, 8), bg)
}

func TestSurfaceAlphaBlendsWithBackground(t *testing.T) {
	screen := newScreen(t, 4, 4)
	surface := NewSurface(screen, color.NRGBA{A: 255})

	surface.FillCircle(wallpaper.Vec2{X: 4, Y: 8}, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 0.4)

	_, _, style, _ := screen.GetContent(0, 0)
	fg, _, _ := style.Decompose()
	r, g, b := fg.RGB()
	assert.Equal(t, []int32{102, 102, 102}, []int32{r, g, b})
}

func TestSurfaceStrokeLine(t *testing.T) {
	screen := newScreen(t, 20, 10)
	surface := NewSurface(screen, testBackground)
	surface.Clear(0, 0, 160, 160)

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 13}
	surface.FillCircle(wallpaper.Vec2{X: 4, Y: 8}, 1, white, 1)
	surface.StrokeLine(wallpaper.Vec2{X: 76, Y: 8}, wallpaper.Vec2{X: 4, Y: 8}, white, 0.5)

	assert.Equal(t, discRune, runeAt(screen, 0, 0), "line must not cover the disc")
	for x := 1; x <= 9; x++ {
		assert.Equal(t, lineRune, runeAt(screen, x, 0), "cell %d", x)
	}
	assert.Equal(t, ' ', runeAt(screen, 10, 0))
	assert.Equal(t, ' ', runeAt(screen, 5, 1))
}

func TestSurfaceDiagonalLineIsConnected(t *testing.T) {
	screen := newScreen(t, 20, 20)
	surface := NewSurface(screen, testBackground)
	surface.Clear(0, 0, 160, 320)

	surface.StrokeLine(wallpaper.Vec2{X: 4, Y: 8}, wallpaper.Vec2{X: 36, Y: 72}, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 1)

	for i := 0; i <= 4; i++ {
		assert.Equal(t, lineRune, runeAt(screen, i, i), "cell %d,%d", i, i)
	}
}

func TestSurfaceClearResetsDiscs(t *testing.T) {
	screen := newScreen(t, 10, 4)
	surface := NewSurface(screen, testBackground)

	surface.FillCircle(wallpaper.Vec2{X: 12, Y: 8}, 1, color.NRGBA{R: 255, A: 255}, 1)
	surface.Clear(0, 0, 80, 64)
	assert.Equal(t, ' ', runeAt(screen, 1, 0))

	surface.StrokeLine(wallpaper.Vec2{X: 4, Y: 8}, wallpaper.Vec2{X: 20, Y: 8}, color.NRGBA{R: 255, A: 255}, 1)
	assert.Equal(t, lineRune, runeAt(screen, 1, 0))
}

func TestFieldStepsOnTerminal(t *testing.T) {
	screen := newScreen(t, 40, 12)
	surface := NewSurface(screen, testBackground)
	width, height := Units(screen.Size())

	field := particle.NewField(particle.DefaultOptions(), particle.Bounds{Width: width, Height: height}, rand.New(rand.NewSource(7)))
	clock := frame.NewClock()
	frame.Start(clock, func() { field.Step(surface) })

	for i := 0; i < 10; i++ {
		clock.Tick()
	}

	discs := 0
	cols, rows := screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if runeAt(screen, x, y) == discRune {
				discs++
			}
		}
	}
	assert.Greater(t, discs, 0)
	assert.LessOrEqual(t, discs, len(field.Particles))
}

func TestLabelFollowsParallax(t *testing.T) {
	screen := newScreen(t, 80, 24)
	label := &Label{Col: 10, Row: 5, Depth: wallpaper.Depth("1000"), Lines: []string{"hi"}}

	engine := parallax.NewEngine(parallax.Scan([]parallax.Element{label}), parallax.Options{Smoothing: 1, DefaultDepth: 20})
	width, height := Units(80, 24)
	engine.OnResize(width, height)
	engine.OnPointerMove(width/2+16, height/2-32)
	engine.Step()

	col, row := label.Position()
	assert.Equal(t, 8, col)
	assert.Equal(t, 7, row)

	label.Draw(screen)
	assert.Equal(t, 'h', runeAt(screen, 8, 7))
	assert.Equal(t, 'i', runeAt(screen, 9, 7))
}

func TestLabelTruncates(t *testing.T) {
	screen := newScreen(t, 40, 4)
	screen.Fill(' ', tcell.StyleDefault)
	label := &Label{Width: 5, Lines: []string{"abcdefgh"}}
	label.Draw(screen)

	assert.Equal(t, 'a', runeAt(screen, 0, 0))
	assert.Equal(t, '…', runeAt(screen, 4, 0))
	assert.Equal(t, ' ', runeAt(screen, 5, 0))
}

func TestCardLabels(t *testing.T) {
	repos := feed.LoadRepositories(context.Background(), nil, "", feed.MaxCards)

	wide := CardLabels(repos, wallpaper.Depth("25"), 140, 30, testBackground)
	require.Len(t, wide, 4)
	for _, l := range wide {
		assert.Equal(t, wide[0].Row, l.Row)
		_, ok := l.DepthAttr()
		assert.True(t, ok)
	}
	assert.Equal(t, "★ 128 · Python", wide[0].Lines[2])

	narrow := CardLabels(repos, wallpaper.Depth("25"), 60, 30, testBackground)
	require.Len(t, narrow, 4)
	assert.Equal(t, narrow[0].Row, narrow[1].Row)
	assert.Equal(t, narrow[0].Row+4, narrow[2].Row)

	assert.Empty(t, CardLabels(nil, wallpaper.DepthAttr{}, 80, 24, testBackground))
}

func TestEmbedLabelCaption(t *testing.T) {
	embed := feed.NewEmbed(feed.DefaultTrackID)
	label := EmbedLabel(embed, wallpaper.DepthAttr{}, 80, testBackground)
	assert.Equal(t, []string{"♪ Now playing", "Spotify"}, label.Text())

	embed.SetLabel("Song by Band")
	assert.Equal(t, []string{"♪ Now playing", "Song by Band"}, label.Text())
	assert.Equal(t, 43, label.Col)
}
