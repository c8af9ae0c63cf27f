package parallax

import (
	"math"
	"testing"

	"linux-backdrop/internal/wallpaper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeElement struct {
	depth     string
	hasDepth  bool
	translate Translate
	writes    int
}

func (f *fakeElement) DepthAttr() (string, bool) { return f.depth, f.hasDepth }

func (f *fakeElement) SetTranslate(t Translate) {
	f.translate = t
	f.writes++
}

func tagged(depth string) *fakeElement {
	return &fakeElement{depth: depth, hasDepth: true}
}

func TestSmoothingConvergence(t *testing.T) {
	e := NewEngine(nil, DefaultOptions())
	e.OnResize(200, 200)
	e.OnPointerMove(200, 100)
	require.Equal(t, wallpaper.Vec2{X: 100, Y: 0}, e.Camera().Target)

	for k := 1; k <= 100; k++ {
		e.Step()
		want := 100 * (1 - math.Pow(0.92, float64(k)))
		require.InDelta(t, want, e.Camera().Smooth.X, 1e-9, "frame %d", k)
		require.Equal(t, 0.0, e.Camera().Smooth.Y)

		if k == 50 {
			assert.InDelta(t, 100, e.Camera().Smooth.X, 1.6)
		}
		if k >= 83 {
			assert.InDelta(t, 100, e.Camera().Smooth.X, 0.1)
		}
	}
}

func TestPointerMoveIsAWriteOnly(t *testing.T) {
	el := tagged("20")
	e := NewEngine([]Element{el}, DefaultOptions())
	e.OnResize(1000, 800)

	e.OnPointerMove(0, 0)
	e.OnPointerMove(900, 100)

	assert.Equal(t, wallpaper.Vec2{X: 400, Y: -300}, e.Camera().Target)
	assert.Equal(t, wallpaper.Vec2{}, e.Camera().Smooth)
	assert.Equal(t, 0, el.writes)
}

func TestElementOffsets(t *testing.T) {
	deep := tagged("25")
	fallback := tagged("not a number")
	empty := tagged("")
	negative := tagged("-10")
	e := NewEngine([]Element{deep, fallback, empty, negative}, Options{Smoothing: 1, DefaultDepth: 20})
	e.OnResize(0, 0)
	e.OnPointerMove(100, -40)

	e.Step()

	assert.InDelta(t, -2.5, deep.translate.X, 1e-12)
	assert.InDelta(t, 1.0, deep.translate.Y, 1e-12)
	assert.Equal(t, 0.0, deep.translate.Z)

	assert.InDelta(t, -2.0, fallback.translate.X, 1e-12)
	assert.InDelta(t, 0.8, fallback.translate.Y, 1e-12)
	assert.Equal(t, fallback.translate, empty.translate)

	assert.InDelta(t, 1.0, negative.translate.X, 1e-12)
	assert.InDelta(t, -0.4, negative.translate.Y, 1e-12)
}

func TestDepthZeroNeverMoves(t *testing.T) {
	still := tagged("0")
	e := NewEngine([]Element{still}, DefaultOptions())
	e.OnResize(1920, 1080)

	moves := [][2]float64{{0, 0}, {1920, 1080}, {-500, 40}, {960, 2000}, {3, 7}}
	for _, m := range moves {
		e.OnPointerMove(m[0], m[1])
		for i := 0; i < 20; i++ {
			e.Step()
			require.Equal(t, Translate{}, still.translate)
		}
	}
	assert.Equal(t, 100, still.writes)
}

func TestScanKeepsOnlyTaggedElements(t *testing.T) {
	a := tagged("10")
	b := &fakeElement{}
	c := tagged("")

	registry := Scan([]Element{a, b, c})
	assert.Equal(t, []Element{a, c}, registry)
	assert.Empty(t, Scan(nil))
}

func TestParseDepth(t *testing.T) {
	examples := []struct {
		Raw  string
		Want float64
	}{
		{Raw: "25", Want: 25},
		{Raw: " 12.5 ", Want: 12.5},
		{Raw: "0", Want: 0},
		{Raw: "", Want: 20},
		{Raw: "deep", Want: 20},
		{Raw: "NaN", Want: 20},
		{Raw: "+Inf", Want: 20},
	}

	for _, example := range examples {
		t.Run(example.Raw, func(t *testing.T) {
			assert.Equal(t, example.Want, ParseDepth(example.Raw, 20))
		})
	}
}

func TestOptionsFromSettings(t *testing.T) {
	assert.Equal(t, DefaultOptions(), OptionsFromSettings(wallpaper.ParallaxSettings{}))
	assert.Equal(t, Options{Smoothing: 0.5, DefaultDepth: 30},
		OptionsFromSettings(wallpaper.ParallaxSettings{Smoothing: 0.5, DefaultDepth: 30}))
	assert.Equal(t, DefaultOptions(), OptionsFromSettings(wallpaper.ParallaxSettings{Smoothing: 2}))
}
