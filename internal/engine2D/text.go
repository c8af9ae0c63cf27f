package engine2D

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"linux-backdrop/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var fontCache = make(map[string]rl.Font)

// getFont returns a cached font face for size, loaded from assets/fonts.
func getFont(size float32) rl.Font {
	cacheKey := "default_" + strings.ReplaceAll(strconv.FormatFloat(float64(size), 'f', 2, 64), ".", "_")
	if font, ok := fontCache[cacheKey]; ok {
		return font
	}

	fontPath := utils.ResolveAssetPath("fonts/NotoSans-Regular.ttf")
	if _, err := os.Stat(fontPath); err != nil {
		var files []string
		for _, root := range utils.AssetRoots {
			matches, _ := filepath.Glob(filepath.Join(root, "fonts", "*.ttf"))
			files = append(files, matches...)
		}
		if len(files) == 0 {
			utils.Warn("No fonts found in assets/fonts")
			font := rl.GetFontDefault()
			fontCache[cacheKey] = font
			return font
		}
		fontPath = files[0]
	}

	codepoints := fontCodepoints()
	font := rl.LoadFontEx(fontPath, int32(size), codepoints, int32(len(codepoints)))
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)

	fontCache[cacheKey] = font
	return font
}

// ellipsis marks a line shortened by fitLine.
const ellipsis = '…'

// fontCodepoints is printable ASCII plus the glyphs the cards and fitLine
// draw outside it.
func fontCodepoints() []rune {
	codepoints := make([]rune, 0, 95+3)
	for r := rune(32); r < 127; r++ {
		codepoints = append(codepoints, r)
	}
	return append(codepoints, '★', '·', ellipsis)
}

// drawLines writes lines top-down inside rect with padding, clipping each
// line to the rect width. The first line is drawn larger.
func drawLines(lines []string, rect rl.Rectangle, renderScale float64, tint rl.Color) {
	if len(lines) == 0 {
		return
	}
	padding := float32(12 * renderScale)
	titleSize := float32(20 * renderScale)
	bodySize := float32(14 * renderScale)
	if bodySize < 8 {
		return
	}

	maxWidth := rect.Width - 2*padding
	y := rect.Y + padding
	for i, line := range lines {
		size := bodySize
		col := rl.Fade(tint, 0.7)
		if i == 0 {
			size = titleSize
			col = tint
		}
		font := getFont(size)
		line = fitLine(line, func(s string) float32 { return rl.MeasureTextEx(font, s, size, 0).X }, maxWidth)
		if y+size > rect.Y+rect.Height {
			return
		}
		rl.DrawTextEx(font, line, rl.NewVector2(rect.X+padding, y), size, 0, col)
		y += size + 4*float32(renderScale)
	}
}

// fitLine shortens s with an ellipsis until measure reports it fits max.
func fitLine(s string, measure func(string) float32, max float32) string {
	if max <= 0 || measure(s) <= max {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(append(runes, ellipsis))
		if measure(candidate) <= max {
			return candidate
		}
	}
	return ""
}

func unloadFonts() {
	for key, font := range fontCache {
		if font.Texture.ID != rl.GetFontDefault().Texture.ID {
			rl.UnloadFont(font)
		}
		delete(fontCache, key)
	}
}
