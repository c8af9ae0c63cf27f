package tui

import (
	"fmt"
	"image/color"

	"linux-backdrop/internal/feed"
	"linux-backdrop/internal/wallpaper"

	"github.com/gdamore/tcell/v2"
)

const (
	cardWidth = 28
	cardGap   = 2
)

var (
	cardStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xe0, 0xe0, 0xe0))
	embedStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x1d, 0xb9, 0x54))
)

// CardLabels lays the repository cards out in a row in the lower third of a
// cols x rows terminal. Cards that do not fit are wrapped onto a new row.
func CardLabels(repos []feed.Repository, depth wallpaper.DepthAttr, cols, rows int, background color.NRGBA) []*Label {
	perRow := (cols + cardGap) / (cardWidth + cardGap)
	if perRow < 1 {
		perRow = 1
	}
	if perRow > len(repos) {
		perRow = len(repos)
	}

	labels := make([]*Label, 0, len(repos))
	if len(repos) == 0 {
		return labels
	}
	width := perRow*cardWidth + (perRow-1)*cardGap
	left := (cols - width) / 2
	if left < 0 {
		left = 0
	}
	top := rows * 2 / 3

	bg := tcell.NewRGBColor(int32(background.R), int32(background.G), int32(background.B))
	for i, repo := range repos {
		labels = append(labels, &Label{
			Name:  "repo:" + repo.Name,
			Col:   left + (i%perRow)*(cardWidth+cardGap),
			Row:   top + (i/perRow)*4,
			Width: cardWidth,
			Style: cardStyle.Background(bg),
			Depth: depth,
			Lines: []string{
				repo.Name,
				repo.DisplayDescription(),
				fmt.Sprintf("★ %d · %s", repo.Stars, repo.DisplayLanguage()),
			},
		})
	}
	return labels
}

// EmbedLabel shows the now-playing track in the top right corner.
func EmbedLabel(embed *feed.Embed, depth wallpaper.DepthAttr, cols int, background color.NRGBA) *Label {
	width := 36
	if width > cols {
		width = cols
	}
	col := cols - width - 1
	if col < 0 {
		col = 0
	}
	bg := tcell.NewRGBColor(int32(background.R), int32(background.G), int32(background.B))
	return &Label{
		Name:  "now-playing",
		Col:   col,
		Row:   1,
		Width: width,
		Style: embedStyle.Background(bg),
		Depth: depth,
		Caption: func() []string {
			label := embed.Label()
			if label == "" {
				label = "Spotify"
			}
			return []string{"♪ Now playing", label}
		},
	}
}
