package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"linux-backdrop/internal/debug"
	"linux-backdrop/internal/engine2D/frame"
	"linux-backdrop/internal/engine2D/parallax"
	"linux-backdrop/internal/engine2D/particle"
	"linux-backdrop/internal/engine2D/tui"
	"linux-backdrop/internal/feed"
	"linux-backdrop/internal/utils"
	"linux-backdrop/internal/wallpaper"
	"linux-backdrop/internal/wallpaper/audio"

	"github.com/gdamore/tcell/v2"
)

// Terminal hosts the backdrop in a tcell screen. Labels stand in for the
// window host's layers; scene images are not drawn.
type Terminal struct {
	scene      wallpaper.Scene
	screen     tcell.Screen
	surface    *tui.Surface
	field      *particle.Field
	engine     *parallax.Engine
	clock      *frame.Clock
	loops      []*frame.Loop
	stats      particle.FrameStats
	repos      []feed.Repository
	cards      []*tui.Label
	embedLabel *tui.Label
	labels     []*tui.Label
	debugLabel *tui.Label
	embed      *feed.Embed
	nowPlaying *feed.NowPlayingSync
	chime      *audio.Chime
	background color.NRGBA
	fps        int
	fpsCount   int
	fpsSince   time.Time
}

func runTerminal(scene wallpaper.Scene, repos []feed.Repository, opts options) error {
	// tcell owns the terminal; log lines would tear the picture.
	if utils.DebugMode {
		f, err := os.Create("linux-backdrop.log")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		utils.SetOutput(f)
	} else {
		utils.SetOutput(io.Discard)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}

	term := NewTerminal(screen, scene, repos, opts)
	defer term.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go term.nowPlaying.Run(ctx, pollInterval(scene))

	term.Run(opts.fps)
	return nil
}

func NewTerminal(screen tcell.Screen, scene wallpaper.Scene, repos []feed.Repository, opts options) *Terminal {
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	background := scene.General.BackgroundColor()
	cols, rows := screen.Size()
	width, height := tui.Units(cols, rows)

	trackID := initialTrackID(scene)
	embed := feed.NewEmbed(trackID)

	term := &Terminal{
		scene:      scene,
		screen:     screen,
		surface:    tui.NewSurface(screen, background),
		field:      newField(scene, width, height, opts.seed),
		clock:      frame.NewClock(),
		repos:      repos,
		embed:      embed,
		nowPlaying: feed.NewNowPlayingSync(feed.NewSpotify(feed.CredentialsFromEnv()), embed, trackID),
		background: background,
		fpsSince:   time.Now(),
	}

	term.cards = tui.CardLabels(repos, scene.Feeds.GitHub.Depth, cols, rows, background)
	term.embedLabel = tui.EmbedLabel(embed, scene.Feeds.NowPlaying.Depth, cols, background)
	term.labels = append(term.labels, sceneLabels(scene, cols, rows, background)...)
	term.labels = append(term.labels, term.cards...)
	term.labels = append(term.labels, term.embedLabel)
	term.debugLabel = &tui.Label{Name: "debug", Style: tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)}

	candidates := make([]parallax.Element, len(term.labels))
	for i, l := range term.labels {
		candidates[i] = l
	}
	term.engine = parallax.NewEngine(parallax.Scan(candidates), parallax.OptionsFromSettings(scene.General.Parallax))
	term.engine.OnResize(width, height)

	if !utils.SilentMode {
		term.chime = audio.NewChime(scene.General.Sound.Volume)
		if err := term.chime.Initialize(); err != nil {
			utils.Warn("Chime disabled: %v", err)
		} else {
			term.nowPlaying.OnChange = func(feed.Track) { term.chime.Play() }
		}
	}

	term.loops = []*frame.Loop{
		frame.Start(term.clock, func() { term.stats = term.field.Step(term.surface) }),
		frame.Start(term.clock, term.engine.Step),
	}
	return term
}

// sceneLabels turns the scene's text layers into labels, mapping the scene
// resolution onto the terminal grid.
func sceneLabels(scene wallpaper.Scene, cols, rows int, background color.NRGBA) []*tui.Label {
	sceneWidth := float64(scene.General.OrthogonalProjection.Width)
	sceneHeight := float64(scene.General.OrthogonalProjection.Height)
	bg := tcell.NewRGBColor(int32(background.R), int32(background.G), int32(background.B))

	var labels []*tui.Label
	for _, layer := range scene.Layers {
		if layer.Text == "" {
			continue
		}
		c := wallpaper.ColorFromString(layer.Color, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		col := int(layer.Origin.X/sceneWidth*float64(cols)) - len([]rune(layer.Text))/2
		if col < 0 {
			col = 0
		}
		labels = append(labels, &tui.Label{
			Name:  layer.Name,
			Col:   col,
			Row:   int(layer.Origin.Y / sceneHeight * float64(rows)),
			Style: tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).Background(bg),
			Depth: layer.Depth,
			Lines: []string{layer.Text},
		})
	}
	return labels
}

func (term *Terminal) Run(fps int) {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go term.pollEvents(eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if !term.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			term.draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is
// closed.
func (term *Terminal) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := term.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (term *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyF8:
			utils.ShowDebugUI = !utils.ShowDebugUI
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		// Pointer sits at the center of its cell.
		term.engine.OnPointerMove((float64(x)+0.5)*tui.CellWidth, (float64(y)+0.5)*tui.CellHeight)
	case *tcell.EventResize:
		term.screen.Sync()
		term.resize()
	}
	return true
}

func (term *Terminal) resize() {
	cols, rows := term.screen.Size()
	width, height := tui.Units(cols, rows)
	utils.Debug("Resize: %dx%d cells", cols, rows)

	term.field.OnResize(width, height)
	term.engine.OnResize(width, height)
	term.surface.Resize(width, height)

	// Keep the registered labels, only move their anchors.
	for i, fresh := range tui.CardLabels(term.repos, term.scene.Feeds.GitHub.Depth, cols, rows, term.background) {
		term.cards[i].Col, term.cards[i].Row = fresh.Col, fresh.Row
	}
	fresh := tui.EmbedLabel(term.embed, term.scene.Feeds.NowPlaying.Depth, cols, term.background)
	term.embedLabel.Col, term.embedLabel.Row, term.embedLabel.Width = fresh.Col, fresh.Row, fresh.Width
}

func (term *Terminal) draw() {
	term.clock.Tick()
	for _, l := range term.labels {
		l.Draw(term.screen)
	}

	term.fpsCount++
	if elapsed := time.Since(term.fpsSince); elapsed >= time.Second {
		term.fps = int(float64(term.fpsCount) / elapsed.Seconds())
		term.fpsCount = 0
		term.fpsSince = time.Now()
	}

	if utils.ShowDebugUI {
		term.debugLabel.Lines = debug.Lines(debug.Snapshot{
			FPS:        term.fps,
			Frames:     term.clock.Frames(),
			Pending:    term.clock.Pending(),
			Stats:      term.stats,
			Camera:     term.engine.Camera(),
			Layers:     len(term.labels),
			Registered: len(term.engine.Elements()),
			TrackID:    term.nowPlaying.LastTrackID(),
		})
		term.debugLabel.Draw(term.screen)
	}
	term.screen.Show()
}

func (term *Terminal) Close() {
	for _, loop := range term.loops {
		loop.Stop()
	}
	if term.chime != nil {
		term.chime.Close()
	}
	term.screen.Fini()
}
