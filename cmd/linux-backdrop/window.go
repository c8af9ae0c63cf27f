package main

import (
	"context"
	"fmt"

	"linux-backdrop/internal/debug"
	"linux-backdrop/internal/engine2D"
	"linux-backdrop/internal/engine2D/frame"
	"linux-backdrop/internal/engine2D/parallax"
	"linux-backdrop/internal/engine2D/particle"
	"linux-backdrop/internal/engine2D/shader"
	"linux-backdrop/internal/feed"
	"linux-backdrop/internal/utils"
	"linux-backdrop/internal/wallpaper"
	"linux-backdrop/internal/wallpaper/audio"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Window struct {
	scene        wallpaper.Scene
	renderer     *engine2D.Renderer
	canvas       *engine2D.Canvas
	field        *particle.Field
	engine       *parallax.Engine
	clock        *frame.Clock
	loops        []*frame.Loop
	stats        particle.FrameStats
	audioManager *audio.AudioManager
	pointer      *utils.GlobalPointer
	embed        *feed.Embed
	nowPlaying   *feed.NowPlayingSync
	debugOverlay *debug.DebugOverlay
	screenWidth  int
	screenHeight int
}

func runWindow(scene wallpaper.Scene, repos []feed.Repository, opts options) error {
	width, height := opts.width, opts.height
	if width <= 0 || height <= 0 {
		width = scene.General.OrthogonalProjection.Width
		height = scene.General.OrthogonalProjection.Height
	}

	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), "Linux Backdrop")
	if !rl.IsWindowReady() {
		return fmt.Errorf("open window %dx%d", width, height)
	}
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.fps))

	window := NewWindow(scene, repos, opts)
	defer window.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go window.nowPlaying.Run(ctx, pollInterval(scene))

	window.Run()
	return nil
}

func NewWindow(scene wallpaper.Scene, repos []feed.Repository, opts options) *Window {
	sceneWidth := scene.General.OrthogonalProjection.Width
	sceneHeight := scene.General.OrthogonalProjection.Height
	screenWidth, screenHeight := rl.GetScreenWidth(), rl.GetScreenHeight()

	trackID := initialTrackID(scene)
	embed := feed.NewEmbed(trackID)

	layers := loadLayers(scene)
	layers = append(layers, engine2D.NewCardLayers(repos, scene.Feeds.GitHub, sceneWidth, sceneHeight)...)
	layers = append(layers, engine2D.NewEmbedLayer(embed, scene.Feeds.NowPlaying, sceneWidth, sceneHeight))

	candidates := make([]parallax.Element, len(layers))
	for i, l := range layers {
		candidates[i] = l
	}
	registry := parallax.Scan(candidates)
	utils.Info("Parallax: %d of %d layers registered", len(registry), len(layers))

	canvas := engine2D.NewCanvas(screenWidth, screenHeight)
	renderer := engine2D.NewRenderer(scene, layers, canvas)
	renderer.UpdateViewport(screenWidth, screenHeight)

	if file := scene.General.Shader.File; file != "" {
		effect, err := shader.Load(file, scene.General.Shader.Combos, scene.General.Shader.Constants)
		if err != nil {
			utils.Warn("Canvas shader disabled: %v", err)
		} else {
			renderer.Effect = effect
		}
	}

	window := &Window{
		scene:        scene,
		renderer:     renderer,
		canvas:       canvas,
		field:        newField(scene, float64(screenWidth), float64(screenHeight), opts.seed),
		engine:       parallax.NewEngine(registry, parallax.OptionsFromSettings(scene.General.Parallax)),
		clock:        frame.NewClock(),
		audioManager: audio.NewAudioManager(),
		embed:        embed,
		nowPlaying:   feed.NewNowPlayingSync(feed.NewSpotify(feed.CredentialsFromEnv()), embed, trackID),
		debugOverlay: debug.NewDebugOverlay(),
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
	window.engine.OnResize(float64(screenWidth), float64(screenHeight))

	if scene.General.Parallax.GlobalMouse {
		pointer, err := utils.OpenGlobalPointer()
		if err != nil {
			utils.Warn("Global mouse unavailable, using window pointer: %v", err)
		} else {
			window.pointer = pointer
		}
	}

	window.audioManager.PlayAmbient(scene.General.Sound)

	// Two independent chains on one clock: the field draws into the canvas,
	// the parallax engine only moves layers.
	window.loops = []*frame.Loop{
		frame.Start(window.clock, func() { window.stats = window.field.Step(window.canvas) }),
		frame.Start(window.clock, window.engine.Step),
	}

	return window
}

func (window *Window) Run() {
	for !rl.WindowShouldClose() {
		window.Update()
		window.Draw()
	}
}

func (window *Window) resize(width, height int) {
	utils.Debug("Resize: %dx%d", width, height)
	window.screenWidth, window.screenHeight = width, height
	window.field.OnResize(float64(width), float64(height))
	window.engine.OnResize(float64(width), float64(height))
	window.canvas.Resize(float64(width), float64(height))
	window.renderer.UpdateViewport(width, height)
}

// pointerPosition returns the pointer in window coordinates, from the X11
// root window when the global pointer is open.
func (window *Window) pointerPosition() (float64, float64) {
	if window.pointer != nil {
		x, y, err := window.pointer.Position()
		if err == nil {
			origin := rl.GetWindowPosition()
			return x - float64(origin.X), y - float64(origin.Y)
		}
		utils.Warn("Global mouse query failed, using window pointer: %v", err)
		window.pointer.Close()
		window.pointer = nil
	}
	mPos := rl.GetMousePosition()
	return float64(mPos.X), float64(mPos.Y)
}

func (window *Window) Update() {
	screenWidth, screenHeight := rl.GetScreenWidth(), rl.GetScreenHeight()
	if rl.IsWindowResized() || screenWidth != window.screenWidth || screenHeight != window.screenHeight {
		window.resize(screenWidth, screenHeight)
	}

	x, y := window.pointerPosition()
	window.engine.OnPointerMove(x, y)
	window.renderer.UpdateMouse(x, y, window.engine.Camera().Smooth)

	window.audioManager.Update()

	if rl.IsKeyPressed(rl.KeyF8) {
		utils.ShowDebugUI = !utils.ShowDebugUI
	}
	if utils.ShowDebugUI {
		window.debugOverlay.Update()
	}
}

func (window *Window) Draw() {
	window.canvas.Begin()
	window.clock.Tick()
	window.canvas.End()

	rl.BeginDrawing()
	window.renderer.Render()
	if utils.ShowDebugUI {
		window.debugOverlay.Draw(window.snapshot(), debug.LayerBoxes(window.renderer))
	}
	rl.EndDrawing()
}

func (window *Window) snapshot() debug.Snapshot {
	return debug.Snapshot{
		FPS:        int(rl.GetFPS()),
		Frames:     window.clock.Frames(),
		Pending:    window.clock.Pending(),
		Stats:      window.stats,
		Camera:     window.engine.Camera(),
		Layers:     len(window.renderer.Layers),
		Registered: len(window.engine.Elements()),
		TrackID:    window.nowPlaying.LastTrackID(),
	}
}

func (window *Window) Close() {
	for _, loop := range window.loops {
		loop.Stop()
	}
	window.renderer.Unload()
	window.audioManager.Close()
	if window.pointer != nil {
		window.pointer.Close()
	}
}
