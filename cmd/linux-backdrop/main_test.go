package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"linux-backdrop/internal/engine2D/tui"
	"linux-backdrop/internal/feed"
	"linux-backdrop/internal/utils"
	"linux-backdrop/internal/wallpaper"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keepAssetRoots(t *testing.T) {
	saved := utils.AssetRoots
	t.Cleanup(func() { utils.AssetRoots = saved })
}

func TestPollInterval(t *testing.T) {
	scene := wallpaper.DefaultScene()
	assert.Equal(t, 30*time.Second, pollInterval(scene))

	scene.Feeds.NowPlaying.Interval = "5s"
	assert.Equal(t, 5*time.Second, pollInterval(scene))

	for _, bad := range []string{"soon", "-1s", "0"} {
		scene.Feeds.NowPlaying.Interval = bad
		assert.Equal(t, 30*time.Second, pollInterval(scene), bad)
	}
}

func TestInitialTrackID(t *testing.T) {
	scene := wallpaper.DefaultScene()
	assert.Equal(t, feed.DefaultTrackID, initialTrackID(scene))

	scene.Feeds.NowPlaying.TrackID = "custom"
	assert.Equal(t, "custom", initialTrackID(scene))
}

func TestLoadSceneAddsAssetRoot(t *testing.T) {
	keepAssetRoots(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"general": {"particles": {"count": 8}}}`), 0644))

	scene, err := loadScene(path, "")
	require.NoError(t, err)
	assert.Equal(t, 8, scene.General.Particles.Count)
	assert.Equal(t, dir, utils.AssetRoots[0])
}

func TestFetchRepositoriesFallsBackToMocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/from-env/repos", r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()
	t.Setenv("BACKDROP_GITHUB_USER", "from-env")

	scene := wallpaper.DefaultScene()
	scene.Feeds.GitHub.User = "from-scene"
	scene.Feeds.GitHub.BaseURL = server.URL

	repos := fetchRepositories(scene)
	require.Len(t, repos, 4)
	assert.Equal(t, "security-scanner", repos[0].Name)
}

func TestNewFieldSeed(t *testing.T) {
	scene := wallpaper.DefaultScene()
	a := newField(scene, 800, 600, 42)
	b := newField(scene, 800, 600, 42)
	require.Len(t, a.Particles, 60)
	assert.Equal(t, a.Particles[10].Position, b.Particles[10].Position)
}

func newTestTerminal(t *testing.T, cols, rows int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	utils.SilentMode = true
	t.Cleanup(func() { utils.SilentMode = false })

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)

	scene := wallpaper.DefaultScene()
	scene.Layers = []wallpaper.Layer{{Name: "title", Text: "hello", Origin: wallpaper.Vec2{X: 640, Y: 72}, Depth: wallpaper.Depth("0")}}
	repos := feed.LoadRepositories(context.Background(), nil, "", feed.MaxCards)

	term := NewTerminal(screen, scene, repos, options{seed: 1})
	t.Cleanup(term.Close)
	return term, screen
}

func TestTerminalDrawsLabelsOverField(t *testing.T) {
	term, screen := newTestTerminal(t, 140, 30)
	require.Len(t, term.cards, 4)
	assert.Len(t, term.engine.Elements(), 5, "title and four cards carry a depth")

	for i := 0; i < 3; i++ {
		term.draw()
	}
	assert.Equal(t, uint64(3), term.clock.Frames())
	assert.Equal(t, 2, term.clock.Pending())
	assert.Equal(t, 60, term.stats.Particles)

	card := term.cards[0]
	r, _, _, _ := screen.GetContent(card.Col, card.Row)
	assert.Equal(t, 's', r)

	title := term.labels[0]
	r, _, _, _ = screen.GetContent(title.Col, title.Row)
	assert.Equal(t, 'h', r)
}

func TestTerminalPointerMovesCards(t *testing.T) {
	term, _ := newTestTerminal(t, 140, 30)
	term.draw()

	assert.True(t, term.handleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone)))
	for i := 0; i < 200; i++ {
		term.draw()
	}

	width, height := tui.Units(140, 30)
	camera := term.engine.Camera()
	assert.InDelta(t, 4-width/2, camera.Target.X, 1e-9)
	assert.InDelta(t, 8-height/2, camera.Target.Y, 1e-9)

	col, _ := term.cards[0].Position()
	assert.Greater(t, col, term.cards[0].Col, "pointer on the left pushes cards right")

	title := term.labels[0]
	col, row := title.Position()
	assert.Equal(t, title.Col, col, "depth 0 never moves")
	assert.Equal(t, title.Row, row)
}

func TestTerminalResizeAndQuit(t *testing.T) {
	term, screen := newTestTerminal(t, 140, 30)

	screen.SetSize(60, 30)
	assert.True(t, term.handleEvent(tcell.NewEventResize(60, 30)))
	assert.Equal(t, term.cards[0].Row, term.cards[1].Row)
	assert.Equal(t, term.cards[0].Row+4, term.cards[2].Row)
	width, height := tui.Units(60, 30)
	assert.Equal(t, width, term.field.Bounds().Width)
	assert.Equal(t, height, term.field.Bounds().Height)

	assert.True(t, term.handleEvent(tcell.NewEventKey(tcell.KeyF8, 0, tcell.ModNone)))
	assert.True(t, utils.ShowDebugUI)
	term.draw()
	utils.ShowDebugUI = false

	assert.False(t, term.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, term.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestPollEventsStopsWhenNobodyListens(t *testing.T) {
	term, screen := newTestTerminal(t, 80, 24)

	// Nothing reads this channel, as after Run has returned.
	blocked := make(chan tcell.Event)
	done := make(chan struct{})
	close(done)
	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone)))

	stopped := make(chan struct{})
	go func() {
		term.pollEvents(blocked, done)
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("pollEvents kept blocking on a channel nobody reads")
	}
}
