package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"linux-backdrop/internal/convert"
	"linux-backdrop/internal/engine2D"
	"linux-backdrop/internal/engine2D/particle"
	"linux-backdrop/internal/feed"
	"linux-backdrop/internal/utils"
	"linux-backdrop/internal/wallpaper"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const pkgCacheDir = "tmp"

// loadScene reads the scene either from an unpacked bundle or from a plain
// scene.json. The scene's directory becomes the first asset root.
func loadScene(scenePath, pkgPath string) (wallpaper.Scene, error) {
	if pkgPath != "" {
		if _, err := os.Stat(pkgCacheDir); os.IsNotExist(err) {
			utils.Info("Unpacking %s...", pkgPath)
			if err := convert.ExtractPkg(pkgPath, pkgCacheDir); err != nil {
				return wallpaper.Scene{}, fmt.Errorf("extract pkg: %w", err)
			}
		}
		convert.PrecacheTextures(pkgCacheDir)

		found, err := utils.FindSceneFile(pkgCacheDir)
		if err != nil {
			return wallpaper.Scene{}, fmt.Errorf("find scene.json in %s: %w", pkgCacheDir, err)
		}
		scenePath = found
	}

	utils.AssetRoots = append([]string{filepath.Dir(scenePath)}, utils.AssetRoots...)
	return wallpaper.LoadScene(scenePath)
}

// fetchRepositories loads the repository cards once at startup. The
// BACKDROP_GITHUB_USER environment variable overrides the scene's user.
func fetchRepositories(scene wallpaper.Scene) []feed.Repository {
	cfg := scene.Feeds.GitHub
	user := cfg.User
	if env := os.Getenv("BACKDROP_GITHUB_USER"); env != "" {
		user = env
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return feed.LoadRepositories(ctx, feed.NewGitHub(cfg.BaseURL), user, cfg.Cards)
}

func newField(scene wallpaper.Scene, width, height float64, seed int64) *particle.Field {
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	opts := particle.OptionsFromSettings(scene.General.Particles)
	return particle.NewField(opts, particle.Bounds{Width: width, Height: height}, rng)
}

// pollInterval parses the now-playing interval, keeping 30s for anything
// unusable.
func pollInterval(scene wallpaper.Scene) time.Duration {
	d, err := time.ParseDuration(scene.Feeds.NowPlaying.Interval)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func initialTrackID(scene wallpaper.Scene) string {
	if id := scene.Feeds.NowPlaying.TrackID; id != "" {
		return id
	}
	return feed.DefaultTrackID
}

// loadLayers uploads the scene's layer images. Missing images are logged and
// the layer keeps drawing its text, if any. Requires an open window.
func loadLayers(scene wallpaper.Scene) []*engine2D.RenderLayer {
	layers := make([]*engine2D.RenderLayer, 0, len(scene.Layers))
	for _, layer := range scene.Layers {
		utils.Debug("Adding layer: %s", layer.Name)

		layers = append(layers, engine2D.NewSceneLayer(layer, loadLayerImage(layer)))
	}
	return layers
}

func loadLayerImage(layer wallpaper.Layer) *rl.Texture2D {
	if layer.Image == "" {
		return nil
	}
	texturePath := utils.FindTextureFile(layer.Image)
	if texturePath == "" {
		utils.Error("Could not resolve texture path for layer %s (Image: %s)", layer.Name, layer.Image)
		return nil
	}
	image, err := convert.LoadTextureNative(texturePath)
	if err != nil {
		utils.Error("Failed to load texture for layer %s from %s: %v", layer.Name, texturePath, err)
		return nil
	}
	return image
}
