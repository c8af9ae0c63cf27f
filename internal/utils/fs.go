package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// AssetRoots lists the directories searched for scene assets, in order.
// The scene directory (or unpacked bundle) is prepended at load time.
var AssetRoots = []string{"assets"}

var textureExtensions = []string{".tex", ".png", ".jpg", ".jpeg"}

// ResolveAssetPath returns the first existing match of relPath under the
// asset roots. Absolute or already-existing paths are returned unchanged.
func ResolveAssetPath(relPath string) string {
	if relPath == "" {
		return ""
	}
	if _, err := os.Stat(relPath); err == nil {
		return relPath
	}

	for _, root := range AssetRoots {
		p := filepath.Join(root, relPath)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return relPath
}

// FindTextureFile resolves a texture reference that may omit its extension
// ("layers/sky" finds "layers/sky.tex" or "layers/sky.png").
func FindTextureFile(name string) string {
	if name == "" {
		return ""
	}

	if p := ResolveAssetPath(name); fileExists(p) {
		return p
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	for _, ext := range textureExtensions {
		if p := ResolveAssetPath(base + ext); fileExists(p) {
			return p
		}
	}

	return ""
}

var errFound = errors.New("found")

// FindSceneFile walks root for the first scene.json.
func FindSceneFile(root string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == "scene.json" {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", err
	}
	if found == "" {
		return "", os.ErrNotExist
	}
	Debug("Found scene.json at: %s", found)
	return found, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
