package convert

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"linux-backdrop/internal/utils"
)

// FileEntry is one file of a scene bundle (.pkg) table of contents.
type FileEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

func readPkgString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > 1<<16 {
		return "", fmt.Errorf("pkg string too long (%d bytes)", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadPkgIndex reads the bundle header and returns its entries and the
// offset where file payloads start.
func ReadPkgIndex(r io.ReadSeeker) ([]FileEntry, int64, error) {
	version, err := readPkgString(r)
	if err != nil {
		return nil, 0, fmt.Errorf("read pkg version: %w", err)
	}
	if !strings.HasPrefix(version, "PKGV") {
		return nil, 0, fmt.Errorf("not a scene bundle (header %q)", version)
	}
	utils.Debug("Unpacker: Package Version: %s", version)

	var fileCount uint32
	if err := binary.Read(r, binary.LittleEndian, &fileCount); err != nil {
		return nil, 0, fmt.Errorf("read pkg file count: %w", err)
	}

	entries := make([]FileEntry, 0, fileCount)
	for i := uint32(0); i < fileCount; i++ {
		name, err := readPkgString(r)
		if err != nil {
			return nil, 0, fmt.Errorf("read pkg entry %d: %w", i, err)
		}
		entry := FileEntry{Name: name}
		if err := binary.Read(r, binary.LittleEndian, &entry.Offset); err != nil {
			return nil, 0, err
		}
		if err := binary.Read(r, binary.LittleEndian, &entry.Size); err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}

	dataStart, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, 0, err
	}
	return entries, dataStart, nil
}

// ExtractPkg unpacks a scene bundle into outputDir.
func ExtractPkg(pkgPath, outputDir string) error {
	utils.Debug("Unpacker: Opening package %s", pkgPath)
	f, err := os.Open(pkgPath)
	if err != nil {
		return err
	}
	defer f.Close()

	entries, dataStart, err := ReadPkgIndex(f)
	if err != nil {
		return fmt.Errorf("%s: %w", pkgPath, err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	root := filepath.Clean(outputDir)
	for i, entry := range entries {
		destPath := filepath.Join(root, entry.Name)
		if destPath != root && !strings.HasPrefix(destPath, root+string(os.PathSeparator)) {
			return fmt.Errorf("pkg entry %q escapes %s", entry.Name, outputDir)
		}
		utils.Debug("Unpacker: Extracting file %d/%d: %s", i+1, len(entries), entry.Name)

		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}
		if _, err := f.Seek(dataStart+int64(entry.Offset), io.SeekStart); err != nil {
			return err
		}

		out, err := os.Create(destPath)
		if err != nil {
			return err
		}
		_, err = io.CopyN(out, f, int64(entry.Size))
		out.Close()
		if err != nil {
			return fmt.Errorf("extract %s: %w", entry.Name, err)
		}
	}

	utils.Info("Unpacker: extracted %d files from %s", len(entries), filepath.Base(pkgPath))
	return nil
}

// PrecacheTextures decodes every .tex under root to a sibling .png so layer
// loading at startup only touches PNGs. It returns the number converted.
func PrecacheTextures(root string) int {
	var converted int32
	var wg sync.WaitGroup

	// Limit concurrency to avoid RAM spikes
	const maxConcurrency = 4
	sem := make(chan struct{}, maxConcurrency)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.HasSuffix(path, ".tex") {
			return nil
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(p string) {
			defer wg.Done()
			defer func() { <-sem }()
			if _, err := CachePNG(p); err != nil {
				utils.Warn("Failed to convert %s: %v", p, err)
				return
			}
			atomic.AddInt32(&converted, 1)
		}(path)
		return nil
	})
	if err != nil {
		utils.Error("Error walking %s: %v", root, err)
	}

	wg.Wait()
	utils.Info("Texture cache: converted %d textures", converted)
	return int(converted)
}
