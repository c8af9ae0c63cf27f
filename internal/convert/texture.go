package convert

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"linux-backdrop/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"
)

// Wallpaper Engine texture formats seen in layer bundles.
const (
	texFormatRGBA8888 = 0
	texFormatDXT5     = 4
	texFormatDXT3     = 6
	texFormatDXT1     = 7
	texFormatRG88     = 8
	texFormatR8       = 9
)

type texReader struct {
	r   io.Reader
	err error
}

func (t *texReader) uint32() uint32 {
	var v uint32
	if t.err == nil {
		t.err = binary.Read(t.r, binary.LittleEndian, &v)
	}
	return v
}

// magic reads an 8 byte tag plus its NUL terminator.
func (t *texReader) magic() string {
	b := make([]byte, 9)
	if t.err == nil {
		_, t.err = io.ReadFull(t.r, b)
	}
	return string(bytes.Trim(b, "\x00"))
}

func (t *texReader) bytes(n uint32) []byte {
	if t.err != nil {
		return nil
	}
	b := make([]byte, n)
	_, t.err = io.ReadFull(t.r, b)
	return b
}

// DecodeTex decodes the first mip of the first image in a .tex file.
func DecodeTex(path string) (image.Image, error) {
	utils.Debug("Decoding texture: %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := DecodeTexReader(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func DecodeTexReader(r io.Reader) (image.Image, error) {
	t := &texReader{r: r}

	if magic := t.magic(); t.err == nil && magic != "TEXV0005" {
		return nil, fmt.Errorf("invalid magic: %s", magic)
	}
	t.magic() // TEXI0001

	format := t.uint32()
	t.uint32() // flags
	t.uint32() // texture width
	t.uint32() // texture height
	imgW := t.uint32()
	imgH := t.uint32()
	t.uint32()

	container := t.magic()
	imageCount := t.uint32()
	if container == "TEXB0003" {
		t.uint32() // freeimage format
	}
	if t.err != nil {
		return nil, t.err
	}
	if imageCount == 0 {
		return nil, fmt.Errorf("no image found in texture")
	}

	mipmapCount := t.uint32()
	if t.err == nil && mipmapCount == 0 {
		return nil, fmt.Errorf("no mipmap found in texture")
	}

	mW := t.uint32()
	mH := t.uint32()
	var isLZ4 bool
	var decompressedSize uint32
	if container != "TEXB0001" {
		isLZ4 = t.uint32() == 1
		decompressedSize = t.uint32()
	}
	data := t.bytes(t.uint32())
	if t.err != nil {
		return nil, t.err
	}

	if isLZ4 {
		utils.Debug("    Decompressing LZ4: %d -> %d", len(data), decompressedSize)
		decoded := make([]byte, decompressedSize)
		n, err := lz4.UncompressBlock(data, decoded)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		data = decoded[:n]
	}

	pix, err := decodePixels(data, format, mW, mH)
	if err != nil {
		return nil, err
	}

	rgba := &image.RGBA{
		Pix:    pix,
		Stride: int(mW * 4),
		Rect:   image.Rect(0, 0, int(mW), int(mH)),
	}
	if imgW == 0 || imgH == 0 || imgW > mW || imgH > mH {
		return rgba, nil
	}
	return rgba.SubImage(image.Rect(0, 0, int(imgW), int(imgH))), nil
}

func decodePixels(data []byte, format, w, h uint32) ([]byte, error) {
	blocks := ((w + 3) / 4) * ((h + 3) / 4)
	size := uint32(len(data))

	switch {
	case size == w*h*4:
		pix := make([]byte, len(data))
		copy(pix, data)
		return pix, nil
	case format == texFormatDXT5 || format == texFormatDXT3 || size == blocks*16:
		return dxt.DecodeDXT5(data, uint(w), uint(h))
	case format == texFormatDXT1 || size == blocks*8:
		return dxt.DecodeDXT1(data, uint(w), uint(h))
	case format == texFormatR8 && size == w*h:
		pix := make([]byte, w*h*4)
		for i, v := range data {
			pix[i*4] = v
			pix[i*4+1] = v
			pix[i*4+2] = v
			pix[i*4+3] = 255
		}
		return pix, nil
	case format == texFormatRG88 && size == w*h*2:
		pix := make([]byte, w*h*4)
		for i := uint32(0); i < w*h; i++ {
			lum, alpha := data[i*2], data[i*2+1]
			pix[i*4] = lum
			pix[i*4+1] = lum
			pix[i*4+2] = lum
			pix[i*4+3] = alpha
		}
		return pix, nil
	}
	return nil, fmt.Errorf("unsupported format %d with size %d", format, size)
}

// CachePNG converts a .tex to a sibling .png once and returns the PNG path.
func CachePNG(texPath string) (string, error) {
	pngPath := strings.TrimSuffix(texPath, ".tex") + ".png"
	if _, err := os.Stat(pngPath); err == nil {
		return pngPath, nil
	}

	img, err := DecodeTex(texPath)
	if err != nil {
		return "", err
	}

	f, err := os.Create(pngPath)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(pngPath)
		return "", fmt.Errorf("encode %s: %w", pngPath, err)
	}
	return pngPath, f.Close()
}

// LoadTextureNative uploads a layer image to the GPU. Requires an open window.
func LoadTextureNative(path string) (*rl.Texture2D, error) {
	if strings.HasSuffix(path, ".tex") {
		pngPath, err := CachePNG(path)
		if err != nil {
			return nil, err
		}
		path = pngPath
	}

	texture := rl.LoadTexture(path)
	if texture.ID == 0 {
		return nil, fmt.Errorf("raylib could not load %s", path)
	}
	return &texture, nil
}
