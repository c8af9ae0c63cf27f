package convert

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMagic(buf *bytes.Buffer, tag string) {
	buf.WriteString(tag)
	buf.WriteByte(0)
}

func writeU32(buf *bytes.Buffer, values ...uint32) {
	for _, v := range values {
		binary.Write(buf, binary.LittleEndian, v)
	}
}

// buildTex assembles a single image, single mip .tex file.
func buildTex(t *testing.T, container string, format, w, h uint32, pixels []byte, compress bool) []byte {
	t.Helper()
	var buf bytes.Buffer
	writeMagic(&buf, "TEXV0005")
	writeMagic(&buf, "TEXI0001")
	writeU32(&buf, format, 0, w, h, w, h, 0)
	writeMagic(&buf, container)
	writeU32(&buf, 1) // image count
	if container == "TEXB0003" {
		writeU32(&buf, 0)
	}
	writeU32(&buf, 1) // mip count
	writeU32(&buf, w, h)

	payload := pixels
	if container != "TEXB0001" {
		if compress {
			dst := make([]byte, lz4.CompressBlockBound(len(pixels)))
			n, err := lz4.CompressBlock(pixels, dst, nil)
			require.NoError(t, err)
			require.NotZero(t, n, "test pixels must be compressible")
			payload = dst[:n]
			writeU32(&buf, 1, uint32(len(pixels)))
		} else {
			writeU32(&buf, 0, 0)
		}
	}
	writeU32(&buf, uint32(len(payload)))
	buf.Write(payload)
	return buf.Bytes()
}

func TestDecodeTexLZ4RGBA(t *testing.T) {
	const w, h = 16, 16
	pixels := bytes.Repeat([]byte{0x00, 0xff, 0x88, 0xff}, w*h)
	data := buildTex(t, "TEXB0003", texFormatRGBA8888, w, h, pixels, true)

	img, err := DecodeTexReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, w, h), img.Bounds())
	assert.Equal(t, color.RGBA{R: 0x00, G: 0xff, B: 0x88, A: 0xff}, img.At(3, 7))
}

func TestDecodeTexR8(t *testing.T) {
	const w, h = 4, 2
	pixels := []byte{0, 10, 20, 30, 40, 50, 60, 70}
	data := buildTex(t, "TEXB0001", texFormatR8, w, h, pixels, false)

	img, err := DecodeTexReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 50, G: 50, B: 50, A: 255}, img.At(1, 1))
}

func TestDecodeTexRejectsGarbage(t *testing.T) {
	_, err := DecodeTexReader(bytes.NewReader([]byte("PNG not a texture at all")))
	assert.Error(t, err)

	_, err = DecodeTexReader(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestCachePNG(t *testing.T) {
	dir := t.TempDir()
	texPath := filepath.Join(dir, "glow.tex")
	pixels := bytes.Repeat([]byte{1, 2, 3, 255}, 8*8)
	require.NoError(t, os.WriteFile(texPath, buildTex(t, "TEXB0002", texFormatRGBA8888, 8, 8, pixels, false), 0644))

	pngPath, err := CachePNG(texPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "glow.png"), pngPath)
	assert.FileExists(t, pngPath)

	assert.Equal(t, 0, PrecacheTextures(t.TempDir()))
}

// buildPkg writes a scene bundle holding files in order.
func buildPkg(t *testing.T, files map[string]string, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writeString := func(s string) {
		writeU32(&buf, uint32(len(s)))
		buf.WriteString(s)
	}

	writeString("PKGV0001")
	writeU32(&buf, uint32(len(order)))
	offset := uint32(0)
	for _, name := range order {
		writeString(name)
		writeU32(&buf, offset, uint32(len(files[name])))
		offset += uint32(len(files[name]))
	}
	for _, name := range order {
		buf.WriteString(files[name])
	}
	return buf.Bytes()
}

func TestExtractPkg(t *testing.T) {
	files := map[string]string{
		"scene.json":         `{"layers": []}`,
		"layers/moon.png":    "not really a png",
		"sounds/ambient.ogg": "",
	}
	order := []string{"scene.json", "layers/moon.png", "sounds/ambient.ogg"}

	dir := t.TempDir()
	pkgPath := filepath.Join(dir, "backdrop.pkg")
	require.NoError(t, os.WriteFile(pkgPath, buildPkg(t, files, order), 0644))

	out := filepath.Join(dir, "out")
	require.NoError(t, ExtractPkg(pkgPath, out))

	for name, content := range files {
		data, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.Equal(t, content, string(data))
	}
}

func TestExtractPkgRejectsEscapingEntries(t *testing.T) {
	files := map[string]string{"../evil.txt": "x"}
	dir := t.TempDir()
	pkgPath := filepath.Join(dir, "evil.pkg")
	require.NoError(t, os.WriteFile(pkgPath, buildPkg(t, files, []string{"../evil.txt"}), 0644))

	err := ExtractPkg(pkgPath, filepath.Join(dir, "out"))
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "evil.txt"))
}

func TestReadPkgIndexRejectsOtherFiles(t *testing.T) {
	var buf bytes.Buffer
	writeU32(&buf, 4)
	buf.WriteString("RIFF")
	_, _, err := ReadPkgIndex(bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
}
