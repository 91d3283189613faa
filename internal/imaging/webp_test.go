package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestToWebP_Downscales(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngOf(t, 2560, 1440)))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, MaxWidth, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
}

func TestToWebP_KeepsSmallImages(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngOf(t, 64, 32)))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
}

func TestToWebP_RejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("definitely not an image"))
	assert.True(t, errors.Is(err, ErrUnsupported))
}

// withDeclaredSize rewrites the IHDR dimensions of a PNG without touching
// its pixel data.
func withDeclaredSize(t *testing.T, data []byte, w, h uint32) []byte {
	t.Helper()
	out := append([]byte(nil), data...)
	require.Equal(t, "IHDR", string(out[12:16]))

	binary.BigEndian.PutUint32(out[16:20], w)
	binary.BigEndian.PutUint32(out[20:24], h)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestToWebP_RejectsHugeDeclaredDimensions(t *testing.T) {
	small := pngOf(t, 8, 8)
	huge := withDeclaredSize(t, small, 16000, 16000)

	_, err := ToWebP(bytes.NewReader(huge))

	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestToWebP_RejectsOversizedUpload(t *testing.T) {
	_, err := ToWebP(bytes.NewReader(make([]byte, MaxUploadBytes+1)))
	assert.True(t, errors.Is(err, ErrTooLarge))
}
