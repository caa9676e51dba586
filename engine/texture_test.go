package engine

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func TestDecodeRGB_NRGBA(t *testing.T) {
	im := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	im.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	im.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 128})
	im.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 0})
	im.SetNRGBA(1, 1, color.NRGBA{10, 20, 30, 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, im))

	pix, w, h, err := decodeRGB(&buf)
	require.NoError(t, err)

	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, []uint8{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 10, 20, 30,
	}, pix)
}

func TestDecodeRGB_Gray(t *testing.T) {
	im := image.NewGray(image.Rect(0, 0, 3, 1))
	im.SetGray(0, 0, color.Gray{0})
	im.SetGray(1, 0, color.Gray{100})
	im.SetGray(2, 0, color.Gray{255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, im))

	pix, w, h, err := decodeRGB(&buf)
	require.NoError(t, err)

	assert.Equal(t, 3, w)
	assert.Equal(t, 1, h)
	assert.Equal(t, []uint8{0, 0, 0, 100, 100, 100, 255, 255, 255}, pix)
}

func TestDecodeRGB_BMP(t *testing.T) {
	im := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			im.SetRGBA(x, y, color.RGBA{uint8(x * 50), uint8(y * 50), 7, 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, im))

	pix, w, h, err := decodeRGB(&buf)
	require.NoError(t, err)

	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	require.Len(t, pix, 3*2*3)

	// top row first
	assert.Equal(t, []uint8{0, 0, 7, 50, 0, 7, 100, 0, 7}, pix[:9])
	assert.Equal(t, []uint8{0, 50, 7, 50, 50, 7, 100, 50, 7}, pix[9:])
}

func TestDecodeRGB_Invalid(t *testing.T) {
	_, _, _, err := decodeRGB(strings.NewReader("not an image"))
	assert.Error(t, err)
}

func TestLoadRGB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checker.png")

	im := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range im.Pix {
		im.Pix[i] = 255
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, im))
	require.NoError(t, f.Close())

	pix, w, h, err := loadRGB(path)
	require.NoError(t, err)
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)
	assert.Len(t, pix, 4*4*3)

	_, _, _, err = loadRGB(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestTextureType_String(t *testing.T) {
	tests := []struct {
		Type     TextureType
		Expected string
	}{
		{TextureDiffuse, "diffuse"},
		{TextureNormal, "normal"},
		{TextureReflection, "reflection"},
		{TextureType(-1), "TextureType(-1)"},
		{TextureType(42), "TextureType(42)"},
	}

	for _, c := range tests {
		if r := c.Type.String(); r != c.Expected {
			t.Errorf("TextureType(%d).String() != %q (got %q)", int(c.Type), c.Expected, r)
		}
	}
}
