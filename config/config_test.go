package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.NoError(t, c.Validate())
	assert.Equal(t, float32(0.1), c.Shadow.ZNear)
	assert.Equal(t, float32(10000), c.Shadow.ZFar)
	assert.Equal(t, 1024, c.Shadow.Width)
}

func TestLoad_Missing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad_Partial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	data := `
[window]
width = 640
height = 480

[shadow]
width = 512
zfar = 50.0

[light]
position = [1.0, 2.0, 3.0]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 640, c.Window.Width)
	assert.Equal(t, 480, c.Window.Height)
	assert.Equal(t, Default().Window.Title, c.Window.Title)

	assert.Equal(t, 512, c.Shadow.Width)
	assert.Equal(t, 1024, c.Shadow.Height)
	assert.Equal(t, float32(0.1), c.Shadow.ZNear)
	assert.Equal(t, float32(50), c.Shadow.ZFar)

	assert.Equal(t, [3]float32{1, 2, 3}, c.Light.Position)
	assert.Equal(t, Default().Assets, c.Assets)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window\nwidth = "), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		Name   string
		Modify func(c *Config)
		Valid  bool
	}{
		{"default", func(c *Config) {}, true},
		{"zero window", func(c *Config) { c.Window.Width = 0 }, false},
		{"negative shadow", func(c *Config) { c.Shadow.Height = -1 }, false},
		{"zero near", func(c *Config) { c.Shadow.ZNear = 0 }, false},
		{"near beyond far", func(c *Config) { c.Shadow.ZNear, c.Shadow.ZFar = 10, 1 }, false},
	}

	for _, tc := range tests {
		c := Default()
		tc.Modify(c)

		if err := c.Validate(); (err == nil) != tc.Valid {
			t.Errorf("%s: Validate() = %v, valid %v", tc.Name, err, tc.Valid)
		}
	}
}

func TestEncode(t *testing.T) {
	c := Default()
	c.Light.Radius = 7

	data, err := c.Encode()
	require.NoError(t, err)

	d := Default()
	require.NoError(t, Parse(data, d))
	assert.Equal(t, c, d)
}
