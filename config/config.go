// Package config reads the demo settings from a toml file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Window struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Title   string `toml:"title"`
	Visible bool   `toml:"visible"`
	VSync   bool   `toml:"vsync"`
}

type Shadow struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	ZNear  float32 `toml:"znear"`
	ZFar   float32 `toml:"zfar"`
}

type Assets struct {
	Shaders string `toml:"shaders"`
	Texture string `toml:"texture"`
	Watch   bool   `toml:"watch"`
}

type Light struct {
	Position [3]float32 `toml:"position"`
	Radius   float32    `toml:"radius"`
	Speed    float32    `toml:"speed"` // radians per second
}

type Config struct {
	Window Window `toml:"window"`
	Shadow Shadow `toml:"shadow"`
	Assets Assets `toml:"assets"`
	Light  Light  `toml:"light"`
}

func Default() *Config {
	return &Config{
		Window: Window{
			Width:   1280,
			Height:  720,
			Title:   "omnidirectional shadow map",
			Visible: true,
			VSync:   true,
		},
		Shadow: Shadow{
			Width:  1024,
			Height: 1024,
			ZNear:  0.1,
			ZFar:   10000,
		},
		Assets: Assets{
			Shaders: "assets/shaders",
			Texture: "assets/textures/checker.png",
			Watch:   true,
		},
		Light: Light{
			Position: [3]float32{0, 4, 0},
			Radius:   3,
			Speed:    0.5,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}

	if err := Parse(data, c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return c, nil
}

// Parse decodes data into c, keys not present keep their value.
func Parse(data []byte, c *Config) error {
	if err := toml.Unmarshal(data, c); err != nil {
		return err
	}

	return c.Validate()
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Shadow.Width <= 0 || c.Shadow.Height <= 0:
		return fmt.Errorf("shadow size %dx%d must be positive", c.Shadow.Width, c.Shadow.Height)
	case c.Shadow.ZNear <= 0 || c.Shadow.ZNear >= c.Shadow.ZFar:
		return fmt.Errorf("shadow planes need 0 < znear < zfar, got %g and %g", c.Shadow.ZNear, c.Shadow.ZFar)
	}

	return nil
}

// Encode writes c as toml.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
