package engine

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestUniformSetter(t *testing.T) {
	tests := []struct {
		Value     interface{}
		Supported bool
	}{
		{true, true},
		{1, true},
		{int32(-1), true},
		{uint32(7), true},
		{float32(0.5), true},
		{0.25, true},
		{mgl32.Vec2{1, 2}, true},
		{mgl32.Vec3{1, 2, 3}, true},
		{mgl32.Vec4{1, 2, 3, 4}, true},
		{mgl32.Ident3(), true},
		{mgl32.Ident4(), true},

		{nil, false},
		{"diffuse", false},
		{int64(1), false},
		{[]float32{1, 2}, false},
		{mgl32.Mat2{}, false},
		{&mgl32.Vec3{}, false},
	}

	for _, c := range tests {
		f, err := uniformSetter(c.Value)

		if c.Supported {
			if err != nil || f == nil {
				t.Errorf("uniformSetter(%T) failed: %v", c.Value, err)
			}
			continue
		}

		if !errors.Is(err, ErrUnsupportedUniform) {
			t.Errorf("uniformSetter(%T) != ErrUnsupportedUniform (got %v)", c.Value, err)
		}
	}
}

func TestUniformCache_UnsupportedBeforeLookup(t *testing.T) {
	// no gl context: a location lookup would crash
	c := newUniformCache(1)

	if err := c.set("zFar", "far"); !errors.Is(err, ErrUnsupportedUniform) {
		t.Errorf("set(string) != ErrUnsupportedUniform (got %v)", err)
	}
	if len(c.locations) != 0 {
		t.Errorf("locations looked up: %v", c.locations)
	}
}
