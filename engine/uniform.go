package engine

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// uniformFunc writes a value to a uniform location of a program.
type uniformFunc func(program uint32, location int32)

// uniformSetter picks the glProgramUniform call for a value. It does not
// touch GL, unsupported types are rejected before any location lookup.
func uniformSetter(value interface{}) (uniformFunc, error) {
	switch v := value.(type) {
	case bool:
		var i int32
		if v {
			i = 1
		}
		return func(p uint32, l int32) { gl.ProgramUniform1i(p, l, i) }, nil
	case int:
		return func(p uint32, l int32) { gl.ProgramUniform1i(p, l, int32(v)) }, nil
	case int32:
		return func(p uint32, l int32) { gl.ProgramUniform1i(p, l, v) }, nil
	case uint32:
		return func(p uint32, l int32) { gl.ProgramUniform1ui(p, l, v) }, nil
	case float32:
		return func(p uint32, l int32) { gl.ProgramUniform1f(p, l, v) }, nil
	case float64:
		return func(p uint32, l int32) { gl.ProgramUniform1f(p, l, float32(v)) }, nil

	case mgl32.Vec2:
		return func(p uint32, l int32) { gl.ProgramUniform2f(p, l, v[0], v[1]) }, nil
	case mgl32.Vec3:
		return func(p uint32, l int32) { gl.ProgramUniform3f(p, l, v[0], v[1], v[2]) }, nil
	case mgl32.Vec4:
		return func(p uint32, l int32) { gl.ProgramUniform4f(p, l, v[0], v[1], v[2], v[3]) }, nil

	case mgl32.Mat3:
		return func(p uint32, l int32) { gl.ProgramUniformMatrix3fv(p, l, 1, false, &v[0]) }, nil
	case mgl32.Mat4:
		return func(p uint32, l int32) { gl.ProgramUniformMatrix4fv(p, l, 1, false, &v[0]) }, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedUniform, value)
}

// uniformCache keeps the locations of one program, -1 included.
type uniformCache struct {
	program   uint32
	locations map[string]int32
}

func newUniformCache(program uint32) *uniformCache {
	return &uniformCache{
		program:   program,
		locations: map[string]int32{},
	}
}

func (c *uniformCache) location(name string) int32 {
	if l, found := c.locations[name]; found {
		return l
	}

	l := gl.GetUniformLocation(c.program, cstr(name))
	c.locations[name] = l
	return l
}

// reset is needed after the program was relinked
func (c *uniformCache) reset(program uint32) {
	c.program = program
	c.locations = map[string]int32{}
}

func (c *uniformCache) set(name string, value interface{}) error {
	f, err := uniformSetter(value)
	if err != nil {
		return fmt.Errorf("uniform %q: %w", name, err)
	}

	// unknown or optimized away, same as glUniform with -1
	if l := c.location(name); l != -1 {
		f(c.program, l)
	}

	return nil
}

func (c *uniformCache) setTexture(name string, texture, unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	if l := c.location(name); l != -1 {
		gl.ProgramUniform1i(c.program, l, int32(unit))
	}
}
