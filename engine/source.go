package engine

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	ErrCompile               = errors.New("shader compile failed")
	ErrLink                  = errors.New("program link failed")
	ErrUnsupportedUniform    = errors.New("unsupported uniform type")
	ErrUnknownBlock          = errors.New("unknown uniform block")
	ErrIncompleteFramebuffer = errors.New("framebuffer incomplete")
	ErrNoPath                = errors.New("no shader path")
)

// readSource loads a shader file and returns it null terminated for gl.Strs.
func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", path, err)
	}

	return terminate(string(b)), nil
}

func terminate(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// cstr returns a null terminated name for gl.Str
func cstr(name string) *uint8 {
	return gl.Str(terminate(name))
}

func compileShader(source string, stage Stage) (uint32, error) {
	shader := gl.CreateShader(stage.glType())

	csources, free := gl.Strs(terminate(source))
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
		info := infoLog(length, func(buf *uint8) {
			gl.GetShaderInfoLog(shader, length, nil, buf)
		})
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%s shader: %w: %s", stage, ErrCompile, info)
	}

	return shader, nil
}

func checkLink(program uint32) error {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
		info := infoLog(length, func(buf *uint8) {
			gl.GetProgramInfoLog(program, length, nil, buf)
		})

		return fmt.Errorf("%w: %s", ErrLink, info)
	}

	return nil
}

func infoLog(length int32, fetch func(buf *uint8)) string {
	if length <= 0 {
		return ""
	}

	buf := make([]uint8, length+1)
	fetch(&buf[0])

	return strings.TrimRight(string(buf), "\x00\n ")
}
