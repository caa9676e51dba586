package engine

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program is a linked vertex and fragment shader pair.
type Program struct {
	vertexPath, fragmentPath string
	fromSource               bool

	program  uint32
	uniforms *uniformCache
}

// NewProgram loads, compiles and links the vertex and fragment shader files.
func NewProgram(vertexPath, fragmentPath string) (*Program, error) {
	if vertexPath == "" || fragmentPath == "" {
		return nil, fmt.Errorf("program %q, %q: %w", vertexPath, fragmentPath, ErrNoPath)
	}

	p := &Program{
		vertexPath:   vertexPath,
		fragmentPath: fragmentPath,
	}

	if err := p.Reload(); err != nil {
		return nil, err
	}

	return p, nil
}

// NewProgramFromSource builds a program from in-memory sources, Reload is a no-op on it.
func NewProgramFromSource(vertex, fragment string) (*Program, error) {
	id, err := linkProgram(vertex, fragment)
	if err != nil {
		return nil, err
	}

	return &Program{
		fromSource: true,
		program:    id,
		uniforms:   newUniformCache(id),
	}, nil
}

func linkProgram(vertex, fragment string) (uint32, error) {
	// vertex shader
	vshader, err := compileShader(vertex, VertexStage)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vshader)

	// fragment shader
	fshader, err := compileShader(fragment, FragmentStage)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fshader)

	// program
	program := gl.CreateProgram()
	gl.AttachShader(program, vshader)
	gl.AttachShader(program, fshader)
	gl.LinkProgram(program)

	if err := checkLink(program); err != nil {
		gl.DeleteProgram(program)
		return 0, err
	}

	gl.DetachShader(program, vshader)
	gl.DetachShader(program, fshader)

	return program, nil
}

// Reload rebuilds the program from its files. The previous program stays
// in place if anything fails.
func (p *Program) Reload() error {
	if p.fromSource {
		return nil
	}

	vertex, err := readSource(p.vertexPath)
	if err != nil {
		return err
	}

	fragment, err := readSource(p.fragmentPath)
	if err != nil {
		return err
	}

	id, err := linkProgram(vertex, fragment)
	if err != nil {
		return fmt.Errorf("program %s, %s: %w", p.vertexPath, p.fragmentPath, err)
	}

	if p.program != 0 {
		gl.DeleteProgram(p.program)
	}
	p.program = id

	if p.uniforms == nil {
		p.uniforms = newUniformCache(id)
	} else {
		p.uniforms.reset(id)
	}

	return nil
}

func (p *Program) ID() uint32 { return p.program }

// Activate makes the program current.
func (p *Program) Activate() {
	gl.UseProgram(p.program)
}

func (p *Program) Deactivate() {
	gl.UseProgram(0)
}

// SetUniform sets a bool, int, int32, uint32, float32, float64 or a
// mgl32 Vec2, Vec3, Vec4, Mat3 or Mat4 uniform. Unknown names are ignored.
func (p *Program) SetUniform(name string, value interface{}) error {
	return p.uniforms.set(name, value)
}

// SetUniformTexture binds a 2D texture to the texture unit and points the
// sampler at it.
func (p *Program) SetUniformTexture(name string, texture, unit uint32) {
	p.uniforms.setTexture(name, texture, unit)
}

// SetUBO binds the named uniform block to a uniform buffer binding point.
func (p *Program) SetUBO(blockName string, binding uint32) error {
	index := gl.GetUniformBlockIndex(p.program, cstr(blockName))
	if index == gl.INVALID_INDEX {
		return fmt.Errorf("%w: %q", ErrUnknownBlock, blockName)
	}

	gl.UniformBlockBinding(p.program, index, binding)
	return nil
}

func (p *Program) Destroy() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}
