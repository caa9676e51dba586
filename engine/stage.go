package engine

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Stage of the programmable pipeline.
type Stage int

const (
	VertexStage Stage = iota
	GeometryStage
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case GeometryStage:
		return "geometry"
	case FragmentStage:
		return "fragment"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

func (s Stage) glType() uint32 {
	switch s {
	case GeometryStage:
		return gl.GEOMETRY_SHADER
	case FragmentStage:
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (s Stage) glBit() uint32 {
	switch s {
	case GeometryStage:
		return gl.GEOMETRY_SHADER_BIT
	case FragmentStage:
		return gl.FRAGMENT_SHADER_BIT
	}
	return gl.VERTEX_SHADER_BIT
}

// StageShader is a separable program holding a single stage, to be
// combined with others in a Pipeline.
type StageShader struct {
	stage      Stage
	path       string
	fromSource bool

	program  uint32
	uniforms *uniformCache
}

func NewVertexShader(path string) (*StageShader, error)   { return newStageShader(VertexStage, path) }
func NewGeometryShader(path string) (*StageShader, error) { return newStageShader(GeometryStage, path) }
func NewFragmentShader(path string) (*StageShader, error) { return newStageShader(FragmentStage, path) }

func newStageShader(stage Stage, path string) (*StageShader, error) {
	if path == "" {
		return nil, fmt.Errorf("%s shader: %w", stage, ErrNoPath)
	}

	s := &StageShader{
		stage: stage,
		path:  path,
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	return s, nil
}

// NewStageShaderFromSource compiles an in-memory source, Reload is a no-op on it.
func NewStageShaderFromSource(stage Stage, source string) (*StageShader, error) {
	id, err := linkStage(stage, source)
	if err != nil {
		return nil, err
	}

	return &StageShader{
		stage:      stage,
		fromSource: true,
		program:    id,
		uniforms:   newUniformCache(id),
	}, nil
}

// linkStage does what glCreateShaderProgramv does, keeping compile and
// link errors apart.
func linkStage(stage Stage, source string) (uint32, error) {
	shader, err := compileShader(source, stage)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(shader)

	program := gl.CreateProgram()
	gl.ProgramParameteri(program, gl.PROGRAM_SEPARABLE, gl.TRUE)
	gl.AttachShader(program, shader)
	gl.LinkProgram(program)

	if err := checkLink(program); err != nil {
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%s shader: %w", stage, err)
	}

	gl.DetachShader(program, shader)

	return program, nil
}

// Reload recompiles the stage from its file, keeping the old program on failure.
func (s *StageShader) Reload() error {
	if s.fromSource {
		return nil
	}

	source, err := readSource(s.path)
	if err != nil {
		return err
	}

	id, err := linkStage(s.stage, source)
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}

	if s.program != 0 {
		gl.DeleteProgram(s.program)
	}
	s.program = id

	if s.uniforms == nil {
		s.uniforms = newUniformCache(id)
	} else {
		s.uniforms.reset(id)
	}

	return nil
}

func (s *StageShader) ID() uint32   { return s.program }
func (s *StageShader) Stage() Stage { return s.stage }
func (s *StageShader) Path() string { return s.path }

// SetUniform accepts the same value types as Program.SetUniform. The
// shader does not need to be bound.
func (s *StageShader) SetUniform(name string, value interface{}) error {
	return s.uniforms.set(name, value)
}

func (s *StageShader) SetUniformTexture(name string, texture, unit uint32) {
	s.uniforms.setTexture(name, texture, unit)
}

func (s *StageShader) Destroy() {
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
}
