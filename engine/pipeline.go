package engine

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Pipeline combines separable stage shaders into one program pipeline
// object. The attached shaders are owned by the caller.
type Pipeline struct {
	pipeline uint32

	shaders  [3]*StageShader
	attached [3]uint32 // program ids handed to glUseProgramStages
}

func NewPipeline() *Pipeline {
	p := &Pipeline{}
	gl.GenProgramPipelines(1, &p.pipeline)

	return p
}

func (p *Pipeline) ID() uint32 { return p.pipeline }

func (p *Pipeline) AttachVertexShader(s *StageShader)   { p.attach(VertexStage, s) }
func (p *Pipeline) AttachGeometryShader(s *StageShader) { p.attach(GeometryStage, s) }
func (p *Pipeline) AttachFragmentShader(s *StageShader) { p.attach(FragmentStage, s) }

func (p *Pipeline) VertexShader() *StageShader   { return p.shaders[VertexStage] }
func (p *Pipeline) GeometryShader() *StageShader { return p.shaders[GeometryStage] }
func (p *Pipeline) FragmentShader() *StageShader { return p.shaders[FragmentStage] }

func (p *Pipeline) attach(stage Stage, s *StageShader) {
	if s != nil && s.Stage() != stage {
		panic("pipeline: " + s.Stage().String() + " shader attached as " + stage.String())
	}

	p.shaders[stage] = s
	p.use(stage)
}

func (p *Pipeline) use(stage Stage) {
	var id uint32
	if s := p.shaders[stage]; s != nil {
		id = s.ID()
	}

	gl.UseProgramStages(p.pipeline, stage.glBit(), id)
	p.attached[stage] = id
}

// Activate binds the pipeline. Stages whose shader was reloaded since
// attaching are reattached first.
func (p *Pipeline) Activate() {
	for stage, s := range p.shaders {
		if s != nil && s.ID() != p.attached[stage] {
			p.use(Stage(stage))
		}
	}

	// a bound program would take precedence over the pipeline
	gl.UseProgram(0)
	gl.BindProgramPipeline(p.pipeline)
}

func (p *Pipeline) Deactivate() {
	gl.BindProgramPipeline(0)
}

func (p *Pipeline) Destroy() {
	if p.pipeline != 0 {
		gl.DeleteProgramPipelines(1, &p.pipeline)
		p.pipeline = 0
	}
}
