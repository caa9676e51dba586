package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProgram_NoPath(t *testing.T) {
	tests := []struct {
		Vertex, Fragment string
	}{
		{"", ""},
		{"scene.vert", ""},
		{"", "scene.frag"},
	}

	for _, c := range tests {
		p, err := NewProgram(c.Vertex, c.Fragment)
		if !errors.Is(err, ErrNoPath) {
			t.Errorf("NewProgram(%q, %q) != ErrNoPath (got %v)", c.Vertex, c.Fragment, err)
		}
		if p != nil {
			t.Errorf("NewProgram(%q, %q) returned a program", c.Vertex, c.Fragment)
		}
	}
}

func TestNewStageShader_NoPath(t *testing.T) {
	constructors := map[Stage]func(string) (*StageShader, error){
		VertexStage:   NewVertexShader,
		GeometryStage: NewGeometryShader,
		FragmentStage: NewFragmentShader,
	}

	for stage, newShader := range constructors {
		s, err := newShader("")

		assert.True(t, errors.Is(err, ErrNoPath), "%s: %v", stage, err)
		assert.Contains(t, err.Error(), stage.String())
		assert.Nil(t, s)
	}
}

func TestReload_FromSourceIsNoop(t *testing.T) {
	p := &Program{fromSource: true}
	assert.NoError(t, p.Reload())
	assert.Zero(t, p.ID())

	s := &StageShader{stage: GeometryStage, fromSource: true}
	assert.NoError(t, s.Reload())
	assert.Zero(t, s.ID())
}
