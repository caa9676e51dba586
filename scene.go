package main

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/glkit/engine"
)

type object struct {
	mesh  *engine.Mesh
	model mgl32.Mat4
}

// scene is a floor with a few crates around the light.
type scene struct {
	objects []object
	meshes  []*engine.Mesh
}

func newScene() *scene {
	floor := engine.NewMesh(engine.NewPlaneGeometry(20, 20))
	cube := engine.NewMesh(engine.NewCubeGeometry(1))
	sphere := engine.NewMesh(engine.NewSphereGeometry(0.75, 24, 16))

	s := &scene{meshes: []*engine.Mesh{floor, cube, sphere}}

	s.objects = append(s.objects, object{floor, mgl32.Ident4()})
	for _, p := range []struct {
		pos   mgl32.Vec3
		scale float32
		angle float32
	}{
		{mgl32.Vec3{2, 0.5, 0}, 1, 0},
		{mgl32.Vec3{-2.5, 0.75, 1.5}, 1.5, 30},
		{mgl32.Vec3{0.5, 0.25, -3}, 0.5, 60},
		{mgl32.Vec3{-1, 2, -1}, 0.75, 15},
	} {
		model := mgl32.Translate3D(p.pos[0], p.pos[1], p.pos[2]).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(p.angle))).
			Mul4(mgl32.Scale3D(p.scale, p.scale, p.scale))

		s.objects = append(s.objects, object{cube, model})
	}
	s.objects = append(s.objects, object{sphere, mgl32.Translate3D(1.5, 1.5, 2)})

	return s
}

// Draw renders the scene into the shadow pipeline.
func (s *scene) Draw(pipeline *engine.Pipeline, fragment *engine.StageShader) {
	vertex := pipeline.VertexShader()
	for _, o := range s.objects {
		if err := vertex.SetUniform("modelMatrix", o.model); err != nil {
			log.Println(err)
		}
		o.mesh.Draw()
	}
}

// DrawProgram renders the scene with an already activated program.
func (s *scene) DrawProgram(program *engine.Program) {
	for _, o := range s.objects {
		if err := program.SetUniform("modelMatrix", o.model); err != nil {
			log.Println(err)
		}
		o.mesh.Draw()
	}
}

func (s *scene) Destroy() {
	for _, m := range s.meshes {
		m.Destroy()
	}
}
