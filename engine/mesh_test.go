package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// faces must wind counter clockwise around their vertex normals
func assertWinding(t *testing.T, g *Geometry) {
	t.Helper()

	for i, f := range g.Faces {
		a, b, c := g.Vertices[f.A], g.Vertices[f.B], g.Vertices[f.C]
		n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position)).Normalize()

		if !n.ApproxEqual(a.Normal) {
			t.Errorf("face %d: winding normal %v != vertex normal %v", i, n, a.Normal)
		}
	}
}

func TestNewCubeGeometry(t *testing.T) {
	g := NewCubeGeometry(2)

	assert.Len(t, g.Vertices, 24)
	assert.Len(t, g.Faces, 12)
	assertWinding(t, g)

	for _, v := range g.Vertices {
		for i := 0; i < 3; i++ {
			assert.InDelta(t, 1, mgl32.Abs(v.Position[i]), 1e-6)
		}
		assert.True(t, v.UV[0] >= 0 && v.UV[0] <= 1 && v.UV[1] >= 0 && v.UV[1] <= 1)
	}
}

func TestNewSphereGeometry(t *testing.T) {
	g := NewSphereGeometry(2, 8, 6)

	// two triangles per quad, one at each pole
	assert.Len(t, g.Faces, 8*(2*(6-2)+2))

	for _, v := range g.Vertices {
		assert.InDelta(t, 2, v.Position.Len(), 1e-5)
		assert.InDelta(t, 1, v.Normal.Len(), 1e-5)
	}

	// outward facing
	for i, f := range g.Faces {
		a, b, c := g.Vertices[f.A].Position, g.Vertices[f.B].Position, g.Vertices[f.C].Position
		n := b.Sub(a).Cross(c.Sub(a))
		center := a.Add(b).Add(c)

		if n.Dot(center) <= 0 {
			t.Errorf("face %d points inwards", i)
		}
	}

	small := NewSphereGeometry(1, 1, 1)
	assert.Len(t, small.Faces, 3*2)
}

func TestNewPlaneGeometry(t *testing.T) {
	g := NewPlaneGeometry(10, 4)

	assert.Len(t, g.Vertices, 4)
	assert.Len(t, g.Faces, 2)
	assertWinding(t, g)

	for _, v := range g.Vertices {
		assert.Equal(t, float32(0), v.Position[1])
		assert.Equal(t, float32(5), mgl32.Abs(v.Position[0]))
		assert.Equal(t, float32(2), mgl32.Abs(v.Position[2]))
	}
}

func TestGeometry_MergeVertices(t *testing.T) {
	normal := mgl32.Vec3{0, 0, 1}
	a := Vertex{Position: mgl32.Vec3{0, 0, 0}, Normal: normal}
	b := Vertex{Position: mgl32.Vec3{1, 0, 0}, Normal: normal}
	c := Vertex{Position: mgl32.Vec3{1, 1, 0}, Normal: normal}
	nearA := Vertex{Position: mgl32.Vec3{0.00001, 0, 0}, Normal: normal}

	g := &Geometry{}
	g.AddFace(a, b, c)
	g.AddFace(c, b, a)
	g.AddFace(a, nearA, c) // collapses

	assert.Len(t, g.Vertices, 9)
	g.MergeVertices()

	assert.Len(t, g.Vertices, 3)
	assert.Equal(t, []Face{{0, 1, 2}, {2, 1, 0}}, g.Faces)
}

func TestVertex_Key(t *testing.T) {
	a := Vertex{Position: mgl32.Vec3{1.00001, 2, 3}}
	b := Vertex{Position: mgl32.Vec3{1, 2, 3}}
	c := Vertex{Position: mgl32.Vec3{1, 2, 3}, UV: mgl32.Vec2{0, 1}}

	assert.Equal(t, a.Key(4), b.Key(4))
	assert.NotEqual(t, a.Key(6), b.Key(6))
	assert.NotEqual(t, b.Key(4), c.Key(4))
}
