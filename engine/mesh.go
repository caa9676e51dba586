package engine

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// attribute locations, fixed by layout qualifiers in the shaders
const (
	PositionLocation = 0
	NormalLocation   = 1
	UVLocation       = 2
)

type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

func (v Vertex) Key(precision int) string {
	return fmt.Sprintf("%v_%v_%v_%v_%v_%v_%v_%v",
		mgl32.Round(v.Position[0], precision),
		mgl32.Round(v.Position[1], precision),
		mgl32.Round(v.Position[2], precision),

		mgl32.Round(v.Normal[0], precision),
		mgl32.Round(v.Normal[1], precision),
		mgl32.Round(v.Normal[2], precision),

		mgl32.Round(v.UV[0], precision),
		mgl32.Round(v.UV[1], precision),
	)
}

type Face struct {
	A, B, C int
}

// Geometry is the cpu side of a mesh.
type Geometry struct {
	Vertices []Vertex
	Faces    []Face
}

func (g *Geometry) AddFace(a, b, c Vertex) {
	offset := len(g.Vertices)
	g.Vertices = append(g.Vertices, a, b, c)
	g.Faces = append(g.Faces, Face{offset, offset + 1, offset + 2})
}

// MergeVertices removes duplicate vertices and the faces that degenerate
// because of it.
func (g *Geometry) MergeVertices() {
	// search and mark duplicate vertices
	lookup := map[string]int{}
	unique := []Vertex{}
	changed := map[int]int{}

	for i, v := range g.Vertices {
		key := v.Key(4)

		if j, found := lookup[key]; !found {
			// new vertex
			lookup[key] = i
			unique = append(unique, v)
			changed[i] = len(unique) - 1
		} else {
			// duplicate vertex
			changed[i] = changed[j]
		}
	}

	// change faces
	cleaned := []Face{}

	for _, f := range g.Faces {
		a, b, c := changed[f.A], changed[f.B], changed[f.C]
		if a == b || b == c || c == a {
			// degenerated face, remove
			continue
		}

		cleaned = append(cleaned, Face{a, b, c})
	}

	// replace with cleaned
	g.Vertices = unique
	g.Faces = cleaned
}

// NewPlaneGeometry is a plane in the xz plane facing +Y, counter clockwise.
func NewPlaneGeometry(width, depth float32) *Geometry {
	g := &Geometry{}

	hw, hd := width/2, depth/2
	normal := mgl32.Vec3{0, 1, 0}

	a := Vertex{mgl32.Vec3{hw, 0, -hd}, normal, mgl32.Vec2{1, 1}}
	b := Vertex{mgl32.Vec3{-hw, 0, -hd}, normal, mgl32.Vec2{0, 1}}
	c := Vertex{mgl32.Vec3{-hw, 0, hd}, normal, mgl32.Vec2{0, 0}}
	d := Vertex{mgl32.Vec3{hw, 0, hd}, normal, mgl32.Vec2{1, 0}}

	g.AddFace(a, b, c)
	g.AddFace(c, d, a)
	g.MergeVertices()

	return g
}

// NewCubeGeometry is an axis aligned cube centered at the origin with
// outward facing, counter clockwise faces.
func NewCubeGeometry(size float32) *Geometry {
	g := &Geometry{}
	h := size / 2

	sides := []struct {
		normal, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}

	for _, s := range sides {
		center := s.normal.Mul(h)
		corner := func(su, sv float32) Vertex {
			return Vertex{
				Position: center.Add(s.u.Mul(su * h)).Add(s.v.Mul(sv * h)),
				Normal:   s.normal,
				UV:       mgl32.Vec2{(su + 1) / 2, (sv + 1) / 2},
			}
		}

		bl, br, tr, tl := corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)
		g.AddFace(bl, br, tr)
		g.AddFace(tr, tl, bl)
	}

	g.MergeVertices()
	return g
}

// NewSphereGeometry is a uv sphere centered at the origin.
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	rows := make([][]Vertex, heightSegments+1)
	for y := range rows {
		v := float64(y) / float64(heightSegments)
		theta := v * math.Pi

		rows[y] = make([]Vertex, widthSegments+1)
		for x := range rows[y] {
			u := float64(x) / float64(widthSegments)
			phi := u * 2 * math.Pi

			normal := mgl32.Vec3{
				float32(-math.Cos(phi) * math.Sin(theta)),
				float32(math.Cos(theta)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			rows[y][x] = Vertex{
				Position: normal.Mul(radius),
				Normal:   normal,
				UV:       mgl32.Vec2{float32(u), float32(1 - v)},
			}
		}
	}

	g := &Geometry{}
	for y := 0; y < heightSegments; y++ {
		for x := 0; x < widthSegments; x++ {
			v1 := rows[y][x+1]
			v2 := rows[y][x]
			v3 := rows[y+1][x]
			v4 := rows[y+1][x+1]

			switch {
			case y == 0:
				g.AddFace(v1, v3, v4)
			case y == heightSegments-1:
				g.AddFace(v1, v2, v3)
			default:
				g.AddFace(v1, v2, v4)
				g.AddFace(v2, v3, v4)
			}
		}
	}

	g.MergeVertices()
	return g
}

// Mesh is a geometry uploaded into a vertex array object.
type Mesh struct {
	vertexArrayObject uint32
	faceBuffer        uint32
	positionBuffer    uint32
	normalBuffer      uint32
	uvBuffer          uint32

	count int32
}

func NewMesh(g *Geometry) *Mesh {
	m := &Mesh{
		count: int32(len(g.Faces) * 3),
	}

	// init mesh buffers
	faceArray := make([]uint32, 0, len(g.Faces)*3)
	positionArray := make([]float32, 0, len(g.Vertices)*3)
	normalArray := make([]float32, 0, len(g.Vertices)*3)
	uvArray := make([]float32, 0, len(g.Vertices)*2)

	for _, v := range g.Vertices {
		positionArray = append(positionArray, v.Position[:]...)
		normalArray = append(normalArray, v.Normal[:]...)
		uvArray = append(uvArray, v.UV[:]...)
	}

	for _, f := range g.Faces {
		faceArray = append(faceArray, uint32(f.A), uint32(f.B), uint32(f.C))
	}

	gl.GenVertexArrays(1, &m.vertexArrayObject)
	gl.BindVertexArray(m.vertexArrayObject)

	m.positionBuffer = attributeBuffer(PositionLocation, 3, positionArray)
	m.normalBuffer = attributeBuffer(NormalLocation, 3, normalArray)
	m.uvBuffer = attributeBuffer(UVLocation, 2, uvArray)

	// face
	gl.GenBuffers(1, &m.faceBuffer)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.faceBuffer)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(faceArray)*int(unsafe.Sizeof(uint32(0))), gl.Ptr(faceArray), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return m
}

// attributeBuffer expects the vertex array to be bound
func attributeBuffer(location uint32, size int32, data []float32) uint32 {
	var buffer uint32

	gl.GenBuffers(1, &buffer)
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*int(unsafe.Sizeof(float32(0))), gl.Ptr(data), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointer(location, size, gl.FLOAT, false, 0, nil)

	return buffer
}

// Draw draws all triangles with whatever program or pipeline is bound.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vertexArrayObject)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (m *Mesh) Destroy() {
	for _, b := range []*uint32{&m.positionBuffer, &m.normalBuffer, &m.uvBuffer, &m.faceBuffer} {
		if *b != 0 {
			gl.DeleteBuffers(1, b)
			*b = 0
		}
	}

	if m.vertexArrayObject != 0 {
		gl.DeleteVertexArrays(1, &m.vertexArrayObject)
		m.vertexArrayObject = 0
	}
}
