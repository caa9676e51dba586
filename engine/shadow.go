package engine

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	//go:embed shaders/shadow-map.vert
	shadowVertexSource string
	//go:embed shaders/shadow-map.geom
	shadowGeometrySource string
	//go:embed shaders/shadow-map.frag
	shadowFragmentSource string
)

// Drawer draws its geometry with the given pipeline. The shadow pass hands
// in its own pipeline, the fragment stage is passed for material uniforms.
type Drawer interface {
	Draw(pipeline *Pipeline, fragment *StageShader)
}

// cube face directions and up vectors in GL_TEXTURE_CUBE_MAP_POSITIVE_X + i order
var cubeFaces = [6]struct {
	dir, up mgl32.Vec3
}{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
}

// OmniShadowMap renders the distance to a point light into a depth
// cubemap in a single pass, the geometry stage fans every triangle out to
// all six faces.
type OmniShadowMap struct {
	Width, Height int
	LightPosition mgl32.Vec3
	ZNear, ZFar   float32

	frameBuffer uint32
	cubemap     uint32

	vertex, geometry, fragment *StageShader
	pipeline                   *Pipeline
}

// NewOmniShadowMap builds a shadow map with the built-in shaders.
func NewOmniShadowMap(width, height int) (*OmniShadowMap, error) {
	vs, err := NewStageShaderFromSource(VertexStage, shadowVertexSource)
	if err != nil {
		return nil, err
	}

	gs, err := NewStageShaderFromSource(GeometryStage, shadowGeometrySource)
	if err != nil {
		vs.Destroy()
		return nil, err
	}

	fs, err := NewStageShaderFromSource(FragmentStage, shadowFragmentSource)
	if err != nil {
		vs.Destroy()
		gs.Destroy()
		return nil, err
	}

	return newOmniShadowMap(width, height, vs, gs, fs)
}

// NewOmniShadowMapFromFiles builds a shadow map with custom stage files.
// They must declare the same uniforms as the built-in ones.
func NewOmniShadowMapFromFiles(width, height int, vertexPath, geometryPath, fragmentPath string) (*OmniShadowMap, error) {
	vs, err := NewVertexShader(vertexPath)
	if err != nil {
		return nil, err
	}

	gs, err := NewGeometryShader(geometryPath)
	if err != nil {
		vs.Destroy()
		return nil, err
	}

	fs, err := NewFragmentShader(fragmentPath)
	if err != nil {
		vs.Destroy()
		gs.Destroy()
		return nil, err
	}

	return newOmniShadowMap(width, height, vs, gs, fs)
}

func newOmniShadowMap(width, height int, vs, gs, fs *StageShader) (*OmniShadowMap, error) {
	m := &OmniShadowMap{
		Width:  width,
		Height: height,
		ZNear:  0.1,
		ZFar:   10000,

		vertex:   vs,
		geometry: gs,
		fragment: fs,
		pipeline: NewPipeline(),
	}

	// setup shader
	m.pipeline.AttachVertexShader(vs)
	m.pipeline.AttachGeometryShader(gs)
	m.pipeline.AttachFragmentShader(fs)

	// setup shadow map frame buffer
	gl.GenFramebuffers(1, &m.frameBuffer)

	// setup cubemap
	gl.GenTextures(1, &m.cubemap)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, m.cubemap)
	m.allocateFaces()

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	// attach the whole cubemap as depth, layered rendering picks the face
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.frameBuffer)
	gl.FramebufferTexture(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, m.cubemap, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		m.Destroy()
		return nil, fmt.Errorf("shadow map %dx%d: %w: status 0x%X", width, height, ErrIncompleteFramebuffer, status)
	}

	return m, nil
}

// allocateFaces expects the cubemap to be bound
func (m *OmniShadowMap) allocateFaces() {
	for i := uint32(0); i < 6; i++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+i, 0, gl.DEPTH_COMPONENT,
			int32(m.Width), int32(m.Height),
			0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	}
}

// Destroy releases the cubemap, the frame buffer and the shadow shaders.
func (m *OmniShadowMap) Destroy() {
	if m.cubemap != 0 {
		gl.DeleteTextures(1, &m.cubemap)
		m.cubemap = 0
	}

	if m.frameBuffer != 0 {
		gl.DeleteFramebuffers(1, &m.frameBuffer)
		m.frameBuffer = 0
	}

	if m.pipeline != nil {
		m.pipeline.Destroy()
	}

	for _, s := range []*StageShader{m.vertex, m.geometry, m.fragment} {
		if s != nil {
			s.Destroy()
		}
	}
}

// SetResolution reallocates all six faces, previous contents are lost.
func (m *OmniShadowMap) SetResolution(width, height int) {
	m.Width = width
	m.Height = height

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, m.cubemap)
	m.allocateFaces()
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
}

func (m *OmniShadowMap) SetLightPosition(p mgl32.Vec3) {
	m.LightPosition = p
}

// Cubemap returns the depth cubemap texture name.
func (m *OmniShadowMap) Cubemap() uint32 { return m.cubemap }

func (m *OmniShadowMap) Pipeline() *Pipeline { return m.pipeline }

// LightSpaceMatrices returns projection * view for each cube face, in
// +X, -X, +Y, -Y, +Z, -Z order.
func (m *OmniShadowMap) LightSpaceMatrices() [6]mgl32.Mat4 {
	return lightSpaceMatrices(m.LightPosition, float32(m.Width)/float32(m.Height), m.ZNear, m.ZFar)
}

func lightSpaceMatrices(light mgl32.Vec3, aspect, near, far float32) [6]mgl32.Mat4 {
	projection := mgl32.Perspective(mgl32.DegToRad(90), aspect, near, far)

	var r [6]mgl32.Mat4
	for i, f := range cubeFaces {
		r[i] = projection.Mul4(mgl32.LookAtV(light, light.Add(f.dir), f.up))
	}

	return r
}

// Draw renders the distance of the scene to the light into the cubemap.
// The viewport is left at the shadow map size.
func (m *OmniShadowMap) Draw(scene Drawer) {
	// render to shadow map
	gl.Viewport(0, 0, int32(m.Width), int32(m.Height))
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.frameBuffer)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.CullFace(gl.FRONT) // peter panning

	// set uniforms
	for i, mat := range m.LightSpaceMatrices() {
		if err := m.geometry.SetUniform(fmt.Sprintf("lightSpaceMatrix[%d]", i), mat); err != nil {
			log.Println(err)
		}
	}

	if err := m.fragment.SetUniform("lightPosition", m.LightPosition); err != nil {
		log.Println(err)
	}
	if err := m.fragment.SetUniform("zFar", m.ZFar); err != nil {
		log.Println(err)
	}

	// render
	m.pipeline.Activate()
	scene.Draw(m.pipeline, m.fragment)
	m.pipeline.Deactivate()

	gl.CullFace(gl.BACK)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// BindTexture binds the depth cubemap on GL_TEXTURE0+unit for the lighting pass.
func (m *OmniShadowMap) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, m.cubemap)
}
