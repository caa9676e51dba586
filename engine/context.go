package engine

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type ContextOptions struct {
	Title         string
	Width, Height int
	Visible       bool
	VSync         bool
}

// Context owns a window with a current OpenGL 4.1 core context. All of its
// methods, and every other GL call, must come from the goroutine that
// created it, which has to be locked to its OS thread.
type Context struct {
	window *glfw.Window
}

func NewContext(opts ContextOptions) (*Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	if opts.Visible {
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	window.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("init gl: %w", err)
	}

	// clearing
	gl.ClearColor(0.1, 0.1, 0.1, 1.0)
	gl.ClearDepth(1)

	// depth
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.DEPTH_TEST)

	// cull face
	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.CULL_FACE)

	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)

	return &Context{window: window}, nil
}

// Version returns the GL_VERSION string of the driver.
func (c *Context) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) Close() {
	c.window.SetShouldClose(true)
}

// Update presents the frame and processes window events.
func (c *Context) Update() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

// FramebufferSize is the drawable size in pixels, at least 1x1.
func (c *Context) FramebufferSize() (width, height int) {
	width, height = c.window.GetFramebufferSize()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// Time is the number of seconds since the context was created.
func (c *Context) Time() float64 {
	return glfw.GetTime()
}

func (c *Context) Destroy() {
	if c.window != nil {
		c.window.Destroy()
		c.window = nil
	}
	glfw.Terminate()
}
