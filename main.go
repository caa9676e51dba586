package main

import (
	"flag"
	"log"
	"math"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/glkit/config"
	"github.com/der-antikeks/glkit/engine"
)

func init() {
	// gl calls have to come from the thread owning the context
	runtime.LockOSThread()
}

const (
	diffuseUnit = 0
	shadowUnit  = 1
)

func main() {
	configPath := flag.String("config", "demo.toml", "path to the toml configuration")
	flag.Parse()

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	context, err := engine.NewContext(engine.ContextOptions{
		Title:   cfg.Window.Title,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		Visible: cfg.Window.Visible,
		VSync:   cfg.Window.VSync,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer context.Destroy()

	log.Println("opengl", context.Version())

	// lighting pass
	vertexPath := filepath.Join(cfg.Assets.Shaders, "scene.vert")
	fragmentPath := filepath.Join(cfg.Assets.Shaders, "scene.frag")

	program, err := engine.NewProgram(vertexPath, fragmentPath)
	if err != nil {
		log.Fatal(err)
	}
	defer program.Destroy()

	texture := engine.NewTextureFromFile(cfg.Assets.Texture, engine.TextureDiffuse)
	defer texture.Destroy()

	// shadow pass
	shadow, err := engine.NewOmniShadowMap(cfg.Shadow.Width, cfg.Shadow.Height)
	if err != nil {
		log.Fatal(err)
	}
	defer shadow.Destroy()

	shadow.ZNear = cfg.Shadow.ZNear
	shadow.ZFar = cfg.Shadow.ZFar

	scene := newScene()
	defer scene.Destroy()

	var watcher *engine.Watcher
	if cfg.Assets.Watch {
		watcher, err = engine.NewWatcher()
		if err != nil {
			log.Fatal(err)
		}
		defer watcher.Close()

		for _, path := range []string{vertexPath, fragmentPath} {
			if err := watcher.Add(path, program.Reload); err != nil {
				log.Fatal(err)
			}
		}
	}

	var (
		base = mgl32.Vec3(cfg.Light.Position)
		eye  = mgl32.Vec3{8, 6, 10}
		view = mgl32.LookAtV(eye, mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{0, 1, 0})

		frames    int
		nextPrint = time.Now().Add(time.Second)
	)

	for !context.ShouldClose() {
		if watcher != nil {
			watcher.Poll()
		}

		// orbit the light
		angle := float64(cfg.Light.Speed) * context.Time()
		light := base.Add(mgl32.Vec3{
			cfg.Light.Radius * float32(math.Cos(angle)),
			0,
			cfg.Light.Radius * float32(math.Sin(angle)),
		})
		shadow.SetLightPosition(light)

		// distance to the light into the cubemap
		shadow.Draw(scene)

		// lit scene
		w, h := context.FramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		program.Activate()

		projection := mgl32.Perspective(mgl32.DegToRad(60), float32(w)/float32(h), 0.1, 100)
		uniforms := map[string]interface{}{
			"projectionMatrix": projection,
			"viewMatrix":       view,
			"viewPosition":     eye,
			"lightPosition":    light,
			"lightColor":       mgl32.Vec3{1, 0.95, 0.85},
			"zFar":             shadow.ZFar,
			"shadowBias":       float32(0.05),
			"shadowMap":        int32(shadowUnit),
		}
		for name, value := range uniforms {
			if err := program.SetUniform(name, value); err != nil {
				log.Fatal(err)
			}
		}

		program.SetUniformTexture("diffuseMap", texture.ID(), diffuseUnit)
		shadow.BindTexture(shadowUnit)

		scene.DrawProgram(program)
		program.Deactivate()

		context.Update()

		// frames per second
		frames++
		if now := time.Now(); now.After(nextPrint) {
			log.Println(frames, "fps")
			frames = 0
			nextPrint = now.Add(time.Second)
		}
	}
}
