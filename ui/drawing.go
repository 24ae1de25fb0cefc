package ui

import (
	"context"
	"log"
	"math"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"git.c3pb.de/farhaven/planetarium/orrery"
	"git.c3pb.de/farhaven/planetarium/registry"
	"git.c3pb.de/farhaven/planetarium/resources"
	"git.c3pb.de/farhaven/planetarium/scene"
	"git.c3pb.de/farhaven/planetarium/trail"
	"git.c3pb.de/farhaven/planetarium/ui/text"
	"git.c3pb.de/farhaven/planetarium/vector"
)

func init() {
	/* GLFW wants to run on the 'main thread' */
	runtime.LockOSThread()
}

const (
	targetFPS = 60
	zFar      = 20000
)

type DrawContext struct {
	width, height int
	win           *glfw.Window
	windowed      [4]int // x, y, w, h before going fullscreen

	cam *Camera
	sc  *scene.Scene
	txt *text.Context

	wireframe  bool
	fullscreen bool
	help       bool
	quit       bool
	crash      bool // panic on the next frame, to exercise recovery

	textures map[string]glTexture
	labels   map[string]glTexture
	hud      glTexture
	hudText  string

	drag struct {
		active, moved bool
		x, y          float64
	}

	fps       int
	closeOnce sync.Once
}

// NewDrawContext opens a window showing sc. It must be called from the main
// goroutine, and so must Run and Close.
func NewDrawContext(width, height int, sc *scene.Scene, txt *text.Context) (*DrawContext, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, `can't init GLFW`)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Samples, 4)

	win, err := glfw.CreateWindow(width, height, "Planetarium", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, `can't create window`)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, errors.Wrap(err, `can't init GL`)
	}
	log.Printf(`OpenGL %s on %s`, gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	glfw.SwapInterval(1)

	fw, fh := win.GetFramebufferSize()
	ctx := &DrawContext{
		width: fw, height: fh,
		win:      win,
		cam:      NewCamera(fw, fh, zFar),
		sc:       sc,
		txt:      txt,
		help:     true,
		textures: map[string]glTexture{},
		labels:   map[string]glTexture{},
	}

	ctx.setupCallbacks()
	sc.Resources().OnClose(ctx.Close)

	gl.ClearColor(0.01, 0.01, 0.03, 1)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.POINT_SMOOTH)
	gl.Enable(gl.LINE_SMOOTH)
	gl.Hint(gl.PERSPECTIVE_CORRECTION_HINT, gl.NICEST)
	gl.Enable(gl.COLOR_MATERIAL)
	gl.Enable(gl.NORMALIZE)
	gl.ColorMaterial(gl.FRONT_AND_BACK, gl.AMBIENT_AND_DIFFUSE)
	gl.Enable(gl.LIGHT0)
	ambient := [4]float32{0.15, 0.15, 0.18, 1}
	gl.LightModelfv(gl.LIGHT_MODEL_AMBIENT, &ambient[0])

	return ctx, nil
}

// Close releases every GPU object and the window. It is safe to call more
// than once.
func (ctx *DrawContext) Close() {
	ctx.closeOnce.Do(func() {
		for _, t := range ctx.textures {
			t.delete()
		}
		for _, t := range ctx.labels {
			t.delete()
		}
		ctx.hud.delete()
		ctx.textures, ctx.labels = nil, nil

		ctx.win.Destroy()
		glfw.Terminate()
	})
}

// Run draws frames until the window is closed, the user quits or c ends. A
// panic while rendering is returned as an error so the caller can decide how
// to go on.
func (ctx *DrawContext) Run(c context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf(`renderer crashed: %v`, r)
		}
	}()

	frame := time.Second / targetFPS
	last := time.Now()

	for !ctx.win.ShouldClose() && !ctx.quit {
		select {
		case <-c.Done():
			return nil
		default:
		}

		start := time.Now()
		if d := start.Sub(last); d > 0 {
			ctx.fps = int(time.Second / d)
		}
		last = start

		ctx.sc.Tick(start)
		ctx.drawScreen()
		ctx.win.SwapBuffers()
		glfw.PollEvents()

		if e := gl.GetError(); e != gl.NO_ERROR {
			return errors.Errorf(`GL error 0x%x`, e)
		}

		if d := frame - time.Since(start); d > 0 {
			time.Sleep(d)
		}
	}

	return nil
}

func (ctx *DrawContext) drawScreen() {
	if ctx.crash {
		ctx.crash = false
		panic("User requested panic")
	}

	gl.Viewport(0, 0, int32(ctx.width), int32(ctx.height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	ctx.cam.Apply(ctx.sc.Camera().Pose())

	mode := uint32(gl.FILL)
	if ctx.wireframe {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)

	ctx.drawLayers()

	s := ctx.sc.Settings()
	if s.ShowOrbits {
		ctx.drawOrbits()
	}
	ctx.drawBodies()
	if s.Trails {
		ctx.drawTrails(s.TrailIntensity)
	}

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	ctx.beginOverlay()
	if s.ShowLabels {
		ctx.drawLabels()
	}
	ctx.drawHud()
	ctx.endOverlay()
}

func color3(c colorful.Color, a float64) {
	gl.Color4f(float32(c.R), float32(c.G), float32(c.B), float32(a))
}

func (ctx *DrawContext) anchor(id string) (vector.V3, bool) {
	if id == "" {
		return vector.Zero, true
	}
	return ctx.sc.Position(id)
}

func (ctx *DrawContext) drawLayers() {
	gl.DepthMask(false)
	defer gl.DepthMask(true)

	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.EnableClientState(gl.COLOR_ARRAY)
	defer gl.DisableClientState(gl.VERTEX_ARRAY)
	defer gl.DisableClientState(gl.COLOR_ARRAY)

	for _, l := range ctx.sc.Layers() {
		f := l.Field
		if f.Count == 0 {
			continue
		}
		p, ok := ctx.anchor(l.Anchor)
		if !ok {
			continue
		}

		size := float32(0)
		for _, s := range f.Sizes {
			size += s
		}
		size /= float32(f.Count)

		gl.PushMatrix()
		gl.Translated(p.X, p.Y, p.Z)
		gl.PointSize(float32(math.Max(1, float64(size))))
		gl.VertexPointer(3, gl.FLOAT, 0, gl.Ptr(f.Positions))
		gl.ColorPointer(3, gl.FLOAT, 0, gl.Ptr(f.Colors))
		gl.DrawArrays(gl.POINTS, 0, int32(f.Count))
		gl.PopMatrix()
	}
}

func (ctx *DrawContext) drawOrbits() {
	gl.LineWidth(1)
	for _, b := range ctx.sc.Bodies() {
		if b.Distance == 0 {
			continue
		}
		path := ctx.sc.Orbit(b.ID)
		if len(path) == 0 {
			continue
		}

		color3(b.Color, 0.25)
		gl.Begin(gl.LINE_LOOP)
		for _, p := range path {
			gl.Vertex3d(p.X, p.Y, p.Z)
		}
		gl.End()
	}
}

func (ctx *DrawContext) texture(id string) (glTexture, *resources.Texture) {
	tex := ctx.sc.Resources().Texture(id)
	if !tex.Loaded() {
		return glTexture{}, tex
	}
	t, ok := ctx.textures[id]
	if !ok {
		t = uploadTexture(tex.Image)
		ctx.textures[id] = t
	}
	return t, tex
}

func (ctx *DrawContext) drawBodies() {
	sun := vector.Zero
	if p, ok := ctx.sc.Position("sun"); ok {
		sun = p
	}
	pos := [4]float32{float32(sun.X), float32(sun.Y), float32(sun.Z), 1}
	gl.Lightfv(gl.LIGHT0, gl.POSITION, &pos[0])

	for _, b := range ctx.sc.Bodies() {
		if b.Kind == registry.Galaxy {
			ctx.drawCore(b)
			continue
		}
		if ctx.cam.SphereInFrustum(b.Pos, b.Radius) == OUTSIDE {
			continue
		}
		ctx.drawBody(b)
	}
}

// drawCore marks the center of a galaxy whose particle cloud may be too
// sparse to click on.
func (ctx *DrawContext) drawCore(b orrery.Body) {
	info, _ := ctx.sc.Info(b.ID)
	color3(info.CoreRGB(), 0.9)
	gl.PointSize(6)
	gl.Begin(gl.POINTS)
	gl.Vertex3d(b.Pos.X, b.Pos.Y, b.Pos.Z)
	gl.End()
}

func (ctx *DrawContext) drawBody(b orrery.Body) {
	res := ctx.sc.Resources()
	mesh := res.Sphere(resources.DetailFor(b.Radius))
	t, tex := ctx.texture(b.ID)

	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()
	defer gl.PopMatrix()

	gl.Translated(b.Pos.X, b.Pos.Y, b.Pos.Z)

	// Tip the mesh pole onto the rotation axis, then spin around it.
	if k := vector.Up.Cross(b.Axis); k.Length() > 1e-9 {
		a := math.Acos(math.Max(-1, math.Min(1, vector.Up.Dot(b.Axis))))
		gl.Rotated(a*180/math.Pi, k.X, k.Y, k.Z)
	}
	gl.Rotated(b.Rotation*180/math.Pi, 0, 1, 0)
	gl.Scaled(b.Radius, b.Radius, b.Radius)

	if b.Kind == registry.Star {
		gl.Disable(gl.LIGHTING)
	} else {
		gl.Enable(gl.LIGHTING)
	}

	if t.id != 0 {
		gl.Enable(gl.TEXTURE_2D)
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		gl.Color4f(1, 1, 1, 1)
	} else {
		color3(tex.Fallback, 1)
	}

	drawMesh(mesh, t.id != 0)

	if t.id != 0 {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.Disable(gl.TEXTURE_2D)
	}

	if info, ok := ctx.sc.Info(b.ID); ok && info.Rings != nil && info.Radius > 0 {
		ring := res.Ring(info.Rings.Inner/info.Radius, info.Rings.Outer/info.Radius, 96)
		rc, err := colorful.Hex(info.Rings.Color)
		if err != nil {
			rc = info.RGB()
		}
		gl.Disable(gl.CULL_FACE)
		color3(rc, 0.7)
		drawMesh(ring, false)
	}

	gl.Disable(gl.LIGHTING)
}

func drawMesh(m *resources.Mesh, textured bool) {
	if len(m.Indices) == 0 {
		return
	}

	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.EnableClientState(gl.NORMAL_ARRAY)
	gl.VertexPointer(3, gl.FLOAT, 0, gl.Ptr(m.Vertices))
	gl.NormalPointer(gl.FLOAT, 0, gl.Ptr(m.Normals))
	if textured {
		gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
		gl.TexCoordPointer(2, gl.FLOAT, 0, gl.Ptr(m.UVs))
	}

	gl.DrawElements(gl.TRIANGLES, int32(len(m.Indices)), gl.UNSIGNED_INT, gl.Ptr(m.Indices))

	if textured {
		gl.DisableClientState(gl.TEXTURE_COORD_ARRAY)
	}
	gl.DisableClientState(gl.NORMAL_ARRAY)
	gl.DisableClientState(gl.VERTEX_ARRAY)
}

// trailPointSize is the size in pixels of the newest point of a point-style
// trail.
const trailPointSize = 4

func (ctx *DrawContext) drawTrails(intensity float64) {
	style := ctx.sc.TrailStyle()
	if style == trail.None {
		return
	}

	gl.DepthMask(false)
	defer gl.DepthMask(true)

	for _, b := range ctx.sc.Bodies() {
		h, ok := ctx.sc.Trail(b.ID)
		if !ok || h.Len() < 2 {
			continue
		}
		n := h.Len()

		switch style {
		case trail.Glow, trail.Particle, trail.Meteor:
			for i := n - 1; i >= 0; i-- {
				m := style.Mark(i, n, b.Color, intensity)
				p := h.At(i)
				gl.PointSize(float32(math.Max(1, m.Size*trailPointSize)))
				color3(m.Color, m.Opacity)
				gl.Begin(gl.POINTS)
				gl.Vertex3d(p.X, p.Y, p.Z)
				gl.End()
			}
		default:
			width := float32(1)
			if style == trail.Solid {
				width = 2
			}
			gl.LineWidth(width)
			gl.Begin(gl.LINE_STRIP)
			for i := n - 1; i >= 0; i-- {
				m := style.Mark(i, n, b.Color, intensity)
				p := h.At(i)
				color3(m.Color, m.Opacity)
				gl.Vertex3d(p.X, p.Y, p.Z)
			}
			gl.End()
			gl.LineWidth(1)
		}
	}
}

func (ctx *DrawContext) beginOverlay() {
	gl.MatrixMode(gl.PROJECTION)
	gl.PushMatrix()
	gl.LoadIdentity()
	gl.Ortho(0.0, float64(ctx.width), float64(ctx.height), 0.0, -1.0, 1.0)
	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()
	gl.LoadIdentity()
	gl.Disable(gl.DEPTH_TEST)
}

func (ctx *DrawContext) endOverlay() {
	gl.Enable(gl.DEPTH_TEST)
	gl.MatrixMode(gl.PROJECTION)
	gl.PopMatrix()
	gl.MatrixMode(gl.MODELVIEW)
	gl.PopMatrix()
}

func (ctx *DrawContext) drawLabels() {
	for _, b := range ctx.sc.Bodies() {
		info, ok := ctx.sc.Info(b.ID)
		if !ok {
			continue
		}
		if ctx.cam.SphereInFrustum(b.Pos, b.Radius) == OUTSIDE {
			continue
		}
		x, y, ok := ctx.cam.Project(b.Pos.Add(vector.Up.Scaled(b.Radius)))
		if !ok {
			continue
		}
		t, ok := ctx.label(info.Name)
		if !ok {
			continue
		}
		t.drawQuad(float32(x)-float32(t.w)/2, float32(y)-float32(t.h)-2)
	}
}

func (ctx *DrawContext) drawHud() {
	lines := hudLines(ctx.sc, ctx.fps/5*5, ctx.help)
	txt := strings.Join(lines, "\n")

	if txt != ctx.hudText || ctx.hud.id == 0 {
		img, err := ctx.txt.RenderMultiline(lines, 10, hudBg, hudFg)
		if err != nil {
			log.Printf(`can't render HUD: %s`, err)
			return
		}
		ctx.hud.delete()
		ctx.hud = uploadTexture(img)
		ctx.hudText = txt
	}

	ctx.hud.drawQuad(4, 4)
}
