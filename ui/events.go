package ui

import (
	"log"
	"math"
	"time"
	"unicode"

	"github.com/go-gl/glfw/v3.2/glfw"

	"git.c3pb.de/farhaven/planetarium/scene"
)

const (
	// dragThreshold is how far in pixels the cursor may wander before a
	// click becomes a drag.
	dragThreshold = 3
	// orbitRate is the camera swing in radians per pixel dragged.
	orbitRate = 0.005
	zoomStep  = 0.9
)

func (ctx *DrawContext) setupCallbacks() {
	ctx.win.SetCharCallback(ctx.onChar)
	ctx.win.SetKeyCallback(ctx.onKey)
	ctx.win.SetMouseButtonCallback(ctx.onMouseButton)
	ctx.win.SetCursorPosCallback(ctx.onCursor)
	ctx.win.SetScrollCallback(ctx.onScroll)
	ctx.win.SetFramebufferSizeCallback(ctx.onResize)
}

func (ctx *DrawContext) do(a scene.Action) {
	if ctx.sc.Do(a, time.Now()) {
		ctx.quit = true
	}
}

func (ctx *DrawContext) onChar(w *glfw.Window, char rune) {
	switch r := unicode.ToLower(char); r {
	case 'f':
		ctx.toggleFullscreen()
	case '1':
		ctx.wireframe = !ctx.wireframe
	case 'h', '?':
		ctx.help = !ctx.help
	case 'p':
		ctx.crash = true
	default:
		if a, ok := scene.KeyActions[r]; ok {
			ctx.do(a)
		}
	}
}

func (ctx *DrawContext) onKey(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	switch key {
	case glfw.KeyEscape:
		ctx.do(scene.ClearFocus)
	case glfw.KeyTab:
		ctx.do(scene.FocusNext)
	case glfw.KeyLeft:
		ctx.sc.Camera().Orbit(-0.05, 0)
	case glfw.KeyRight:
		ctx.sc.Camera().Orbit(0.05, 0)
	case glfw.KeyUp:
		ctx.sc.Camera().Orbit(0, 0.05)
	case glfw.KeyDown:
		ctx.sc.Camera().Orbit(0, -0.05)
	case glfw.KeyPageUp:
		ctx.sc.Camera().Zoom(zoomStep)
	case glfw.KeyPageDown:
		ctx.sc.Camera().Zoom(1 / zoomStep)
	}
}

// cursor returns the cursor position in framebuffer pixels.
func (ctx *DrawContext) cursor() (float64, float64) {
	x, y := ctx.win.GetCursorPos()
	ww, wh := ctx.win.GetSize()
	if ww > 0 && wh > 0 {
		x *= float64(ctx.width) / float64(ww)
		y *= float64(ctx.height) / float64(wh)
	}
	return x, y
}

func (ctx *DrawContext) onMouseButton(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}

	x, y := ctx.cursor()
	switch action {
	case glfw.Press:
		ctx.drag.active, ctx.drag.moved = true, false
		ctx.drag.x, ctx.drag.y = x, y
	case glfw.Release:
		wasClick := ctx.drag.active && !ctx.drag.moved
		ctx.drag.active = false
		if !wasClick {
			return
		}
		if id, ok := ctx.sc.Pick(ctx.cam.Ray(x, y)); ok {
			log.Printf(`selected %s`, id)
			ctx.sc.Select(id, time.Now())
		}
	}
}

func (ctx *DrawContext) onCursor(w *glfw.Window, xpos, ypos float64) {
	if !ctx.drag.active {
		return
	}

	x, y := ctx.cursor()
	dx, dy := x-ctx.drag.x, y-ctx.drag.y
	if !ctx.drag.moved && math.Hypot(dx, dy) < dragThreshold {
		return
	}
	ctx.drag.moved = true
	ctx.drag.x, ctx.drag.y = x, y

	ctx.sc.Camera().Orbit(-dx*orbitRate, dy*orbitRate)
}

func (ctx *DrawContext) onScroll(w *glfw.Window, xoff, yoff float64) {
	ctx.sc.Camera().Zoom(math.Pow(zoomStep, yoff))
}

func (ctx *DrawContext) onResize(w *glfw.Window, width, height int) {
	ctx.width, ctx.height = width, height
	ctx.cam.Resize(width, height)
}

func (ctx *DrawContext) toggleFullscreen() {
	if ctx.fullscreen {
		x, y, w, h := ctx.windowed[0], ctx.windowed[1], ctx.windowed[2], ctx.windowed[3]
		ctx.win.SetMonitor(nil, x, y, w, h, 0)
	} else {
		m := glfw.GetPrimaryMonitor()
		if m == nil {
			return
		}
		x, y := ctx.win.GetPos()
		w, h := ctx.win.GetSize()
		ctx.windowed = [4]int{x, y, w, h}
		mode := m.GetVideoMode()
		ctx.win.SetMonitor(m, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	}
	ctx.fullscreen = !ctx.fullscreen
}
