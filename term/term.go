// Package term draws the scene top-down in a terminal. It is the fallback
// when no OpenGL context is available.
package term

import (
	"context"
	"fmt"
	"math"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"git.c3pb.de/farhaven/planetarium/orrery"
	"git.c3pb.de/farhaven/planetarium/registry"
	"git.c3pb.de/farhaven/planetarium/scene"
	"git.c3pb.de/farhaven/planetarium/trail"
	"git.c3pb.de/farhaven/planetarium/vector"
)

const (
	frameTime = 33 * time.Millisecond
	// cellAspect is how much taller a terminal cell is than wide.
	cellAspect = 2.0
	zoomStep   = 0.8
	// clickSlop is how many cells away from a body a click still selects it.
	clickSlop = 2.0
)

// View maps world coordinates onto the XZ plane of the terminal, centered on
// Center. Scale is world units per row.
type View struct {
	Width, Height int
	Center        vector.V3
	Scale         float64
}

// Project returns the cell of p. ok is false when it is off screen.
func (v View) Project(p vector.V3) (x, y int, ok bool) {
	fx := float64(v.Width)/2 + (p.X-v.Center.X)/v.Scale*cellAspect
	fy := float64(v.Height)/2 + (p.Z-v.Center.Z)/v.Scale
	x, y = int(math.Floor(fx)), int(math.Floor(fy))
	return x, y, x >= 0 && y >= 0 && x < v.Width && y < v.Height
}

// defaultExtent is the world distance from the center to the top edge.
func defaultExtent(m scene.ViewMode) float64 {
	if m == scene.GalaxyCluster {
		return 700
	}
	return 64
}

type Viewer struct {
	screen tcell.Screen
	sc     *scene.Scene

	zoom float64
	help bool

	// buttons is the mouse button state of the previous mouse event.
	buttons tcell.ButtonMask
}

// Open initializes the terminal and returns a viewer for sc.
func Open(sc *scene.Scene) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, `can't create terminal screen`)
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, `can't init terminal screen`)
	}
	screen.EnableMouse()

	return New(screen, sc), nil
}

// New wraps an already initialized screen.
func New(screen tcell.Screen, sc *scene.Scene) *Viewer {
	return &Viewer{screen: screen, sc: sc, zoom: 1, help: true}
}

func (v *Viewer) Close() {
	v.screen.Fini()
}

func (v *Viewer) view() View {
	w, h := v.screen.Size()
	rows := math.Max(1, float64(h)/2)
	return View{
		Width:  w,
		Height: h,
		Center: v.sc.Camera().Pose().Target,
		Scale:  defaultExtent(v.sc.Mode()) * v.zoom / rows,
	}
}

// Run draws frames until the user quits or ctx ends.
func (v *Viewer) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	quit := make(chan struct{})
	defer close(quit)

	events := make(chan tcell.Event, 100)
	go v.screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !v.handle(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			v.Frame(now)
		}
	}
}

// Frame advances the scene to now and redraws.
func (v *Viewer) Frame(now time.Time) {
	v.sc.Tick(now)
	v.draw()
}

func (v *Viewer) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyEscape:
			v.sc.Do(scene.ClearFocus, now)
		case tcell.KeyTab:
			v.sc.Do(scene.FocusNext, now)
		case tcell.KeyPgUp:
			v.zoom *= zoomStep
		case tcell.KeyPgDn:
			v.zoom /= zoomStep
		case tcell.KeyRune:
			switch r := unicode.ToLower(ev.Rune()); r {
			case 'z':
				v.zoom *= zoomStep
			case 'x':
				v.zoom /= zoomStep
			case 'h', '?':
				v.help = !v.help
			default:
				if a, ok := scene.KeyActions[r]; ok {
					if v.sc.Do(a, now) {
						return false
					}
					if a == scene.ToggleViewMode {
						v.zoom = 1
					}
				}
			}
		}
	case *tcell.EventMouse:
		pressed := ev.Buttons() &^ v.buttons
		v.buttons = ev.Buttons()
		if pressed&tcell.Button1 != 0 {
			x, y := ev.Position()
			if id, ok := v.pick(x, y); ok {
				v.sc.Select(id, now)
			}
		}
		if ev.Buttons()&tcell.WheelUp != 0 {
			v.zoom *= zoomStep
		}
		if ev.Buttons()&tcell.WheelDown != 0 {
			v.zoom /= zoomStep
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// pick returns the body drawn closest to cell x, y.
func (v *Viewer) pick(x, y int) (string, bool) {
	view := v.view()
	best, hit := clickSlop, ""
	for _, b := range v.sc.Bodies() {
		bx, by, ok := view.Project(b.Pos)
		if !ok {
			continue
		}
		d := math.Hypot(float64(bx-x)/cellAspect, float64(by-y))
		if d < best {
			best, hit = d, b.ID
		}
	}
	return hit, hit != ""
}

func rgb(c colorful.Color, f float64) tcell.Color {
	c = colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}.Clamped()
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (v *Viewer) put(x, y int, r rune, c tcell.Color) {
	v.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(c))
}

func (v *Viewer) text(x, y int, s string, st tcell.Style) {
	w, _ := v.screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		v.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func (v *Viewer) draw() {
	v.screen.Clear()
	view := v.view()
	s := v.sc.Settings()

	v.drawLayers(view)
	if s.ShowOrbits {
		v.drawOrbits(view)
	}
	if s.Trails {
		v.drawTrails(view, s.TrailIntensity)
	}
	v.drawBodies(view, s.ShowLabels)
	v.drawHud()

	v.screen.Show()
}

func (v *Viewer) drawLayers(view View) {
	for _, l := range v.sc.Layers() {
		origin := vector.Zero
		if l.Anchor != "" {
			p, ok := v.sc.Position(l.Anchor)
			if !ok {
				continue
			}
			origin = p
		}

		f := l.Field
		for i := 0; i < f.Count; i++ {
			px, py, pz := f.Point(i)
			x, y, ok := view.Project(origin.Add(vector.V3{X: px, Y: py, Z: pz}))
			if !ok {
				continue
			}
			c := colorful.Color{R: float64(f.Colors[3*i]), G: float64(f.Colors[3*i+1]), B: float64(f.Colors[3*i+2])}
			v.put(x, y, '.', rgb(c, 0.6))
		}
	}
}

func (v *Viewer) drawOrbits(view View) {
	for _, b := range v.sc.Bodies() {
		if b.Distance == 0 {
			continue
		}
		for _, p := range v.sc.Orbit(b.ID) {
			if x, y, ok := view.Project(p); ok {
				v.put(x, y, '·', rgb(b.Color, 0.35))
			}
		}
	}
}

var trailRunes = map[trail.Style]rune{
	trail.Plain:    '·',
	trail.Glow:     '•',
	trail.Particle: '∙',
	trail.Meteor:   '*',
	trail.Rainbow:  '•',
	trail.Solid:    '█',
}

func (v *Viewer) drawTrails(view View, intensity float64) {
	style := v.sc.TrailStyle()
	r, ok := trailRunes[style]
	if !ok {
		return
	}

	for _, b := range v.sc.Bodies() {
		h, ok := v.sc.Trail(b.ID)
		if !ok {
			continue
		}
		n := h.Len()
		for i := n - 1; i >= 0; i-- {
			x, y, ok := view.Project(h.At(i))
			if !ok {
				continue
			}
			m := style.Mark(i, n, b.Color, intensity)
			v.put(x, y, r, rgb(m.Color, m.Opacity))
		}
	}
}

func bodyRune(b orrery.Body) rune {
	switch b.Kind {
	case registry.Star:
		return '☼'
	case registry.Galaxy:
		return '@'
	case registry.Moon:
		return '•'
	}
	if b.Radius >= 2 {
		return 'O'
	}
	return 'o'
}

func (v *Viewer) drawBodies(view View, labels bool) {
	selected, _ := v.sc.Selected()

	for _, b := range v.sc.Bodies() {
		x, y, ok := view.Project(b.Pos)
		if !ok {
			continue
		}
		st := tcell.StyleDefault.Foreground(rgb(b.Color, 1)).Bold(true)
		v.screen.SetContent(x, y, bodyRune(b), nil, st)

		if b.ID == selected {
			v.put(x-1, y, '[', tcell.ColorWhite)
			v.put(x+1, y, ']', tcell.ColorWhite)
		}
		if labels {
			if info, ok := v.sc.Info(b.ID); ok {
				v.text(x+2, y, info.Name, tcell.StyleDefault.Foreground(tcell.ColorGray))
			}
		}
	}
}

func (v *Viewer) drawHud() {
	st := tcell.StyleDefault.Foreground(tcell.ColorTeal)
	s := v.sc.Settings()

	line := fmt.Sprintf(` %s  time ×%g`, v.sc.Mode(), s.TimeSpeed)
	if s.Paused {
		line += ` (paused)`
	}
	if s.Trails {
		line += fmt.Sprintf(`  trails: %s/%d`, v.sc.TrailStyle(), s.TrailLength)
	}
	v.text(0, 0, line, st)

	y := 1
	if v.help {
		for _, l := range []string{
			` space pause  +/- speed  t/y trails  [ ] length  o orbits  l labels`,
			` r real scale  g galaxies  tab next  esc clear  z/x zoom  h help  q quit`,
		} {
			v.text(0, y, l, st.Dim(true))
			y++
		}
	}

	id, ok := v.sc.Selected()
	if !ok {
		return
	}
	info, ok := v.sc.Info(id)
	if !ok {
		return
	}
	_, h := v.screen.Size()
	lines := append([]string{fmt.Sprintf(` %s (%s)`, info.Name, info.Kind), ` ` + info.Description}, info.Facts...)
	for i, l := range lines {
		if i > 1 {
			l = `  · ` + l
		}
		v.text(0, h-len(lines)+i, l, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
}
