// Package scene drives one frame of the visualization: it advances the
// orrery of the active view, records trails, retargets the camera and drifts
// the particle fields, in that order.
package scene

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"git.c3pb.de/farhaven/planetarium/camera"
	"git.c3pb.de/farhaven/planetarium/orrery"
	"git.c3pb.de/farhaven/planetarium/particles"
	"git.c3pb.de/farhaven/planetarium/registry"
	"git.c3pb.de/farhaven/planetarium/resources"
	"git.c3pb.de/farhaven/planetarium/trail"
	"git.c3pb.de/farhaven/planetarium/vector"
)

type ViewMode int

const (
	SolarSystem ViewMode = iota
	GalaxyCluster
)

func (m ViewMode) String() string {
	switch m {
	case SolarSystem:
		return "solar system"
	case GalaxyCluster:
		return "galaxy cluster"
	default:
		return "unknown"
	}
}

// maxFrameDelta caps the time step of a single frame so a stalled window
// does not fling bodies around when it comes back.
const maxFrameDelta = 250 * time.Millisecond

type Settings struct {
	TimeSpeed float64
	Paused    bool

	ShowOrbits bool
	ShowLabels bool
	RealScale  bool

	Trails         bool
	TrailLength    int
	TrailIntensity float64
	TrailStyle     trail.Style
}

func DefaultSettings() Settings {
	return Settings{
		TimeSpeed:      1,
		ShowOrbits:     true,
		ShowLabels:     true,
		Trails:         true,
		TrailLength:    trail.DefaultLength,
		TrailIntensity: 0.8,
		TrailStyle:     trail.Glow,
	}
}

// DefaultPose is the unfocused camera pose of a view mode.
func DefaultPose(m ViewMode) camera.Pose {
	if m == GalaxyCluster {
		return camera.Pose{Position: vector.V3{Y: 400, Z: 900}}
	}
	return camera.Pose{Position: vector.V3{Y: 60, Z: 120}}
}

// Layer is a particle field drawn relative to Anchor, a body id, or to the
// scene origin when Anchor is empty.
type Layer struct {
	Name   string
	Anchor string
	Field  *particles.Field
}

type Option func(*Scene)

// WithRand makes particle generation use rng instead of a clock seeded
// generator.
func WithRand(rng *rand.Rand) Option {
	return func(s *Scene) {
		s.rng = rng
	}
}

type Scene struct {
	reg *registry.Registry
	res *resources.Manager
	rng *rand.Rand

	settings Settings
	mode     ViewMode

	systems map[ViewMode]*orrery.Orrery
	layers  map[ViewMode][]Layer
	trails  *trail.Recorder
	cam     *camera.Controller

	started, last time.Time
	elapsed       time.Duration

	selected  string
	listeners []func(id string)
}

func New(reg *registry.Registry, settings Settings, res *resources.Manager, opts ...Option) (*Scene, error) {
	s := &Scene{
		reg:      reg,
		res:      res,
		settings: settings,
		systems:  map[ViewMode]*orrery.Orrery{},
		layers:   map[ViewMode][]Layer{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = particles.NewClockRand()
	}
	if s.res == nil {
		s.res = resources.New(nil, nil)
	}

	for mode, keep := range map[ViewMode]func(registry.Body) bool{
		SolarSystem:   registry.SolarSystem,
		GalaxyCluster: registry.Galaxies,
	} {
		var ids []string
		for _, b := range reg.Bodies(keep) {
			ids = append(ids, b.ID)
		}
		o, err := orrery.New(reg, ids)
		if err != nil {
			return nil, errors.Wrapf(err, `can't build the %s`, mode)
		}
		s.systems[mode] = o
	}

	s.buildLayers()

	s.trails = trail.NewRecorder(settings.TrailLength, settings.TrailStyle)
	s.cam = camera.NewController(s, reg, DefaultPose(SolarSystem))
	s.apply()

	return s, nil
}

func (s *Scene) buildLayers() {
	if sun, ok := s.reg.Lookup("sun"); ok {
		c := sun.RGB()
		s.layers[SolarSystem] = []Layer{
			{Name: "stars", Field: particles.StarField(s.rng, 3000, 900)},
			{Name: "dust", Field: particles.Dust(s.rng, 1500, 80, c)},
			{Name: "solar wind", Anchor: sun.ID, Field: particles.SolarWind(s.rng, 800, sun.Radius*1.05, sun.Radius*6, c)},
			{Name: "plasma", Anchor: sun.ID, Field: particles.Plasma(s.rng, 600, sun.Radius, c)},
		}
	}

	ls := []Layer{{Name: "stars", Field: particles.StarField(s.rng, 4000, 3000)}}
	for _, g := range s.reg.Bodies(registry.Galaxies) {
		if f := GalaxyField(s.rng, g); f != nil {
			ls = append(ls, Layer{Name: g.Name, Anchor: g.ID, Field: f})
		}
	}
	s.layers[GalaxyCluster] = ls
}

// GalaxyField generates the point cloud matching the shape of galaxy g.
func GalaxyField(rng *rand.Rand, g registry.Body) *particles.Field {
	n := particles.CountFor(g.Radius, 80, 400, 4000)
	switch g.Shape {
	case registry.Spiral:
		return particles.Spiral(rng, particles.SpiralParams{
			Count: n, Radius: g.Radius, Arms: g.Arms, Core: g.CoreRGB(), Edge: g.RGB(),
		})
	case registry.Elliptical:
		return particles.Elliptical(rng, particles.EllipticalParams{
			Count: n, Radius: g.Radius, Flatten: 0.6, Core: g.CoreRGB(), Edge: g.RGB(),
		})
	case registry.Irregular:
		return particles.Irregular(rng, particles.IrregularParams{
			Count: n, Radius: g.Radius, Clusters: 5, Young: g.RGB(), Old: g.CoreRGB(),
		})
	default:
		return nil
	}
}

func (s *Scene) active() *orrery.Orrery {
	return s.systems[s.mode]
}

// apply pushes the current settings into the orreries and the recorder.
func (s *Scene) apply() {
	for _, o := range s.systems {
		o.SetPaused(s.settings.Paused)
		o.SetTimeSpeed(s.settings.TimeSpeed)
		if o.RealScale() != s.settings.RealScale {
			o.SetRealScale(s.settings.RealScale)
			s.trails.ResetAll()
		}
	}

	s.settings.TrailLength = trail.ClampLength(s.settings.TrailLength)
	s.trails.SetEnabled(s.settings.Trails)
	s.trails.SetMax(s.settings.TrailLength)
	s.trails.SetStyle(s.settings.TrailStyle)
}

func (s *Scene) Settings() Settings {
	return s.settings
}

// Update changes the settings through fn and applies the result.
func (s *Scene) Update(fn func(*Settings)) {
	fn(&s.settings)
	s.apply()
}

// Tick advances the scene to now. Orbits only move while playing; the camera
// and ambient particles always follow the wall clock.
func (s *Scene) Tick(now time.Time) {
	if s.started.IsZero() {
		s.started, s.last = now, now
	}

	dt := now.Sub(s.last)
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	s.last = now
	s.elapsed += dt

	o := s.active()
	o.Step(dt)

	if !s.settings.Paused && dt > 0 {
		for _, b := range o.Bodies() {
			if b.Distance != 0 {
				s.trails.Record(b.ID, b.Pos)
			}
		}
	}

	s.cam.Update(now)

	el, fdt := s.elapsed.Seconds(), dt.Seconds()
	for _, l := range s.layers[s.mode] {
		l.Field.Drift(el, fdt)
	}
}

func (s *Scene) Mode() ViewMode {
	return s.mode
}

// SetViewMode switches between the solar system and the galaxy cluster. Any
// focus is dropped, even when the mode does not change.
func (s *Scene) SetViewMode(m ViewMode) {
	if _, ok := s.systems[m]; !ok {
		return
	}
	s.mode = m
	s.trails.ResetAll()
	s.cam.SetDefault(DefaultPose(m))
	s.ClearSelection()
}

// Position resolves the live position of id in the active view.
func (s *Scene) Position(id string) (vector.V3, bool) {
	return s.active().Position(id)
}

func (s *Scene) Bodies() []orrery.Body {
	return s.active().Bodies()
}

func (s *Scene) Body(id string) (orrery.Body, bool) {
	return s.active().Body(id)
}

// Info returns the static description of id.
func (s *Scene) Info(id string) (registry.Body, bool) {
	return s.reg.Lookup(id)
}

func (s *Scene) Orbit(id string) []vector.V3 {
	return s.active().OrbitPath(id, 128)
}

func (s *Scene) Trail(id string) (*trail.History, bool) {
	return s.trails.History(id)
}

func (s *Scene) TrailStyle() trail.Style {
	return s.trails.Style()
}

func (s *Scene) Layers() []Layer {
	return s.layers[s.mode]
}

// Galaxy returns the particle cloud generated for galaxy id.
func (s *Scene) Galaxy(id string) (*particles.Field, bool) {
	for _, l := range s.layers[GalaxyCluster] {
		if l.Anchor == id {
			return l.Field, true
		}
	}
	return nil, false
}

func (s *Scene) Camera() *camera.Controller {
	return s.cam
}

func (s *Scene) Resources() *resources.Manager {
	return s.res
}

// OnSelect registers fn to be called with the selected body id, or "" when
// the selection is cleared.
func (s *Scene) OnSelect(fn func(id string)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Scene) notify(id string) {
	for _, fn := range s.listeners {
		fn(id)
	}
}

// Select focuses the camera on id. Unknown or invisible bodies are ignored.
func (s *Scene) Select(id string, now time.Time) bool {
	if !s.cam.BeginFocus(id, now) {
		return false
	}
	s.selected = id
	s.notify(id)
	return true
}

func (s *Scene) ClearSelection() {
	s.cam.ClearFocus()
	if s.selected == "" {
		return
	}
	s.selected = ""
	s.notify("")
}

func (s *Scene) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// NextBody returns the body after id in the active view, wrapping around.
func (s *Scene) NextBody(id string) string {
	ids := s.active().IDs()
	if len(ids) == 0 {
		return ""
	}
	for i, x := range ids {
		if x == id {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}

// minPickRadius keeps tiny moons clickable.
const minPickRadius = 0.5

// Pick returns the nearest body hit by r.
func (s *Scene) Pick(r vector.Ray) (string, bool) {
	best, hit := 0.0, ""
	for _, b := range s.Bodies() {
		rad := b.Radius
		if rad < minPickRadius {
			rad = minPickRadius
		}
		d, ok := r.IntersectSphere(b.Pos, rad)
		if ok && (hit == "" || d < best) {
			best, hit = d, b.ID
		}
	}
	return hit, hit != ""
}

// Reset puts every body back at its starting angle and drops all trails.
func (s *Scene) Reset() {
	for _, o := range s.systems {
		o.Reset()
	}
	s.trails.ResetAll()
}

// Close releases the resources owned by the scene.
func (s *Scene) Close() {
	s.res.Close()
}
