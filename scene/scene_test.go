package scene

import (
	"testing"
	"time"

	"git.c3pb.de/farhaven/planetarium/camera"
	"git.c3pb.de/farhaven/planetarium/particles"
	"git.c3pb.de/farhaven/planetarium/registry"
	"git.c3pb.de/farhaven/planetarium/trail"
	"git.c3pb.de/farhaven/planetarium/vector"
)

var t0 = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

const frame = 16 * time.Millisecond

func newScene(t *testing.T, s Settings) *Scene {
	sc, err := New(registry.Default(), s, nil, WithRand(particles.NewRand(1)))
	if err != nil {
		t.Fatalf(`%s`, err)
	}
	t.Cleanup(sc.Close)
	return sc
}

func run(sc *Scene, from time.Time, d time.Duration) time.Time {
	now := from
	for end := from.Add(d); now.Before(end); {
		now = now.Add(frame)
		sc.Tick(now)
	}
	return now
}

func TestFirstTickDoesNotMove(t *testing.T) {
	sc := newScene(t, DefaultSettings())
	before, _ := sc.Position("earth")
	sc.Tick(t0)
	after, _ := sc.Position("earth")
	if before != after {
		t.Errorf(`first tick moved earth from %s to %s`, before, after)
	}
}

func TestPauseFreezesOrbitsOnly(t *testing.T) {
	s := DefaultSettings()
	sc := newScene(t, s)
	sc.Tick(t0)
	now := run(sc, t0, 500*time.Millisecond)

	sc.Update(func(s *Settings) { s.Paused = true })
	frozen, _ := sc.Position("earth")

	if !sc.Select("mars", now) {
		t.Fatalf(`select refused`)
	}
	start := sc.Camera().Pose()

	dust := sc.Layers()[1].Field
	x0, y0, z0 := dust.Point(0)

	now = run(sc, now, time.Second)

	if p, _ := sc.Position("earth"); p != frozen {
		t.Errorf(`earth moved while paused: %s -> %s`, frozen, p)
	}
	if sc.Camera().Pose() == start {
		t.Errorf(`camera focus should keep animating while paused`)
	}
	if x, y, z := dust.Point(0); x == x0 && y == y0 && z == z0 {
		t.Errorf(`dust should keep drifting while paused`)
	}

	sc.Update(func(s *Settings) { s.Paused = false })
	run(sc, now, 100*time.Millisecond)
	if p, _ := sc.Position("earth"); p == frozen {
		t.Errorf(`earth did not resume`)
	}
}

func TestTrailsOnlyWhilePlaying(t *testing.T) {
	sc := newScene(t, DefaultSettings())
	sc.Tick(t0)
	now := run(sc, t0, 20*frame)

	h, ok := sc.Trail("earth")
	if !ok || h.Len() != 20 {
		t.Fatalf(`expected 20 trail points`)
	}

	sc.Update(func(s *Settings) { s.Paused = true })
	run(sc, now, 10*frame)
	if h.Len() != 20 {
		t.Errorf(`trail grew while paused: %d`, h.Len())
	}

	if _, ok := sc.Trail("sun"); ok {
		t.Errorf(`the static sun should not leave a trail`)
	}
}

func TestTrailLengthSetting(t *testing.T) {
	s := DefaultSettings()
	s.TrailLength = 15
	sc := newScene(t, s)
	sc.Tick(t0)
	now := run(sc, t0, 40*frame)

	h, _ := sc.Trail("mars")
	if h.Len() != 15 {
		t.Errorf(`expected 15 points, got %d`, h.Len())
	}

	sc.Update(func(s *Settings) { s.TrailLength = 5000 })
	if sc.Settings().TrailLength != trail.MaxLength {
		t.Errorf(`trail length not clamped: %d`, sc.Settings().TrailLength)
	}

	sc.Update(func(s *Settings) { s.Trails = false })
	run(sc, now, 5*frame)
	if h.Len() != 0 {
		t.Errorf(`disabling trails should clear them, got %d`, h.Len())
	}
}

func TestSelectUnknown(t *testing.T) {
	sc := newScene(t, DefaultSettings())

	var events []string
	sc.OnSelect(func(id string) { events = append(events, id) })

	if sc.Select("andromeda", t0) {
		t.Errorf(`galaxy selectable from the solar system view`)
	}
	if sc.Select("nope", t0) {
		t.Errorf(`unknown body selected`)
	}
	if len(events) != 0 {
		t.Errorf(`refused selections emitted events: %v`, events)
	}
}

func TestSelectionFollowsBody(t *testing.T) {
	sc := newScene(t, DefaultSettings())

	var events []string
	sc.OnSelect(func(id string) { events = append(events, id) })

	sc.Tick(t0)
	if !sc.Select("moon", t0) {
		t.Fatalf(`select refused`)
	}
	run(sc, t0, camera.FocusDuration+time.Second)

	moon, _ := sc.Position("moon")
	if got := sc.Camera().Pose().Target; got != moon {
		t.Errorf(`camera should look at the current moon position %s, got %s`, moon, got)
	}

	sc.ClearSelection()
	if sc.Camera().Pose() != DefaultPose(SolarSystem) {
		t.Errorf(`clear should restore the default pose`)
	}
	if len(events) != 2 || events[0] != "moon" || events[1] != "" {
		t.Errorf(`unexpected events %v`, events)
	}
}

func TestViewModeClearsFocus(t *testing.T) {
	sc := newScene(t, DefaultSettings())
	sc.Tick(t0)
	sc.Select("saturn", t0)
	run(sc, t0, 10*frame)

	sc.SetViewMode(GalaxyCluster)
	if _, ok := sc.Camera().Focused(); ok {
		t.Errorf(`focus survived the view mode switch`)
	}
	if _, ok := sc.Selected(); ok {
		t.Errorf(`selection survived the view mode switch`)
	}
	if sc.Camera().Pose() != DefaultPose(GalaxyCluster) {
		t.Errorf(`expected the galaxy cluster default pose`)
	}
	if _, ok := sc.Position("earth"); ok {
		t.Errorf(`solar system bodies visible in the galaxy view`)
	}
	if !sc.Select("andromeda", t0.Add(time.Second)) {
		t.Errorf(`galaxy not selectable in the galaxy view`)
	}

	sc.SetViewMode(GalaxyCluster)
	if _, ok := sc.Camera().Focused(); ok {
		t.Errorf(`switching to the same mode should still clear focus`)
	}
}

func TestGalaxyLayers(t *testing.T) {
	sc := newScene(t, DefaultSettings())
	sc.SetViewMode(GalaxyCluster)

	anchors := map[string]bool{}
	for _, l := range sc.Layers() {
		anchors[l.Anchor] = true
	}
	for _, g := range registry.Default().Bodies(registry.Galaxies) {
		if !anchors[g.ID] {
			t.Errorf(`no particle cloud for %s`, g.ID)
		}
		f, ok := sc.Galaxy(g.ID)
		if !ok || f.Count != particles.CountFor(g.Radius, 80, 400, 4000) {
			t.Errorf(`%s: unexpected cloud`, g.ID)
		}
	}
	if _, ok := sc.Galaxy("earth"); ok {
		t.Errorf(`earth has no galaxy cloud`)
	}
}

func TestPick(t *testing.T) {
	sc := newScene(t, DefaultSettings())

	earth, _ := sc.Position("earth")
	from := earth.Add(vector.V3{Y: 50})
	id, ok := sc.Pick(vector.Ray{Origin: from, Dir: vector.V3{Y: -1}})
	if !ok || id != "earth" {
		t.Errorf(`expected earth, got %q %v`, id, ok)
	}

	if _, ok := sc.Pick(vector.Ray{Origin: vector.V3{Y: 500}, Dir: vector.V3{Y: 1}}); ok {
		t.Errorf(`ray into empty space hit something`)
	}
}

func TestNextBodyCycles(t *testing.T) {
	sc := newScene(t, DefaultSettings())

	seen := map[string]bool{}
	id := ""
	for i := 0; i < 100; i++ {
		id = sc.NextBody(id)
		if seen[id] {
			break
		}
		seen[id] = true
	}
	if len(seen) != len(registry.Default().Bodies(registry.SolarSystem)) {
		t.Errorf(`cycled through %d bodies`, len(seen))
	}
}

func TestRealScaleResetsTrails(t *testing.T) {
	sc := newScene(t, DefaultSettings())
	sc.Tick(t0)
	run(sc, t0, 10*frame)

	sc.Update(func(s *Settings) { s.RealScale = true })
	if h, _ := sc.Trail("earth"); h.Len() != 0 {
		t.Errorf(`trail kept across a scale change`)
	}
	b, _ := sc.Body("neptune")
	if b.Distance <= 58 {
		t.Errorf(`real scale not applied: %f`, b.Distance)
	}
}

func TestLongStallIsClamped(t *testing.T) {
	sc := newScene(t, DefaultSettings())
	sc.Tick(t0)
	before, _ := sc.Body("mercury")

	sc.Tick(t0.Add(time.Hour))
	after, _ := sc.Body("mercury")

	want := before.Angle + before.Speed*maxFrameDelta.Seconds()
	if d := after.Angle - want; d > 1e-9 || d < -1e-9 {
		t.Errorf(`expected one clamped step to %f, got %f`, want, after.Angle)
	}
}
