package camera

import (
	"math"
	"testing"
	"time"

	"git.c3pb.de/farhaven/planetarium/registry"
	"git.c3pb.de/farhaven/planetarium/vector"
)

type fakeSky map[string]vector.V3

func (s fakeSky) Position(id string) (vector.V3, bool) {
	p, ok := s[id]
	return p, ok
}

type fixedOffsets map[string]vector.V3

func (o fixedOffsets) ViewingOffset(id string) (vector.V3, bool) {
	v, ok := o[id]
	return v, ok
}

var (
	t0      = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	defPose = Pose{Position: vector.V3{Y: 60, Z: 120}}
)

func newController(sky fakeSky) *Controller {
	return NewController(sky, fixedOffsets{
		"earth": {Y: 1, Z: 4},
		"mars":  {Y: 1, Z: 3},
	}, defPose)
}

func TestEase(t *testing.T) {
	if EaseOutCubic(0) != 0 || EaseOutCubic(1) != 1 {
		t.Errorf(`ease endpoints wrong`)
	}
	if e := EaseOutCubic(0.5); math.Abs(e-0.875) > 1e-12 {
		t.Errorf(`expected 0.875, got %f`, e)
	}
}

func TestFocusUnknownBody(t *testing.T) {
	c := newController(fakeSky{"earth": {X: 16}})

	if c.BeginFocus("vulcan", t0) {
		t.Errorf(`focus on unknown body succeeded`)
	}
	if _, ok := c.Focused(); ok {
		t.Errorf(`controller focused after a refused focus`)
	}
	if c.Update(t0.Add(time.Second)) != defPose {
		t.Errorf(`refused focus moved the camera`)
	}
}

func TestFocusEndpoints(t *testing.T) {
	sky := fakeSky{"earth": {X: 16}}
	c := newController(sky)

	start := c.Pose()
	if !c.BeginFocus("earth", t0) {
		t.Fatalf(`focus refused`)
	}

	if p := c.Update(t0); p != start {
		t.Errorf(`at progress 0 expected the start pose %v, got %v`, start, p)
	}

	// The body keeps moving during the animation.
	sky["earth"] = vector.V3{Z: 16}
	c.Update(t0.Add(time.Second))
	sky["earth"] = vector.V3{X: -16}

	p := c.Update(t0.Add(FocusDuration))
	if p.Target != sky["earth"] {
		t.Errorf(`at progress 1 expected look-at on the live position %s, got %s`, sky["earth"], p.Target)
	}
	if want := sky["earth"].Add(vector.V3{Y: 1, Z: 4}); !p.Position.ApproxEqual(want, 1e-12) {
		t.Errorf(`expected camera at %s, got %s`, want, p.Position)
	}
	if !c.Settled() {
		t.Errorf(`expected settled focus`)
	}
}

func TestFocusTracksMovingBody(t *testing.T) {
	sky := fakeSky{"earth": {X: 16}}
	c := newController(sky)
	c.BeginFocus("earth", t0)

	half := t0.Add(FocusDuration / 2)
	sky["earth"] = vector.V3{Z: 16}
	p := c.Update(half)

	e := EaseOutCubic(0.5)
	want := defPose.Target.Lerp(sky["earth"], e)
	if !p.Target.ApproxEqual(want, 1e-12) {
		t.Errorf(`destination should track the body: expected %s, got %s`, want, p.Target)
	}
}

func TestSettledFollows(t *testing.T) {
	sky := fakeSky{"earth": {X: 16}}
	c := newController(sky)
	c.BeginFocus("earth", t0)
	c.Update(t0.Add(3 * time.Second))

	c.Orbit(0.3, 0.1)
	rel := c.Pose().Position.Sub(c.Pose().Target)

	sky["earth"] = vector.V3{X: 10, Z: 12}
	p := c.Update(t0.Add(4 * time.Second))

	if p.Target != sky["earth"] {
		t.Errorf(`follow lost the body: %s`, p.Target)
	}
	if got := p.Position.Sub(p.Target); !got.ApproxEqual(rel, 1e-9) {
		t.Errorf(`follow should keep the relative offset %s, got %s`, rel, got)
	}
}

func TestRefocusMidFlightNoTeleport(t *testing.T) {
	sky := fakeSky{"earth": {X: 16}, "mars": {X: -20, Z: 5}}
	c := newController(sky)
	c.BeginFocus("earth", t0)

	frame := 16 * time.Millisecond
	now := t0
	var prev, cur Pose
	for now.Before(t0.Add(700 * time.Millisecond)) {
		prev = cur
		now = now.Add(frame)
		cur = c.Update(now)
	}
	step := cur.Position.Distance(prev.Position)

	if !c.BeginFocus("mars", now) {
		t.Fatalf(`refocus refused`)
	}
	after := c.Update(now)

	if jump := after.Position.Distance(cur.Position); jump > step {
		t.Errorf(`refocus jumped %f, more than one frame of motion %f`, jump, step)
	}
	if after.Target.Distance(cur.Target) > 1e-12 {
		t.Errorf(`refocus moved the look-at target`)
	}

	c.Update(now.Add(FocusDuration))
	if c.Pose().Target != sky["mars"] {
		t.Errorf(`expected to end on mars, got %s`, c.Pose().Target)
	}
}

func TestClearFocus(t *testing.T) {
	c := newController(fakeSky{"earth": {X: 16}})
	c.BeginFocus("earth", t0)
	c.Update(t0.Add(500 * time.Millisecond))

	c.ClearFocus()
	if c.Pose() != defPose {
		t.Errorf(`expected default pose, got %v`, c.Pose())
	}
	if c.Progress(t0.Add(time.Second)) != 0 {
		t.Errorf(`stale progress after clear`)
	}
	if c.Update(t0.Add(time.Second)) != defPose {
		t.Errorf(`cleared controller kept interpolating`)
	}
}

func TestVanishedBodyClearsFocus(t *testing.T) {
	sky := fakeSky{"earth": {X: 16}}
	c := newController(sky)
	c.BeginFocus("earth", t0)

	delete(sky, "earth")
	if p := c.Update(t0.Add(time.Second)); p != defPose {
		t.Errorf(`expected default pose, got %v`, p)
	}
}

func TestSaturnUsesRingView(t *testing.T) {
	reg := registry.Default()
	sky := fakeSky{"saturn": {X: 40}}
	c := NewController(sky, reg, defPose)

	c.BeginFocus("saturn", t0)
	p := c.Update(t0.Add(FocusDuration))

	off := p.Position.Sub(p.Target)
	want := registry.View{Distance: 18, Elevation: registry.Deg(35)}.Offset()
	if !off.ApproxEqual(want, 1e-9) {
		t.Errorf(`expected ringed-body offset %s, got %s`, want, off)
	}

	saturn, _ := reg.Lookup("saturn")
	if off.ApproxEqual(registry.DefaultView(saturn).Offset(), 1e-6) {
		t.Errorf(`saturn used the fallback offset`)
	}
}

func TestOrbitAndZoom(t *testing.T) {
	c := newController(fakeSky{})
	r := c.Pose().Position.Distance(c.Pose().Target)

	c.Orbit(1.2, 0.3)
	if d := c.Pose().Position.Distance(c.Pose().Target); math.Abs(d-r) > 1e-9 {
		t.Errorf(`orbit changed the distance to %f`, d)
	}

	c.Orbit(0, 10)
	rel := c.Pose().Position.Sub(c.Pose().Target)
	if rel.Y >= r {
		t.Errorf(`orbit crossed the pole`)
	}

	c.Zoom(0.5)
	if d := c.Pose().Position.Distance(c.Pose().Target); math.Abs(d-r/2) > 1e-9 {
		t.Errorf(`expected distance %f after zoom, got %f`, r/2, d)
	}

	c.Zoom(1e-9)
	if d := c.Pose().Position.Distance(c.Pose().Target); d < minDistance-1e-12 {
		t.Errorf(`zoom went through the pivot: %f`, d)
	}
}
