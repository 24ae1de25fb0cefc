package registry

import (
	"math"
	"testing"

	"git.c3pb.de/farhaven/planetarium/vector"
)

func TestDefaultLookup(t *testing.T) {
	r := Default()

	b, ok := r.Lookup("earth")
	if !ok {
		t.Fatalf(`earth missing`)
	}
	if b.Distance != 16 || b.Parent != "sun" {
		t.Errorf(`unexpected earth: %+v`, b)
	}

	if _, ok := r.Lookup("vulcan"); ok {
		t.Errorf(`unknown id must not resolve`)
	}
}

func TestOrderParentsFirst(t *testing.T) {
	r := Default()

	ids := []string{"moon", "titan", "earth", "saturn", "sun"}
	order, err := r.Order(ids)
	if err != nil {
		t.Fatalf(`%s`, err)
	}

	pos := map[string]int{}
	for i, id := range order {
		pos[id] = i
	}
	for _, id := range ids {
		b, _ := r.Lookup(id)
		if b.Parent != "" && pos[b.Parent] > pos[id] {
			t.Errorf(`%s evaluated before its parent %s: %v`, id, b.Parent, order)
		}
	}
}

func TestOrderRejectsOrphans(t *testing.T) {
	r := Default()

	if _, err := r.Order([]string{"moon"}); err == nil {
		t.Errorf(`expected error for moon without earth`)
	}
	if _, err := r.Order([]string{"nibiru"}); err == nil {
		t.Errorf(`expected error for unknown body`)
	}
}

func TestOrderRejectsCycles(t *testing.T) {
	r, err := New(
		Body{ID: "a", Parent: "b"},
		Body{ID: "b", Parent: "a"},
	)
	if err != nil {
		t.Fatalf(`%s`, err)
	}
	if _, err := r.Order([]string{"a", "b"}); err == nil {
		t.Errorf(`expected cycle error`)
	}
}

func TestNewRejectsBadTables(t *testing.T) {
	if _, err := New(Body{ID: "x"}, Body{ID: "x"}); err == nil {
		t.Errorf(`expected duplicate error`)
	}
	if _, err := New(Body{ID: "x", Parent: "y"}); err == nil {
		t.Errorf(`expected unknown parent error`)
	}
}

func TestRotationSpeedDefault(t *testing.T) {
	r := Default()

	if s := r.RotationSpeed("venus"); s >= 0 {
		t.Errorf(`venus should rotate retrograde, got %f`, s)
	}
	if s := r.RotationSpeed("io"); s != DefaultRotationSpeed {
		t.Errorf(`io should use the default rotation speed, got %f`, s)
	}
}

func TestRotationAxis(t *testing.T) {
	r := Default()

	if a := r.RotationAxis("earth"); a != vector.Up {
		t.Errorf(`earth should spin around up, got %s`, a)
	}

	a := r.RotationAxis("uranus")
	tilt := math.Acos(a.Dot(vector.Up)) * 180 / math.Pi
	if math.Abs(tilt-97.77) > 1e-6 {
		t.Errorf(`uranus axis tilt: got %f degrees`, tilt)
	}
}

func TestSaturnViewOverride(t *testing.T) {
	r := Default()

	saturn, _ := r.Lookup("saturn")
	got, ok := r.ViewingOffset("saturn")
	if !ok {
		t.Fatalf(`no offset for saturn`)
	}

	want := View{Distance: 18, Elevation: Deg(35)}.Offset()
	if !got.ApproxEqual(want, 1e-12) {
		t.Errorf(`expected %s, got %s`, want, got)
	}
	if fallback := DefaultView(saturn).Offset(); got.ApproxEqual(fallback, 1e-6) {
		t.Errorf(`saturn resolved to the fallback view %s`, fallback)
	}
	if got.Y <= 0 || got.Z <= 0 {
		t.Errorf(`saturn should be viewed from above at an angle, got %s`, got)
	}
}

func TestViewingOffsetUnknown(t *testing.T) {
	if _, ok := Default().ViewingOffset("nope"); ok {
		t.Errorf(`unknown body must not resolve an offset`)
	}
}

func TestColors(t *testing.T) {
	b := Body{Color: "not a color"}
	if c := b.RGB(); c != fallbackColor {
		t.Errorf(`expected fallback color, got %v`, c)
	}

	g, _ := Default().Lookup("milkyway")
	if g.CoreRGB() == g.RGB() {
		t.Errorf(`galaxy core and edge colors should differ`)
	}
}
