package trail

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"git.c3pb.de/farhaven/planetarium/vector"
)

func TestHistoryNewestFirst(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Push(vector.V3{X: float64(i)})
	}

	if h.Len() != 3 {
		t.Fatalf(`expected 3 points, got %d`, h.Len())
	}
	for i, want := range []float64{4, 3, 2} {
		if got := h.At(i).X; got != want {
			t.Errorf(`At(%d): expected %f, got %f`, i, want, got)
		}
	}
}

func TestRecorderBound(t *testing.T) {
	r := NewRecorder(20, Plain)

	for i := 0; i < 500; i++ {
		r.Record("earth", vector.V3{X: float64(i)})
		if h, _ := r.History("earth"); h.Len() > r.Max() {
			t.Fatalf(`tick %d: history length %d exceeds %d`, i, h.Len(), r.Max())
		}
	}

	h, _ := r.History("earth")
	if h.Len() != 20 {
		t.Errorf(`expected full history of 20, got %d`, h.Len())
	}
}

func TestSetMaxAppliesOnNextTick(t *testing.T) {
	r := NewRecorder(50, Plain)
	for i := 0; i < 50; i++ {
		r.Record("mars", vector.V3{X: float64(i)})
	}

	r.SetMax(10)
	h, _ := r.History("mars")
	if h.Len() != 50 {
		t.Errorf(`shrinking must not truncate before the next tick, got %d`, h.Len())
	}

	r.Record("mars", vector.V3{X: 50})
	if h.Len() != 10 {
		t.Errorf(`expected 10 points after the next tick, got %d`, h.Len())
	}
	if h.At(0).X != 50 {
		t.Errorf(`newest point lost`)
	}
}

func TestClampLength(t *testing.T) {
	if n := NewRecorder(1, Plain).Max(); n != MinLength {
		t.Errorf(`expected %d, got %d`, MinLength, n)
	}
	if n := NewRecorder(1000, Plain).Max(); n != MaxLength {
		t.Errorf(`expected %d, got %d`, MaxLength, n)
	}
}

func TestStyleSwitchKeepsHistory(t *testing.T) {
	r := NewRecorder(30, Plain)
	for i := 0; i < 30; i++ {
		r.Record("venus", vector.V3{X: float64(i), Z: float64(-i)})
	}
	h, _ := r.History("venus")
	before := h.Points()
	base := colorful.Color{R: 0.2, G: 0.4, B: 0.9}
	plain := r.Style().Mark(10, h.Len(), base, 1)

	r.SetStyle(Meteor)

	after := h.Points()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf(`point %d changed after style switch`, i)
		}
	}
	if meteor := r.Style().Mark(10, h.Len(), base, 1); meteor == plain {
		t.Errorf(`style switch did not change the mapping`)
	}
}

func TestNoneSkipsRecording(t *testing.T) {
	r := NewRecorder(30, None)
	r.Record("earth", vector.V3{})
	if _, ok := r.History("earth"); ok {
		t.Errorf(`none style should not record`)
	}
}

func TestToggleResets(t *testing.T) {
	r := NewRecorder(30, Plain)
	r.Record("earth", vector.V3{})

	r.SetEnabled(false)
	r.Record("earth", vector.V3{X: 1})
	if h, _ := r.History("earth"); h.Len() != 0 {
		t.Errorf(`expected empty history after disabling, got %d`, h.Len())
	}

	r.SetEnabled(true)
	r.Record("earth", vector.V3{X: 2})
	if h, _ := r.History("earth"); h.Len() != 1 {
		t.Errorf(`expected one point, got %d`, h.Len())
	}
}

func TestMarksFadeWithAge(t *testing.T) {
	base := colorful.Color{R: 1, G: 0.5, B: 0}
	n := 40

	for s := Plain; s <= None; s++ {
		prev := s.Mark(0, n, base, 1)
		for i := 1; i < n; i++ {
			m := s.Mark(i, n, base, 1)
			if m.Opacity > prev.Opacity+1e-12 {
				t.Errorf(`%s: opacity grows at %d`, s, i)
			}
			if m.Size > prev.Size+1e-12 {
				t.Errorf(`%s: size grows at %d`, s, i)
			}
			prev = m
		}
	}

	if m := None.Mark(0, n, base, 1); m.Opacity != 0 {
		t.Errorf(`none should be invisible`)
	}
}

func TestParseStyle(t *testing.T) {
	for s := Plain; s <= None; s++ {
		got, ok := ParseStyle(s.String())
		if !ok || got != s {
			t.Errorf(`%s did not round trip`, s)
		}
	}
	if _, ok := ParseStyle("sparkles"); ok {
		t.Errorf(`unknown style parsed`)
	}
	if None.Next() != Plain {
		t.Errorf(`styles should cycle`)
	}
}
