// Package trail records the recent positions of moving bodies and maps
// them to fading marks at draw time.
package trail

import (
	"git.c3pb.de/farhaven/planetarium/vector"
)

const (
	DefaultLength = 50
	MinLength     = 10
	MaxLength     = 100
)

// ClampLength bounds a requested trail length to [MinLength, MaxLength].
func ClampLength(n int) int {
	if n < MinLength {
		return MinLength
	}
	if n > MaxLength {
		return MaxLength
	}
	return n
}

// History is a bounded list of positions, newest first. Points are stored
// oldest first internally so a push is an append.
type History struct {
	pts []vector.V3
	max int
}

func NewHistory(max int) *History {
	return &History{max: max}
}

// Push records p as the newest point and drops the oldest points beyond the
// current bound.
func (h *History) Push(p vector.V3) {
	h.pts = append(h.pts, p)
	if len(h.pts) > h.max {
		h.pts = h.pts[len(h.pts)-h.max:]
	}
}

func (h *History) Len() int {
	return len(h.pts)
}

// At returns the i-th most recent point, 0 being the newest.
func (h *History) At(i int) vector.V3 {
	return h.pts[len(h.pts)-1-i]
}

// Points returns a copy of the history, newest first.
func (h *History) Points() []vector.V3 {
	r := make([]vector.V3, len(h.pts))
	for i := range r {
		r[i] = h.At(i)
	}
	return r
}

// SetMax changes the bound used by the next Push. Points already recorded
// are left alone until then.
func (h *History) SetMax(n int) {
	h.max = n
}

func (h *History) Max() int {
	return h.max
}

func (h *History) Reset() {
	h.pts = h.pts[:0]
}

// Recorder keeps one history per body.
type Recorder struct {
	histories map[string]*History
	max       int
	style     Style
	enabled   bool
}

func NewRecorder(max int, style Style) *Recorder {
	return &Recorder{
		histories: map[string]*History{},
		max:       ClampLength(max),
		style:     style,
		enabled:   true,
	}
}

// Record appends pos to the history of id. Nothing is recorded while the
// recorder is disabled or the style draws nothing.
func (r *Recorder) Record(id string, pos vector.V3) {
	if !r.enabled || r.style == None {
		return
	}

	h, ok := r.histories[id]
	if !ok {
		h = NewHistory(r.max)
		r.histories[id] = h
	}
	h.Push(pos)
}

func (r *Recorder) History(id string) (*History, bool) {
	h, ok := r.histories[id]
	return h, ok
}

func (r *Recorder) Reset(id string) {
	if h, ok := r.histories[id]; ok {
		h.Reset()
	}
}

func (r *Recorder) ResetAll() {
	for _, h := range r.histories {
		h.Reset()
	}
}

// SetMax changes the length bound of every history. It applies from the next
// recorded tick on.
func (r *Recorder) SetMax(n int) {
	r.max = ClampLength(n)
	for _, h := range r.histories {
		h.SetMax(r.max)
	}
}

func (r *Recorder) Max() int {
	return r.max
}

// SetStyle switches the draw-time mapping. Recorded positions are kept.
func (r *Recorder) SetStyle(s Style) {
	r.style = s
}

func (r *Recorder) Style() Style {
	return r.style
}

// SetEnabled turns recording on or off. Toggling clears all histories.
func (r *Recorder) SetEnabled(on bool) {
	if on != r.enabled {
		r.ResetAll()
	}
	r.enabled = on
}

func (r *Recorder) Enabled() bool {
	return r.enabled
}
