package scene

import (
	"math"
	"time"
)

// Action is a user command shared by both viewers.
type Action int

const (
	NoAction Action = iota
	TogglePause
	Faster
	Slower
	ToggleTrails
	NextTrailStyle
	LongerTrails
	ShorterTrails
	ToggleOrbits
	ToggleLabels
	ToggleRealScale
	ToggleViewMode
	FocusNext
	ClearFocus
	ResetScene
	Quit
)

const (
	minTimeSpeed = 1.0 / 16
	maxTimeSpeed = 64.0
	trailStep    = 10
)

// KeyActions maps the printable keys both viewers understand.
var KeyActions = map[rune]Action{
	' ': TogglePause,
	'+': Faster,
	'=': Faster,
	'-': Slower,
	't': ToggleTrails,
	'y': NextTrailStyle,
	']': LongerTrails,
	'[': ShorterTrails,
	'o': ToggleOrbits,
	'l': ToggleLabels,
	'r': ToggleRealScale,
	'g': ToggleViewMode,
	'n': FocusNext,
	'0': ResetScene,
	'q': Quit,
}

// Do applies a to the scene and reports whether the viewer should quit.
func (s *Scene) Do(a Action, now time.Time) (quit bool) {
	switch a {
	case TogglePause:
		s.Update(func(st *Settings) { st.Paused = !st.Paused })
	case Faster:
		s.Update(func(st *Settings) { st.TimeSpeed = math.Min(maxTimeSpeed, st.TimeSpeed*2) })
	case Slower:
		s.Update(func(st *Settings) { st.TimeSpeed = math.Max(minTimeSpeed, st.TimeSpeed/2) })
	case ToggleTrails:
		s.Update(func(st *Settings) { st.Trails = !st.Trails })
	case NextTrailStyle:
		s.Update(func(st *Settings) { st.TrailStyle = st.TrailStyle.Next() })
	case LongerTrails:
		s.Update(func(st *Settings) { st.TrailLength += trailStep })
	case ShorterTrails:
		s.Update(func(st *Settings) { st.TrailLength -= trailStep })
	case ToggleOrbits:
		s.Update(func(st *Settings) { st.ShowOrbits = !st.ShowOrbits })
	case ToggleLabels:
		s.Update(func(st *Settings) { st.ShowLabels = !st.ShowLabels })
	case ToggleRealScale:
		s.Update(func(st *Settings) { st.RealScale = !st.RealScale })
	case ToggleViewMode:
		if s.mode == SolarSystem {
			s.SetViewMode(GalaxyCluster)
		} else {
			s.SetViewMode(SolarSystem)
		}
	case FocusNext:
		cur, _ := s.Selected()
		s.Select(s.NextBody(cur), now)
	case ClearFocus:
		s.ClearSelection()
	case ResetScene:
		s.Reset()
		s.ClearSelection()
	case Quit:
		return true
	}
	return false
}
