package registry

import (
	"math"

	"github.com/soniakeys/unit"

	"git.c3pb.de/farhaven/planetarium/vector"
)

type Angle = unit.Angle

func Deg(d float64) Angle {
	return unit.AngleFromDeg(d)
}

// DefaultRotationSpeed is the self-rotation rate, in radians per simulated
// second, for bodies without an entry in the rotation table.
const DefaultRotationSpeed = 0.5

// View is a camera placement relative to a focused body: Distance away from
// it, raised by Elevation above its orbital plane.
type View struct {
	Distance  float64
	Elevation Angle
}

func (v View) Offset() vector.V3 {
	s, c := math.Sincos(v.Elevation.Rad())
	return vector.V3{X: 0, Y: s * v.Distance, Z: c * v.Distance}
}

// kindViews are the fallback views, scaled by the body radius.
var kindViews = map[Kind]struct {
	factor, min float64
	elevation   Angle
}{
	Star:        {4, 10, Deg(25)},
	Planet:      {5, 4, Deg(20)},
	DwarfPlanet: {6, 3, Deg(20)},
	Moon:        {6, 2, Deg(15)},
	Galaxy:      {2.5, 40, Deg(40)},
}

// DefaultView is the view used for bodies without a named override.
func DefaultView(b Body) View {
	kv, ok := kindViews[b.Kind]
	if !ok {
		kv = kindViews[Planet]
	}
	return View{
		Distance:  b.Radius*kv.factor + kv.min,
		Elevation: kv.elevation,
	}
}

func (r *Registry) SetRotationSpeed(id string, speed float64) {
	r.rotation[id] = speed
}

func (r *Registry) SetAxialTilt(id string, a Angle) {
	r.tilt[id] = a
}

func (r *Registry) SetInclination(id string, a Angle) {
	r.inclination[id] = a
}

func (r *Registry) SetView(id string, v View) {
	r.views[id] = v
}

func (r *Registry) RotationSpeed(id string) float64 {
	if s, ok := r.rotation[id]; ok {
		return s
	}
	return DefaultRotationSpeed
}

func (r *Registry) AxialTilt(id string) Angle {
	return r.tilt[id]
}

// RotationAxis is the unit axis a body spins around: straight up unless the
// body has an axial tilt override, in which case up is tipped towards +X.
func (r *Registry) RotationAxis(id string) vector.V3 {
	t, ok := r.tilt[id]
	if !ok {
		return vector.Up
	}
	return vector.Up.Rotated(vector.V3{Z: 1}, -t.Rad())
}

func (r *Registry) Inclination(id string) Angle {
	return r.inclination[id]
}

// ViewFor resolves the camera view of a body: its named override if one
// exists, otherwise the per-kind default.
func (r *Registry) ViewFor(id string) (View, bool) {
	b, ok := r.bodies[id]
	if !ok {
		return View{}, false
	}
	if v, ok := r.views[id]; ok {
		return v, true
	}
	return DefaultView(b), true
}

// ViewingOffset is the camera offset from the live position of body id.
func (r *Registry) ViewingOffset(id string) (vector.V3, bool) {
	v, ok := r.ViewFor(id)
	if !ok {
		return vector.V3{}, false
	}
	return v.Offset(), true
}

// HasViewOverride reports whether id has a named view exception.
func (r *Registry) HasViewOverride(id string) bool {
	_, ok := r.views[id]
	return ok
}
