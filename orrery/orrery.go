package orrery

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"git.c3pb.de/farhaven/planetarium/registry"
	"git.c3pb.de/farhaven/planetarium/vector"
)

const (
	// AU is the real-scale length of one astronomical unit in scene units.
	AU = 16.0
	// KmUnits converts kilometres to real-scale scene units.
	KmUnits = AU / 149.6e6
	// RealRadiusBoost inflates real-scale radii so bodies stay visible next
	// to true distances.
	RealRadiusBoost = 50.0
)

// realDistance is the real-scale orbit radius of b. Moon distances get the
// radius boost too and are measured from the surface of their parent.
func realDistance(b registry.Body, parent *Body) float64 {
	if b.RealDistanceAU == 0 {
		return 0
	}
	d := b.RealDistanceAU * AU
	if parent != nil && parent.parent != nil {
		d = parent.realRadius + d*RealRadiusBoost
	}
	return d
}

const twoPi = 2 * math.Pi

type Body struct {
	ID     string
	Parent string
	Kind   registry.Kind
	Color  colorful.Color

	Radius   float64
	Distance float64
	Speed    float64

	// Angle is the orbital angle, Rotation the self-rotation angle around
	// Axis. Both stay within [0, 2π).
	Angle         float64
	Rotation      float64
	RotationSpeed float64
	Axis          vector.V3

	Pos vector.V3

	phase       float64
	inclination float64 // sine of the decorative orbital inclination

	radius, distance         float64
	realRadius, realDistance float64

	parent *Body
}

func (b Body) String() string {
	return fmt.Sprintf(`%s: R:%.2f, D:%.2f, θ:%.3f, Pos:%s`, b.ID, b.Radius, b.Distance, b.Angle, b.Pos)
}

func wrap(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// Advance integrates angle by speed*multiplier over dt seconds and wraps the
// result into [0, 2π).
func Advance(angle, speed, multiplier, dt float64) float64 {
	return wrap(angle + speed*multiplier*dt)
}

// orbitOffset is the position of a body relative to its parent.
func (b *Body) orbitOffset(angle float64) vector.V3 {
	s, c := math.Sincos(angle)
	return vector.V3{
		X: c * b.Distance,
		Y: s * b.Distance * b.inclination,
		Z: s * b.Distance,
	}
}

func (b *Body) center() vector.V3 {
	if b.parent == nil {
		return vector.V3{}
	}
	return b.parent.Pos
}

func (b *Body) place() {
	b.Pos = b.center().Add(b.orbitOffset(b.Angle))
}

func (b *Body) applyScale(real bool) {
	b.Radius, b.Distance = b.radius, b.distance
	if !real {
		return
	}
	if b.realRadius > 0 {
		b.Radius = b.realRadius
	}
	if b.realDistance > 0 {
		b.Distance = b.realDistance
	}
}

// Orrery advances a fixed set of bodies around their parents. Bodies are kept
// in evaluation order so a parent is always placed before its children.
type Orrery struct {
	bodies []*Body
	byID   map[string]*Body

	paused    bool
	timeSpeed float64
	realScale bool

	l sync.Mutex
}

// New builds an orrery for ids, taking their parameters from reg.
func New(reg *registry.Registry, ids []string) (*Orrery, error) {
	order, err := reg.Order(ids)
	if err != nil {
		return nil, errors.Wrap(err, `can't order bodies`)
	}

	o := &Orrery{
		byID:      make(map[string]*Body, len(order)),
		timeSpeed: 1,
	}

	for _, id := range order {
		rb, _ := reg.Lookup(id)
		b := &Body{
			ID:            rb.ID,
			Parent:        rb.Parent,
			Kind:          rb.Kind,
			Color:         rb.RGB(),
			Speed:         rb.Speed,
			Angle:         wrap(rb.Phase),
			RotationSpeed: reg.RotationSpeed(id),
			Axis:          reg.RotationAxis(id),
			phase:         wrap(rb.Phase),
			inclination:   math.Sin(reg.Inclination(id).Rad()),
			radius:        rb.Radius,
			distance:      rb.Distance,
			realRadius:    rb.RealRadiusKm * KmUnits * RealRadiusBoost,
		}
		if rb.Parent != "" {
			b.parent = o.byID[rb.Parent]
		}
		b.realDistance = realDistance(rb, b.parent)
		b.applyScale(false)
		b.place()

		o.bodies = append(o.bodies, b)
		o.byID[id] = b
	}

	return o, nil
}

// Step advances every body by dt of real time. While paused nothing moves.
func (o *Orrery) Step(dt time.Duration) {
	o.l.Lock()
	defer o.l.Unlock()

	if o.paused || dt <= 0 {
		return
	}

	s := dt.Seconds()
	for _, b := range o.bodies {
		if b.Distance != 0 {
			b.Angle = Advance(b.Angle, b.Speed, o.timeSpeed, s)
		}
		b.Rotation = Advance(b.Rotation, b.RotationSpeed, o.timeSpeed, s)
		b.place()
	}
}

func (o *Orrery) SetPaused(p bool) {
	o.l.Lock()
	defer o.l.Unlock()

	o.paused = p
}

func (o *Orrery) Paused() bool {
	o.l.Lock()
	defer o.l.Unlock()

	return o.paused
}

func (o *Orrery) SetTimeSpeed(m float64) {
	o.l.Lock()
	defer o.l.Unlock()

	o.timeSpeed = m
}

func (o *Orrery) TimeSpeed() float64 {
	o.l.Lock()
	defer o.l.Unlock()

	return o.timeSpeed
}

// SetRealScale switches between display distances and true proportions.
// Angles are kept, only radii and positions change.
func (o *Orrery) SetRealScale(real bool) {
	o.l.Lock()
	defer o.l.Unlock()

	o.realScale = real
	for _, b := range o.bodies {
		b.applyScale(real)
		b.place()
	}
}

func (o *Orrery) RealScale() bool {
	o.l.Lock()
	defer o.l.Unlock()

	return o.realScale
}

// Reset puts every body back at its starting angle.
func (o *Orrery) Reset() {
	o.l.Lock()
	defer o.l.Unlock()

	for _, b := range o.bodies {
		b.Angle = b.phase
		b.Rotation = 0
		b.place()
	}
}

func (o *Orrery) Position(id string) (vector.V3, bool) {
	o.l.Lock()
	defer o.l.Unlock()

	b, ok := o.byID[id]
	if !ok {
		return vector.V3{}, false
	}
	return b.Pos, true
}

func (o *Orrery) Body(id string) (Body, bool) {
	o.l.Lock()
	defer o.l.Unlock()

	b, ok := o.byID[id]
	if !ok {
		return Body{}, false
	}
	c := *b
	c.parent = nil
	return c, true
}

// Bodies returns a snapshot of all bodies in evaluation order.
func (o *Orrery) Bodies() []Body {
	o.l.Lock()
	defer o.l.Unlock()

	r := make([]Body, len(o.bodies))
	for i, b := range o.bodies {
		r[i] = *b
		r[i].parent = nil
	}

	return r
}

func (o *Orrery) IDs() []string {
	o.l.Lock()
	defer o.l.Unlock()

	r := make([]string, len(o.bodies))
	for i, b := range o.bodies {
		r[i] = b.ID
	}
	return r
}

// OrbitPath returns n points of the orbit of id around the current position
// of its parent.
func (o *Orrery) OrbitPath(id string, n int) []vector.V3 {
	o.l.Lock()
	defer o.l.Unlock()

	b, ok := o.byID[id]
	if !ok || b.Distance == 0 || n < 3 {
		return nil
	}

	c := b.center()
	pts := make([]vector.V3, n)
	for i := range pts {
		pts[i] = c.Add(b.orbitOffset(twoPi * float64(i) / float64(n)))
	}
	return pts
}
