// Package registry holds the static, hand-authored table of celestial bodies
// and the sparse per-body override tables consulted by the kinematics and
// camera code. Everything in here is read-only once built.
package registry

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

type Kind int

const (
	Star Kind = iota
	Planet
	DwarfPlanet
	Moon
	Galaxy
)

func (k Kind) String() string {
	switch k {
	case Star:
		return "star"
	case Planet:
		return "planet"
	case DwarfPlanet:
		return "dwarf planet"
	case Moon:
		return "moon"
	case Galaxy:
		return "galaxy"
	default:
		return "unknown"
	}
}

// Shape selects the particle distribution used to draw a galaxy.
type Shape int

const (
	NoShape Shape = iota
	Spiral
	Elliptical
	Irregular
)

func (s Shape) String() string {
	switch s {
	case Spiral:
		return "spiral"
	case Elliptical:
		return "elliptical"
	case Irregular:
		return "irregular"
	default:
		return "none"
	}
}

type Rings struct {
	Inner, Outer float64
	Color        string
}

type Body struct {
	ID     string
	Name   string
	Kind   Kind
	Parent string

	Color  string // hex, "#rrggbb"
	Radius float64

	// Distance is the orbital radius around the parent (or the scene origin
	// for roots), Speed the angular speed in radians per simulated second
	// and Phase the orbital angle at scene start.
	Distance float64
	Speed    float64
	Phase    float64

	// Used when the real-scale display toggle is on.
	RealRadiusKm   float64
	RealDistanceAU float64

	Rings *Rings

	Shape     Shape
	Arms      int
	CoreColor string

	Description string
	Facts       []string
}

var fallbackColor = colorful.Color{R: 0.6, G: 0.6, B: 0.6}

func parseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallbackColor
	}
	return c
}

// RGB returns the display color, or neutral gray if Color does not parse.
func (b Body) RGB() colorful.Color {
	return parseColor(b.Color)
}

// CoreRGB returns the bright center tone of a galaxy. Bodies without one
// use their display color.
func (b Body) CoreRGB() colorful.Color {
	if b.CoreColor == "" {
		return b.RGB()
	}
	return parseColor(b.CoreColor)
}

func (b Body) Orbits() bool {
	return b.Distance != 0 && b.Speed != 0
}

type Registry struct {
	bodies map[string]Body
	ids    []string

	rotation    map[string]float64
	tilt        map[string]Angle
	inclination map[string]Angle
	views       map[string]View
}

// New builds a registry from bodies in declaration order. It rejects
// duplicate ids and parents that are not part of the table.
func New(bodies ...Body) (*Registry, error) {
	r := &Registry{
		bodies:      make(map[string]Body, len(bodies)),
		rotation:    map[string]float64{},
		tilt:        map[string]Angle{},
		inclination: map[string]Angle{},
		views:       map[string]View{},
	}

	for _, b := range bodies {
		if b.ID == "" {
			return nil, errors.New(`body without id`)
		}
		if _, dup := r.bodies[b.ID]; dup {
			return nil, errors.Errorf(`duplicate body %q`, b.ID)
		}
		r.bodies[b.ID] = b
		r.ids = append(r.ids, b.ID)
	}

	for _, b := range bodies {
		if b.Parent == "" {
			continue
		}
		if _, ok := r.bodies[b.Parent]; !ok {
			return nil, errors.Errorf(`body %q: unknown parent %q`, b.ID, b.Parent)
		}
	}

	return r, nil
}

func (r *Registry) Lookup(id string) (Body, bool) {
	b, ok := r.bodies[id]
	return b, ok
}

// IDs returns all body ids in declaration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Bodies returns the bodies accepted by keep in declaration order. A nil
// keep returns everything.
func (r *Registry) Bodies(keep func(Body) bool) []Body {
	var out []Body
	for _, id := range r.ids {
		b := r.bodies[id]
		if keep == nil || keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (r *Registry) Children(id string) []Body {
	return r.Bodies(func(b Body) bool { return b.Parent == id })
}

// Order sorts ids so that every parent precedes its children. Ties keep
// declaration order. A body whose parent is not among ids, or a parent
// chain that loops, is an error.
func (r *Registry) Order(ids []string) ([]string, error) {
	in := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := r.bodies[id]; !ok {
			return nil, errors.Errorf(`unknown body %q`, id)
		}
		in[id] = true
	}

	depth := make(map[string]int, len(ids))
	var walk func(id string, seen map[string]bool) (int, error)
	walk = func(id string, seen map[string]bool) (int, error) {
		if d, ok := depth[id]; ok {
			return d, nil
		}
		if seen[id] {
			return 0, errors.Errorf(`parent cycle through %q`, id)
		}
		seen[id] = true

		p := r.bodies[id].Parent
		if p == "" {
			depth[id] = 0
			return 0, nil
		}
		if !in[p] {
			return 0, errors.Errorf(`body %q: parent %q is not part of the set`, id, p)
		}
		d, err := walk(p, seen)
		if err != nil {
			return 0, err
		}
		depth[id] = d + 1
		return d + 1, nil
	}

	for _, id := range ids {
		if _, err := walk(id, map[string]bool{}); err != nil {
			return nil, err
		}
	}

	pos := make(map[string]int, len(r.ids))
	for i, id := range r.ids {
		pos[id] = i
	}

	out := make([]string, len(ids))
	copy(out, ids)
	sort.SliceStable(out, func(i, j int) bool {
		if depth[out[i]] != depth[out[j]] {
			return depth[out[i]] < depth[out[j]]
		}
		return pos[out[i]] < pos[out[j]]
	})

	return out, nil
}
