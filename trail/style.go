package trail

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

type Style int

const (
	Plain Style = iota
	Glow
	Particle
	Meteor
	Rainbow
	Solid
	None
)

var styleNames = [...]string{
	Plain:    "plain",
	Glow:     "glow",
	Particle: "particle",
	Meteor:   "meteor",
	Rainbow:  "rainbow",
	Solid:    "solid",
	None:     "none",
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "unknown"
	}
	return styleNames[s]
}

func ParseStyle(name string) (Style, bool) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), true
		}
	}
	return Plain, false
}

// Next cycles through the styles in declaration order.
func (s Style) Next() Style {
	return Style((int(s) + 1) % len(styleNames))
}

// Mark is how a single trail point is drawn. Size is relative to the trail's
// base point size.
type Mark struct {
	Opacity float64
	Size    float64
	Color   colorful.Color
}

var white = colorful.Color{R: 1, G: 1, B: 1}

// Mark maps the i-th newest of n trail points to its appearance. Opacity and
// size never grow with age.
func (s Style) Mark(i, n int, base colorful.Color, intensity float64) Mark {
	if n <= 0 || i < 0 || i >= n || s == None {
		return Mark{Color: base}
	}

	f := 1 - float64(i)/float64(n)
	intensity = math.Max(0, math.Min(1, intensity))

	switch s {
	case Glow:
		return Mark{
			Opacity: math.Sqrt(f) * intensity * 0.8,
			Size:    1.5 * (0.4 + 0.6*f),
			Color:   base.BlendRgb(white, 0.3*f).Clamped(),
		}
	case Particle:
		return Mark{
			Opacity: f * intensity,
			Size:    0.3 + 0.4*f,
			Color:   base,
		}
	case Meteor:
		return Mark{
			Opacity: f * f * intensity,
			Size:    0.2 + f,
			Color:   base.BlendRgb(white, 0.6*f*f).Clamped(),
		}
	case Rainbow:
		return Mark{
			Opacity: f * intensity,
			Size:    0.5 + 0.5*f,
			Color:   colorful.Hsv(360*float64(i)/float64(n), 0.8, 1).Clamped(),
		}
	case Solid:
		return Mark{
			Opacity: intensity * (0.6 + 0.4*f),
			Size:    1,
			Color:   base,
		}
	default:
		return Mark{
			Opacity: f * intensity,
			Size:    0.5 + 0.5*f,
			Color:   base,
		}
	}
}
