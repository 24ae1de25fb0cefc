package particles

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/exp/rand"
)

type SpiralParams struct {
	Count  int
	Radius float64
	Arms   int
	// Spin is the extra angle, in radians per unit of radius, that bends
	// the arms.
	Spin      float64
	Thickness float64
	Core      colorful.Color
	Edge      colorful.Color
}

// Spiral spreads points along Arms arms whose angle grows with the radius.
func Spiral(rng *rand.Rand, p SpiralParams) *Field {
	f := newField(rng, p.Count, Static)
	if p.Arms < 1 {
		p.Arms = 2
	}
	if p.Spin == 0 {
		p.Spin = 3 / math.Max(p.Radius, 1e-9)
	}
	if p.Thickness == 0 {
		p.Thickness = 0.08
	}

	for i := 0; i < f.Count; i++ {
		ratio := rng.Float64()
		r := ratio * p.Radius

		branch := float64(i%p.Arms) / float64(p.Arms) * 2 * math.Pi
		a := branch + r*p.Spin

		scatter := func() float64 {
			s := math.Pow(rng.Float64(), 3) * 0.3 * (r + 0.05*p.Radius)
			if rng.Float64() < 0.5 {
				return -s
			}
			return s
		}

		x := math.Cos(a)*r + scatter()
		y := scatter() * p.Thickness / 0.3 * (1 - ratio*0.7)
		z := math.Sin(a)*r + scatter()

		f.set(i, x, y, z, p.Core.BlendRgb(p.Edge, ratio), 0.3+1.2*(1-ratio))
	}

	return f
}

type EllipticalParams struct {
	Count  int
	Radius float64
	// Flatten is the ratio of the short (vertical) axis to the long ones.
	Flatten float64
	Core    colorful.Color
	Edge    colorful.Color
}

// Elliptical fills an ellipsoid, densest and brightest at the center.
func Elliptical(rng *rand.Rand, p EllipticalParams) *Field {
	f := newField(rng, p.Count, Static)
	if p.Flatten <= 0 || p.Flatten > 1 {
		p.Flatten = 0.6
	}

	for i := 0; i < f.Count; i++ {
		dx, dy, dz := unitVector(rng)
		ratio := math.Pow(rng.Float64(), 2)
		r := ratio * p.Radius

		f.set(i, dx*r, dy*r*p.Flatten, dz*r*0.85, p.Core.BlendRgb(p.Edge, ratio), 0.4+0.8*(1-ratio))
	}

	return f
}

type IrregularParams struct {
	Count    int
	Radius   float64
	Clusters int
	// Young and Old are the two stellar populations mixed in the cloud.
	Young colorful.Color
	Old   colorful.Color
	// YoungShare is the fraction of points drawn as young stars.
	YoungShare float64
}

// Irregular scatters points around a few randomly placed local centers.
func Irregular(rng *rand.Rand, p IrregularParams) *Field {
	f := newField(rng, p.Count, Static)
	if p.Clusters < 1 {
		p.Clusters = 5
	}
	if p.YoungShare <= 0 {
		p.YoungShare = 0.4
	}

	centers := make([][3]float64, p.Clusters)
	for i := range centers {
		x, y, z := unitVector(rng)
		d := rng.Float64() * p.Radius * 0.7
		centers[i] = [3]float64{x * d, y * d * 0.4, z * d}
	}

	sigma := p.Radius * 0.25
	for i := 0; i < f.Count; i++ {
		c := centers[rng.Intn(len(centers))]

		col := p.Old
		if rng.Float64() < p.YoungShare {
			col = p.Young
		}
		col = col.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, rng.Float64()*0.2)

		f.set(i,
			c[0]+rng.NormFloat64()*sigma,
			c[1]+rng.NormFloat64()*sigma*0.4,
			c[2]+rng.NormFloat64()*sigma,
			col, 0.5+rng.Float64()*0.8)
	}

	return f
}
