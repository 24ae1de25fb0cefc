package particles

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/exp/rand"
)

// Dust fills a cube of half-extent extent with slowly drifting motes.
func Dust(rng *rand.Rand, count int, extent float64, c colorful.Color) *Field {
	f := newField(rng, count, Wrap)
	f.bound = extent
	f.jitter = extent * 0.002
	f.vel = make([]float32, 3*f.Count)

	for i := 0; i < f.Count; i++ {
		f.set(i,
			between(rng, -extent, extent),
			between(rng, -extent, extent),
			between(rng, -extent, extent),
			c.BlendRgb(colorful.Color{}, rng.Float64()*0.5), 0.2+rng.Float64()*0.4)
		for k := 0; k < 3; k++ {
			f.vel[3*i+k] = float32(between(rng, -1, 1) * extent * 0.005)
		}
	}

	return f
}

// SolarWind streams particles outwards from a sphere of radius surface.
// Particles farther than boundary start over at the surface.
func SolarWind(rng *rand.Rand, count int, surface, boundary float64, c colorful.Color) *Field {
	f := newField(rng, count, Respawn)
	f.surface = surface
	f.bound = math.Max(boundary, surface*1.01)
	f.speed = [2]float64{surface * 0.4, surface * 1.2}
	f.vel = make([]float32, 3*f.Count)

	for i := 0; i < f.Count; i++ {
		f.respawn(i)
		// Spread the initial wave over the whole volume.
		k := float32(1 + rng.Float64()*(f.bound/surface-1)*0.95)
		f.Positions[3*i] *= k
		f.Positions[3*i+1] *= k
		f.Positions[3*i+2] *= k

		f.setColor(i, c.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, rng.Float64()*0.4))
		f.Sizes[i] = float32(0.2 + rng.Float64()*0.3)
	}

	return f
}

// Plasma wraps a thin flickering shell around a sphere of radius surface.
func Plasma(rng *rand.Rand, count int, surface float64, c colorful.Color) *Field {
	f := newField(rng, count, Shell)
	f.jitter = surface * 0.02
	f.anchor = make([]float32, 3*f.Count)

	hot := colorful.Color{R: 1, G: 0.95, B: 0.7}
	for i := 0; i < f.Count; i++ {
		x, y, z := unitVector(rng)
		r := surface * between(rng, 1.02, 1.15)
		f.set(i, x*r, y*r, z*r, c.BlendRgb(hot, rng.Float64()), 0.4+rng.Float64()*0.6)
		copy(f.anchor[3*i:3*i+3], f.Positions[3*i:3*i+3])
	}

	return f
}

// StarField places static background stars on a far shell.
func StarField(rng *rand.Rand, count int, radius float64) *Field {
	f := newField(rng, count, Static)

	for i := 0; i < f.Count; i++ {
		x, y, z := unitVector(rng)
		r := radius * between(rng, 0.9, 1)
		c := colorful.Hsv(between(rng, 200, 260), rng.Float64()*0.2, between(rng, 0.6, 1))
		if rng.Float64() < 0.15 {
			c = colorful.Hsv(between(rng, 20, 50), 0.3, between(rng, 0.7, 1))
		}
		f.set(i, x*r, y*r, z*r, c, 0.5+rng.Float64()*1.5)
	}

	return f
}
