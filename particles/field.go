// Package particles generates the point clouds drawn for galaxies and the
// ambient effects around the Sun, and drifts the ambient ones in place.
package particles

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/exp/rand"
)

type Behavior int

const (
	// Static fields never move on their own.
	Static Behavior = iota
	// Wrap fields drift and re-enter at the opposite face of their
	// bounding cube.
	Wrap
	// Respawn fields stream outwards and restart at the emission surface
	// once past their boundary.
	Respawn
	// Shell fields jitter around fixed anchor points.
	Shell
)

// Field is a fixed-size point cloud. Positions and Colors hold three values
// per point, Sizes one.
type Field struct {
	Count     int
	Positions []float32
	Colors    []float32
	Sizes     []float32

	behavior Behavior
	vel      []float32
	anchor   []float32

	surface float64 // emission radius of respawning fields
	bound   float64 // cube half-extent or respawn radius
	speed   [2]float64
	jitter  float64

	rng *rand.Rand
}

func newField(rng *rand.Rand, count int, b Behavior) *Field {
	if count < 0 {
		count = 0
	}
	return &Field{
		Count:     count,
		Positions: make([]float32, 3*count),
		Colors:    make([]float32, 3*count),
		Sizes:     make([]float32, count),
		behavior:  b,
		rng:       rng,
	}
}

func (f *Field) Behavior() Behavior {
	return f.behavior
}

func (f *Field) set(i int, x, y, z float64, c colorful.Color, size float64) {
	f.Positions[3*i], f.Positions[3*i+1], f.Positions[3*i+2] = float32(x), float32(y), float32(z)
	f.setColor(i, c)
	f.Sizes[i] = float32(size)
}

func (f *Field) setColor(i int, c colorful.Color) {
	c = c.Clamped()
	f.Colors[3*i], f.Colors[3*i+1], f.Colors[3*i+2] = float32(c.R), float32(c.G), float32(c.B)
}

// Point returns the position of point i.
func (f *Field) Point(i int) (x, y, z float64) {
	return float64(f.Positions[3*i]), float64(f.Positions[3*i+1]), float64(f.Positions[3*i+2])
}

// NewRand returns a generator seeded with seed. Fields built from the same
// seed are identical.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewClockRand returns a generator seeded from the wall clock.
func NewClockRand() *rand.Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// CountFor derives a point count from a body radius, clamped to [lo, hi].
func CountFor(radius, density float64, lo, hi int) int {
	n := int(radius * density)
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// unitVector returns a uniformly distributed direction.
func unitVector(rng *rand.Rand) (x, y, z float64) {
	for {
		x, y, z = rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()
		if l := math.Sqrt(x*x + y*y + z*z); l > 1e-9 {
			return x / l, y / l, z / l
		}
	}
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Drift moves the field in place. elapsed is the wall-clock time since the
// scene started and keys the per-point jitter, dt is the frame time. Both are
// in seconds.
func (f *Field) Drift(elapsed, dt float64) {
	switch f.behavior {
	case Wrap:
		f.driftWrap(elapsed, dt)
	case Respawn:
		f.driftRespawn(elapsed, dt)
	case Shell:
		f.driftShell(elapsed)
	}
}

func wrapAxis(v, bound float64) float64 {
	if v > bound {
		return v - 2*bound
	}
	if v < -bound {
		return v + 2*bound
	}
	return v
}

func (f *Field) driftWrap(elapsed, dt float64) {
	for i := 0; i < f.Count; i++ {
		ph := elapsed*0.5 + float64(i)*0.37
		for k := 0; k < 3; k++ {
			j := 3*i + k
			v := float64(f.Positions[j]) + float64(f.vel[j])*dt + math.Sin(ph+float64(k))*f.jitter*dt
			f.Positions[j] = float32(wrapAxis(v, f.bound))
		}
	}
}

func (f *Field) respawn(i int) {
	x, y, z := unitVector(f.rng)
	s := between(f.rng, f.speed[0], f.speed[1])
	f.Positions[3*i], f.Positions[3*i+1], f.Positions[3*i+2] = float32(x*f.surface), float32(y*f.surface), float32(z*f.surface)
	f.vel[3*i], f.vel[3*i+1], f.vel[3*i+2] = float32(x*s), float32(y*s), float32(z*s)
}

func (f *Field) driftRespawn(elapsed, dt float64) {
	for i := 0; i < f.Count; i++ {
		ph := elapsed*2 + float64(i)*0.61
		w := 1 + 0.2*math.Sin(ph)

		x, y, z := f.Point(i)
		x += float64(f.vel[3*i]) * dt * w
		y += float64(f.vel[3*i+1]) * dt * w
		z += float64(f.vel[3*i+2]) * dt * w

		if x*x+y*y+z*z > f.bound*f.bound {
			f.respawn(i)
			continue
		}
		f.Positions[3*i], f.Positions[3*i+1], f.Positions[3*i+2] = float32(x), float32(y), float32(z)
	}
}

func (f *Field) driftShell(elapsed float64) {
	for i := 0; i < f.Count; i++ {
		ph := elapsed*1.5 + float64(i)*0.53
		f.Positions[3*i] = f.anchor[3*i] + float32(math.Sin(ph)*f.jitter)
		f.Positions[3*i+1] = f.anchor[3*i+1] + float32(math.Cos(ph*1.3)*f.jitter)
		f.Positions[3*i+2] = f.anchor[3*i+2] + float32(math.Sin(ph*0.7)*f.jitter)
	}
}
