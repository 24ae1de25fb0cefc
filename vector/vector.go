package vector

import (
	"fmt"
	"math"
)

// V3 is a point or direction in scene space. Y is up, orbits lie in the XZ
// plane.
type V3 struct {
	X, Y, Z float64
}

var (
	Zero = V3{}
	Up   = V3{0, 1, 0}
)

func (v V3) String() string {
	return fmt.Sprintf(`(%.2f, %.2f, %.2f)`, v.X, v.Y, v.Z)
}

func (v V3) anyNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

func (v V3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v V3) Dot(o V3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v V3) Cross(o V3) V3 {
	if v.anyNaN() {
		panic(`NaN v`)
	}
	if o.anyNaN() {
		panic(`NaN o`)
	}
	return V3{
		v.Y*o.Z - o.Y*v.Z,
		o.X*v.Z - v.X*o.Z,
		v.X*o.Y - o.X*v.Y,
	}
}

func (v V3) Normalized() V3 {
	if v.anyNaN() {
		panic(`NaN v`)
	}
	l := v.Length()
	if l == 0 {
		/* Not strictly mathematically correct */
		return v
	}
	return v.Scaled(1 / l)
}

func (v V3) Sub(o V3) V3 {
	return V3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v V3) Add(o V3) V3 {
	return V3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v V3) Scaled(n float64) V3 {
	return V3{v.X * n, v.Y * n, v.Z * n}
}

func (v V3) Distance(o V3) float64 {
	return v.Sub(o).Length()
}

// Lerp returns the point at fraction t on the segment from v to o.
func (v V3) Lerp(o V3, t float64) V3 {
	return V3{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
	}
}

// Rotated rotates v by angle radians around the unit axis k (Rodrigues).
func (v V3) Rotated(k V3, angle float64) V3 {
	s, c := math.Sincos(angle)
	return v.Scaled(c).
		Add(k.Cross(v).Scaled(s)).
		Add(k.Scaled(k.Dot(v) * (1 - c)))
}

// ApproxEqual reports whether every component of v is within eps of o.
func (v V3) ApproxEqual(o V3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

type Plane [2]V3 // Normal, Point on plane

func (p *Plane) Distance(px V3) float64 {
	n := p[0]
	p0 := p[1]

	D := n.Scaled(-1).Dot(p0)

	return n.Dot(px) + D
}

// Ray is a half line starting at Origin heading along the unit vector Dir.
type Ray struct {
	Origin, Dir V3
}

// IntersectSphere returns the distance along r to the nearest intersection
// with the sphere at c with radius rad.
func (r Ray) IntersectSphere(c V3, rad float64) (float64, bool) {
	oc := r.Origin.Sub(c)
	b := oc.Dot(r.Dir)
	disc := b*b - (oc.Dot(oc) - rad*rad)
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
