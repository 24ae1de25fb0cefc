package ui

import (
	"log"
	"math"

	"github.com/go-gl/gl/v2.1/gl"

	"git.c3pb.de/farhaven/planetarium/camera"
	"git.c3pb.de/farhaven/planetarium/vector"
)

// Camera turns a camera.Pose into GL matrices and keeps the view frustum of
// the last pose for culling, projection and picking.
type Camera struct {
	screenw, screenh int

	Pos vector.V3

	side, up, fw vector.V3

	frustum struct {
		zNear, zFar  float64
		nearH, nearW float64
		farH, farW   float64
		fovY, aspect float64
		planes       []vector.Plane
	}
}

func NewCamera(width, height int, zFar float64) *Camera {
	c := &Camera{}
	c.frustum.zNear = 0.1
	c.frustum.zFar = zFar
	c.frustum.fovY = 60
	c.Resize(width, height)
	c.look(camera.Pose{Position: vector.V3{Z: 1}})

	return c
}

func (c *Camera) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.screenw, c.screenh = width, height
	c.frustum.aspect = float64(width) / float64(height)

	t := math.Tan(c.frustum.fovY / 360 * math.Pi)
	c.frustum.nearH = t * c.frustum.zNear
	c.frustum.nearW = c.frustum.nearH * c.frustum.aspect
	c.frustum.farH = t * c.frustum.zFar
	c.frustum.farW = c.frustum.farH * c.frustum.aspect
}

type FrustumCheckResult int

const (
	INSIDE = iota
	OUTSIDE
	INTERSECT
)

func (r FrustumCheckResult) String() string {
	switch r {
	case INSIDE:
		return "INSIDE"
	case OUTSIDE:
		return "OUTSIDE"
	case INTERSECT:
		return "INTERSECT"
	default:
		log.Printf(`Can't get string for unknown frustum check result: %d`, r)
	}

	return ""
}

func (c *Camera) SphereInFrustum(p vector.V3, r float64) FrustumCheckResult {
	rv := FrustumCheckResult(INSIDE)

	for _, pl := range c.frustum.planes {
		d := pl.Distance(p)
		if d < -r {
			return OUTSIDE
		} else if d < r {
			rv = INTERSECT
		}
	}

	return rv
}

// look sets up the camera basis and frustum planes for pose. The returned
// matrix is the rotation part of the view transform in column-major order.
func (c *Camera) look(pose camera.Pose) [16]float64 {
	c.Pos = pose.Position

	fw := pose.Target.Sub(c.Pos).Normalized()
	if fw == vector.Zero {
		fw = vector.V3{Z: -1}
	}
	up := vector.Up
	if math.Abs(fw.Dot(up)) > 0.999 {
		up = vector.V3{Z: -1}
	}
	side := fw.Cross(up).Normalized()
	up = side.Cross(fw).Normalized()

	c.side, c.up, c.fw = side, up, fw

	// Update frustum
	nc := c.Pos.Add(fw.Scaled(c.frustum.zNear))
	fc := c.Pos.Add(fw.Scaled(c.frustum.zFar))

	planes := []vector.Plane{
		{fw, nc},            // NEARP
		{fw.Scaled(-1), fc}, // FARP
	}

	nh, nw := c.frustum.nearH, c.frustum.nearW

	// TOP
	aux := nc.Add(up.Scaled(nh)).Sub(c.Pos).Normalized()
	normal := aux.Cross(side)
	planes = append(planes, vector.Plane{normal, nc.Add(up.Scaled(nh))})

	// BOTTOM
	aux = nc.Sub(up.Scaled(nh)).Sub(c.Pos).Normalized()
	normal = side.Cross(aux)
	planes = append(planes, vector.Plane{normal, nc.Sub(up.Scaled(nh))})

	// LEFT
	aux = nc.Sub(side.Scaled(nw)).Sub(c.Pos).Normalized()
	normal = aux.Cross(up)
	planes = append(planes, vector.Plane{normal, nc.Sub(side.Scaled(nw))})

	// RIGHT
	aux = nc.Add(side.Scaled(nw)).Sub(c.Pos).Normalized()
	normal = up.Cross(aux)
	planes = append(planes, vector.Plane{normal, nc.Add(side.Scaled(nw))})

	c.frustum.planes = planes

	return [16]float64{
		side.X, up.X, -fw.X, 0,
		side.Y, up.Y, -fw.Y, 0,
		side.Z, up.Z, -fw.Z, 0,
		0, 0, 0, 1,
	}
}

// Apply loads the projection and modelview matrices for pose. This has to be
// called in the GL thread.
func (c *Camera) Apply(pose camera.Pose) {
	m := c.look(pose)

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Frustum(-c.frustum.nearW, c.frustum.nearW, -c.frustum.nearH, c.frustum.nearH, c.frustum.zNear, c.frustum.zFar)

	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixd(&m[0])
	gl.Translated(-c.Pos.X, -c.Pos.Y, -c.Pos.Z)
}

// Project maps p to window coordinates with the origin in the top left
// corner. ok is false for points behind the near plane.
func (c *Camera) Project(p vector.V3) (x, y float64, ok bool) {
	d := p.Sub(c.Pos)
	z := d.Dot(c.fw)
	if z < c.frustum.zNear {
		return 0, 0, false
	}

	tx := c.frustum.nearW / c.frustum.zNear
	ty := c.frustum.nearH / c.frustum.zNear
	nx := d.Dot(c.side) / (z * tx)
	ny := d.Dot(c.up) / (z * ty)

	x = (nx + 1) / 2 * float64(c.screenw)
	y = (1 - ny) / 2 * float64(c.screenh)
	return x, y, true
}

// Ray returns the ray from the eye through window coordinates x, y.
func (c *Camera) Ray(x, y float64) vector.Ray {
	nx := 2*x/float64(c.screenw) - 1
	ny := 1 - 2*y/float64(c.screenh)

	tx := c.frustum.nearW / c.frustum.zNear
	ty := c.frustum.nearH / c.frustum.zNear

	dir := c.fw.Add(c.side.Scaled(nx * tx)).Add(c.up.Scaled(ny * ty)).Normalized()
	return vector.Ray{Origin: c.Pos, Dir: dir}
}
