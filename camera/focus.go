// Package camera moves the viewpoint between bodies. A focus eases the camera
// from wherever it is towards a viewing offset around a (moving) body and
// then keeps following that body.
package camera

import (
	"math"
	"time"

	"git.c3pb.de/farhaven/planetarium/vector"
)

const FocusDuration = 2000 * time.Millisecond

// Pose is a camera position and the point it looks at. Target doubles as the
// pivot of manual orbit navigation.
type Pose struct {
	Position vector.V3
	Target   vector.V3
}

// Locator resolves the live position of a body in the current frame.
type Locator interface {
	Position(id string) (vector.V3, bool)
}

// Offsets resolves the camera offset to use around a body.
type Offsets interface {
	ViewingOffset(id string) (vector.V3, bool)
}

// EaseOutCubic maps linear progress l in [0, 1] to 1-(1-l)³.
func EaseOutCubic(l float64) float64 {
	l = math.Max(0, math.Min(1, l))
	r := 1 - l
	return 1 - r*r*r
}

type Controller struct {
	loc     Locator
	offsets Offsets

	duration time.Duration
	def      Pose
	pose     Pose

	target  string
	start   Pose
	began   time.Time
	settled bool
}

func NewController(loc Locator, offsets Offsets, def Pose) *Controller {
	return &Controller{
		loc:      loc,
		offsets:  offsets,
		duration: FocusDuration,
		def:      def,
		pose:     def,
	}
}

// SetDuration overrides the length of the focus animation.
func (c *Controller) SetDuration(d time.Duration) {
	if d > 0 {
		c.duration = d
	}
}

// SetDefault changes the unfocused pose. The camera only moves there on the
// next ClearFocus.
func (c *Controller) SetDefault(p Pose) {
	c.def = p
}

func (c *Controller) Pose() Pose {
	return c.pose
}

// Focused returns the id of the body being followed, if any.
func (c *Controller) Focused() (string, bool) {
	return c.target, c.target != ""
}

func (c *Controller) Settled() bool {
	return c.target != "" && c.settled
}

// Progress is the linear progress of the current focus animation at now.
func (c *Controller) Progress(now time.Time) float64 {
	if c.target == "" {
		return 0
	}
	if c.settled {
		return 1
	}
	l := float64(now.Sub(c.began)) / float64(c.duration)
	return math.Max(0, math.Min(1, l))
}

// BeginFocus starts easing towards body id from the current pose, which may
// itself be the middle of another focus animation. It does nothing and
// returns false when id has no live position.
func (c *Controller) BeginFocus(id string, now time.Time) bool {
	if _, ok := c.loc.Position(id); !ok {
		return false
	}
	if _, ok := c.offsets.ViewingOffset(id); !ok {
		return false
	}

	c.target = id
	c.start = c.pose
	c.began = now
	c.settled = false

	return true
}

// ClearFocus drops the focus target and returns to the default pose.
func (c *Controller) ClearFocus() {
	c.target = ""
	c.start = Pose{}
	c.began = time.Time{}
	c.settled = false
	c.pose = c.def
}

// Update recomputes the pose for now. It must run after body positions have
// been advanced for the frame.
func (c *Controller) Update(now time.Time) Pose {
	if c.target == "" {
		return c.pose
	}

	p, ok := c.loc.Position(c.target)
	if !ok {
		c.ClearFocus()
		return c.pose
	}

	if c.settled {
		c.pose.Position = c.pose.Position.Add(p.Sub(c.pose.Target))
		c.pose.Target = p
		return c.pose
	}

	off, _ := c.offsets.ViewingOffset(c.target)
	dest := p.Add(off)

	l := c.Progress(now)
	if l >= 1 {
		c.pose = Pose{Position: dest, Target: p}
		c.settled = true
		return c.pose
	}

	e := EaseOutCubic(l)
	c.pose = Pose{
		Position: c.start.Position.Lerp(dest, e),
		Target:   c.start.Target.Lerp(p, e),
	}

	return c.pose
}

const (
	minDistance  = 0.5
	maxElevation = math.Pi/2 - 0.01
)

// Orbit swings the camera around its pivot by the given azimuth and
// elevation deltas in radians.
func (c *Controller) Orbit(dAzimuth, dElevation float64) {
	rel := c.pose.Position.Sub(c.pose.Target)
	r := rel.Length()
	if r == 0 {
		return
	}

	az := math.Atan2(rel.X, rel.Z) + dAzimuth
	el := math.Asin(math.Max(-1, math.Min(1, rel.Y/r))) + dElevation
	el = math.Max(-maxElevation, math.Min(maxElevation, el))

	se, ce := math.Sincos(el)
	sa, ca := math.Sincos(az)
	c.pose.Position = c.pose.Target.Add(vector.V3{X: r * ce * sa, Y: r * se, Z: r * ce * ca})
}

// Zoom scales the distance between camera and pivot by f.
func (c *Controller) Zoom(f float64) {
	if f <= 0 {
		return
	}
	rel := c.pose.Position.Sub(c.pose.Target)
	r := rel.Length()
	if r == 0 {
		return
	}
	nr := math.Max(minDistance, r*f)
	c.pose.Position = c.pose.Target.Add(rel.Scaled(nr / r))
}
