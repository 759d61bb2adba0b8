// Package camera projects the 3D flock onto a 2D viewport. Both the window
// viewer and the terminal viewer draw through it.
package camera

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// nearPlane is the closest camera-space depth that still gets projected.
const nearPlane = 0.1

// Camera orbits a look-at point. Yaw turns around the world Y axis, Pitch tilts
// the view down toward the point; both are in radians.
type Camera struct {
	Target   geometry.Vector3D
	Yaw      float64
	Pitch    float64
	Distance float64 // from the camera to Target
	Focal    float64 // focal length; larger zooms in

	// Viewport in pixels or cells. AspectY scales the vertical axis, e.g. 0.5
	// for terminal cells that are twice as tall as wide.
	Width, Height float64
	AspectY       float64
}

// New returns a camera looking at target from far enough to frame a cube of
// the given size.
func New(target geometry.Vector3D, size, width, height float64) *Camera {
	return &Camera{
		Target:   target,
		Yaw:      math.Pi / 6,
		Pitch:    math.Pi / 8,
		Distance: size * 2,
		Focal:    1.6,
		Width:    width,
		Height:   height,
		AspectY:  1,
	}
}

// Orbit turns the camera; pitch is kept short of the poles.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = geometry.Clamp(c.Pitch+dPitch, -1.5, 1.5)
}

// Zoom scales the distance to the target by factor.
func (c *Camera) Zoom(factor float64) {
	if factor > 0 {
		c.Distance = math.Max(nearPlane*2, c.Distance*factor)
	}
}

// view expresses p in camera space: X right, Y up, Z depth (positive ahead).
func (c *Camera) view(p geometry.Vector3D) geometry.Vector3D {
	d := p.Sub(c.Target)

	sy, cy := math.Sincos(-c.Yaw)
	d = geometry.Vector3D{X: d.X*cy + d.Z*sy, Y: d.Y, Z: -d.X*sy + d.Z*cy}

	sp, cp := math.Sincos(c.Pitch)
	d = geometry.Vector3D{X: d.X, Y: d.Y*cp - d.Z*sp, Z: d.Y*sp + d.Z*cp}

	d.Z += c.Distance
	return d
}

// Project maps p to viewport coordinates (origin top left, y down) and returns
// its depth. ok is false when p is behind the near plane.
func (c *Camera) Project(p geometry.Vector3D) (x, y, depth float64, ok bool) {
	v := c.view(p)
	if v.Z < nearPlane {
		return 0, 0, v.Z, false
	}
	scale := c.Focal * math.Min(c.Width, c.Height/c.AspectY) / 2 / v.Z
	x = c.Width/2 + v.X*scale
	y = c.Height/2 - v.Y*scale*c.AspectY
	return x, y, v.Z, true
}

// Heading returns the on-screen angle (radians, atan2 convention with y down)
// of a direction dir applied at p.
func (c *Camera) Heading(p, dir geometry.Vector3D) float64 {
	x0, y0, _, _ := c.Project(p)
	x1, y1, _, _ := c.Project(p.Add(dir.Normalize().Mul(0.1)))
	return math.Atan2(y1-y0, x1-x0)
}

// Scale returns how many viewport units one world unit spans at depth.
func (c *Camera) Scale(depth float64) float64 {
	if depth < nearPlane {
		return 0
	}
	return c.Focal * math.Min(c.Width, c.Height/c.AspectY) / 2 / depth
}
