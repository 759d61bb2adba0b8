package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

func frontCamera() *Camera {
	c := New(geometry.Zero, 10, 800, 600)
	c.Yaw, c.Pitch = 0, 0
	return c
}

func TestProject_TargetIsCentered(t *testing.T) {
	c := New(geometry.Vector3D{X: 5, Y: -2, Z: 1}, 10, 800, 600)
	x, y, depth, ok := c.Project(c.Target)
	assert.True(t, ok)
	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 300, y, 1e-9)
	assert.InDelta(t, c.Distance, depth, 1e-9)
}

func TestProject_Axes(t *testing.T) {
	c := frontCamera()

	x, _, _, _ := c.Project(geometry.Right)
	assert.Greater(t, x, 400.0, "+X is to the right")

	_, y, _, _ := c.Project(geometry.Up)
	assert.Less(t, y, 300.0, "+Y is up, screen y grows down")

	_, _, near, _ := c.Project(geometry.Vector3D{Z: -1})
	_, _, far, _ := c.Project(geometry.Forward)
	assert.Less(t, near, far, "the camera looks along +Z")
}

func TestProject_BehindCamera(t *testing.T) {
	c := frontCamera()
	_, _, _, ok := c.Project(geometry.Vector3D{Z: -c.Distance - 1})
	assert.False(t, ok)
}

func TestProject_Perspective(t *testing.T) {
	c := frontCamera()
	xNear, _, _, _ := c.Project(geometry.Vector3D{X: 1, Z: -5})
	xFar, _, _, _ := c.Project(geometry.Vector3D{X: 1, Z: 5})
	assert.Greater(t, xNear, xFar, "closer points spread further from the center")
}

func TestProject_AspectY(t *testing.T) {
	c := frontCamera()
	c.Width, c.Height, c.AspectY = 100, 50, 0.5
	x, y, _, _ := c.Project(geometry.Vector3D{X: 1, Y: 1})
	assert.InDelta(t, x-50, 2*(25-y), 1e-9, "one unit spans half as many rows as columns")
}

func TestOrbitAndZoom(t *testing.T) {
	c := frontCamera()
	c.Orbit(math.Pi/2, 10)
	assert.InDelta(t, math.Pi/2, c.Yaw, 1e-12)
	assert.Equal(t, 1.5, c.Pitch)

	d := c.Distance
	c.Zoom(0.5)
	assert.Equal(t, d/2, c.Distance)
	c.Zoom(-1)
	assert.Equal(t, d/2, c.Distance)
	c.Zoom(1e-9)
	assert.Equal(t, 2*nearPlane, c.Distance)
}

func TestHeading(t *testing.T) {
	c := frontCamera()
	assert.InDelta(t, 0, c.Heading(geometry.Zero, geometry.Right), 1e-9)
	assert.InDelta(t, -math.Pi/2, c.Heading(geometry.Zero, geometry.Up), 1e-9)
}
