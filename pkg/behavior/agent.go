// Package behavior holds the flocking core: agent state, the environment the
// agents react to, the neighbor query, the force model and the integrator.
//
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// The name "boid" corresponds to a shortened version of "bird-oid object".
// https://en.wikipedia.org/wiki/Boids
//
// Nothing in this package keeps hidden state or logs: every function is a pure
// computation over its arguments so that different execution strategies can
// share it and produce identical results.
package behavior

import "github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"

// Agent represents a single boid.
// Acceleration is per-tick scratch: Integrate consumes it and resets it to zero.
// Orientation is derived from Velocity and is only kept so a degenerate
// velocity can hold the previous heading.
type Agent struct {
	Position     geometry.Vector3D
	Velocity     geometry.Vector3D
	Acceleration geometry.Vector3D
	Orientation  geometry.Quaternion
}

// NewAgent creates an agent at position facing forward at the given speed.
// A forward without direction falls back to geometry.Forward.
func NewAgent(position, forward geometry.Vector3D, speed float64) Agent {
	dir := forward.NormalizeOr(geometry.Forward)
	orientation, _ := geometry.LookRotation(dir, geometry.Up)
	return Agent{
		Position:    position,
		Velocity:    dir.Mul(speed),
		Orientation: orientation,
	}
}

// Speed returns the magnitude of the agent velocity.
func (a Agent) Speed() float64 {
	return a.Velocity.Len()
}
