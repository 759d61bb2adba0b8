package behavior

import "github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"

// Move advances one agent by dt given its acceleration and returns the new
// position and velocity. The speed is clamped to [MinSpeed, MaxSpeed].
//
// When the updated velocity has no direction, the previous velocity direction
// is kept, and geometry.Forward after that, so the speed clamp always holds.
// A non finite acceleration is ignored for this tick.
func Move(pos, vel, acc geometry.Vector3D, dt float64, r Rules) (geometry.Vector3D, geometry.Vector3D) {
	if !acc.IsFinite() {
		acc = geometry.Zero
	}
	v := vel.Add(acc.Mul(dt))

	dir := v.Normalize()
	if dir.IsZero() {
		dir = vel.NormalizeOr(geometry.Forward)
	}
	speed := geometry.Clamp(v.Len(), r.MinSpeed, r.MaxSpeed)
	v = dir.Mul(speed)

	return pos.Add(v.Mul(dt)), v
}

// Orient returns the look rotation along vel, or prev when vel has no direction.
func Orient(prev geometry.Quaternion, vel geometry.Vector3D) geometry.Quaternion {
	q, ok := geometry.LookRotation(vel, geometry.Up)
	if !ok {
		return prev
	}
	return q
}

// Integrate consumes a.Acceleration: it moves the agent, refreshes its
// orientation and clears the acceleration for the next tick.
func Integrate(a *Agent, dt float64, r Rules) {
	a.Position, a.Velocity = Move(a.Position, a.Velocity, a.Acceleration, dt, r)
	a.Orientation = Orient(a.Orientation, a.Velocity)
	a.Acceleration = geometry.Zero
}
