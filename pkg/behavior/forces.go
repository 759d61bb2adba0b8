package behavior

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

const (
	// MinObstacleDistance is the distance under which an agent is considered to
	// sit on the obstacle center and is pushed along geometry.Up instead.
	MinObstacleDistance = 1e-6

	// minWallRatio bounds |distance / edgeEffectDistance| away from zero so an
	// agent exactly on a face gets a large but finite push.
	minWallRatio = 1e-6
)

// AccelerationFor computes the acceleration of self for one tick given its
// materialized neighbor list. It is a convenience over Compose.
func AccelerationFor(self Agent, neighbors []Agent, env *Environment, r Rules) geometry.Vector3D {
	return Compose(self.Position, self.Velocity, SumNeighbors(self, neighbors), env, r)
}

// Compose evaluates every rule in their fixed order and returns the resulting
// acceleration: bounds, separation, alignment, cohesion, target attraction and
// finally obstacle rejection, which overrides everything before it.
// Every execution strategy goes through this function.
func Compose(pos, vel geometry.Vector3D, sums NeighborSums, env *Environment, r Rules) geometry.Vector3D {
	acc := Bounds(pos, env.Volume, r.WallWeight)
	acc = acc.Add(Separation(sums, r.SeparationWeight))
	acc = acc.Add(Alignment(vel, sums, r.AlignmentWeight))
	acc = acc.Add(Cohesion(pos, sums, r.CohesionWeight))
	acc = acc.Add(TargetAttraction(pos, env.Targets, r.TargetAttractionWeight))

	if rejection, inRange := ObstacleRejection(pos, env.Obstacles, r.ObstacleRejectionWeight); inRange {
		return rejection
	}
	return acc
}

// Bounds pushes the agent back inside the volume. Each of the six faces is
// handled on its own, so near a corner the pushes of several faces add up.
// The closer to a face, the stronger the push.
func Bounds(pos geometry.Vector3D, vol Volume, weight float64) geometry.Vector3D {
	lo, hi := vol.Min(), vol.Max()
	edge := vol.EdgeEffectDistance

	acc := wallForce(pos.X-lo.X, edge, weight, geometry.Right)
	acc = acc.Add(wallForce(pos.Y-lo.Y, edge, weight, geometry.Up))
	acc = acc.Add(wallForce(pos.Z-lo.Z, edge, weight, geometry.Forward))
	acc = acc.Add(wallForce(hi.X-pos.X, edge, weight, geometry.Right.Neg()))
	acc = acc.Add(wallForce(hi.Y-pos.Y, edge, weight, geometry.Up.Neg()))
	acc = acc.Add(wallForce(hi.Z-pos.Z, edge, weight, geometry.Forward.Neg()))
	return acc
}

// wallForce returns the push of one face given the signed distance to it
// (positive inside the volume) and the face inward normal.
func wallForce(distance, edge, weight float64, inward geometry.Vector3D) geometry.Vector3D {
	if edge <= 0 || !(distance < edge) {
		return geometry.Zero
	}
	ratio := math.Abs(distance / edge)
	if ratio < minWallRatio {
		ratio = minWallRatio
	}
	return inward.Mul(weight / ratio)
}

// Separation steers away from neighbors: the mean of the unit vectors pointing
// from each neighbor to the agent.
func Separation(sums NeighborSums, weight float64) geometry.Vector3D {
	if sums.Count == 0 {
		return geometry.Zero
	}
	return sums.Away.Mul(weight / float64(sums.Count))
}

// Alignment steers toward the mean neighbor velocity.
func Alignment(vel geometry.Vector3D, sums NeighborSums, weight float64) geometry.Vector3D {
	if sums.Count == 0 {
		return geometry.Zero
	}
	avg := sums.Velocity.Mul(1 / float64(sums.Count))
	return avg.Sub(vel).Mul(weight)
}

// Cohesion steers toward the mean neighbor position.
func Cohesion(pos geometry.Vector3D, sums NeighborSums, weight float64) geometry.Vector3D {
	if sums.Count == 0 {
		return geometry.Zero
	}
	avg := sums.Position.Mul(1 / float64(sums.Count))
	return avg.Sub(pos).Mul(weight)
}

// TargetAttraction sums the pull of every target whose ring contains the agent.
// The pull grows with the distance to the target.
func TargetAttraction(pos geometry.Vector3D, targets []Target, weight float64) geometry.Vector3D {
	acc := geometry.Zero
	for _, t := range targets {
		toTarget := t.Position.Sub(pos)
		distSq := toTarget.LenSqr()
		if !t.Attracts(distSq) {
			continue
		}
		acc = acc.Add(toTarget.Mul(weight * math.Abs(math.Sqrt(distSq)/t.AttractionRadiusSq)))
	}
	return acc
}

// ObstacleRejection returns the summed push away from every obstacle whose
// radius contains the agent, and whether there was any. When there is, the
// caller must use it instead of everything else computed this tick.
func ObstacleRejection(pos geometry.Vector3D, obstacles []Obstacle, weight float64) (geometry.Vector3D, bool) {
	acc := geometry.Zero
	inRange := false
	for _, o := range obstacles {
		away := pos.Sub(o.Position)
		distSq := away.LenSqr()
		if !o.Rejects(distSq) {
			continue
		}
		inRange = true

		dist := math.Sqrt(distSq)
		if dist < MinObstacleDistance {
			acc = acc.Add(geometry.Up.Mul(weight))
			continue
		}
		acc = acc.Add(away.Mul(weight / dist))
	}
	return acc, inRange
}
