package simulation

import (
	"context"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// batchGroupSize is the number of agents a kernel pass handles before the
// context is checked again.
const batchGroupSize = 512

// BatchStrategy lays the population out as flat component arrays and runs two
// passes over them: the force pass fills the acceleration arrays from the
// positions and velocities, then the integrate pass updates every agent from
// its own acceleration. The passes never read what the other one writes for
// another agent, so all agents are updated as if simultaneously.
type BatchStrategy struct {
	px, py, pz []float64
	vx, vy, vz []float64
	ax, ay, az []float64
	orient     []geometry.Quaternion
}

func NewBatchStrategy() *BatchStrategy {
	return &BatchStrategy{}
}

func (s *BatchStrategy) Name() string { return StrategyBatch }

func (s *BatchStrategy) Advance(ctx context.Context, agents []behavior.Agent, env *behavior.Environment, r behavior.Rules, dt float64) error {
	n := len(agents)
	if err := ctx.Err(); err != nil || n == 0 {
		return err
	}
	s.load(agents)

	for lo := 0; lo < n; lo += batchGroupSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.forces(lo, min(lo+batchGroupSize, n), env, r)
	}
	for lo := 0; lo < n; lo += batchGroupSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.integrate(lo, min(lo+batchGroupSize, n), r, dt)
	}

	s.store(agents)
	return nil
}

func (s *BatchStrategy) load(agents []behavior.Agent) {
	n := len(agents)
	if cap(s.px) < n {
		s.px, s.py, s.pz = make([]float64, n), make([]float64, n), make([]float64, n)
		s.vx, s.vy, s.vz = make([]float64, n), make([]float64, n), make([]float64, n)
		s.ax, s.ay, s.az = make([]float64, n), make([]float64, n), make([]float64, n)
		s.orient = make([]geometry.Quaternion, n)
	}
	s.px, s.py, s.pz = s.px[:n], s.py[:n], s.pz[:n]
	s.vx, s.vy, s.vz = s.vx[:n], s.vy[:n], s.vz[:n]
	s.ax, s.ay, s.az = s.ax[:n], s.ay[:n], s.az[:n]
	s.orient = s.orient[:n]

	for i, a := range agents {
		s.px[i], s.py[i], s.pz[i] = a.Position.X, a.Position.Y, a.Position.Z
		s.vx[i], s.vy[i], s.vz[i] = a.Velocity.X, a.Velocity.Y, a.Velocity.Z
		s.orient[i] = a.Orientation
	}
}

func (s *BatchStrategy) position(i int) geometry.Vector3D {
	return geometry.Vector3D{X: s.px[i], Y: s.py[i], Z: s.pz[i]}
}

func (s *BatchStrategy) velocity(i int) geometry.Vector3D {
	return geometry.Vector3D{X: s.vx[i], Y: s.vy[i], Z: s.vz[i]}
}

func (s *BatchStrategy) forces(lo, hi int, env *behavior.Environment, r behavior.Rules) {
	n := len(s.px)
	for i := lo; i < hi; i++ {
		sums := behavior.SumNeighborsAt(i, n, s.position, s.velocity, r)
		acc := behavior.Compose(s.position(i), s.velocity(i), sums, env, r)
		s.ax[i], s.ay[i], s.az[i] = acc.X, acc.Y, acc.Z
	}
}

func (s *BatchStrategy) integrate(lo, hi int, r behavior.Rules, dt float64) {
	for i := lo; i < hi; i++ {
		acc := geometry.Vector3D{X: s.ax[i], Y: s.ay[i], Z: s.az[i]}
		pos, vel := behavior.Move(s.position(i), s.velocity(i), acc, dt, r)

		s.px[i], s.py[i], s.pz[i] = pos.X, pos.Y, pos.Z
		s.vx[i], s.vy[i], s.vz[i] = vel.X, vel.Y, vel.Z
		s.orient[i] = behavior.Orient(s.orient[i], vel)
		s.ax[i], s.ay[i], s.az[i] = 0, 0, 0
	}
}

func (s *BatchStrategy) store(agents []behavior.Agent) {
	for i := range agents {
		agents[i] = behavior.Agent{
			Position:     s.position(i),
			Velocity:     s.velocity(i),
			Acceleration: geometry.Zero,
			Orientation:  s.orient[i],
		}
	}
}
