package simulation

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// AgentView is what a presentation layer gets to see of one agent.
type AgentView struct {
	Position    geometry.Vector3D
	Velocity    geometry.Vector3D
	Orientation geometry.Quaternion
}

// Snapshot is a deep copy of the simulation state after a tick. Nothing in it
// is shared with the running simulation.
type Snapshot struct {
	Tick      uint64
	Strategy  string
	Agents    []AgentView
	Targets   []behavior.Target
	Obstacles []behavior.Obstacle
	Volume    behavior.Volume
}

// Snapshot copies the current state.
func (s *Simulation) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{
		Tick:      s.tick,
		Strategy:  s.strategy.Name(),
		Agents:    make([]AgentView, len(s.agents)),
		Targets:   append([]behavior.Target(nil), s.env.Targets...),
		Obstacles: append([]behavior.Obstacle(nil), s.env.Obstacles...),
		Volume:    s.env.Volume,
	}
	for i, a := range s.agents {
		snap.Agents[i] = AgentView{Position: a.Position, Velocity: a.Velocity, Orientation: a.Orientation}
	}
	return snap
}

// Checksum digests the exact bits of every agent position and velocity.
// Two runs agree on it only if they are bitwise identical.
func (snap *Snapshot) Checksum() uint64 {
	d := xxhash.New()
	var buf [8]byte
	write := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}
	for _, a := range snap.Agents {
		write(a.Position.X)
		write(a.Position.Y)
		write(a.Position.Z)
		write(a.Velocity.X)
		write(a.Velocity.Y)
		write(a.Velocity.Z)
	}
	return d.Sum64()
}

// Centroid returns the mean agent position, or the zero vector without agents.
func (snap *Snapshot) Centroid() geometry.Vector3D {
	if len(snap.Agents) == 0 {
		return geometry.Zero
	}
	sum := geometry.Zero
	for _, a := range snap.Agents {
		sum = sum.Add(a.Position)
	}
	return sum.Mul(1 / float64(len(snap.Agents)))
}

// SpeedRange returns the lowest and highest agent speed.
func (snap *Snapshot) SpeedRange() (lo, hi float64) {
	if len(snap.Agents) == 0 {
		return 0, 0
	}
	lo = math.Inf(1)
	for _, a := range snap.Agents {
		v := a.Velocity.Len()
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
