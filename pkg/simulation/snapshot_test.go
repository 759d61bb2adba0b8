package simulation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

func TestSnapshot_IsDeepCopy(t *testing.T) {
	sim := newTestSimulation(t, 4)
	snap := sim.Snapshot()

	snap.Agents[0].Position = geometry.Vector3D{X: 1000}
	snap.Targets[0].Position = geometry.Vector3D{X: 1000}
	snap.Obstacles[0].Position = geometry.Vector3D{X: 1000}

	fresh := sim.Snapshot()
	assert.NotEqual(t, snap.Agents[0].Position, fresh.Agents[0].Position)
	assert.NotEqual(t, snap.Targets[0].Position, fresh.Targets[0].Position)
	assert.NotEqual(t, snap.Obstacles[0].Position, fresh.Obstacles[0].Position)
}

func TestSnapshot_Checksum(t *testing.T) {
	sim := newTestSimulation(t, 30)
	first := sim.Snapshot()

	assert.Equal(t, first.Checksum(), sim.Snapshot().Checksum())

	require.NoError(t, sim.Step(context.Background(), 0.02))
	second := sim.Snapshot()
	assert.NotEqual(t, first.Checksum(), second.Checksum())
	assert.Equal(t, uint64(1), second.Tick)
	assert.Equal(t, StrategyParallel, second.Strategy)
}

func TestSnapshot_Stats(t *testing.T) {
	snap := &Snapshot{Agents: []AgentView{
		{Position: geometry.Vector3D{X: 2}, Velocity: geometry.Vector3D{Z: 3}},
		{Position: geometry.Vector3D{Y: 4}, Velocity: geometry.Vector3D{X: 4}},
	}}
	assert.True(t, snap.Centroid().Eq(geometry.Vector3D{X: 1, Y: 2}))
	lo, hi := snap.SpeedRange()
	assert.Equal(t, 3.0, lo)
	assert.Equal(t, 4.0, hi)

	empty := &Snapshot{}
	assert.Equal(t, geometry.Zero, empty.Centroid())
	lo, hi = empty.SpeedRange()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}
