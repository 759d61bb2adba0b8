package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// scriptedRand replays fixed draws.
type scriptedRand struct {
	ints []int
}

func (r *scriptedRand) IntN(n int) int {
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func (r *scriptedRand) Float64() float64 { return 0.5 }

func TestNewPatrol(t *testing.T) {
	rng := &scriptedRand{}
	cps := []geometry.Vector3D{{X: 1}}

	_, err := NewPatrol(0, nil, 1, 0.5, rng)
	assert.ErrorIs(t, err, ErrInvalidPatrol)
	_, err = NewPatrol(-1, cps, 1, 0.5, rng)
	assert.ErrorIs(t, err, ErrInvalidPatrol)
	_, err = NewPatrol(0, cps, -1, 0.5, rng)
	assert.ErrorIs(t, err, ErrInvalidPatrol)
	_, err = NewPatrol(0, cps, 1, 0.5, nil)
	assert.ErrorIs(t, err, ErrInvalidPatrol)
	_, err = NewPatrol(0, []geometry.Vector3D{}, 1, 0.5, rng)
	assert.ErrorIs(t, err, ErrInvalidPatrol)
	_, err = NewPatrol(0, cps, 1, -0.5, rng)
	assert.ErrorIs(t, err, ErrInvalidPatrol)

	p, err := NewPatrol(0, cps, 1, 0.5, rng)
	require.NoError(t, err)
	cps[0] = geometry.Vector3D{X: 9}
	assert.Equal(t, geometry.Vector3D{X: 1}, p.Current(), "checkpoints are copied")
}

func TestPatrol_Advance(t *testing.T) {
	cps := []geometry.Vector3D{{X: 10}, {Z: 10}, {X: -10}}
	// IntN(2) = 0 while heading to checkpoint 0 picks index 1; then IntN(2) = 0
	// while heading to 1 picks index 0.
	rng := &scriptedRand{ints: []int{0, 0}}
	p, err := NewPatrol(0, cps, 2, 0.5, rng)
	require.NoError(t, err)

	o := behavior.Obstacle{Position: geometry.Zero, RadiusSq: 1}

	p.Advance(&o, 0.5)
	assert.True(t, o.Position.Eq(geometry.Vector3D{X: 1}), "moved speed*dt toward the checkpoint, got %v", o.Position)
	assert.Equal(t, cps[0], p.Current())

	o.Position = geometry.Vector3D{X: 9.7}
	p.Advance(&o, 0.1)
	assert.Equal(t, cps[1], p.Current(), "reached checkpoint 0, another one is drawn")

	o.Position = geometry.Vector3D{Z: 9.9}
	p.Advance(&o, 0)
	assert.Equal(t, cps[0], p.Current())
	assert.Empty(t, rng.ints)
}

func TestPatrol_NeverRepeatsCheckpoint(t *testing.T) {
	cps := []geometry.Vector3D{{X: 1}, {Y: 1}, {Z: 1}, {X: -1}}
	p, err := NewPatrol(0, cps, 1, 10, newRand(7))
	require.NoError(t, err)

	o := behavior.Obstacle{}
	for i := 0; i < 200; i++ {
		prev := p.Current()
		p.Advance(&o, 0.01) // always within reach
		assert.NotEqual(t, prev, p.Current())
	}
}

func TestPatrol_SingleCheckpointStays(t *testing.T) {
	p, err := NewPatrol(0, []geometry.Vector3D{{Y: 1}}, 1, 0.5, &scriptedRand{})
	require.NoError(t, err)

	o := behavior.Obstacle{Position: geometry.Vector3D{Y: 0.9}}
	p.Advance(&o, 0.05)
	assert.Equal(t, geometry.Vector3D{Y: 1}, p.Current())
	assert.InDelta(t, 0.95, o.Position.Y, 1e-12)
}
