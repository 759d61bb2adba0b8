package simulation

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

var ErrInvalidPatrol = errors.New("invalid patrol")

// Rand is the subset of *rand.Rand the simulation draws from.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Patrol moves one obstacle from checkpoint to checkpoint. Once the obstacle
// is within ReachedDistance of its checkpoint, another one is drawn at random,
// never the same one twice in a row.
type Patrol struct {
	Obstacle        int // index in Environment.Obstacles
	Checkpoints     []geometry.Vector3D
	Speed           float64
	ReachedDistance float64

	current int
	rng     Rand
}

func NewPatrol(obstacle int, checkpoints []geometry.Vector3D, speed, reachedDistance float64, rng Rand) (*Patrol, error) {
	if obstacle < 0 {
		return nil, fmt.Errorf("%w: obstacle index %d", ErrInvalidPatrol, obstacle)
	}
	if len(checkpoints) == 0 {
		return nil, fmt.Errorf("%w: no checkpoints", ErrInvalidPatrol)
	}
	if speed < 0 || reachedDistance < 0 {
		return nil, fmt.Errorf("%w: negative speed %v or reached distance %v", ErrInvalidPatrol, speed, reachedDistance)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidPatrol)
	}
	return &Patrol{
		Obstacle:        obstacle,
		Checkpoints:     append([]geometry.Vector3D(nil), checkpoints...),
		Speed:           speed,
		ReachedDistance: reachedDistance,
		rng:             rng,
	}, nil
}

// Current returns the checkpoint the obstacle is heading to.
func (p *Patrol) Current() geometry.Vector3D {
	return p.Checkpoints[p.current]
}

// Advance moves o toward the current checkpoint by Speed*dt.
func (p *Patrol) Advance(o *behavior.Obstacle, dt float64) {
	dir := p.Current().Sub(o.Position).Normalize()
	o.Position = o.Position.Add(dir.Mul(p.Speed * dt))

	if p.Current().DistanceSquaredTo(o.Position) < p.ReachedDistance*p.ReachedDistance {
		p.nextCheckpoint()
	}
}

func (p *Patrol) nextCheckpoint() {
	if len(p.Checkpoints) < 2 {
		return
	}
	// Uniform over the other checkpoints.
	next := p.rng.IntN(len(p.Checkpoints) - 1)
	if next >= p.current {
		next++
	}
	p.current = next
}
