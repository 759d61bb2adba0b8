package simulation

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// Resize grows or shrinks the population to n agents. New agents appear at a
// random point of the unit sphere around the volume center, heading in a
// random direction at the initial speed. Agents are removed from the tail.
func (s *Simulation) Resize(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resize(n)
}

func (s *Simulation) resize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegativePopulation, n)
	}
	before := len(s.agents)
	if before == n {
		return nil
	}

	for len(s.agents) < n {
		s.agents = append(s.agents, s.spawn())
	}
	clear(s.agents[n:])
	s.agents = s.agents[:n]

	s.logger.Info("population resized", zap.Int("from", before), zap.Int("to", n))
	return nil
}

func (s *Simulation) spawn() behavior.Agent {
	pos := s.env.Volume.Center.Add(randomInUnitSphere(s.rng))
	return behavior.NewAgent(pos, randomUnitVector(s.rng), s.rules.InitialSpeed)
}

// randomInUnitSphere draws a point uniformly inside the unit ball.
func randomInUnitSphere(rng Rand) geometry.Vector3D {
	for {
		p := geometry.Vector3D{
			X: 2*rng.Float64() - 1,
			Y: 2*rng.Float64() - 1,
			Z: 2*rng.Float64() - 1,
		}
		if p.LenSqr() <= 1 {
			return p
		}
	}
}

// randomUnitVector draws a direction uniformly on the unit sphere.
func randomUnitVector(rng Rand) geometry.Vector3D {
	theta := 2 * math.Pi * rng.Float64()
	phi := math.Acos(1 - 2*rng.Float64())
	return geometry.NewVectorSpherical(1, theta, phi)
}
