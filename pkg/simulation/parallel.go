package simulation

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// ParallelStrategy splits the agents into contiguous chunks, one goroutine per
// chunk. Every goroutine reads the shared previous state and writes only its
// own slots of a back buffer, which is copied over the agents once all chunks
// are done.
type ParallelStrategy struct {
	workers int
	next    []behavior.Agent
}

// NewParallelStrategy creates a strategy using the given number of workers,
// or GOMAXPROCS when workers <= 0.
func NewParallelStrategy(workers int) *ParallelStrategy {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &ParallelStrategy{workers: workers}
}

func (s *ParallelStrategy) Name() string { return StrategyParallel }

// Workers returns the number of goroutines used per tick.
func (s *ParallelStrategy) Workers() int { return s.workers }

func (s *ParallelStrategy) Advance(ctx context.Context, agents []behavior.Agent, env *behavior.Environment, r behavior.Rules, dt float64) error {
	n := len(agents)
	if n == 0 {
		return ctx.Err()
	}
	if cap(s.next) < n {
		s.next = make([]behavior.Agent, n)
	}
	next := s.next[:n]

	chunk := (n + s.workers - 1) / s.workers
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%cancelCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				next[i] = advanceAgent(i, agents, env, r, dt)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	copy(agents, next)
	return nil
}

// advanceAgent computes the state of agents[i] after one tick without
// touching the slice.
func advanceAgent(i int, agents []behavior.Agent, env *behavior.Environment, r behavior.Rules, dt float64) behavior.Agent {
	self := agents[i]
	sums := behavior.SumNeighborsAt(i, len(agents),
		func(j int) geometry.Vector3D { return agents[j].Position },
		func(j int) geometry.Vector3D { return agents[j].Velocity },
		r)

	self.Acceleration = behavior.Compose(self.Position, self.Velocity, sums, env, r)
	behavior.Integrate(&self, dt, r)
	return self
}
