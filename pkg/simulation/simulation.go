// Package simulation drives a flock tick after tick: it owns the agents, moves
// the environment between ticks, and hands read-only snapshots to whoever
// displays them. The per-tick work is delegated to a Strategy.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

var (
	ErrNegativePopulation = errors.New("negative population")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrInvalidDeltaTime   = errors.New("invalid delta time")
)

type Option func(*Simulation)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRand replaces the source used to spawn agents and pick patrol checkpoints.
func WithRand(rng Rand) Option {
	return func(s *Simulation) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// Simulation owns a population of agents and the environment they react to.
// All methods are safe for concurrent use; they serialize on one mutex, so a
// population change or an environment move can never happen during a tick.
type Simulation struct {
	mu sync.Mutex

	id     uuid.UUID
	logger *zap.Logger
	rng    Rand

	rules    behavior.Rules
	env      behavior.Environment
	agents   []behavior.Agent
	patrols  []*Patrol
	strategy Strategy
	workers  int
	tick     uint64
}

// New builds a simulation from cfg (DefaultConfig when nil) and spawns its
// initial population.
func New(cfg *Config, opts ...Option) (*Simulation, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		id:      uuid.New(),
		logger:  zap.NewNop(),
		rules:   cfg.Parameters().Rules(),
		workers: cfg.Workers,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = newRand(cfg.Seed)
	}
	s.logger = s.logger.With(zap.String("run", s.id.String()))

	var err error
	if s.env, err = cfg.Environment(); err != nil {
		return nil, err
	}
	if s.patrols, err = cfg.Patrols(s.rng); err != nil {
		return nil, err
	}
	if s.strategy, err = NewStrategy(cfg.Strategy, cfg.Workers); err != nil {
		return nil, err
	}
	if err := s.resize(cfg.Population); err != nil {
		return nil, err
	}

	s.logger.Info("simulation created",
		zap.Int("agents", len(s.agents)),
		zap.String("strategy", s.strategy.Name()),
		zap.Int("targets", len(s.env.Targets)),
		zap.Int("obstacles", len(s.env.Obstacles)),
		zap.Int("patrols", len(s.patrols)),
	)
	return s, nil
}

// ID identifies this run in logs.
func (s *Simulation) ID() uuid.UUID { return s.id }

// Step advances every agent by dt seconds, then moves the patrolling obstacles.
// When the strategy fails (canceled ctx) nothing changes and the tick counter
// stays put.
func (s *Simulation) Step(ctx context.Context, dt float64) error {
	if !(dt >= 0) || math.IsInf(dt, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidDeltaTime, dt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	if err := s.strategy.Advance(ctx, s.agents, &s.env, s.rules, dt); err != nil {
		return err
	}
	s.tick++

	for _, p := range s.patrols {
		p.Advance(&s.env.Obstacles[p.Obstacle], dt)
	}

	s.logger.Debug("tick",
		zap.Uint64("tick", s.tick),
		zap.Int("agents", len(s.agents)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// SetStrategy swaps the execution strategy. The agents are kept as they are.
func (s *Simulation) SetStrategy(name string) error {
	strategy, err := NewStrategy(name, s.workers)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.strategy.Name() == name {
		return nil
	}
	s.logger.Info("strategy switched", zap.String("from", s.strategy.Name()), zap.String("to", name))
	s.strategy = strategy
	return nil
}

// Strategy returns the name of the strategy in use.
func (s *Simulation) Strategy() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strategy.Name()
}

// MoveTarget relocates target i.
func (s *Simulation) MoveTarget(i int, pos geometry.Vector3D) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.env.Targets) {
		return fmt.Errorf("%w: target %d of %d", ErrIndexOutOfRange, i, len(s.env.Targets))
	}
	s.env.Targets[i].Position = pos
	return nil
}

// MoveObstacle relocates obstacle i. A patrol on that obstacle keeps heading
// to its current checkpoint from the new position.
func (s *Simulation) MoveObstacle(i int, pos geometry.Vector3D) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.env.Obstacles) {
		return fmt.Errorf("%w: obstacle %d of %d", ErrIndexOutOfRange, i, len(s.env.Obstacles))
	}
	s.env.Obstacles[i].Position = pos
	return nil
}

// Agents returns a copy of the current agents.
func (s *Simulation) Agents() []behavior.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]behavior.Agent(nil), s.agents...)
}

// Len returns the current population.
func (s *Simulation) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.agents)
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Environment returns a copy of the current environment.
func (s *Simulation) Environment() behavior.Environment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env.Clone()
}

// Rules returns the physics constants of the run.
func (s *Simulation) Rules() behavior.Rules {
	return s.rules
}
