package simulation

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	snapshotBuffer = 10
	askTimeout     = 5 * time.Second
)

// Runner hosts a Simulation behind a WorldActor. Every call is a message to
// the world, so callers on any goroutine (a game loop, a terminal loop)
// never race with a tick.
type Runner struct {
	system    actor.ActorSystem
	world     *actor.PID
	sim       *Simulation
	snapshots chan *Snapshot
	logger    *zap.Logger
}

// StartRunner builds the simulation, starts an actor system and spawns the world.
// The actor system only logs when logger has debug enabled.
func StartRunner(ctx context.Context, cfg *Config, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sim, err := New(cfg, WithLogger(logger))
	if err != nil {
		return nil, err
	}

	actorLogger := golog.DiscardLogger
	if logger.Core().Enabled(zapcore.DebugLevel) {
		actorLogger = golog.DefaultLogger
	}
	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(actorLogger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	// Buffer to avoid blocking the world
	snapshots := make(chan *Snapshot, snapshotBuffer)
	world, err := system.Spawn(ctx, "world", NewWorldActor(sim, snapshots))
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	logger.Info("runner started", zap.String("run", sim.ID().String()))
	return &Runner{
		system:    system,
		world:     world,
		sim:       sim,
		snapshots: snapshots,
		logger:    logger,
	}, nil
}

// Tick asks the world to advance by dt. It does not wait for the tick.
func (r *Runner) Tick(ctx context.Context, dt time.Duration) error {
	return actor.Tell(ctx, r.world, durationpb.New(dt))
}

// Resize asks the world to change the population before its next tick.
func (r *Runner) Resize(ctx context.Context, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegativePopulation, n)
	}
	return actor.Tell(ctx, r.world, wrapperspb.Int64(int64(n)))
}

// SwitchStrategy asks the world to use another strategy from its next tick on.
func (r *Runner) SwitchStrategy(ctx context.Context, name string) error {
	if !slices.Contains(StrategyNames(), name) {
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return actor.Tell(ctx, r.world, wrapperspb.String(name))
}

// TickCount waits for every message sent before it and returns the number of
// completed ticks.
func (r *Runner) TickCount(ctx context.Context) (uint64, error) {
	reply, err := actor.Ask(ctx, r.world, &emptypb.Empty{}, askTimeout)
	if err != nil {
		return 0, err
	}
	count, ok := reply.(*wrapperspb.UInt64Value)
	if !ok {
		return 0, fmt.Errorf("unexpected reply %T", reply)
	}
	return count.GetValue(), nil
}

// Snapshots delivers the state after each tick. Frames are dropped when the
// reader falls behind.
func (r *Runner) Snapshots() <-chan *Snapshot {
	return r.snapshots
}

// Simulation exposes the hosted simulation for read-only queries.
func (r *Runner) Simulation() *Simulation {
	return r.sim
}

// Stop shuts the actor system down.
func (r *Runner) Stop(ctx context.Context) error {
	r.logger.Info("runner stopping", zap.Uint64("ticks", r.sim.Tick()))
	return r.system.Stop(ctx)
}
