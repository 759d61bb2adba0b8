// Package headless runs flocks without a display, for benchmarks and for
// checking that both execution strategies agree bit for bit.
package headless

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

var (
	// ErrDiverged is returned by Compare when the strategies disagree.
	ErrDiverged = errors.New("strategies diverged")
	// ErrNegativeTicks is returned for a negative tick count.
	ErrNegativeTicks = errors.New("negative tick count")
)

// progressInterval is how many ticks pass between progress logs.
const progressInterval = 100

// Result summarizes one run.
type Result struct {
	Strategy string
	Agents   int
	Ticks    uint64
	Elapsed  time.Duration
	Checksum uint64
	Centroid geometry.Vector3D
	MinSpeed float64
	MaxSpeed float64

	// checksums[i] is the checksum after tick i+1
	checksums []uint64
}

// TickRate is the number of ticks per second of wall time.
func (r Result) TickRate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ticks) / r.Elapsed.Seconds()
}

// Run advances a simulation built from cfg by ticks steps of cfg.DeltaTime.
func Run(ctx context.Context, cfg *simulation.Config, ticks int, logger *zap.Logger) (Result, error) {
	if ticks < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrNegativeTicks, ticks)
	}
	sim, err := simulation.New(cfg, simulation.WithLogger(logger))
	if err != nil {
		return Result{}, err
	}
	logger = logger.With(zap.String("strategy", sim.Strategy()))

	res := Result{Strategy: sim.Strategy(), Agents: sim.Len(), checksums: make([]uint64, 0, ticks)}
	start := time.Now()
	for i := 1; i <= ticks; i++ {
		if err := sim.Step(ctx, cfg.DeltaTime); err != nil {
			return res, fmt.Errorf("tick %d: %w", i, err)
		}
		res.checksums = append(res.checksums, sim.Snapshot().Checksum())
		if i%progressInterval == 0 {
			logger.Info("progress", zap.Int("tick", i), zap.Duration("elapsed", time.Since(start)))
		}
	}
	res.Elapsed = time.Since(start)

	snap := sim.Snapshot()
	res.Ticks = snap.Tick
	res.Checksum = snap.Checksum()
	res.Centroid = snap.Centroid()
	res.MinSpeed, res.MaxSpeed = snap.SpeedRange()

	logger.Info("run finished",
		zap.Uint64("ticks", res.Ticks),
		zap.Int("agents", res.Agents),
		zap.Duration("elapsed", res.Elapsed),
		zap.Float64("ticksPerSecond", res.TickRate()),
		zap.String("checksum", fmt.Sprintf("%016x", res.Checksum)),
	)
	return res, nil
}

// Compare runs the same configuration once per strategy, concurrently, and
// checks the agents match after every tick. On divergence the error wraps
// ErrDiverged and names the first tick that differs.
func Compare(ctx context.Context, cfg *simulation.Config, ticks int, logger *zap.Logger) ([]Result, error) {
	if ticks < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeTicks, ticks)
	}
	names := simulation.StrategyNames()
	results := make([]Result, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		c := *cfg
		c.Strategy = name
		g.Go(func() error {
			res, err := Run(gctx, &c, ticks, logger)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	ref := results[0]
	for _, res := range results[1:] {
		for t := range ref.checksums {
			if ref.checksums[t] != res.checksums[t] {
				return results, fmt.Errorf("%w: %s and %s differ after tick %d", ErrDiverged, ref.Strategy, res.Strategy, t+1)
			}
		}
	}
	logger.Info("strategies agree", zap.Strings("strategies", names), zap.Int("ticks", ticks))
	return results, nil
}
