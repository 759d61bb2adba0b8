package headless

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

func smallConfig() *simulation.Config {
	cfg := simulation.DefaultConfig()
	cfg.Population = 60
	cfg.Seed = 3
	cfg.Volume.Size = 4
	return cfg
}

func TestRun(t *testing.T) {
	res, err := Run(context.Background(), smallConfig(), 20, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, uint64(20), res.Ticks)
	assert.Equal(t, 60, res.Agents)
	assert.Len(t, res.checksums, 20)
	assert.Equal(t, res.checksums[19], res.Checksum)
	assert.GreaterOrEqual(t, res.MinSpeed, 2.0-1e-9)
	assert.LessOrEqual(t, res.MaxSpeed, 5.0+1e-9)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, smallConfig(), 5, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Strategy = "gpu"
	_, err := Run(context.Background(), cfg, 5, zap.NewNop())
	assert.ErrorIs(t, err, simulation.ErrUnknownStrategy)
}

func TestRun_NegativeTicks(t *testing.T) {
	_, err := Run(context.Background(), smallConfig(), -1, zap.NewNop())
	assert.ErrorIs(t, err, ErrNegativeTicks)

	_, err = Compare(context.Background(), smallConfig(), -1, zap.NewNop())
	assert.ErrorIs(t, err, ErrNegativeTicks)
}

func TestRun_ZeroTicks(t *testing.T) {
	res, err := Run(context.Background(), smallConfig(), 0, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, res.Ticks)
	assert.Empty(t, res.checksums)
}

func TestCompare(t *testing.T) {
	cfg := smallConfig()
	results, err := Compare(context.Background(), cfg, 30, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, simulation.StrategyParallel, results[0].Strategy)
	assert.Equal(t, simulation.StrategyBatch, results[1].Strategy)
	assert.Equal(t, results[0].Checksum, results[1].Checksum)
	assert.Equal(t, results[0].Centroid, results[1].Centroid)
	assert.Equal(t, simulation.StrategyParallel, cfg.Strategy, "caller config untouched")
}

func TestResult_TickRate(t *testing.T) {
	assert.Zero(t, Result{Ticks: 10}.TickRate())
}
