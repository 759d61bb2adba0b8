package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRunner(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Population = 20

	r, err := StartRunner(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, r.Stop(ctx)) })

	const dt = 20 * time.Millisecond
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Tick(ctx, dt))
	}
	count, err := r.TickCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), count)

	select {
	case snap := <-r.Snapshots():
		assert.Len(t, snap.Agents, 20)
		assert.Equal(t, uint64(1), snap.Tick)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	require.NoError(t, r.Resize(ctx, 7))
	require.NoError(t, r.SwitchStrategy(ctx, StrategyBatch))
	require.NoError(t, r.Tick(ctx, dt))
	count, err = r.TickCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), count)
	assert.Equal(t, 7, r.Simulation().Len())
	assert.Equal(t, StrategyBatch, r.Simulation().Strategy())

	assert.ErrorIs(t, r.Resize(ctx, -2), ErrNegativePopulation)
	assert.ErrorIs(t, r.SwitchStrategy(ctx, "gpu"), ErrUnknownStrategy)
}

func TestRunner_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinSpeed = 100
	_, err := StartRunner(context.Background(), cfg, nil)
	assert.Error(t, err)
}
