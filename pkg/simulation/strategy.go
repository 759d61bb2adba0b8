package simulation

import (
	"context"
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
)

const (
	StrategyParallel = "parallel"
	StrategyBatch    = "batch"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// cancelCheckInterval is how many agents a worker processes between two
// looks at its context.
const cancelCheckInterval = 64

// Strategy advances every agent by one tick.
//
// Advance reads the agents as they were at the end of the previous tick and
// writes their new state back only once every agent has been computed. When it
// returns an error (a canceled context) agents is left untouched.
// A Strategy reuses internal buffers and is not safe for concurrent use.
type Strategy interface {
	Name() string
	Advance(ctx context.Context, agents []behavior.Agent, env *behavior.Environment, r behavior.Rules, dt float64) error
}

// NewStrategy returns the strategy registered under name.
// workers only applies to the parallel strategy; zero means GOMAXPROCS.
func NewStrategy(name string, workers int) (Strategy, error) {
	switch name {
	case StrategyParallel:
		return NewParallelStrategy(workers), nil
	case StrategyBatch:
		return NewBatchStrategy(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownStrategy, name, StrategyParallel, StrategyBatch)
	}
}

// StrategyNames lists the names accepted by NewStrategy.
func StrategyNames() []string {
	return []string{StrategyParallel, StrategyBatch}
}
