package simulation

import (
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// WorldActor is the single writer of a Simulation inside an actor system.
// Its mailbox serializes everything the outside world asks for:
//
//   - *durationpb.Duration advances one tick of that length
//   - *wrapperspb.Int64Value resizes the population
//   - *wrapperspb.StringValue switches the execution strategy
//   - *emptypb.Empty asks for the tick count, answered with *wrapperspb.UInt64Value
//
// After every tick the world pushes a snapshot to the UI channel, dropping it
// when the UI has not consumed the previous ones yet.
type WorldActor struct {
	sim *Simulation
	// Communication with UI
	snapshotCh chan<- *Snapshot
	// --- Benchmark Stats ---
	tickCount   int
	stepTime    time.Duration
	dropped     int
	lastLogTime time.Time
}

var _ actor.Actor = (*WorldActor)(nil)

// NewWorldActor creates the world logic unit
func NewWorldActor(sim *Simulation, snapshotCh chan<- *Snapshot) *WorldActor {
	return &WorldActor{
		sim:         sim,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is preparing a flock of %d...", w.sim.Len())
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("World started (%s strategy)", w.sim.Strategy())

	// The main simulation step (driven by the game loop)
	case *durationpb.Duration:
		w.logBenchmarks(ctx)

		start := time.Now()
		if err := w.sim.Step(ctx.Context(), msg.AsDuration().Seconds()); err != nil {
			ctx.Logger().Warnf("tick aborted: %v", err)
			return
		}
		w.stepTime += time.Since(start)
		w.tickCount++

		w.pushSnapshot()

	case *wrapperspb.Int64Value:
		if err := w.sim.Resize(int(msg.GetValue())); err != nil {
			ctx.Logger().Warnf("resize refused: %v", err)
		}

	case *wrapperspb.StringValue:
		if err := w.sim.SetStrategy(msg.GetValue()); err != nil {
			ctx.Logger().Warnf("strategy switch refused: %v", err)
		}

	case *emptypb.Empty:
		ctx.Response(wrapperspb.UInt64(w.sim.Tick()))

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) < time.Second {
		return
	}
	var avg time.Duration
	if w.tickCount > 0 {
		avg = w.stepTime / time.Duration(w.tickCount)
	}
	ctx.Logger().Infof("📊 TICK RATE: %d/sec (avg step %s, dropped frames %d) | Agents: %d",
		w.tickCount, avg, w.dropped, w.sim.Len())
	w.tickCount = 0
	w.stepTime = 0
	w.dropped = 0
	w.lastLogTime = time.Now()
}

func (w *WorldActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- w.sim.Snapshot():
	default:
		// UI busy, skip frame
		w.dropped++
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("World is shutdown...")
	return nil
}
