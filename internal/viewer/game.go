// Package viewer shows a running flock in a window: a 3D view projected by an
// orbiting camera plus a control panel for the population, the execution
// strategy and the simulation clock.
package viewer

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/camera"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/ui"
)

const (
	panelWidth  = 240
	orbitSpeed  = 0.03
	zoomPerTick = 1.02
	maxAgents   = 2000
)

var (
	backgroundColor = color.RGBA{R: 8, G: 20, B: 40, A: 255}
	volumeColor     = color.RGBA{R: 60, G: 200, B: 90, A: 160}
	attractionColor = color.RGBA{R: 240, G: 220, B: 60, A: 200}
	coreColor       = color.RGBA{R: 240, G: 80, B: 60, A: 200}
	obstacleColor   = color.RGBA{R: 255, G: 60, B: 60, A: 255}
)

type Game struct {
	ctx       context.Context
	runner    *simulation.Runner
	logger    *zap.Logger
	lastState *simulation.Snapshot
	camera    *camera.Camera
	dt        time.Duration
	paused    bool
	stepOnce  bool

	// UI Controls
	panel *ui.UIPanel

	// Widget references for easy access
	widgetPopulation    *ui.Slider
	widgetBatch         *ui.Checkbox
	widgetPause         *ui.Button
	widgetShowVolume    *ui.Checkbox
	widgetShowTargets   *ui.Checkbox
	widgetShowObstacles *ui.Checkbox

	width, height int

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

// NewGame wires a game to a started runner. cfg must be the configuration
// the runner was started with.
func NewGame(ctx context.Context, runner *simulation.Runner, cfg *simulation.Config, logger *zap.Logger, width, height int) *Game {
	g := &Game{
		ctx:       ctx,
		runner:    runner,
		logger:    logger,
		lastState: runner.Simulation().Snapshot(),
		dt:        time.Duration(cfg.DeltaTime * float64(time.Second)),
		width:     width,
		height:    height,
	}

	viewWidth := float64(width - panelWidth - 20)
	g.camera = camera.New(cfg.Volume.Center, cfg.Volume.Size, viewWidth, float64(height))

	// Initialize UI Panel with all configuration widgets
	panel := ui.NewUIPanel("Flock", float64(width-panelWidth-10), 10, panelWidth, float64(height)-20)

	panel.AddSection("Population")
	g.widgetPopulation = panel.AddIntSlider("Agents", 0, maxAgents, cfg.Population)
	panel.EndSection()

	panel.AddSection("Execution")
	g.widgetBatch = panel.AddCheckbox("Batch strategy", cfg.Strategy == simulation.StrategyBatch)
	g.widgetPause = panel.AddButton("Pause", g.togglePause)
	panel.AddButton("Step", func() { g.stepOnce = true })
	panel.EndSection()

	panel.AddSection("Visualization")
	g.widgetShowVolume = panel.AddCheckbox("Show volume", true)
	g.widgetShowTargets = panel.AddCheckbox("Show targets", true)
	g.widgetShowObstacles = panel.AddCheckbox("Show obstacles", true)
	panel.EndSection()

	g.panel = panel
	return g
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.widgetPause.Label = "Resume"
	} else {
		g.widgetPause.Label = "Pause"
	}
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	// 1. Update UI Panel and camera
	g.panel.Update()
	g.handleKeys()

	// 2. Forward control changes to the world
	if g.widgetPopulation.Changed() {
		g.logger.Debug("population requested", zap.Int("agents", g.widgetPopulation.Int()))
		if err := g.runner.Resize(g.ctx, g.widgetPopulation.Int()); err != nil {
			return err
		}
	}
	if g.widgetBatch.Changed() {
		strategy := simulation.StrategyParallel
		if g.widgetBatch.Value {
			strategy = simulation.StrategyBatch
		}
		g.logger.Debug("strategy requested", zap.String("strategy", strategy))
		if err := g.runner.SwitchStrategy(g.ctx, strategy); err != nil {
			return err
		}
	}

	// 3. Retrieve the latest state (non-blocking)
	g.drainSnapshots()

	// 4. Trigger Simulation Step
	if !g.paused || g.stepOnce {
		g.stepOnce = false
		if err := g.runner.Tick(g.ctx, g.dt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) handleKeys() {
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		g.camera.Orbit(-orbitSpeed, 0)
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		g.camera.Orbit(orbitSpeed, 0)
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		g.camera.Orbit(0, orbitSpeed)
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		g.camera.Orbit(0, -orbitSpeed)
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyEqual), ebiten.IsKeyPressed(ebiten.KeyKPAdd):
		g.camera.Zoom(1 / zoomPerTick)
	case ebiten.IsKeyPressed(ebiten.KeyMinus), ebiten.IsKeyPressed(ebiten.KeyKPSubtract):
		g.camera.Zoom(zoomPerTick)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
}

func (g *Game) drainSnapshots() {
	for {
		select {
		case snap := <-g.runner.Snapshots():
			g.lastState = snap
		default:
			// Use previous state if new one isn't ready
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)

	// 1. Environment
	if g.widgetShowVolume.Value {
		g.drawVolume(screen, g.lastState.Volume)
	}
	if g.widgetShowTargets.Value {
		for _, t := range g.lastState.Targets {
			g.drawSphere(screen, t.Position, math.Sqrt(t.AttractionRadiusSq), attractionColor)
			g.drawSphere(screen, t.Position, math.Sqrt(t.CoreRadiusSq), coreColor)
		}
	}
	if g.widgetShowObstacles.Value {
		for _, o := range g.lastState.Obstacles {
			g.drawSphere(screen, o.Position, math.Sqrt(o.RadiusSq), obstacleColor)
		}
	}

	// 2. Draw all agents from the last known snapshot
	for _, a := range g.lastState.Agents {
		g.drawAgent(screen, a)
	}

	// 3. Draw UI Panel
	g.panel.Draw(screen)

	// 4. Display performance stats
	lo, hi := g.lastState.SpeedRange()
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nTick: %d\nAgents: %d\nStrategy: %s\nSpeed: %.2f..%.2f\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Tick,
		len(g.lastState.Agents),
		g.lastState.Strategy,
		lo, hi,
		g.updateAvg,
		g.drawAvg)
	if g.paused {
		msg += "\n\nPAUSED"
	}
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)
	ebitenutil.DebugPrintAt(screen, "arrows: orbit  +/-: zoom  space: pause", 10, g.height-20)
}

func (g *Game) drawAgent(screen *ebiten.Image, a simulation.AgentView) {
	x, y, depth, ok := g.camera.Project(a.Position)
	if !ok {
		return
	}
	// One world unit of fish, whatever the distance
	scale := math.Max(g.camera.Scale(depth)*0.25/fishSize, 0.2)

	op := &ebiten.DrawImageOptions{}
	// Center the origin of the image
	w, h := fishSprite.Bounds().Dx(), fishSprite.Bounds().Dy()
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(scale, scale)
	// Rotate to match the on-screen heading of the orientation
	op.GeoM.Rotate(g.camera.Heading(a.Position, a.Orientation.Forward()))
	op.GeoM.Translate(x, y)
	// Fade with depth
	op.ColorScale.ScaleAlpha(float32(geometry.Clamp(2*g.camera.Distance/depth-0.8, 0.3, 1)))

	screen.DrawImage(fishSprite, op)
}

func (g *Game) drawSphere(screen *ebiten.Image, center geometry.Vector3D, radius float64, clr color.RGBA) {
	x, y, depth, ok := g.camera.Project(center)
	if !ok || radius <= 0 {
		return
	}
	vector.StrokeCircle(screen, float32(x), float32(y), float32(radius*g.camera.Scale(depth)), 1, clr, true)
}

func (g *Game) drawVolume(screen *ebiten.Image, vol behavior.Volume) {
	lo, hi := vol.Min(), vol.Max()
	corner := func(i int) geometry.Vector3D {
		c := lo
		if i&1 != 0 {
			c.X = hi.X
		}
		if i&2 != 0 {
			c.Y = hi.Y
		}
		if i&4 != 0 {
			c.Z = hi.Z
		}
		return c
	}
	// Corners differing by exactly one bit share an edge
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			j := i | bit
			if j == i {
				continue
			}
			x0, y0, _, ok0 := g.camera.Project(corner(i))
			x1, y1, _, ok1 := g.camera.Project(corner(j))
			if ok0 && ok1 {
				vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, volumeColor, true)
			}
		}
	}
}

func (g *Game) Layout(w, h int) (int, int) { return g.width, g.height }
