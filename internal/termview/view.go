// Package termview draws a running flock in a terminal with tcell.
package termview

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/camera"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

const (
	frameInterval  = 16 * time.Millisecond // ~60 FPS
	populationStep = 10
	orbitStep      = 0.1
	zoomStep       = 1.1
	// Terminal cells are about twice as tall as wide
	cellAspect = 0.5
)

// Controller is what the view needs from a running simulation.
type Controller interface {
	Tick(ctx context.Context, dt time.Duration) error
	Resize(ctx context.Context, n int) error
	SwitchStrategy(ctx context.Context, name string) error
	Snapshots() <-chan *simulation.Snapshot
}

// headingGlyphs maps eight screen directions to arrows, starting east and
// turning clockwise (screen y grows down).
var headingGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

var (
	statusStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightGray)
	targetStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	obstacleStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

type View struct {
	screen tcell.Screen
	ctl    Controller
	logger *zap.Logger
	camera *camera.Camera

	state      *simulation.Snapshot
	dt         time.Duration
	paused     bool
	population int
	strategy   string
}

// New creates a view drawing on an initialized screen. initial is shown
// until the first tick completes.
func New(screen tcell.Screen, ctl Controller, cfg *simulation.Config, initial *simulation.Snapshot, logger *zap.Logger) *View {
	w, h := screen.Size()
	cam := camera.New(cfg.Volume.Center, cfg.Volume.Size, float64(w), float64(h-1))
	cam.AspectY = cellAspect
	return &View{
		screen:     screen,
		ctl:        ctl,
		logger:     logger,
		camera:     cam,
		state:      initial,
		dt:         time.Duration(cfg.DeltaTime * float64(time.Second)),
		population: cfg.Population,
		strategy:   cfg.Strategy,
	}
}

// Run ticks and draws until the user quits or ctx is done.
func (v *View) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				// screen finalized
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			quit, err := v.HandleEvent(ctx, ev)
			if err != nil || quit {
				return err
			}

		case <-ticker.C:
			v.drain()
			if !v.paused {
				if err := v.ctl.Tick(ctx, v.dt); err != nil {
					return err
				}
			}
			v.Draw()
		}
	}
}

func (v *View) drain() {
	for {
		select {
		case snap := <-v.ctl.Snapshots():
			v.state = snap
		default:
			return
		}
	}
}

// HandleEvent applies one input event and reports whether the user asked to quit.
func (v *View) HandleEvent(ctx context.Context, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyLeft:
			v.camera.Orbit(-orbitStep, 0)
		case tcell.KeyRight:
			v.camera.Orbit(orbitStep, 0)
		case tcell.KeyUp:
			v.camera.Orbit(0, orbitStep)
		case tcell.KeyDown:
			v.camera.Orbit(0, -orbitStep)
		case tcell.KeyRune:
			return v.handleRune(ctx, ev.Rune())
		}

	case *tcell.EventResize:
		w, h := v.screen.Size()
		v.camera.Width, v.camera.Height = float64(w), float64(h-1)
		v.screen.Sync()
	}
	return false, nil
}

func (v *View) handleRune(ctx context.Context, r rune) (bool, error) {
	switch r {
	case 'q':
		return true, nil
	case ' ':
		v.paused = !v.paused
	case '+', '=':
		v.camera.Zoom(1 / zoomStep)
	case '-':
		v.camera.Zoom(zoomStep)
	case ']':
		return false, v.resize(ctx, v.population+populationStep)
	case '[':
		return false, v.resize(ctx, max(0, v.population-populationStep))
	case 'b':
		next := simulation.StrategyBatch
		if v.strategy == simulation.StrategyBatch {
			next = simulation.StrategyParallel
		}
		if err := v.ctl.SwitchStrategy(ctx, next); err != nil {
			return false, err
		}
		v.logger.Debug("strategy requested", zap.String("strategy", next))
		v.strategy = next
	}
	return false, nil
}

func (v *View) resize(ctx context.Context, n int) error {
	if err := v.ctl.Resize(ctx, n); err != nil {
		return err
	}
	v.logger.Debug("population requested", zap.Int("agents", n))
	v.population = n
	return nil
}

// Draw renders the last snapshot and the status line.
func (v *View) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	for _, t := range v.state.Targets {
		v.plot(t.Position, '+', targetStyle, w, h)
	}
	for _, o := range v.state.Obstacles {
		v.plot(o.Position, '●', obstacleStyle, w, h)
	}
	for _, a := range v.state.Agents {
		x, y, depth, ok := v.camera.Project(a.Position)
		if !ok {
			continue
		}
		glyph := headingGlyph(v.camera.Heading(a.Position, a.Orientation.Forward()))
		v.set(int(x), int(y)+1, glyph, depthStyle(depth/v.camera.Distance), w, h)
	}

	status := fmt.Sprintf(" tick %d | agents %d | %s", v.state.Tick, len(v.state.Agents), v.state.Strategy)
	if v.paused {
		status += " | PAUSED"
	}
	status += " | arrows orbit, +/- zoom, [ ] agents, b strategy, space pause, q quit"
	line := []rune(status)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		v.screen.SetContent(x, 0, r, nil, statusStyle)
	}

	v.screen.Show()
}

func (v *View) plot(p geometry.Vector3D, r rune, style tcell.Style, w, h int) {
	x, y, _, ok := v.camera.Project(p)
	if ok {
		v.set(int(x), int(y)+1, r, style, w, h)
	}
}

// set writes one cell below the status line, ignoring what falls off screen.
func (v *View) set(x, y int, r rune, style tcell.Style, w, h int) {
	if x < 0 || x >= w || y < 1 || y >= h {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

// headingGlyph picks the arrow closest to a screen angle.
func headingGlyph(angle float64) rune {
	sector := int(math.Round(angle/(math.Pi/4))) % 8
	if sector < 0 {
		sector += 8
	}
	return headingGlyphs[sector]
}

// depthStyle shades agents from white (near) to dark gray (far). relDepth is
// the depth divided by the camera distance.
func depthStyle(relDepth float64) tcell.Style {
	shade := int32(255 - 150*math.Max(0, math.Min(1, relDepth-0.5)))
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(shade, shade, shade))
}
