package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"polybounce/sim"
)

const sparksPerBounce = 12

// Game hosts the simulation in an ebiten window
type Game struct {
	sim      *sim.Simulation
	renderer *Renderer
	camera   *Camera
	input    InputProvider
	buttons  []Button
	config   Config
	debug    DebugState
	sparks   *SparkSystem

	// Performance profiling, nil when disabled
	profiler *Profiler

	// FPS tracking
	fps              float64
	fpsUpdateCounter int
	fpsUpdateTimer   float64
	lastUpdateTime   time.Time
	gameStartTime    time.Time

	// Totals for the debug overlay
	bounces int
	resets  int

	stopped atomic.Bool
}

// NewGame creates a new game instance
func NewGame(config Config) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var profiler *Profiler
	if config.ProfilesDir != "" {
		p, err := NewProfiler(config.ProfilesDir)
		if err != nil {
			return nil, err
		}
		profiler = p
	}

	camera := NewCamera(float64(config.ScreenWidth), float64(config.ScreenHeight))
	now := time.Now()

	return &Game{
		sim:            sim.NewSimulation(config.Sim, rand.New(rand.NewSource(config.Seed))),
		renderer:       NewRenderer(camera),
		camera:         camera,
		input:          NewPlayerInput(),
		buttons:        DefaultButtons(float64(config.ScreenHeight)),
		sparks:         NewSparkSystem(rand.New(rand.NewSource(config.Seed + 1))),
		config:         config,
		profiler:       profiler,
		fps:            60.0,
		lastUpdateTime: now,
		gameStartTime:  now,
	}, nil
}

// Stop makes the next Update end the game loop
func (g *Game) Stop() {
	g.stopped.Store(true)
}

// Update applies pending commands and advances the simulation one frame
func (g *Game) Update() error {
	if g.stopped.Load() {
		return ebiten.Termination
	}

	now := time.Now()
	g.updateFPS(now)

	for _, cmd := range g.input.Poll(g.buttons) {
		g.apply(cmd)
	}
	if g.stopped.Load() {
		return ebiten.Termination
	}

	report := g.sim.Tick(now)
	g.bounces += report.Collisions
	g.sparks.Update(g.config.Sim.FrameInterval.Seconds())
	if report.Collisions > 0 {
		g.sparks.Burst(g.sim.Ball.Position, g.sim.Ball.Velocity, sparksPerBounce*report.Collisions)
	}
	if report.Reset {
		g.resets++
		log.Printf("ball escaped the arena, reset to center (resets=%d)", g.resets)
	}

	return nil
}

func (g *Game) apply(cmd Command) {
	switch cmd {
	case CommandSpeedUp:
		g.sim.SpeedUp()
	case CommandSlowDown:
		g.sim.SlowDown()
	case CommandReset:
		g.sim.Reset()
		g.sparks.Clear()
	case CommandToggleDebug:
		g.debug.ShowOverlay = !g.debug.ShowOverlay
	case CommandQuit:
		g.Stop()
	}
}

// updateFPS refreshes the frame rate every half second and triggers a
// profile capture when it drops
func (g *Game) updateFPS(now time.Time) {
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	g.fpsUpdateTimer += deltaTime
	g.fpsUpdateCounter++
	if g.fpsUpdateTimer < 0.5 {
		return
	}

	g.fps = float64(g.fpsUpdateCounter) / g.fpsUpdateTimer
	g.fpsUpdateCounter = 0
	g.fpsUpdateTimer = 0

	// Startup frames are always slow
	if g.profiler == nil || now.Sub(g.gameStartTime) < 3*time.Second || g.fps >= g.config.FPSDropThreshold {
		return
	}

	reason := fmt.Sprintf("fps%.0f-sides%d", g.fps, g.sim.Arena.Sides)
	err := g.profiler.CaptureProfile(reason, now)
	switch {
	case err == nil:
		log.Printf("fps drop detected (%.0f fps), capturing profile", g.fps)
	case errors.Is(err, ErrProfileCooldown), errors.Is(err, ErrProfileBusy):
		// a recent capture already covers this drop
	default:
		log.Printf("capture profile: %v", err)
	}
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	snapshot := g.sim.Snapshot()
	g.renderer.Render(screen, snapshot)
	g.sparks.Draw(screen, g.camera)
	g.renderer.RenderButtons(screen, g.buttons)
	if g.debug.ShowOverlay {
		g.drawDebug(screen, snapshot)
	}
}

// Layout follows the window size so the arena stays centered on resize
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if float64(outsideWidth) != g.camera.Width || float64(outsideHeight) != g.camera.Height {
		g.camera.Resize(float64(outsideWidth), float64(outsideHeight))
		g.buttons = DefaultButtons(float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
