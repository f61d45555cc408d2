package sim

import (
	"image/color"
	"time"

	"github.com/golang/geo/r2"
)

// RandSource supplies uniform values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// Simulation owns the ball, the arena and the collision clock.
// It is not safe for concurrent use: ticks and snapshots must come from
// the same goroutine.
type Simulation struct {
	Ball  *Ball
	Arena *Arena

	// LastCollision is the time of the most recent wall hit.
	// The zero value means the ball has not hit anything yet.
	LastCollision time.Time

	config     Config
	rng        RandSource
	collisions *CollisionSystem
	frames     uint64
}

// Snapshot is a read-only copy of the state a renderer needs
type Snapshot struct {
	Vertices []r2.Point
	Position r2.Point
	Velocity r2.Point
	Radius   float64
	Color    color.NRGBA
	Trail    []r2.Point
	Sides    int
	Frame    uint64
}

// NewSimulation creates a simulation with a freshly launched ball
func NewSimulation(config Config, rng RandSource) *Simulation {
	s := &Simulation{
		Ball:       NewBall(config.BallRadius, config.BaseSpeed, config.TrailLength),
		Arena:      NewArena(config.InitialSides, config.ArenaRadius),
		config:     config,
		rng:        rng,
		collisions: NewCollisionSystem(config, rng),
	}
	s.Ball.Launch(rng)
	return s
}

// Tick advances the simulation by one frame
func (s *Simulation) Tick(now time.Time) StepReport {
	s.frames++
	return s.collisions.Step(s, now)
}

// SpeedUp scales the ball's velocity up
func (s *Simulation) SpeedUp() {
	s.Ball.Scale(s.config.SpeedUpFactor)
}

// SlowDown scales the ball's velocity down
func (s *Simulation) SlowDown() {
	s.Ball.Scale(s.config.SlowDownFactor)
}

// Reset puts the ball back at the center with a new launch velocity
// and restores the starting side count
func (s *Simulation) Reset() {
	s.Ball.Reset()
	s.Ball.Trail.Clear()
	s.Ball.Launch(s.rng)
	s.Arena.Sides = s.config.InitialSides
	s.LastCollision = time.Time{}
}

// Frames returns the number of ticks taken so far
func (s *Simulation) Frames() uint64 {
	return s.frames
}

// Config returns the configuration the simulation was built with
func (s *Simulation) Config() Config {
	return s.config
}

// Snapshot copies out the current state for drawing
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Vertices: s.Arena.Vertices(),
		Position: s.Ball.Position,
		Velocity: s.Ball.Velocity,
		Radius:   s.Ball.Radius,
		Color:    s.Ball.Color,
		Trail:    s.Ball.Trail.Points(),
		Sides:    s.Arena.Sides,
		Frame:    s.frames,
	}
}

// Speed returns the magnitude of the snapshot velocity
func (sn Snapshot) Speed() float64 {
	return sn.Velocity.Norm()
}
