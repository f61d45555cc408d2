package sim

import (
	"fmt"
	"time"
)

// Config holds the arena geometry and every physics tunable
type Config struct {
	// ArenaRadius is the distance from the arena center to each vertex
	ArenaRadius float64

	// InitialSides is the side count the arena starts with and resets to
	InitialSides int

	// BallRadius is the collision radius of the ball
	BallRadius float64

	// BaseSpeed is the speed above which decay kicks in
	BaseSpeed float64

	// TrailLength is the number of past positions kept for drawing
	TrailLength int

	// Gravity is added to the vertical velocity once per frame
	Gravity float64

	// DecayFactor scales velocity each frame while decay is active
	DecayFactor float64

	// DecayDelay is how long after a collision decay stays suspended
	DecayDelay time.Duration

	// ChaosMagnitude bounds the random velocity kick applied per bounce
	ChaosMagnitude float64

	// BounceBoost scales velocity after every bounce
	BounceBoost float64

	// Nudge is the fraction of the new velocity applied after a bounce
	// to move the ball off the wall line
	Nudge float64

	// CornerToleranceMin and CornerToleranceMax bound the parametric
	// position along a wall at which a contact still counts
	CornerToleranceMin float64
	CornerToleranceMax float64

	// MaxIterations caps collision sub-steps per frame
	MaxIterations int

	// FailsafeMargin is the distance past the arena edge at which the
	// simulation gives up and resets the ball
	FailsafeMargin float64

	// SpeedUpFactor and SlowDownFactor scale velocity on user command
	SpeedUpFactor  float64
	SlowDownFactor float64

	// FrameInterval is the wall-clock length of one frame for drivers
	// that schedule their own ticks
	FrameInterval time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ArenaRadius:        300.0,
		InitialSides:       3,
		BallRadius:         10.0,
		BaseSpeed:          7.0,
		TrailLength:        20,
		Gravity:            0.15,
		DecayFactor:        0.99,
		DecayDelay:         time.Second,
		ChaosMagnitude:     2.0,
		BounceBoost:        1.05,
		Nudge:              0.01,
		CornerToleranceMin: -0.1,
		CornerToleranceMax: 1.1,
		MaxIterations:      5,
		FailsafeMargin:     100.0,
		SpeedUpFactor:      1.2,
		SlowDownFactor:     0.8,
		FrameInterval:      time.Second / 60,
	}
}

// Validate reports the first field that holds an unusable value
func (c Config) Validate() error {
	switch {
	case c.ArenaRadius <= 0:
		return fmt.Errorf("arena radius must be positive, got %g", c.ArenaRadius)
	case c.InitialSides < 3:
		return fmt.Errorf("initial sides must be at least 3, got %d", c.InitialSides)
	case c.BallRadius <= 0:
		return fmt.Errorf("ball radius must be positive, got %g", c.BallRadius)
	case c.BallRadius >= c.ArenaRadius:
		return fmt.Errorf("ball radius %g does not fit in arena radius %g", c.BallRadius, c.ArenaRadius)
	case c.TrailLength < 0:
		return fmt.Errorf("trail length must not be negative, got %d", c.TrailLength)
	case c.DecayFactor <= 0 || c.DecayFactor > 1:
		return fmt.Errorf("decay factor must be in (0, 1], got %g", c.DecayFactor)
	case c.ChaosMagnitude < 0:
		return fmt.Errorf("chaos magnitude must not be negative, got %g", c.ChaosMagnitude)
	case c.CornerToleranceMin > c.CornerToleranceMax:
		return fmt.Errorf("corner tolerance [%g, %g] is empty", c.CornerToleranceMin, c.CornerToleranceMax)
	case c.MaxIterations < 1:
		return fmt.Errorf("max iterations must be at least 1, got %d", c.MaxIterations)
	case c.FrameInterval <= 0:
		return fmt.Errorf("frame interval must be positive, got %v", c.FrameInterval)
	}
	return nil
}

// FailsafeDistance is the distance from the center past which the ball
// is considered to have escaped
func (c Config) FailsafeDistance() float64 {
	return c.ArenaRadius + c.BallRadius + c.FailsafeMargin
}
