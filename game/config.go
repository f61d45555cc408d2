package game

import (
	"fmt"

	"polybounce/sim"
)

// Config holds window and host configuration
type Config struct {
	// ScreenWidth is the initial window width in pixels
	ScreenWidth int

	// ScreenHeight is the initial window height in pixels
	ScreenHeight int

	// Seed for the simulation's random source
	Seed int64

	// ProfilesDir is where frame-drop profiles are written.
	// Empty disables profiling.
	ProfilesDir string

	// FPSDropThreshold is the frame rate below which a profile is captured
	FPSDropThreshold float64

	// Sim is the physics configuration
	Sim sim.Config
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:      1024,
		ScreenHeight:     768,
		Seed:             1,
		ProfilesDir:      "",
		FPSDropThreshold: 45.0,
		Sim:              sim.DefaultConfig(),
	}
}

// Validate checks the host settings and the physics configuration
func (c Config) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.FPSDropThreshold < 0 {
		return fmt.Errorf("fps drop threshold must not be negative, got %g", c.FPSDropThreshold)
	}
	if err := c.Sim.Validate(); err != nil {
		return fmt.Errorf("sim config: %w", err)
	}
	return nil
}
