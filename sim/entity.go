package sim

import (
	"image/color"

	"github.com/golang/geo/r2"
)

// Ball is the single moving body in the arena
type Ball struct {
	// Position in arena-local coordinates (origin = arena center)
	Position r2.Point

	// Velocity in units per frame
	Velocity r2.Point

	// Collision radius
	Radius float64

	// Speed above which decay applies
	BaseSpeed float64

	// Recent positions, for drawing only
	Trail *Trail

	// Fill color used by the renderer
	Color color.NRGBA
}

// NewBall creates a ball at the origin with no velocity
func NewBall(radius, baseSpeed float64, trailLength int) *Ball {
	return &Ball{
		Radius:    radius,
		BaseSpeed: baseSpeed,
		Trail:     NewTrail(trailLength),
		Color:     color.NRGBA{R: 255, G: 0, B: 0, A: 255},
	}
}

// Speed returns the magnitude of the velocity
func (b *Ball) Speed() float64 {
	return b.Velocity.Norm()
}

// Scale multiplies the velocity by factor
func (b *Ball) Scale(factor float64) {
	b.Velocity = b.Velocity.Mul(factor)
}

// Launch gives the ball a random starting velocity. Each component is
// drawn from [-5, 5); components slower than 2 are forced to 5.
func (b *Ball) Launch(rng RandSource) {
	vx := (rng.Float64() - 0.5) * 10
	vy := (rng.Float64() - 0.5) * 10

	if vx > -minLaunchComponent && vx < minLaunchComponent {
		vx = fallbackLaunchComponent
	}
	if vy > -minLaunchComponent && vy < minLaunchComponent {
		vy = fallbackLaunchComponent
	}
	b.Velocity = r2.Point{X: vx, Y: vy}
}

// Reset parks the ball at the origin with zero velocity
func (b *Ball) Reset() {
	b.Position = r2.Point{}
	b.Velocity = r2.Point{}
}

const (
	minLaunchComponent      = 2.0
	fallbackLaunchComponent = 5.0
)
