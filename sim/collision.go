package sim

import (
	"time"

	"github.com/golang/geo/r2"
)

// CollisionSystem advances the ball through one frame, resolving every
// wall contact on the way with swept (continuous) detection
type CollisionSystem struct {
	config Config
	rng    RandSource
}

// Contact is the earliest wall hit found within a sub-step
type Contact struct {
	// Time is the fraction of the frame's displacement at which the
	// ball's edge reaches the wall line
	Time float64

	Wall Wall
}

// StepReport summarizes what happened during one frame
type StepReport struct {
	// Collisions is the number of walls hit this frame
	Collisions int

	// Iterations is the number of sub-steps taken
	Iterations int

	// Reset is set when the ball escaped and was put back at the center
	Reset bool
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(config Config, rng RandSource) *CollisionSystem {
	return &CollisionSystem{
		config: config,
		rng:    rng,
	}
}

// Step applies gravity and decay, records the trail, then moves the ball
// one frame, bouncing off the earliest wall hit until the frame's motion
// is used up or the sub-step cap is reached.
func (c *CollisionSystem) Step(s *Simulation, now time.Time) StepReport {
	ball := s.Ball
	var report StepReport

	ball.Velocity.Y += c.config.Gravity

	// No decay until DecayDelay has passed since the last bounce
	if now.Sub(s.LastCollision) > c.config.DecayDelay && ball.Speed() > ball.BaseSpeed {
		ball.Scale(c.config.DecayFactor)
	}

	ball.Trail.Push(ball.Position)

	remaining := 1.0
	for remaining > 0 && report.Iterations < c.config.MaxIterations {
		// Side count may have grown during an earlier sub-step
		walls := s.Arena.Walls()

		if contact, ok := c.EarliestContact(ball, walls, remaining); ok {
			c.bounce(s, contact, now)
			remaining -= contact.Time
			report.Collisions++
		} else {
			ball.Position = ball.Position.Add(ball.Velocity.Mul(remaining))
			remaining = 0
		}

		report.Iterations++
	}

	if c.escaped(s) {
		ball.Reset()
		s.Arena.Sides = c.config.InitialSides
		report.Reset = true
	}

	return report
}

// EarliestContact finds the wall the ball reaches first within the
// remaining fraction of its displacement. Walls the ball is moving away
// from or parallel to are skipped.
func (c *CollisionSystem) EarliestContact(ball *Ball, walls []Wall, remaining float64) (Contact, bool) {
	var earliest Contact
	found := false

	for _, wall := range walls {
		if wall.Degenerate {
			continue
		}

		distToWall := wall.SignedDistance(ball.Position)
		velDotNormal := ball.Velocity.Dot(wall.Normal)
		if velDotNormal >= 0 {
			continue
		}

		t := (ball.Radius - distToWall) / velDotNormal
		if t < 0 || t > remaining {
			continue
		}

		// The band past each end catches hits right at a corner
		hit := ball.Position.Add(ball.Velocity.Mul(t))
		proj := wall.Project(hit)
		if proj < c.config.CornerToleranceMin || proj > c.config.CornerToleranceMax {
			continue
		}

		if !found || t < earliest.Time {
			earliest = Contact{Time: t, Wall: wall}
			found = true
		}
	}

	return earliest, found
}

// bounce moves the ball onto the contact, reflects it and applies the
// per-bounce rules: chaos, one more side, speed boost and a small nudge
// off the wall line
func (c *CollisionSystem) bounce(s *Simulation, contact Contact, now time.Time) {
	ball := s.Ball

	ball.Position = ball.Position.Add(ball.Velocity.Mul(contact.Time))
	ball.Velocity = Reflect(ball.Velocity, contact.Wall.Normal)
	ball.Velocity = ball.Velocity.Add(c.chaos())

	s.Arena.Sides++
	ball.Scale(c.config.BounceBoost)
	s.LastCollision = now

	ball.Position = ball.Position.Add(ball.Velocity.Mul(c.config.Nudge))
}

// chaos returns a random kick with each component in [-ChaosMagnitude, ChaosMagnitude]
func (c *CollisionSystem) chaos() r2.Point {
	return r2.Point{
		X: (c.rng.Float64()*2 - 1) * c.config.ChaosMagnitude,
		Y: (c.rng.Float64()*2 - 1) * c.config.ChaosMagnitude,
	}
}

func (c *CollisionSystem) escaped(s *Simulation) bool {
	return s.Ball.Position.Norm() > c.config.FailsafeDistance()
}

// Reflect mirrors v about the line perpendicular to the unit normal n:
// v' = v - 2(v·n)n
func Reflect(v, n r2.Point) r2.Point {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}
