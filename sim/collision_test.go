package sim

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand returns the same value on every draw
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// quietConfig turns off gravity and chaos so trajectories are exact
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Gravity = 0
	cfg.ChaosMagnitude = 0
	return cfg
}

// newTestSimulation places the ball by hand and marks a collision at now
// so decay stays off
func newTestSimulation(cfg Config, pos, vel r2.Point, now time.Time) *Simulation {
	s := NewSimulation(cfg, fixedRand(0.5))
	s.Ball.Position = pos
	s.Ball.Velocity = vel
	s.LastCollision = now
	return s
}

var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestStepFallingBallHitsBottomWall(t *testing.T) {
	t.Parallel()

	s := newTestSimulation(quietConfig(), r2.Point{}, r2.Point{Y: 10}, testEpoch)

	// The bottom wall of the triangle is 150 below the center, so the
	// ball's edge reaches it right at the boundary of frames 14 and 15;
	// rounding in the vertex positions decides which one
	hitFrame := 0
	for frame := 1; frame <= 20; frame++ {
		report := s.Tick(testEpoch)
		if report.Collisions > 0 {
			hitFrame = frame
			assert.Equal(t, 1, report.Collisions)
			break
		}
		assert.Equal(t, 3, s.Arena.Sides, "no bounce yet at frame %d", frame)
	}

	require.Contains(t, []int{14, 15}, hitFrame)
	assert.Equal(t, 4, s.Arena.Sides)
	assert.InDelta(t, 0, s.Ball.Velocity.X, 1e-9)
	assert.InDelta(t, -10.5, s.Ball.Velocity.Y, 1e-9)
	assert.Less(t, s.Ball.Position.Y, 140.0)
	assert.Greater(t, s.Ball.Position.Y, 125.0)
}

func TestStepContactWithinOneFrame(t *testing.T) {
	t.Parallel()

	s := newTestSimulation(quietConfig(), r2.Point{Y: 135}, r2.Point{Y: 10}, testEpoch)
	report := s.Tick(testEpoch)

	assert.Equal(t, 1, report.Collisions)
	assert.Equal(t, 2, report.Iterations)
	assert.False(t, report.Reset)
	assert.Equal(t, 4, s.Arena.Sides)
	assert.Equal(t, testEpoch, s.LastCollision)

	// Hit at t=0.5 (y=140), nudge, then the rest of the frame upward
	wantY := 140 - 10.5*0.01 - 10.5*0.5
	assert.InDelta(t, wantY, s.Ball.Position.Y, 1e-9)
	assert.InDelta(t, 0, s.Ball.Position.X, 1e-9)
}

func TestStepWithoutContactMovesFullVelocity(t *testing.T) {
	t.Parallel()

	s := newTestSimulation(quietConfig(), r2.Point{}, r2.Point{X: 5, Y: 5}, testEpoch)
	report := s.Tick(testEpoch)

	assert.Equal(t, 0, report.Collisions)
	assert.Equal(t, 1, report.Iterations)
	assert.Equal(t, r2.Point{X: 5, Y: 5}, s.Ball.Position)
	assert.Equal(t, r2.Point{X: 5, Y: 5}, s.Ball.Velocity)
	assert.Equal(t, 3, s.Arena.Sides)
}

func TestStepAppliesGravity(t *testing.T) {
	t.Parallel()

	cfg := quietConfig()
	cfg.Gravity = 0.15
	s := newTestSimulation(cfg, r2.Point{}, r2.Point{}, testEpoch)
	s.Tick(testEpoch)

	assert.InDelta(t, 0.15, s.Ball.Velocity.Y, 1e-12)
	assert.InDelta(t, 0.15, s.Ball.Position.Y, 1e-12)
}

func TestStepDecay(t *testing.T) {
	t.Parallel()

	t.Run("decays fast ball long after a bounce", func(t *testing.T) {
		t.Parallel()
		s := newTestSimulation(quietConfig(), r2.Point{}, r2.Point{X: 10}, time.Time{})
		s.Tick(testEpoch)
		assert.InDelta(t, 9.9, s.Ball.Velocity.X, 1e-12)
	})

	t.Run("no decay within a second of a bounce", func(t *testing.T) {
		t.Parallel()
		s := newTestSimulation(quietConfig(), r2.Point{}, r2.Point{X: 10}, testEpoch)
		s.Tick(testEpoch.Add(500 * time.Millisecond))
		assert.Equal(t, 10.0, s.Ball.Velocity.X)
	})

	t.Run("no decay at exactly the delay", func(t *testing.T) {
		t.Parallel()
		s := newTestSimulation(quietConfig(), r2.Point{}, r2.Point{X: 10}, testEpoch)
		s.Tick(testEpoch.Add(time.Second))
		assert.Equal(t, 10.0, s.Ball.Velocity.X)
	})

	t.Run("slow ball never speeds up", func(t *testing.T) {
		t.Parallel()
		s := newTestSimulation(quietConfig(), r2.Point{}, r2.Point{X: 5}, time.Time{})
		s.Tick(testEpoch)
		assert.Equal(t, 5.0, s.Ball.Velocity.X)
	})
}

func TestStepRecordsTrailBeforeMoving(t *testing.T) {
	t.Parallel()

	s := newTestSimulation(quietConfig(), r2.Point{X: 3, Y: 4}, r2.Point{X: 1}, testEpoch)
	s.Tick(testEpoch)
	s.Tick(testEpoch)

	trail := s.Ball.Trail.Points()
	require.Len(t, trail, 2)
	assert.Equal(t, r2.Point{X: 3, Y: 4}, trail[0])
	assert.Equal(t, r2.Point{X: 4, Y: 4}, trail[1])
}

func TestStepFailsafe(t *testing.T) {
	t.Parallel()

	s := newTestSimulation(quietConfig(), r2.Point{X: 1000}, r2.Point{X: 1, Y: 2}, testEpoch)
	s.Arena.Sides = 9

	report := s.Tick(testEpoch)

	assert.True(t, report.Reset)
	assert.Equal(t, r2.Point{}, s.Ball.Position)
	assert.Equal(t, r2.Point{}, s.Ball.Velocity)
	assert.Equal(t, 3, s.Arena.Sides)
}

func TestStepChaosIsBounded(t *testing.T) {
	t.Parallel()

	for _, draw := range []float64{0, 0.25, 0.999999} {
		cfg := quietConfig()
		cfg.ChaosMagnitude = 2
		s := NewSimulation(cfg, fixedRand(draw))
		s.Ball.Position = r2.Point{Y: 135}
		s.Ball.Velocity = r2.Point{Y: 10}
		s.LastCollision = testEpoch

		contact, ok := s.collisions.EarliestContact(s.Ball, s.Arena.Walls(), 1)
		require.True(t, ok)
		s.collisions.bounce(s, contact, testEpoch)

		kick := (draw*2 - 1) * 2
		assert.InDelta(t, kick*1.05, s.Ball.Velocity.X, 1e-9, "draw=%v", draw)
		assert.InDelta(t, (-10+kick)*1.05, s.Ball.Velocity.Y, 1e-9, "draw=%v", draw)
		assert.LessOrEqual(t, math.Abs(kick), 2.0)
	}
}

func TestReflect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		v    r2.Point
		n    r2.Point
		want r2.Point
	}{
		{"head on", r2.Point{Y: 10}, r2.Point{Y: -1}, r2.Point{Y: -10}},
		{"glancing", r2.Point{X: 3, Y: 4}, r2.Point{Y: -1}, r2.Point{X: 3, Y: -4}},
		{"vertical wall", r2.Point{X: -7, Y: 2}, r2.Point{X: 1}, r2.Point{X: 7, Y: 2}},
		{"diagonal wall", r2.Point{X: 5}, r2.Point{X: -1, Y: -1}.Normalize(), r2.Point{Y: -5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Reflect(tc.v, tc.n)
			assert.InDelta(t, tc.want.X, got.X, 1e-9)
			assert.InDelta(t, tc.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tc.v.Norm(), got.Norm(), 1e-9, "reflection must keep speed")
		})
	}
}

func TestReflectAgainstArenaWalls(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for sides := 3; sides <= 16; sides++ {
		for _, w := range NewArena(sides, 300).Walls() {
			v := r2.Point{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10}
			got := Reflect(v, w.Normal)

			assert.InDelta(t, v.Norm(), got.Norm(), 1e-9)
			assert.InDelta(t, -v.Dot(w.Normal), got.Dot(w.Normal), 1e-9)
			assert.InDelta(t, v.Dot(w.Vector()), got.Dot(w.Vector()), 1e-6)
		}
	}
}

// boxWalls is a 200x200 square around the origin: top, right, bottom, left
func boxWalls() []Wall {
	return Walls([]r2.Point{
		{X: -100, Y: -100},
		{X: 100, Y: -100},
		{X: 100, Y: 100},
		{X: -100, Y: 100},
	}, r2.Point{})
}

func TestEarliestContact(t *testing.T) {
	t.Parallel()

	c := NewCollisionSystem(DefaultConfig(), fixedRand(0.5))
	newBall := func(pos, vel r2.Point) *Ball {
		b := NewBall(10, 7, 20)
		b.Position = pos
		b.Velocity = vel
		return b
	}

	t.Run("picks the nearest wall in time", func(t *testing.T) {
		t.Parallel()
		ball := newBall(r2.Point{X: 50}, r2.Point{X: 100, Y: 200})

		contact, ok := c.EarliestContact(ball, boxWalls(), 1)
		require.True(t, ok)
		assert.InDelta(t, 0.4, contact.Time, 1e-12)
		assert.InDelta(t, -1, contact.Wall.Normal.X, 1e-12)
	})

	t.Run("second wall wins once the first is out of reach", func(t *testing.T) {
		t.Parallel()
		ball := newBall(r2.Point{X: -50}, r2.Point{X: 100, Y: 200})

		contact, ok := c.EarliestContact(ball, boxWalls(), 1)
		require.True(t, ok)
		assert.InDelta(t, 0.45, contact.Time, 1e-12)
		assert.InDelta(t, -1, contact.Wall.Normal.Y, 1e-12)
	})

	t.Run("contact beyond remaining time is ignored", func(t *testing.T) {
		t.Parallel()
		ball := newBall(r2.Point{X: 50}, r2.Point{X: 100})

		_, ok := c.EarliestContact(ball, boxWalls(), 0.3)
		assert.False(t, ok)
	})

	t.Run("receding walls are skipped", func(t *testing.T) {
		t.Parallel()
		ball := newBall(r2.Point{X: -50}, r2.Point{X: -100})

		contact, ok := c.EarliestContact(ball, boxWalls(), 1)
		require.True(t, ok)
		assert.InDelta(t, 0.4, contact.Time, 1e-12)
		assert.InDelta(t, 1, contact.Wall.Normal.X, 1e-12, "only the left wall is ahead")
	})

	t.Run("ball already past the wall line is not pulled back", func(t *testing.T) {
		t.Parallel()
		ball := newBall(r2.Point{X: 95}, r2.Point{X: 100})

		_, ok := c.EarliestContact(ball, boxWalls(), 1)
		assert.False(t, ok)
	})

	t.Run("stationary ball never hits", func(t *testing.T) {
		t.Parallel()
		ball := newBall(r2.Point{}, r2.Point{})

		_, ok := c.EarliestContact(ball, boxWalls(), 1)
		assert.False(t, ok)
	})

	t.Run("corner band accepts slight overshoot", func(t *testing.T) {
		t.Parallel()
		ball := newBall(r2.Point{X: 50, Y: 110}, r2.Point{X: 100})

		contact, ok := c.EarliestContact(ball, boxWalls(), 1)
		require.True(t, ok)
		assert.InDelta(t, 0.4, contact.Time, 1e-12)
	})

	t.Run("corner band rejects large overshoot", func(t *testing.T) {
		t.Parallel()
		ball := newBall(r2.Point{X: 50, Y: 150}, r2.Point{X: 100})

		_, ok := c.EarliestContact(ball, boxWalls(), 1)
		assert.False(t, ok)
	})

	t.Run("degenerate walls are skipped", func(t *testing.T) {
		t.Parallel()
		ball := newBall(r2.Point{X: 50}, r2.Point{X: 100})
		walls := []Wall{{P1: r2.Point{X: 100}, P2: r2.Point{X: 100}, Degenerate: true}}

		_, ok := c.EarliestContact(ball, walls, 1)
		assert.False(t, ok)
	})
}

func TestLongRunInvariants(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	s := NewSimulation(cfg, rand.New(rand.NewSource(42)))
	limit := cfg.FailsafeDistance()

	now := testEpoch
	prevSides := s.Arena.Sides
	for frame := 0; frame < 2000; frame++ {
		now = now.Add(cfg.FrameInterval)
		report := s.Tick(now)

		require.LessOrEqual(t, report.Iterations, cfg.MaxIterations)
		require.LessOrEqual(t, s.Ball.Position.Norm(), limit, "frame %d", frame)
		require.LessOrEqual(t, s.Ball.Trail.Len(), cfg.TrailLength)
		require.GreaterOrEqual(t, s.Arena.Sides, 3)

		if report.Reset {
			require.Equal(t, 3, s.Arena.Sides)
		} else {
			require.Equal(t, prevSides+report.Collisions, s.Arena.Sides, "frame %d", frame)
		}
		prevSides = s.Arena.Sides
	}
}
