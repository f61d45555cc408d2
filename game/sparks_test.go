package game

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparkBurst(t *testing.T) {
	t.Parallel()

	ss := NewSparkSystem(rand.New(rand.NewSource(3)))
	ss.Burst(r2.Point{X: 10, Y: 20}, r2.Point{Y: -1}, 12)
	require.Equal(t, 12, ss.Len())

	for _, s := range ss.sparks {
		assert.Equal(t, r2.Point{X: 10, Y: 20}, s.pos)
		assert.Negative(t, s.vel.Y, "sparks fan around the burst direction")
		assert.GreaterOrEqual(t, s.vel.Norm(), ss.velocityMin-1e-9)
		assert.LessOrEqual(t, s.vel.Norm(), ss.velocityMax+1e-9)
		assert.True(t, s.IsAlive())
	}
}

func TestSparkBurstIsCapped(t *testing.T) {
	t.Parallel()

	ss := NewSparkSystem(rand.New(rand.NewSource(3)))
	for i := 0; i < 50; i++ {
		ss.Burst(r2.Point{}, r2.Point{X: 1}, 10)
	}
	assert.Equal(t, ss.maxSparks, ss.Len())
}

func TestSparkUpdate(t *testing.T) {
	t.Parallel()

	ss := NewSparkSystem(rand.New(rand.NewSource(3)))
	ss.Burst(r2.Point{}, r2.Point{}, 20)

	ss.Update(0.1)
	require.Equal(t, 20, ss.Len(), "no spark lives shorter than the minimum lifetime")
	for _, s := range ss.sparks {
		assert.Less(t, s.alpha(), sparkBaseAlpha)
		assert.InDelta(t, s.vel.Norm()*0.1, s.pos.Norm(), 1e-9)
	}

	ss.Update(ss.lifetimeMax)
	assert.Zero(t, ss.Len())
}

func TestSparkClear(t *testing.T) {
	t.Parallel()

	ss := NewSparkSystem(rand.New(rand.NewSource(3)))
	ss.Burst(r2.Point{}, r2.Point{X: 1}, 5)
	ss.Clear()
	assert.Zero(t, ss.Len())
}
