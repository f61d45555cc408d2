package game

import (
	"image/color"
	"math"

	"github.com/golang/geo/r2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"polybounce/sim"
)

// Spark is a short-lived particle thrown off by a bounce
type Spark struct {
	pos      r2.Point // arena position
	vel      r2.Point // units per second
	age      float64  // age in seconds
	lifetime float64  // total lifetime in seconds
	color    color.NRGBA
	size     float64
}

// IsAlive returns true if the spark has not burned out
func (s *Spark) IsAlive() bool {
	return s.age < s.lifetime
}

// alpha fades linearly from baseAlpha to zero over the spark's life
func (s *Spark) alpha() float64 {
	a := 1.0 - s.age/s.lifetime
	return sparkBaseAlpha * math.Max(0, math.Min(1, a))
}

// SparkSystem emits bursts of sparks where the ball hits a wall
type SparkSystem struct {
	sparks       []Spark
	maxSparks    int
	rng          sim.RandSource
	velocityMin  float64
	velocityMax  float64
	spreadAngle  float64 // half-angle around the burst direction
	lifetimeMin  float64
	lifetimeMax  float64
	sizeMin      float64
	sizeMax      float64
	colorBase    color.NRGBA
	colorVariety color.NRGBA
}

const sparkBaseAlpha = 0.8

// NewSparkSystem creates the bounce spark emitter
func NewSparkSystem(rng sim.RandSource) *SparkSystem {
	return &SparkSystem{
		maxSparks:    200,
		rng:          rng,
		velocityMin:  60.0,
		velocityMax:  180.0,
		spreadAngle:  math.Pi / 3,
		lifetimeMin:  0.15,
		lifetimeMax:  0.45,
		sizeMin:      1.0,
		sizeMax:      2.5,
		colorBase:    color.NRGBA{R: 255, G: 200, B: 60, A: 255},
		colorVariety: color.NRGBA{R: 0, G: 55, B: 60, A: 0},
	}
}

// Burst emits count sparks at pos, fanned around dir. A zero dir sprays
// in every direction.
func (ss *SparkSystem) Burst(pos, dir r2.Point, count int) {
	heading := math.Atan2(dir.Y, dir.X)
	spread := ss.spreadAngle
	if dir.Norm() == 0 {
		spread = math.Pi
	}

	for i := 0; i < count && len(ss.sparks) < ss.maxSparks; i++ {
		angle := heading + (ss.rng.Float64()-0.5)*spread*2
		speed := ss.between(ss.velocityMin, ss.velocityMax)

		ss.sparks = append(ss.sparks, Spark{
			pos:      pos,
			vel:      r2.Point{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(speed),
			lifetime: ss.between(ss.lifetimeMin, ss.lifetimeMax),
			color:    ss.vary(),
			size:     ss.between(ss.sizeMin, ss.sizeMax),
		})
	}
}

// Update ages and moves every spark, dropping the burnt-out ones
func (ss *SparkSystem) Update(dt float64) {
	alive := ss.sparks[:0]
	for _, s := range ss.sparks {
		s.age += dt
		s.pos = s.pos.Add(s.vel.Mul(dt))
		if s.IsAlive() {
			alive = append(alive, s)
		}
	}
	ss.sparks = alive
}

// Len returns the number of live sparks
func (ss *SparkSystem) Len() int {
	return len(ss.sparks)
}

// Clear removes every spark
func (ss *SparkSystem) Clear() {
	ss.sparks = ss.sparks[:0]
}

// Draw renders all sparks through the camera
func (ss *SparkSystem) Draw(screen *ebiten.Image, camera *Camera) {
	for i := range ss.sparks {
		s := &ss.sparks[i]
		sx, sy := camera.WorldToScreen(s.pos)
		clr := s.color
		clr.A = uint8(float64(s.color.A) * s.alpha())
		vector.DrawFilledCircle(screen, sx, sy, float32(s.size*camera.Zoom), clr, true)
	}
}

func (ss *SparkSystem) between(lo, hi float64) float64 {
	return lo + ss.rng.Float64()*(hi-lo)
}

func (ss *SparkSystem) vary() color.NRGBA {
	channel := func(base, variety uint8) uint8 {
		v := float64(base) + (ss.rng.Float64()*2-1)*float64(variety)
		return uint8(math.Max(0, math.Min(255, v)))
	}
	return color.NRGBA{
		R: channel(ss.colorBase.R, ss.colorVariety.R),
		G: channel(ss.colorBase.G, ss.colorVariety.G),
		B: channel(ss.colorBase.B, ss.colorVariety.B),
		A: ss.colorBase.A,
	}
}
