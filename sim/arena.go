package sim

import (
	"math"

	"github.com/golang/geo/r2"
)

// Arena is the regular polygon the ball bounces around in.
// The polygon is centered on the origin of arena-local coordinates.
type Arena struct {
	// Sides is the current side count, never below 3
	Sides int

	// Radius is the distance from the center to each vertex
	Radius float64
}

// Wall is one edge of the arena with its unit normal pointing at the center
type Wall struct {
	P1, P2 r2.Point
	Normal r2.Point

	// Degenerate is set for zero-length edges, which can never be hit
	Degenerate bool
}

// NewArena creates an arena with the given side count and radius
func NewArena(sides int, radius float64) *Arena {
	if sides < 3 {
		sides = 3
	}
	return &Arena{
		Sides:  sides,
		Radius: radius,
	}
}

// Vertices returns the polygon's vertices around the origin
func (a *Arena) Vertices() []r2.Point {
	return Vertices(a.Sides, a.Radius, r2.Point{})
}

// Walls returns the polygon's edges around the origin
func (a *Arena) Walls() []Wall {
	return Walls(a.Vertices(), r2.Point{})
}

// Vertices places sides points on a circle of the given radius around center.
// Vertex 0 sits straight above the center (y grows downward) and the rest
// follow at equal angular steps.
func Vertices(sides int, radius float64, center r2.Point) []r2.Point {
	vertices := make([]r2.Point, sides)
	angleStep := (math.Pi * 2) / float64(sides)
	rotationOffset := -math.Pi / 2

	for i := 0; i < sides; i++ {
		angle := float64(i)*angleStep + rotationOffset
		vertices[i] = r2.Point{
			X: center.X + math.Cos(angle)*radius,
			Y: center.Y + math.Sin(angle)*radius,
		}
	}
	return vertices
}

// Walls builds the closed edge loop over vertices. Each normal is the
// perpendicular of the edge, flipped if needed so it faces center.
func Walls(vertices []r2.Point, center r2.Point) []Wall {
	walls := make([]Wall, len(vertices))
	for i, p1 := range vertices {
		p2 := vertices[(i+1)%len(vertices)]
		walls[i] = newWall(p1, p2, center)
	}
	return walls
}

func newWall(p1, p2, center r2.Point) Wall {
	edge := p2.Sub(p1)
	if edge.Norm() == 0 {
		return Wall{P1: p1, P2: p2, Degenerate: true}
	}

	normal := edge.Ortho().Normalize()
	if normal.Dot(center.Sub(p1)) < 0 {
		normal = normal.Mul(-1)
	}

	return Wall{P1: p1, P2: p2, Normal: normal}
}

// Vector returns the edge from P1 to P2
func (w Wall) Vector() r2.Point {
	return w.P2.Sub(w.P1)
}

// SignedDistance returns how far p lies from the wall's line on the inner side
func (w Wall) SignedDistance(p r2.Point) float64 {
	return p.Sub(w.P1).Dot(w.Normal)
}

// Project returns the parametric position of p along the edge,
// 0 at P1 and 1 at P2
func (w Wall) Project(p r2.Point) float64 {
	edge := w.Vector()
	return p.Sub(w.P1).Dot(edge) / edge.Dot(edge)
}
