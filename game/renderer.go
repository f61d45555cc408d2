package game

import (
	"image/color"

	"github.com/golang/geo/r2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"polybounce/sim"
)

// Camera maps arena-local coordinates onto the screen
type Camera struct {
	X, Y   float64 // Camera position in arena coordinates
	Zoom   float64 // Zoom level
	Width  float64 // Viewport width
	Height float64 // Viewport height
}

// NewCamera creates a camera looking at the arena center
func NewCamera(width, height float64) *Camera {
	return &Camera{
		X:      0,
		Y:      0,
		Zoom:   1.0,
		Width:  width,
		Height: height,
	}
}

// Resize updates the viewport size, keeping the arena centered
func (c *Camera) Resize(width, height float64) {
	c.Width = width
	c.Height = height
}

// WorldToScreen converts arena coordinates to screen coordinates
func (c *Camera) WorldToScreen(p r2.Point) (float32, float32) {
	sx := (p.X-c.X)*c.Zoom + c.Width/2
	sy := (p.Y-c.Y)*c.Zoom + c.Height/2
	return float32(sx), float32(sy)
}

// ScreenToWorld converts screen coordinates to arena coordinates
func (c *Camera) ScreenToWorld(sx, sy float64) r2.Point {
	return r2.Point{
		X: (sx-c.Width/2)/c.Zoom + c.X,
		Y: (sy-c.Height/2)/c.Zoom + c.Y,
	}
}

// Color constants
var (
	colorBackground = color.NRGBA{R: 10, G: 10, B: 20, A: 255}
	colorWall       = color.NRGBA{R: 0, G: 204, B: 255, A: 255}
	colorWallGlow   = color.NRGBA{R: 0, G: 204, B: 255, A: 50}
	colorVertex     = color.NRGBA{R: 255, G: 255, B: 0, A: 255}
	colorBallGlow   = color.NRGBA{R: 255, G: 0, B: 0, A: 70}
	colorButton     = color.NRGBA{R: 30, G: 40, B: 70, A: 230}
	colorButtonEdge = color.NRGBA{R: 0, G: 204, B: 255, A: 255}
	colorButtonText = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	colorNormal     = color.NRGBA{R: 120, G: 255, B: 120, A: 255}
)

// Drawing constants
const (
	wallWidth      = 5.0
	wallGlowWidth  = 14.0
	vertexRadius   = 5.0
	ballGlowRadius = 6.0
	trailMaxAlpha  = 0.8
	normalLength   = 20.0
)

// Renderer draws simulation snapshots
type Renderer struct {
	camera *Camera
}

// NewRenderer creates a new renderer
func NewRenderer(camera *Camera) *Renderer {
	return &Renderer{
		camera: camera,
	}
}

// Render draws the arena, the trail and the ball
func (r *Renderer) Render(screen *ebiten.Image, snapshot sim.Snapshot) {
	screen.Fill(colorBackground)
	r.drawPolygon(screen, snapshot.Vertices)
	r.drawVertices(screen, snapshot.Vertices)
	r.drawTrail(screen, snapshot.Trail, snapshot.Radius)
	r.drawBall(screen, snapshot)
}

func (r *Renderer) drawPolygon(screen *ebiten.Image, vertices []r2.Point) {
	// Wide translucent pass first for the glow, then the wall itself
	for _, pass := range []struct {
		width float32
		clr   color.Color
	}{
		{wallGlowWidth, colorWallGlow},
		{wallWidth, colorWall},
	} {
		for i := range vertices {
			x0, y0 := r.camera.WorldToScreen(vertices[i])
			x1, y1 := r.camera.WorldToScreen(vertices[(i+1)%len(vertices)])
			vector.StrokeLine(screen, x0, y0, x1, y1, pass.width, pass.clr, true)
		}
	}
}

func (r *Renderer) drawVertices(screen *ebiten.Image, vertices []r2.Point) {
	for _, v := range vertices {
		sx, sy := r.camera.WorldToScreen(v)
		vector.DrawFilledCircle(screen, sx, sy, vertexRadius, colorVertex, true)
	}
}

// drawTrail draws the trail as segments fading in from the oldest point
func (r *Renderer) drawTrail(screen *ebiten.Image, trail []r2.Point, radius float64) {
	if len(trail) < 2 {
		return
	}

	width := float32(radius * r.camera.Zoom)
	for i := 1; i < len(trail); i++ {
		alpha := trailMaxAlpha * float64(i) / float64(len(trail)-1)
		clr := color.NRGBA{R: 255, G: 0, B: 0, A: uint8(alpha * 255)}

		x0, y0 := r.camera.WorldToScreen(trail[i-1])
		x1, y1 := r.camera.WorldToScreen(trail[i])
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
		// Round joins
		vector.DrawFilledCircle(screen, x1, y1, width/2, clr, true)
	}
}

func (r *Renderer) drawBall(screen *ebiten.Image, snapshot sim.Snapshot) {
	sx, sy := r.camera.WorldToScreen(snapshot.Position)
	radius := float32(snapshot.Radius * r.camera.Zoom)
	if radius < 1 {
		radius = 1
	}

	vector.DrawFilledCircle(screen, sx, sy, radius+ballGlowRadius, colorBallGlow, true)
	vector.DrawFilledCircle(screen, sx, sy, radius, snapshot.Color, true)
}

// RenderNormals draws each wall's inward normal from its midpoint
func (r *Renderer) RenderNormals(screen *ebiten.Image, walls []sim.Wall) {
	for _, w := range walls {
		mid := w.P1.Add(w.P2).Mul(0.5)
		tip := mid.Add(w.Normal.Mul(normalLength))
		x0, y0 := r.camera.WorldToScreen(mid)
		x1, y1 := r.camera.WorldToScreen(tip)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colorNormal, true)
	}
}

// RenderButtons draws the on-screen command buttons
func (r *Renderer) RenderButtons(screen *ebiten.Image, buttons []Button) {
	for _, b := range buttons {
		lo, size := b.Rect.Lo(), b.Rect.Size()
		x, y := float32(lo.X), float32(lo.Y)
		w, h := float32(size.X), float32(size.Y)

		vector.DrawFilledRect(screen, x, y, w, h, colorButton, true)
		vector.StrokeRect(screen, x, y, w, h, 1, colorButtonEdge, true)

		textX := int(lo.X + (size.X-float64(len(b.Label)*7))/2)
		textY := int(lo.Y + size.Y/2 + 4)
		text.Draw(screen, b.Label, basicfont.Face7x13, textX, textY, colorButtonText)
	}
}
