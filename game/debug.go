package game

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"polybounce/sim"
)

// DebugState holds debug flags that persist across simulation resets
type DebugState struct {
	ShowOverlay bool // Show wall normals and the stats readout
}

// debugText formats the overlay readout
func debugText(snapshot sim.Snapshot, fps float64, resets, bounces int) string {
	return fmt.Sprintf(
		"FPS: %.0f\nSides: %d\nSpeed: %.2f\nPos: (%.1f, %.1f)\nBounces: %d\nResets: %d\nFrame: %d",
		fps,
		snapshot.Sides,
		snapshot.Speed(),
		snapshot.Position.X, snapshot.Position.Y,
		bounces,
		resets,
		snapshot.Frame,
	)
}

func (g *Game) drawDebug(screen *ebiten.Image, snapshot sim.Snapshot) {
	g.renderer.RenderNormals(screen, sim.Walls(snapshot.Vertices, r2.Point{}))
	ebitenutil.DebugPrint(screen, debugText(snapshot, g.fps, g.resets, g.bounces))
}
