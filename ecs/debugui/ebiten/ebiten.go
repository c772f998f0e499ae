// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tickworld/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Game implements ebiten.Game by running one World frame per Ebiten tick
// between the ImGui frame markers.
type Game struct {
	World   *ecs.World
	Backend *ImguiBackend

	// BeforeUpdate, if set, runs before each World frame. Returning an error
	// (such as ebiten.Termination) stops the game.
	BeforeUpdate func() error

	// DrawWorld, if set, draws the scene before the ImGui overlay.
	DrawWorld func(screen *ebiten.Image)
}

// NewGame creates a Game for w. backend may be nil to run without ImGui.
func NewGame(w *ecs.World, backend *ImguiBackend) *Game {
	return &Game{World: w, Backend: backend}
}

func (g *Game) Update() error {
	if g.BeforeUpdate != nil {
		if err := g.BeforeUpdate(); err != nil {
			return err
		}
	}

	if g.Backend != nil {
		g.Backend.BeginFrame()
	}

	g.World.SetDelta(1.0 / float64(ebiten.TPS()))
	g.World.Update()

	if g.Backend != nil {
		g.Backend.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawWorld != nil {
		g.DrawWorld(screen)
	}
	if g.Backend != nil {
		g.Backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Backend != nil {
		g.Backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
