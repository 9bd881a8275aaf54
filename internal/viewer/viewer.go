// Package viewer shows a running chaos game in a resizable window.
package viewer

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lukaszgryglicki/chaosgame/internal/chaosgame"
)

// Run opens a window on world and blocks until it is closed, Esc is pressed
// or maxSteps (0 = unlimited) is reached. The world keeps running; the
// caller stops it.
func Run(world *chaosgame.World, title string, maxSteps uint64, hud bool) error {
	w, h := world.Size()
	g := &game{world: world, maxSteps: maxSteps, hud: hud, width: w, height: h}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	world         *chaosgame.World
	maxSteps      uint64
	hud           bool
	width, height int
	frame         *ebiten.Image
	buf           []byte
	err           error // from Resize, reported by the next Update
}

func (g *game) Update() error {
	if g.err != nil {
		return g.err
	}
	if err := g.world.Update(); err != nil {
		return err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		chaosgame.DebugLog("viewer: escape")
		return ebiten.Termination
	}
	if g.maxSteps > 0 && g.world.Steps() >= g.maxSteps {
		chaosgame.DebugLog("viewer: reached %d steps", g.maxSteps)
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.world.Size()
	if g.frame == nil || g.frame.Bounds().Dx() != w || g.frame.Bounds().Dy() != h {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(w, h)
		g.buf = make([]byte, w*h*4)
	}
	g.world.Draw(g.buf)
	g.frame.WritePixels(g.buf)
	screen.DrawImage(g.frame, nil)
	if g.hud {
		img := g.world.Image()
		ebitenutil.DebugPrint(screen, chaosgame.Summary(img.Steps, img.MSE))
	}
}

// Layout follows the window size and resizes the world to match.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		if err := g.world.Resize(w, h); err != nil && g.err == nil {
			g.err = err
		}
	}
	return w, h
}
