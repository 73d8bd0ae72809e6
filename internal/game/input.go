package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/jigsaw/internal/jigsaw"
)

// handleInput processes the pointer and the option keys (edge-triggered).
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	justPressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	g.handlePointer()

	// Zoom: mouse wheel, =/- or keypad +/-, 0 resets.
	_, wy := ebiten.Wheel()
	switch {
	case wy > 0:
		g.zoom(g.settings.ZoomIn)
	case wy < 0:
		g.zoom(g.settings.ZoomOut)
	}
	zoomIn := justPressed(ebiten.KeyEqual)
	zoomIn = justPressed(ebiten.KeyKPAdd) || zoomIn
	if zoomIn {
		g.zoom(g.settings.ZoomIn)
	}
	zoomOut := justPressed(ebiten.KeyMinus)
	zoomOut = justPressed(ebiten.KeyKPSubtract) || zoomOut
	if zoomOut {
		g.zoom(g.settings.ZoomOut)
	}
	if justPressed(ebiten.Key0) {
		g.resetZoom()
	}

	// P: faint preview inside the board.
	if justPressed(ebiten.KeyP) {
		g.settings.Preview = !g.settings.Preview
	}
	// I: reference image.
	if justPressed(ebiten.KeyI) {
		g.settings.FullImage = !g.settings.FullImage
	}
	// T: stopwatch.
	if justPressed(ebiten.KeyT) {
		g.settings.Timer = !g.settings.Timer
	}
	if justPressed(ebiten.KeyF) {
		g.settings.Fullscreen = !g.settings.Fullscreen
		ebiten.SetFullscreen(g.settings.Fullscreen)
	}
	// H: toggle HUD key legend.
	if justPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	// C: copy the session summary.
	if justPressed(ebiten.KeyC) {
		if err := copySummary(g.summary()); err != nil {
			g.logger.Warn("clipboard unavailable", "err", err)
			g.setStatus("clipboard unavailable")
		} else {
			g.setStatus("summary copied")
		}
	}
	// Escape puts whatever is held back where it was picked up.
	if justPressed(ebiten.KeyEscape) && !g.ctrl.Idle() {
		g.ctrl.Cancel()
	}

	g.prevKeys = currentKeys
}

// handlePointer maps the left mouse button onto the controller: press picks up
// a piece (or starts a pan), motion drags, release drops.
func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	pt := jigsaw.Point{X: float64(mx), Y: float64(my)}
	defer func() { g.lastCursor = pt }()

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if float64(mx) >= g.board.Viewport().Width {
			return
		}
		if p := g.ctrl.PickUp(pt); p != nil {
			g.logger.Debug("pick up", "piece", p.Label())
		}
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if g.ctrl.Idle() {
			return
		}
		held := g.ctrl.Active()
		g.onDrop(held, g.ctrl.Drop(pt))
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !g.ctrl.Idle():
		if pt != g.lastCursor {
			g.ctrl.Drag(pt)
		}
	}
}

func (g *Game) onDrop(held *jigsaw.Piece, res jigsaw.DropResult) {
	if held == nil {
		return
	}
	g.logger.Debug("drop", "piece", held.Label(), "result", res.String())
	if res == jigsaw.DropConnected {
		size := len(g.board.AdjacentGroup(held))
		g.activity.Add(g.tick, held.Label(), ActivityConnect, fmt.Sprintf("joined, group of %d", size))
	}
}

// zoom applies one zoom step, also while a piece is held. The finished
// picture keeps its layout.
func (g *Game) zoom(step func() (float64, bool)) {
	if g.board.Complete() {
		return
	}
	f, ok := step()
	if !ok {
		g.logger.Debug("zoom clamped", "level", g.settings.ZoomLevel)
		g.setStatus(fmt.Sprintf("zoom limit %+d", g.settings.ZoomLevel))
		return
	}
	g.ctrl.Zoom(f, g.lastCursor)
}

func (g *Game) resetZoom() {
	if g.board.Complete() || g.settings.ZoomLevel == 0 {
		return
	}
	g.ctrl.Zoom(1/g.settings.Zoom, g.lastCursor)
	g.settings.ResetZoom()
}
