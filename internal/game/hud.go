package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	charW = 6  // debug font char width at 1x
	lineH = 12 // debug font line height at 1x
	padX  = 5
	padY  = 4
)

// hudLines builds the status panel text.
func (g *Game) hudLines() []string {
	prog := g.board.Progress()
	lines := []string{
		fmt.Sprintf("Placed %d/%d  %.0f%%", prog.Locked, prog.Total, prog.Percent()),
	}
	if g.settings.Timer {
		lines = append(lines, "Time "+g.stopwatch.String())
	}
	lines = append(lines, fmt.Sprintf("Zoom %+d", g.settings.ZoomLevel))
	if g.showHelp {
		lines = append(lines,
			"drag=move  empty=pan",
			"scroll,+/-=zoom  0=reset",
			"P=preview  I=image",
			"T=timer  F=fullscreen",
			"C=copy  [H] toggle help",
		)
	}
	if g.status != "" && g.tick < g.statusUntil {
		lines = append(lines, g.status)
	}
	return lines
}

// ensureHUDBuf keeps the HUD buffer at 1/hudScale of the window.
func (g *Game) ensureHUDBuf() {
	w, h := g.width/hudScale, g.height/hudScale
	if w < 1 || h < 1 {
		return
	}
	if g.hudBuf != nil {
		b := g.hudBuf.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		g.hudBuf.Deallocate()
	}
	g.hudBuf = ebiten.NewImage(w, h)
}

// drawHUD renders the status panel in the top-left corner.
// Text is drawn into hudBuf at 1x then composited onto the screen at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	g.ensureHUDBuf()
	if g.hudBuf == nil {
		return
	}
	g.hudBuf.Clear()
	drawPanel(g.hudBuf, g.hudLines(), 4, 4)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

// drawSummary shows the end screen centered on the play area.
func (g *Game) drawSummary(screen *ebiten.Image) {
	g.ensureHUDBuf()
	if g.hudBuf == nil {
		return
	}
	lines := append(g.summary().Lines(), "", "C=copy summary")
	w, h := panelSize(lines)
	vpW := int(g.board.Viewport().Width) / hudScale
	bx := float32(vpW)/2 - w/2
	by := float32(g.height/hudScale)/2 - h/2

	g.hudBuf.Clear()
	drawPanel(g.hudBuf, lines, bx, by)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

func panelSize(lines []string) (w, h float32) {
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	return float32(maxLen*charW + padX*2), float32(len(lines)*lineH + padY*2)
}

func drawPanel(dst *ebiten.Image, lines []string, bx, by float32) {
	boxW, boxH := panelSize(lines)
	vector.FillRect(dst, bx, by, boxW, boxH,
		color.RGBA{R: 10, G: 10, B: 16, A: 210}, false)
	vector.StrokeRect(dst, bx, by, boxW, boxH,
		1.0, color.RGBA{R: 80, G: 80, B: 120, A: 180}, false)
	// Inner highlight line along top edge.
	vector.StrokeLine(dst, bx+1, by+1, bx+boxW-1, by+1,
		1.0, color.RGBA{R: 120, G: 120, B: 170, A: 80}, false)

	for i, line := range lines {
		ebitenutil.DebugPrintAt(dst, line, int(bx)+padX, int(by)+padY+i*lineH)
	}
}
