package game

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/Garsondee/jigsaw/internal/jigsaw"
)

// hudScale is the integer upscale factor applied to all HUD text (2 = 2× larger).
const hudScale = 2

// statusTicks is how long a transient status line stays on the HUD.
const statusTicks = 180

var (
	backgroundColor = color.RGBA{R: 24, G: 26, B: 32, A: 255}
	frameColor      = color.RGBA{R: 120, G: 120, B: 140, A: 255}
)

// Options configures a new game session.
type Options struct {
	Rows, Cols int
	// Seed drives the scatter and the tab shapes; 0 picks one from the clock.
	Seed    int64
	Preview bool
	// Width and Height are the initial window size.
	Width, Height int
}

type Game struct {
	width  int // window size, as reported to Layout
	height int
	logger *slog.Logger

	sessionID string
	rows      int
	cols      int

	board    *jigsaw.Jigsaw
	ctrl     *jigsaw.Controller
	renderer *jigsaw.Renderer
	settings jigsaw.Settings

	source  *ebiten.Image
	surface *screenSurface
	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image

	activity  *ActivityLog
	stopwatch *Stopwatch
	settle    *settleAnim

	tick        int
	showHelp    bool
	status      string
	statusUntil int
	prevKeys    map[ebiten.Key]bool
	lastCursor  jigsaw.Point
}

// New cuts img into a puzzle and returns a game ready for ebiten.RunGame.
func New(img image.Image, opts Options, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 800
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	b := img.Bounds()
	g := &Game{
		width:     opts.Width,
		height:    opts.Height,
		logger:    logger,
		sessionID: uuid.NewString(),
		rows:      opts.Rows,
		cols:      opts.Cols,
		settings:  jigsaw.DefaultSettings(),
		activity:  NewActivityLog(),
		stopwatch: NewStopwatch(ebiten.TPS()),
		showHelp:  true,
		prevKeys:  make(map[ebiten.Key]bool),
	}
	g.settings.Preview = opts.Preview

	board, err := jigsaw.New(
		jigsaw.Config{Rows: opts.Rows, Cols: opts.Cols, ImageWidth: float64(b.Dx()), ImageHeight: float64(b.Dy())},
		g.viewport(),
		jigsaw.WithSeed(seed),
	)
	if err != nil {
		return nil, fmt.Errorf("new board: %w", err)
	}
	g.board = board
	g.ctrl = jigsaw.NewController(board)
	g.renderer = jigsaw.NewRenderer(board)
	g.source = ebiten.NewImageFromImage(img)
	g.surface = newScreenSurface(g.source, backgroundColor)

	board.OnPieceLocked(g.onPieceLocked)
	board.OnComplete(g.onComplete)

	g.logger.Info("session started",
		"session", g.sessionID,
		"grid", fmt.Sprintf("%dx%d", opts.Rows, opts.Cols),
		"image", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"seed", seed,
	)
	g.activity.Add(0, "--", ActivityInfo, fmt.Sprintf("%d pieces", board.Len()))
	return g, nil
}

// viewport is the play area: the window minus the activity panel.
func (g *Game) viewport() jigsaw.Viewport {
	w := g.width - logPanelWidth
	if w < 1 {
		w = 1
	}
	h := g.height
	if h < 1 {
		h = 1
	}
	return jigsaw.Viewport{Width: float64(w), Height: float64(h)}
}

func (g *Game) onPieceLocked(p *jigsaw.Piece, prog jigsaw.Progress) {
	g.logger.Debug("piece locked", "piece", p.Label(), "locked", prog.Locked, "total", prog.Total)
	g.activity.Add(g.tick, p.Label(), ActivityLock, fmt.Sprintf("locked %.0f%%", prog.Percent()))
}

func (g *Game) onComplete(prog jigsaw.Progress) {
	g.stopwatch.Stop()
	from := g.board.Bounds()
	g.board.ResetView()
	g.settings.ResetZoom()
	g.settle = newSettle(from, g.board.Bounds(), settleSeconds, ease.OutCubic)

	g.logger.Info("puzzle complete",
		"session", g.sessionID,
		"pieces", prog.Total,
		"elapsed", g.stopwatch.String(),
	)
	g.activity.Add(g.tick, "--", ActivityInfo, "puzzle complete")
}

func (g *Game) Update() error {
	g.tick++
	g.syncViewport()
	g.handleInput()
	g.stopwatch.Tick()
	if g.settle != nil {
		g.settle.Update(1 / float32(ebiten.TPS()))
	}
	return nil
}

// syncViewport follows window resizes. A finished picture is re-centered.
func (g *Game) syncViewport() {
	vp := g.viewport()
	if vp == g.board.Viewport() {
		return
	}
	g.board.SetViewport(vp)
	if g.board.Complete() {
		from := g.board.Bounds()
		if g.settle != nil {
			from = g.settle.Rect()
		}
		g.board.ResetView()
		g.settle = newSettle(from, g.board.Bounds(), settleSeconds/2, ease.OutCubic)
	}
	g.logger.Debug("viewport resized", "width", vp.Width, "height", vp.Height)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.surface.begin(screen)

	if g.board.Complete() {
		at := g.board.Bounds()
		if g.settle != nil {
			at = g.settle.Rect()
		}
		g.renderer.DrawFinished(g.surface, at)
	} else {
		g.renderer.Draw(g.surface, g.settings)
	}

	if g.settings.FullImage {
		g.drawReference()
	}

	vp := g.viewport()
	g.activity.Draw(screen, int(vp.Width), g.height)
	g.drawHUD(screen)
	if g.board.Complete() && g.settle != nil && g.settle.Done() {
		g.drawSummary(screen)
	}
}

// drawReference shows the whole picture in the top-right corner of the play area.
func (g *Game) drawReference() {
	vp := g.viewport()
	is := g.board.ImageSize()
	w := vp.Width / 4
	h := w * is.Height / is.Width
	if h > vp.Height/3 {
		h = vp.Height / 3
		w = h * is.Width / is.Height
	}
	at := jigsaw.Rect{X: vp.Width - w - 12, Y: 12, Width: w, Height: h}
	g.surface.FillRect(at.Expand(2, 2), frameColor)
	g.surface.DrawImage(jigsaw.Rect{Width: is.Width, Height: is.Height}, at, 1)
}

// summary snapshots the session for the end screen and the clipboard.
func (g *Game) summary() Summary {
	return Summary{
		SessionID: g.sessionID,
		Rows:      g.rows,
		Cols:      g.cols,
		Progress:  g.board.Progress(),
		Elapsed:   g.stopwatch.Elapsed(),
	}
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = g.tick + statusTicks
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// SessionID returns the id logged for this session.
func (g *Game) SessionID() string {
	return g.sessionID
}
