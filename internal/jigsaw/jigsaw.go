package jigsaw

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// defaultFill is the share of the viewport the board takes up at the default
// zoom, measured along the tighter axis.
const defaultFill = 0.6

// offsetDivisor sets the snapping tolerance as a fraction of the piece size.
const offsetDivisor = 4

var (
	// ErrInvalidGrid is returned for a grid with a non-positive row or column count.
	ErrInvalidGrid = errors.New("jigsaw: rows and cols must be positive")
	// ErrMissingImage is returned when the source image has no area.
	ErrMissingImage = errors.New("jigsaw: source image is missing or empty")
	// ErrInvalidViewport is returned when the viewport has no area.
	ErrInvalidViewport = errors.New("jigsaw: viewport must have a positive size")
)

// Config describes one puzzle: its grid and the decoded image's size in pixels.
type Config struct {
	Rows, Cols  int
	ImageWidth  float64
	ImageHeight float64
}

// Validate rejects configurations the engine cannot build a board from.
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidGrid, c.Rows, c.Cols)
	}
	if c.ImageWidth <= 0 || c.ImageHeight <= 0 {
		return fmt.Errorf("%w: got %.0fx%.0f", ErrMissingImage, c.ImageWidth, c.ImageHeight)
	}
	return nil
}

// Viewport is the on-screen drawing area. Zooming is focused on its center and
// loose pieces are scattered inside it.
type Viewport struct {
	Width, Height float64
}

// Center returns the viewport's midpoint.
func (v Viewport) Center() Point {
	return Point{X: v.Width / 2, Y: v.Height / 2}
}

// Option configures a Jigsaw at construction.
type Option func(*Jigsaw)

// WithSeed makes piece scattering and tab shapes deterministic.
func WithSeed(seed int64) Option {
	return func(j *Jigsaw) {
		j.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- layout only
	}
}

// WithRand supplies the random source used for scattering and tab shapes.
func WithRand(rng *rand.Rand) Option {
	return func(j *Jigsaw) {
		j.rng = rng
	}
}

// Jigsaw is the puzzle board. It owns every piece, their paint order, the
// board's on-screen placement at the current zoom and the snapping tolerance.
type Jigsaw struct {
	viewport  Viewport
	imageSize Size
	size      TabularSize // board size on screen, plus the grid
	position  Point       // board top-left on screen
	ratio     float64     // screen pixels per image pixel
	offset    Point       // snapping tolerance per axis

	sourcePieceSize Size
	destPieceSize   Size

	pieces []*Piece // paint order; last is topmost
	grid   []*Piece // row-major lookup

	rng *rand.Rand

	locked    int
	completed bool
	onLock    []func(*Piece, Progress)
	onDone    []func(Progress)
}

// New cuts an image of the configured size into a grid of pieces scattered
// across the viewport, with the board centered at the default zoom.
func New(cfg Config, vp Viewport, opts ...Option) (*Jigsaw, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return nil, fmt.Errorf("%w: got %.0fx%.0f", ErrInvalidViewport, vp.Width, vp.Height)
	}

	j := &Jigsaw{
		viewport:  vp,
		imageSize: Size{Width: cfg.ImageWidth, Height: cfg.ImageHeight},
		size:      TabularSize{Rows: cfg.Rows, Cols: cfg.Cols},
	}
	for _, opt := range opts {
		opt(j)
	}
	if j.rng == nil {
		j.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- layout only
	}

	j.ratio = j.defaultRatio()
	j.applyRatio()
	j.centerPosition()
	j.sourcePieceSize = TabularSize{Size: j.imageSize, Rows: cfg.Rows, Cols: cfg.Cols}.Cell()

	j.createPieces()
	j.assignTabs()
	return j, nil
}

func (j *Jigsaw) createPieces() {
	n := j.size.Rows * j.size.Cols
	j.pieces = make([]*Piece, 0, n)
	j.grid = make([]*Piece, 0, n)
	for row := 0; row < j.size.Rows; row++ {
		for col := 0; col < j.size.Cols; col++ {
			source := Rect{
				X:      j.sourcePieceSize.Width * float64(col),
				Y:      j.sourcePieceSize.Height * float64(row),
				Width:  j.sourcePieceSize.Width,
				Height: j.sourcePieceSize.Height,
			}
			p := newPiece(row, col, source, j.scatterPosition(), j.targetOf(row, col))
			j.pieces = append(j.pieces, p)
			j.grid = append(j.grid, p)
		}
	}
}

// scatterPosition picks a random loose position that keeps the piece inside
// the viewport with a margin of one piece on the top-left and two to three on
// the bottom-right.
func (j *Jigsaw) scatterPosition() Point {
	w, h := j.destPieceSize.Width, j.destPieceSize.Height
	return Point{
		X: math.Floor(j.randomIn(w, j.viewport.Width-3*w)),
		Y: math.Floor(j.randomIn(h, j.viewport.Height-2*h)),
	}
}

func (j *Jigsaw) randomIn(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + j.rng.Float64()*(hi-lo)
}

// assignTabs gives every interior edge a random cut, mirrored on both sides.
func (j *Jigsaw) assignTabs() {
	for _, p := range j.grid {
		for _, d := range [2]Direction{Right, Bottom} {
			c := p.connections[d]
			n := j.Piece(c.Row, c.Col)
			if n == nil {
				continue
			}
			t := TabOut
			if j.rng.Intn(2) == 0 {
				t = TabIn
			}
			p.connections[d].Tab = t
			n.connections[d.Opposite()].Tab = -t
		}
	}
}

// --- Accessors ---

// Pieces returns the pieces in paint order, topmost last.
// The returned slice MUST NOT be mutated.
func (j *Jigsaw) Pieces() []*Piece { return j.pieces }

// Len returns the number of pieces.
func (j *Jigsaw) Len() int { return len(j.grid) }

// Piece returns the piece at (row, col), or nil outside the grid.
func (j *Jigsaw) Piece(row, col int) *Piece {
	if row < 0 || row >= j.size.Rows || col < 0 || col >= j.size.Cols {
		return nil
	}
	return j.grid[row*j.size.Cols+col]
}

// Neighbor returns the piece across side d of p, or nil at the border.
func (j *Jigsaw) Neighbor(p *Piece, d Direction) *Piece {
	c := p.connections[d]
	return j.Piece(c.Row, c.Col)
}

// Position returns the board's top-left corner on screen.
func (j *Jigsaw) Position() Point { return j.position }

// Size returns the board's on-screen size and grid dimensions.
func (j *Jigsaw) Size() TabularSize { return j.size }

// Bounds returns the board rectangle on screen.
func (j *Jigsaw) Bounds() Rect { return RectAt(j.position, j.size.Size) }

// ImageSize returns the source image size in pixels.
func (j *Jigsaw) ImageSize() Size { return j.imageSize }

// SourcePieceSize returns a piece's size in image space.
func (j *Jigsaw) SourcePieceSize() Size { return j.sourcePieceSize }

// DestPieceSize returns a piece's size on screen at the current zoom.
func (j *Jigsaw) DestPieceSize() Size { return j.destPieceSize }

// Offset returns the snapping tolerance per axis.
func (j *Jigsaw) Offset() Point { return j.offset }

// Ratio returns the current screen-to-image scale.
func (j *Jigsaw) Ratio() float64 { return j.ratio }

// Viewport returns the viewport the board was laid out in.
func (j *Jigsaw) Viewport() Viewport { return j.viewport }

// PieceRect returns the piece's nominal rectangle at its current position.
func (j *Jigsaw) PieceRect(p *Piece) Rect { return RectAt(p.position, j.destPieceSize) }

// --- Paint order ---

// MovePieceToTop paints p above every other piece.
func (j *Jigsaw) MovePieceToTop(p *Piece) {
	i := j.indexOf(p)
	if i < 0 {
		return
	}
	copy(j.pieces[i:], j.pieces[i+1:])
	j.pieces[len(j.pieces)-1] = p
}

// MovePieceToBottom paints p below every other piece.
func (j *Jigsaw) MovePieceToBottom(p *Piece) {
	i := j.indexOf(p)
	if i < 0 {
		return
	}
	copy(j.pieces[1:i+1], j.pieces[:i])
	j.pieces[0] = p
}

func (j *Jigsaw) indexOf(p *Piece) int {
	for i, q := range j.pieces {
		if q == p {
			return i
		}
	}
	return -1
}

// TopmostAt returns the topmost loose piece whose rectangle contains pt.
func (j *Jigsaw) TopmostAt(pt Point) *Piece {
	for i := len(j.pieces) - 1; i >= 0; i-- {
		p := j.pieces[i]
		if !p.locked && j.PieceRect(p).Contains(pt) {
			return p
		}
	}
	return nil
}

// --- Geometry ---

func (j *Jigsaw) defaultRatio() float64 {
	return defaultFill * math.Min(j.viewport.Width/j.imageSize.Width, j.viewport.Height/j.imageSize.Height)
}

// applyRatio recomputes every size derived from the zoom ratio.
func (j *Jigsaw) applyRatio() {
	j.size.Size = j.imageSize.Scale(j.ratio)
	j.destPieceSize = j.size.Cell()
	j.offset = Point{
		X: math.Round(j.destPieceSize.Width / offsetDivisor),
		Y: math.Round(j.destPieceSize.Height / offsetDivisor),
	}
}

func (j *Jigsaw) centerPosition() {
	j.position = Point{
		X: (j.viewport.Width - j.size.Width) / 2,
		Y: (j.viewport.Height - j.size.Height) / 2,
	}
}

func (j *Jigsaw) targetOf(row, col int) Point {
	return Point{
		X: j.position.X + float64(col)*j.destPieceSize.Width,
		Y: j.position.Y + float64(row)*j.destPieceSize.Height,
	}
}

func (j *Jigsaw) refreshTargets() {
	for _, p := range j.grid {
		p.setTarget(j.targetOf(p.Row, p.Col))
	}
}

// Move pans the board and every piece by v.
func (j *Jigsaw) Move(v Point) {
	j.position = j.position.Add(v)
	for _, p := range j.grid {
		p.moveBy(v)
	}
	j.refreshTargets()
}

// Zoom multiplies the board scale by factor, keeping the viewport center
// fixed on screen. Loose pieces keep their place relative to that center, not
// relative to the board, so a piece under the cursor does not jump.
func (j *Jigsaw) Zoom(factor float64) {
	if factor <= 0 || math.IsInf(factor, 0) || math.IsNaN(factor) {
		return
	}
	focus := j.viewport.Center()
	j.ratio *= factor
	j.applyRatio()
	j.position = j.position.ScaleAbout(focus, factor)
	for _, p := range j.grid {
		p.rescale(focus, factor)
	}
	j.refreshTargets()
}

// ResetView restores the default zoom and centers the board in the viewport.
func (j *Jigsaw) ResetView() {
	j.ratio = j.defaultRatio()
	j.applyRatio()
	j.centerPosition()
	j.refreshTargets()
}

// SetViewport records a new viewport size, e.g. after a window resize.
// The board itself is not moved.
func (j *Jigsaw) SetViewport(vp Viewport) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	j.viewport = vp
}
