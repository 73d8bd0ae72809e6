package jigsaw

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// newBoard builds a rows x cols puzzle from a 200px-per-cell image in a
// 1000x1000 viewport. With 3x3 that gives a ratio of 1, 200px pieces, a board
// at (200,200) and a 50px tolerance.
func newBoard(t *testing.T, rows, cols int) *Jigsaw {
	t.Helper()
	b, err := New(
		Config{Rows: rows, Cols: cols, ImageWidth: float64(cols * 200), ImageHeight: float64(rows * 200)},
		Viewport{Width: 1000, Height: 1000},
		WithSeed(42),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestNew_RejectsBadInput(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	tests := []struct {
		name string
		cfg  Config
		vp   Viewport
		want error
	}{
		{"zero rows", Config{Rows: 0, Cols: 3, ImageWidth: 10, ImageHeight: 10}, vp, ErrInvalidGrid},
		{"negative cols", Config{Rows: 3, Cols: -1, ImageWidth: 10, ImageHeight: 10}, vp, ErrInvalidGrid},
		{"no image", Config{Rows: 3, Cols: 3}, vp, ErrMissingImage},
		{"no viewport", Config{Rows: 3, Cols: 3, ImageWidth: 10, ImageHeight: 10}, Viewport{}, ErrInvalidViewport},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg, tc.vp)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNew_DefaultLayout(t *testing.T) {
	b := newBoard(t, 3, 3)

	if b.Ratio() != 1 {
		t.Fatalf("expected ratio 1, got %.4f", b.Ratio())
	}
	if b.Position() != (Point{X: 200, Y: 200}) {
		t.Fatalf("expected board centered at (200,200), got %+v", b.Position())
	}
	if b.DestPieceSize() != (Size{Width: 200, Height: 200}) {
		t.Fatalf("unexpected piece size %+v", b.DestPieceSize())
	}
	if b.SourcePieceSize() != (Size{Width: 200, Height: 200}) {
		t.Fatalf("unexpected source piece size %+v", b.SourcePieceSize())
	}
	if b.Offset() != (Point{X: 50, Y: 50}) {
		t.Fatalf("expected 50px tolerance, got %+v", b.Offset())
	}
}

func TestNew_PiecesCoverGrid(t *testing.T) {
	b := newBoard(t, 4, 6)
	if b.Len() != 24 || len(b.Pieces()) != 24 {
		t.Fatalf("expected 24 pieces, got grid=%d paint=%d", b.Len(), len(b.Pieces()))
	}

	seen := make(map[[2]int]bool)
	for _, p := range b.Pieces() {
		key := [2]int{p.Row, p.Col}
		if seen[key] {
			t.Fatalf("duplicate piece %s", p.Label())
		}
		seen[key] = true

		if p.Locked() {
			t.Fatalf("%s starts locked", p.Label())
		}
		want := b.Position().Add(Point{X: float64(p.Col) * b.DestPieceSize().Width, Y: float64(p.Row) * b.DestPieceSize().Height})
		if p.Target() != want {
			t.Fatalf("%s target %+v, want %+v", p.Label(), p.Target(), want)
		}
		if b.Piece(p.Row, p.Col) != p {
			t.Fatalf("grid lookup for %s returned a different piece", p.Label())
		}
	}
	if b.Piece(-1, 0) != nil || b.Piece(0, 6) != nil || b.Piece(4, 0) != nil {
		t.Fatal("lookup outside the grid should return nil")
	}
}

func TestNew_ScatterStaysInViewport(t *testing.T) {
	b := newBoard(t, 3, 3)
	ds := b.DestPieceSize()
	vp := b.Viewport()
	for _, p := range b.Pieces() {
		pos := p.Position()
		if pos.X < ds.Width || pos.X >= vp.Width-3*ds.Width+1 {
			t.Fatalf("%s x=%.0f outside scatter range", p.Label(), pos.X)
		}
		if pos.Y < ds.Height || pos.Y >= vp.Height-2*ds.Height+1 {
			t.Fatalf("%s y=%.0f outside scatter range", p.Label(), pos.Y)
		}
	}
}

func TestNew_SameSeedSameLayout(t *testing.T) {
	a := newBoard(t, 3, 4)
	b := newBoard(t, 3, 4)
	for i := range a.grid {
		if a.grid[i].Position() != b.grid[i].Position() {
			t.Fatalf("piece %d placed differently with the same seed", i)
		}
		if a.grid[i].Connections() != b.grid[i].Connections() {
			t.Fatalf("piece %d cut differently with the same seed", i)
		}
	}
}

func TestNew_TabsMirrorAcrossEdges(t *testing.T) {
	b := newBoard(t, 4, 5)
	for _, p := range b.Pieces() {
		for _, d := range directions {
			c := p.Connection(d)
			n := b.Neighbor(p, d)
			if n == nil {
				if c.Tab != TabFlat {
					t.Fatalf("%s %s border edge has tab %d", p.Label(), d, c.Tab)
				}
				continue
			}
			if c.Tab == TabFlat {
				t.Fatalf("%s %s interior edge is flat", p.Label(), d)
			}
			if other := n.Connection(d.Opposite()).Tab; other != -c.Tab {
				t.Fatalf("%s %s tab %d not mirrored by %s (%d)", p.Label(), d, c.Tab, n.Label(), other)
			}
			if c.Connected() {
				t.Fatalf("%s starts connected on %s", p.Label(), d)
			}
		}
	}
}

func TestPaintOrder_TopAndBottom(t *testing.T) {
	b := newBoard(t, 2, 2)
	p := b.Piece(0, 0)

	b.MovePieceToTop(p)
	if got := b.Pieces()[len(b.Pieces())-1]; got != p {
		t.Fatalf("expected %s on top, got %s", p.Label(), got.Label())
	}
	b.MovePieceToBottom(p)
	if got := b.Pieces()[0]; got != p {
		t.Fatalf("expected %s at the bottom, got %s", p.Label(), got.Label())
	}
	if len(b.Pieces()) != 4 {
		t.Fatalf("reordering changed the piece count to %d", len(b.Pieces()))
	}
}

func TestTopmostAt_SkipsLockedAndPicksTop(t *testing.T) {
	b := newBoard(t, 2, 2)
	a, c := b.Piece(0, 0), b.Piece(1, 1)
	a.moveTo(Point{X: 10, Y: 10})
	c.moveTo(Point{X: 20, Y: 20})
	b.MovePieceToTop(c)

	if got := b.TopmostAt(Point{X: 50, Y: 50}); got != c {
		t.Fatalf("expected topmost (1,1), got %v", got)
	}
	b.LockGroup([]*Piece{c})
	if got := b.TopmostAt(Point{X: 50, Y: 50}); got != a {
		t.Fatalf("locked piece should be skipped, got %v", got)
	}
}

func TestMove_PansPiecesAndTargets(t *testing.T) {
	b := newBoard(t, 3, 3)
	locked := b.Piece(1, 1)
	b.LockGroup([]*Piece{locked})
	loose := b.Piece(0, 0)
	before := loose.Position()

	b.Move(Point{X: 15, Y: -5})

	if b.Position() != (Point{X: 215, Y: 195}) {
		t.Fatalf("board did not pan: %+v", b.Position())
	}
	if loose.Position() != before.Add(Point{X: 15, Y: -5}) {
		t.Fatalf("loose piece did not pan with the board")
	}
	if locked.Position() != locked.Target() || locked.Target() != (Point{X: 415, Y: 395}) {
		t.Fatalf("locked piece left its slot: pos=%+v target=%+v", locked.Position(), locked.Target())
	}
}

func TestZoom_RoundTripRestoresLayout(t *testing.T) {
	b := newBoard(t, 3, 3)
	locked := b.Piece(1, 1)
	b.LockGroup([]*Piece{locked})

	before := make(map[*Piece]Point, b.Len())
	for _, p := range b.Pieces() {
		before[p] = p.Position()
	}
	ratio, board, size := b.Ratio(), b.Position(), b.Size().Size

	b.Zoom(ZoomInStep)
	if scalar.EqualWithinAbs(b.Ratio(), ratio, 1e-9) {
		t.Fatal("zoom in left the ratio unchanged")
	}
	if locked.Position() != locked.Target() {
		t.Fatalf("locked piece left its target while zoomed: %+v vs %+v", locked.Position(), locked.Target())
	}
	b.Zoom(ZoomOutStep)

	if !scalar.EqualWithinAbs(b.Ratio(), ratio, 1e-9) {
		t.Fatalf("ratio %.6f, want %.6f", b.Ratio(), ratio)
	}
	if !scalar.EqualWithinAbs(b.Size().Width, size.Width, 1e-6) || !scalar.EqualWithinAbs(b.Size().Height, size.Height, 1e-6) {
		t.Fatalf("board size %+v, want %+v", b.Size().Size, size)
	}
	if !scalar.EqualWithinAbs(b.Position().X, board.X, 1e-6) || !scalar.EqualWithinAbs(b.Position().Y, board.Y, 1e-6) {
		t.Fatalf("board position %+v, want %+v", b.Position(), board)
	}
	for _, p := range b.Pieces() {
		want := before[p]
		if !scalar.EqualWithinAbs(p.Position().X, want.X, 1e-6) || !scalar.EqualWithinAbs(p.Position().Y, want.Y, 1e-6) {
			t.Fatalf("piece %s position %+v, want %+v", p.Label(), p.Position(), want)
		}
	}
	if !locked.Locked() || locked.Position() != locked.Target() {
		t.Fatalf("locked piece %+v is off its target %+v", locked.Position(), locked.Target())
	}
}

func TestZoom_KeepsViewportCenterFixed(t *testing.T) {
	b := newBoard(t, 3, 3)
	// The board is centered, so its center must stay on the viewport center.
	b.Zoom(2)
	bounds := b.Bounds()
	cx := bounds.X + bounds.Width/2
	cy := bounds.Y + bounds.Height/2
	if !scalar.EqualWithinAbs(cx, 500, 1e-9) || !scalar.EqualWithinAbs(cy, 500, 1e-9) {
		t.Fatalf("board center moved to (%.2f,%.2f)", cx, cy)
	}
	if b.DestPieceSize() != (Size{Width: 400, Height: 400}) || b.Offset() != (Point{X: 100, Y: 100}) {
		t.Fatalf("derived sizes not rescaled: piece=%+v offset=%+v", b.DestPieceSize(), b.Offset())
	}
}

func TestZoom_IgnoresInvalidFactors(t *testing.T) {
	b := newBoard(t, 2, 2)
	ratio := b.Ratio()
	for _, f := range []float64{0, -1} {
		b.Zoom(f)
	}
	if b.Ratio() != ratio {
		t.Fatalf("invalid factors changed the ratio to %.4f", b.Ratio())
	}
}

func TestResetView_RestoresDefaultLayout(t *testing.T) {
	b := newBoard(t, 3, 3)
	b.Zoom(1.5)
	b.Move(Point{X: -120, Y: 40})
	b.ResetView()

	if b.Ratio() != 1 || b.Position() != (Point{X: 200, Y: 200}) {
		t.Fatalf("expected default layout, got ratio=%.3f pos=%+v", b.Ratio(), b.Position())
	}
	if p := b.Piece(2, 2); p.Target() != (Point{X: 600, Y: 600}) {
		t.Fatalf("targets not refreshed: %+v", p.Target())
	}
}

func TestSetViewport_IgnoresEmpty(t *testing.T) {
	b := newBoard(t, 2, 2)
	b.SetViewport(Viewport{Width: 0, Height: 10})
	if b.Viewport() != (Viewport{Width: 1000, Height: 1000}) {
		t.Fatalf("empty viewport accepted: %+v", b.Viewport())
	}
	b.SetViewport(Viewport{Width: 640, Height: 480})
	if b.Viewport().Center() != (Point{X: 320, Y: 240}) {
		t.Fatalf("unexpected center %+v", b.Viewport().Center())
	}
}
