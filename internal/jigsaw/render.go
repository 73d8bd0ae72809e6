package jigsaw

import (
	"image/color"
	"math"
)

// Tab geometry, as fractions of the edge length. u runs along the edge and v
// points away from the piece for a tab (into it for a blank). The second half
// of every tab is the first half mirrored across the edge midpoint.
var (
	tabApproach = Point{X: 0.4, Y: 0}     // first control point, on the edge line
	tabPinch    = Point{X: 0.5, Y: 0.075} // pulls the neck inward
	tabNeck     = Point{X: 0.45, Y: 0.1}  // where the neck meets the head
	tabHead     = Point{X: 0.25, Y: 0.25} // swings the head past the neck
)

const (
	// convexity is how far a tab can reach past the piece's nominal
	// rectangle, as a fraction of the longer piece side. A tab's height scales
	// with its edge, so on a tall cell the side tabs peak at 0.2125 x height.
	convexity = 0.25
	// strokeRatio and maxStroke size the piece outline.
	strokeRatio = 0.05
	maxStroke   = 2.0
	// previewAlpha is the opacity of the faint whole-image preview.
	previewAlpha = 0.25
)

// Surface is a 2D drawing target. Image operations read from the puzzle's
// source image, which the Surface owns.
type Surface interface {
	// ClearRect makes r fully transparent.
	ClearRect(r Rect)
	// FillRect paints r with c.
	FillRect(r Rect, c color.Color)
	// StrokePath outlines p.
	StrokePath(p *Path, width float64, c color.Color)
	// DrawImage copies the src part of the image into dst, scaled, at alpha.
	DrawImage(src, dst Rect, alpha float64)
	// DrawImageClipped is DrawImage at full opacity, masked to the inside of clip.
	DrawImageClipped(clip *Path, src, dst Rect)
}

// PiecePath returns the closed outline of p at its current position: straight
// on the puzzle border, and a tab or blank on every edge with a neighbour.
// The outline runs clockwise from the top-left corner.
func (j *Jigsaw) PiecePath(p *Piece) *Path {
	r := j.PieceRect(p)
	path := &Path{}
	path.MoveTo(r.Min())

	edges := [4]struct {
		d      Direction
		start  Point
		dir    Point
		normal Point
		length float64
	}{
		{Top, Point{X: r.X, Y: r.Y}, Point{X: 1}, Point{Y: -1}, r.Width},
		{Right, Point{X: r.X + r.Width, Y: r.Y}, Point{Y: 1}, Point{X: 1}, r.Height},
		{Bottom, Point{X: r.X + r.Width, Y: r.Y + r.Height}, Point{X: -1}, Point{Y: 1}, r.Width},
		{Left, Point{X: r.X, Y: r.Y + r.Height}, Point{Y: -1}, Point{X: -1}, r.Height},
	}
	for _, e := range edges {
		tab := p.connections[e.d].Tab
		if j.Neighbor(p, e.d) == nil || tab == TabFlat {
			path.LineTo(e.start.Add(e.dir.Scale(e.length)))
			continue
		}
		// Maps an edge-local (u, v) onto the screen.
		at := func(local Point) Point {
			along := e.dir.Scale(local.X * e.length)
			out := e.normal.Scale(local.Y * e.length * float64(tab))
			return e.start.Add(along).Add(out)
		}
		mirror := func(local Point) Point { return local.ReflectVertical(0.5) }

		path.CubicTo(at(tabApproach), at(tabPinch), at(tabNeck))
		path.CubicTo(at(tabHead), at(mirror(tabHead)), at(mirror(tabNeck)))
		path.CubicTo(at(mirror(tabPinch)), at(mirror(tabApproach)), at(Point{X: 1}))
	}
	path.Close()
	return path
}

// Renderer paints a Jigsaw onto a Surface.
type Renderer struct {
	board *Jigsaw

	Outline      color.Color
	BoardOutline color.Color
}

// NewRenderer creates a renderer with default colours.
func NewRenderer(b *Jigsaw) *Renderer {
	return &Renderer{
		board:        b,
		Outline:      color.RGBA{R: 20, G: 20, B: 20, A: 255},
		BoardOutline: color.RGBA{R: 200, G: 200, B: 200, A: 255},
	}
}

// Draw paints the board outline, the optional preview and every piece in
// paint order.
func (r *Renderer) Draw(s Surface, settings Settings) {
	b := r.board
	vp := b.Viewport()
	s.ClearRect(Rect{Width: vp.Width, Height: vp.Height})

	bounds := b.Bounds()
	s.StrokePath(rectPath(bounds), 1, r.BoardOutline)
	if settings.Preview {
		s.DrawImage(r.imageRect(), bounds, previewAlpha)
	}
	for _, p := range b.pieces {
		r.DrawPiece(s, p)
	}
}

// DrawPiece outlines p and fills its silhouette with its part of the image.
func (r *Renderer) DrawPiece(s Surface, p *Piece) {
	b := r.board
	path := b.PiecePath(p)
	src, dst := r.pieceImageRects(p)

	s.StrokePath(path, r.strokeWidth(), r.Outline)
	if !src.Empty() {
		s.DrawImageClipped(path, src, dst)
	}
}

// DrawFinished paints the assembled image once, at full opacity, inside at.
func (r *Renderer) DrawFinished(s Surface, at Rect) {
	vp := r.board.Viewport()
	s.ClearRect(Rect{Width: vp.Width, Height: vp.Height})
	s.DrawImage(r.imageRect(), at, 1)
	s.StrokePath(rectPath(at), 1, r.BoardOutline)
}

// pieceImageRects returns the image rectangle to copy for p and where it goes
// on screen. Both are grown on every side by the convexity margin of the
// longer piece edge so tabs are filled, then trimmed to the image so border
// pieces do not read outside it.
func (r *Renderer) pieceImageRects(p *Piece) (src, dst Rect) {
	b := r.board
	ss, ds := b.sourcePieceSize, b.destPieceSize

	sm := convexity * math.Max(ss.Width, ss.Height)
	dm := convexity * math.Max(ds.Width, ds.Height)
	src = p.Source.Expand(sm, sm)
	dst = b.PieceRect(p).Expand(dm, dm)

	trimmed := src.Intersect(r.imageRect())
	if trimmed.Empty() {
		return Rect{}, Rect{}
	}
	sx := dst.Width / src.Width
	sy := dst.Height / src.Height
	dst = Rect{
		X:      dst.X + (trimmed.X-src.X)*sx,
		Y:      dst.Y + (trimmed.Y-src.Y)*sy,
		Width:  trimmed.Width * sx,
		Height: trimmed.Height * sy,
	}
	return trimmed, dst
}

func (r *Renderer) imageRect() Rect {
	is := r.board.imageSize
	return Rect{Width: is.Width, Height: is.Height}
}

func (r *Renderer) strokeWidth() float64 {
	ds := r.board.destPieceSize
	return math.Min(maxStroke, strokeRatio*math.Min(ds.Width, ds.Height))
}

func rectPath(r Rect) *Path {
	p := &Path{}
	p.MoveTo(r.Min())
	p.LineTo(Point{X: r.X + r.Width, Y: r.Y})
	p.LineTo(r.Max())
	p.LineTo(Point{X: r.X, Y: r.Y + r.Height})
	p.Close()
	return p
}
