package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/jigsaw/internal/jigsaw"
)

// screenSurface draws the puzzle onto an ebiten image. Clipped image draws go
// through an offscreen mask: the piece outline is filled white, the image is
// drawn over it with source-in blending, and the result is composited.
type screenSurface struct {
	dst  *ebiten.Image
	src  *ebiten.Image
	mask *ebiten.Image
	bg   color.Color
}

func newScreenSurface(src *ebiten.Image, bg color.Color) *screenSurface {
	return &screenSurface{src: src, bg: bg}
}

// begin targets screen for this frame and makes sure the mask covers it.
func (s *screenSurface) begin(screen *ebiten.Image) {
	s.dst = screen
	b := screen.Bounds()
	if s.mask == nil || s.mask.Bounds().Dx() < b.Dx() || s.mask.Bounds().Dy() < b.Dy() {
		if s.mask != nil {
			s.mask.Deallocate()
		}
		s.mask = ebiten.NewImage(b.Dx(), b.Dy())
	}
}

func (s *screenSurface) ClearRect(r jigsaw.Rect) {
	if sub := subImage(s.dst, r); sub != nil {
		sub.Fill(s.bg)
	}
}

func (s *screenSurface) FillRect(r jigsaw.Rect, c color.Color) {
	vector.FillRect(s.dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c, false)
}

func (s *screenSurface) StrokePath(p *jigsaw.Path, width float64, c color.Color) {
	vp := toVectorPath(p)
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.StrokePath(s.dst, &vp, &vector.StrokeOptions{Width: float32(width), LineJoin: vector.LineJoinRound}, op)
}

func (s *screenSurface) DrawImage(src, dst jigsaw.Rect, alpha float64) {
	img, geoM := s.source(src, dst)
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: geoM, Filter: ebiten.FilterLinear}
	op.ColorScale.ScaleAlpha(float32(alpha))
	s.dst.DrawImage(img, op)
}

func (s *screenSurface) DrawImageClipped(clip *jigsaw.Path, src, dst jigsaw.Rect) {
	img, geoM := s.source(src, dst)
	if img == nil {
		return
	}
	area := clip.Bounds().Expand(1, 1).Intersect(jigsaw.Rect{
		Width:  float64(s.mask.Bounds().Dx()),
		Height: float64(s.mask.Bounds().Dy()),
	})
	mask := subImage(s.mask, area)
	if mask == nil {
		return
	}
	mask.Clear()

	vp := toVectorPath(clip)
	vector.FillPath(mask, &vp, &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true})

	op := &ebiten.DrawImageOptions{GeoM: geoM, Filter: ebiten.FilterLinear, Blend: ebiten.BlendSourceIn}
	mask.DrawImage(img, op)

	out := &ebiten.DrawImageOptions{}
	at := mask.Bounds().Min
	out.GeoM.Translate(float64(at.X), float64(at.Y))
	s.dst.DrawImage(mask, out)
}

// source returns the whole-pixel part of the source image covering src, and
// the transform that lands it on dst. Sub-images draw from their own origin,
// so the pixel rounding is carried into the translation.
func (s *screenSurface) source(src, dst jigsaw.Rect) (*ebiten.Image, ebiten.GeoM) {
	var g ebiten.GeoM
	img := subImage(s.src, src)
	if img == nil || src.Empty() {
		return nil, g
	}
	b := img.Bounds()
	sx, sy := dst.Width/src.Width, dst.Height/src.Height
	g.Scale(sx, sy)
	g.Translate(dst.X+(float64(b.Min.X)-src.X)*sx, dst.Y+(float64(b.Min.Y)-src.Y)*sy)
	return img, g
}

// subImage returns the whole-pixel part of img covered by r, or nil when
// that is empty.
func subImage(img *ebiten.Image, r jigsaw.Rect) *ebiten.Image {
	rect := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	).Intersect(img.Bounds())
	if rect.Empty() {
		return nil
	}
	return img.SubImage(rect).(*ebiten.Image)
}

func toVectorPath(p *jigsaw.Path) vector.Path {
	var vp vector.Path
	for _, c := range p.Commands() {
		switch c.Op {
		case jigsaw.MoveTo:
			vp.MoveTo(float32(c.Pts[0].X), float32(c.Pts[0].Y))
		case jigsaw.LineTo:
			vp.LineTo(float32(c.Pts[0].X), float32(c.Pts[0].Y))
		case jigsaw.CubicTo:
			vp.CubicTo(
				float32(c.Pts[0].X), float32(c.Pts[0].Y),
				float32(c.Pts[1].X), float32(c.Pts[1].Y),
				float32(c.Pts[2].X), float32(c.Pts[2].Y),
			)
		case jigsaw.Close:
			vp.Close()
		}
	}
	return vp
}
