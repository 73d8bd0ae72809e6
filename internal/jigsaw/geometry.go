package jigsaw

import "math"

// Point is a 2D position or displacement. The coordinate system has its origin
// at the top-left, with Y increasing downward.
type Point struct {
	X, Y float64
}

// Add returns p translated by v.
func (p Point) Add(v Point) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale multiplies both components by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// ScaleAbout scales p away from (or towards) the focus point c by f.
func (p Point) ScaleAbout(c Point, f float64) Point {
	return c.Add(p.Sub(c).Scale(f))
}

// ReflectVertical mirrors p across the vertical line x = axisX.
func (p Point) ReflectVertical(axisX float64) Point {
	return Point{X: axisX + (axisX - p.X), Y: p.Y}
}

// ReflectHorizontal mirrors p across the horizontal line y = axisY.
func (p Point) ReflectHorizontal(axisY float64) Point {
	return Point{X: p.X, Y: axisY + (axisY - p.Y)}
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Scale multiplies both dimensions by f.
func (s Size) Scale(f float64) Size {
	return Size{Width: s.Width * f, Height: s.Height * f}
}

// Half returns half the size, rounded to whole pixels.
func (s Size) Half() Point {
	return Point{X: math.Round(s.Width / 2), Y: math.Round(s.Height / 2)}
}

// TabularSize is a Size that is also divided into a grid.
type TabularSize struct {
	Size
	Rows, Cols int
}

// Cell returns the size of a single grid cell.
func (t TabularSize) Cell() Size {
	return Size{Width: t.Width / float64(t.Cols), Height: t.Height / float64(t.Rows)}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// RectAt builds a Rect from a top-left corner and a size.
func RectAt(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{X: r.X + r.Width, Y: r.Y + r.Height} }

// Contains reports whether p lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Expand grows the rectangle by dx on the left and right and dy on the top
// and bottom. Negative values shrink it.
func (r Rect) Expand(dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

// Intersect returns the overlap of r and o. Empty overlaps have zero size.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.X+r.Width, o.X+o.Width)
	y1 := math.Min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
