package jigsaw

import "math"

// PathOp is a path drawing command.
type PathOp uint8

const (
	MoveTo  PathOp = iota // start a new subpath at Pts[0]
	LineTo                // straight line to Pts[0]
	CubicTo               // cubic bezier via Pts[0], Pts[1] to Pts[2]
	Close                 // line back to the subpath start
)

// PathCmd is one command of a Path. Unused points are zero.
type PathCmd struct {
	Op  PathOp
	Pts [3]Point
}

// Path is a sequence of line and cubic bezier segments in screen space.
type Path struct {
	cmds []PathCmd
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(pt Point) {
	p.cmds = append(p.cmds, PathCmd{Op: MoveTo, Pts: [3]Point{pt}})
}

// LineTo adds a straight segment.
func (p *Path) LineTo(pt Point) {
	p.cmds = append(p.cmds, PathCmd{Op: LineTo, Pts: [3]Point{pt}})
}

// CubicTo adds a cubic bezier segment.
func (p *Path) CubicTo(c1, c2, pt Point) {
	p.cmds = append(p.cmds, PathCmd{Op: CubicTo, Pts: [3]Point{c1, c2, pt}})
}

// Close ends the current subpath.
func (p *Path) Close() {
	p.cmds = append(p.cmds, PathCmd{Op: Close})
}

// Commands returns the recorded commands. The slice MUST NOT be mutated.
func (p *Path) Commands() []PathCmd {
	return p.cmds
}

// Bounds returns the bounding box of every point and control point. Control
// points bound a bezier, so the box always contains the drawn shape.
func (p *Path) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range p.cmds {
		n := 0
		switch c.Op {
		case MoveTo, LineTo:
			n = 1
		case CubicTo:
			n = 3
		}
		for _, pt := range c.Pts[:n] {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
