package jigsaw

import "fmt"

// Piece is one tile of the image. Position is where the piece currently sits
// on screen; Target is where it belongs once solved. Both are top-left corners
// in screen space.
type Piece struct {
	Row, Col int
	// Source is the piece's nominal rectangle in image space.
	Source Rect

	position    Point
	target      Point
	locked      bool
	connections [4]Connection
}

func newPiece(row, col int, source Rect, position, target Point) *Piece {
	return &Piece{
		Row:         row,
		Col:         col,
		Source:      source,
		position:    position,
		target:      target,
		connections: newConnections(row, col),
	}
}

// Position returns the piece's current top-left corner.
func (p *Piece) Position() Point { return p.position }

// Target returns the top-left corner of the piece's solved slot.
func (p *Piece) Target() Point { return p.target }

// Locked reports whether the piece has been placed in its slot for good.
func (p *Piece) Locked() bool { return p.locked }

// Connection returns the connection on side d.
func (p *Piece) Connection(d Direction) Connection { return p.connections[d] }

// Connections returns all four connections in Left, Right, Top, Bottom order.
func (p *Piece) Connections() [4]Connection { return p.connections }

// Label is a short "(row,col)" identifier for logs.
func (p *Piece) Label() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// moveBy translates a loose piece. Locked pieces stay put.
func (p *Piece) moveBy(v Point) {
	if p.locked {
		return
	}
	p.position = p.position.Add(v)
}

// moveTo places a loose piece. Locked pieces stay put.
func (p *Piece) moveTo(pos Point) {
	if p.locked {
		return
	}
	p.position = pos
}

// placeRelativeTo positions p so that it keeps its solved-layout offset from
// ref: p ends up displaced from its own target by exactly the amount ref is
// displaced from ref's target.
func (p *Piece) placeRelativeTo(ref *Piece) {
	p.moveTo(p.target.Add(ref.position.Sub(ref.target)))
}

// snap moves the piece onto its target and locks it. It reports whether the
// piece was newly locked.
func (p *Piece) snap() bool {
	if p.locked {
		return false
	}
	p.position = p.target
	p.locked = true
	return true
}

// setTarget updates the solved slot after the board moved or was resized.
// A locked piece follows its target so that it never leaves its slot.
func (p *Piece) setTarget(t Point) {
	p.target = t
	if p.locked {
		p.position = t
	}
}

// rescale applies a zoom about focus to a loose piece's position.
func (p *Piece) rescale(focus Point, factor float64) {
	if p.locked {
		return
	}
	p.position = p.position.ScaleAbout(focus, factor)
}

func (p *Piece) connect(d Direction) {
	p.connections[d].connected = true
}

// nearTarget reports whether the piece sits within tol of its slot on both axes.
func (p *Piece) nearTarget(tol Point) bool {
	d := p.position.Sub(p.target)
	return abs(d.X) <= tol.X && abs(d.Y) <= tol.Y
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
