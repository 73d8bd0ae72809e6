package jigsaw

// Direction names one side of a piece.
type Direction uint8

const (
	Left   Direction = iota // neighbour at col-1
	Right                   // neighbour at col+1
	Top                     // neighbour at row-1
	Bottom                  // neighbour at row+1
)

// directions is the fixed scan order used for snapping and grouping. It is
// also the tie-break when a piece is near several neighbours at once.
var directions = [4]Direction{Left, Right, Top, Bottom}

// String returns the lower-case side name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Opposite returns the side a neighbour uses for the same edge.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Top:
		return Bottom
	default:
		return Top
	}
}

// step returns the row/col delta towards the neighbour on side d.
func (d Direction) step() (dr, dc int) {
	switch d {
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	case Top:
		return -1, 0
	default:
		return 1, 0
	}
}

// TabType describes the cut along one edge of a piece.
type TabType int8

const (
	TabIn   TabType = -1 // blank: the edge notches into the piece
	TabFlat TabType = 0  // straight border edge
	TabOut  TabType = 1  // tab: the edge bulges out of the piece
)

// Connection is one side of a piece: which grid cell lies beyond it, whether
// the two pieces have been joined, and the shape of the cut between them.
// The neighbour cell may be outside the grid, meaning there is no neighbour.
type Connection struct {
	Direction Direction
	Row, Col  int
	Tab       TabType

	connected bool
}

// Connected reports whether the neighbour has been joined on this side.
// Once true it never becomes false.
func (c Connection) Connected() bool {
	return c.connected
}

func newConnections(row, col int) [4]Connection {
	var cs [4]Connection
	for _, d := range directions {
		dr, dc := d.step()
		cs[d] = Connection{Direction: d, Row: row + dr, Col: col + dc}
	}
	return cs
}
