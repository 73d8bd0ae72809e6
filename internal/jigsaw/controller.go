package jigsaw

// DropResult describes what a Drop did.
type DropResult uint8

const (
	DropNone      DropResult = iota // nothing was held
	DropPanned                      // a board pan ended
	DropLocked                      // the held group locked into its slots
	DropConnected                   // the held group joined a neighbour
	DropLoose                       // the held group was put down unattached
)

// String returns a short name for logs.
func (r DropResult) String() string {
	switch r {
	case DropPanned:
		return "panned"
	case DropLocked:
		return "locked"
	case DropConnected:
		return "connected"
	case DropLoose:
		return "loose"
	default:
		return "none"
	}
}

// Controller turns pointer gestures into board mutations. A gesture is
// PickUp, any number of Drags, then Drop. Between gestures the controller is
// idle. Pointer positions are in screen space.
type Controller struct {
	board   *Jigsaw
	active  *Piece
	panning bool
	panFrom Point
	// start holds the held group's pick-up positions in board units, so they
	// survive pans and zooms made during the gesture.
	start []heldStart
}

type heldStart struct {
	piece *Piece
	rel   Point
}

// NewController creates an idle controller for b.
func NewController(b *Jigsaw) *Controller {
	return &Controller{board: b}
}

// Active returns the piece being dragged, or nil.
func (c *Controller) Active() *Piece { return c.active }

// Panning reports whether the current gesture drags the whole board.
func (c *Controller) Panning() bool { return c.panning }

// Idle reports whether no gesture is in progress.
func (c *Controller) Idle() bool { return c.active == nil && !c.panning }

// PickUp starts a gesture at pt. The topmost loose piece under the pointer
// becomes active; if there is none the gesture pans the board. A finished
// puzzle ignores input. It returns the active piece, or nil.
func (c *Controller) PickUp(pt Point) *Piece {
	if c.board.Complete() {
		return nil
	}
	b := c.board
	c.active = b.TopmostAt(pt)
	if c.active == nil {
		c.panning = true
		c.panFrom = pt
		return nil
	}
	c.start = c.start[:0]
	for _, p := range b.AdjacentGroup(c.active) {
		rel := p.position.Sub(b.position).Scale(1 / b.ratio)
		c.start = append(c.start, heldStart{piece: p, rel: rel})
	}
	return c.active
}

// Drag moves the held group, or pans the board, to follow the pointer.
// The active piece is centered under the pointer; the rest of its group moves
// by the same amount so the cluster stays rigid.
func (c *Controller) Drag(pt Point) {
	switch {
	case c.active != nil:
		b := c.board
		group := b.AdjacentGroup(c.active)
		pos := pt.Sub(b.destPieceSize.Half())
		delta := pos.Sub(c.active.position)

		c.active.moveTo(pos)
		for _, p := range group {
			b.MovePieceToTop(p)
			if p != c.active {
				p.moveBy(delta)
			}
		}

	case c.panning:
		c.board.Move(pt.Sub(c.panFrom))
		c.panFrom = pt
	}
}

// Drop ends the gesture. A held group whose active piece is within the
// snapping tolerance of its slot locks in place. Otherwise the group tries to
// join neighbours, and when it does it is re-anchored on the first connector
// so the joined cluster lines up exactly.
func (c *Controller) Drop(_ Point) DropResult {
	if c.panning {
		c.panning = false
		return DropPanned
	}
	if c.active == nil {
		return DropNone
	}

	b := c.board
	active := c.active
	c.active = nil
	c.start = c.start[:0]

	group := b.AdjacentGroup(active)
	if active.nearTarget(b.offset) {
		b.LockGroup(group)
		return DropLocked
	}

	connector := b.FindConnections(group)
	if connector == nil {
		return DropLoose
	}
	b.MovePieceToTop(connector)
	for _, p := range group {
		b.MovePieceToTop(p)
		p.placeRelativeTo(connector)
	}
	// Anchored on a locked piece the cluster is already on its targets.
	if connector.locked {
		b.LockGroup(b.AdjacentGroup(active))
		return DropLocked
	}
	return DropConnected
}

// Zoom scales the board by factor about the viewport center. It may be used
// mid-gesture: a held group is pulled back under the pointer at pt, and a pan
// carries on from the same screen point.
func (c *Controller) Zoom(factor float64, pt Point) {
	c.board.Zoom(factor)
	if c.active != nil {
		c.Drag(pt)
	}
}

// Cancel abandons the current gesture without dropping. A held group goes
// back to where it was picked up; a pan keeps the distance already moved.
func (c *Controller) Cancel() {
	b := c.board
	for _, s := range c.start {
		s.piece.moveTo(b.position.Add(s.rel.Scale(b.ratio)))
	}
	c.start = c.start[:0]
	c.active = nil
	c.panning = false
}
