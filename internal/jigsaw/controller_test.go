package jigsaw

import (
	"math"
	"testing"
)

// center returns the screen point at the middle of p.
func center(b *Jigsaw, p *Piece) Point {
	return p.Position().Add(b.DestPieceSize().Half())
}

func nearPoint(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

// dragTo performs a full gesture that leaves p's top-left at pos.
func dragTo(t *testing.T, c *Controller, b *Jigsaw, p *Piece, pos Point) DropResult {
	t.Helper()
	if got := c.PickUp(center(b, p)); got != p {
		t.Fatalf("expected to pick up %s, got %v", p.Label(), got)
	}
	pt := pos.Add(b.DestPieceSize().Half())
	c.Drag(pt)
	return c.Drop(pt)
}

// --- Scenario A: a single drop within tolerance locks only that piece ---

func TestController_DropNearTargetLocks(t *testing.T) {
	b := newBoard(t, 2, 2)
	parkAll(b)
	c := NewController(b)
	p := b.Piece(0, 0)

	res := dragTo(t, c, b, p, p.Target().Add(Point{X: 30, Y: -20}))
	if res != DropLocked {
		t.Fatalf("expected %s, got %s", DropLocked, res)
	}
	if !p.Locked() || p.Position() != p.Target() {
		t.Fatalf("piece should be locked on its target, pos=%+v target=%+v", p.Position(), p.Target())
	}
	for _, q := range b.grid[1:] {
		if q.Locked() {
			t.Fatalf("%s should remain loose", q.Label())
		}
	}
	if b.Pieces()[0] != p {
		t.Fatal("a locked piece should paint below loose pieces")
	}
	if prog := b.Progress(); prog.Locked != 1 || prog.Total != 4 {
		t.Fatalf("expected progress 1/4, got %d/%d", prog.Locked, prog.Total)
	}
	if !c.Idle() {
		t.Fatal("controller should be idle after a drop")
	}
}

func TestController_DropPastToleranceStaysLoose(t *testing.T) {
	b := newBoard(t, 2, 2)
	parkAll(b)
	c := NewController(b)
	p := b.Piece(1, 1)

	res := dragTo(t, c, b, p, p.Target().Add(Point{X: 76, Y: 0}))
	if res != DropLoose {
		t.Fatalf("expected %s, got %s", DropLoose, res)
	}
	if p.Locked() {
		t.Fatal("piece outside tolerance must not lock")
	}
}

// --- Scenario B: connected pieces move together ---

func TestController_ConnectedPiecesDragTogether(t *testing.T) {
	b := newBoard(t, 2, 2)
	parkAll(b)
	a, r := b.Piece(0, 0), b.Piece(0, 1)
	a.moveTo(Point{X: 2000, Y: 2000})
	r.moveTo(Point{X: 2310, Y: 2010})
	if b.Connect(a) != r {
		t.Fatal("expected (0,0) and (0,1) to connect")
	}

	c := NewController(b)
	if c.PickUp(Point{X: 2150, Y: 2150}) != a {
		t.Fatal("expected to pick up (0,0)")
	}
	c.Drag(Point{X: 2250, Y: 2100})

	if a.Position() != (Point{X: 2100, Y: 1950}) {
		t.Fatalf("active piece not centered under pointer: %+v", a.Position())
	}
	if r.Position() != (Point{X: 2410, Y: 1960}) {
		t.Fatalf("connected piece did not follow by the same vector: %+v", r.Position())
	}
	top := b.Pieces()[len(b.Pieces())-2:]
	if (top[0] != a && top[1] != a) || (top[0] != r && top[1] != r) {
		t.Fatalf("dragged group should paint on top, got %v", labels(top))
	}
}

func TestController_DropNextToNeighbourConnectsAndAligns(t *testing.T) {
	b := newBoard(t, 2, 2)
	parkAll(b)
	a, r := b.Piece(0, 0), b.Piece(0, 1)
	r.moveTo(Point{X: 2310, Y: 2010})
	c := NewController(b)

	res := dragTo(t, c, b, a, Point{X: 2000, Y: 2040})
	if res != DropConnected {
		t.Fatalf("expected %s, got %s", DropConnected, res)
	}
	if got := r.Position().Sub(a.Position()); got != (Point{X: 300, Y: 0}) {
		t.Fatalf("group not re-anchored on the connector, offset %+v", got)
	}
	if r.Position() != (Point{X: 2310, Y: 2010}) {
		t.Fatalf("connector should not move, got %+v", r.Position())
	}
	if a.Locked() || r.Locked() {
		t.Fatal("nothing should lock away from the board")
	}
}

func TestController_ConnectingToLockedPieceLocksGroup(t *testing.T) {
	b := newBoard(t, 2, 2)
	parkAll(b)
	anchor := b.Piece(1, 1)
	b.LockGroup([]*Piece{anchor})

	// A loose pair, slightly out of line: (0,0) is too far from its slot to
	// lock, but (0,1) sits within tolerance above the locked (1,1).
	a, r := b.Piece(0, 0), b.Piece(0, 1)
	a.moveTo(a.Target().Add(Point{X: 100}))
	r.moveTo(r.Target().Add(Point{X: 10}))
	join(b, a, Right)

	c := NewController(b)
	if c.PickUp(center(b, a)) != a {
		t.Fatal("expected to pick up (0,0)")
	}
	c.Drag(center(b, a))
	if res := c.Drop(center(b, a)); res != DropLocked {
		t.Fatalf("expected %s, got %s", DropLocked, res)
	}
	for _, p := range []*Piece{a, r} {
		if !p.Locked() || p.Position() != p.Target() {
			t.Fatalf("%s should be locked on its target", p.Label())
		}
	}
	if b.Progress().Locked != 3 {
		t.Fatalf("expected 3 locked, got %d", b.Progress().Locked)
	}
}

// --- Scenario C: completion fires exactly once ---

func TestController_CompletionFiresOnce(t *testing.T) {
	b := newBoard(t, 3, 3)
	parkAll(b)
	c := NewController(b)

	done := 0
	locks := 0
	b.OnComplete(func(prog Progress) {
		done++
		if !prog.Done() || prog.Locked != 9 {
			t.Fatalf("completion reported progress %d/%d", prog.Locked, prog.Total)
		}
	})
	b.OnPieceLocked(func(*Piece, Progress) { locks++ })

	for i, p := range b.grid {
		if res := dragTo(t, c, b, p, p.Target()); res != DropLocked {
			t.Fatalf("%s: expected %s, got %s", p.Label(), DropLocked, res)
		}
		if i < len(b.grid)-1 && (done != 0 || b.Complete()) {
			t.Fatalf("completion fired early, after %d locks", i+1)
		}
	}
	if done != 1 || !b.Complete() {
		t.Fatalf("expected exactly one completion, got %d", done)
	}
	if locks != 9 {
		t.Fatalf("expected 9 lock notifications, got %d", locks)
	}

	if n := b.LockGroup(b.grid); n != 0 || done != 1 {
		t.Fatalf("relocking must be a no-op, got n=%d done=%d", n, done)
	}
	if c.PickUp(Point{X: 300, Y: 300}) != nil || !c.Idle() {
		t.Fatal("a finished puzzle should ignore input")
	}
}

func TestController_LockedPiecesCannotBePickedUp(t *testing.T) {
	b := newBoard(t, 2, 2)
	parkAll(b)
	p := b.Piece(0, 1)
	b.LockGroup([]*Piece{p})
	c := NewController(b)

	if got := c.PickUp(center(b, p)); got != nil {
		t.Fatalf("picked up locked piece %s", got.Label())
	}
	if !c.Panning() {
		t.Fatal("pressing on a locked piece should pan the board")
	}
	c.Drag(center(b, p).Add(Point{X: 40, Y: 40}))
	if c.Drop(Point{}) != DropPanned {
		t.Fatal("expected the pan to end")
	}
	if p.Position() != p.Target() {
		t.Fatal("locked piece drifted off its slot during a pan")
	}
}

func TestController_PanMovesBoard(t *testing.T) {
	b := newBoard(t, 2, 2)
	parkAll(b)
	c := NewController(b)
	before := b.Position()
	loose := b.Piece(1, 0).Position()

	if c.PickUp(Point{X: 5, Y: 5}) != nil {
		t.Fatal("expected empty space")
	}
	c.Drag(Point{X: 15, Y: 5})
	c.Drag(Point{X: 25, Y: 15})
	if res := c.Drop(Point{X: 25, Y: 15}); res != DropPanned {
		t.Fatalf("expected %s, got %s", DropPanned, res)
	}
	if b.Position() != before.Add(Point{X: 20, Y: 10}) {
		t.Fatalf("board moved to %+v", b.Position())
	}
	if b.Piece(1, 0).Position() != loose.Add(Point{X: 20, Y: 10}) {
		t.Fatal("loose pieces should pan with the board")
	}
}

func TestController_DropWithoutGesture(t *testing.T) {
	b := newBoard(t, 2, 2)
	c := NewController(b)
	if res := c.Drop(Point{}); res != DropNone {
		t.Fatalf("expected %s, got %s", DropNone, res)
	}
	c.PickUp(Point{X: 5, Y: 5})
	c.Cancel()
	if !c.Idle() {
		t.Fatal("cancel should leave the controller idle")
	}
}

func TestController_CancelRestoresHeldGroup(t *testing.T) {
	b := newBoard(t, 2, 2)
	parkAll(b)
	c := NewController(b)
	p, q := b.Piece(0, 0), b.Piece(0, 1)
	q.moveTo(p.Position().Add(Point{X: b.DestPieceSize().Width}))
	join(b, p, Right)
	startP, startQ := p.Position(), q.Position()

	if c.PickUp(center(b, p)) != p {
		t.Fatal("expected to pick up (0,0)")
	}
	c.Drag(Point{X: -100, Y: -100})
	if p.Position() == startP {
		t.Fatal("drag should have moved the piece")
	}
	c.Cancel()

	if !c.Idle() {
		t.Fatal("cancel should leave the controller idle")
	}
	if !nearPoint(p.Position(), startP) || !nearPoint(q.Position(), startQ) {
		t.Fatalf("group not restored: (0,0) at %+v want %+v, (0,1) at %+v want %+v",
			p.Position(), startP, q.Position(), startQ)
	}
}

func TestController_CancelAfterZoomRestoresScaledStart(t *testing.T) {
	b := newBoard(t, 2, 2)
	parkAll(b)
	c := NewController(b)
	p := b.Piece(1, 1)
	p.moveTo(Point{X: 700, Y: 650})

	if c.PickUp(center(b, p)) != p {
		t.Fatal("expected to pick up (1,1)")
	}
	c.Drag(Point{X: 50, Y: 60})

	// Zooming mid-gesture scales the pick-up point about the viewport center.
	want := Point{X: 700, Y: 650}.ScaleAbout(b.Viewport().Center(), 2)
	b.Zoom(2)
	c.Cancel()

	if got := p.Position(); !nearPoint(got, want) {
		t.Fatalf("cancel after zoom put the piece at %+v, want %+v", got, want)
	}
}

func TestController_ZoomWhileHoldingKeepsGroupUnderPointer(t *testing.T) {
	b := newBoard(t, 2, 2)
	parkAll(b)
	c := NewController(b)
	p, q := b.Piece(0, 0), b.Piece(0, 1)
	q.moveTo(p.Position().Add(Point{X: b.DestPieceSize().Width}))
	join(b, p, Right)

	if c.PickUp(center(b, p)) != p {
		t.Fatal("expected to pick up (0,0)")
	}
	pt := Point{X: 400, Y: 300}
	c.Drag(pt)

	c.Zoom(ZoomInStep, pt)
	if c.Idle() {
		t.Fatal("zooming must not end the gesture")
	}
	if got := center(b, p); !nearPoint(got, pt) {
		t.Fatalf("held piece centered at %+v after zoom, want %+v", got, pt)
	}
	want := p.Position().Add(Point{X: b.DestPieceSize().Width})
	if !nearPoint(q.Position(), want) {
		t.Fatalf("group lost its shape: (0,1) at %+v, want %+v", q.Position(), want)
	}
	if res := c.Drop(pt); res == DropNone {
		t.Fatal("drop after zoom should finish the held gesture")
	}
}

func TestController_ZoomWhilePanningContinuesPan(t *testing.T) {
	b := newBoard(t, 2, 2)
	c := NewController(b)
	if c.PickUp(Point{X: 5, Y: 5}) != nil {
		t.Fatal("expected empty space")
	}
	c.Zoom(ZoomOutStep, Point{X: 5, Y: 5})
	before := b.Position()
	c.Drag(Point{X: 15, Y: 25})
	if !nearPoint(b.Position(), before.Add(Point{X: 10, Y: 20})) {
		t.Fatalf("pan after zoom moved the board to %+v, want %+v", b.Position(), before.Add(Point{X: 10, Y: 20}))
	}
}
