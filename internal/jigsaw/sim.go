package jigsaw

import (
	"fmt"
	"math/rand"
)

// Sim is a headless session harness: a board, a controller and a scripted
// player that issues pointer gestures. It has no rendering dependency and
// supports deterministic seeding and structured logging. Tests and the
// headless report drive the engine through it.
type Sim struct {
	Board    *Jigsaw
	Ctrl     *Controller
	Settings Settings
	SimLog   *SimLog
	// Gesture counts completed pointer gestures and zoom steps.
	Gesture int

	cfg      Config
	viewport Viewport
	seed     int64
	skill    float64
	rng      *rand.Rand
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // grid, image, viewport, seed; applied first
	simOptBoard                      // piece placement, once the board exists
)

// SimOption is a builder function applied to a Sim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*Sim)
}

// WithGrid sets the puzzle's rows and columns.
func WithGrid(rows, cols int) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.cfg.Rows = rows
		s.cfg.Cols = cols
	}}
}

// WithImageSize sets the source image size in pixels.
func WithImageSize(w, h float64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.cfg.ImageWidth = w
		s.cfg.ImageHeight = h
	}}
}

// WithViewport sets the screen area.
func WithViewport(w, h float64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.viewport = Viewport{Width: w, Height: h}
	}}
}

// WithSimSeed sets the RNG seed for the layout and the scripted player.
func WithSimSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.seed = seed
	}}
}

// WithSkill sets how precisely the scripted player drops pieces, in [0, 1].
// At 1 every aimed drop lands exactly; lower values add jitter of up to
// (1-skill)*2 snapping tolerances.
func WithSkill(skill float64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.skill = clamp01(skill)
	}}
}

// WithPieceAt places the piece at (row, col) at the given top-left position.
func WithPieceAt(row, col int, x, y float64) SimOption {
	return SimOption{simOptBoard, func(s *Sim) {
		if p := s.Board.Piece(row, col); p != nil {
			p.moveTo(Point{X: x, Y: y})
		}
	}}
}

// WithPiecesScattered moves every piece well away from its slot and from each
// other, in a diagonal line below-right of the board.
func WithPiecesScattered() SimOption {
	return SimOption{simOptBoard, func(s *Sim) {
		b := s.Board
		ds := b.DestPieceSize()
		for i, p := range b.grid {
			p.moveTo(Point{X: float64(i) * ds.Width * 2, Y: b.viewport.Height + float64(i)*ds.Height*2})
		}
	}}
}

// NewSim constructs a Sim from the given options in two ordered passes:
//  1. Infrastructure (grid, image, viewport, seed, skill)
//  2. Board build, then piece placement
func NewSim(opts ...SimOption) (*Sim, error) {
	s := &Sim{
		cfg:      Config{Rows: 3, Cols: 3, ImageWidth: 600, ImageHeight: 600},
		viewport: Viewport{Width: 1280, Height: 720},
		seed:     1,
		skill:    0.5,
		Settings: DefaultSettings(),
		SimLog:   NewSimLog(),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(s)
		}
	}
	s.rng = rand.New(rand.NewSource(s.seed + 7777)) // #nosec G404 -- test harness

	b, err := New(s.cfg, s.viewport, WithSeed(s.seed))
	if err != nil {
		return nil, fmt.Errorf("build sim board: %w", err)
	}
	s.Board = b
	s.Ctrl = NewController(b)
	b.OnPieceLocked(func(p *Piece, prog Progress) {
		s.SimLog.Add(s.Gesture, p.Label(), "lock", "piece", fmt.Sprintf("%d/%d", prog.Locked, prog.Total), prog.Percent())
	})
	b.OnComplete(func(prog Progress) {
		s.SimLog.Add(s.Gesture, "--", "complete", "puzzle", fmt.Sprintf("%d pieces", prog.Total), float64(s.Gesture))
	})

	for _, o := range opts {
		if o.kind == simOptBoard {
			o.fn(s)
		}
	}
	return s, nil
}

// DragPiece presses on the center of p, drags so that the piece under the
// pointer ends with its top-left at to, and releases.
func (s *Sim) DragPiece(p *Piece, to Point) DropResult {
	b := s.Board
	half := b.DestPieceSize().Half()
	grab := b.PieceRect(p).Min().Add(half)

	s.Gesture++
	held := s.Ctrl.PickUp(grab)
	if held == nil {
		s.Ctrl.Drop(grab)
		s.SimLog.Add(s.Gesture, p.Label(), "drop", "missed", "no loose piece under pointer", 0)
		return DropNone
	}
	release := to.Add(half)
	s.Ctrl.Drag(release)
	joined := make(map[string]bool)
	for _, e := range s.joinedEdges() {
		joined[e] = true
	}
	res := s.Ctrl.Drop(release)

	s.SimLog.Add(s.Gesture, held.Label(), "drop", "result", res.String(), float64(len(b.AdjacentGroup(held))))
	for _, e := range s.joinedEdges() {
		if !joined[e] {
			s.SimLog.Add(s.Gesture, held.Label(), "connect", "edge", e, 0)
		}
	}
	return res
}

// joinedEdges lists every connected grid edge once, as "(r,c)-(r,c)", in
// grid order.
func (s *Sim) joinedEdges() []string {
	var out []string
	for _, p := range s.Board.grid {
		for _, d := range []Direction{Right, Bottom} {
			if !p.Connection(d).Connected() {
				continue
			}
			if n := s.Board.Neighbor(p, d); n != nil {
				out = append(out, p.Label()+"-"+n.Label())
			}
		}
	}
	return out
}

// Pan drags the empty board from one point to another.
func (s *Sim) Pan(from, to Point) {
	s.Gesture++
	if s.Ctrl.PickUp(from) != nil {
		s.Ctrl.Cancel()
		s.SimLog.Add(s.Gesture, "--", "pan", "blocked", "piece under pointer", 0)
		return
	}
	s.Ctrl.Drag(to)
	s.Ctrl.Drop(to)
	d := to.Sub(from)
	s.SimLog.Add(s.Gesture, "--", "pan", "board", fmt.Sprintf("(%.0f,%.0f)", d.X, d.Y), 0)
}

// ZoomIn applies one zoom-in step if the level allows it.
func (s *Sim) ZoomIn() bool {
	return s.zoom(s.Settings.ZoomIn)
}

// ZoomOut applies one zoom-out step if the level allows it.
func (s *Sim) ZoomOut() bool {
	return s.zoom(s.Settings.ZoomOut)
}

func (s *Sim) zoom(step func() (float64, bool)) bool {
	s.Gesture++
	factor, ok := step()
	if !ok {
		s.SimLog.Add(s.Gesture, "--", "zoom", "clamped", fmt.Sprintf("level %d", s.Settings.ZoomLevel), 0)
		return false
	}
	s.Board.Zoom(factor)
	s.SimLog.Add(s.Gesture, "--", "zoom", "level", fmt.Sprintf("level %d", s.Settings.ZoomLevel), s.Board.Ratio())
	return true
}

// Step performs one scripted-player gesture: grab a random loose piece and
// either aim it at its slot or at the matching side of a neighbour.
func (s *Sim) Step() DropResult {
	b := s.Board
	loose := s.loosePieces()
	if len(loose) == 0 {
		return DropNone
	}
	p := loose[s.rng.Intn(len(loose))]

	// The pointer grabs whatever is on top at p's center.
	held := b.TopmostAt(b.PieceRect(p).Min().Add(b.DestPieceSize().Half()))
	if held == nil {
		held = p
	}

	var aim Point
	if n := s.looseNeighbor(held); n != nil && s.rng.Intn(2) == 0 {
		aim = n.Position().Add(held.Target().Sub(n.Target()))
	} else {
		aim = held.Target()
	}
	return s.DragPiece(p, aim.Add(s.jitter()))
}

// RunUntilComplete steps until the puzzle is finished or maxGestures is
// reached. It returns the gesture count at completion, or -1.
func (s *Sim) RunUntilComplete(maxGestures int) int {
	for s.Gesture < maxGestures {
		if s.Board.Complete() {
			return s.Gesture
		}
		s.Step()
	}
	if s.Board.Complete() {
		return s.Gesture
	}
	return -1
}

func (s *Sim) loosePieces() []*Piece {
	var out []*Piece
	for _, p := range s.Board.grid {
		if !p.locked {
			out = append(out, p)
		}
	}
	return out
}

// looseNeighbor returns a random unjoined neighbour of p, or nil.
func (s *Sim) looseNeighbor(p *Piece) *Piece {
	var cands []*Piece
	for _, d := range directions {
		if p.connections[d].connected {
			continue
		}
		if n := s.Board.Neighbor(p, d); n != nil {
			cands = append(cands, n)
		}
	}
	if len(cands) == 0 {
		return nil
	}
	return cands[s.rng.Intn(len(cands))]
}

func (s *Sim) jitter() Point {
	spread := (1 - s.skill) * 2
	off := s.Board.Offset()
	return Point{
		X: (s.rng.Float64()*2 - 1) * spread * off.X,
		Y: (s.rng.Float64()*2 - 1) * spread * off.Y,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
