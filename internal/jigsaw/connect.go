package jigsaw

// AdjacentGroup returns every piece joined to p through connected edges,
// p included and first. The walk is depth first over Left, Right, Top, Bottom
// and visits each piece once, so the order is stable for a given board state.
func (j *Jigsaw) AdjacentGroup(p *Piece) []*Piece {
	visited := make([]bool, len(j.grid))
	group := make([]*Piece, 0, 4)
	stack := []*Piece{p}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx := j.index(cur)
		if visited[idx] {
			continue
		}
		visited[idx] = true
		group = append(group, cur)

		// Push in reverse so Left is popped first.
		for i := len(directions) - 1; i >= 0; i-- {
			d := directions[i]
			if !cur.connections[d].connected {
				continue
			}
			if n := j.Neighbor(cur, d); n != nil && !visited[j.index(n)] {
				stack = append(stack, n)
			}
		}
	}
	return group
}

func (j *Jigsaw) index(p *Piece) int {
	return p.Row*j.size.Cols + p.Col
}

// Connect joins p to the first neighbour, in Left, Right, Top, Bottom order,
// that sits close enough to fit against it. Both sides of the edge are marked
// connected and the neighbour is returned. At most one connection is made per
// call; nil means nothing fitted.
func (j *Jigsaw) Connect(p *Piece) *Piece {
	for _, d := range directions {
		if p.connections[d].connected {
			continue
		}
		n := j.Neighbor(p, d)
		if n == nil || !j.fits(p, n, d) {
			continue
		}
		p.connect(d)
		n.connect(d.Opposite())
		return n
	}
	return nil
}

// fits reports whether neighbour n lies within the snapping tolerance of the
// slot on side d of p, using both pieces' current positions.
func (j *Jigsaw) fits(p, n *Piece, d Direction) bool {
	w, h := j.destPieceSize.Width, j.destPieceSize.Height
	pp, np := p.position, n.position
	off := j.offset

	switch d {
	case Left:
		return abs(pp.X-(np.X+w)) <= off.X && abs(pp.Y-np.Y) <= off.Y
	case Right:
		return abs(np.X-(pp.X+w)) <= off.X && abs(pp.Y-np.Y) <= off.Y
	case Top:
		return abs(pp.Y-(np.Y+h)) <= off.Y && abs(pp.X-np.X) <= off.X
	default:
		return abs(np.Y-(pp.Y+h)) <= off.Y && abs(pp.X-np.X) <= off.X
	}
}

// FindConnections tries Connect on every member of group in order. Every
// connection found is kept; only the first connector is returned, for use as
// the anchor when repositioning the group.
func (j *Jigsaw) FindConnections(group []*Piece) *Piece {
	var connector *Piece
	for _, p := range group {
		if n := j.Connect(p); n != nil && connector == nil {
			connector = n
		}
	}
	return connector
}
