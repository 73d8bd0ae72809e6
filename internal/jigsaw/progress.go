package jigsaw

// Progress counts locked pieces.
type Progress struct {
	Locked int
	Total  int
}

// Percent returns Locked/Total as a percentage in [0, 100].
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Locked) / float64(p.Total) * 100
}

// Done reports whether every piece is locked.
func (p Progress) Done() bool {
	return p.Total > 0 && p.Locked == p.Total
}

// Progress returns the current lock count.
func (j *Jigsaw) Progress() Progress {
	return Progress{Locked: j.locked, Total: len(j.grid)}
}

// Complete reports whether every piece has been locked.
func (j *Jigsaw) Complete() bool {
	return j.completed
}

// OnPieceLocked registers a callback fired each time a piece locks.
func (j *Jigsaw) OnPieceLocked(fn func(*Piece, Progress)) {
	j.onLock = append(j.onLock, fn)
}

// OnComplete registers a callback fired once, when the last piece locks.
func (j *Jigsaw) OnComplete(fn func(Progress)) {
	j.onDone = append(j.onDone, fn)
}

// LockGroup sends every member of group to the bottom of the paint order,
// snaps it onto its target and locks it. It returns how many pieces were
// newly locked.
func (j *Jigsaw) LockGroup(group []*Piece) int {
	n := 0
	for _, p := range group {
		j.MovePieceToBottom(p)
		if !p.snap() {
			continue
		}
		n++
		j.locked++
		prog := j.Progress()
		for _, fn := range j.onLock {
			fn(p, prog)
		}
	}
	if n > 0 && !j.completed && j.locked == len(j.grid) {
		j.completed = true
		prog := j.Progress()
		for _, fn := range j.onDone {
			fn(prog)
		}
	}
	return n
}
