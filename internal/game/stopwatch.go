package game

import (
	"fmt"
	"time"
)

// Stopwatch counts game ticks while running. It is driven from Update so it
// pauses with the game loop and stops for good when the puzzle is finished.
type Stopwatch struct {
	tps     int
	ticks   int
	running bool
}

// NewStopwatch creates a running stopwatch for a loop at tps ticks per second.
func NewStopwatch(tps int) *Stopwatch {
	if tps <= 0 {
		tps = 60
	}
	return &Stopwatch{tps: tps, running: true}
}

// Tick advances the stopwatch by one tick if it is running.
func (s *Stopwatch) Tick() {
	if s.running {
		s.ticks++
	}
}

// Stop freezes the elapsed time.
func (s *Stopwatch) Stop() { s.running = false }

// Running reports whether the stopwatch still counts.
func (s *Stopwatch) Running() bool { return s.running }

// Elapsed returns the counted time, truncated to whole seconds.
func (s *Stopwatch) Elapsed() time.Duration {
	return time.Duration(s.ticks/s.tps) * time.Second
}

// String formats the elapsed time as hh:mm:ss.
func (s *Stopwatch) String() string {
	return formatClock(s.Elapsed())
}

func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
