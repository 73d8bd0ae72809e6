package jigsaw

// Zoom level bounds and per-step factors. One step in followed by one step
// out returns to the same scale.
const (
	MinZoomLevel = -5
	MaxZoomLevel = 5

	ZoomInStep  = 10.0 / 9.0
	ZoomOutStep = 9.0 / 10.0
)

// Settings holds the player's board view options for one session.
type Settings struct {
	// Zoom is the cumulative zoom relative to the default layout.
	Zoom float64
	// ZoomLevel counts zoom steps; it stays within [MinZoomLevel, MaxZoomLevel].
	ZoomLevel int
	// Preview draws the whole image faintly inside the board.
	Preview bool
	// FullImage shows the reference image beside the board.
	FullImage bool
	// Fullscreen asks the front-end to take over the screen.
	Fullscreen bool
	// Timer shows the stopwatch.
	Timer bool
}

// DefaultSettings returns the settings a new session starts with.
func DefaultSettings() Settings {
	return Settings{Zoom: 1, Timer: true}
}

// ZoomIn advances one level and returns the factor to apply to the board.
// At the maximum level it changes nothing and reports false.
func (s *Settings) ZoomIn() (float64, bool) {
	if s.ZoomLevel >= MaxZoomLevel {
		return 1, false
	}
	s.ZoomLevel++
	s.Zoom *= ZoomInStep
	return ZoomInStep, true
}

// ZoomOut steps back one level and returns the factor to apply to the board.
// At the minimum level it changes nothing and reports false.
func (s *Settings) ZoomOut() (float64, bool) {
	if s.ZoomLevel <= MinZoomLevel {
		return 1, false
	}
	s.ZoomLevel--
	s.Zoom *= ZoomOutStep
	return ZoomOutStep, true
}

// ResetZoom returns to level zero without touching the other options.
func (s *Settings) ResetZoom() {
	s.Zoom = 1
	s.ZoomLevel = 0
}
