package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 240
	logMaxEntries = 60
	logLineHeight = 14
)

// ActivityKind tags an activity entry for colouring.
type ActivityKind uint8

const (
	ActivityInfo ActivityKind = iota
	ActivityConnect
	ActivityLock
)

// ActivityEntry is a single line in the activity log.
type ActivityEntry struct {
	Tick    int
	Label   string // piece label, e.g. "(2,3)"
	Kind    ActivityKind
	Message string
}

// ActivityLog is a ring buffer of recent puzzle events rendered on-screen.
type ActivityLog struct {
	entries []ActivityEntry
	head    int
	count   int
}

// NewActivityLog creates an activity log with a fixed capacity.
func NewActivityLog() *ActivityLog {
	return &ActivityLog{
		entries: make([]ActivityEntry, logMaxEntries),
	}
}

// Add appends an entry to the log, overwriting the oldest when full.
func (al *ActivityLog) Add(tick int, label string, kind ActivityKind, msg string) {
	al.entries[al.head] = ActivityEntry{
		Tick:    tick,
		Label:   label,
		Kind:    kind,
		Message: msg,
	}
	al.head = (al.head + 1) % logMaxEntries
	if al.count < logMaxEntries {
		al.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (al *ActivityLog) Recent() []ActivityEntry {
	result := make([]ActivityEntry, al.count)
	for i := 0; i < al.count; i++ {
		idx := (al.head - al.count + i + logMaxEntries) % logMaxEntries
		result[i] = al.entries[idx]
	}
	return result
}

func (k ActivityKind) color() color.RGBA {
	switch k {
	case ActivityLock:
		return color.RGBA{R: 90, G: 200, B: 110, A: 255}
	case ActivityConnect:
		return color.RGBA{R: 90, G: 150, B: 230, A: 255}
	default:
		return color.RGBA{R: 170, G: 170, B: 170, A: 255}
	}
}

// Draw renders the activity panel on the right side of the screen.
func (al *ActivityLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 14, G: 14, B: 18, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 18, color.RGBA{R: 26, G: 26, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "ACTIVITY", panelX+8, 2)

	entries := al.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / logLineHeight
	if maxVisible < 0 {
		maxVisible = 0
	}
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	const recent = 3

	y := 22
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 34, G: 34, B: 48, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, e.Kind.color(), false)

		line := fmt.Sprintf("%5d %s %s", e.Tick, e.Label, e.Message)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += logLineHeight
	}
}
