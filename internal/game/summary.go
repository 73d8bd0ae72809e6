package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/jigsaw/internal/jigsaw"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Summary describes a session for the end screen and the clipboard.
type Summary struct {
	SessionID string
	Rows      int
	Cols      int
	Progress  jigsaw.Progress
	Elapsed   time.Duration
}

// Lines returns the summary as display lines.
func (s Summary) Lines() []string {
	state := "in progress"
	if s.Progress.Done() {
		state = "solved"
	}
	return []string{
		fmt.Sprintf("Puzzle %s", state),
		fmt.Sprintf("Pieces: %d (%dx%d)", s.Progress.Total, s.Rows, s.Cols),
		fmt.Sprintf("Placed: %d (%.0f%%)", s.Progress.Locked, s.Progress.Percent()),
		fmt.Sprintf("Time:   %s", formatClock(s.Elapsed)),
		fmt.Sprintf("Session %s", s.SessionID),
	}
}

// String joins the lines for the clipboard.
func (s Summary) String() string {
	return strings.Join(s.Lines(), "\n")
}

// copySummary puts the summary text on the system clipboard.
func copySummary(s Summary) error {
	if err := writeClipboard(s.String()); err != nil {
		return fmt.Errorf("copy summary: %w", err)
	}
	return nil
}
