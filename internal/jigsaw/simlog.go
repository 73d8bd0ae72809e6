package jigsaw

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless session.
type SimLogEntry struct {
	Gesture  int
	Piece    string  // "(row,col)" or "--" for board-wide events
	Category string  // drop, lock, connect, pan, zoom, complete
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[G=042] (1,3)   drop     result          connected
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[G=%03d] %-7s %-8s %-15s %s",
		e.Gesture, e.Piece, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless session. It is
// unbounded and machine-readable, for tests and reports.
type SimLog struct {
	entries []SimLogEntry
}

// NewSimLog creates an empty SimLog.
func NewSimLog() *SimLog {
	return &SimLog{}
}

// Add records a new entry.
func (sl *SimLog) Add(gesture int, piece, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Gesture:  gesture,
		Piece:    piece,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

func (e SimLogEntry) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.matches(category, key) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match category and key.
func (sl *SimLog) Count(category, key string) int {
	n := 0
	for _, e := range sl.entries {
		if e.matches(category, key) {
			n++
		}
	}
	return n
}

// LastOf returns the most recent entry matching category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if sl.entries[i].matches(category, key) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether an entry matches category and key and its value
// contains valueSubstr.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if e.matches(category, key) && strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// ForPiece returns the history of one piece, by label.
func (sl *SimLog) ForPiece(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Piece == label {
			out = append(out, e)
		}
	}
	return out
}

// InGesture returns the entries recorded during gesture g.
func (sl *SimLog) InGesture(g int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Gesture == g {
			out = append(out, e)
		}
	}
	return out
}

// Format returns the full log, one line per entry, for t.Log output.
func (sl *SimLog) Format() string {
	lines := make([]string, 0, len(sl.entries))
	for _, e := range sl.entries {
		lines = append(lines, e.String()+"\n")
	}
	return strings.Join(lines, "")
}
