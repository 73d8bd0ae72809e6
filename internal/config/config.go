package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name, e.g. JIGSAW_ROWS.
const Prefix = "JIGSAW"

var (
	// ErrNoImage is returned when no image path was given.
	ErrNoImage = errors.New("config: image path is required")
	// ErrBadGrid is returned for a non-positive row or column count.
	ErrBadGrid = errors.New("config: rows and cols must be positive")
	// ErrUnknownPreset is returned for a piece count with no preset grid.
	ErrUnknownPreset = errors.New("config: no preset for piece count")
)

type Config struct {
	Image        string `envconfig:"IMAGE"`
	Rows         int    `envconfig:"ROWS" default:"4"`
	Cols         int    `envconfig:"COLS" default:"6"`
	Pieces       int    `envconfig:"PIECES" default:"0"`
	Seed         int64  `envconfig:"SEED" default:"0"`
	WindowWidth  int    `envconfig:"WINDOW_WIDTH" default:"1280"`
	WindowHeight int    `envconfig:"WINDOW_HEIGHT" default:"800"`
	Preview      bool   `envconfig:"PREVIEW" default:"false"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	MaxImageSide int    `envconfig:"MAX_IMAGE_SIDE" default:"2048"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the fields needed to start a game.
func (c *Config) Validate() error {
	if c.Image == "" {
		return ErrNoImage
	}
	if c.Pieces > 0 {
		if _, ok := presets[c.Pieces]; !ok {
			return fmt.Errorf("%w %d (have %s)", ErrUnknownPreset, c.Pieces, presetList())
		}
		return nil
	}
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrBadGrid, c.Rows, c.Cols)
	}
	return nil
}

// Grid is a rows x cols cut.
type Grid struct {
	Rows, Cols int
}

// presets maps a piece count to its landscape grid.
var presets = map[int]Grid{
	24:  {4, 6},
	35:  {5, 7},
	54:  {6, 9},
	77:  {7, 11},
	96:  {8, 12},
	150: {10, 15},
	204: {12, 17},
	320: {16, 20},
}

// Presets returns the available piece counts in ascending order.
func Presets() []int {
	out := make([]int, 0, len(presets))
	for n := range presets {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

func presetList() string {
	var parts []string
	for _, n := range Presets() {
		parts = append(parts, fmt.Sprint(n))
	}
	return strings.Join(parts, ", ")
}

// GridFor resolves the grid for an image of the given size. A piece-count
// preset wins over explicit rows and cols. Preset grids are landscape and are
// turned on their side for portrait images.
func (c *Config) GridFor(imgW, imgH int) Grid {
	g, ok := presets[c.Pieces]
	if !ok {
		return Grid{Rows: c.Rows, Cols: c.Cols}
	}
	if imgH > imgW {
		g.Rows, g.Cols = g.Cols, g.Rows
	}
	return g
}

// SlogLevel parses LogLevel, falling back to info for unknown values.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
