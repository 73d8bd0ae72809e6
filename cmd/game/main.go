package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/jigsaw/internal/config"
	"github.com/Garsondee/jigsaw/internal/game"
	"github.com/Garsondee/jigsaw/internal/imageload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.Image, "image", cfg.Image, "path to the puzzle image (or pass it as the first argument)")
	flag.IntVar(&cfg.Rows, "rows", cfg.Rows, "rows of pieces")
	flag.IntVar(&cfg.Cols, "cols", cfg.Cols, "columns of pieces")
	flag.IntVar(&cfg.Pieces, "pieces", cfg.Pieces, fmt.Sprintf("piece-count preset, overrides rows/cols (one of %v)", config.Presets()))
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "scatter and tab seed (0 = random)")
	flag.BoolVar(&cfg.Preview, "preview", cfg.Preview, "start with the faint image preview on")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()
	if cfg.Image == "" && flag.NArg() > 0 {
		cfg.Image = flag.Arg(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	img, err := imageload.Load(cfg.Image, cfg.MaxImageSide)
	if err != nil {
		logger.Error("failed to load image", "path", cfg.Image, "error", err)
		os.Exit(1)
	}
	b := img.Bounds()
	logger.Info("image loaded", "path", cfg.Image, "format", img.Format, "width", b.Dx(), "height", b.Dy(), "scaled", img.Scaled)

	grid := cfg.GridFor(b.Dx(), b.Dy())
	g, err := game.New(img, game.Options{
		Rows:    grid.Rows,
		Cols:    grid.Cols,
		Seed:    cfg.Seed,
		Preview: cfg.Preview,
		Width:   cfg.WindowWidth,
		Height:  cfg.WindowHeight,
	}, logger)
	if err != nil {
		logger.Error("failed to start puzzle", "error", err)
		os.Exit(1)
	}

	ebiten.SetWindowTitle("Jigsaw - " + filepath.Base(cfg.Image))
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		logger.Error("game exited", "error", err)
		os.Exit(1)
	}
}
