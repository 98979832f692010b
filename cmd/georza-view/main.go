// GeoRZA viewer — draws the section and its error bars in a window.
//
// Usage:
//
//	georza-view [flags]
//
// Takes the same layer flags as georza-tui. Logs go to stderr.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/georza/internal/config"
	"github.com/Mr-Dark-debug/georza/internal/logger"
	"github.com/Mr-Dark-debug/georza/internal/viewer"
)

func main() {
	cfg := config.Load()
	config.BindFlags(flag.CommandLine, &cfg)
	flag.Parse()

	log, closeLog, err := logger.NewLogger(cfg.LogLevel, logger.WithFile(cfg.LogFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ebiten.SetWindowSize(viewer.WindowWidth, viewer.WindowHeight)
	ebiten.SetWindowTitle("GeoRZA")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info("starting viewer", zap.Stringer("layer", cfg.Layer), zap.Int("bars", cfg.Bars))

	if err := ebiten.RunGame(viewer.NewGame(cfg, log)); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("viewer exited", zap.Error(err))
		closeLog()
		os.Exit(1)
	}
}
