// GeoRZA TUI — interactive depth-uncertainty explorer for the terminal.
//
// Usage:
//
//	georza-tui [flags]
//
// Flags:
//
//	--depth, --thickness, --v1, --v2, --freq, --max-offset   Starting layer
//	--bars                                                   Sampled offsets
//	--log-file                                               Write logs here (default: none)
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/georza/internal/config"
	"github.com/Mr-Dark-debug/georza/internal/logger"
	"github.com/Mr-Dark-debug/georza/internal/tui"
)

func main() {
	cfg := config.Load()
	config.BindFlags(flag.CommandLine, &cfg)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	// The terminal belongs to the UI, so logs only go to --log-file.
	log, closeLog, err := logger.Discard(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", cfg.LogFile, err)
		os.Exit(1)
	}
	defer closeLog()

	log.Info("starting tui", zap.Stringer("layer", cfg.Layer), zap.Int("bars", cfg.Bars))

	model := tui.NewModel(cfg, log)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Error("tui exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}
