// Package tui implements the GeoRZA terminal user interface.
//
// It is a thin front end over internal/config and internal/projector,
// built with Charmbracelet's BubbleTea and Lipgloss. Each keypress
// updates a config.Config snapshot and re-projects the error bars onto a
// character grid.
//
// Component architecture:
//
//	model.go    — root model, key routing, recomputation, layout
//	theme.go    — centralized color + style definitions
//	header.go   — top bar with layer summary, footer with status + hints
//	controls.go — parameter sliders
//	section.go  — cross-section rasterized from a projector.Frame
//	detail.go   — numbers behind the selected error bar
//	helpers.go  — sliders, span bars, truncation, etc.
package tui
