package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/georza/internal/config"
	"github.com/Mr-Dark-debug/georza/pkg/units"
)

// ────────────────────────────────────────────────────────────
// Parameter rendering
// ────────────────────────────────────────────────────────────

// formatParam renders the current value of p with its unit.
func formatParam(cfg config.Config, p config.Param) string {
	return units.FormatValue(cfg.Get(p), p.Unit())
}

// renderSlider draws a fixed-width track filled to frac.
func renderSlider(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(frac*float64(width) + 0.5)
	filled = clamp(filled, 0, width)
	return sliderFillStyle.Render(strings.Repeat("━", filled)) +
		sliderEmptyStyle.Render(strings.Repeat("─", width-filled))
}

// renderSpanBar draws value as a share of maxValue, labelled with the
// value in meters.
func renderSpanBar(label string, value, maxValue float64, barWidth int, style lipgloss.Style) string {
	if maxValue <= 0 || barWidth <= 0 {
		return ""
	}
	filled := int(float64(barWidth) * value / maxValue)
	if filled < 1 && value > 0 {
		filled = 1
	}
	filled = clamp(filled, 0, barWidth)
	empty := barWidth - filled

	bar := style.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", empty))

	return fmt.Sprintf("%-6s %s %s", label, bar, units.FormatMeters(value))
}

// ────────────────────────────────────────────────────────────
// String helpers
// ────────────────────────────────────────────────────────────

// truncate cuts a string to maxLen and appends "..." if truncated.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// clamp restricts val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// maxInt returns the larger of a and b.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// minInt returns the smaller of a and b.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
