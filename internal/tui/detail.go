package tui

import (
	"fmt"
	"strings"

	"github.com/Mr-Dark-debug/georza/internal/projector"
	"github.com/Mr-Dark-debug/georza/internal/resolution"
	"github.com/Mr-Dark-debug/georza/pkg/units"
)

// renderDetail renders the numbers behind the selected error bar.
func renderDetail(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	if m.activePane == PaneDetail {
		titleStyle = panelTitleStyle
	}
	title := titleStyle.Render("Detail")

	bar, ok := m.selected()
	if !ok {
		msg := "No evaluated offsets."
		if n := len(m.frame.Skipped); n > 0 {
			msg = fmt.Sprintf("All %d offsets failed: %s", n, m.frame.Skipped[0].Reason)
		}
		return title + "\n\n" + emptyStateStyle.Render(truncate(msg, width*2))
	}

	ev := bar.Evaluation
	var lines []string

	lines = append(lines, title+dimStyle.Render(
		fmt.Sprintf("  bar %d/%d", bar.Index+1, m.cfg.Bars)))
	lines = append(lines, "")

	// ── Geometry ──

	lines = append(lines, detailRow("Offset", units.FormatMeters(ev.Offset)))
	lines = append(lines, detailRow("t0", pair(units.FormatSeconds, ev.ZeroOffset.Top, ev.ZeroOffset.Bottom)))
	lines = append(lines, detailRow("t(x)", pair(units.FormatSeconds, ev.Times.Top, ev.Times.Bottom)))
	lines = append(lines, detailRow("Vrms", pair(units.FormatVelocity, ev.Velocities.Top, ev.Velocities.Bottom)))
	lines = append(lines, detailRow("ΔV", pair(units.FormatVelocity, ev.DeltaV.Top, ev.DeltaV.Bottom)))

	// ── Depths ──

	lines = append(lines, "")
	lines = append(lines, detailSectionStyle.Render("Depth Estimates"))
	lines = append(lines, detailRow("Top", estimate(ev.Top)))
	lines = append(lines, detailRow("Bottom", estimate(ev.Bottom)))

	sep := detailGoodStyle.Render("separable")
	if ev.Top.Bounds.Plus >= ev.Bottom.Bounds.Minus {
		sep = detailBadStyle.Render("bars overlap")
	}
	lines = append(lines, detailRow("Interfaces", sep))

	if tuning, err := resolution.VerticalResolution(m.cfg.Layer.V2, m.cfg.Layer.PeakFrequency); err == nil {
		lines = append(lines, detailRow("λ/4", units.FormatMeters(tuning)))
	}

	// ── Span across offsets ──

	barWidth := minInt(width-22, 30)
	if barWidth > 4 && len(m.frame.Bars) > 0 {
		lines = append(lines, "")
		lines = append(lines, detailSectionStyle.Render("Top ± by offset"))
		maxSpan := spanMax(m.frame.Bars)
		for _, b := range m.frame.Bars {
			style := barFillStyle
			if b.Index != bar.Index {
				style = dimStyle
			}
			lines = append(lines, renderSpanBar(
				units.FormatMeters(b.Offset), b.Evaluation.Top.Bounds.Span()/2, maxSpan/2, barWidth, style))
		}
	}

	// Truncate to available height
	if len(lines) > height {
		lines = lines[:maxInt(height, 0)]
	}

	return strings.Join(lines, "\n")
}

// renderDetailPanel wraps detail in a styled panel.
func renderDetailPanel(m *Model, width, height int) string {
	content := renderDetail(m, width-4, height-2)

	style := panelStyle
	if m.activePane == PaneDetail {
		style = panelActiveStyle
	}

	return style.Width(width).Height(height).Render(content)
}

// ── helpers ──

func detailRow(label, value string) string {
	return detailLabelStyle.Render(fmt.Sprintf("%-10s", label)) + " " + detailValueStyle.Render(value)
}

func pair(format func(float64) string, top, bottom float64) string {
	return format(top) + " / " + format(bottom)
}

func estimate(e resolution.InterfaceEstimate) string {
	return fmt.Sprintf("%s ± %s", units.FormatMeters(e.Depth), units.FormatMeters(e.Bounds.Span()/2))
}

func spanMax(bars []projector.BarPair) float64 {
	var out float64
	for _, b := range bars {
		out = max(out, b.Evaluation.Top.Bounds.Span())
	}
	return out
}
