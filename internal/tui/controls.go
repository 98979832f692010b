package tui

import (
	"fmt"
	"strings"

	"github.com/Mr-Dark-debug/georza/internal/config"
)

// renderControls renders one slider row per adjustable parameter.
func renderControls(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	if m.activePane == PaneControls {
		titleStyle = panelTitleStyle
	}
	title := titleStyle.Render("Parameters") +
		dimStyle.Render(fmt.Sprintf("  %d bars", m.cfg.Bars))

	var lines []string
	lines = append(lines, title)
	lines = append(lines, "")

	const labelWidth, valueWidth = 11, 10
	trackWidth := width - labelWidth - valueWidth - 2
	if trackWidth > 40 {
		trackWidth = 40
	}

	contentHeight := height - 2

	// Scroll so the active control is visible
	scrollStart := 0
	if m.activeControl >= contentHeight {
		scrollStart = m.activeControl - contentHeight + 1
	}
	end := minInt(scrollStart+maxInt(contentHeight, 0), len(config.Params))

	for i := scrollStart; i < end; i++ {
		p := config.Params[i]
		r := config.Ranges[p]

		label := fmt.Sprintf("%-*s", labelWidth, truncate(p.String(), labelWidth))
		value := fmt.Sprintf("%*s", valueWidth, formatParam(m.cfg, p))

		if i == m.activeControl {
			marker := "▸ "
			line := controlSelectedStyle.Render(marker+label) +
				renderSlider(r.Fraction(m.cfg.Get(p)), trackWidth) +
				controlSelectedStyle.Render(value)
			lines = append(lines, line)
			continue
		}
		lines = append(lines, controlNormalStyle.Render("  "+label)+
			renderSlider(r.Fraction(m.cfg.Get(p)), trackWidth)+
			controlNormalStyle.Render(value))
	}

	return strings.Join(lines, "\n")
}

// renderControlsPanel wraps the controls in a styled panel.
func renderControlsPanel(m *Model, width, height int) string {
	content := renderControls(m, width-4, height-2)

	style := panelStyle
	if m.activePane == PaneControls {
		style = panelActiveStyle
	}

	return style.Width(width).Height(height).Render(content)
}
