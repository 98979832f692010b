package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/georza/pkg/units"
)

// renderHeader produces the top bar:
//
//	GEORZA  |  Layer 3.50km – 4.00km  |  2000/2200 m/s  |  65Hz  |  x ≤ 6.00km
func renderHeader(m *Model) string {
	brand := headerBrandStyle.Render("GEORZA")
	sep := headerSepStyle.Render(" │ ")
	p := m.cfg.Layer

	parts := []string{
		brand,
		sep,
		headerMetaStyle.Render(fmt.Sprintf("Layer %s – %s",
			units.FormatMeters(p.TopDepth), units.FormatMeters(p.BottomDepth()))),
		sep,
		headerMetaStyle.Render(fmt.Sprintf("%.0f/%.0f m/s", p.V1, p.V2)),
		sep,
		headerMetaStyle.Render(units.FormatFrequency(p.PeakFrequency)),
		sep,
		headerMetaStyle.Render("x ≤ " + units.FormatMeters(p.MaxOffset)),
	}

	content := strings.Join(parts, "")

	return headerBarStyle.Width(m.width).Render(content)
}

// renderFooter produces the bottom status bar with keyboard hints.
func renderFooter(m *Model) string {
	var left string
	switch {
	case len(m.frame.Skipped) > 0:
		left = statusWarnStyle.Render(fmt.Sprintf("%s  %d skipped", m.statusMsg, len(m.frame.Skipped)))
	case m.statusMsg != "":
		left = statusStyle.Render(m.statusMsg)
	}

	right := renderHints([]hint{
		{"↑↓", "param"},
		{"←→", "adjust"},
		{"[ ]", "bar"},
		{"+ -", "bars"},
		{"tab", "pane"},
		{"r", "reset"},
		{"q", "quit"},
	})

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		Render(bar)
}

type hint struct {
	key  string
	desc string
}

func renderHints(hints []hint) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts,
			hintKeyStyle.Render(h.key)+" "+hintDescStyle.Render(h.desc))
	}
	return strings.Join(parts, hintDescStyle.Render("  "))
}
