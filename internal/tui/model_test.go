package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/georza/internal/config"
	"github.com/Mr-Dark-debug/georza/internal/projector"
)

func sized(t *testing.T, cfg config.Config, w, h int) Model {
	t.Helper()
	next, cmd := NewModel(cfg, nil).Update(tea.WindowSizeMsg{Width: w, Height: h})
	assert.Nil(t, cmd)
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelProjectsOnResize(t *testing.T) {
	m := sized(t, config.DefaultConfig(), 120, 40)

	require.NoError(t, m.frameErr)
	assert.Len(t, m.Frame().Bars, 10)
	assert.Empty(t, m.Frame().Skipped)

	cols, rows := m.sectionSize()
	assert.Equal(t, 71, cols)
	assert.Equal(t, 35, rows)
	assert.Equal(t, float64(cols), m.Frame().View.Width)
}

func TestModelAdjustsActiveParameter(t *testing.T) {
	m := sized(t, config.DefaultConfig(), 120, 40)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 3501.0, m.Config().Layer.TopDepth)
	assert.Contains(t, m.statusMsg, "Depth")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftLeft})
	assert.Equal(t, 3491.0, m.Config().Layer.TopDepth)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2050.0, m.Config().Layer.V1)
}

func TestModelReportsLayerFitting(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Layer.TopDepth = 9500
	m := sized(t, cfg, 120, 40)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 9500.0, m.Config().Layer.TopDepth)
	assert.Contains(t, m.statusMsg, "limited")
}

func TestModelControlSelectionBounds(t *testing.T) {
	m := sized(t, config.DefaultConfig(), 120, 40)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.activeControl)

	for range config.Params {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, len(config.Params)-1, m.activeControl)
}

func TestModelBarSelection(t *testing.T) {
	m := sized(t, config.DefaultConfig(), 120, 40)

	m = press(t, m, runeKey('['))
	assert.Equal(t, 0, m.selectedBar)

	m = press(t, m, runeKey(']'), runeKey(']'))
	assert.Equal(t, 2, m.selectedBar)

	bar, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, 2, bar.Index)
	assert.InDelta(t, 1500, bar.Offset, 1e-9)
}

func TestModelBarCountAndReset(t *testing.T) {
	m := sized(t, config.DefaultConfig(), 120, 40)

	m = press(t, m, runeKey('+'))
	assert.Equal(t, 11, m.Config().Bars)
	assert.Len(t, m.Frame().Bars, 11)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, runeKey('r'))
	assert.Equal(t, config.DefaultConfig(), m.Config())
	assert.Len(t, m.Frame().Bars, 10)
}

func TestModelQuit(t *testing.T) {
	m := sized(t, config.DefaultConfig(), 120, 40)
	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelView(t *testing.T) {
	assert.Equal(t, "Initializing...", NewModel(config.DefaultConfig(), nil).View())

	m := sized(t, config.DefaultConfig(), 120, 40)
	out := m.View()
	assert.Contains(t, out, "GEORZA")
	assert.Contains(t, out, "Parameters")
	assert.Contains(t, out, "Section")
	assert.Contains(t, out, "Detail")

	narrow := sized(t, config.DefaultConfig(), 50, 30)
	out = narrow.View()
	assert.Contains(t, out, "Parameters")
	assert.NotContains(t, out, "Detail")

	narrow = press(t, narrow, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, narrow.View(), "Section")
}

func TestRasterize(t *testing.T) {
	top := projector.ErrorBarSample{Lines: [12]float64{
		4.5, 2.2, 6.5, 2.2,
		4.5, 4.0, 6.5, 4.0,
		5.5, 4.0, 5.5, 2.2,
	}}
	bottom := projector.ErrorBarSample{Lines: [12]float64{
		8, 5.5, 9, 5.5,
		8, 5.5, 9, 5.5,
		8.5, 5.5, 8.5, 5.5,
	}}
	frame := projector.Frame{
		View:  projector.View{Width: 12, Height: 8},
		Layer: projector.Rect{X: 1, Y: 5, Width: 10, Height: 1},
		Bars:  []projector.BarPair{{Index: 0, Top: top, Bottom: bottom}},
	}

	got := rasterize(frame, -1).plain()
	want := []string{
		"┌──────────┐",
		"│          │",
		"│   ─┼─    │",
		"│    │     │",
		"│   ─┼─    │",
		"│░░░░░░░┼─░│",
		"│          │",
		"└──────────┘",
	}
	assert.Equal(t, strings.Join(want, "\n"), strings.Join(got, "\n"))
}

func TestGridClipsToFrame(t *testing.T) {
	g := newGrid(6, 4)
	g.box()
	g.hline(-5, 20, 1, cellTopBar)
	assert.Equal(t, "│────│", g.plain()[1])
	g.vline(2, -3, 10, cellTopBar)
	assert.Equal(t, "┌────┐", g.plain()[0])
	assert.Equal(t, "│─┼──│", g.plain()[1])
}

// Slider extremes project bars tens of millions of pixels tall.
func TestRasterizeExtremeSpans(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Layer.V1, cfg.Layer.V2 = 6000, 6000
	cfg.Layer.TopDepth, cfg.Layer.Thickness = 9000, 1000
	cfg.Layer.PeakFrequency, cfg.Layer.MaxOffset = 8, 700
	cfg.Bars = 50

	frame, err := projector.Project(cfg.Layer, cfg.Bars, sectionView(cfg, 120, 40))
	require.NoError(t, err)
	require.NotEmpty(t, frame.Bars)
	require.Greater(t, frame.Bars[0].Top.StdDevPixels, 1e6)

	start := time.Now()
	g := rasterize(frame, 0)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.Len(t, g.plain(), 40)

	// The first bar's vertical run fills every interior row of its column.
	col := cellOf(frame.Bars[0].Top.Lines[8])
	for y := 1; y < g.h-1; y++ {
		assert.Contains(t, "│┼", string(g.cells[y][col].r), "row %d", y)
	}
}

func TestGridLinesIgnoreNonFiniteSpans(t *testing.T) {
	g := newGrid(6, 4)
	g.box()
	g.vline(2, math.Inf(-1), math.Inf(1), cellTopBar)
	g.hline(math.Inf(-1), math.Inf(1), 1, cellTopBar)
	g.hline(0, 5, math.NaN(), cellTopBar)
	g.vline(3, 1e300, 2e300, cellTopBar)
	assert.Equal(t, []string{
		"┌────┐",
		"│─┼──│",
		"│ │  │",
		"└────┘",
	}, g.plain())
}
