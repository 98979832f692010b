package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/georza/internal/config"
	"github.com/Mr-Dark-debug/georza/internal/projector"
	"github.com/Mr-Dark-debug/georza/internal/resolution"
	"github.com/Mr-Dark-debug/georza/pkg/units"
)

// ────────────────────────────────────────────────────────────
// Pane focuses
// ────────────────────────────────────────────────────────────

// Pane represents which UI pane currently has focus.
type Pane int

const (
	PaneControls Pane = iota
	PaneSection
	PaneDetail
)

const paneCount = 3

// maxBars bounds the number of sampled offsets adjustable from the keyboard.
const maxBars = 50

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the root BubbleTea model for the GeoRZA TUI.
// Every parameter change produces a fresh projector.Frame; rendering is
// delegated to component functions in separate files.
type Model struct {
	initial config.Config
	cfg     config.Config
	opts    []resolution.Option
	log     *zap.Logger

	// Data
	frame    projector.Frame
	frameErr error

	// UI state
	activePane    Pane
	activeControl int
	selectedBar   int
	width         int
	height        int

	// Status
	statusMsg string
}

// NewModel creates a TUI model starting from cfg. A nil logger discards.
func NewModel(cfg config.Config, log *zap.Logger, opts ...resolution.Option) Model {
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		initial:   cfg,
		cfg:       cfg,
		opts:      opts,
		log:       log,
		statusMsg: "Ready",
	}
}

// Config returns the current parameter snapshot.
func (m Model) Config() config.Config { return m.cfg }

// Frame returns the most recent projection.
func (m Model) Frame() projector.Frame { return m.frame }

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recompute()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.activePane = (m.activePane + 1) % paneCount
	case "shift+tab":
		m.activePane = (m.activePane + paneCount - 1) % paneCount

	case "k", "up":
		if m.activeControl > 0 {
			m.activeControl--
		}
	case "j", "down":
		if m.activeControl < len(config.Params)-1 {
			m.activeControl++
		}

	case "l", "right":
		m.adjust(1)
	case "h", "left":
		m.adjust(-1)
	case "L", "shift+right":
		m.adjust(10)
	case "H", "shift+left":
		m.adjust(-10)

	case "]":
		m.selectBar(1)
	case "[":
		m.selectBar(-1)

	case "+", "=":
		m.setBars(m.cfg.Bars + 1)
	case "-", "_":
		m.setBars(m.cfg.Bars - 1)

	case "r":
		m.cfg = m.initial
		m.selectedBar = 0
		m.statusMsg = "Reset to defaults"
		m.recompute()
	}

	return m, nil
}

// adjust moves the active parameter by n steps and reports the value
// actually stored, which differs from the request when the layer had to
// be fitted into the displayed depth range.
func (m *Model) adjust(n int) {
	p := config.Params[m.activeControl]
	requested := config.Ranges[p].Clamp(m.cfg.Get(p) + float64(n)*config.Ranges[p].Step)

	got, err := m.cfg.Step(p, n)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return
	}
	if got != requested {
		m.statusMsg = fmt.Sprintf("%s limited to %s to fit the section", p, units.FormatValue(got, p.Unit()))
	} else {
		m.statusMsg = fmt.Sprintf("%s = %s", p, units.FormatValue(got, p.Unit()))
	}
	m.log.Debug("parameter changed",
		zap.Stringer("param", p),
		zap.Float64("requested", requested),
		zap.Float64("value", got))
	m.recompute()
}

func (m *Model) selectBar(delta int) {
	if len(m.frame.Bars) == 0 {
		return
	}
	pos := m.barPosition() + delta
	pos = clamp(pos, 0, len(m.frame.Bars)-1)
	m.selectedBar = m.frame.Bars[pos].Index
}

func (m *Model) setBars(n int) {
	n = clamp(n, 1, maxBars)
	if n == m.cfg.Bars {
		return
	}
	m.cfg.Bars = n
	m.statusMsg = fmt.Sprintf("%d bars", n)
	m.recompute()
}

// barPosition is the position of the selected bar within frame.Bars, or
// the nearest evaluated bar if the selected one was skipped.
func (m Model) barPosition() int {
	best := 0
	for i, b := range m.frame.Bars {
		if b.Index <= m.selectedBar {
			best = i
		}
	}
	return best
}

// selected returns the bar whose numbers the detail pane shows.
func (m Model) selected() (projector.BarPair, bool) {
	if len(m.frame.Bars) == 0 {
		return projector.BarPair{}, false
	}
	return m.frame.Bars[m.barPosition()], true
}

// recompute projects the current parameters onto the section pane.
func (m *Model) recompute() {
	cols, rows := m.sectionSize()
	if cols <= 0 || rows <= 0 {
		m.frame, m.frameErr = projector.Frame{}, nil
		return
	}

	frame, err := projector.Project(m.cfg.Layer, m.cfg.Bars, sectionView(m.cfg, cols, rows), m.opts...)
	if err != nil {
		m.frame, m.frameErr = projector.Frame{}, err
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		m.log.Warn("projection failed", zap.Error(err))
		return
	}
	m.frame, m.frameErr = frame, nil
	m.selectedBar = clamp(m.selectedBar, 0, m.cfg.Bars-1)

	for _, s := range frame.Skipped {
		m.log.Debug("sample skipped",
			zap.Int("index", s.Index),
			zap.Float64("offset_m", s.Offset),
			zap.Error(s.Err))
	}
}

// ────────────────────────────────────────────────────────────
// Layout
// ────────────────────────────────────────────────────────────

// compactWidth is the width below which only the focused pane is shown.
const compactWidth = 60

func (m Model) bodyHeight() int {
	return m.height - 2 // header + footer
}

func (m Model) leftWidth() int {
	return m.width * 38 / 100
}

// sectionSize is the character grid available to the section pane.
func (m Model) sectionSize() (cols, rows int) {
	width := m.width - m.leftWidth()
	if m.width < compactWidth {
		width = m.width
	}
	return width - 4, m.bodyHeight() - 3
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := renderHeader(&m)
	footer := renderFooter(&m)
	body := m.renderMainLayout(m.bodyHeight())

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderMainLayout assembles controls and detail on the left and the
// section on the right.
func (m Model) renderMainLayout(totalHeight int) string {
	// Responsive: collapse to single pane on narrow terminals
	if m.width < compactWidth {
		return m.renderCompactLayout(totalHeight)
	}

	leftWidth := m.leftWidth()
	rightWidth := m.width - leftWidth
	controlsHeight := minInt(len(config.Params)+4, totalHeight/2)
	detailHeight := totalHeight - controlsHeight

	controls := renderControlsPanel(&m, leftWidth, controlsHeight)
	detail := renderDetailPanel(&m, leftWidth, detailHeight)
	section := renderSectionPanel(&m, rightWidth, totalHeight)

	left := lipgloss.JoinVertical(lipgloss.Left, controls, detail)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, section)
}

// renderCompactLayout is used when the terminal is narrow (< 60 cols).
// Only the focused pane is shown.
func (m Model) renderCompactLayout(totalHeight int) string {
	switch m.activePane {
	case PaneSection:
		return renderSectionPanel(&m, m.width, totalHeight)
	case PaneDetail:
		return renderDetailPanel(&m, m.width, totalHeight)
	default:
		return renderControlsPanel(&m, m.width, totalHeight)
	}
}
