package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/georza/internal/config"
	"github.com/Mr-Dark-debug/georza/internal/projector"
	"github.com/Mr-Dark-debug/georza/pkg/units"
)

// ────────────────────────────────────────────────────────────
// Character grid
// ────────────────────────────────────────────────────────────
//
// The projector works in abstract pixels. The section pane treats one
// terminal cell as one pixel and rasterizes the frame's rectangles and
// segments onto a rune grid.

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellFrame
	cellLayer
	cellBottomBar
	cellTopBar
	cellSelected
)

type cell struct {
	r    rune
	kind cellKind
}

type grid struct {
	w, h  int
	cells [][]cell
	// clip bounds segment drawing; frame edges stay outside it.
	clip struct{ x0, y0, x1, y1 int }
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, cells: make([][]cell, h)}
	for y := range g.cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		g.cells[y] = row
	}
	g.clip.x0, g.clip.y0, g.clip.x1, g.clip.y1 = 0, 0, w-1, h-1
	return g
}

func (g *grid) inClip(x, y int) bool {
	return x >= g.clip.x0 && x <= g.clip.x1 && y >= g.clip.y0 && y <= g.clip.y1
}

// set writes r at (x, y), merging crossing box-drawing lines.
func (g *grid) set(x, y int, r rune, kind cellKind) {
	if !g.inClip(x, y) {
		return
	}
	c := &g.cells[y][x]
	switch {
	case c.r == '│' && r == '─', c.r == '─' && r == '│':
		r = '┼'
	case c.r == '┼':
		r = '┼'
	}
	c.r, c.kind = r, kind
}

// cellOf maps a pixel coordinate to the cell containing it.
func cellOf(v float64) int {
	return int(math.Floor(v))
}

// span clips the cell range covering [v0, v1] to [lo, hi]. Clamping happens
// in float space so huge projected spans cost no more than the grid.
func span(v0, v1 float64, lo, hi int) (a, b int, ok bool) {
	minV, maxV := math.Min(v0, v1), math.Max(v0, v1)
	if math.IsNaN(minV) || math.IsNaN(maxV) || maxV < float64(lo) || minV >= float64(hi+1) {
		return 0, 0, false
	}
	a = cellOf(math.Max(minV, float64(lo)))
	b = cellOf(math.Min(maxV, float64(hi)))
	return a, b, true
}

func (g *grid) hline(x0, x1 float64, y float64, kind cellKind) {
	row, _, ok := span(y, y, g.clip.y0, g.clip.y1)
	if !ok {
		return
	}
	a, b, ok := span(x0, x1, g.clip.x0, g.clip.x1)
	if !ok {
		return
	}
	for x := a; x <= b; x++ {
		g.set(x, row, '─', kind)
	}
}

func (g *grid) vline(x float64, y0, y1 float64, kind cellKind) {
	col, _, ok := span(x, x, g.clip.x0, g.clip.x1)
	if !ok {
		return
	}
	a, b, ok := span(y0, y1, g.clip.y0, g.clip.y1)
	if !ok {
		return
	}
	for y := a; y <= b; y++ {
		g.set(col, y, '│', kind)
	}
}

// fill shades every cell the rectangle covers.
func (g *grid) fill(r projector.Rect, ch rune, kind cellKind) {
	x0, x1 := cellOf(r.X), int(math.Ceil(r.Right()))-1
	y0, y1 := cellOf(r.Y), int(math.Ceil(r.Bottom()))-1
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if g.inClip(x, y) && g.cells[y][x].kind == cellEmpty {
				g.cells[y][x] = cell{r: ch, kind: kind}
			}
		}
	}
}

// box draws the outer rectangle on the grid edge.
func (g *grid) box() {
	if g.w < 2 || g.h < 2 {
		return
	}
	for x := 1; x < g.w-1; x++ {
		g.cells[0][x] = cell{r: '─', kind: cellFrame}
		g.cells[g.h-1][x] = cell{r: '─', kind: cellFrame}
	}
	for y := 1; y < g.h-1; y++ {
		g.cells[y][0] = cell{r: '│', kind: cellFrame}
		g.cells[y][g.w-1] = cell{r: '│', kind: cellFrame}
	}
	g.cells[0][0] = cell{r: '┌', kind: cellFrame}
	g.cells[0][g.w-1] = cell{r: '┐', kind: cellFrame}
	g.cells[g.h-1][0] = cell{r: '└', kind: cellFrame}
	g.cells[g.h-1][g.w-1] = cell{r: '┘', kind: cellFrame}
	g.clip.x0, g.clip.y0, g.clip.x1, g.clip.y1 = 1, 1, g.w-2, g.h-2
}

// errorBar rasterizes the three segments of one bar.
func (g *grid) errorBar(s projector.ErrorBarSample, kind cellKind) {
	x0, y0, _, y1 := s.Segment(projector.VerticalSegment)
	g.vline(x0, y0, y1, kind)
	for _, k := range []int{projector.UpperSegment, projector.LowerSegment} {
		ax, ay, bx, _ := s.Segment(k)
		g.hline(ax, bx, ay, kind)
	}
}

// plain returns the grid as unstyled lines.
func (g *grid) plain() []string {
	lines := make([]string, g.h)
	for y, row := range g.cells {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(c.r)
		}
		lines[y] = b.String()
	}
	return lines
}

// styled returns the grid with runs of equal kind rendered in their style.
func (g *grid) styled() []string {
	lines := make([]string, g.h)
	for y, row := range g.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].kind == row[start].kind {
				continue
			}
			var run strings.Builder
			for _, c := range row[start:x] {
				run.WriteRune(c.r)
			}
			b.WriteString(styleFor(row[start].kind).Render(run.String()))
			start = x
		}
		lines[y] = b.String()
	}
	return lines
}

func styleFor(k cellKind) lipgloss.Style {
	switch k {
	case cellFrame:
		return sectionFrameStyle
	case cellLayer:
		return sectionLayerStyle
	case cellTopBar:
		return sectionTopBarStyle
	case cellBottomBar:
		return sectionBottomBarStyle
	case cellSelected:
		return sectionSelectedStyle
	}
	return lipgloss.NewStyle()
}

// ────────────────────────────────────────────────────────────
// Section pane
// ────────────────────────────────────────────────────────────

// sectionView is the projector view for a cols×rows grid: one cell of
// padding holds the outer rectangle.
func sectionView(cfg config.Config, cols, rows int) projector.View {
	return projector.View{
		Width:         float64(cols),
		Height:        float64(rows),
		PaddingLeft:   1,
		PaddingTop:    1,
		PaddingRight:  1,
		PaddingBottom: 1,
		DepthMin:      cfg.DepthMin,
		DepthMax:      cfg.DepthMax,
	}
}

// rasterize draws frame onto a fresh grid of its view's size.
func rasterize(frame projector.Frame, selected int) *grid {
	g := newGrid(int(frame.View.Width), int(frame.View.Height))
	g.box()
	for _, b := range frame.Bars {
		g.errorBar(b.Bottom, cellBottomBar)
	}
	for _, b := range frame.Bars {
		kind := cellTopBar
		if b.Index == selected {
			kind = cellSelected
		}
		g.errorBar(b.Top, kind)
	}
	for _, b := range frame.Bars {
		if b.Index == selected {
			g.errorBar(b.Bottom, cellSelected)
		}
	}
	g.fill(frame.Layer, '░', cellLayer)
	return g
}

// renderSection renders the cross-section pane.
func renderSection(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	if m.activePane == PaneSection {
		titleStyle = panelTitleStyle
	}
	title := titleStyle.Render("Section") + dimStyle.Render(fmt.Sprintf("  %s – %s",
		units.FormatMeters(m.cfg.DepthMin), units.FormatMeters(m.cfg.DepthMax)))

	if m.frameErr != nil {
		return title + "\n\n" + emptyStateStyle.Render(truncate(m.frameErr.Error(), width))
	}
	if m.frame.View.Width < 3 || m.frame.View.Height < 3 {
		return title + "\n\n" + emptyStateStyle.Render("Window too small.")
	}

	lines := rasterize(m.frame, m.selectedBar).styled()
	if len(lines) > height-1 {
		lines = lines[:maxInt(height-1, 0)]
	}
	return title + "\n" + strings.Join(lines, "\n")
}

// renderSectionPanel wraps the section in a styled panel.
func renderSectionPanel(m *Model, width, height int) string {
	content := renderSection(m, width-4, height-2)

	style := panelStyle
	if m.activePane == PaneSection {
		style = panelActiveStyle
	}

	return style.Width(width).Height(height).Render(content)
}
