// Package viewer draws the GeoRZA section in a desktop window using ebiten.
//
// The window holds a column of parameter sliders and the section itself:
// outer rectangle, shaded layer, and the projected error bars clipped to
// the section bounds.
package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/georza/internal/config"
	"github.com/Mr-Dark-debug/georza/internal/projector"
	"github.com/Mr-Dark-debug/georza/internal/resolution"
	"github.com/Mr-Dark-debug/georza/pkg/units"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Slider column
	panelWidth   = 300
	sliderX      = 20
	sliderTop    = 70
	sliderPitch  = 64
	sliderWidth  = 260
	sliderHeight = 8

	// Section padding inside the window
	sectionLeft   = panelWidth + 20
	sectionTop    = 40
	sectionRight  = 20
	sectionBottom = 40
)

var (
	colorBackground = color.RGBA{R: 13, G: 17, B: 23, A: 255}
	colorFrame      = color.RGBA{R: 230, G: 237, B: 243, A: 255}
	colorLayer      = color.RGBA{R: 0, G: 200, B: 220, A: 120}
	colorTopBar     = color.RGBA{R: 248, G: 81, B: 73, A: 255}
	colorBottomBar  = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	colorSelected   = color.RGBA{R: 210, G: 153, B: 34, A: 255}
	colorTrack      = color.RGBA{R: 48, G: 54, B: 61, A: 255}
	colorTrackFill  = color.RGBA{R: 88, G: 166, B: 255, A: 255}
)

// Game is the ebiten.Game for the section viewer.
type Game struct {
	initial config.Config
	cfg     config.Config
	opts    []resolution.Option
	log     *zap.Logger

	frame    projector.Frame
	frameErr error

	active   int
	selected int
	status   string
}

// NewGame creates a viewer starting from cfg. A nil logger discards.
func NewGame(cfg config.Config, log *zap.Logger, opts ...resolution.Option) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{initial: cfg, cfg: cfg, opts: opts, log: log, status: "Ready"}
	g.recompute()
	return g
}

// View is the projector view of the section area.
func (g *Game) View() projector.View {
	return projector.View{
		Width:         WindowWidth,
		Height:        WindowHeight,
		PaddingLeft:   sectionLeft,
		PaddingTop:    sectionTop,
		PaddingRight:  sectionRight,
		PaddingBottom: sectionBottom,
		DepthMin:      g.cfg.DepthMin,
		DepthMax:      g.cfg.DepthMax,
	}
}

func (g *Game) recompute() {
	frame, err := projector.Project(g.cfg.Layer, g.cfg.Bars, g.View(), g.opts...)
	g.frame, g.frameErr = frame, err
	if err != nil {
		g.status = "Error: " + err.Error()
		g.log.Warn("projection failed", zap.Error(err))
		return
	}
	if g.selected >= g.cfg.Bars {
		g.selected = g.cfg.Bars - 1
	}
	if n := len(frame.Skipped); n > 0 {
		g.log.Debug("samples skipped", zap.Int("count", n))
	}
}

func (g *Game) adjust(n int) {
	p := config.Params[g.active]
	r := config.Ranges[p]
	g.set(p, r.Clamp(g.cfg.Get(p)+float64(n)*r.Step))
}

func (g *Game) set(p config.Param, v float64) {
	if v == g.cfg.Get(p) {
		return
	}
	got, err := g.cfg.Set(p, v)
	if err != nil {
		g.status = "Error: " + err.Error()
		return
	}
	if got != config.Ranges[p].Clamp(v) {
		g.status = fmt.Sprintf("%s limited to %s to fit the section", p, units.FormatValue(got, p.Unit()))
	} else {
		g.status = fmt.Sprintf("%s = %s", p, units.FormatValue(got, p.Unit()))
	}
	g.log.Debug("parameter changed", zap.Stringer("param", p), zap.Float64("value", got))
	g.recompute()
}

// Update handles keyboard and mouse input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	step := 1
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		step = 10
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.active = max(0, g.active-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.active = min(len(config.Params)-1, g.active+1)
	case repeating(ebiten.KeyRight):
		g.adjust(step)
	case repeating(ebiten.KeyLeft):
		g.adjust(-step)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		g.selected = min(g.cfg.Bars-1, g.selected+1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.selected = max(0, g.selected-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.cfg.Bars = min(50, g.cfg.Bars+1)
		g.recompute()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.cfg.Bars = max(1, g.cfg.Bars-1)
		g.recompute()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.cfg = g.initial
		g.status = "Reset to defaults"
		g.recompute()
	}

	// Dragging a slider sets its value directly.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		for i, p := range config.Params {
			y := sliderTop + i*sliderPitch
			if mx >= sliderX && mx <= sliderX+sliderWidth && my >= y-6 && my <= y+sliderHeight+6 {
				g.active = i
				r := config.Ranges[p]
				frac := float64(mx-sliderX) / sliderWidth
				g.set(p, r.Clamp(r.Min+frac*(r.Max-r.Min)))
			}
		}
	}
	return nil
}

// repeating reports a key press, repeating while held.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d > 20 && d%3 == 0)
}

// Draw renders the sliders and the section.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g.drawSliders(screen)
	g.drawSection(screen)

	status := g.status
	if n := len(g.frame.Skipped); n > 0 {
		status += fmt.Sprintf(" | %d skipped", n)
	}
	ebitenutil.DebugPrintAt(screen, status, sliderX, WindowHeight-24)
	ebitenutil.DebugPrintAt(screen, "Up/Down select  Left/Right adjust  [ ] bar  +/- bars  R reset  Q quit", sliderX, 12)
}

func (g *Game) drawSliders(screen *ebiten.Image) {
	for i, p := range config.Params {
		y := float32(sliderTop + i*sliderPitch)
		r := config.Ranges[p]

		label := fmt.Sprintf("%s: %s", p, units.FormatValue(g.cfg.Get(p), p.Unit()))
		if i == g.active {
			label = "> " + label
		}
		ebitenutil.DebugPrintAt(screen, label, sliderX, int(y)-20)

		fill := float32(r.Fraction(g.cfg.Get(p))) * sliderWidth
		vector.DrawFilledRect(screen, sliderX, y, sliderWidth, sliderHeight, colorTrack, false)
		vector.DrawFilledRect(screen, sliderX, y, fill, sliderHeight, colorTrackFill, false)
		vector.DrawFilledCircle(screen, sliderX+fill, y+sliderHeight/2, 7, colorFrame, true)
	}
}

func (g *Game) drawSection(screen *ebiten.Image) {
	f := g.frame
	if g.frameErr != nil {
		ebitenutil.DebugPrintAt(screen, g.frameErr.Error(), sectionLeft, sectionTop)
		return
	}

	b := f.Bounds
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 1, colorFrame, false)

	l := f.Layer
	vector.DrawFilledRect(screen, float32(l.X+1), float32(l.Y), float32(l.Width-2), float32(l.Height), colorLayer, false)

	for _, bar := range f.Bars {
		top, bottom := colorTopBar, colorBottomBar
		if bar.Index == g.selected {
			top, bottom = colorSelected, colorSelected
		}
		strokeBar(screen, bar.Top, b, top)
		strokeBar(screen, bar.Bottom, b, bottom)
	}

	ebitenutil.DebugPrintAt(screen, units.FormatMeters(g.cfg.DepthMin), int(b.X)+4, int(b.Y)+4)
	ebitenutil.DebugPrintAt(screen, units.FormatMeters(g.cfg.DepthMax), int(b.X)+4, int(b.Bottom())-18)

	for _, bar := range f.Bars {
		if bar.Index != g.selected {
			continue
		}
		ev := bar.Evaluation
		info := fmt.Sprintf("x=%s  top %s ± %s  bottom %s ± %s",
			units.FormatMeters(ev.Offset),
			units.FormatMeters(ev.Top.Depth), units.FormatMeters(ev.Top.Bounds.Span()/2),
			units.FormatMeters(ev.Bottom.Depth), units.FormatMeters(ev.Bottom.Bounds.Span()/2))
		ebitenutil.DebugPrintAt(screen, info, sectionLeft, sectionTop-20)
	}
}

// strokeBar draws the segments of s that fall inside bounds, cutting the
// vertical segment at the top and bottom edges.
func strokeBar(screen *ebiten.Image, s projector.ErrorBarSample, bounds projector.Rect, c color.Color) {
	for _, k := range []int{projector.UpperSegment, projector.LowerSegment, projector.VerticalSegment} {
		x0, y0, x1, y1, ok := s.ClippedSegment(k, bounds)
		if !ok {
			continue
		}
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, c, true)
	}
}

// Layout keeps a fixed logical resolution.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}
