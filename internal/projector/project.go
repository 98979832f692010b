package projector

import (
	"fmt"
	"math"

	"github.com/Mr-Dark-debug/georza/internal/resolution"
)

// Segment indices for ErrorBarSample.Segment, in Lines order.
const (
	UpperSegment = iota
	LowerSegment
	VerticalSegment
)

// ErrorBarSample is one error bar in pixel space.
type ErrorBarSample struct {
	Offset       float64 `json:"offset_m"`
	Center       float64 `json:"center_y"`
	StdDevPixels float64 `json:"stddev_px"`
	// Lines holds upper horizontal, lower horizontal and connecting
	// vertical segments in that order.
	Lines [12]float64 `json:"lines"`
}

// Segment returns segment k (UpperSegment, LowerSegment or VerticalSegment)
// as x0, y0, x1, y1.
func (s ErrorBarSample) Segment(k int) (x0, y0, x1, y1 float64) {
	l := s.Lines[k*4 : k*4+4]
	return l[0], l[1], l[2], l[3]
}

// ClippedSegment returns segment k with its y coordinates limited to the
// vertical extent of bounds. ok is false when the segment lies entirely
// above or below bounds.
func (s ErrorBarSample) ClippedSegment(k int, bounds Rect) (x0, y0, x1, y1 float64, ok bool) {
	x0, y0, x1, y1 = s.Segment(k)
	top, bottom := bounds.Y, bounds.Bottom()
	lo, hi := math.Min(y0, y1), math.Max(y0, y1)
	if math.IsNaN(lo) || math.IsNaN(hi) || hi < top || lo > bottom {
		return 0, 0, 0, 0, false
	}
	return x0, clampY(y0, top, bottom), x1, clampY(y1, top, bottom), true
}

func clampY(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// BarPair holds the top and bottom interface bars for one offset.
type BarPair struct {
	Index      int                   `json:"index"`
	Offset     float64               `json:"offset_m"`
	Top        ErrorBarSample        `json:"top"`
	Bottom     ErrorBarSample        `json:"bottom"`
	Evaluation resolution.Evaluation `json:"evaluation"`
}

// SkippedSample is an offset whose model chain failed.
type SkippedSample struct {
	Index  int     `json:"index"`
	Offset float64 `json:"offset_m"`
	Err    error   `json:"-"`
	Reason string  `json:"reason"`
}

// Frame is everything a surface needs to draw one recomputation.
type Frame struct {
	View    View            `json:"view"`
	Bounds  Rect            `json:"bounds"`
	Layer   Rect            `json:"layer"`
	Bars    []BarPair       `json:"bars"`
	Skipped []SkippedSample `json:"skipped,omitempty"`
}

// Project samples n offsets across [0, p.MaxOffset], runs the models at each
// and lays the resulting error bars out in view. Samples whose chain fails
// are listed in Frame.Skipped and left out of Frame.Bars.
func Project(p resolution.LayerParameters, n int, view View, opts ...resolution.Option) (Frame, error) {
	if n <= 0 {
		return Frame{}, fmt.Errorf("bar count %d: %w", n, ErrInvalidView)
	}
	if err := view.Validate(); err != nil {
		return Frame{}, err
	}
	if err := p.Validate(); err != nil {
		return Frame{}, err
	}

	layer, err := LayerRect(p, view)
	if err != nil {
		return Frame{}, err
	}

	frame := Frame{
		View:   view,
		Bounds: Rect{X: view.PaddingLeft, Y: view.PaddingTop, Width: view.ContentWidth(), Height: view.ContentHeight()},
		Layer:  layer,
		Bars:   make([]BarPair, 0, n),
	}

	cols := newColumns(view, n)
	for i, s := range resolution.Samples(resolution.Offsets(n, p.MaxOffset), func(x float64) (resolution.Evaluation, error) {
		return resolution.Evaluate(p, x, opts...)
	}) {
		if !s.OK() {
			frame.Skipped = append(frame.Skipped, SkippedSample{
				Index:  i,
				Offset: s.Offset,
				Err:    s.Err,
				Reason: s.Err.Error(),
			})
			continue
		}
		ev := s.Value
		cx := cols.center(i)
		frame.Bars = append(frame.Bars, BarPair{
			Index:      i,
			Offset:     s.Offset,
			Top:        bar(view, cx, cols.halfWidth, s.Offset, ev.Top),
			Bottom:     bar(view, cx, cols.halfWidth, s.Offset, ev.Bottom),
			Evaluation: ev,
		})
	}
	return frame, nil
}

// LayerRect is the layer rectangle in pixels spanning the content width.
// A layer that would extend below the content area is shifted up so its
// lower edge sits on the bottom of the content area.
func LayerRect(p resolution.LayerParameters, view View) (Rect, error) {
	if err := view.Validate(); err != nil {
		return Rect{}, err
	}
	scale := view.Scale()
	r := Rect{
		X:      view.PaddingLeft,
		Y:      view.DepthToY(p.TopDepth),
		Width:  view.ContentWidth(),
		Height: p.Thickness * scale,
	}
	if limit := view.PaddingTop + view.ContentHeight(); r.Bottom() > limit {
		r.Y = limit - r.Height
	}
	return r, nil
}

type columns struct {
	left      float64
	dx        float64
	halfWidth float64
}

func newColumns(view View, n int) columns {
	dx := view.ContentWidth() / float64(n)
	hw := 0.25 * dx / 2
	if dx > 0 && hw < 1 {
		hw = 1
	}
	return columns{left: view.PaddingLeft, dx: dx, halfWidth: hw}
}

func (c columns) center(i int) float64 {
	return c.left + 0.5*c.dx + float64(i)*c.dx
}

func bar(view View, cx, hw, offset float64, est resolution.InterfaceEstimate) ErrorBarSample {
	y := view.DepthToY(est.Depth)
	s := est.Bounds.Span() * view.Scale()
	up, down := y-s/2, y+s/2
	return ErrorBarSample{
		Offset:       offset,
		Center:       y,
		StdDevPixels: s,
		Lines: [12]float64{
			cx - hw, up, cx + hw, up,
			cx - hw, down, cx + hw, down,
			cx, down, cx, up,
		},
	}
}
