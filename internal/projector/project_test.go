package projector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/georza/internal/resolution"
)

// 400x200 content area showing 0..2000 m, so 0.1 px per meter.
var testView = View{
	Width: 420, Height: 220,
	PaddingLeft: 10, PaddingTop: 10, PaddingRight: 10, PaddingBottom: 10,
	DepthMin: 0, DepthMax: 2000,
}

var testLayer = resolution.LayerParameters{
	Thickness:     1100,
	V1:            2000,
	V2:            2200,
	TopDepth:      500,
	PeakFrequency: 25,
	MaxOffset:     8000,
}

func TestViewGeometry(t *testing.T) {
	assert.Equal(t, 400.0, testView.ContentWidth())
	assert.Equal(t, 200.0, testView.ContentHeight())
	assert.InDelta(t, 0.1, testView.Scale(), 1e-12)
	assert.InDelta(t, 60.0, testView.DepthToY(500), 1e-9)
	assert.NoError(t, testView.Validate())
}

func TestViewValidate(t *testing.T) {
	cases := map[string]func(v *View){
		"empty depth range": func(v *View) { v.DepthMax = v.DepthMin },
		"inverted range":    func(v *View) { v.DepthMin, v.DepthMax = 100, 50 },
		"no width":          func(v *View) { v.Width = 20 },
		"no height":         func(v *View) { v.PaddingBottom = 300 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			v := testView
			mutate(&v)
			assert.ErrorIs(t, v.Validate(), ErrInvalidView)
		})
	}
}

func TestProjectColumns(t *testing.T) {
	frame, err := Project(testLayer, 4, testView)
	require.NoError(t, err)
	require.Len(t, frame.Bars, 4)
	assert.Empty(t, frame.Skipped)

	wantOffsets := []float64{1000, 3000, 5000, 7000}
	wantCenters := []float64{60, 160, 260, 360}
	for i, b := range frame.Bars {
		assert.Equal(t, i, b.Index)
		assert.InDelta(t, wantOffsets[i], b.Offset, 1e-9)

		x0, _, x1, _ := b.Top.Segment(UpperSegment)
		assert.InDelta(t, wantCenters[i]-12.5, x0, 1e-9, "bar %d left edge", i)
		assert.InDelta(t, wantCenters[i]+12.5, x1, 1e-9, "bar %d right edge", i)

		vx0, _, vx1, _ := b.Top.Segment(VerticalSegment)
		assert.InDelta(t, wantCenters[i], vx0, 1e-9)
		assert.InDelta(t, wantCenters[i], vx1, 1e-9)
	}
}

func TestProjectBarGeometry(t *testing.T) {
	frame, err := Project(testLayer, 4, testView)
	require.NoError(t, err)

	for _, b := range frame.Bars {
		for _, s := range []ErrorBarSample{b.Top, b.Bottom} {
			l := s.Lines
			// Horizontal segments are flat and symmetric about the center.
			assert.Equal(t, l[1], l[3])
			assert.Equal(t, l[5], l[7])
			assert.InDelta(t, 2*s.Center, l[1]+l[5], 1e-9)
			assert.InDelta(t, s.StdDevPixels, l[5]-l[1], 1e-9)
			// Vertical runs from the lower line up to the upper line.
			assert.Equal(t, l[5], l[9])
			assert.Equal(t, l[1], l[11])
		}

		ev := b.Evaluation
		assert.InDelta(t, ev.Top.Bounds.Span()*0.1, b.Top.StdDevPixels, 1e-9)
		assert.InDelta(t, ev.Bottom.Bounds.Span()*0.1, b.Bottom.StdDevPixels, 1e-9)
		assert.Greater(t, b.Top.StdDevPixels, 0.0)
	}

	// The top interface round-trips to its true depth at every offset.
	assert.InDelta(t, 60.0, frame.Bars[0].Top.Center, 1e-6)
	assert.InDelta(t, 60.0, frame.Bars[3].Top.Center, 1e-6)
}

func TestSegmentOrder(t *testing.T) {
	frame, err := Project(testLayer, 2, testView)
	require.NoError(t, err)

	s := frame.Bars[0].Bottom
	_, upY, _, _ := s.Segment(UpperSegment)
	_, downY, _, _ := s.Segment(LowerSegment)
	vx0, vy0, vx1, vy1 := s.Segment(VerticalSegment)
	assert.Less(t, upY, downY)
	assert.Equal(t, vx0, vx1)
	assert.Equal(t, downY, vy0)
	assert.Equal(t, upY, vy1)
}

func TestClippedSegment(t *testing.T) {
	bounds := Rect{X: 10, Y: 10, Width: 400, Height: 200}
	s := ErrorBarSample{Lines: [12]float64{
		50, -1e8, 60, -1e8,
		50, 100, 60, 100,
		55, 100, 55, -1e8,
	}}

	_, _, _, _, ok := s.ClippedSegment(UpperSegment, bounds)
	assert.False(t, ok, "upper line above the section is dropped")

	x0, y0, x1, y1, ok := s.ClippedSegment(LowerSegment, bounds)
	require.True(t, ok)
	assert.Equal(t, [4]float64{50, 100, 60, 100}, [4]float64{x0, y0, x1, y1})

	x0, y0, x1, y1, ok = s.ClippedSegment(VerticalSegment, bounds)
	require.True(t, ok)
	assert.Equal(t, [4]float64{55, 100, 55, 10}, [4]float64{x0, y0, x1, y1})

	below := ErrorBarSample{Lines: [12]float64{0, 300, 1, 300, 0, 400, 1, 400, 0.5, 400, 0.5, 300}}
	_, _, _, _, ok = below.ClippedSegment(VerticalSegment, bounds)
	assert.False(t, ok)
}

func TestProjectHonorsProportionality(t *testing.T) {
	base, err := Project(testLayer, 4, testView)
	require.NoError(t, err)
	half, err := Project(testLayer, 4, testView,
		resolution.WithProportionality(resolution.Proportionality{Top: 2, Bottom: 2}))
	require.NoError(t, err)

	for i := range base.Bars {
		assert.InDelta(t, base.Bars[i].Top.StdDevPixels/2, half.Bars[i].Top.StdDevPixels, 1e-9)
		assert.InDelta(t, base.Bars[i].Bottom.StdDevPixels/2, half.Bars[i].Bottom.StdDevPixels, 1e-9)
	}

	// A negative constant would flip the bars; every sample is rejected.
	flipped, err := Project(testLayer, 4, testView,
		resolution.WithProportionality(resolution.Proportionality{Top: -4, Bottom: -4}))
	require.NoError(t, err)
	assert.Empty(t, flipped.Bars)
	require.Len(t, flipped.Skipped, 4)
	assert.True(t, errors.Is(flipped.Skipped[0].Err, resolution.ErrInvalidGeometry))
}

func TestProjectUncertaintyShrinksWithOffset(t *testing.T) {
	frame, err := Project(testLayer, 8, testView)
	require.NoError(t, err)
	for i := 1; i < len(frame.Bars); i++ {
		assert.Less(t, frame.Bars[i].Top.StdDevPixels, frame.Bars[i-1].Top.StdDevPixels)
	}
}

func TestProjectMinimumBarWidth(t *testing.T) {
	frame, err := Project(testLayer, 400, testView)
	require.NoError(t, err)
	require.NotEmpty(t, frame.Bars)

	x0, _, x1, _ := frame.Bars[0].Top.Segment(UpperSegment)
	assert.InDelta(t, 2.0, x1-x0, 1e-9)
}

func TestProjectSkipsFailedSamples(t *testing.T) {
	p := testLayer
	p.MaxOffset = 0

	frame, err := Project(p, 3, testView)
	require.NoError(t, err)
	assert.Empty(t, frame.Bars)
	require.Len(t, frame.Skipped, 3)
	for i, s := range frame.Skipped {
		assert.Equal(t, i, s.Index)
		assert.True(t, errors.Is(s.Err, resolution.ErrDegenerateTime))
		assert.NotEmpty(t, s.Reason)
	}
}

func TestProjectRejectsBadInput(t *testing.T) {
	_, err := Project(testLayer, 0, testView)
	assert.ErrorIs(t, err, ErrInvalidView)

	bad := testView
	bad.DepthMax = 0
	_, err = Project(testLayer, 4, bad)
	assert.ErrorIs(t, err, ErrInvalidView)

	p := testLayer
	p.V1 = 0
	_, err = Project(p, 4, testView)
	assert.ErrorIs(t, err, resolution.ErrInvalidGeometry)
}

func TestLayerRect(t *testing.T) {
	r, err := LayerRect(testLayer, testView)
	require.NoError(t, err)
	assert.Equal(t, 10.0, r.X)
	assert.Equal(t, 400.0, r.Width)
	assert.InDelta(t, 60.0, r.Y, 1e-9)
	assert.InDelta(t, 110.0, r.Height, 1e-9)
}

func TestLayerRectShiftsUp(t *testing.T) {
	p := testLayer
	p.TopDepth = 1500

	r, err := LayerRect(p, testView)
	require.NoError(t, err)
	assert.InDelta(t, 110.0, r.Height, 1e-9)
	assert.InDelta(t, 210.0, r.Bottom(), 1e-9)
	assert.InDelta(t, 100.0, r.Y, 1e-9)
}
