// Package projector turns depth uncertainties from the resolution models
// into screen-space error-bar segments for a drawing surface.
//
// The projector knows nothing about any particular surface. It takes an
// explicit View (pixel size, padding, displayed depth range) and returns a
// Frame of line coordinates that a terminal grid, a window or a test can
// consume as-is.
package projector

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidView reports a view with no drawable area or an empty depth range.
var ErrInvalidView = errors.New("invalid view")

// View is the pixel geometry of the drawing surface and the depth range it
// displays. Depth increases downward.
type View struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	PaddingLeft   float64 `json:"padding_left"`
	PaddingTop    float64 `json:"padding_top"`
	PaddingRight  float64 `json:"padding_right"`
	PaddingBottom float64 `json:"padding_bottom"`
	DepthMin      float64 `json:"depth_min_m"`
	DepthMax      float64 `json:"depth_max_m"`
}

// ContentWidth is the drawable width inside the horizontal padding.
func (v View) ContentWidth() float64 {
	return v.Width - v.PaddingLeft - v.PaddingRight
}

// ContentHeight is the drawable height inside the vertical padding.
func (v View) ContentHeight() float64 {
	return v.Height - v.PaddingTop - v.PaddingBottom
}

// Scale is pixels per meter of depth.
func (v View) Scale() float64 {
	return v.ContentHeight() / (v.DepthMax - v.DepthMin)
}

// DepthToY maps a depth (m) to a pixel row.
func (v View) DepthToY(depth float64) float64 {
	return v.PaddingTop + (depth-v.DepthMin)*v.Scale()
}

// Validate reports ErrInvalidView for a non-finite field, a non-positive
// content area or DepthMax <= DepthMin.
func (v View) Validate() error {
	for _, f := range []float64{
		v.Width, v.Height,
		v.PaddingLeft, v.PaddingTop, v.PaddingRight, v.PaddingBottom,
		v.DepthMin, v.DepthMax,
	} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("view has non-finite field %g: %w", f, ErrInvalidView)
		}
	}
	if w := v.ContentWidth(); w <= 0 {
		return fmt.Errorf("content width %g: %w", w, ErrInvalidView)
	}
	if h := v.ContentHeight(); h <= 0 {
		return fmt.Errorf("content height %g: %w", h, ErrInvalidView)
	}
	if v.DepthMax <= v.DepthMin {
		return fmt.Errorf("depth range [%g, %g]: %w", v.DepthMin, v.DepthMax, ErrInvalidView)
	}
	return nil
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom is the y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Right is the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }
