// Package resolution estimates two-way travel times, RMS velocities and
// depth uncertainties for the top and bottom of a single subsurface layer.
//
// Every function is a pure computation over its arguments. There is no
// engine object to configure: callers pass a LayerParameters value (or the
// individual quantities) and receive a result or an error. Units are meters,
// seconds and meters/second throughout.
//
// Pipeline for one source-receiver offset:
//
//	ZeroOffsetTimes → RMSVelocities → OffsetTimes → DeltaVelocities
//	    → EstimateDepth / EstimateDepthBounds (top and bottom)
//
// Evaluate runs the whole chain; Sweep and MapOffsets apply it across a
// set of offsets.
package resolution

import "fmt"

// LayerParameters describes the acquisition geometry and the layer.
type LayerParameters struct {
	Thickness     float64 `json:"thickness_m"`
	V1            float64 `json:"v1_mps"` // overburden (stacking) velocity
	V2            float64 `json:"v2_mps"` // layer velocity
	TopDepth      float64 `json:"top_depth_m"`
	PeakFrequency float64 `json:"peak_frequency_hz"`
	MaxOffset     float64 `json:"max_offset_m"`
}

// Validate reports ErrInvalidGeometry for any value outside its domain.
func (p LayerParameters) Validate() error {
	const op = "layer parameters"
	checks := []error{
		requirePositive(op, "thickness", p.Thickness),
		requirePositive(op, "v1", p.V1),
		requirePositive(op, "v2", p.V2),
		requireNonNegative(op, "top_depth", p.TopDepth),
		requirePositive(op, "peak_frequency", p.PeakFrequency),
		requireNonNegative(op, "max_offset", p.MaxOffset),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// BottomDepth is the depth of the lower interface.
func (p LayerParameters) BottomDepth() float64 {
	return p.TopDepth + p.Thickness
}

func (p LayerParameters) String() string {
	return fmt.Sprintf("th=%gm v1=%gm/s v2=%gm/s zt=%gm f=%gHz xmax=%gm",
		p.Thickness, p.V1, p.V2, p.TopDepth, p.PeakFrequency, p.MaxOffset)
}
