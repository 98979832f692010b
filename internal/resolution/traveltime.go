package resolution

import "math"

// TravelTimePair holds two-way times (s) to the top and bottom interfaces.
// Bottom >= Top >= 0.
type TravelTimePair struct {
	Top    float64 `json:"top_s"`
	Bottom float64 `json:"bottom_s"`
}

// ZeroOffsetTimes returns the vertical two-way times for a layer of
// thickness th (m) at depth zt (m), with overburden velocity v1 and layer
// velocity v2 (m/s).
func ZeroOffsetTimes(th, v1, v2, zt float64) (TravelTimePair, error) {
	const op = "zero-offset times"
	if err := requirePositive(op, "thickness", th); err != nil {
		return TravelTimePair{}, err
	}
	if err := requirePositive(op, "v1", v1); err != nil {
		return TravelTimePair{}, err
	}
	if err := requirePositive(op, "v2", v2); err != nil {
		return TravelTimePair{}, err
	}
	if err := requireNonNegative(op, "top_depth", zt); err != nil {
		return TravelTimePair{}, err
	}

	top := 2 * zt / v1
	return TravelTimePair{
		Top:    top,
		Bottom: top + 2*th/v2,
	}, nil
}

// OffsetTimes applies the hyperbolic NMO approximation
// t(x) = sqrt(t0² + (x/v)²) to each interface.
func OffsetTimes(t0 TravelTimePair, v VelocityPair, offset float64) (TravelTimePair, error) {
	const op = "offset times"
	if err := t0.validate(op); err != nil {
		return TravelTimePair{}, err
	}
	if err := v.validate(op); err != nil {
		return TravelTimePair{}, err
	}
	if !finite(offset) {
		return TravelTimePair{}, invalid(op, "offset", offset)
	}

	return TravelTimePair{
		Top:    nmo(t0.Top, v.Top, offset),
		Bottom: nmo(t0.Bottom, v.Bottom, offset),
	}, nil
}

func nmo(t0, v, x float64) float64 {
	s := x / v
	return math.Sqrt(t0*t0 + s*s)
}

func (t TravelTimePair) validate(op string) error {
	if err := requireNonNegative(op, "t_top", t.Top); err != nil {
		return err
	}
	return requireNonNegative(op, "t_bottom", t.Bottom)
}
