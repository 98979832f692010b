package resolution

import "math"

// VelocityPair holds the RMS velocity (m/s) down to each interface.
type VelocityPair struct {
	Top    float64 `json:"top_mps"`
	Bottom float64 `json:"bottom_mps"`
}

// DeltaVelocityPair holds the estimated RMS velocity uncertainty (m/s).
type DeltaVelocityPair struct {
	Top    float64 `json:"top_mps"`
	Bottom float64 `json:"bottom_mps"`
}

// Proportionality is the empirical constant A of the delta-velocity
// relation, one value per interface.
type Proportionality struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// DefaultProportionality is A = 4.0 for both interfaces.
var DefaultProportionality = Proportionality{Top: 4.0, Bottom: 4.0}

// RMSVelocities blends v1 and v2 weighted by the interface times:
//
//	vTop    = v1
//	vBottom = sqrt((v1²·tTop + v2²·tBottom) / (tTop + tBottom))
func RMSVelocities(t TravelTimePair, v1, v2 float64) (VelocityPair, error) {
	const op = "rms velocities"
	if err := t.validate(op); err != nil {
		return VelocityPair{}, err
	}
	if err := requirePositive(op, "v1", v1); err != nil {
		return VelocityPair{}, err
	}
	if err := requirePositive(op, "v2", v2); err != nil {
		return VelocityPair{}, err
	}

	sum := t.Top + t.Bottom
	if sum == 0 {
		return VelocityPair{}, wrapDegenerate(op, "t_top+t_bottom", sum)
	}

	return VelocityPair{
		Top:    v1,
		Bottom: math.Sqrt((v1*v1*t.Top + v2*v2*t.Bottom) / sum),
	}, nil
}

// DeltaVelocities estimates the RMS velocity uncertainty per interface:
//
//	dv = A · t·v³ / (freq · offset²)
//
// Uncertainty falls with higher peak frequency and larger offsets.
func DeltaVelocities(t TravelTimePair, v VelocityPair, offset, freq float64, a Proportionality) (DeltaVelocityPair, error) {
	const op = "delta velocities"
	if err := t.validate(op); err != nil {
		return DeltaVelocityPair{}, err
	}
	if err := v.validate(op); err != nil {
		return DeltaVelocityPair{}, err
	}
	if err := requirePositive(op, "peak_frequency", freq); err != nil {
		return DeltaVelocityPair{}, err
	}
	if err := requireNonNegative(op, "proportionality_top", a.Top); err != nil {
		return DeltaVelocityPair{}, err
	}
	if err := requireNonNegative(op, "proportionality_bottom", a.Bottom); err != nil {
		return DeltaVelocityPair{}, err
	}
	if !finite(offset) {
		return DeltaVelocityPair{}, invalid(op, "offset", offset)
	}
	if offset == 0 {
		return DeltaVelocityPair{}, wrapDegenerate(op, "offset", offset)
	}

	denom := freq * offset * offset
	return DeltaVelocityPair{
		Top:    a.Top * t.Top * cube(v.Top) / denom,
		Bottom: a.Bottom * t.Bottom * cube(v.Bottom) / denom,
	}, nil
}

// VerticalResolution is the quarter-wavelength tuning thickness v/(4f).
func VerticalResolution(v, freq float64) (float64, error) {
	const op = "vertical resolution"
	if err := requirePositive(op, "velocity", v); err != nil {
		return 0, err
	}
	if err := requirePositive(op, "peak_frequency", freq); err != nil {
		return 0, err
	}
	return v / (4 * freq), nil
}

// FresnelRadius is the first Fresnel zone radius (v/2)·sqrt(t/f) for a
// reflector at two-way time t.
func FresnelRadius(v, t, freq float64) (float64, error) {
	const op = "fresnel radius"
	if err := requirePositive(op, "velocity", v); err != nil {
		return 0, err
	}
	if err := requireNonNegative(op, "time", t); err != nil {
		return 0, err
	}
	if err := requirePositive(op, "peak_frequency", freq); err != nil {
		return 0, err
	}
	return v / 2 * math.Sqrt(t/freq), nil
}

func cube(v float64) float64 { return v * v * v }

func (v VelocityPair) validate(op string) error {
	if err := requirePositive(op, "v_top", v.Top); err != nil {
		return err
	}
	return requirePositive(op, "v_bottom", v.Bottom)
}
