package resolution

import (
	"fmt"
	"math"
)

// DepthBounds is the depth (m) of one interface evaluated at the RMS
// velocity plus and minus its uncertainty.
type DepthBounds struct {
	Plus  float64 `json:"plus_m"`
	Minus float64 `json:"minus_m"`
}

// Span is the total uncertainty Plus - Minus.
func (b DepthBounds) Span() float64 {
	return b.Plus - b.Minus
}

// EstimateDepth inverts the NMO hyperbola: with r = t·v/2 and
// θ = asin(offset/2r), depth = cos θ · t·v/2.
func EstimateDepth(t, v, offset float64) (float64, error) {
	cosTheta, err := obliquity("depth estimate", t, v, offset)
	if err != nil {
		return 0, err
	}
	return cosTheta * t * v / 2, nil
}

// EstimateDepthBounds evaluates the depth relation at v+dv and v-dv using
// the same reflection angle as EstimateDepth.
func EstimateDepthBounds(t, v, offset, dv float64) (DepthBounds, error) {
	const op = "depth bounds"
	if !finite(dv) {
		return DepthBounds{}, invalid(op, "delta_v", dv)
	}
	cosTheta, err := obliquity(op, t, v, offset)
	if err != nil {
		return DepthBounds{}, err
	}
	half := cosTheta * t / 2
	return DepthBounds{
		Plus:  half * (v + dv),
		Minus: half * (v - dv),
	}, nil
}

// obliquity returns cos θ for the reflection point geometry, failing when
// offset/(t·v) leaves [-1, 1].
func obliquity(op string, t, v, offset float64) (float64, error) {
	if err := requireNonNegative(op, "time", t); err != nil {
		return 0, err
	}
	if err := requirePositive(op, "velocity", v); err != nil {
		return 0, err
	}
	if !finite(offset) {
		return 0, invalid(op, "offset", offset)
	}

	r := t * v / 2
	if r == 0 {
		if offset == 0 {
			// Zero-depth reflector at zero offset: vertical incidence.
			return 1, nil
		}
		return 0, fmt.Errorf("%s: offset=%g with zero radius: %w", op, offset, ErrOutOfDomain)
	}

	arg := offset / (2 * r)
	if arg < -1 || arg > 1 {
		return 0, fmt.Errorf("%s: asin(%g) for offset=%g t=%g v=%g: %w",
			op, arg, offset, t, v, ErrOutOfDomain)
	}
	return math.Cos(math.Asin(arg)), nil
}
