package resolution

import (
	"errors"
	"fmt"
	"math"
)

// Error kinds surfaced by the models. Callers match them with errors.Is;
// the returned errors wrap them with the operation and offending values.
var (
	// ErrInvalidGeometry reports a non-positive velocity, thickness or
	// frequency, a negative depth or time, or a non-finite input.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrDegenerateTime reports a zero denominator: tTop+tBottom = 0 in
	// RMS blending or offset = 0 in delta velocity.
	ErrDegenerateTime = errors.New("degenerate time")

	// ErrOutOfDomain reports an arcsine argument outside [-1, 1], i.e. an
	// offset too large for the reflection geometry.
	ErrOutOfDomain = errors.New("offset out of domain")
)

func invalid(op, name string, v float64) error {
	return fmt.Errorf("%s: %s=%g: %w", op, name, v, ErrInvalidGeometry)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// requirePositive checks v > 0 and finite.
func requirePositive(op, name string, v float64) error {
	if !finite(v) || v <= 0 {
		return invalid(op, name, v)
	}
	return nil
}

// requireNonNegative checks v >= 0 and finite.
func requireNonNegative(op, name string, v float64) error {
	if !finite(v) || v < 0 {
		return invalid(op, name, v)
	}
	return nil
}

func wrapDegenerate(op, name string, v float64) error {
	return fmt.Errorf("%s: %s=%g: %w", op, name, v, ErrDegenerateTime)
}
