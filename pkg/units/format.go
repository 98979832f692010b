// Package units formats the physical quantities GeoRZA reports.
//
// All values are SI: seconds, meters, meters per second and hertz. This
// package turns them into short strings for the TUI and report tables.
package units

import (
	"fmt"
	"math"
)

// FormatSeconds formats a two-way time.
// Examples: "450ms", "1.234s", "—" for NaN.
func FormatSeconds(s float64) string {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return "—"
	}
	if math.Abs(s) < 1 {
		return fmt.Sprintf("%.0fms", s*1000)
	}
	return fmt.Sprintf("%.3fs", s)
}

// FormatMeters formats a depth or distance.
// Examples: "0.42m", "37.5m", "3.50km".
func FormatMeters(m float64) string {
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return "—"
	}
	abs := math.Abs(m)
	switch {
	case abs < 1:
		return fmt.Sprintf("%.2fm", m)
	case abs < 1000:
		return fmt.Sprintf("%.1fm", m)
	default:
		return fmt.Sprintf("%.2fkm", m/1000)
	}
}

// FormatVelocity formats a velocity in m/s.
func FormatVelocity(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	if math.Abs(v) < 10 {
		return fmt.Sprintf("%.2fm/s", v)
	}
	return fmt.Sprintf("%.0fm/s", v)
}

// FormatFrequency formats a frequency in Hz.
func FormatFrequency(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "—"
	}
	return fmt.Sprintf("%gHz", math.Round(f*10)/10)
}

// FormatValue formats v with the given unit suffix, choosing the
// formatter that matches it.
func FormatValue(v float64, unit string) string {
	switch unit {
	case "m":
		return FormatMeters(v)
	case "m/s":
		return FormatVelocity(v)
	case "Hz":
		return FormatFrequency(v)
	case "s":
		return FormatSeconds(v)
	}
	return fmt.Sprintf("%g%s", v, unit)
}
