package config

import "math"

// Param identifies one adjustable model input.
type Param int

const (
	ParamDepth Param = iota
	ParamThickness
	ParamV1
	ParamV2
	ParamFrequency
	ParamMaxOffset
)

// Params lists the adjustable inputs in display order.
var Params = []Param{
	ParamDepth,
	ParamThickness,
	ParamV1,
	ParamV2,
	ParamFrequency,
	ParamMaxOffset,
}

func (p Param) String() string {
	switch p {
	case ParamDepth:
		return "Depth"
	case ParamThickness:
		return "Thickness"
	case ParamV1:
		return "V1"
	case ParamV2:
		return "V2"
	case ParamFrequency:
		return "Peak freq"
	case ParamMaxOffset:
		return "Max offset"
	}
	return "unknown"
}

// Unit is the display unit of p.
func (p Param) Unit() string {
	switch p {
	case ParamV1, ParamV2:
		return "m/s"
	case ParamFrequency:
		return "Hz"
	}
	return "m"
}

// Range is a slider domain: values Min, Min+Step, ... up to Max.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Ranges holds the slider domain of every Param.
var Ranges = map[Param]Range{
	ParamDepth:     {Min: 1, Max: 10000, Step: 1},
	ParamThickness: {Min: 1, Max: 1000, Step: 1},
	ParamV1:        {Min: 500, Max: 6000, Step: 50},
	ParamV2:        {Min: 500, Max: 6000, Step: 50},
	ParamFrequency: {Min: 8, Max: 80, Step: 1},
	ParamMaxOffset: {Min: 700, Max: 10000, Step: 10},
}

// Steps is the number of step positions above Min.
func (r Range) Steps() int {
	if r.Step <= 0 {
		return 0
	}
	return int(math.Floor((r.Max - r.Min) / r.Step))
}

// Clamp snaps v to the nearest step and limits it to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	if r.Step > 0 && !math.IsInf(v, 0) {
		v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Progress maps v to its step position in [0, Steps()].
func (r Range) Progress(v float64) int {
	if r.Step <= 0 {
		return 0
	}
	return int(math.Round((r.Clamp(v) - r.Min) / r.Step))
}

// FromProgress maps a step position back to a value.
func (r Range) FromProgress(i int) float64 {
	return r.Clamp(r.Min + float64(i)*r.Step)
}

// Fraction is v's position within the range as a value in [0, 1].
func (r Range) Fraction(v float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	return (r.Clamp(v) - r.Min) / (r.Max - r.Min)
}
