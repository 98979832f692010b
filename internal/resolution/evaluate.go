package resolution

import "fmt"

// Option adjusts how Evaluate runs the chain.
type Option func(*settings)

type settings struct {
	a Proportionality
}

func newSettings(opts []Option) settings {
	s := settings{a: DefaultProportionality}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithProportionality overrides the delta-velocity constant A.
func WithProportionality(a Proportionality) Option {
	return func(s *settings) { s.a = a }
}

// InterfaceEstimate is the depth estimate and its bounds for one interface.
type InterfaceEstimate struct {
	Depth  float64     `json:"depth_m"`
	Bounds DepthBounds `json:"bounds"`
}

// Evaluation is the full model chain at one source-receiver offset.
type Evaluation struct {
	Offset     float64           `json:"offset_m"`
	ZeroOffset TravelTimePair    `json:"zero_offset_times"`
	Times      TravelTimePair    `json:"offset_times"`
	Velocities VelocityPair      `json:"rms_velocities"`
	DeltaV     DeltaVelocityPair `json:"delta_velocities"`
	Top        InterfaceEstimate `json:"top"`
	Bottom     InterfaceEstimate `json:"bottom"`
}

// Evaluate runs the models for p at the given offset. RMS velocities come
// from the zero-offset times; delta velocities and depths use the
// offset-corrected times.
func Evaluate(p LayerParameters, offset float64, opts ...Option) (Evaluation, error) {
	if err := p.Validate(); err != nil {
		return Evaluation{}, err
	}
	s := newSettings(opts)

	t0, err := ZeroOffsetTimes(p.Thickness, p.V1, p.V2, p.TopDepth)
	if err != nil {
		return Evaluation{}, err
	}
	vrms, err := RMSVelocities(t0, p.V1, p.V2)
	if err != nil {
		return Evaluation{}, err
	}
	tx, err := OffsetTimes(t0, vrms, offset)
	if err != nil {
		return Evaluation{}, err
	}
	dv, err := DeltaVelocities(tx, vrms, offset, p.PeakFrequency, s.a)
	if err != nil {
		return Evaluation{}, err
	}

	top, err := estimateInterface(tx.Top, vrms.Top, offset, dv.Top)
	if err != nil {
		return Evaluation{}, fmt.Errorf("top interface: %w", err)
	}
	bottom, err := estimateInterface(tx.Bottom, vrms.Bottom, offset, dv.Bottom)
	if err != nil {
		return Evaluation{}, fmt.Errorf("bottom interface: %w", err)
	}

	return Evaluation{
		Offset:     offset,
		ZeroOffset: t0,
		Times:      tx,
		Velocities: vrms,
		DeltaV:     dv,
		Top:        top,
		Bottom:     bottom,
	}, nil
}

func estimateInterface(t, v, offset, dv float64) (InterfaceEstimate, error) {
	depth, err := EstimateDepth(t, v, offset)
	if err != nil {
		return InterfaceEstimate{}, err
	}
	bounds, err := EstimateDepthBounds(t, v, offset, dv)
	if err != nil {
		return InterfaceEstimate{}, err
	}
	return InterfaceEstimate{Depth: depth, Bounds: bounds}, nil
}
