// Package analysis summarizes how depth uncertainty behaves across an
// offset sweep. All results come from the closed-form models in
// internal/resolution; nothing here is estimated from data.
//
// Key capabilities:
//   - Per-offset table of depth estimates and uncertainty spans
//   - Summary statistics of the spans for each interface
//   - Power-law decay fit of span against offset via log-log regression
//   - Vertical and lateral resolution figures for the layer
package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Mr-Dark-debug/georza/internal/resolution"
	"github.com/Mr-Dark-debug/georza/pkg/units"
)

// Analyzer runs the models over offset sweeps for one layer.
type Analyzer struct {
	params resolution.LayerParameters
	opts   []resolution.Option
	now    func() time.Time
}

// NewAnalyzer creates an analyzer for p. Options are passed through to
// resolution.Evaluate.
func NewAnalyzer(p resolution.LayerParameters, opts ...resolution.Option) *Analyzer {
	return &Analyzer{params: p, opts: opts, now: time.Now}
}

// ============================================================
// Sweep Table
// ============================================================

// SampleRow is one successfully evaluated offset.
type SampleRow struct {
	Index        int     `json:"index"`
	Offset       float64 `json:"offset_m"`
	TopDepth     float64 `json:"top_depth_m"`
	TopSpan      float64 `json:"top_span_m"`
	BottomDepth  float64 `json:"bottom_depth_m"`
	BottomSpan   float64 `json:"bottom_span_m"`
	DeltaVTop    float64 `json:"delta_v_top_mps"`
	DeltaVBottom float64 `json:"delta_v_bottom_mps"`
	// Separable is false when the two error bars overlap, i.e. the
	// interfaces cannot be told apart at this offset.
	Separable bool `json:"separable"`
}

func newRow(index int, ev resolution.Evaluation) SampleRow {
	top, bottom := ev.Top, ev.Bottom
	return SampleRow{
		Index:        index,
		Offset:       ev.Offset,
		TopDepth:     top.Depth,
		TopSpan:      top.Bounds.Span(),
		BottomDepth:  bottom.Depth,
		BottomSpan:   bottom.Bounds.Span(),
		DeltaVTop:    ev.DeltaV.Top,
		DeltaVBottom: ev.DeltaV.Bottom,
		Separable:    top.Bounds.Plus < bottom.Bounds.Minus,
	}
}

// ============================================================
// Span Statistics
// ============================================================

// SpanSummary describes the uncertainty spans (Plus - Minus) of one
// interface across the sweep.
type SpanSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean_m"`
	StdDev float64 `json:"stddev_m"`
	Min    float64 `json:"min_m"`
	Max    float64 `json:"max_m"`
}

func summarize(spans []float64) *SpanSummary {
	if len(spans) == 0 {
		return nil
	}
	s := &SpanSummary{
		Count: len(spans),
		Mean:  stat.Mean(spans, nil),
		Min:   floats.Min(spans),
		Max:   floats.Max(spans),
	}
	if len(spans) > 1 {
		s.StdDev = stat.StdDev(spans, nil)
	}
	return s
}

// ============================================================
// Decay Fit
// ============================================================

// DecayFit is the least-squares fit ln(span) = Intercept + Exponent·ln(offset).
// For small offsets the closed form gives an exponent close to -2; it
// approaches -1 as the offset grows large relative to depth.
type DecayFit struct {
	Exponent  float64 `json:"exponent"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	Points    int     `json:"points"`
}

// dataPoint is one (ln offset, ln span) observation.
type dataPoint struct {
	x float64
	y float64
}

// fitDecay fits the spans against offsets in log-log space. Pairs with a
// non-positive offset or span carry no information and are dropped.
func fitDecay(offsets, spans []float64) *DecayFit {
	var points []dataPoint
	for i := range offsets {
		if offsets[i] > 0 && spans[i] > 0 {
			points = append(points, dataPoint{x: math.Log(offsets[i]), y: math.Log(spans[i])})
		}
	}
	if len(points) < 2 {
		return nil
	}
	slope, intercept, rSquared := linearRegression(points)
	return &DecayFit{
		Exponent:  slope,
		Intercept: intercept,
		RSquared:  rSquared,
		Points:    len(points),
	}
}

// linearRegression computes ordinary least squares regression.
// Returns slope (m), intercept (b), and R-squared goodness of fit.
func linearRegression(points []dataPoint) (slope, intercept, rSquared float64) {
	if len(points) < 2 {
		return 0, 0, 0
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.x, p.y
	}

	if floats.Min(xs) == floats.Max(xs) {
		return 0, stat.Mean(ys, nil), 0
	}

	intercept, slope = stat.LinearRegression(xs, ys, nil, false)

	// A flat response is fit exactly; RSquared would divide by zero.
	if floats.Min(ys) == floats.Max(ys) {
		return slope, intercept, 1.0
	}
	return slope, intercept, stat.RSquared(xs, ys, nil, intercept, slope)
}

// ============================================================
// Resolution Figures
// ============================================================

// ResolutionFigures are the classic vertical and lateral resolution
// limits for the layer at its peak frequency.
type ResolutionFigures struct {
	// TuningThickness is the layer's quarter wavelength v2/(4f).
	TuningThickness float64 `json:"tuning_thickness_m"`
	// TopFresnelRadius and BottomFresnelRadius are first Fresnel zone
	// radii at each interface's zero-offset time.
	TopFresnelRadius    float64 `json:"top_fresnel_radius_m"`
	BottomFresnelRadius float64 `json:"bottom_fresnel_radius_m"`
	// Resolvable is true when the layer is thicker than TuningThickness.
	Resolvable bool `json:"resolvable"`
}

func resolutionFigures(p resolution.LayerParameters, t0 resolution.TravelTimePair, v resolution.VelocityPair) (ResolutionFigures, error) {
	tuning, err := resolution.VerticalResolution(p.V2, p.PeakFrequency)
	if err != nil {
		return ResolutionFigures{}, err
	}
	top, err := resolution.FresnelRadius(v.Top, t0.Top, p.PeakFrequency)
	if err != nil {
		return ResolutionFigures{}, err
	}
	bottom, err := resolution.FresnelRadius(v.Bottom, t0.Bottom, p.PeakFrequency)
	if err != nil {
		return ResolutionFigures{}, err
	}
	return ResolutionFigures{
		TuningThickness:     tuning,
		TopFresnelRadius:    top,
		BottomFresnelRadius: bottom,
		Resolvable:          p.Thickness > tuning,
	}, nil
}

// ============================================================
// Full Report
// ============================================================

// Report is the complete output of `georza sweep`.
type Report struct {
	GeneratedAt  string                     `json:"generated_at"`
	Parameters   resolution.LayerParameters `json:"parameters"`
	ZeroOffset   resolution.TravelTimePair  `json:"zero_offset_times"`
	Velocities   resolution.VelocityPair    `json:"rms_velocities"`
	Resolution   ResolutionFigures          `json:"resolution"`
	Samples      []SampleRow                `json:"samples"`
	TopSpans     *SpanSummary               `json:"top_spans,omitempty"`
	BottomSpans  *SpanSummary               `json:"bottom_spans,omitempty"`
	TopDecay     *DecayFit                  `json:"top_decay,omitempty"`
	BottomDecay  *DecayFit                  `json:"bottom_decay,omitempty"`
	SkippedCount int                        `json:"skipped_count"`
	Warnings     []string                   `json:"warnings"`
}

// Analyze evaluates n offsets spread across [0, MaxOffset] and builds a
// report. Offsets whose chain fails become warnings rather than errors.
func (a *Analyzer) Analyze(n int) (*Report, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d", n)
	}
	return a.AnalyzeOffsets(resolution.Offsets(n, a.params.MaxOffset))
}

// AnalyzeOffsets is Analyze over an explicit offset list.
func (a *Analyzer) AnalyzeOffsets(offsets []float64) (*Report, error) {
	p := a.params
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating layer: %w", err)
	}

	t0, err := resolution.ZeroOffsetTimes(p.Thickness, p.V1, p.V2, p.TopDepth)
	if err != nil {
		return nil, fmt.Errorf("computing zero-offset times: %w", err)
	}
	vrms, err := resolution.RMSVelocities(t0, p.V1, p.V2)
	if err != nil {
		return nil, fmt.Errorf("computing rms velocities: %w", err)
	}
	figures, err := resolutionFigures(p, t0, vrms)
	if err != nil {
		return nil, fmt.Errorf("computing resolution figures: %w", err)
	}

	report := &Report{
		GeneratedAt: a.now().Format(time.RFC3339),
		Parameters:  p,
		ZeroOffset:  t0,
		Velocities:  vrms,
		Resolution:  figures,
	}

	var xs, topSpans, bottomSpans []float64
	overlapping := 0
	for _, s := range resolution.Sweep(p, offsets, a.opts...) {
		if !s.OK() {
			report.SkippedCount++
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("Offset %s skipped: %v", units.FormatMeters(s.Offset), s.Err))
			continue
		}
		row := newRow(s.Index, s.Value)
		report.Samples = append(report.Samples, row)
		if !row.Separable {
			overlapping++
		}
		xs = append(xs, row.Offset)
		topSpans = append(topSpans, row.TopSpan)
		bottomSpans = append(bottomSpans, row.BottomSpan)
	}

	report.TopSpans = summarize(topSpans)
	report.BottomSpans = summarize(bottomSpans)
	report.TopDecay = fitDecay(xs, topSpans)
	report.BottomDecay = fitDecay(xs, bottomSpans)

	// Generate warnings based on analysis
	if !figures.Resolvable {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("⚠ THIN LAYER: thickness %s is below the tuning thickness %s. "+
				"Top and bottom reflections interfere.",
				units.FormatMeters(p.Thickness), units.FormatMeters(figures.TuningThickness)))
	}
	if overlapping > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("⚠ OVERLAPPING BARS at %d of %d offsets: depth uncertainty exceeds the layer thickness.",
				overlapping, len(report.Samples)))
	}
	if len(report.Samples) == 0 && len(offsets) > 0 {
		report.Warnings = append(report.Warnings, "No offset could be evaluated.")
	}

	return report, nil
}

// FormatReport generates a human-readable markdown report.
func FormatReport(report *Report) string {
	var b strings.Builder
	p := report.Parameters

	b.WriteString("# GeoRZA Sweep Report\n\n")
	b.WriteString(fmt.Sprintf("**Layer:** `%s`\n", p))
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", report.GeneratedAt))

	b.WriteString("## Layer Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	b.WriteString(fmt.Sprintf("| Top Depth | %s |\n", units.FormatMeters(p.TopDepth)))
	b.WriteString(fmt.Sprintf("| Bottom Depth | %s |\n", units.FormatMeters(p.BottomDepth())))
	b.WriteString(fmt.Sprintf("| t0 Top | %s |\n", units.FormatSeconds(report.ZeroOffset.Top)))
	b.WriteString(fmt.Sprintf("| t0 Bottom | %s |\n", units.FormatSeconds(report.ZeroOffset.Bottom)))
	b.WriteString(fmt.Sprintf("| Vrms Top | %s |\n", units.FormatVelocity(report.Velocities.Top)))
	b.WriteString(fmt.Sprintf("| Vrms Bottom | %s |\n", units.FormatVelocity(report.Velocities.Bottom)))
	b.WriteString(fmt.Sprintf("| Tuning Thickness | %s |\n", units.FormatMeters(report.Resolution.TuningThickness)))
	b.WriteString(fmt.Sprintf("| Fresnel Radius Top | %s |\n", units.FormatMeters(report.Resolution.TopFresnelRadius)))
	b.WriteString(fmt.Sprintf("| Fresnel Radius Bottom | %s |\n\n", units.FormatMeters(report.Resolution.BottomFresnelRadius)))

	if len(report.Samples) > 0 {
		b.WriteString("## Offset Sweep\n\n")
		b.WriteString("| Offset | Top Depth | Top ± | Bottom Depth | Bottom ± | Separable |\n")
		b.WriteString("|--------|-----------|-------|--------------|----------|-----------|\n")
		for _, r := range report.Samples {
			sep := "yes"
			if !r.Separable {
				sep = "no"
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				units.FormatMeters(r.Offset),
				units.FormatMeters(r.TopDepth), units.FormatMeters(r.TopSpan/2),
				units.FormatMeters(r.BottomDepth), units.FormatMeters(r.BottomSpan/2),
				sep))
		}
		b.WriteString("\n")
	}

	if report.TopSpans != nil || report.BottomSpans != nil {
		b.WriteString("## Uncertainty Statistics\n\n")
		b.WriteString("| Interface | Mean Span | Std Dev | Min | Max | Decay Exponent | R² |\n")
		b.WriteString("|-----------|-----------|---------|-----|-----|----------------|----|\n")
		writeSpanRow(&b, "Top", report.TopSpans, report.TopDecay)
		writeSpanRow(&b, "Bottom", report.BottomSpans, report.BottomDecay)
		b.WriteString("\n")
	}

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			b.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	return b.String()
}

func writeSpanRow(b *strings.Builder, name string, s *SpanSummary, fit *DecayFit) {
	if s == nil {
		return
	}
	exp, r2 := "—", "—"
	if fit != nil {
		exp = fmt.Sprintf("%.3f", fit.Exponent)
		r2 = fmt.Sprintf("%.3f", fit.RSquared)
	}
	b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
		name,
		units.FormatMeters(s.Mean), units.FormatMeters(s.StdDev),
		units.FormatMeters(s.Min), units.FormatMeters(s.Max),
		exp, r2))
}
