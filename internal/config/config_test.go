package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3500.0, cfg.Layer.TopDepth)
	assert.Equal(t, 500.0, cfg.Layer.Thickness)
	assert.Equal(t, 65.0, cfg.Layer.PeakFrequency)
	assert.Equal(t, 6000.0, cfg.Layer.MaxOffset)
	assert.Equal(t, 10, cfg.Bars)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GEORZA_DEPTH", "1200")
	t.Setenv("GEORZA_FREQ", " 30 ")
	t.Setenv("GEORZA_BARS", "not-a-number")
	t.Setenv("GEORZA_LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, 1200.0, cfg.Layer.TopDepth)
	assert.Equal(t, 30.0, cfg.Layer.PeakFrequency)
	assert.Equal(t, 10, cfg.Bars, "unparseable values fall back to the default")
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestBindFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	BindFlags(fs, &cfg)

	require.NoError(t, fs.Parse([]string{"-depth", "800", "-v2", "3100", "-bars", "4"}))
	assert.Equal(t, 800.0, cfg.Layer.TopDepth)
	assert.Equal(t, 3100.0, cfg.Layer.V2)
	assert.Equal(t, 4, cfg.Bars)
	assert.Equal(t, 2000.0, cfg.Layer.V1, "unset flags keep their defaults")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bars = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.DepthMax = cfg.DepthMin
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Layer.V1 = -1
	assert.Error(t, cfg.Validate())
}

func TestRangeClamp(t *testing.T) {
	depth := Ranges[ParamDepth]
	assert.Equal(t, 1.0, depth.Clamp(0))
	assert.Equal(t, 10000.0, depth.Clamp(10001))
	assert.Equal(t, 12.0, depth.Clamp(12.4))

	v1 := Ranges[ParamV1]
	assert.Equal(t, 2000.0, v1.Clamp(2024))
	assert.Equal(t, 500.0, v1.Clamp(-3000))

	offset := Ranges[ParamMaxOffset]
	assert.Equal(t, 700.0, offset.Clamp(704))
	assert.Equal(t, 930, offset.Steps())
}

func TestRangeProgress(t *testing.T) {
	freq := Ranges[ParamFrequency]
	assert.Equal(t, 72, freq.Steps())
	assert.Equal(t, 57, freq.Progress(65))
	assert.Equal(t, 65.0, freq.FromProgress(57))
	assert.Equal(t, 80.0, freq.FromProgress(500))
	assert.InDelta(t, 0.5, Range{Min: 0, Max: 10, Step: 1}.Fraction(5), 1e-12)
}

func TestSetFitsLayer(t *testing.T) {
	cfg := DefaultConfig()

	got, err := cfg.Set(ParamDepth, 9800)
	require.NoError(t, err)
	assert.Equal(t, 9500.0, got, "depth is reduced so the layer fits")
	assert.Equal(t, 9500.0, cfg.Layer.TopDepth)

	got, err = cfg.Set(ParamThickness, 800)
	require.NoError(t, err)
	assert.Equal(t, 500.0, got, "thickness is reduced so the layer fits")

	got, err = cfg.Set(ParamDepth, 2000)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, got)
	got, err = cfg.Set(ParamThickness, 800)
	require.NoError(t, err)
	assert.Equal(t, 800.0, got)
}

func TestSetIsIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	first, err := cfg.Set(ParamV2, 3333)
	require.NoError(t, err)
	snapshot := cfg

	second, err := cfg.Set(ParamV2, 3333)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, cfg)
	assert.Equal(t, 3350.0, cfg.Layer.V2)
}

func TestStep(t *testing.T) {
	cfg := DefaultConfig()

	got, err := cfg.Step(ParamFrequency, 1)
	require.NoError(t, err)
	assert.Equal(t, 66.0, got)

	got, err = cfg.Step(ParamFrequency, -100)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got)

	got, err = cfg.Step(ParamMaxOffset, 10)
	require.NoError(t, err)
	assert.Equal(t, 6100.0, got)

	_, err = cfg.Step(Param(99), 1)
	assert.ErrorIs(t, err, ErrUnknownParam)
}

func TestParamLabels(t *testing.T) {
	assert.Len(t, Params, len(Ranges))
	for _, p := range Params {
		assert.NotEqual(t, "unknown", p.String())
		assert.NotEmpty(t, p.Unit())
	}
	assert.Equal(t, "m/s", ParamV1.Unit())
	assert.Equal(t, "Hz", ParamFrequency.Unit())
}
