// GeoRZA CLI — evaluate depth uncertainty for a layer from the command line.
//
// Usage:
//
//	georza <command> [flags]
//
// Commands:
//
//	evaluate  Run the models at one offset
//	sweep     Analyze uncertainty across an offset sweep
//	project   Project error bars into a view and print the frame
//	version   Print version information
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/georza/internal/analysis"
	"github.com/Mr-Dark-debug/georza/internal/config"
	"github.com/Mr-Dark-debug/georza/internal/logger"
	"github.com/Mr-Dark-debug/georza/internal/projector"
	"github.com/Mr-Dark-debug/georza/internal/resolution"
	"github.com/Mr-Dark-debug/georza/pkg/jsonutil"
	"github.com/Mr-Dark-debug/georza/pkg/units"
)

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "evaluate":
		cmdEvaluate(os.Args[2:])
	case "sweep":
		cmdSweep(os.Args[2:])
	case "project":
		cmdProject(os.Args[2:])
	case "version":
		fmt.Printf("GeoRZA v%s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`GeoRZA — seismic resolution and depth uncertainty

Usage:
  georza <command> [flags]

Commands:
  evaluate   Run the models at one offset
  sweep      Analyze uncertainty across an offset sweep
  project    Project error bars into a view and print the frame
  version    Print version information

Layer flags (all commands): -depth -thickness -v1 -v2 -freq -max-offset
Environment: GEORZA_DEPTH, GEORZA_V1, ... override the defaults.

Run 'georza <command> --help' for details on each command.`)
}

// setup parses the shared layer flags plus any command flags and builds the
// logger. Commands log to stderr so stdout stays machine readable.
func setup(fs *flag.FlagSet, args []string) (config.Config, *zap.Logger, func() error) {
	cfg := config.Load()
	config.BindFlags(fs, &cfg)
	fs.Parse(args)

	log, closeLog, err := logger.NewLogger(cfg.LogLevel, logger.WithFile(cfg.LogFile),
		logger.WithFields(zap.String("command", fs.Name())))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug("starting",
		zap.Float64("depth_m", cfg.Layer.TopDepth),
		zap.Float64("thickness_m", cfg.Layer.Thickness),
		zap.Float64("v1_mps", cfg.Layer.V1),
		zap.Float64("v2_mps", cfg.Layer.V2),
		zap.Float64("freq_hz", cfg.Layer.PeakFrequency),
		zap.Float64("max_offset_m", cfg.Layer.MaxOffset))

	if changes, err := jsonutil.Diff(config.DefaultConfig(), cfg); err == nil {
		for _, c := range changes {
			log.Info("override", zap.Stringer("change", c))
		}
	}

	return cfg, log, closeLog
}

func proportionality(a float64) []resolution.Option {
	return []resolution.Option{resolution.WithProportionality(resolution.Proportionality{Top: a, Bottom: a})}
}

// cmdEvaluate runs the chain at a single offset.
func cmdEvaluate(args []string) {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	offset := fs.Float64("offset", -1, "Source-receiver offset in meters (default: max offset)")
	a := fs.Float64("a", resolution.DefaultProportionality.Top, "Delta-velocity proportionality constant")
	outputFormat := fs.String("format", "markdown", "Output format: markdown, json")
	cfg, log, closeLog := setup(fs, args)
	defer closeLog()

	x := *offset
	if x < 0 {
		x = cfg.Layer.MaxOffset
	}

	ev, err := resolution.Evaluate(cfg.Layer, x, proportionality(*a)...)
	if err != nil {
		log.Error("evaluation failed", zap.Float64("offset_m", x), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Evaluation failed: %v\n", err)
		exit(err, closeLog)
	}

	switch *outputFormat {
	case "json":
		printJSON(ev)
	case "markdown":
		fmt.Print(formatEvaluation(cfg.Layer, ev))
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *outputFormat)
		os.Exit(1)
	}
}

// cmdSweep runs the analyzer across evenly spaced offsets.
func cmdSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	a := fs.Float64("a", resolution.DefaultProportionality.Top, "Delta-velocity proportionality constant")
	outputFormat := fs.String("format", "markdown", "Output format: markdown, json")
	cfg, log, closeLog := setup(fs, args)
	defer closeLog()

	analyzer := analysis.NewAnalyzer(cfg.Layer, proportionality(*a)...)
	report, err := analyzer.Analyze(cfg.Bars)
	if err != nil {
		log.Error("analysis failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		exit(err, closeLog)
	}
	for _, w := range report.Warnings {
		log.Warn(w)
	}

	switch *outputFormat {
	case "json":
		printJSON(report)
	case "markdown":
		fmt.Print(analysis.FormatReport(report))
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *outputFormat)
		os.Exit(1)
	}
}

// cmdProject prints the projected frame for a view of the given size.
func cmdProject(args []string) {
	fs := flag.NewFlagSet("project", flag.ExitOnError)
	width := fs.Float64("width", 1000, "View width in pixels")
	height := fs.Float64("height", 600, "View height in pixels")
	padding := fs.Float64("padding", 20, "Padding on every side in pixels")
	a := fs.Float64("a", resolution.DefaultProportionality.Top, "Delta-velocity proportionality constant")
	cfg, log, closeLog := setup(fs, args)
	defer closeLog()

	view := projector.View{
		Width:         *width,
		Height:        *height,
		PaddingLeft:   *padding,
		PaddingTop:    *padding,
		PaddingRight:  *padding,
		PaddingBottom: *padding,
		DepthMin:      cfg.DepthMin,
		DepthMax:      cfg.DepthMax,
	}

	frame, err := projector.Project(cfg.Layer, cfg.Bars, view, proportionality(*a)...)
	if err != nil {
		log.Error("projection failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Projection failed: %v\n", err)
		exit(err, closeLog)
	}
	for _, s := range frame.Skipped {
		log.Warn("sample skipped",
			zap.Int("index", s.Index),
			zap.Float64("offset_m", s.Offset),
			zap.Error(s.Err))
	}
	printJSON(frame)
}

func printJSON(v any) {
	s, err := jsonutil.Pretty(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(s)
}

// exit flushes the log and exits with 2 for bad input and 1 for anything
// else.
func exit(err error, closeLog func() error) {
	_ = closeLog()
	if errors.Is(err, resolution.ErrInvalidGeometry) || errors.Is(err, projector.ErrInvalidView) {
		os.Exit(2)
	}
	os.Exit(1)
}

func formatEvaluation(p resolution.LayerParameters, ev resolution.Evaluation) string {
	var b strings.Builder

	b.WriteString("# GeoRZA Evaluation\n\n")
	b.WriteString(fmt.Sprintf("**Layer:** %s\n", p))
	b.WriteString(fmt.Sprintf("**Offset:** %s\n\n", units.FormatMeters(ev.Offset)))

	b.WriteString("| | Top | Bottom |\n")
	b.WriteString("|---|---|---|\n")
	b.WriteString(fmt.Sprintf("| t0 | %s | %s |\n", units.FormatSeconds(ev.ZeroOffset.Top), units.FormatSeconds(ev.ZeroOffset.Bottom)))
	b.WriteString(fmt.Sprintf("| t(x) | %s | %s |\n", units.FormatSeconds(ev.Times.Top), units.FormatSeconds(ev.Times.Bottom)))
	b.WriteString(fmt.Sprintf("| Vrms | %s | %s |\n", units.FormatVelocity(ev.Velocities.Top), units.FormatVelocity(ev.Velocities.Bottom)))
	b.WriteString(fmt.Sprintf("| ΔV | %s | %s |\n", units.FormatVelocity(ev.DeltaV.Top), units.FormatVelocity(ev.DeltaV.Bottom)))
	b.WriteString(fmt.Sprintf("| Depth | %s | %s |\n", units.FormatMeters(ev.Top.Depth), units.FormatMeters(ev.Bottom.Depth)))
	b.WriteString(fmt.Sprintf("| Depth − | %s | %s |\n", units.FormatMeters(ev.Top.Bounds.Minus), units.FormatMeters(ev.Bottom.Bounds.Minus)))
	b.WriteString(fmt.Sprintf("| Depth + | %s | %s |\n", units.FormatMeters(ev.Top.Bounds.Plus), units.FormatMeters(ev.Bottom.Bounds.Plus)))
	b.WriteString("\n")

	return b.String()
}
