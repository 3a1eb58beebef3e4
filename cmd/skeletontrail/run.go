package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/banshee-data/skeletontrail/internal/config"
	"github.com/banshee-data/skeletontrail/internal/monitoring"
	"github.com/banshee-data/skeletontrail/internal/pipeline"
	"github.com/banshee-data/skeletontrail/internal/report"
	"github.com/banshee-data/skeletontrail/internal/sensor"
	"github.com/banshee-data/skeletontrail/internal/skeleton"
	"github.com/banshee-data/skeletontrail/internal/surface"
)

type runOptions struct {
	configPath string
	sensors    []string
	seated     bool
	frames     int
	fps        float64
	outDir     string
	pngEvery   int
	reportPath string
	baud       int
	debug      bool
	trace      bool
}

func newRunCmd() *cobra.Command {
	o := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the trail pipeline against the first available sensor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runPipeline(ctx, o, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", "", "pipeline configuration JSON file")
	f.StringSliceVar(&o.sensors, "sensor", []string{"synthetic"}, "sensor candidates in discovery order: synthetic, file:PATH or serial:PATH")
	f.BoolVar(&o.seated, "seated", false, "use the seated tracking mode")
	f.IntVar(&o.frames, "frames", 0, "stop after this many frames (0 runs until interrupted or the source ends)")
	f.Float64Var(&o.fps, "fps", -1, "synthetic/file pacing in frames per second (0 disables pacing; default from config)")
	f.StringVar(&o.outDir, "out", "", "directory for PNG frames and latest.png")
	f.IntVar(&o.pngEvery, "png-every", 30, "write every Nth frame as PNG (0 writes only latest.png)")
	f.StringVar(&o.reportPath, "report", "", "write a gesture timeline HTML report to this path")
	f.IntVar(&o.baud, "baud", 0, "serial baud rate (default 115200)")
	f.BoolVar(&o.debug, "debug", false, "log diagnostics (gesture transitions, sensor lifecycle)")
	f.BoolVar(&o.trace, "trace", false, "log per-frame telemetry")

	return cmd
}

// frameLimit stops the session after max frames.
type frameLimit struct {
	sensor.FrameHandler
	max    int
	seen   int
	cancel context.CancelFunc
}

func (l *frameLimit) count() {
	l.seen++
	if l.max > 0 && l.seen >= l.max {
		l.cancel()
	}
}

func (l *frameLimit) HandleFrame(f *skeleton.Frame) {
	l.FrameHandler.HandleFrame(f)
	l.count()
}

func (l *frameLimit) HandleFrameError(err error) {
	l.FrameHandler.HandleFrameError(err)
	l.count()
}

func setupLogging(o *runOptions, stderr io.Writer) {
	var diag, trace io.Writer
	if o.debug {
		diag = stderr
	}
	if o.trace {
		trace = stderr
	}
	pipeline.SetLogWriters(stderr, diag, trace)
	sensor.SetLogWriters(stderr, diag, trace)
	monitoring.SetLogWriter(stderr)
}

func buildSensors(o *runOptions, cfg *config.PipelineConfig) ([]sensor.Sensor, error) {
	w, h := cfg.GetRenderWidth(), cfg.GetRenderHeight()
	fps := cfg.GetFrameRate()
	if o.fps >= 0 {
		fps = o.fps
	}

	var out []sensor.Sensor
	for _, candidate := range o.sensors {
		kind, arg, _ := strings.Cut(candidate, ":")
		switch kind {
		case "synthetic":
			s := sensor.NewSynthetic(w, h)
			s.FrameRate = fps
			out = append(out, s)
		case "file":
			if arg == "" {
				return nil, fmt.Errorf("sensor %q: missing path", candidate)
			}
			s := sensor.NewFileStream(arg, w, h)
			if o.fps >= 0 {
				s.FrameRate = o.fps
			}
			out = append(out, s)
		case "serial":
			if arg == "" {
				return nil, fmt.Errorf("sensor %q: missing port", candidate)
			}
			s, err := sensor.NewSerial(arg, sensor.PortOptions{BaudRate: o.baud}, w, h, nil, nil)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		default:
			return nil, fmt.Errorf("unknown sensor %q: expected synthetic, file:PATH or serial:PATH", candidate)
		}
	}
	return out, nil
}

func runPipeline(ctx context.Context, o *runOptions, stdout, stderr io.Writer) error {
	setupLogging(o, stderr)

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	renderCfg, err := cfg.RenderConfig()
	if err != nil {
		return err
	}

	candidates, err := buildSensors(o, cfg)
	if err != nil {
		return err
	}
	mode := cfg.GetTrackingMode()
	if o.seated {
		mode = skeleton.ModeSeated
	}
	for _, s := range candidates {
		s.SetTrackingMode(mode)
	}

	status := monitoring.NewLogStatus()
	active, err := sensor.Discover(ctx, candidates...)
	if errors.Is(err, sensor.ErrNoSensor) {
		status.SetStatus(monitoring.NoSensorReady)
		return nil
	}
	if err != nil {
		return err
	}
	defer active.Stop()

	surfaces := surface.Tee{surface.NewRecorder()}
	var png *surface.PNGSurface
	if o.outDir != "" {
		if err := os.MkdirAll(o.outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		png, err = surface.NewPNGSurface(o.outDir, renderCfg.Width, renderCfg.Height, o.pngEvery)
		if err != nil {
			return err
		}
		surfaces = append(surfaces, png)
	}

	var timeline *report.Timeline
	ctrl := pipeline.NewController(pipeline.Config{
		ListSize:      cfg.GetListSize(),
		FrameInterval: cfg.GetFrameInterval(),
		TrailStep:     cfg.GetTrailStep(),
		Render:        renderCfg,
	}, active, surfaces)
	if o.reportPath != "" {
		timeline = report.NewTimeline(ctrl.SessionID(), renderCfg.Palette.Bones)
		ctrl.AddObservers(timeline)
	}

	status.SetStatus(fmt.Sprintf("running %s (%s mode)", active.Name(), mode))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	handler := &frameLimit{FrameHandler: ctrl, max: o.frames, cancel: cancel}
	if err := active.Run(runCtx, handler); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("sensor %s: %w", active.Name(), err)
	}
	ctrl.Close()

	if png != nil && png.Image() != nil {
		latest := filepath.Join(o.outDir, "latest.png")
		if err := png.SaveLatest(latest); err != nil {
			return err
		}
	}
	if timeline != nil {
		if err := writeReport(o.reportPath, timeline); err != nil {
			return err
		}
	}

	st := ctrl.Stats()
	_, err = fmt.Fprintf(stdout, "session %s: frames=%d admitted=%d rendered=%d failures=%d transitions=%d final=%s\n",
		ctrl.SessionID(), st.Frames, st.Admitted, st.Rendered, st.Failures, st.Transitions, ctrl.State())
	return err
}

func writeReport(path string, t *report.Timeline) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := t.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
