package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/herlein/panscan/pkg/config"
	"github.com/herlein/panscan/pkg/device"
	"github.com/herlein/panscan/pkg/freq"
	"github.com/herlein/panscan/pkg/logging"
	"github.com/herlein/panscan/pkg/metrics"
	"github.com/herlein/panscan/pkg/panoramic"
	"github.com/herlein/panscan/pkg/specan"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var (
	simDriver   string
	simFrames   int
	simBins     int
	simSeed     int64
	simNoise    float64
	simCarriers []string
	simSave     bool
	simThresh   float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the panoramic scanner on synthetic frames",
	Long: `Run a panoramic scan session on a simulated receiver. Frames are
synthesized from the configured carriers, the view is zoomed in, zoomed
further into fixed frequency mode and then panned against the lower scan
limit. Every scan window change is logged.

Examples:
  panscan simulate
  panscan simulate --driver hackrf --carrier 433.92e6:-30 --save
  panscan simulate --frames 600 --fps 60 --metrics-addr :9100`,
	RunE: runSimulate,
}

func init() {
	flags := simulateCmd.Flags()
	flags.StringVar(&simDriver, "driver", "rtlsdr", "simulated receiver driver")
	flags.IntVar(&simFrames, "frames", 240, "number of frames to feed")
	flags.IntVar(&simBins, "bins", specan.DefaultBins, "FFT bins per frame")
	flags.Int64Var(&simSeed, "seed", 1, "random seed")
	flags.Float64Var(&simNoise, "noise", -90, "noise floor in dB")
	flags.StringSliceVar(&simCarriers, "carrier", []string{"98.1e6:-30", "100e6:-45"}, "carrier as freq:level (Hz:dB)")
	flags.Float64Var(&simThresh, "threshold", -60, "peak level (dB) reported as a signal")
	flags.BoolVar(&simSave, "save", false, "save the scan settings to the state file on exit")
	flags.Float64("min-bw-for-zoom", config.DefaultMinBwForZoom, "bandwidth (Hz) below which zooming enters fixed mode")
	flags.Float64("rel-bw-percent", config.DefaultRelBwPercent, "relative bandwidth factor in percent")
	flags.Int("fps", config.DefaultFps, "frames per second")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address")

	rootCmd.AddCommand(simulateCmd)
}

// scriptStep is a user action applied to the view before a frame
type scriptStep struct {
	frame int
	name  string
	apply func(m *panoramic.Model, s *panoramic.Session)
}

func zoomStep(frame int, factor float64) scriptStep {
	return scriptStep{
		frame: frame,
		name:  fmt.Sprintf("zoom x%g", factor),
		apply: func(m *panoramic.Model, s *panoramic.Session) {
			m.Zoom(factor)
			s.HandleZoom()
		},
	}
}

func panStep(frame int, f int64) scriptStep {
	return scriptStep{
		frame: frame,
		name:  "pan to " + freq.Format(f),
		apply: func(m *panoramic.Model, s *panoramic.Session) {
			m.PanTo(f)
			s.HandleCenterFreq(m.VisibleCenter())
		},
	}
}

func parseCarriers(list []string) ([]specan.Carrier, error) {
	carriers := make([]specan.Carrier, 0, len(list))
	for _, c := range list {
		f, level, ok := strings.Cut(c, ":")
		if !ok {
			return nil, fmt.Errorf("invalid carrier %q, want freq:level", c)
		}
		hz, err := cast.ToFloat64E(f)
		if err != nil || hz < 0 {
			return nil, fmt.Errorf("invalid carrier frequency %q", f)
		}
		db, err := cast.ToFloat64E(level)
		if err != nil {
			return nil, fmt.Errorf("invalid carrier level %q", level)
		}
		carriers = append(carriers, specan.Carrier{FrequencyHz: uint64(hz), LevelDB: db})
	}
	return carriers, nil
}

// loadState reads the persisted scan settings. A missing state file yields
// the defaults.
func loadState(path string) (*config.PanoramicConfig, error) {
	state := config.NewPanoramicConfig()
	objects, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return nil, err
	}
	if obj, ok := objects[config.PanoramicClass]; ok {
		state.Deserialize(obj)
	}
	return state, nil
}

func saveState(path string, state *config.PanoramicConfig) error {
	return config.Save(path, map[string]*config.Object{
		config.PanoramicClass: state.Serialize(),
	})
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "metrics server failed", logging.String("addr", addr), logging.Err(err))
		}
	}()
	logger.Info(ctx, "serving metrics", logging.String("addr", addr))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn(ctx, "metrics server shutdown failed", logging.String("addr", addr), logging.Err(err))
		}
	}
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logger.With(logging.String("cmd", "simulate"))

	carriers, err := parseCarriers(simCarriers)
	if err != nil {
		return err
	}
	drv, err := device.LookupDriver(simDriver)
	if err != nil {
		return err
	}
	state, err := loadState(appCfg.StateFile)
	if err != nil {
		return err
	}
	palettes, err := loadPalettes(ctx)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return err
	}
	if appCfg.MetricsAddr != "" {
		shutdown := serveMetrics(ctx, appCfg.MetricsAddr, reg)
		defer shutdown()
	}

	sweeper := specan.NewSweeper(state.SampleRate, specan.StrategyStochastic, specan.PartitionDiscrete, simSeed)
	model := panoramic.NewModel(int64(state.RangeMin+state.RangeMax)/2, int64(state.SampleRate))
	details := 0

	session := panoramic.NewSession(model, &panoramic.SessionConfig{
		MinBwForZoom: uint64(appCfg.MinBwForZoom),
		RelBwPercent: int(appCfg.RelBwPercent),
		Palettes:     palettes,
		State:        state,
		Recorder:     collector,
		DebugLog:     logging.Debugf(logger, logging.String("component", "panoramic")),
		Events: panoramic.SessionEvents{
			OnDetailChanged: func(w panoramic.Window) {
				details++
				sweeper.SetWindow(w.Start, w.End, w.Fixed)
				log.Info(ctx, "scan window changed",
					logging.String("start", freq.Format(int64(w.Start))),
					logging.String("end", freq.Format(int64(w.End))),
					logging.Bool("fixed", w.Fixed))
			},
			OnStrategyChanged:     sweeper.SetStrategy,
			OnPartitioningChanged: sweeper.SetPartitioning,
			OnRttChanged: func(rtt time.Duration) {
				log.Debug(ctx, "frame round trip changed", logging.Any("rtt", rtt))
			},
		},
	})

	dev := drv.Describe("SIM00001", 0, 0)
	session.SetDevices([]device.Descriptor{dev})
	session.ApplyConfig()
	sweeper.SetStrategy(session.Strategy())
	sweeper.SetPartitioning(session.Partitioning())

	scan := session.ScanRange()
	sweeper.SetWindow(uint64(scan.Start), uint64(scan.End), false)

	if err := session.StartScan(); err != nil {
		return err
	}
	log.Info(ctx, "scan started",
		logging.String("device", dev.Desc()),
		logging.String("range", freq.Format(scan.Start)+" - "+freq.Format(scan.End)),
		logging.String("gains", session.GainLabel()),
		logging.String("strategy", string(session.Strategy())))

	synth := specan.NewSynthesizer(&specan.SynthConfig{
		Bins:     simBins,
		NoiseDB:  simNoise,
		Carriers: carriers,
		Seed:     simSeed,
		DebugLog: logging.Debugf(logger, logging.String("component", "synth")),
	})

	tracker := specan.NewTracker(&specan.TrackerConfig{
		ThresholdDB: float32(simThresh),
		OnDetected: func(sig specan.Signal) {
			log.Info(ctx, "signal detected",
				logging.String("freq", freq.Format(int64(sig.FrequencyHz))),
				logging.Any("level", sig.Level))
		},
		OnLost: func(sig specan.Signal) {
			log.Info(ctx, "signal lost",
				logging.String("freq", freq.Format(int64(sig.FrequencyHz))),
				logging.Int("detections", sig.Detections))
		},
		DebugLog: logging.Debugf(logger, logging.String("component", "tracker")),
	})

	script := []scriptStep{
		zoomStep(simFrames/4, 4),
		zoomStep(simFrames/2, 40),
		panStep(3*simFrames/4, scan.Start),
	}

	ticker := time.NewTicker(time.Second / time.Duration(appCfg.Fps))
	defer ticker.Stop()

	fed := 0
	var snrSum float64
	var lastAverage float32 = specan.NoSignalLevel
	var seen []specan.Peak
loop:
	for i := 0; i < simFrames; i++ {
		select {
		case <-ctx.Done():
			log.Info(ctx, "interrupted")
			break loop
		case <-ticker.C:
		}

		for _, step := range script {
			if step.frame == i {
				log.Info(ctx, "user action", logging.String("action", step.name))
				step.apply(model, session)
			}
		}

		start, end := sweeper.Next()
		frame := synth.Synthesize(start, end)
		session.Feed(frame)
		tracker.Update(frame)
		fed++

		stats := specan.Analyze(frame)
		snrSum += float64(stats.SNR())
		lastAverage = stats.Average
		seen = specan.Carriers(frame, float32(simThresh))
		log.Debug(ctx, "frame",
			logging.String("start", freq.Format(int64(frame.FreqStart))),
			logging.String("end", freq.Format(int64(frame.FreqEnd))),
			logging.String("peak", freq.Format(int64(stats.Peak.FrequencyHz))),
			logging.Any("level", stats.Peak.Level),
			logging.Any("average", stats.Average),
			logging.Any("snr", stats.SNR()),
			logging.Int("carriers", len(seen)))
	}

	session.StopScan()

	measures := session.Autorange().Measures()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n--- Summary ---\n")
	fmt.Fprintf(out, "Frames:          %d\n", fed)
	fmt.Fprintf(out, "Window changes:  %d\n", details)
	if w, ok := session.Autorange().Window(); ok {
		mode := "scanning"
		if w.Fixed {
			mode = "fixed"
		}
		fmt.Fprintf(out, "Last window:     %s - %s (%s)\n",
			freq.Format(int64(w.Start)), freq.Format(int64(w.End)), mode)
	}
	fmt.Fprintf(out, "Demod frequency: %s\n", freq.Format(measures.DemodFreq))
	if fed > 0 {
		fmt.Fprintf(out, "Mean SNR:        %.1f dB\n", snrSum/float64(fed))
		fmt.Fprintf(out, "Average level:   %.1f dB (last frame)\n", lastAverage)
		fmt.Fprintf(out, "Carriers:        %d in the last frame\n", len(seen))
	}
	fmt.Fprintf(out, "Signals seen:    %d\n", tracker.Len())
	for _, sig := range tracker.Signals() {
		fmt.Fprintf(out, "  %-16s max %6.1f dB (%d frames)\n",
			freq.Format(int64(sig.FrequencyHz)), sig.MaxLevel, sig.Detections)
	}

	if simSave {
		if err := saveState(appCfg.StateFile, session.SaveConfig()); err != nil {
			return err
		}
		log.Info(ctx, "scan settings saved", logging.String("path", appCfg.StateFile))
	}
	return nil
}
