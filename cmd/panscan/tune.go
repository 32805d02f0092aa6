package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/herlein/panscan/pkg/device"
	"github.com/herlein/panscan/pkg/freq"
	"github.com/herlein/panscan/pkg/logging"
	"github.com/herlein/panscan/pkg/palette"
	"github.com/herlein/panscan/pkg/spectrum"
	"github.com/spf13/cobra"
)

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Tune the main spectrum of a receiver",
	Long: `Apply a center frequency, LNB offset, sample rate, zoom and
demodulation filter to the main spectrum of a known receiver and print the
resulting frequency state. Values outside the receiver limits are clamped
the same way the spectrum view clamps them.

Examples:
  panscan tune --freq 100e6 --bw 200e3
  panscan tune --driver airspy --freq 145.5e6 --lo 145.525e6 --bw 3e3 --skew usb
  panscan tune --driver hackrf --lnb -9750e6 --freq 10.489e9 --rate 2e6 --zoom 8`,
	RunE: runTune,
}

func init() {
	flags := tuneCmd.Flags()
	flags.String("driver", "rtlsdr", "receiver driver ("+strings.Join(driverNames(), ", ")+")")
	flags.Float64("freq", 100e6, "center frequency in Hz")
	flags.Float64("lnb", 0, "LNB offset in Hz")
	flags.Float64("rate", 2.4e6, "sample rate in Hz")
	flags.Uint("zoom", 1, "zoom factor")
	flags.Float64("bw", 200e3, "demodulation filter bandwidth in Hz")
	flags.String("skew", "symmetric", "filter skewness (symmetric, lower, upper)")
	flags.Float64("lo", 0, "absolute demodulation frequency in Hz (default: center)")
	flags.String("palette", "", "waterfall palette")
	rootCmd.AddCommand(tuneCmd)
}

// tuneOptions is a main spectrum setup applied by tune
type tuneOptions struct {
	Center    int64
	Lnb       int64
	Rate      uint64
	Zoom      uint
	Bandwidth uint32
	Skewness  freq.Skewness
	Lo        int64 // absolute, 0 keeps the LO on the center
	Palette   *palette.Palette
}

// tuneDisplay keeps the last value pushed by the controller
type tuneDisplay struct {
	center    int64
	rate      uint64
	span      uint64
	env       freq.Envelope
	low, high int64
	offset    int64
	units     int64
	palette   *palette.Palette
}

func (d *tuneDisplay) SetCenterFreq(f int64)              { d.center = f }
func (d *tuneDisplay) SetSampleRate(rate uint64)          { d.rate = rate }
func (d *tuneDisplay) SetSpanFreq(span uint64)            { d.span = span }
func (d *tuneDisplay) SetDemodRanges(env freq.Envelope)   { d.env = env }
func (d *tuneDisplay) SetFilterEdges(low, high int64)     { d.low, d.high = low, high }
func (d *tuneDisplay) SetFilterOffset(offset int64)       { d.offset = offset }
func (d *tuneDisplay) SetFreqUnits(units int64)           { d.units = units }
func (d *tuneDisplay) SetPandapterRange(float32, float32) {}
func (d *tuneDisplay) SetWaterfallRange(float32, float32) {}
func (d *tuneDisplay) SetPalette(p *palette.Palette)      { d.palette = p }

// tune drives a spectrum controller for drv through opts in the order the
// spectrum view applies a device change
func tune(ctx context.Context, drv device.Driver, opts tuneOptions) (*spectrum.Controller, *tuneDisplay) {
	disp := &tuneDisplay{}
	c := spectrum.New(disp, &spectrum.Config{
		Listener: spectrum.Listener{
			FrequencyChanged: func(f int64) {
				logger.Debug(ctx, "frequency changed", logging.String("freq", freq.Format(f)))
			},
			LoChanged: func(lo int64) {
				logger.Debug(ctx, "LO changed", logging.String("offset", freq.Format(lo)))
			},
			BandwidthChanged: func(bw uint32) {
				logger.Debug(ctx, "bandwidth changed", logging.String("bw", freq.Format(int64(bw))))
			},
			LnbFrequencyChanged: func(lnb int64) {
				logger.Debug(ctx, "LNB changed", logging.String("lnb", freq.Format(lnb)))
			},
		},
		DebugLog: logging.Debugf(logger, logging.String("component", "spectrum")),
	})

	c.SetFrequencyLimits(int64(drv.MinFreq), int64(drv.MaxFreq))
	c.HandleLnbInput(opts.Lnb)
	c.SetSampleRate(opts.Rate)
	c.SetZoom(opts.Zoom)
	c.HandleFrequencyInput(opts.Center)
	c.SetFilterBandwidth(opts.Bandwidth)
	c.SetFilterSkewness(opts.Skewness)
	if opts.Lo != 0 {
		c.HandleLoInput(opts.Lo)
	}
	c.SetPaletteGradient(opts.Palette)

	return c, disp
}

func runTune(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	driver, _ := flags.GetString("driver")
	center, _ := flags.GetFloat64("freq")
	lnb, _ := flags.GetFloat64("lnb")
	rate, _ := flags.GetFloat64("rate")
	zoom, _ := flags.GetUint("zoom")
	bw, _ := flags.GetFloat64("bw")
	skew, _ := flags.GetString("skew")
	lo, _ := flags.GetFloat64("lo")
	paletteName, _ := flags.GetString("palette")

	drv, err := device.LookupDriver(driver)
	if err != nil {
		return err
	}
	skw, err := freq.ParseSkewness(skew)
	if err != nil {
		return err
	}
	if rate <= 0 || bw < 0 {
		return fmt.Errorf("sample rate and bandwidth must be positive")
	}

	opts := tuneOptions{
		Center:    int64(center),
		Lnb:       int64(lnb),
		Rate:      uint64(rate),
		Zoom:      zoom,
		Bandwidth: uint32(bw),
		Skewness:  skw,
		Lo:        int64(lo),
	}
	if paletteName != "" {
		table, err := loadPalettes(cmd.Context())
		if err != nil {
			return err
		}
		p, ok := table.Lookup(paletteName)
		if !ok {
			return fmt.Errorf("unknown palette %q (have %s)", paletteName, strings.Join(table.Names(), ", "))
		}
		opts.Palette = p
	}

	c, disp := tune(cmd.Context(), drv, opts)

	low, high := c.FilterEdges()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Receiver:      %s (%s)\n", drv.Label, titleCaser.String(drv.Name))
	fmt.Fprintf(out, "Center:        %s (legal %s - %s)\n",
		freq.Format(c.CenterFreq()), freq.Format(c.CenterRange().Min), freq.Format(c.CenterRange().Max))
	fmt.Fprintf(out, "Tuned:         %s (LNB %s)\n", freq.Format(c.TunedFreq()), freq.Format(c.LnbFreq()))
	fmt.Fprintf(out, "Sample rate:   %s\n", freq.Format(int64(c.SampleRate())))
	fmt.Fprintf(out, "Span:          %s (zoom x%d)\n", freq.Format(int64(c.Span())), c.Zoom())
	fmt.Fprintf(out, "Demodulator:   %s (offset %s)\n", freq.Format(c.LoAbsolute()), freq.Format(c.LoFreq()))
	fmt.Fprintf(out, "Filter:        %s %s, edges %s / %s\n",
		freq.Format(int64(c.Bandwidth())), c.Skewness(), freq.Format(low), freq.Format(high))
	fmt.Fprintf(out, "Display units: %s\n", freq.UnitSuffix(disp.units))
	if disp.palette != nil {
		fmt.Fprintf(out, "Palette:       %s\n", disp.palette.Name)
	}
	return nil
}
