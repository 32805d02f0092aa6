// Package metrics exposes Prometheus collectors for the panoramic scanner.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the scanner metrics. A nil *Collector records nothing.
type Collector struct {
	DetailChanges *prometheus.CounterVec
	Frames        prometheus.Counter
	Adjustments   prometheus.Counter
	Reentries     *prometheus.CounterVec
	Refusals      prometheus.Counter

	WindowStart prometheus.Gauge
	WindowEnd   prometheus.Gauge
	FixedMode   prometheus.Gauge
}

// NewCollector registers the scanner metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	details, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "panscan_detail_changes_total",
		Help: "Scan windows reported, labeled by triggering event and mode.",
	}, []string{"source", "mode"}), "panscan_detail_changes_total")
	if err != nil {
		return nil, err
	}

	reentries, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "panscan_reentrant_calls_total",
		Help: "Range recomputations ignored because one was already in progress.",
	}, []string{"op"}), "panscan_reentrant_calls_total")
	if err != nil {
		return nil, err
	}

	frames, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "panscan_frames_total",
		Help: "Spectral frames fed to the panoramic display.",
	}), "panscan_frames_total")
	if err != nil {
		return nil, err
	}

	adjustments, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "panscan_window_adjustments_total",
		Help: "Display window adjustments caused by frames with new bounds.",
	}), "panscan_window_adjustments_total")
	if err != nil {
		return nil, err
	}

	refusals, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "panscan_scan_refusals_total",
		Help: "Scan start requests refused because the device is in use.",
	}), "panscan_scan_refusals_total")
	if err != nil {
		return nil, err
	}

	start, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "panscan_window_start_hz",
		Help: "Start of the last reported scan window.",
	}), "panscan_window_start_hz")
	if err != nil {
		return nil, err
	}

	end, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "panscan_window_end_hz",
		Help: "End of the last reported scan window.",
	}), "panscan_window_end_hz")
	if err != nil {
		return nil, err
	}

	fixed, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "panscan_fixed_mode",
		Help: "1 while the scanner is in fixed frequency mode.",
	}), "panscan_fixed_mode")
	if err != nil {
		return nil, err
	}

	return &Collector{
		DetailChanges: details,
		Frames:        frames,
		Adjustments:   adjustments,
		Reentries:     reentries,
		Refusals:      refusals,
		WindowStart:   start,
		WindowEnd:     end,
		FixedMode:     fixed,
	}, nil
}

// DetailChanged records a reported scan window
func (c *Collector) DetailChanged(source string, start, end uint64, fixed bool) {
	if c == nil {
		return
	}
	mode := "scanning"
	if fixed {
		mode = "fixed"
	}
	c.DetailChanges.WithLabelValues(source, mode).Inc()
	c.WindowStart.Set(float64(start))
	c.WindowEnd.Set(float64(end))
	if fixed {
		c.FixedMode.Set(1)
	} else {
		c.FixedMode.Set(0)
	}
}

// FrameFed records a frame and whether it moved the display window
func (c *Collector) FrameFed(adjusted bool) {
	if c == nil {
		return
	}
	c.Frames.Inc()
	if adjusted {
		c.Adjustments.Inc()
	}
}

// Reentered records an ignored nested recomputation
func (c *Collector) Reentered(op string) {
	if c == nil {
		return
	}
	c.Reentries.WithLabelValues(op).Inc()
}

// ScanRefused records a refused scan start
func (c *Collector) ScanRefused() {
	if c == nil {
		return
	}
	c.Refusals.Inc()
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

// Handler exposes a ready-to-use /metrics handler for the gatherer,
// defaulting to the global Prometheus registry when nil.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
