package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/signalsfoundry/conjunction-sentinel/core"
)

// ScanCollector bundles Prometheus metrics for the conjunction engine and
// satisfies core.ScanRecorder so the scanner can drive them directly.
type ScanCollector struct {
	gatherer prometheus.Gatherer

	ScanDuration prometheus.Histogram
	ScanPairs    *prometheus.CounterVec

	ConjunctionEvents prometheus.Gauge
	HighRiskEvents    prometheus.Gauge

	BroadcastTicks    prometheus.Counter
	StreamSubscribers prometheus.Gauge
}

// NewScanCollector registers engine Prometheus metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewScanCollector(reg prometheus.Registerer) (*ScanCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "conjunction_scan_duration_seconds",
		Help:    "Wall-clock duration of one full catalog scan.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}), "conjunction_scan_duration_seconds")
	if err != nil {
		return nil, err
	}

	pairs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "conjunction_scan_pairs_total",
		Help: "Satellite/debris pairs seen per scan stage (prefiltered vs evaluated).",
	}, []string{"stage"})
	pairs, err = registerCounterVec(reg, pairs, "conjunction_scan_pairs_total")
	if err != nil {
		return nil, err
	}

	events, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "conjunction_events",
		Help: "Conjunction events produced by the most recent scan.",
	}), "conjunction_events")
	if err != nil {
		return nil, err
	}
	highRisk, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "conjunction_high_risk_events",
		Help: "High-risk conjunction events in the most recent scan.",
	}), "conjunction_high_risk_events")
	if err != nil {
		return nil, err
	}

	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "risk_stream_broadcasts_total",
		Help: "Total number of risk stream broadcast ticks.",
	}), "risk_stream_broadcasts_total")
	if err != nil {
		return nil, err
	}
	subscribers, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "risk_stream_subscribers",
		Help: "Current number of risk stream subscribers.",
	}), "risk_stream_subscribers")
	if err != nil {
		return nil, err
	}

	return &ScanCollector{
		gatherer:          gatherer,
		ScanDuration:      duration,
		ScanPairs:         pairs,
		ConjunctionEvents: events,
		HighRiskEvents:    highRisk,
		BroadcastTicks:    ticks,
		StreamSubscribers: subscribers,
	}, nil
}

// RecordScan implements core.ScanRecorder.
func (c *ScanCollector) RecordScan(elapsed time.Duration, stats core.ScanStats) {
	if c == nil {
		return
	}
	if c.ScanDuration != nil {
		c.ScanDuration.Observe(elapsed.Seconds())
	}
	if c.ScanPairs != nil {
		c.ScanPairs.WithLabelValues("prefiltered").Add(float64(stats.CandidatePairs))
		c.ScanPairs.WithLabelValues("evaluated").Add(float64(stats.EvaluatedPairs))
	}
	if c.ConjunctionEvents != nil {
		c.ConjunctionEvents.Set(float64(stats.Events))
	}
	if c.HighRiskEvents != nil {
		c.HighRiskEvents.Set(float64(stats.HighRisk))
	}
}

// TickBroadcast counts one broadcaster tick.
func (c *ScanCollector) TickBroadcast() {
	if c == nil || c.BroadcastTicks == nil {
		return
	}
	c.BroadcastTicks.Inc()
}

// AddSubscribers adjusts the subscriber gauge by delta.
func (c *ScanCollector) AddSubscribers(delta int) {
	if c == nil || c.StreamSubscribers == nil {
		return
	}
	c.StreamSubscribers.Add(float64(delta))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *ScanCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
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

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
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
