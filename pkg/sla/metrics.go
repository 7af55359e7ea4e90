package sla

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the gauges and counters published by the SLA loop. They
// are registered on an explicit registry so the aggregator logic can be
// tested without a metrics backend.
type Metrics struct {
	CurrentRatio   prometheus.Gauge
	WindowRatio    prometheus.Gauge
	Calculations   prometheus.Counter
	ScrapeDuration prometheus.Gauge
}

func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	currentRatio := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sla_current_ratio",
			Help: "SLA ratio for the most recent interval (success / total), value in range [0,1]",
		})
	err := registry.Register(currentRatio)
	if err != nil {
		return nil, err
	}
	windowRatio := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sla_window_ratio",
			Help: "SLA ratio aggregated over the sliding window (average of recent interval ratios), value in range [0,1]",
		})
	err = registry.Register(windowRatio)
	if err != nil {
		return nil, err
	}
	calculations := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sla_calculation_total",
			Help: "Total number of SLA calculation runs",
		})
	err = registry.Register(calculations)
	if err != nil {
		return nil, err
	}
	scrapeDuration := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sla_prober_request_duration_seconds",
			Help: "Duration in seconds to fetch metrics from the prober",
		})
	err = registry.Register(scrapeDuration)
	if err != nil {
		return nil, err
	}
	return &Metrics{
		CurrentRatio:   currentRatio,
		WindowRatio:    windowRatio,
		Calculations:   calculations,
		ScrapeDuration: scrapeDuration,
	}, nil
}
