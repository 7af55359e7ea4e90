package prober

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the raw scenario counters scraped by the SLA aggregator.
type Metrics struct {
	Scenarios prometheus.Counter
	Successes prometheus.Counter
	Failures  prometheus.Counter
	Duration  prometheus.Gauge
}

func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	scenarios := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prober_create_user_scenario_total",
			Help: "Total count of runs of the create user scenario",
		})
	err := registry.Register(scenarios)
	if err != nil {
		return nil, err
	}
	successes := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prober_create_user_scenario_success_total",
			Help: "Total count of successful runs of the create user scenario",
		})
	err = registry.Register(successes)
	if err != nil {
		return nil, err
	}
	failures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prober_create_user_scenario_success_fail_total",
			Help: "Total count of failed runs of the create user scenario",
		})
	err = registry.Register(failures)
	if err != nil {
		return nil, err
	}
	duration := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "prober_create_user_scenario_duration_seconds",
			Help: "Duration in seconds of the last run of the create user scenario",
		})
	err = registry.Register(duration)
	if err != nil {
		return nil, err
	}
	return &Metrics{
		Scenarios: scenarios,
		Successes: successes,
		Failures:  failures,
		Duration:  duration,
	}, nil
}
