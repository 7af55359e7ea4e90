package sla

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	indicatoraggregates "github.com/oncallops/sla-exporter/pkg/indicator/aggregates"
	"github.com/oncallops/sla-exporter/pkg/scraper"
	"github.com/oncallops/sla-exporter/pkg/sla/aggregates"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultInterval         = "30s"
	defaultWindowSize       = 12
	defaultObjective        = 0.99
	defaultLatencyObjective = 2.0
)

type Scraper interface {
	Scrape(ctx context.Context) (aggregates.CounterSnapshot, time.Duration)
}

// Recorder persists per-cycle indicators. It is optional: without it
// the service only publishes gauges.
type Recorder interface {
	AddIndicator(ctx context.Context, indicator *indicatoraggregates.Indicator) error
}

type Configuration struct {
	Scraper          scraper.Configuration
	Interval         string
	WindowSize       int     `yaml:"window-size"`
	Objective        float64 `validate:"lte=1"`
	LatencyObjective float64 `yaml:"latency-objective"`
}

// Service runs the SLA aggregation loop: scrape the prober counters,
// derive the interval ratio, publish the gauges, persist indicators.
// Cycles never overlap, a slow scrape delays the next cycle.
type Service struct {
	logger           *slog.Logger
	scraper          Scraper
	aggregator       *Aggregator
	window           *Window
	metrics          *Metrics
	recorder         Recorder
	interval         time.Duration
	objective        float64
	latencyObjective float64
	mutex            sync.RWMutex
	lastRatio        *float64
	wg               sync.WaitGroup
	stop             chan bool
	ticker           *time.Ticker
}

func New(logger *slog.Logger, proberScraper Scraper, recorder Recorder, registry *prometheus.Registry, config Configuration) (*Service, error) {
	if config.Interval == "" {
		config.Interval = defaultInterval
	}
	if config.WindowSize == 0 {
		config.WindowSize = defaultWindowSize
	}
	if config.Objective == 0 {
		config.Objective = defaultObjective
	}
	if config.LatencyObjective == 0 {
		config.LatencyObjective = defaultLatencyObjective
	}
	interval, err := time.ParseDuration(config.Interval)
	if err != nil {
		return nil, fmt.Errorf("invalid SLA interval %s: %w", config.Interval, err)
	}
	metrics, err := NewMetrics(registry)
	if err != nil {
		return nil, err
	}
	return &Service{
		logger:           logger,
		scraper:          proberScraper,
		aggregator:       NewAggregator(),
		window:           NewWindow(config.WindowSize),
		metrics:          metrics,
		recorder:         recorder,
		interval:         interval,
		objective:        config.Objective,
		latencyObjective: config.LatencyObjective,
		stop:             make(chan bool),
		ticker:           time.NewTicker(interval),
	}, nil
}

func (s *Service) Start() {
	s.logger.Info(fmt.Sprintf("starting the SLA aggregation loop, interval %s, window size %d", s.interval, s.window.Capacity()))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runCycle()
		for {
			select {
			case <-s.stop:
				return
			case <-s.ticker.C:
				s.runCycle()
			}
		}
	}()
}

func (s *Service) Stop() {
	s.ticker.Stop()
	s.stop <- true
	s.wg.Wait()
	s.logger.Info("SLA aggregation loop stopped")
}

func (s *Service) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()
	s.Cycle(ctx)
}

// Cycle executes one scrape and aggregation pass. Every failure mode
// degrades to a defined placeholder value, nothing here aborts the
// loop.
func (s *Service) Cycle(ctx context.Context) {
	s.metrics.Calculations.Inc()
	snapshot, duration := s.scraper.Scrape(ctx)
	s.metrics.ScrapeDuration.Set(duration.Seconds())

	ratio := s.aggregator.ComputeInterval(snapshot)
	if ratio == nil {
		s.metrics.CurrentRatio.Set(0)
		if snapshot.Success == nil && snapshot.Fail == nil {
			s.logger.Warn("both success and fail totals are missing, skipping SLA computation for this interval")
		} else {
			s.logger.Info("no prober event in this interval, the SLA window is unchanged")
		}
	} else {
		s.metrics.CurrentRatio.Set(*ratio)
		s.window.Append(*ratio)
		s.logger.Info(fmt.Sprintf("SLA interval ratio: %.4f", *ratio))
	}
	s.mutex.Lock()
	s.lastRatio = ratio
	s.mutex.Unlock()

	average := s.window.Average()
	if average == nil {
		s.metrics.WindowRatio.Set(0)
	} else {
		s.metrics.WindowRatio.Set(*average)
		s.logger.Info(fmt.Sprintf("SLA window ratio over the last %d intervals: %.4f", s.window.Len(), *average))
	}

	s.record(ctx, ratio, duration)
}

// record persists the cycle outcome as indicators, best effort.
func (s *Service) record(ctx context.Context, ratio *float64, duration time.Duration) {
	if s.recorder == nil {
		return
	}
	if ratio != nil {
		ratioIndicator := &indicatoraggregates.Indicator{
			Name:      "sla_current_ratio",
			Objective: s.objective,
			Value:     *ratio,
			Bad:       *ratio < s.objective,
		}
		err := s.recorder.AddIndicator(ctx, ratioIndicator)
		if err != nil {
			s.logger.Error(fmt.Sprintf("fail to save the SLA ratio indicator: %s", err.Error()))
		}
	}
	durationIndicator := &indicatoraggregates.Indicator{
		Name:      "sla_prober_request_duration_seconds",
		Objective: s.latencyObjective,
		Value:     duration.Seconds(),
		Bad:       duration.Seconds() > s.latencyObjective,
	}
	err := s.recorder.AddIndicator(ctx, durationIndicator)
	if err != nil {
		s.logger.Error(fmt.Sprintf("fail to save the scrape duration indicator: %s", err.Error()))
	}
}

// Status returns a snapshot of the aggregator state for the API.
func (s *Service) Status() aggregates.Status {
	s.mutex.RLock()
	last := s.lastRatio
	s.mutex.RUnlock()
	return aggregates.Status{
		CurrentRatio:   last,
		WindowRatio:    s.window.Average(),
		WindowSize:     s.window.Len(),
		WindowCapacity: s.window.Capacity(),
		Window:         s.window.Values(),
	}
}
