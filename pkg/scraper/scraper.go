package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/oncallops/sla-exporter/internal/validator"
	"github.com/oncallops/sla-exporter/pkg/sla/aggregates"
)

const (
	defaultTimeout       = "5s"
	defaultSuccessMetric = "prober_create_user_scenario_success_total"
	defaultFailMetric    = "prober_create_user_scenario_success_fail_total"
)

type Configuration struct {
	URL           string `validate:"required"`
	Timeout       string
	SuccessMetric string `yaml:"success-metric"`
	FailMetric    string `yaml:"fail-metric"`
}

// Scraper fetches the prober counters from its metrics endpoint. It is
// stateless: each call performs one bounded HTTP GET.
type Scraper struct {
	logger *slog.Logger
	client *http.Client
	config Configuration
}

func New(logger *slog.Logger, config Configuration) (*Scraper, error) {
	if config.Timeout == "" {
		config.Timeout = defaultTimeout
	}
	if config.SuccessMetric == "" {
		config.SuccessMetric = defaultSuccessMetric
	}
	if config.FailMetric == "" {
		config.FailMetric = defaultFailMetric
	}
	err := validator.Validator.Struct(config)
	if err != nil {
		return nil, err
	}
	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid scraper timeout %s: %w", config.Timeout, err)
	}
	return &Scraper{
		logger: logger,
		client: &http.Client{
			Timeout: timeout,
		},
		config: config,
	}, nil
}

// Scrape returns the counter snapshot and the wall-clock duration of
// the call. Transport failures, timeouts and non-success statuses are
// data, not errors: they yield a snapshot with both counters absent and
// the loop keeps running.
func (s *Scraper) Scrape(ctx context.Context) (aggregates.CounterSnapshot, time.Duration) {
	snapshot := aggregates.CounterSnapshot{}
	start := time.Now()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.URL, nil)
	if err != nil {
		s.logger.Error(fmt.Sprintf("fail to build scrape request: %s", err.Error()))
		return snapshot, time.Since(start)
	}
	response, err := s.client.Do(request)
	if err != nil {
		s.logger.Error(fmt.Sprintf("fail to fetch prober metrics: %s", err.Error()))
		return snapshot, time.Since(start)
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	duration := time.Since(start)
	if err != nil {
		s.logger.Error(fmt.Sprintf("fail to read prober metrics body: %s", err.Error()))
		return snapshot, duration
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		s.logger.Error(fmt.Sprintf("prober returned non-success status %d", response.StatusCode))
		return snapshot, duration
	}

	snapshot.Success = MetricValue(string(body), s.config.SuccessMetric)
	if snapshot.Success == nil {
		s.logger.Debug(fmt.Sprintf("success metric %s not found in prober metrics", s.config.SuccessMetric))
	}
	snapshot.Fail = MetricValue(string(body), s.config.FailMetric)
	if snapshot.Fail == nil {
		s.logger.Debug(fmt.Sprintf("fail metric %s not found in prober metrics", s.config.FailMetric))
	}
	return snapshot, duration
}
