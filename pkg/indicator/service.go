package indicator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oncallops/sla-exporter/pkg/indicator/aggregates"
	"github.com/prometheus/client_golang/prometheus"
)

const defaultRetention = "720h"

type Store interface {
	AddIndicator(ctx context.Context, indicator *aggregates.Indicator) error
	ListIndicators(ctx context.Context, threshold time.Time) ([]*aggregates.Indicator, error)
	CleanIndicators(ctx context.Context, threshold time.Time) (int64, error)
}

type Configuration struct {
	Retention string
}

type Service struct {
	logger                   *slog.Logger
	store                    Store
	retention                time.Duration
	cleanupExecutionsCounter *prometheus.CounterVec
	wg                       sync.WaitGroup
	stop                     chan bool
	ticker                   *time.Ticker
}

func New(logger *slog.Logger, store Store, registry *prometheus.Registry, config Configuration) (*Service, error) {
	if config.Retention == "" {
		config.Retention = defaultRetention
	}
	retention, err := time.ParseDuration(config.Retention)
	if err != nil {
		return nil, fmt.Errorf("invalid indicator retention %s: %w", config.Retention, err)
	}
	cleanupExecutionsCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indicator_cleanup_executions_total",
			Help: "Count the number of executions of the job cleaning old SLA indicators",
		},
		[]string{"status"})
	err = registry.Register(cleanupExecutionsCounter)
	if err != nil {
		return nil, err
	}
	return &Service{
		logger:                   logger,
		store:                    store,
		retention:                retention,
		cleanupExecutionsCounter: cleanupExecutionsCounter,
		stop:                     make(chan bool),
		ticker:                   time.NewTicker(time.Hour),
	}, nil
}

func (s *Service) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.stop:
				return
			case <-s.ticker.C:
				s.logger.Debug("cleaning expired SLA indicators")
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				s.CleanIndicators(ctx)
				cancel()
			}
		}
	}()
}

func (s *Service) Stop() {
	s.ticker.Stop()
	s.stop <- true
	s.wg.Wait()
}
