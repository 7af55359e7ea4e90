package prober

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/oncallops/sla-exporter/internal/validator"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultInterval = "30s"
	defaultTimeout  = "5s"
	defaultUsername = "test_prober_user"
)

type Configuration struct {
	URL      string `validate:"required"`
	Interval string
	Timeout  string
	Username string
}

type userPayload struct {
	Name string `json:"name"`
}

// Prober runs the create-user scenario against the target API on a
// fixed period: create a test user, then always delete it, and count
// the outcome. The raw counters it publishes are the input of the SLA
// aggregation loop.
type Prober struct {
	logger   *slog.Logger
	client   *http.Client
	config   Configuration
	metrics  *Metrics
	interval time.Duration
	wg       sync.WaitGroup
	stop     chan bool
	ticker   *time.Ticker
}

func New(logger *slog.Logger, registry *prometheus.Registry, config Configuration) (*Prober, error) {
	if config.Interval == "" {
		config.Interval = defaultInterval
	}
	if config.Timeout == "" {
		config.Timeout = defaultTimeout
	}
	if config.Username == "" {
		config.Username = defaultUsername
	}
	err := validator.Validator.Struct(config)
	if err != nil {
		return nil, err
	}
	interval, err := time.ParseDuration(config.Interval)
	if err != nil {
		return nil, fmt.Errorf("invalid prober interval %s: %w", config.Interval, err)
	}
	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid prober timeout %s: %w", config.Timeout, err)
	}
	metrics, err := NewMetrics(registry)
	if err != nil {
		return nil, err
	}
	return &Prober{
		logger: logger,
		client: &http.Client{
			Timeout: timeout,
		},
		config:   config,
		metrics:  metrics,
		interval: interval,
		stop:     make(chan bool),
		ticker:   time.NewTicker(interval),
	}, nil
}

func (p *Prober) Start() {
	p.logger.Info(fmt.Sprintf("starting the prober against %s, interval %s", p.config.URL, p.interval))
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.runScenario()
		for {
			select {
			case <-p.stop:
				return
			case <-p.ticker.C:
				p.runScenario()
			}
		}
	}()
}

func (p *Prober) Stop() {
	p.ticker.Stop()
	p.stop <- true
	p.wg.Wait()
	p.logger.Info("prober stopped")
}

func (p *Prober) runScenario() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()
	p.Probe(ctx)
}

// Probe executes the create/delete user scenario once. The delete call
// is always attempted so a failing run does not leak the test user.
func (p *Prober) Probe(ctx context.Context) {
	p.metrics.Scenarios.Inc()
	p.logger.Debug("running the create user scenario")
	start := time.Now()

	created := p.createUser(ctx)
	deleted := p.deleteUser(ctx)

	if created && deleted {
		p.logger.Debug("create user scenario succeeded")
		p.metrics.Successes.Inc()
	} else {
		p.logger.Debug("create user scenario failed")
		p.metrics.Failures.Inc()
	}
	p.metrics.Duration.Set(time.Since(start).Seconds())
}

func (p *Prober) createUser(ctx context.Context) bool {
	payload, err := json.Marshal(userPayload{Name: p.config.Username})
	if err != nil {
		p.logger.Error(fmt.Sprintf("fail to build the create user payload: %s", err.Error()))
		return false
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/users", p.config.URL), bytes.NewBuffer(payload))
	if err != nil {
		p.logger.Error(fmt.Sprintf("fail to build the create user request: %s", err.Error()))
		return false
	}
	request.Header.Set("Content-Type", "application/json")
	response, err := p.client.Do(request)
	if err != nil {
		p.logger.Debug(fmt.Sprintf("fail to create the test user: %s", err.Error()))
		return false
	}
	defer response.Body.Close()
	return response.StatusCode == http.StatusOK
}

func (p *Prober) deleteUser(ctx context.Context) bool {
	request, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/users/%s", p.config.URL, p.config.Username), nil)
	if err != nil {
		p.logger.Error(fmt.Sprintf("fail to build the delete user request: %s", err.Error()))
		return false
	}
	response, err := p.client.Do(request)
	if err != nil {
		p.logger.Debug(fmt.Sprintf("fail to delete the test user: %s", err.Error()))
		return false
	}
	defer response.Body.Close()
	return response.StatusCode == http.StatusOK
}
