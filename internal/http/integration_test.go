package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	apihttp "github.com/oncallops/sla-exporter/internal/http"
	"github.com/oncallops/sla-exporter/internal/http/handlers"
	indicatoraggregates "github.com/oncallops/sla-exporter/pkg/indicator/aggregates"
	"github.com/oncallops/sla-exporter/pkg/sla/aggregates"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

var baseURL = "http://127.0.0.1:10000"

type testSLAService struct{}

func (s *testSLAService) Status() aggregates.Status {
	current := 0.5
	window := 0.75
	return aggregates.Status{
		CurrentRatio:   &current,
		WindowRatio:    &window,
		WindowSize:     2,
		WindowCapacity: 12,
		Window:         []float64{1.0, 0.5},
	}
}

type testIndicatorService struct{}

func (s *testIndicatorService) ListIndicators(ctx context.Context, threshold time.Time) ([]*indicatoraggregates.Indicator, error) {
	return []*indicatoraggregates.Indicator{
		{
			ID:        "d4e69c76-2710-4509-a2e3-b5e561611e3f",
			Name:      "sla_current_ratio",
			Objective: 0.99,
			Value:     0.5,
			Bad:       true,
			CreatedAt: time.Now().UTC(),
		},
	}, nil
}

func get(t *testing.T, path string, expectedStatus int) []byte {
	t.Helper()
	response, err := http.Get(fmt.Sprintf("%s%s", baseURL, path))
	assert.NoError(t, err)
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	assert.NoError(t, err)
	assert.Equal(t, expectedStatus, response.StatusCode, string(body))
	return body
}

func TestIntegration(t *testing.T) {
	registry := prometheus.NewRegistry()
	builder := handlers.NewBuilder(&testSLAService{}, &testIndicatorService{})
	server, err := apihttp.NewServer(slog.Default(), apihttp.Configuration{
		Host: "127.0.0.1",
		Port: 10000,
	}, registry, builder)
	assert.NoError(t, err)
	server.Start()
	defer func() {
		err := server.Stop()
		assert.NoError(t, err)
	}()
	time.Sleep(100 * time.Millisecond)

	get(t, "/healthz", http.StatusOK)

	metrics := get(t, "/metrics", http.StatusOK)
	assert.Contains(t, string(metrics), "http_responses_total")

	statusBody := get(t, "/api/v1/sla/status", http.StatusOK)
	var status aggregates.Status
	err = json.Unmarshal(statusBody, &status)
	assert.NoError(t, err)
	assert.Equal(t, []float64{1.0, 0.5}, status.Window)

	indicatorsBody := get(t, "/api/v1/sla/indicators", http.StatusOK)
	var output handlers.ListIndicatorsOutput
	err = json.Unmarshal(indicatorsBody, &output)
	assert.NoError(t, err)
	assert.Len(t, output.Result, 1)

	get(t, "/api/v1/sla/indicators?since=nope", http.StatusBadRequest)
	get(t, "/api/v1/unknown", http.StatusNotFound)
}
