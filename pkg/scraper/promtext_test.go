package scraper_test

import (
	"testing"

	"github.com/oncallops/sla-exporter/pkg/scraper"
	"github.com/stretchr/testify/assert"
)

func TestMetricValue(t *testing.T) {
	body := `# HELP prober_create_user_scenario_success_total Total count of successful runs
# TYPE prober_create_user_scenario_success_total counter
prober_create_user_scenario_success_total 42
prober_create_user_scenario_success_fail_total{instance="oncall-prober:9081"} 3.5
prober_create_user_scenario_duration_seconds 0.123
garbage line
not_a_number abc
`
	cases := []struct {
		name     string
		expected *float64
	}{
		{name: "prober_create_user_scenario_success_total", expected: value(42)},
		{name: "prober_create_user_scenario_success_fail_total", expected: value(3.5)},
		{name: "prober_create_user_scenario_duration_seconds", expected: value(0.123)},
		{name: "prober_create_user_scenario", expected: nil},
		{name: "missing_metric", expected: nil},
		{name: "not_a_number", expected: nil},
	}
	for _, c := range cases {
		result := scraper.MetricValue(body, c.name)
		if c.expected == nil {
			assert.Nilf(t, result, "metric %s", c.name)
		} else {
			assert.NotNilf(t, result, "metric %s", c.name)
			assert.InDelta(t, *c.expected, *result, 0.0001)
		}
	}
}

func TestMetricValueScientificNotation(t *testing.T) {
	result := scraper.MetricValue("some_total 1.5e+03\n", "some_total")
	assert.NotNil(t, result)
	assert.InDelta(t, 1500.0, *result, 0.0001)
}

func TestMetricValueFirstMatchWins(t *testing.T) {
	body := `some_total{path="/a"} 1
some_total{path="/b"} 2
`
	result := scraper.MetricValue(body, "some_total")
	assert.NotNil(t, result)
	assert.InDelta(t, 1.0, *result, 0.0001)
}

func TestMetricValueEmptyBody(t *testing.T) {
	assert.Nil(t, scraper.MetricValue("", "some_total"))
}

func value(v float64) *float64 {
	return &v
}
