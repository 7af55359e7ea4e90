package sla_test

import (
	"testing"

	"github.com/oncallops/sla-exporter/pkg/sla"
	"github.com/oncallops/sla-exporter/pkg/sla/aggregates"
	"github.com/stretchr/testify/assert"
)

func value(v float64) *float64 {
	return &v
}

func TestComputeIntervalFirstCycle(t *testing.T) {
	aggregator := sla.NewAggregator()
	// no previous totals, the raw values are the deltas
	ratio := aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(10), Fail: value(0)})
	assert.NotNil(t, ratio)
	assert.InDelta(t, 1.0, *ratio, 0.0001)
}

func TestComputeIntervalMonotonic(t *testing.T) {
	aggregator := sla.NewAggregator()
	ratio := aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(10), Fail: value(0)})
	assert.NotNil(t, ratio)
	assert.InDelta(t, 1.0, *ratio, 0.0001)

	ratio = aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(15), Fail: value(5)})
	assert.NotNil(t, ratio)
	assert.InDelta(t, 0.5, *ratio, 0.0001)

	ratio = aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(16), Fail: value(8)})
	assert.NotNil(t, ratio)
	assert.InDelta(t, 0.25, *ratio, 0.0001)
}

func TestComputeIntervalCounterReset(t *testing.T) {
	aggregator := sla.NewAggregator()
	ratio := aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(100), Fail: value(50)})
	assert.NotNil(t, ratio)

	// the prober restarted: totals dropped, the current values are the
	// post-reset event counts
	ratio = aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(5), Fail: value(5)})
	assert.NotNil(t, ratio)
	assert.InDelta(t, 0.5, *ratio, 0.0001)
}

func TestComputeIntervalResetKeepsPostResetEvents(t *testing.T) {
	aggregator := sla.NewAggregator()
	ratio := aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(100), Fail: value(0)})
	assert.NotNil(t, ratio)

	ratio = aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(5), Fail: value(0)})
	assert.NotNil(t, ratio)
	// success delta is 5, not clamped to zero
	assert.InDelta(t, 1.0, *ratio, 0.0001)

	// the next cycle is anchored on the post-reset totals
	ratio = aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(6), Fail: value(1)})
	assert.NotNil(t, ratio)
	assert.InDelta(t, 0.5, *ratio, 0.0001)
}

func TestComputeIntervalIdle(t *testing.T) {
	aggregator := sla.NewAggregator()
	ratio := aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(10), Fail: value(2)})
	assert.NotNil(t, ratio)

	// nothing happened since the previous cycle
	ratio = aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(10), Fail: value(2)})
	assert.Nil(t, ratio)
}

func TestComputeIntervalBothAbsent(t *testing.T) {
	aggregator := sla.NewAggregator()
	ratio := aggregator.ComputeInterval(aggregates.CounterSnapshot{})
	assert.Nil(t, ratio)

	ratio = aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(10), Fail: value(2)})
	assert.NotNil(t, ratio)

	// two missed scrapes in a row must not corrupt the previous totals
	ratio = aggregator.ComputeInterval(aggregates.CounterSnapshot{})
	assert.Nil(t, ratio)
	ratio = aggregator.ComputeInterval(aggregates.CounterSnapshot{})
	assert.Nil(t, ratio)

	// same totals as before the missed cycles: still an idle interval,
	// not a replay of the whole counters
	ratio = aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(10), Fail: value(2)})
	assert.Nil(t, ratio)

	ratio = aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(12), Fail: value(2)})
	assert.NotNil(t, ratio)
	assert.InDelta(t, 1.0, *ratio, 0.0001)
}

func TestComputeIntervalSingleAbsent(t *testing.T) {
	aggregator := sla.NewAggregator()
	ratio := aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: value(4), Fail: nil})
	assert.NotNil(t, ratio)
	assert.InDelta(t, 1.0, *ratio, 0.0001)

	// the fail counter vanished while its sibling is present: treated
	// as currently zero, not unknown
	ratio = aggregator.ComputeInterval(aggregates.CounterSnapshot{Success: nil, Fail: value(4)})
	assert.NotNil(t, ratio)
	assert.InDelta(t, 0.0, *ratio, 0.0001)
}
