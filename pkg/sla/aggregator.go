package sla

import (
	"github.com/oncallops/sla-exporter/pkg/sla/aggregates"
)

// Aggregator turns raw counter snapshots into per-interval success
// ratios. It only keeps the last seen totals: no I/O, no metrics, so
// the delta and reset arithmetic stays testable on its own.
type Aggregator struct {
	previousSuccess *float64
	previousFail    *float64
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// calcDelta computes the number of events since the previous total. An
// observed decrease means the upstream counter was reset, in which case
// the current value is taken as the whole delta: events accumulated
// between the last scrape and the reset are lost. This is a heuristic,
// not an exact reconciliation.
func calcDelta(current float64, previous *float64) float64 {
	delta := current
	if previous != nil {
		delta = current - *previous
		if delta < 0 {
			delta = current
		}
	}
	if delta < 0 {
		delta = 0
	}
	return delta
}

// ComputeInterval returns the success ratio for the interval since the
// previous call, or nil when the interval carries no information: both
// counters were absent from the scrape, or no event happened at all. A
// nil result must not be recorded in the window.
func (a *Aggregator) ComputeInterval(snapshot aggregates.CounterSnapshot) *float64 {
	if snapshot.Success == nil && snapshot.Fail == nil {
		// both counters were unreachable, keep the previous totals so
		// the next successful scrape computes a delta from them
		return nil
	}
	success := 0.0
	if snapshot.Success != nil {
		success = *snapshot.Success
	}
	fail := 0.0
	if snapshot.Fail != nil {
		fail = *snapshot.Fail
	}

	deltaSuccess := calcDelta(success, a.previousSuccess)
	deltaFail := calcDelta(fail, a.previousFail)

	a.previousSuccess = &success
	a.previousFail = &fail

	deltaTotal := deltaSuccess + deltaFail
	if deltaTotal <= 0 {
		return nil
	}

	ratio := deltaSuccess / deltaTotal
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return &ratio
}
