package aggregates

// CounterSnapshot is a point-in-time read of the prober's raw counters.
// A nil value means the metric was absent from the scrape, which is not
// the same thing as a counter currently at zero.
type CounterSnapshot struct {
	Success *float64
	Fail    *float64
}

// Status is the aggregator state exposed on the API.
type Status struct {
	CurrentRatio   *float64  `json:"current-ratio"`
	WindowRatio    *float64  `json:"window-ratio"`
	WindowSize     int       `json:"window-size"`
	WindowCapacity int       `json:"window-capacity"`
	Window         []float64 `json:"window"`
}
