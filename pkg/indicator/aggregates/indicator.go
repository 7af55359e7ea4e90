package aggregates

import "time"

// Indicator is one persisted SLA measurement: the observed value for a
// cycle compared against its objective. Bad is precomputed at write
// time so dashboards can filter on it directly.
type Indicator struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Objective float64   `json:"objective"`
	Value     float64   `json:"value"`
	Bad       bool      `json:"bad"`
	CreatedAt time.Time `json:"created-at"`
}
