package sla

import "sync"

// Window holds the most recent interval ratios, evicting the oldest
// entry once the capacity is reached. The scrape loop is the only
// writer but the HTTP API reads it concurrently.
type Window struct {
	mutex    sync.RWMutex
	values   []float64
	capacity int
}

func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{
		values:   make([]float64, 0, capacity),
		capacity: capacity,
	}
}

func (w *Window) Append(ratio float64) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if len(w.values) == w.capacity {
		w.values = append(w.values[1:], ratio)
		return
	}
	w.values = append(w.values, ratio)
}

// Average returns the unweighted mean of the retained ratios, or nil if
// nothing was recorded yet. Every entry counts the same regardless of
// how many events its interval carried.
func (w *Window) Average() *float64 {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	if len(w.values) == 0 {
		return nil
	}
	sum := 0.0
	for _, value := range w.values {
		sum += value
	}
	average := sum / float64(len(w.values))
	return &average
}

func (w *Window) Values() []float64 {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	result := make([]float64, len(w.values))
	copy(result, w.values)
	return result
}

func (w *Window) Len() int {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return len(w.values)
}

func (w *Window) Capacity() int {
	return w.capacity
}
