package web

import (
	"sync"
	"time"

	"github.com/abdulachik/ghtrending/internal/trending"
)

// UpstreamStatus is the last observed outcome for one time range.
type UpstreamStatus struct {
	Healthy     bool      `json:"healthy"`
	Outcome     string    `json:"outcome"`
	Entries     int       `json:"entries"`
	LastCheck   time.Time `json:"lastCheck"`
	LastSuccess time.Time `json:"lastSuccess,omitzero"`
	Message     string    `json:"message,omitempty"`
}

// Health tracks how the trending page looked the last time each range was
// requested. Ranges never requested are absent.
type Health struct {
	mu     sync.RWMutex
	ranges map[trending.TimeRange]*UpstreamStatus
	now    func() time.Time
}

// NewHealth creates a new health tracker.
func NewHealth() *Health {
	return &Health{
		ranges: make(map[trending.TimeRange]*UpstreamStatus),
		now:    time.Now,
	}
}

// Record stores the outcome of one result.
func (h *Health) Record(since trending.TimeRange, result trending.Result) {
	h.mu.Lock()
	defer h.mu.Unlock()

	status, exists := h.ranges[since]
	if !exists {
		status = &UpstreamStatus{}
		h.ranges[since] = status
	}

	now := h.now()
	status.LastCheck = now
	status.Outcome = result.Failure.String()
	status.Entries = len(result.Entries)
	status.Message = result.ErrorMessage()
	status.Healthy = result.Success
	if result.Success {
		status.LastSuccess = now
	}
}

// GetStatus returns a copy of the status for a range, or nil if unseen.
func (h *Health) GetStatus(since trending.TimeRange) *UpstreamStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if status, exists := h.ranges[since]; exists {
		copied := *status
		return &copied
	}
	return nil
}

// GetAllStatuses returns copies of every recorded status.
func (h *Health) GetAllStatuses() map[trending.TimeRange]*UpstreamStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make(map[trending.TimeRange]*UpstreamStatus, len(h.ranges))
	for since, status := range h.ranges {
		copied := *status
		result[since] = &copied
	}
	return result
}

// IsOverallHealthy returns true if every recorded range last succeeded.
func (h *Health) IsOverallHealthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, status := range h.ranges {
		if !status.Healthy {
			return false
		}
	}
	return true
}
