// Package metrics collects tool execution statistics.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// ToolMetrics accumulates call counts and execution durations. All methods
// are safe for concurrent use.
type ToolMetrics struct {
	calls  atomic.Uint64
	errors atomic.Uint64

	mu    sync.Mutex
	total time.Duration
}

// New creates zeroed metrics.
func New() *ToolMetrics {
	return &ToolMetrics{}
}

// RecordSuccess counts one successful execution and its duration.
func (m *ToolMetrics) RecordSuccess(d time.Duration) {
	m.calls.Add(1)

	m.mu.Lock()
	m.total += d
	m.mu.Unlock()
}

// RecordError counts one failed execution.
func (m *ToolMetrics) RecordError() {
	m.calls.Add(1)
	m.errors.Add(1)
}

// CallCount returns the total number of recorded executions.
func (m *ToolMetrics) CallCount() uint64 {
	return m.calls.Load()
}

// ErrorCount returns the number of failed executions.
func (m *ToolMetrics) ErrorCount() uint64 {
	return m.errors.Load()
}

// SuccessCount returns the number of successful executions.
func (m *ToolMetrics) SuccessCount() uint64 {
	calls := m.calls.Load()
	failures := m.errors.Load()

	if failures > calls {
		return 0
	}

	return calls - failures
}

// TotalDuration returns the accumulated duration of successful executions.
func (m *ToolMetrics) TotalDuration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.total
}

// Reset zeroes all counters.
func (m *ToolMetrics) Reset() {
	m.calls.Store(0)
	m.errors.Store(0)

	m.mu.Lock()
	m.total = 0
	m.mu.Unlock()
}

// Stats returns a consistent snapshot.
func (m *ToolMetrics) Stats() Stats {
	calls := m.calls.Load()
	failures := m.errors.Load()
	total := m.TotalDuration()

	successes := uint64(0)
	if calls > failures {
		successes = calls - failures
	}

	var avg time.Duration
	if calls > 0 {
		avg = total / time.Duration(calls)
	}

	return Stats{
		CallCount:       calls,
		ErrorCount:      failures,
		SuccessCount:    successes,
		TotalDuration:   total,
		AverageDuration: avg,
	}
}

// Stats is a point-in-time metrics snapshot.
type Stats struct {
	CallCount       uint64
	ErrorCount      uint64
	SuccessCount    uint64
	TotalDuration   time.Duration
	AverageDuration time.Duration
}

// ErrorRate returns the failure percentage across all recorded calls.
func (s Stats) ErrorRate() float64 {
	if s.CallCount == 0 {
		return 0
	}

	return float64(s.ErrorCount) / float64(s.CallCount) * 100
}

// SuccessRate returns the success percentage across all recorded calls.
func (s Stats) SuccessRate() float64 {
	return 100 - s.ErrorRate()
}
