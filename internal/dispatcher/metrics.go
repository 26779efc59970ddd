package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/layerkeys/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics. It also implements
// prometheus.Collector so the same counters can be served on /metrics.
type Metrics struct {
	mu sync.RWMutex

	actionMetrics map[string]*ActionMetrics

	totalDispatches uint64
	totalErrors     uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// ActionMetrics holds metrics for a specific action.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
	LastDispatch  time.Time
	statusCounts  map[handler.ResultStatus]uint64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		actionMetrics: make(map[string]*ActionMetrics),
	}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(actionName string, duration time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration
	if status == handler.StatusError {
		m.totalErrors++
	}

	am := m.actionMetrics[actionName]
	if am == nil {
		am = &ActionMetrics{
			Name:         actionName,
			statusCounts: make(map[handler.ResultStatus]uint64),
		}
		m.actionMetrics[actionName] = am
	}

	am.DispatchCount++
	am.TotalDuration += duration
	am.LastStatus = status
	am.LastDispatch = time.Now()
	am.statusCounts[status]++
	if duration > am.MaxDuration {
		am.MaxDuration = duration
	}
	if status == handler.StatusError {
		am.ErrorCount++
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(actionName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalErrors returns the total number of error results.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// ActionStats returns a copy of the metrics for one action, or nil.
func (m *Metrics) ActionStats(actionName string) *ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	am := m.actionMetrics[actionName]
	if am == nil {
		return nil
	}
	return am.clone()
}

// TopActions returns the n most dispatched actions, ties broken by name.
func (m *Metrics) TopActions(n int) []*ActionMetrics {
	m.mu.RLock()
	actions := make([]*ActionMetrics, 0, len(m.actionMetrics))
	for _, am := range m.actionMetrics {
		actions = append(actions, am.clone())
	}
	m.mu.RUnlock()

	sort.Slice(actions, func(i, j int) bool {
		if actions[i].DispatchCount != actions[j].DispatchCount {
			return actions[i].DispatchCount > actions[j].DispatchCount
		}
		return actions[i].Name < actions[j].Name
	})
	if n < len(actions) {
		actions = actions[:n]
	}
	return actions
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actionMetrics = make(map[string]*ActionMetrics)
	m.totalDispatches = 0
	m.totalErrors = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time view of the global counters.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalErrors     uint64
	TotalPanics     uint64
	AverageDuration time.Duration
	ActionCount     int
	Timestamp       time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalDispatches: m.totalDispatches,
		TotalErrors:     m.totalErrors,
		TotalPanics:     m.totalPanics,
		ActionCount:     len(m.actionMetrics),
		Timestamp:       time.Now(),
	}
	if m.totalDispatches > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.totalDispatches)
	}
	return snapshot
}

// AverageDuration returns the mean duration for the action.
func (am *ActionMetrics) AverageDuration() time.Duration {
	if am.DispatchCount == 0 {
		return 0
	}
	return am.TotalDuration / time.Duration(am.DispatchCount)
}

// StatusCount returns how many dispatches of the action ended with status.
func (am *ActionMetrics) StatusCount(status handler.ResultStatus) uint64 {
	return am.statusCounts[status]
}

func (am *ActionMetrics) clone() *ActionMetrics {
	c := *am
	c.statusCounts = make(map[handler.ResultStatus]uint64, len(am.statusCounts))
	for k, v := range am.statusCounts {
		c.statusCounts[k] = v
	}
	return &c
}

var (
	dispatchesDesc = prometheus.NewDesc(
		"layerkeys_dispatches_total",
		"Total number of dispatched actions by action and result status.",
		[]string{"action", "status"}, nil,
	)
	dispatchSecondsDesc = prometheus.NewDesc(
		"layerkeys_dispatch_seconds_total",
		"Total time spent in handlers by action.",
		[]string{"action"}, nil,
	)
	panicsDesc = prometheus.NewDesc(
		"layerkeys_dispatch_panics_total",
		"Total number of handler panics recovered.",
		nil, nil,
	)
)

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- dispatchesDesc
	ch <- dispatchSecondsDesc
	ch <- panicsDesc
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for name, am := range m.actionMetrics {
		for status, n := range am.statusCounts {
			ch <- prometheus.MustNewConstMetric(dispatchesDesc, prometheus.CounterValue, float64(n), name, status.String())
		}
		ch <- prometheus.MustNewConstMetric(dispatchSecondsDesc, prometheus.CounterValue, am.TotalDuration.Seconds(), name)
	}
	ch <- prometheus.MustNewConstMetric(panicsDesc, prometheus.CounterValue, float64(m.totalPanics))
}
