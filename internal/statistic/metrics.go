package statistic

import "math"

// PerformanceMetrics tracks pipeline latency and order lifecycle counters.
// Latency fields update once per processed event; order counters move only
// on explicit caller notification, never inferred from pipeline activity.
type PerformanceMetrics struct {
	EventsProcessed  uint64
	AvgLatencyMicros uint64
	MaxLatencyMicros uint64
	MinLatencyMicros uint64
	OrdersSent       uint64
	OrdersFilled     uint64
	OrdersCancelled  uint64
	PnL              float64
	SharpeRatio      float64
	MaxDrawdown      float64
}

// NewPerformanceMetrics returns zeroed metrics. Minimum latency starts at
// the maximum representable value so the first sample sets both min and max.
func NewPerformanceMetrics() PerformanceMetrics {
	return PerformanceMetrics{MinLatencyMicros: math.MaxUint64}
}

// UpdateLatency folds one latency sample into the running stats with an
// O(1) incremental mean: avg' = (avg*(n-1) + x) / n.
func (m *PerformanceMetrics) UpdateLatency(latencyMicros uint64) {
	m.EventsProcessed++

	if latencyMicros > m.MaxLatencyMicros {
		m.MaxLatencyMicros = latencyMicros
	}
	if latencyMicros < m.MinLatencyMicros {
		m.MinLatencyMicros = latencyMicros
	}

	m.AvgLatencyMicros = (m.AvgLatencyMicros*(m.EventsProcessed-1) + latencyMicros) / m.EventsProcessed
}

// RecordOrderSent increments the sent counter.
func (m *PerformanceMetrics) RecordOrderSent() {
	m.OrdersSent++
}

// RecordOrderFilled increments the filled counter.
func (m *PerformanceMetrics) RecordOrderFilled() {
	m.OrdersFilled++
}

// RecordOrderCancelled increments the cancelled counter.
func (m *PerformanceMetrics) RecordOrderCancelled() {
	m.OrdersCancelled++
}

// UpdatePnL adds a profit-and-loss delta.
func (m *PerformanceMetrics) UpdatePnL(delta float64) {
	m.PnL += delta
}
