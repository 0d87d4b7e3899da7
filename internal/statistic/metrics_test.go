package statistic

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsFirstSampleSetsMinAndMax(t *testing.T) {
	m := NewPerformanceMetrics()
	require.EqualValues(t, uint64(math.MaxUint64), m.MinLatencyMicros)
	require.EqualValues(t, 0, m.MaxLatencyMicros)

	m.UpdateLatency(42)

	assert.EqualValues(t, 1, m.EventsProcessed)
	assert.EqualValues(t, 42, m.AvgLatencyMicros)
	assert.EqualValues(t, 42, m.MinLatencyMicros)
	assert.EqualValues(t, 42, m.MaxLatencyMicros)
}

func TestMetricsIncrementalMean(t *testing.T) {
	m := NewPerformanceMetrics()

	m.UpdateLatency(10)
	assert.EqualValues(t, 10, m.AvgLatencyMicros)

	m.UpdateLatency(30)
	assert.EqualValues(t, 20, m.AvgLatencyMicros)
	assert.EqualValues(t, 10, m.MinLatencyMicros)
	assert.EqualValues(t, 30, m.MaxLatencyMicros)
	assert.EqualValues(t, 2, m.EventsProcessed)
}

func TestMetricsOrderCountersAreExplicit(t *testing.T) {
	m := NewPerformanceMetrics()

	m.UpdateLatency(5)
	assert.EqualValues(t, 0, m.OrdersSent)

	m.RecordOrderSent()
	m.RecordOrderSent()
	m.RecordOrderFilled()
	m.RecordOrderCancelled()

	assert.EqualValues(t, 2, m.OrdersSent)
	assert.EqualValues(t, 1, m.OrdersFilled)
	assert.EqualValues(t, 1, m.OrdersCancelled)
}

func TestMetricsPnL(t *testing.T) {
	m := NewPerformanceMetrics()

	m.UpdatePnL(12.5)
	m.UpdatePnL(-2.5)

	assert.InDelta(t, 10.0, m.PnL, 1e-9)
}

func TestTradingSummaryString(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	m := NewPerformanceMetrics()
	m.UpdateLatency(7)

	s := NewTradingSummary(m, start, end)
	require.Equal(t, time.Hour, s.Duration)
	assert.Contains(t, s.String(), "Events Processed: 1")
	assert.Contains(t, s.String(), "avg=7 min=7 max=7")
}

func TestTradingSummaryEmptyRunShowsZeroMinLatency(t *testing.T) {
	now := time.Now().UTC()
	s := NewTradingSummary(NewPerformanceMetrics(), now, now)

	assert.Contains(t, s.String(), "min=0")
}
