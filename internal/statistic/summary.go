package statistic

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TradingSummary is an end-of-run report over one trading period.
type TradingSummary struct {
	Metrics   PerformanceMetrics
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// NewTradingSummary builds a summary for the period [start, end].
func NewTradingSummary(metrics PerformanceMetrics, start, end time.Time) TradingSummary {
	return TradingSummary{
		Metrics:   metrics,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}
}

func (s TradingSummary) String() string {
	minLatency := s.Metrics.MinLatencyMicros
	if minLatency == math.MaxUint64 {
		minLatency = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== Trading Summary ===\n")
	fmt.Fprintf(&b, "Period: %s to %s (%s)\n", s.StartTime.Format(time.RFC3339), s.EndTime.Format(time.RFC3339), s.Duration)
	fmt.Fprintf(&b, "Events Processed: %d\n", s.Metrics.EventsProcessed)
	fmt.Fprintf(&b, "Latency (us): avg=%d min=%d max=%d\n", s.Metrics.AvgLatencyMicros, minLatency, s.Metrics.MaxLatencyMicros)
	fmt.Fprintf(&b, "Orders: sent=%d filled=%d cancelled=%d\n", s.Metrics.OrdersSent, s.Metrics.OrdersFilled, s.Metrics.OrdersCancelled)
	fmt.Fprintf(&b, "PnL: $%.2f\n", s.Metrics.PnL)
	fmt.Fprintf(&b, "Sharpe Ratio: %.2f\n", s.Metrics.SharpeRatio)
	fmt.Fprintf(&b, "Max Drawdown: %.2f%%", s.Metrics.MaxDrawdown)
	return b.String()
}
