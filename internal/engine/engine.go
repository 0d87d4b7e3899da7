package engine

import (
	"time"

	"github.com/yanun0323/logs"

	"main/internal/execution"
	"main/internal/risk"
	"main/internal/statistic"
	"main/internal/strategy"
)

// State is the engine run state.
type State uint8

const (
	// StateRunning processes events normally.
	StateRunning State = iota
	// StatePaused is advisory; the caller stops feeding events.
	StatePaused
	// StateShutdown is terminal. No transition leaves it.
	StateShutdown
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Config tunes engine monitoring behavior.
type Config struct {
	MaxProcessingLatencyMicros  uint64
	EnablePerformanceMonitoring bool
	EnableDetailedLogging       bool
}

// DefaultConfig returns the baseline engine configuration.
func DefaultConfig() Config {
	return Config{
		MaxProcessingLatencyMicros:  100,
		EnablePerformanceMonitoring: true,
	}
}

// Meta tracks engine bookkeeping. Sequence and EventsProcessed advance by
// exactly one per market or execution event and never decrease.
type Meta struct {
	StartTime       time.Time
	Sequence        uint64
	EventsProcessed uint64
}

// Output is the result of processing one event. The caller submits approved
// orders to the execution endpoint; the engine never does.
type Output struct {
	StrategyOutput *strategy.Output
	RiskOutput     []risk.CheckResult
	Metrics        statistic.PerformanceMetrics
}

// Engine owns the per-event pipeline and all of its mutable state. It is
// single-threaded by contract: a concurrent host must serialize calls into
// one instance.
type Engine struct {
	state     State
	config    Config
	strategy  strategy.Strategy
	risk      risk.Manager
	execution execution.Client
	metrics   statistic.PerformanceMetrics
	meta      Meta
}

// New creates a running engine around one strategy, one risk gate and one
// execution client handle.
func New(strat strategy.Strategy, gate risk.Manager, client execution.Client, config Config) *Engine {
	return &Engine{
		state:     StateRunning,
		config:    config,
		strategy:  strat,
		risk:      gate,
		execution: client,
		metrics:   statistic.NewPerformanceMetrics(),
		meta: Meta{
			StartTime: time.Now().UTC(),
		},
	}
}

// ProcessEvent runs one event through the pipeline and always returns an
// output; it has no failure mode. Market events go through the strategy and
// the risk gate; execution events only through the strategy; the shutdown
// signal flips the state and touches nothing else.
func (e *Engine) ProcessEvent(event Event) Output {
	start := time.Now()

	switch {
	case event.Shutdown:
		e.state = StateShutdown
		return Output{Metrics: e.metrics}

	case event.Market != nil:
		strategyOutput := e.strategy.ProcessMarketData(event.Market)
		riskOutput := e.risk.CheckRisk(strategyOutput)

		e.observeLatency(start)
		if e.config.EnableDetailedLogging {
			logs.Infof("processed market event seq=%d orders=%d", e.meta.Sequence, len(strategyOutput.Orders))
		}

		return Output{
			StrategyOutput: &strategyOutput,
			RiskOutput:     riskOutput,
			Metrics:        e.metrics,
		}

	case event.Execution != nil:
		e.strategy.ProcessExecutionEvent(event.Execution)
		e.observeLatency(start)
		return Output{Metrics: e.metrics}

	default:
		return Output{Metrics: e.metrics}
	}
}

func (e *Engine) observeLatency(start time.Time) {
	latency := uint64(time.Since(start).Microseconds())
	e.metrics.UpdateLatency(latency)
	e.meta.Sequence++
	e.meta.EventsProcessed++

	if e.config.EnablePerformanceMonitoring && latency > e.config.MaxProcessingLatencyMicros {
		logs.Errorf("event latency %dus exceeds budget %dus", latency, e.config.MaxProcessingLatencyMicros)
	}
}

// Pause sets the state to paused. Unconditional; no error conditions.
func (e *Engine) Pause() {
	e.state = StatePaused
}

// Resume sets the state back to running.
func (e *Engine) Resume() {
	e.state = StateRunning
}

// Shutdown sets the terminal state.
func (e *Engine) Shutdown() {
	e.state = StateShutdown
}

// State returns the current run state.
func (e *Engine) State() State {
	return e.state
}

// Meta returns the engine bookkeeping snapshot.
func (e *Engine) Meta() Meta {
	return e.meta
}

// Metrics returns a snapshot of the performance metrics.
func (e *Engine) Metrics() statistic.PerformanceMetrics {
	return e.metrics
}

// ExecutionClient returns the engine's execution endpoint handle.
func (e *Engine) ExecutionClient() execution.Client {
	return e.execution
}

// RecordOrderSent notifies the metrics of a submitted order.
func (e *Engine) RecordOrderSent() {
	e.metrics.RecordOrderSent()
}

// RecordOrderFilled notifies the metrics of a fill.
func (e *Engine) RecordOrderFilled() {
	e.metrics.RecordOrderFilled()
}

// RecordOrderCancelled notifies the metrics of a cancellation.
func (e *Engine) RecordOrderCancelled() {
	e.metrics.RecordOrderCancelled()
}
