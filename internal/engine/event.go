package engine

import (
	"main/internal/execution"
	"main/internal/model"
)

// Event is the union of inputs the engine accepts: a shutdown signal, a
// market event or an execution event. Exactly one branch is set.
type Event struct {
	Shutdown  bool
	Market    *model.MarketEvent
	Execution *execution.Event
}

// ShutdownEvent builds the shutdown signal.
func ShutdownEvent() Event {
	return Event{Shutdown: true}
}

// MarketEvent wraps a market data update.
func MarketEvent(event *model.MarketEvent) Event {
	return Event{Market: event}
}

// ExecutionEvent wraps an order lifecycle notification.
func ExecutionEvent(event *execution.Event) Event {
	return Event{Execution: event}
}
