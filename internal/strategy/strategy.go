package strategy

import (
	"github.com/shopspring/decimal"

	"main/internal/execution"
	"main/internal/model"
)

// SignalKind buy, sell, hold
type SignalKind uint8

const (
	_signal_kind_beg SignalKind = iota
	SignalBuy
	SignalSell
	SignalHold
	_signal_kind_end
)

func (k SignalKind) IsAvailable() bool {
	return k > _signal_kind_beg && k < _signal_kind_end
}

// Signal is an advisory strategy opinion that does not create an order.
type Signal struct {
	Kind       SignalKind
	Instrument string
	Strength   decimal.Decimal
}

// Output is produced once per processed market event and consumed
// immediately by the engine; it is not retained.
type Output struct {
	Orders  []execution.OrderRequest
	Signals []Signal
}

// Strategy turns market events into order requests and signals. Execution
// events are fed back so stateful strategies can react to fills.
type Strategy interface {
	ProcessMarketData(event *model.MarketEvent) Output
	ProcessExecutionEvent(event *execution.Event)
}
