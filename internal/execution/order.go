package execution

import (
	"time"

	"github.com/shopspring/decimal"

	"main/internal/model"
	"main/internal/model/enum"
)

// OrderRequest is a strategy-created order. It is read-only after creation;
// ownership moves through the risk gate to the execution client. Client
// order id uniqueness is the caller's responsibility.
type OrderRequest struct {
	ClientOrderID string
	Instrument    model.InstrumentID
	Side          enum.Side
	Type          enum.OrderType
	Quantity      decimal.Decimal
	Price         *decimal.Decimal
	StopPrice     *decimal.Decimal
	TimeInForce   enum.TimeInForce
	CreatedAt     time.Time
}

// Notional returns price * quantity for priced orders. Market orders have no
// price reference, so quantity alone is used as a conservative proxy.
func (r OrderRequest) Notional() decimal.Decimal {
	if r.Price != nil {
		return r.Price.Mul(r.Quantity)
	}
	return r.Quantity
}

// Report is the exchange's view of an order at a point in time.
type Report struct {
	ClientOrderID    string
	ExchangeOrderID  string
	Status           enum.OrderStatus
	ExecutedQuantity decimal.Decimal
	AvgPrice         decimal.Decimal
	UpdatedAt        time.Time
}

// EventType categorizes execution events.
type EventType uint8

const (
	_event_type_beg EventType = iota
	EventOrderAccepted
	EventOrderPartiallyFilled
	EventOrderFilled
	EventOrderCancelled
	EventOrderRejected
	_event_type_end
)

func (t EventType) IsAvailable() bool {
	return t > _event_type_beg && t < _event_type_end
}

// Event is an order lifecycle notification fed back into the pipeline.
type Event struct {
	Type   EventType
	Report Report
}
