package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"main/internal/model/enum"
)

// ErrOrderNotFound reports a cancel or status query for an unknown order id.
var ErrOrderNotFound = errors.New("order not found")

// Client sends orders to an execution endpoint. Failures are surfaced to the
// caller; the pipeline never retries on its own.
type Client interface {
	SendOrder(ctx context.Context, order OrderRequest) (Report, error)
	CancelOrder(ctx context.Context, clientOrderID string) (Report, error)
	GetOrderStatus(ctx context.Context, clientOrderID string) (Report, error)
}

// Memory is the in-memory reference client. It acknowledges every order as
// sent with zero executed quantity and keeps reports for later cancel/query.
type Memory struct {
	orders map[string]Report
}

var _ Client = (*Memory)(nil)

// NewMemory creates an empty in-memory client.
func NewMemory() *Memory {
	return &Memory{orders: make(map[string]Report)}
}

func (c *Memory) SendOrder(_ context.Context, order OrderRequest) (Report, error) {
	avgPrice := decimal.Zero
	if order.Price != nil {
		avgPrice = *order.Price
	}

	report := Report{
		ClientOrderID:    order.ClientOrderID,
		ExchangeOrderID:  "ex_" + order.ClientOrderID,
		Status:           enum.OrderStatusSent,
		ExecutedQuantity: decimal.Zero,
		AvgPrice:         avgPrice,
		UpdatedAt:        time.Now().UTC(),
	}

	c.orders[order.ClientOrderID] = report
	return report, nil
}

func (c *Memory) CancelOrder(_ context.Context, clientOrderID string) (Report, error) {
	report, ok := c.orders[clientOrderID]
	if !ok {
		return Report{}, fmt.Errorf("cancel %s: %w", clientOrderID, ErrOrderNotFound)
	}

	report.Status = enum.OrderStatusCancelled
	report.UpdatedAt = time.Now().UTC()
	c.orders[clientOrderID] = report
	return report, nil
}

func (c *Memory) GetOrderStatus(_ context.Context, clientOrderID string) (Report, error) {
	report, ok := c.orders[clientOrderID]
	if !ok {
		return Report{}, fmt.Errorf("status %s: %w", clientOrderID, ErrOrderNotFound)
	}
	return report, nil
}
