package execution

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/model/enum"
)

func limitOrder(id string, price string) OrderRequest {
	p := decimal.RequireFromString(price)
	return OrderRequest{
		ClientOrderID: id,
		Instrument:    model.InstrumentID{Base: "BTC", Quote: "USDT", ExchangeSymbol: "BTCUSDT"},
		Side:          enum.SideBuy,
		Type:          enum.OrderTypeLimit,
		Quantity:      decimal.RequireFromString("0.01"),
		Price:         &p,
		TimeInForce:   enum.TimeInForceGTC,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestMemorySendOrderEchoesSent(t *testing.T) {
	c := NewMemory()

	report, err := c.SendOrder(t.Context(), limitOrder("o1", "50000"))
	require.NoError(t, err)

	assert.Equal(t, "o1", report.ClientOrderID)
	assert.Equal(t, "ex_o1", report.ExchangeOrderID)
	assert.Equal(t, enum.OrderStatusSent, report.Status)
	assert.True(t, report.ExecutedQuantity.IsZero())
	assert.True(t, report.AvgPrice.Equal(decimal.NewFromInt(50_000)))
}

func TestMemoryCancelOrder(t *testing.T) {
	c := NewMemory()
	_, err := c.SendOrder(t.Context(), limitOrder("o1", "50000"))
	require.NoError(t, err)

	report, err := c.CancelOrder(t.Context(), "o1")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, report.Status)

	status, err := c.GetOrderStatus(t.Context(), "o1")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, status.Status)
}

func TestMemoryUnknownOrderFails(t *testing.T) {
	c := NewMemory()

	_, err := c.CancelOrder(t.Context(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOrderNotFound))

	_, err = c.GetOrderStatus(t.Context(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOrderNotFound))
}

func TestOrderRequestNotional(t *testing.T) {
	order := limitOrder("o1", "100")
	assert.True(t, order.Notional().Equal(decimal.NewFromInt(1)))

	market := order
	market.Price = nil
	assert.True(t, market.Notional().Equal(order.Quantity))
}

func TestMemoryMarketOrderAvgPriceIsZero(t *testing.T) {
	c := NewMemory()

	order := limitOrder("o2", "1")
	order.Price = nil
	order.Type = enum.OrderTypeMarket

	report, err := c.SendOrder(t.Context(), order)
	require.NoError(t, err)
	assert.True(t, report.AvgPrice.IsZero())
}
