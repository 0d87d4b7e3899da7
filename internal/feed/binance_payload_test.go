package feed

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/model/enum"
)

func TestParseTradeStream(t *testing.T) {
	receipt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	data := []byte(`{"e":"trade","E":1748779200123,"s":"BTCUSDT","t":123456,"p":"50000.10","q":"0.25","T":1748779200120,"m":true}`)

	event, err := parseStreamEvent("btcusdt@trade", data, receipt)
	require.NoError(t, err)

	assert.Equal(t, enum.ExchangeBinance, event.Exchange)
	assert.Equal(t, "BTC", event.Instrument.Base)
	assert.Equal(t, "USDT", event.Instrument.Quote)
	assert.Equal(t, "BTCUSDT", event.Instrument.ExchangeSymbol)
	assert.Equal(t, receipt, event.ReceiptTime)

	trade, ok := event.Kind.(model.Trade)
	require.True(t, ok)
	assert.Equal(t, "123456", trade.ID)
	assert.True(t, trade.Price.Equal(decimal.RequireFromString("50000.10")))
	assert.True(t, trade.Quantity.Equal(decimal.RequireFromString("0.25")))
	// Buyer is maker, so the aggressor sold.
	assert.Equal(t, enum.SideSell, trade.Side)
	assert.Equal(t, time.UnixMilli(1748779200120).UTC(), trade.Time)
}

func TestParseTradeStreamTakerBuy(t *testing.T) {
	data := []byte(`{"t":1,"p":"100","q":"1","T":0,"m":false}`)

	event, err := parseStreamEvent("ethusdt@trade", data, time.Now().UTC())
	require.NoError(t, err)

	trade, ok := event.Kind.(model.Trade)
	require.True(t, ok)
	assert.Equal(t, enum.SideBuy, trade.Side)
	assert.Equal(t, "ETH", event.Instrument.Base)
}

func TestParseDepthStream(t *testing.T) {
	receipt := time.Now().UTC()
	data := []byte(`{"lastUpdateId":42,"bids":[["49990.00","1.5"],["49980.00","2"]],"asks":[["50010.00","0.7"],["50020.00","3"]]}`)

	event, err := parseStreamEvent("btcusdt@depth20", data, receipt)
	require.NoError(t, err)

	book, ok := event.Kind.(model.OrderBookL1)
	require.True(t, ok)
	assert.True(t, book.BidPrice.Equal(decimal.RequireFromString("49990.00")))
	assert.True(t, book.BidQuantity.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, book.AskPrice.Equal(decimal.RequireFromString("50010.00")))
	assert.True(t, book.AskQuantity.Equal(decimal.RequireFromString("0.7")))
}

func TestParseStreamFailures(t *testing.T) {
	now := time.Now().UTC()

	_, err := parseStreamEvent("btcusdt@kline_1m", []byte(`{}`), now)
	assert.Error(t, err)

	_, err = parseStreamEvent("btcusdt@trade", []byte(`not json`), now)
	assert.Error(t, err)

	_, err = parseStreamEvent("btcusdt@trade", []byte(`{"p":"abc","q":"1"}`), now)
	assert.Error(t, err)

	_, err = parseStreamEvent("btcusdt@depth20", []byte(`{"bids":[],"asks":[["1","1"]]}`), now)
	assert.Error(t, err)
}

func TestInstrumentFromSymbol(t *testing.T) {
	tests := []struct {
		symbol string
		base   string
		quote  string
	}{
		{"btcusdt", "BTC", "USDT"},
		{"SOLUSDC", "SOL", "USDC"},
		{"ethbtc", "ETH", "BTC"},
		{"dogeusdt", "DOGE", "USDT"},
	}

	for _, tt := range tests {
		instrument := InstrumentFromSymbol(tt.symbol)
		assert.Equalf(t, tt.base, instrument.Base, "symbol %s", tt.symbol)
		assert.Equalf(t, tt.quote, instrument.Quote, "symbol %s", tt.symbol)
	}
}
