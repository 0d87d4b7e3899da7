package model

import (
	"time"

	"github.com/shopspring/decimal"

	"main/internal/model/enum"
)

// InstrumentID identifies a tradable instrument on a venue. It is a value
// type compared by structural equality; the same base/quote pair may appear
// on several exchanges.
type InstrumentID struct {
	Base           string `json:"base"`
	Quote          string `json:"quote"`
	ExchangeSymbol string `json:"exchange_symbol"`
}

// MarketEvent is one timestamped market data update. It is immutable once
// constructed; the feed produces it and the strategy consumes it.
type MarketEvent struct {
	Exchange     enum.Exchange
	Instrument   InstrumentID
	Kind         MarketDataKind
	ExchangeTime time.Time
	ReceiptTime  time.Time
}

// MarketDataKind is the payload variant carried by a MarketEvent. Exactly
// one of Trade, OrderBookL1, OrderBookL2 or Candle implements it.
type MarketDataKind interface {
	marketDataKind()
}

// Trade is a single public trade.
type Trade struct {
	ID       string
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Side     enum.Side
	Time     time.Time
}

func (Trade) marketDataKind() {}

// OrderBookL1 is a best bid/ask snapshot.
type OrderBookL1 struct {
	BidPrice    decimal.Decimal
	BidQuantity decimal.Decimal
	AskPrice    decimal.Decimal
	AskQuantity decimal.Decimal
	Time        time.Time
}

func (OrderBookL1) marketDataKind() {}

// PriceLevel is one level of a depth snapshot.
type PriceLevel struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// OrderBookL2 is a full depth snapshot, best levels first.
type OrderBookL2 struct {
	Bids []PriceLevel
	Asks []PriceLevel
	Time time.Time
}

func (OrderBookL2) marketDataKind() {}

// Candle is one OHLCV bar.
type Candle struct {
	Open     decimal.Decimal
	High     decimal.Decimal
	Low      decimal.Decimal
	Close    decimal.Decimal
	Volume   decimal.Decimal
	Time     time.Time
	Duration time.Duration
}

func (Candle) marketDataKind() {}
