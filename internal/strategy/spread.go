package strategy

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"main/internal/execution"
	"main/internal/model"
	"main/internal/model/enum"
)

var (
	two             = decimal.NewFromInt(2)
	defaultQuantity = decimal.RequireFromString("0.01")
	tickSize        = decimal.RequireFromString("0.0001")
	spreadThreshold = decimal.RequireFromString("0.001")
)

// Spread is the reference mean-reversion/momentum strategy. On a wide L1
// book it quotes both sides inside the spread; on a trade it leans against
// the taker with a market order. Other payload kinds produce nothing.
type Spread struct {
	id       string
	lastNano int64
	now      func() time.Time
}

var _ Strategy = (*Spread)(nil)

// NewSpread creates a spread strategy with the given identifier. The
// identifier prefixes every client order id the strategy generates.
func NewSpread(id string) *Spread {
	return &Spread{
		id:  id,
		now: time.Now,
	}
}

func (s *Spread) ProcessMarketData(event *model.MarketEvent) Output {
	switch kind := event.Kind.(type) {
	case model.OrderBookL1:
		return Output{Orders: s.quoteOrderBook(event, kind)}
	case model.Trade:
		return Output{Orders: s.fadeTrade(event, kind)}
	default:
		return Output{}
	}
}

func (s *Spread) ProcessExecutionEvent(event *execution.Event) {
	// Stateful strategies adjust parameters on fills here. The reference
	// implementation keeps no position state.
	_ = event
}

// quoteOrderBook places a bid one tick above the best bid and an ask one
// tick below the best ask when the spread exceeds 0.1% of mid. Narrower
// markets are not worth quoting after costs.
func (s *Spread) quoteOrderBook(event *model.MarketEvent, book model.OrderBookL1) []execution.OrderRequest {
	spread := book.AskPrice.Sub(book.BidPrice)
	mid := book.AskPrice.Add(book.BidPrice).Div(two)

	if spread.Cmp(mid.Mul(spreadThreshold)) <= 0 {
		return nil
	}

	now := s.now().UTC()
	bidPrice := book.BidPrice.Add(tickSize)
	askPrice := book.AskPrice.Sub(tickSize)

	return []execution.OrderRequest{
		{
			ClientOrderID: s.nextOrderID("bid"),
			Instrument:    event.Instrument,
			Side:          enum.SideBuy,
			Type:          enum.OrderTypeLimit,
			Quantity:      defaultQuantity,
			Price:         &bidPrice,
			TimeInForce:   enum.TimeInForceGTC,
			CreatedAt:     now,
		},
		{
			ClientOrderID: s.nextOrderID("ask"),
			Instrument:    event.Instrument,
			Side:          enum.SideSell,
			Type:          enum.OrderTypeLimit,
			Quantity:      defaultQuantity,
			Price:         &askPrice,
			TimeInForce:   enum.TimeInForceGTC,
			CreatedAt:     now,
		},
	}
}

// fadeTrade leans against the observed trade with an IOC market order on
// the opposite side. A deliberately naive contrarian signal.
func (s *Spread) fadeTrade(event *model.MarketEvent, trade model.Trade) []execution.OrderRequest {
	return []execution.OrderRequest{
		{
			ClientOrderID: s.nextOrderID("trade"),
			Instrument:    event.Instrument,
			Side:          trade.Side.Opposite(),
			Type:          enum.OrderTypeMarket,
			Quantity:      defaultQuantity,
			TimeInForce:   enum.TimeInForceIOC,
			CreatedAt:     s.now().UTC(),
		},
	}
}

// nextOrderID builds a client order id from the strategy id, the order role
// and a non-decreasing nanosecond suffix. Under the single-threaded pipeline
// this guarantees uniqueness for the engine's lifetime.
func (s *Spread) nextOrderID(role string) string {
	nano := s.now().UnixNano()
	if nano <= s.lastNano {
		nano = s.lastNano + 1
	}
	s.lastNano = nano
	return fmt.Sprintf("%s_%s_%d", s.id, role, nano)
}
