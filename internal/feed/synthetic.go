package feed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"main/internal/model"
	"main/internal/model/enum"
)

// Synthetic generates deterministic ticks locally. It is the documented
// fallback event source when live connectivity fails, and a convenient
// driver for demos and load tests. Instruments round-robin; trade and L1
// book events alternate per instrument.
type Synthetic struct {
	instruments []model.InstrumentID
	basePrice   decimal.Decimal
	baseSize    decimal.Decimal
	spread      decimal.Decimal
	limit       int
	index       int
	produced    int
	now         func() time.Time
}

var _ Stream = (*Synthetic)(nil)

// NewSynthetic creates a generator over the given instruments. limit caps
// the number of produced events; zero means unbounded.
func NewSynthetic(instruments []model.InstrumentID, basePrice, spread decimal.Decimal, limit int) (*Synthetic, error) {
	if len(instruments) == 0 {
		return nil, fmt.Errorf("synthetic feed has no instruments")
	}
	if spread.Sign() < 0 {
		spread = decimal.Zero
	}
	return &Synthetic{
		instruments: instruments,
		basePrice:   basePrice,
		baseSize:    decimal.NewFromInt(1),
		spread:      spread,
		limit:       limit,
		now:         time.Now,
	}, nil
}

func (s *Synthetic) Next(ctx context.Context) (*model.MarketEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.limit > 0 && s.produced >= s.limit {
		return nil, io.EOF
	}

	instrument := s.instruments[s.index%len(s.instruments)]
	price := s.basePrice.Add(decimal.NewFromInt(int64(s.index % 16)))
	now := s.now().UTC()

	var kind model.MarketDataKind
	if s.produced%2 == 0 {
		side := enum.SideBuy
		if s.index%2 == 1 {
			side = enum.SideSell
		}
		kind = model.Trade{
			ID:       fmt.Sprintf("syn-%d", s.produced),
			Price:    price,
			Quantity: s.baseSize,
			Side:     side,
			Time:     now,
		}
	} else {
		kind = model.OrderBookL1{
			BidPrice:    price.Sub(s.spread),
			BidQuantity: s.baseSize,
			AskPrice:    price.Add(s.spread),
			AskQuantity: s.baseSize,
			Time:        now,
		}
	}

	s.index++
	s.produced++

	return &model.MarketEvent{
		Exchange:     enum.ExchangeBinance,
		Instrument:   instrument,
		Kind:         kind,
		ExchangeTime: now,
		ReceiptTime:  now,
	}, nil
}

func (s *Synthetic) Subscribe(context.Context, []model.InstrumentID) error {
	return nil
}

func (s *Synthetic) Unsubscribe(context.Context, []model.InstrumentID) error {
	return nil
}
