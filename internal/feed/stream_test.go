package feed

import (
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/model/enum"
)

func TestReplayPreservesOrderAndEnds(t *testing.T) {
	now := time.Now().UTC()
	events := []model.MarketEvent{
		{Instrument: model.InstrumentID{ExchangeSymbol: "A"}, ExchangeTime: now},
		{Instrument: model.InstrumentID{ExchangeSymbol: "B"}, ExchangeTime: now},
	}

	r := NewReplay(events)
	require.NoError(t, r.Subscribe(t.Context(), nil))

	first, err := r.Next(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "A", first.Instrument.ExchangeSymbol)

	second, err := r.Next(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "B", second.Instrument.ExchangeSymbol)

	_, err = r.Next(t.Context())
	assert.ErrorIs(t, err, io.EOF)
}

func TestSyntheticRequiresInstruments(t *testing.T) {
	_, err := NewSynthetic(nil, decimal.NewFromInt(100), decimal.NewFromInt(1), 0)
	assert.Error(t, err)
}

func TestSyntheticAlternatesKindsAndHonorsLimit(t *testing.T) {
	instruments := []model.InstrumentID{InstrumentFromSymbol("btcusdt")}
	s, err := NewSynthetic(instruments, decimal.NewFromInt(50_000), decimal.NewFromInt(30), 4)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		event, err := s.Next(t.Context())
		require.NoError(t, err)
		assert.Equal(t, enum.ExchangeBinance, event.Exchange)
		assert.Equal(t, "BTCUSDT", event.Instrument.ExchangeSymbol)

		if i%2 == 0 {
			_, ok := event.Kind.(model.Trade)
			assert.Truef(t, ok, "event %d should be a trade", i)
		} else {
			book, ok := event.Kind.(model.OrderBookL1)
			require.Truef(t, ok, "event %d should be an L1 book", i)
			assert.True(t, book.AskPrice.GreaterThan(book.BidPrice))
		}
	}

	_, err = s.Next(t.Context())
	assert.ErrorIs(t, err, io.EOF)
}

func TestSyntheticRoundRobinsInstruments(t *testing.T) {
	instruments := []model.InstrumentID{
		InstrumentFromSymbol("btcusdt"),
		InstrumentFromSymbol("ethusdt"),
	}
	s, err := NewSynthetic(instruments, decimal.NewFromInt(100), decimal.Zero, 4)
	require.NoError(t, err)

	var symbols []string
	for i := 0; i < 4; i++ {
		event, err := s.Next(t.Context())
		require.NoError(t, err)
		symbols = append(symbols, event.Instrument.ExchangeSymbol)
	}

	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT", "BTCUSDT", "ETHUSDT"}, symbols)
}
