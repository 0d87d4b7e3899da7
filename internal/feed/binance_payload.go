package feed

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"

	"main/internal/model"
	"main/internal/model/enum"
)

const (
	_tradeStreamSuffix = "@trade"
	_depthStreamSuffix = "@depth20"
)

// Quote tails recognized when splitting an exchange symbol, longest first.
var _knownQuotes = []string{"USDT", "USDC", "BUSD", "TUSD", "BTC", "ETH", "BNB"}

type binanceTradePayload struct {
	TradeID      int64  `json:"t"`
	Price        string `json:"p"`
	Quantity     string `json:"q"`
	TradeTime    int64  `json:"T"`
	BuyerIsMaker bool   `json:"m"`
}

type binanceDepthPayload struct {
	Bids [][2]string `json:"bids"`
	Asks [][2]string `json:"asks"`
}

// parseStreamEvent converts one combined-stream payload into a market event.
// The instrument is recovered from the channel name by stripping the stream
// suffix and splitting the known quote-currency tail from the base.
func parseStreamEvent(stream string, data []byte, receipt time.Time) (*model.MarketEvent, error) {
	switch {
	case strings.HasSuffix(stream, _tradeStreamSuffix):
		return parseTradeEvent(strings.TrimSuffix(stream, _tradeStreamSuffix), data, receipt)
	case strings.HasSuffix(stream, _depthStreamSuffix):
		return parseDepthEvent(strings.TrimSuffix(stream, _depthStreamSuffix), data, receipt)
	default:
		return nil, errors.New("unknown stream: " + stream)
	}
}

func parseTradeEvent(symbol string, data []byte, receipt time.Time) (*model.MarketEvent, error) {
	var payload binanceTradePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(err, "unmarshal trade payload")
	}

	price, err := decimal.NewFromString(payload.Price)
	if err != nil {
		return nil, errors.Wrap(err, "parse trade price")
	}
	quantity, err := decimal.NewFromString(payload.Quantity)
	if err != nil {
		return nil, errors.Wrap(err, "parse trade quantity")
	}

	// A buyer-is-maker print means the aggressor sold.
	side := enum.SideBuy
	if payload.BuyerIsMaker {
		side = enum.SideSell
	}

	exchangeTime := receipt
	if payload.TradeTime > 0 {
		exchangeTime = time.UnixMilli(payload.TradeTime).UTC()
	}

	return &model.MarketEvent{
		Exchange:   enum.ExchangeBinance,
		Instrument: InstrumentFromSymbol(symbol),
		Kind: model.Trade{
			ID:       strconv.FormatInt(payload.TradeID, 10),
			Price:    price,
			Quantity: quantity,
			Side:     side,
			Time:     exchangeTime,
		},
		ExchangeTime: exchangeTime,
		ReceiptTime:  receipt,
	}, nil
}

func parseDepthEvent(symbol string, data []byte, receipt time.Time) (*model.MarketEvent, error) {
	var payload binanceDepthPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(err, "unmarshal depth payload")
	}
	if len(payload.Bids) == 0 || len(payload.Asks) == 0 {
		return nil, errors.New("depth payload has empty side")
	}

	bidPrice, err := decimal.NewFromString(payload.Bids[0][0])
	if err != nil {
		return nil, errors.Wrap(err, "parse best bid price")
	}
	bidQuantity, err := decimal.NewFromString(payload.Bids[0][1])
	if err != nil {
		return nil, errors.Wrap(err, "parse best bid quantity")
	}
	askPrice, err := decimal.NewFromString(payload.Asks[0][0])
	if err != nil {
		return nil, errors.Wrap(err, "parse best ask price")
	}
	askQuantity, err := decimal.NewFromString(payload.Asks[0][1])
	if err != nil {
		return nil, errors.Wrap(err, "parse best ask quantity")
	}

	return &model.MarketEvent{
		Exchange:   enum.ExchangeBinance,
		Instrument: InstrumentFromSymbol(symbol),
		Kind: model.OrderBookL1{
			BidPrice:    bidPrice,
			BidQuantity: bidQuantity,
			AskPrice:    askPrice,
			AskQuantity: askQuantity,
			Time:        receipt,
		},
		ExchangeTime: receipt,
		ReceiptTime:  receipt,
	}, nil
}

// InstrumentFromSymbol splits an exchange symbol like "btcusdt" into
// base/quote by its known quote tail. Unrecognized tails fall back to the
// last four characters, matching the exchange's stable-coin symbols.
func InstrumentFromSymbol(symbol string) model.InstrumentID {
	upper := strings.ToUpper(symbol)
	for _, quote := range _knownQuotes {
		if len(upper) > len(quote) && strings.HasSuffix(upper, quote) {
			return model.InstrumentID{
				Base:           strings.TrimSuffix(upper, quote),
				Quote:          quote,
				ExchangeSymbol: upper,
			}
		}
	}

	if len(upper) > 4 {
		return model.InstrumentID{
			Base:           upper[:len(upper)-4],
			Quote:          upper[len(upper)-4:],
			ExchangeSymbol: upper,
		}
	}

	return model.InstrumentID{ExchangeSymbol: upper}
}
