package feed

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
	"github.com/yanun0323/pkg/ws"

	"main/internal/model"
)

const (
	_binanceBaseWsURL = "wss://stream.binance.com:9443/stream"

	// _eventBuffer bounds pending events between the listener goroutine and
	// the engine consumer. The blocking send provides back-pressure.
	_eventBuffer = 100
)

// Binance streams live trades and top-of-book depth from the exchange
// WebSocket. Malformed messages are logged and dropped; the stream keeps
// going.
type Binance struct {
	wss         *ws.WebSocket
	events      chan *model.MarketEvent
	observeOnce sync.Once
	requestID   int64
	instruments []model.InstrumentID
}

var _ Stream = (*Binance)(nil)

// NewBinance creates a stream against the combined-stream endpoint.
func NewBinance(ctx context.Context) *Binance {
	return &Binance{
		wss:    ws.New(ctx, _binanceBaseWsURL),
		events: make(chan *model.MarketEvent, _eventBuffer),
	}
}

// Start opens the WebSocket connection.
func (f *Binance) Start(ctx context.Context) error {
	if err := f.wss.Start(ctx); err != nil {
		return errors.Wrap(err, "start wss")
	}

	return nil
}

// Close tears down the connection.
func (f *Binance) Close() {
	f.wss.Close()
}

type binanceStreamRequest struct {
	Method string   `json:"method"`
	Params []string `json:"params"`
	ID     int64    `json:"id"`
}

type binanceStreamResponse struct {
	ID     int64 `json:"id"`
	Result any   `json:"result"`
}

type streamEnvelope struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}

// Next returns the next delivered event, io.EOF once the stream closes.
func (f *Binance) Next(ctx context.Context) (*model.MarketEvent, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case event, ok := <-f.events:
		if !ok {
			return nil, io.EOF
		}
		return event, nil
	}
}

// Subscribe registers trade and depth channels for the instruments and
// starts the listener on first use.
func (f *Binance) Subscribe(ctx context.Context, instruments []model.InstrumentID) error {
	if err := f.request(ctx, "SUBSCRIBE", instruments); err != nil {
		return err
	}

	f.instruments = append(f.instruments, instruments...)
	f.observeOnce.Do(func() { f.observe(ctx) })
	return nil
}

// Unsubscribe removes the instruments' channels.
func (f *Binance) Unsubscribe(ctx context.Context, instruments []model.InstrumentID) error {
	if err := f.request(ctx, "UNSUBSCRIBE", instruments); err != nil {
		return err
	}

	f.instruments = remaining(f.instruments, instruments)
	return nil
}

func (f *Binance) request(ctx context.Context, method string, instruments []model.InstrumentID) error {
	if len(instruments) == 0 {
		return nil
	}

	f.requestID++
	requestID := f.requestID
	params := make([]string, 0, 2*len(instruments))
	for _, instrument := range instruments {
		symbol := strings.ToLower(instrument.ExchangeSymbol)
		params = append(params,
			symbol+_tradeStreamSuffix,
			symbol+_depthStreamSuffix,
		)
	}

	appendIntoRegister := true
	if err := f.wss.SendAndWait(ctx, ws.Sidecar{
		Sender: func(ctx context.Context, ws *ws.WebSocket) error {
			payload := binanceStreamRequest{
				Method: method,
				Params: params,
				ID:     requestID,
			}

			if err := ws.WriteJSON(payload); err != nil {
				return errors.Wrap(err, "write stream request").With("payload", payload)
			}

			return nil
		},
		Waiter: func(ctx context.Context, m ws.Message) (bool, error) {
			var resp binanceStreamResponse
			if err := m.Unmarshal(&resp); err != nil || resp.ID != requestID {
				return false, nil
			}

			if resp.Result != nil {
				return false, errors.Errorf("%s rejected, err: %+v", strings.ToLower(method), resp.Result)
			}
			return true, nil
		},
	}, appendIntoRegister); err != nil {
		return errors.Wrap(err, "send and wait")
	}

	return nil
}

func (f *Binance) observe(ctx context.Context) {
	ch, cancel := f.wss.Subscribe()
	go func() {
		defer cancel()
		defer close(f.events)
		for {
			select {
			case <-sys.Shutdown():
				return
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}

				var env streamEnvelope
				if err := m.Unmarshal(&env); err != nil || env.Stream == "" {
					continue
				}

				event, err := parseStreamEvent(env.Stream, env.Data, time.Now().UTC())
				if err != nil {
					logs.Errorf("parse %s message, err: %+v", env.Stream, err)
					continue
				}

				select {
				case <-sys.Shutdown():
					return
				case <-ctx.Done():
					return
				case f.events <- event:
				}
			}
		}
	}()
}

func remaining(current, removed []model.InstrumentID) []model.InstrumentID {
	kept := make([]model.InstrumentID, 0, len(current))
	for _, instrument := range current {
		drop := false
		for _, r := range removed {
			if instrument == r {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, instrument)
		}
	}
	return kept
}
