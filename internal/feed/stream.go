package feed

import (
	"context"
	"io"

	"main/internal/model"
)

// Stream is an asynchronous source of market events. Next returns io.EOF
// once the stream is exhausted.
type Stream interface {
	Next(ctx context.Context) (*model.MarketEvent, error)
	Subscribe(ctx context.Context, instruments []model.InstrumentID) error
	Unsubscribe(ctx context.Context, instruments []model.InstrumentID) error
}

// Replay replays a fixed in-memory sequence of events.
type Replay struct {
	events []model.MarketEvent
	index  int
}

var _ Stream = (*Replay)(nil)

// NewReplay creates a replay stream over the given events.
func NewReplay(events []model.MarketEvent) *Replay {
	return &Replay{events: events}
}

func (r *Replay) Next(ctx context.Context) (*model.MarketEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.index >= len(r.events) {
		return nil, io.EOF
	}
	event := r.events[r.index]
	r.index++
	return &event, nil
}

func (r *Replay) Subscribe(context.Context, []model.InstrumentID) error {
	return nil
}

func (r *Replay) Unsubscribe(context.Context, []model.InstrumentID) error {
	return nil
}
