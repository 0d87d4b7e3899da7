package statistic

import (
	"github.com/shopspring/decimal"

	"main/internal/model"
	"main/internal/model/enum"
)

// PositionTracker folds executed quantities into signed net positions per
// instrument. Buys add, sells subtract. It is not goroutine safe; the
// pipeline consumer owns it.
type PositionTracker struct {
	positions map[model.InstrumentID]decimal.Decimal
}

// NewPositionTracker creates an empty tracker.
func NewPositionTracker() *PositionTracker {
	return &PositionTracker{positions: make(map[model.InstrumentID]decimal.Decimal)}
}

// ApplyFill updates the instrument position by the executed quantity and
// returns the new net position. Zero quantity leaves the position unchanged.
func (t *PositionTracker) ApplyFill(instrument model.InstrumentID, side enum.Side, executed decimal.Decimal) decimal.Decimal {
	current := t.positions[instrument]

	var next decimal.Decimal
	switch side {
	case enum.SideBuy:
		next = current.Add(executed)
	case enum.SideSell:
		next = current.Sub(executed)
	default:
		next = current
	}

	t.positions[instrument] = next
	return next
}

// Position returns the current net position for an instrument. Unknown
// instruments are flat.
func (t *PositionTracker) Position(instrument model.InstrumentID) decimal.Decimal {
	return t.positions[instrument]
}

// OpenPositions returns a copy of every non-flat position.
func (t *PositionTracker) OpenPositions() map[model.InstrumentID]decimal.Decimal {
	open := make(map[model.InstrumentID]decimal.Decimal, len(t.positions))
	for instrument, qty := range t.positions {
		if !qty.IsZero() {
			open[instrument] = qty
		}
	}
	return open
}
