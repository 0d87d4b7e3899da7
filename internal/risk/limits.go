package risk

import (
	"github.com/shopspring/decimal"

	"main/internal/execution"
)

// Limits defines static risk limits. They are immutable for the lifetime of
// the gate that reads them.
type Limits struct {
	MaxPositionSize      decimal.Decimal `json:"max_position_size"`
	MaxNotionalExposure  decimal.Decimal `json:"max_notional_exposure"`
	MaxOrdersPerSecond   int             `json:"max_orders_per_second"`
	MaxOrderSize         decimal.Decimal `json:"max_order_size"`
	EnableCircuitBreaker bool            `json:"enable_circuit_breaker"`
	MaxDrawdownPercent   decimal.Decimal `json:"max_drawdown_percent"`
}

// DefaultLimits returns the baseline limits.
func DefaultLimits() Limits {
	return Limits{
		MaxPositionSize:      decimal.NewFromInt(100),
		MaxNotionalExposure:  decimal.NewFromInt(100_000),
		MaxOrdersPerSecond:   100,
		MaxOrderSize:         decimal.NewFromInt(10),
		EnableCircuitBreaker: true,
		MaxDrawdownPercent:   decimal.NewFromInt(5),
	}
}

// CheckResult is the terminal verdict for one order request. A rejection is
// a normal result, not an error; the caller must check Approved explicitly.
// ModifiedOrder exists for gates that clip size instead of rejecting; the
// default gate never sets it.
type CheckResult struct {
	Approved      bool
	Reason        string
	ModifiedOrder *execution.OrderRequest
}
