package risk

import (
	"time"

	"github.com/shopspring/decimal"

	"main/internal/execution"
	"main/internal/strategy"
)

// Manager gates strategy output before it reaches the execution endpoint.
type Manager interface {
	CheckRisk(output strategy.Output) []CheckResult
	CheckOrderRisk(order *execution.OrderRequest) CheckResult
}

// Gate is the default risk gate. It enforces per-order size, a coarse
// fixed-window order rate and cumulative notional exposure. The rate window
// resets whenever a full second has elapsed since the window start; bursts
// across a window boundary are a documented limitation of this scheme, not
// a bug.
type Gate struct {
	limits           Limits
	exposure         decimal.Decimal
	ordersThisWindow int
	windowStart      time.Time
	now              func() time.Time
}

var _ Manager = (*Gate)(nil)

// NewGate creates a gate with the given limits and zero exposure.
func NewGate(limits Limits) *Gate {
	return &Gate{
		limits:      limits,
		exposure:    decimal.Zero,
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// Limits returns the gate's static limits.
func (g *Gate) Limits() Limits {
	return g.limits
}

// Exposure returns the cumulative approved notional.
func (g *Gate) Exposure() decimal.Decimal {
	return g.exposure
}

// CheckRisk checks every order in the output independently, strictly left to
// right and preserving order. Earlier orders in the batch mutate the shared
// window and exposure state seen by later ones.
func (g *Gate) CheckRisk(output strategy.Output) []CheckResult {
	if len(output.Orders) == 0 {
		return nil
	}

	results := make([]CheckResult, 0, len(output.Orders))
	for i := range output.Orders {
		results = append(results, g.CheckOrderRisk(&output.Orders[i]))
	}
	return results
}

// CheckOrderRisk applies the fixed sequence of checks to a single order.
// The first failing check wins.
func (g *Gate) CheckOrderRisk(order *execution.OrderRequest) CheckResult {
	if g.now().Sub(g.windowStart) >= time.Second {
		g.ordersThisWindow = 0
		g.windowStart = g.now()
	}

	if order.Quantity.Cmp(g.limits.MaxOrderSize) > 0 {
		return CheckResult{Reason: "order size exceeds limit"}
	}

	if g.ordersThisWindow >= g.limits.MaxOrdersPerSecond {
		return CheckResult{Reason: "order rate limit exceeded"}
	}

	notional := order.Notional()
	if g.exposure.Add(notional).Cmp(g.limits.MaxNotionalExposure) > 0 {
		return CheckResult{Reason: "notional exposure limit exceeded"}
	}

	g.ordersThisWindow++
	g.exposure = g.exposure.Add(notional)
	return CheckResult{Approved: true}
}
