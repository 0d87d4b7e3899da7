package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/shopspring/decimal"
	"github.com/yanun0323/logs"

	"main/internal/bus"
	"main/internal/engine"
	"main/internal/execution"
	"main/internal/feed"
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/ops"
	"main/internal/recorder"
	"main/internal/risk"
	"main/internal/statistic"
	"main/internal/strategy"
	"main/pkg/conn"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config")
	live := flag.Bool("live", false, "Stream live market data instead of the synthetic feed")
	symbols := flag.String("symbols", "BTCUSDT", "Comma-separated exchange symbols (used when the config has no enabled instruments)")
	eventCount := flag.Int("events", 200, "Number of market events to process before shutting down (0=unbounded)")
	basePrice := flag.Float64("base-price", 50_000, "Synthetic feed base price")
	halfSpread := flag.Float64("half-spread", 30, "Synthetic feed half spread")
	strategyID := flag.String("strategy-id", "spread", "Strategy identifier used in client order ids")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL DSN for order-flow recording (empty=disabled)")
	profiling := flag.Bool("pyroscope", false, "Enable pyroscope profiling")
	profilingAddr := flag.String("pyroscope-addr", "http://localhost:4040", "Pyroscope server address")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *profiling {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "trader",
			ServerAddress:   *profilingAddr,
			Tags: map[string]string{
				"env": "local",
			},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	instruments := cfg.EnabledInstruments()
	if len(instruments) == 0 {
		instruments = parseSymbols(*symbols)
	}
	if len(instruments) == 0 {
		log.Fatalf("no instruments to trade")
	}

	var rec *recorder.Recorder
	if *postgresDSN != "" {
		client, err := conn.New(conn.Option{ConnString: *postgresDSN})
		if err != nil {
			log.Fatalf("postgres connect failed: %v", err)
		}
		defer func() {
			_ = client.Close()
		}()

		rec, err = recorder.New(client)
		if err != nil {
			log.Fatalf("recorder init failed: %v", err)
		}
	}

	stream := openStream(ctx, *live, instruments, *basePrice, *halfSpread, *eventCount)

	eng := engine.New(
		strategy.NewSpread(*strategyID),
		risk.NewGate(cfg.RiskLimits),
		execution.NewMemory(),
		engine.DefaultConfig(),
	)

	queue := bus.NewQueue(bus.DefaultCapacity)
	positions := statistic.NewPositionTracker()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		pump(ctx, stream, queue, *eventCount)
	}()

	queue.Run(ctx, func(event engine.Event) {
		output := eng.ProcessEvent(event)
		if output.StrategyOutput == nil {
			return
		}
		submitApproved(ctx, eng, rec, positions, output)
	})
	wg.Wait()

	summary := statistic.NewTradingSummary(eng.Metrics(), eng.Meta().StartTime, time.Now().UTC())
	fmt.Println(summary)
	for instrument, qty := range positions.OpenPositions() {
		logs.Infof("open position %s: %s", instrument.ExchangeSymbol, qty)
	}
	if rec != nil {
		if err := rec.RecordSummary(summary); err != nil {
			logs.Errorf("record summary, err: %+v", err)
		}
	}
}

func loadConfig(path string) (ops.SystemConfig, error) {
	if path == "" {
		return ops.Default(), nil
	}
	return ops.Load(path)
}

func parseSymbols(raw string) []model.InstrumentID {
	parts := strings.Split(raw, ",")
	instruments := make([]model.InstrumentID, 0, len(parts))
	for _, part := range parts {
		symbol := strings.TrimSpace(part)
		if symbol == "" {
			continue
		}
		instruments = append(instruments, feed.InstrumentFromSymbol(symbol))
	}
	return instruments
}

// openStream returns the live stream when requested and reachable, the
// local synthetic source otherwise. Connectivity failures fall back rather
// than terminate.
func openStream(ctx context.Context, live bool, instruments []model.InstrumentID, basePrice, halfSpread float64, limit int) feed.Stream {
	if live {
		binance := feed.NewBinance(ctx)
		if err := binance.Start(ctx); err != nil {
			logs.Errorf("start live feed, falling back to synthetic, err: %+v", err)
		} else if err := binance.Subscribe(ctx, instruments); err != nil {
			logs.Errorf("subscribe live feed, falling back to synthetic, err: %+v", err)
			binance.Close()
		} else {
			logs.Infof("live feed subscribed: %d instruments", len(instruments))
			return binance
		}
	}

	synthetic, err := feed.NewSynthetic(
		instruments,
		decimal.NewFromFloat(basePrice),
		decimal.NewFromFloat(halfSpread),
		limit,
	)
	if err != nil {
		log.Fatalf("synthetic feed init failed: %v", err)
	}
	return synthetic
}

// pump moves events from the stream into the bounded queue and closes the
// queue behind a shutdown signal once the stream ends or the event budget
// is spent.
func pump(ctx context.Context, stream feed.Stream, queue *bus.Queue, limit int) {
	defer queue.Close()

	produced := 0
	for {
		if limit > 0 && produced >= limit {
			break
		}

		event, err := stream.Next(ctx)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
				logs.Errorf("feed next, err: %+v", err)
			}
			break
		}

		if err := queue.Publish(ctx, engine.MarketEvent(event)); err != nil {
			return
		}
		produced++
	}

	_ = queue.Publish(ctx, engine.ShutdownEvent())
}

// submitApproved sends gate-approved orders to the execution endpoint and
// feeds the resulting reports back into the engine as execution events.
func submitApproved(ctx context.Context, eng *engine.Engine, rec *recorder.Recorder, positions *statistic.PositionTracker, output engine.Output) {
	orders := output.StrategyOutput.Orders
	for i, verdict := range output.RiskOutput {
		if i >= len(orders) {
			break
		}
		order := orders[i]

		if rec != nil {
			if err := rec.RecordOrder(order, verdict); err != nil {
				logs.Errorf("record order %s, err: %+v", order.ClientOrderID, err)
			}
		}

		if !verdict.Approved {
			logs.Infof("order %s rejected: %s", order.ClientOrderID, verdict.Reason)
			continue
		}

		report, err := eng.ExecutionClient().SendOrder(ctx, order)
		if err != nil {
			logs.Errorf("send order %s, err: %+v", order.ClientOrderID, err)
			continue
		}
		eng.RecordOrderSent()

		if rec != nil {
			if err := rec.RecordReport(report); err != nil {
				logs.Errorf("record report %s, err: %+v", report.ClientOrderID, err)
			}
		}

		if !report.ExecutedQuantity.IsZero() {
			positions.ApplyFill(order.Instrument, order.Side, report.ExecutedQuantity)
		}

		eng.ProcessEvent(engine.ExecutionEvent(&execution.Event{
			Type:   executionEventType(report.Status),
			Report: report,
		}))
	}
}

func executionEventType(status enum.OrderStatus) execution.EventType {
	switch status {
	case enum.OrderStatusPartiallyFilled:
		return execution.EventOrderPartiallyFilled
	case enum.OrderStatusFilled:
		return execution.EventOrderFilled
	case enum.OrderStatusCancelled:
		return execution.EventOrderCancelled
	case enum.OrderStatusRejected:
		return execution.EventOrderRejected
	default:
		return execution.EventOrderAccepted
	}
}
