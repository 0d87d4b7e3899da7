package recorder

import (
	"time"

	"github.com/yanun0323/errors"

	"main/internal/execution"
	"main/internal/risk"
	"main/internal/statistic"
	"main/pkg/conn"
)

// Recorder persists order flow and run summaries to PostgreSQL for later
// audit. It sits outside the hot path: the caller records after the
// pipeline returns, never inside ProcessEvent.
type Recorder struct {
	client *conn.Client
}

// New prepares the schema and returns a recorder bound to the client.
func New(client *conn.Client) (*Recorder, error) {
	if client == nil || client.DB() == nil {
		return nil, errors.New("recorder requires a database client")
	}

	if err := client.DB().AutoMigrate(&OrderRecord{}, &ReportRecord{}, &RunRecord{}); err != nil {
		return nil, errors.Wrap(err, "migrate recorder schema")
	}

	return &Recorder{client: client}, nil
}

// RecordOrder stores one order request with its risk verdict.
func (r *Recorder) RecordOrder(order execution.OrderRequest, verdict risk.CheckResult) error {
	record := OrderRecord{
		ClientOrderID: order.ClientOrderID,
		Symbol:        order.Instrument.ExchangeSymbol,
		Side:          order.Side.String(),
		Type:          order.Type.String(),
		Quantity:      order.Quantity.String(),
		TimeInForce:   order.TimeInForce.String(),
		Approved:      verdict.Approved,
		RejectReason:  verdict.Reason,
		CreatedAt:     order.CreatedAt,
	}
	if order.Price != nil {
		record.Price = order.Price.String()
	}

	if err := r.client.DB().Create(&record).Error; err != nil {
		return errors.Wrap(err, "insert order record")
	}
	return nil
}

// RecordReport stores one execution report.
func (r *Recorder) RecordReport(report execution.Report) error {
	record := ReportRecord{
		ClientOrderID:    report.ClientOrderID,
		ExchangeOrderID:  report.ExchangeOrderID,
		Status:           report.Status.String(),
		ExecutedQuantity: report.ExecutedQuantity.String(),
		AvgPrice:         report.AvgPrice.String(),
		UpdatedAt:        report.UpdatedAt,
	}

	if err := r.client.DB().Create(&record).Error; err != nil {
		return errors.Wrap(err, "insert report record")
	}
	return nil
}

// RecordSummary stores the end-of-run trading summary.
func (r *Recorder) RecordSummary(summary statistic.TradingSummary) error {
	record := RunRecord{
		StartTime:        summary.StartTime,
		EndTime:          summary.EndTime,
		EventsProcessed:  summary.Metrics.EventsProcessed,
		AvgLatencyMicros: summary.Metrics.AvgLatencyMicros,
		MaxLatencyMicros: summary.Metrics.MaxLatencyMicros,
		OrdersSent:       summary.Metrics.OrdersSent,
		OrdersFilled:     summary.Metrics.OrdersFilled,
		OrdersCancelled:  summary.Metrics.OrdersCancelled,
		PnL:              summary.Metrics.PnL,
	}

	if err := r.client.DB().Create(&record).Error; err != nil {
		return errors.Wrap(err, "insert run record")
	}
	return nil
}

// OrderRecord is the persisted form of an order request and its verdict.
type OrderRecord struct {
	ID            uint   `gorm:"primaryKey"`
	ClientOrderID string `gorm:"index"`
	Symbol        string `gorm:"index"`
	Side          string
	Type          string
	Quantity      string
	Price         string
	TimeInForce   string
	Approved      bool
	RejectReason  string
	CreatedAt     time.Time
}

// ReportRecord is the persisted form of an execution report.
type ReportRecord struct {
	ID               uint   `gorm:"primaryKey"`
	ClientOrderID    string `gorm:"index"`
	ExchangeOrderID  string
	Status           string
	ExecutedQuantity string
	AvgPrice         string
	UpdatedAt        time.Time
}

// RunRecord is the persisted form of one trading run summary.
type RunRecord struct {
	ID               uint `gorm:"primaryKey"`
	StartTime        time.Time
	EndTime          time.Time
	EventsProcessed  uint64
	AvgLatencyMicros uint64
	MaxLatencyMicros uint64
	OrdersSent       uint64
	OrdersFilled     uint64
	OrdersCancelled  uint64
	PnL              float64
}
