package ops

import (
	"encoding/json"
	"os"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/risk"
)

// SystemConfig mirrors the JSON config layout. It is loaded and saved
// verbatim; the pipeline does not validate cross-field consistency.
type SystemConfig struct {
	RiskLimits  risk.Limits        `json:"risk_limits"`
	Instruments []InstrumentConfig `json:"instruments"`
	Execution   ExecutionConfig    `json:"execution"`
	Data        DataConfig         `json:"data"`
}

// InstrumentConfig describes one tradable instrument entry.
type InstrumentConfig struct {
	Instrument      model.InstrumentID `json:"instrument"`
	Enabled         bool               `json:"enabled"`
	BaseCurrency    string             `json:"base_currency"`
	QuoteCurrency   string             `json:"quote_currency"`
	MinOrderSize    decimal.Decimal    `json:"min_order_size"`
	TickSize        decimal.Decimal    `json:"tick_size"`
	MaxPositionSize decimal.Decimal    `json:"max_position_size"`
}

// ExecutionConfig holds order submission defaults.
type ExecutionConfig struct {
	DefaultOrderType          enum.OrderType `json:"default_order_type"`
	DefaultTimeInForce        string         `json:"default_time_in_force"`
	EnableOrderAggregation    bool           `json:"enable_order_aggregation"`
	OrderAggregationTimeoutMS uint64         `json:"order_aggregation_timeout_ms"`
}

// DataConfig holds market data feed defaults.
type DataConfig struct {
	EnableMarketData     bool     `json:"enable_market_data"`
	MarketDataTypes      []string `json:"market_data_types"`
	UpdateFrequencyMS    uint64   `json:"update_frequency_ms"`
	EnableHistoricalData bool     `json:"enable_historical_data"`
}

// Default returns the baseline system configuration.
func Default() SystemConfig {
	return SystemConfig{
		RiskLimits: risk.DefaultLimits(),
		Execution: ExecutionConfig{
			DefaultOrderType:          enum.OrderTypeLimit,
			DefaultTimeInForce:        "GTC",
			EnableOrderAggregation:    true,
			OrderAggregationTimeoutMS: 10,
		},
		Data: DataConfig{
			EnableMarketData:  true,
			MarketDataTypes:   []string{"trades", "orderbook_l1"},
			UpdateFrequencyMS: 100,
		},
	}
}

// Load reads a JSON config file.
func Load(path string) (SystemConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SystemConfig{}, errors.Wrap(err, "read config")
	}

	var cfg SystemConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return SystemConfig{}, errors.Wrap(err, "unmarshal config")
	}
	return cfg, nil
}

// Save writes a JSON config file.
func Save(cfg SystemConfig, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}

// EnabledInstruments filters the configured instruments down to the ones
// enabled for trading.
func (c SystemConfig) EnabledInstruments() []model.InstrumentID {
	instruments := make([]model.InstrumentID, 0, len(c.Instruments))
	for _, entry := range c.Instruments {
		if entry.Enabled {
			instruments = append(instruments, entry.Instrument)
		}
	}
	return instruments
}
