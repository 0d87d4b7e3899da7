package ops

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/model/enum"
)

func TestConfigRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Instruments = []InstrumentConfig{
		{
			Instrument:      model.InstrumentID{Base: "BTC", Quote: "USDT", ExchangeSymbol: "BTCUSDT"},
			Enabled:         true,
			BaseCurrency:    "BTC",
			QuoteCurrency:   "USDT",
			MinOrderSize:    decimal.RequireFromString("0.0001"),
			TickSize:        decimal.RequireFromString("0.01"),
			MaxPositionSize: decimal.NewFromInt(5),
		},
		{
			Instrument: model.InstrumentID{Base: "ETH", Quote: "USDT", ExchangeSymbol: "ETHUSDT"},
			Enabled:    false,
		},
	}

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Execution, loaded.Execution)
	assert.Equal(t, cfg.Data, loaded.Data)
	assert.Equal(t, cfg.RiskLimits.MaxOrdersPerSecond, loaded.RiskLimits.MaxOrdersPerSecond)
	assert.True(t, cfg.RiskLimits.MaxOrderSize.Equal(loaded.RiskLimits.MaxOrderSize))
	require.Len(t, loaded.Instruments, 2)
	assert.Equal(t, cfg.Instruments[0].Instrument, loaded.Instruments[0].Instrument)
	assert.True(t, cfg.Instruments[0].TickSize.Equal(loaded.Instruments[0].TickSize))
}

func TestConfigLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, enum.OrderTypeLimit, cfg.Execution.DefaultOrderType)
	assert.Equal(t, "GTC", cfg.Execution.DefaultTimeInForce)
	assert.True(t, cfg.Data.EnableMarketData)
	assert.Equal(t, []string{"trades", "orderbook_l1"}, cfg.Data.MarketDataTypes)
	assert.Equal(t, 100, cfg.RiskLimits.MaxOrdersPerSecond)
}

func TestEnabledInstruments(t *testing.T) {
	cfg := Default()
	cfg.Instruments = []InstrumentConfig{
		{Instrument: model.InstrumentID{ExchangeSymbol: "A"}, Enabled: true},
		{Instrument: model.InstrumentID{ExchangeSymbol: "B"}},
		{Instrument: model.InstrumentID{ExchangeSymbol: "C"}, Enabled: true},
	}

	enabled := cfg.EnabledInstruments()
	require.Len(t, enabled, 2)
	assert.Equal(t, "A", enabled[0].ExchangeSymbol)
	assert.Equal(t, "C", enabled[1].ExchangeSymbol)
}
