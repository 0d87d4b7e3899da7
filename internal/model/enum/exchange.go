package enum

// Exchange identifies the venue an event originated from.
type Exchange uint8

const (
	_exchange_beg Exchange = iota
	ExchangeBinance
	ExchangeCoinbase
	ExchangeKraken
	_exchange_end
)

func (e Exchange) IsAvailable() bool {
	return e > _exchange_beg && e < _exchange_end
}

func (e Exchange) String() string {
	switch e {
	case ExchangeBinance:
		return "binance"
	case ExchangeCoinbase:
		return "coinbase"
	case ExchangeKraken:
		return "kraken"
	default:
		return "unknown"
	}
}
