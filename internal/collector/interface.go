// Package collector defines the market-data source plugin interface and
// its registry. Collectors fetch candle history per timeframe; the engine
// itself never performs I/O.
package collector

import (
	"context"

	"github.com/quantive/confluence/internal/core"
)

// Config holds collector configuration.
type Config struct {
	Enabled bool
	APIKey  string
	Extra   map[string]any
}

// Lookback is the number of candles requested per timeframe. Roughly one
// year of daily bars, two of weekly, five of monthly.
var Lookback = map[core.Timeframe]int{
	core.TimeframeDaily:   250,
	core.TimeframeWeekly:  104,
	core.TimeframeMonthly: 60,
}

// Collector fetches market data from one upstream source.
type Collector interface {
	Name() string
	Init(cfg Config) error

	FetchQuote(ctx context.Context, symbol string) (*core.Quote, error)
	FetchCandles(ctx context.Context, symbol string, tf core.Timeframe, limit int) ([]core.Candle, error)
}

// FundamentalsCollector is implemented by collectors that can also fetch
// company fundamentals.
type FundamentalsCollector interface {
	Collector
	FetchFundamentals(ctx context.Context, symbol string) (*core.Fundamentals, error)
}
