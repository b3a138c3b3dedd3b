package collector

import (
	"context"

	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/timeframe"
)

// FetchSeries pulls all three timeframes from one collector. A failed or
// empty timeframe is left empty rather than failing the whole fetch; the
// engine degrades per timeframe. An error is returned only when the daily
// series, which every downstream component keys off, cannot be fetched.
func FetchSeries(ctx context.Context, c Collector, symbol string) (timeframe.Series, error) {
	var series timeframe.Series

	daily, err := c.FetchCandles(ctx, symbol, core.TimeframeDaily, Lookback[core.TimeframeDaily])
	if err != nil {
		return series, core.WrapError(core.ErrCollectorFailed, err)
	}
	series.Daily = daily

	if weekly, err := c.FetchCandles(ctx, symbol, core.TimeframeWeekly, Lookback[core.TimeframeWeekly]); err == nil {
		series.Weekly = weekly
	}
	if monthly, err := c.FetchCandles(ctx, symbol, core.TimeframeMonthly, Lookback[core.TimeframeMonthly]); err == nil {
		series.Monthly = monthly
	}

	return series, nil
}
