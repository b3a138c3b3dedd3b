package indicator

import "github.com/quantive/confluence/internal/core"

// MAResult bundles the moving averages used across the engine.
type MAResult struct {
	SMA20  float64   `json:"sma20"`
	SMA50  float64   `json:"sma50"`
	SMA200 float64   `json:"sma200"`
	EMA9   float64   `json:"ema9"`
	EMA21  float64   `json:"ema21"`
	Trend  core.Bias `json:"trend"`
}

// MovingAverages computes the standard SMA/EMA bundle. Trend is bullish
// when price sits above both short EMAs, bearish when below both.
func MovingAverages(closes []float64) MAResult {
	if len(closes) == 0 {
		return MAResult{Trend: core.BiasNeutral}
	}

	r := MAResult{
		SMA20:  LastSMA(closes, smaShortPeriod),
		SMA50:  LastSMA(closes, smaMidPeriod),
		SMA200: LastSMA(closes, smaLongPeriod),
		EMA9:   LastEMA(closes, emaFastPeriod),
		EMA21:  LastEMA(closes, emaSlowPeriod),
	}

	price := closes[len(closes)-1]
	switch {
	case price > r.EMA9 && price > r.EMA21:
		r.Trend = core.BiasBullish
	case price < r.EMA9 && price < r.EMA21:
		r.Trend = core.BiasBearish
	default:
		r.Trend = core.BiasNeutral
	}

	return r
}
