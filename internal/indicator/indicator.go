// Package indicator derives technical indicators from OHLC candle series.
// Every function is pure: identical input produces bit-identical output,
// and short series degrade to neutral results instead of failing.
package indicator

import "github.com/quantive/confluence/internal/core"

// IndicatorSet is the per-timeframe indicator bundle. It is recomputed
// from the candle series on every request and carries no state.
type IndicatorSet struct {
	RSI               RSIResult       `json:"rsi"`
	MovingAverages    MAResult        `json:"moving_averages"`
	SupportResistance PivotLevels     `json:"support_resistance"`
	Volume            VolumeResult    `json:"volume"`
	MACD              MACDResult      `json:"macd"`
	ATR               float64         `json:"atr"`
	Bollinger         BollingerResult `json:"bollinger"`
	Fibonacci         FibonacciResult `json:"fibonacci"`
}

// Compute derives the full indicator set from a candle series ordered by
// date ascending. Series shorter than MinCandles yield a structurally
// complete neutral set; callers must check length before trusting levels.
func Compute(candles []core.Candle) IndicatorSet {
	if len(candles) < MinCandles {
		return Neutral()
	}

	closes := core.Closes(candles)
	volumes := make([]int64, len(candles))
	for i, c := range candles {
		volumes[i] = c.Volume
	}

	return IndicatorSet{
		RSI:               RSI(closes, rsiPeriod),
		MovingAverages:    MovingAverages(closes),
		SupportResistance: Pivots(candles),
		Volume:            VolumeRatio(volumes),
		MACD:              MACD(closes),
		ATR:               ATR(candles),
		Bollinger:         Bollinger(closes),
		Fibonacci:         Fibonacci(closes),
	}
}

// Neutral returns the degenerate indicator set used when a series is too
// short to compute anything meaningful.
func Neutral() IndicatorSet {
	return IndicatorSet{
		RSI:            RSIResult{Value: rsiNeutral, Zone: ZoneNeutral},
		MovingAverages: MAResult{Trend: core.BiasNeutral},
		Volume:         VolumeResult{Ratio: 1, Trend: VolumeNormal},
		MACD:           MACDResult{Trend: core.BiasNeutral},
		Bollinger:      BollingerResult{Position: PositionMiddle, PercentB: 0.5},
		Fibonacci:      FibonacciResult{Direction: FibFromHigh, Levels: []FibLevel{}},
	}
}
