package pattern

import (
	"math"

	"github.com/quantive/confluence/internal/core"
)

// Direction classifies the prevailing trend.
type Direction string

const (
	Uptrend   Direction = "uptrend"
	Downtrend Direction = "downtrend"
	Sideways  Direction = "sideways"
)

// Bias maps the trend direction onto a directional lean.
func (d Direction) Bias() core.Bias {
	switch d {
	case Uptrend:
		return core.BiasBullish
	case Downtrend:
		return core.BiasBearish
	default:
		return core.BiasNeutral
	}
}

// TrendResult is the trend classification for one series.
type TrendResult struct {
	Direction     Direction `json:"direction"`
	Strength      float64   `json:"strength"`
	Consolidating bool      `json:"consolidating"`
}

// ClassifyTrend fits a least-squares line through the most recent 20
// closes and reads direction and strength off the slope, normalized as a
// percentage of the mean price per period.
func ClassifyTrend(candles []core.Candle) TrendResult {
	if len(candles) < 2 {
		return TrendResult{Direction: Sideways}
	}

	start := len(candles) - trendLookback
	if start < 0 {
		start = 0
	}
	closes := core.Closes(candles[start:])
	n := float64(len(closes))

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range closes {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	mean := sumY / n
	denom := n*sumXX - sumX*sumX
	if mean == 0 || denom == 0 {
		return TrendResult{Direction: Sideways}
	}

	slope := (n*sumXY - sumX*sumY) / denom
	slopePct := slope / mean * 100

	r := TrendResult{Direction: Sideways}
	switch {
	case slopePct > trendSlopePct:
		r.Direction = Uptrend
	case slopePct < -trendSlopePct:
		r.Direction = Downtrend
	}

	r.Strength = math.Round(math.Min(math.Abs(slopePct)*trendStrengthScale, 100))

	maxDev := 0.0
	for _, y := range closes {
		if dev := math.Abs(y-mean) / mean * 100; dev > maxDev {
			maxDev = dev
		}
	}
	r.Consolidating = maxDev < consolidationPct

	return r
}

// AtBreakout reports whether the latest close sits at or above 99% of the
// 20-candle high. Requires a full lookback window.
func AtBreakout(candles []core.Candle) bool {
	if len(candles) < extremeLookback {
		return false
	}
	window := candles[len(candles)-extremeLookback:]
	maxHigh := window[0].High
	for _, c := range window {
		if c.High > maxHigh {
			maxHigh = c.High
		}
	}
	return window[len(window)-1].Close >= maxHigh*breakoutPct
}

// AtBreakdown reports whether the latest close sits at or below 101% of
// the 20-candle low. Requires a full lookback window.
func AtBreakdown(candles []core.Candle) bool {
	if len(candles) < extremeLookback {
		return false
	}
	window := candles[len(candles)-extremeLookback:]
	minLow := window[0].Low
	for _, c := range window {
		if c.Low < minLow {
			minLow = c.Low
		}
	}
	return window[len(window)-1].Close <= minLow*breakdownPct
}

// Analysis bundles chart-pattern detection with the trend classifier.
type Analysis struct {
	Primary     *Match      `json:"primary,omitempty"`
	Secondary   []Match     `json:"secondary,omitempty"`
	Trend       TrendResult `json:"trend"`
	AtBreakout  bool        `json:"at_breakout"`
	AtBreakdown bool        `json:"at_breakdown"`
}

// Detect runs all chart detectors and the trend classifier over the
// series. The highest-confidence match becomes Primary, the rest Secondary.
func Detect(candles []core.Candle) Analysis {
	a := Analysis{
		Trend:       ClassifyTrend(candles),
		AtBreakout:  AtBreakout(candles),
		AtBreakdown: AtBreakdown(candles),
	}

	matches := DetectChart(candles)
	if len(matches) > 0 {
		a.Primary = &matches[0]
		a.Secondary = matches[1:]
	}

	return a
}
