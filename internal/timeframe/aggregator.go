// Package timeframe runs the indicator calculator and pattern detector
// across daily, weekly and monthly candle series and scores how well the
// three trends align.
package timeframe

import (
	"sync"

	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/indicator"
	"github.com/quantive/confluence/internal/pattern"
)

// minCandles is the series length below which a timeframe degrades to a
// degenerate result instead of failing the whole analysis.
const minCandles = 5

// maxPatternNames caps the pattern-name list per timeframe.
const maxPatternNames = 5

// chartNameCap leaves room for the moving-average tag.
const chartNameCap = 4

// Series holds the candle history per timeframe.
type Series struct {
	Daily   []core.Candle
	Weekly  []core.Candle
	Monthly []core.Candle
}

// Result is the per-timeframe analysis outcome.
type Result struct {
	Timeframe  core.Timeframe         `json:"timeframe"`
	Patterns   []string               `json:"patterns"`
	Trend      pattern.TrendResult    `json:"trend"`
	Support    float64                `json:"support"`
	Resistance float64                `json:"resistance"`
	Indicators indicator.IndicatorSet `json:"indicators"`
	Chart      pattern.Analysis       `json:"chart"`
}

// Set bundles the three timeframe results with their alignment.
type Set struct {
	Daily     Result          `json:"daily"`
	Weekly    Result          `json:"weekly"`
	Monthly   Result          `json:"monthly"`
	Alignment AlignmentResult `json:"alignment"`
}

// Results returns the timeframe results in canonical order.
func (s Set) Results() []Result {
	return []Result{s.Daily, s.Weekly, s.Monthly}
}

// Analyze computes all three timeframes and their alignment. The three
// computations are independent and run concurrently; the merge order is
// fixed, so output is deterministic.
func Analyze(series Series) Set {
	var set Set
	var wg sync.WaitGroup

	run := func(tf core.Timeframe, candles []core.Candle, out *Result) {
		defer wg.Done()
		*out = analyzeOne(tf, candles)
	}

	wg.Add(3)
	go run(core.TimeframeDaily, series.Daily, &set.Daily)
	go run(core.TimeframeWeekly, series.Weekly, &set.Weekly)
	go run(core.TimeframeMonthly, series.Monthly, &set.Monthly)
	wg.Wait()

	set.Alignment = Align(set.Daily.Trend, set.Weekly.Trend, set.Monthly.Trend)
	return set
}

// analyzeOne computes a single timeframe. Short series yield a degenerate
// result with a neutral indicator set and no patterns.
func analyzeOne(tf core.Timeframe, candles []core.Candle) Result {
	if len(candles) < minCandles {
		return Result{
			Timeframe:  tf,
			Patterns:   []string{},
			Trend:      pattern.TrendResult{Direction: pattern.Sideways},
			Indicators: indicator.Neutral(),
		}
	}

	ind := indicator.Compute(candles)
	chart := pattern.Detect(candles)

	return Result{
		Timeframe:  tf,
		Patterns:   patternNames(chart, ind.MovingAverages.Trend),
		Trend:      chart.Trend,
		Support:    ind.SupportResistance.Support,
		Resistance: ind.SupportResistance.Resistance,
		Indicators: ind,
		Chart:      chart,
	}
}

// patternNames assembles the display list: primary chart pattern first,
// then secondaries, then the moving-average tag, capped at five.
func patternNames(chart pattern.Analysis, maTrend core.Bias) []string {
	names := make([]string, 0, maxPatternNames)

	if chart.Primary != nil {
		names = append(names, chart.Primary.Label())
	}
	for _, m := range chart.Secondary {
		if len(names) >= chartNameCap {
			break
		}
		names = append(names, m.Label())
	}

	switch maTrend {
	case core.BiasBullish:
		names = append(names, "Above MAs")
	case core.BiasBearish:
		names = append(names, "Below MAs")
	}

	if len(names) > maxPatternNames {
		names = names[:maxPatternNames]
	}
	return names
}
