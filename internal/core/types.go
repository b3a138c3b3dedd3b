package core

import "time"

// Timeframe identifies the sampling interval of a candle series.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

// Timeframes lists all supported timeframes in aggregation order.
var Timeframes = []Timeframe{TimeframeDaily, TimeframeWeekly, TimeframeMonthly}

// Bias represents a directional lean.
type Bias string

const (
	BiasBullish Bias = "bullish"
	BiasBearish Bias = "bearish"
	BiasNeutral Bias = "neutral"
	BiasMixed   Bias = "mixed"
)

// Recommendation is the final trade recommendation.
type Recommendation string

const (
	RecommendBuy  Recommendation = "BUY"
	RecommendSell Recommendation = "SELL"
	RecommendHold Recommendation = "HOLD"
	RecommendWait Recommendation = "WAIT"
)

// Candle is one period's open/high/low/close/volume bar.
// Series are ordered by date ascending and treated as immutable.
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Body returns the absolute size of the candle body.
func (c Candle) Body() float64 {
	if c.Close >= c.Open {
		return c.Close - c.Open
	}
	return c.Open - c.Close
}

// Range returns the full high-low range.
func (c Candle) Range() float64 {
	return c.High - c.Low
}

// UpperWick returns the distance from the body top to the high.
func (c Candle) UpperWick() float64 {
	if c.Close >= c.Open {
		return c.High - c.Close
	}
	return c.High - c.Open
}

// LowerWick returns the distance from the body bottom to the low.
func (c Candle) LowerWick() float64 {
	if c.Close >= c.Open {
		return c.Open - c.Low
	}
	return c.Close - c.Low
}

// IsBullish reports whether the candle closed above its open.
func (c Candle) IsBullish() bool {
	return c.Close > c.Open
}

// IsBearish reports whether the candle closed below its open.
func (c Candle) IsBearish() bool {
	return c.Close < c.Open
}

// Closes extracts the closing prices of a series.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// Valuation labels how the market prices a company against its worth.
type Valuation string

const (
	ValuationUndervalued Valuation = "undervalued"
	ValuationFair        Valuation = "fair"
	ValuationOvervalued  Valuation = "overvalued"
)

// Growth labels a company's growth profile.
type Growth string

const (
	GrowthWeak     Growth = "weak"
	GrowthModerate Growth = "moderate"
	GrowthStrong   Growth = "strong"
)

// Fundamentals is the externally supplied fundamental summary consumed by
// the conflict detector and confidence scorer.
type Fundamentals struct {
	Valuation Valuation `json:"valuation"`
	Growth    Growth    `json:"growth"`
	PERatio   float64   `json:"pe_ratio"`
	EPSGrowth float64   `json:"eps_growth"`
	Summary   string    `json:"summary,omitempty"`
}

// NewsSummary is the externally supplied news sentiment summary.
type NewsSummary struct {
	Sentiment Bias     `json:"sentiment"`
	Score     float64  `json:"score"`
	Headlines []string `json:"headlines,omitempty"`
}

// Quote represents a real-time price quote.
type Quote struct {
	Symbol string
	Price  float64
	Volume int64
	Time   time.Time
	Source string
}

// IsValid checks if the quote has required fields.
func (q Quote) IsValid() bool {
	return q.Symbol != "" && q.Price > 0
}
