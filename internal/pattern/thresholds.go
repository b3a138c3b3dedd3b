package pattern

// All detector thresholds live in one place so behavior stays reproducible
// and tunable without touching the detectors.
const (
	// Candlestick patterns are evaluated over the most recent candles.
	candlestickWindow = 5
	maxCandlestick    = 5

	dojiBodyMax      = 0.1 // body under 10% of range
	wickBodyRatio    = 2.0 // dominant wick at least twice the body
	oppositeWickMax  = 0.5 // opposite wick under half the body
	starBodyRatio    = 3.0 // first star candle dwarfs the middle
	starThirdRatio   = 2.0 // third star candle vs the middle
	marubozuBodyMin  = 0.9 // body over 90% of range
	engulfConfidence = 75.0
	starConfidence   = 80.0
	hammerConfidence = 70.0
	invHammerConf    = 65.0
	shootingConf     = 70.0
	dojiConfidence   = 55.0
	marubozuConf     = 65.0

	// Chart patterns.
	chartWindow        = 15
	bounceWindow       = 10
	extremeLookback    = 20
	poleCandles        = 7
	flagCandles        = 8
	poleMinMovePct     = 3.0
	flagPullbackMaxPct = 2.0
	flagDriftMaxPct    = 1.0
	flagBaseConf       = 75.0
	flagMaxConf        = 95.0
	flagConfPerPct     = 2.0
	triangleConf       = 75.0
	triangleFlatPct    = 2.0 // highs within 2% of the window extreme
	triangleFlatMin    = 3   // at least 3 touches
	triangleSlopePct   = 1.0 // second-half lows at least 1% above first-half
	bounceConf         = 65.0
	bounceProximityPct = 1.0 // last candle within 1% of the extreme

	// Trend classifier.
	trendLookback      = 20
	trendSlopePct      = 0.1  // %/period separating sideways from a trend
	trendStrengthScale = 10.0 // strength = |slope%| * scale, capped at 100
	consolidationPct   = 2.0  // max deviation from mean for consolidation

	// Breakout detection.
	breakoutPct  = 0.99 // close at or above 99% of the 20-candle high
	breakdownPct = 1.01 // close at or below 101% of the 20-candle low
)
