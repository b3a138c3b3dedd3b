package indicator

// Periods and interpretation thresholds for every indicator live here so
// behavior stays reproducible and tunable without touching the math.
const (
	// MinCandles is the minimum series length Compute needs before it
	// returns anything other than a neutral IndicatorSet.
	MinCandles = 5

	rsiPeriod     = 14
	rsiOversold   = 30.0
	rsiOverbought = 70.0
	rsiNeutral    = 50.0

	smaShortPeriod = 20
	smaMidPeriod   = 50
	smaLongPeriod  = 200
	emaFastPeriod  = 9
	emaSlowPeriod  = 21

	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9

	bollingerPeriod = 20
	bollingerWidth  = 2.0

	volumePeriod    = 20
	volumeHighRatio = 1.5
	volumeLowRatio  = 0.5

	atrPeriod = 14
)

// Fibonacci retracement ratios, shallowest first.
var fibRatios = []float64{0.236, 0.382, 0.5, 0.618, 0.786}
