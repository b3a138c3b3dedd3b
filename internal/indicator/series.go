package indicator

import "math"

// SMA calculates Simple Moving Average
// Returns slice of length: len(prices) - period + 1
func SMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period {
		return []float64{}
	}

	result := make([]float64, 0, len(prices)-period+1)

	// Calculate first SMA
	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	result = append(result, sum/float64(period))

	// Rolling calculation
	for i := period; i < len(prices); i++ {
		sum = sum - prices[i-period] + prices[i]
		result = append(result, sum/float64(period))
	}

	return result
}

// EMA calculates Exponential Moving Average
func EMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period {
		return []float64{}
	}

	result := make([]float64, 0, len(prices)-period+1)
	multiplier := 2.0 / float64(period+1)

	// Start with SMA as first EMA value
	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	ema := sum / float64(period)
	result = append(result, ema)

	// Calculate EMA for remaining prices
	for i := period; i < len(prices); i++ {
		ema = (prices[i]-ema)*multiplier + ema
		result = append(result, ema)
	}

	return result
}

// LastSMA returns the simple average of the trailing period. When fewer
// prices are available than the period it averages what is there, so short
// series still yield a usable level instead of zero.
func LastSMA(prices []float64, period int) float64 {
	if len(prices) == 0 || period <= 0 {
		return 0
	}
	if len(prices) < period {
		period = len(prices)
	}
	var sum float64
	for _, p := range prices[len(prices)-period:] {
		sum += p
	}
	return sum / float64(period)
}

// LastEMA returns the most recent EMA value, falling back to the trailing
// average when the series is shorter than the period.
func LastEMA(prices []float64, period int) float64 {
	ema := EMA(prices, period)
	if len(ema) == 0 {
		return LastSMA(prices, period)
	}
	return ema[len(ema)-1]
}

// StdDev returns the population standard deviation of the trailing period.
func StdDev(prices []float64, period int) float64 {
	if len(prices) == 0 || period <= 0 {
		return 0
	}
	if len(prices) < period {
		period = len(prices)
	}
	window := prices[len(prices)-period:]

	var sum float64
	for _, p := range window {
		sum += p
	}
	mean := sum / float64(period)

	var variance float64
	for _, p := range window {
		d := p - mean
		variance += d * d
	}
	variance /= float64(period)

	return math.Sqrt(variance)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
