package indicator

// Zone classifies an oscillator reading.
type Zone string

const (
	ZoneOversold   Zone = "oversold"
	ZoneOverbought Zone = "overbought"
	ZoneNeutral    Zone = "neutral"
)

// RSIResult holds the relative strength index and its interpretation.
type RSIResult struct {
	Value float64 `json:"value"`
	Zone  Zone    `json:"zone"`
}

// RSI computes the Wilder-smoothed relative strength index over closing
// prices. Returns the neutral midpoint when fewer than period+1 closes are
// available.
func RSI(closes []float64, period int) RSIResult {
	if period <= 0 || len(closes) < period+1 {
		return RSIResult{Value: rsiNeutral, Zone: ZoneNeutral}
	}

	// Seed averages from the first period of deltas
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing over the rest of the series
	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	var value float64
	switch {
	case avgLoss == 0 && avgGain == 0:
		value = rsiNeutral
	case avgLoss == 0:
		value = 100
	default:
		rs := avgGain / avgLoss
		value = 100 - 100/(1+rs)
	}

	return RSIResult{Value: value, Zone: classifyRSI(value)}
}

func classifyRSI(value float64) Zone {
	switch {
	case value <= rsiOversold:
		return ZoneOversold
	case value >= rsiOverbought:
		return ZoneOverbought
	default:
		return ZoneNeutral
	}
}
