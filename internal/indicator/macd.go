package indicator

import "github.com/quantive/confluence/internal/core"

// MACDResult holds the MACD line, signal line and histogram.
type MACDResult struct {
	Line      float64   `json:"line"`
	Signal    float64   `json:"signal"`
	Histogram float64   `json:"histogram"`
	Trend     core.Bias `json:"trend"`
}

// MACD computes the 12/26/9 moving average convergence divergence. Trend
// follows the histogram sign. Series shorter than the slow period yield a
// zeroed neutral result.
func MACD(closes []float64) MACDResult {
	if len(closes) < macdSlowPeriod {
		return MACDResult{Trend: core.BiasNeutral}
	}

	fast := EMA(closes, macdFastPeriod)
	slow := EMA(closes, macdSlowPeriod)

	// Align the fast EMA to the slow EMA's window
	offset := len(fast) - len(slow)
	line := make([]float64, len(slow))
	for i := range slow {
		line[i] = fast[i+offset] - slow[i]
	}

	r := MACDResult{Line: line[len(line)-1], Trend: core.BiasNeutral}

	signal := EMA(line, macdSignalPeriod)
	if len(signal) > 0 {
		r.Signal = signal[len(signal)-1]
	}
	r.Histogram = r.Line - r.Signal

	switch {
	case r.Histogram > 0:
		r.Trend = core.BiasBullish
	case r.Histogram < 0:
		r.Trend = core.BiasBearish
	}

	return r
}
