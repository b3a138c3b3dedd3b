package indicator

import (
	"math"

	"github.com/quantive/confluence/internal/core"
)

// ATR computes the average true range over the trailing 14 periods using
// the standard true-range formula: max of high-low, |high-prevClose| and
// |low-prevClose|.
func ATR(candles []core.Candle) float64 {
	if len(candles) < 2 {
		return 0
	}

	period := atrPeriod
	if len(candles)-1 < period {
		period = len(candles) - 1
	}

	var sum float64
	for i := len(candles) - period; i < len(candles); i++ {
		sum += trueRange(candles[i], candles[i-1])
	}

	return sum / float64(period)
}

func trueRange(cur, prev core.Candle) float64 {
	tr := cur.High - cur.Low
	if hc := math.Abs(cur.High - prev.Close); hc > tr {
		tr = hc
	}
	if lc := math.Abs(cur.Low - prev.Close); lc > tr {
		tr = lc
	}
	return tr
}
