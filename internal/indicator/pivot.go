package indicator

import "github.com/quantive/confluence/internal/core"

// PivotLevels holds classic pivot-point support/resistance levels derived
// from the most recent completed period.
type PivotLevels struct {
	Pivot      float64 `json:"pivot"`
	R1         float64 `json:"r1"`
	R2         float64 `json:"r2"`
	S1         float64 `json:"s1"`
	S2         float64 `json:"s2"`
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
}

// Pivots computes the classic pivot-point formula from the last candle's
// high/low/close. Support and Resistance expose S1/R1 for convenience.
func Pivots(candles []core.Candle) PivotLevels {
	if len(candles) == 0 {
		return PivotLevels{}
	}

	last := candles[len(candles)-1]
	pivot := (last.High + last.Low + last.Close) / 3

	levels := PivotLevels{
		Pivot: pivot,
		R1:    2*pivot - last.Low,
		S1:    2*pivot - last.High,
		R2:    pivot + (last.High - last.Low),
		S2:    pivot - (last.High - last.Low),
	}
	levels.Support = levels.S1
	levels.Resistance = levels.R1

	return levels
}
