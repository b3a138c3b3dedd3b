package timeframe

import (
	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/pattern"
)

// Alignment scoring constants.
const (
	alignedScore   = 100.0
	neutralScore   = 50.0
	mixedScoreStep = 15.0
)

// AlignmentResult scores how well the three timeframe trends agree.
// Never persisted: always recomputed from the timeframe trends.
type AlignmentResult struct {
	Label core.Bias `json:"label"`
	Score float64   `json:"score"`
}

// Align derives cross-timeframe alignment from the three trend directions.
// Uptrends count as bullish and downtrends as bearish; full agreement
// scores 100, full indecision 50, and mixed cases step 15 points per net
// aligned timeframe, which keeps the score inside [20, 80].
func Align(daily, weekly, monthly pattern.TrendResult) AlignmentResult {
	bullish, bearish := 0, 0
	for _, t := range []pattern.TrendResult{daily, weekly, monthly} {
		switch t.Direction {
		case pattern.Uptrend:
			bullish++
		case pattern.Downtrend:
			bearish++
		}
	}

	switch {
	case bullish == 3:
		return AlignmentResult{Label: core.BiasBullish, Score: alignedScore}
	case bearish == 3:
		return AlignmentResult{Label: core.BiasBearish, Score: alignedScore}
	case bullish == 0 && bearish == 0:
		return AlignmentResult{Label: core.BiasNeutral, Score: neutralScore}
	default:
		return AlignmentResult{
			Label: core.BiasMixed,
			Score: neutralScore + mixedScoreStep*float64(bullish-bearish),
		}
	}
}

// Bias resolves the alignment into a tradeable lean: mixed alignments
// lean with the majority, everything else keeps its label.
func (a AlignmentResult) Bias() core.Bias {
	if a.Label != core.BiasMixed {
		return a.Label
	}
	switch {
	case a.Score > neutralScore:
		return core.BiasBullish
	case a.Score < neutralScore:
		return core.BiasBearish
	default:
		return core.BiasNeutral
	}
}
