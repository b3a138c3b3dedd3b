// Package conflict reconciles the technical bias against the fundamental
// picture and emits a bounded confidence adjustment.
package conflict

import (
	"fmt"

	"github.com/quantive/confluence/internal/core"
)

// Type identifies the kind of technical/fundamental disagreement.
type Type string

const (
	None               Type = "NONE"
	OvervaluedBullish  Type = "OVERVALUED_BULLISH"
	WeakGrowthBullish  Type = "WEAK_GROWTH_BULLISH"
	UndervaluedBearish Type = "UNDERVALUED_BEARISH"
)

// Adjustment and threshold constants.
const (
	overvaluedPE = 30.0

	overvaluedBullishAdj  = -15.0
	weakGrowthBullishAdj  = -10.0
	undervaluedBullishAdj = 15.0
	undervaluedBearishAdj = -10.0
	overvaluedBearishAdj  = 10.0

	adjustmentMin = -30.0
	adjustmentMax = 30.0
)

// Result is the outcome of conflict detection.
type Result struct {
	HasConflict          bool      `json:"has_conflict"`
	TechnicalBias        core.Bias `json:"technical_bias"`
	FundamentalVerdict   string    `json:"fundamental_verdict"`
	Type                 Type      `json:"conflict_type"`
	ConfidenceAdjustment float64   `json:"confidence_adjustment"`
	Recommendation       string    `json:"recommendation"`
	Details              string    `json:"details,omitempty"`
}

var recommendations = map[Type]string{
	None:               "Technical and fundamental signals agree; no adjustment needed.",
	OvervaluedBullish:  "Bullish technicals against a rich valuation: size down and take profits early.",
	WeakGrowthBullish:  "Bullish technicals without growth behind them: treat rallies as short-lived.",
	UndervaluedBearish: "Bearish technicals on an undervalued grower: a value trap or an early bottom; wait for confirmation.",
}

// Detect reconciles the technical bias with the fundamental summary. The
// rules run top to bottom and later checks within a branch may override
// the adjustment set by earlier ones. In particular, the bullish +
// undervalued rule replaces any prior weak-growth penalty outright; that
// last-write-wins precedence is long-standing observed behavior and is
// pinned by tests rather than "fixed".
func Detect(bias core.Bias, f core.Fundamentals) Result {
	r := Result{
		TechnicalBias:      bias,
		FundamentalVerdict: verdict(f),
		Type:               None,
	}

	switch bias {
	case core.BiasBullish:
		if f.Valuation == core.ValuationOvervalued && f.PERatio > overvaluedPE {
			r.Type = OvervaluedBullish
			r.ConfidenceAdjustment = overvaluedBullishAdj
			r.Details = fmt.Sprintf("Price momentum is bullish but P/E %.1f exceeds %.0f", f.PERatio, overvaluedPE)
		}
		if f.Growth == core.GrowthWeak {
			r.Type = WeakGrowthBullish
			// Most negative wins between the two penalties
			if weakGrowthBullishAdj < r.ConfidenceAdjustment {
				r.ConfidenceAdjustment = weakGrowthBullishAdj
			}
			r.Details = "Price momentum is bullish but earnings growth is weak"
		}
		if f.Valuation == core.ValuationUndervalued {
			r.ConfidenceAdjustment = undervaluedBullishAdj
		}

	case core.BiasBearish:
		if f.Valuation == core.ValuationUndervalued && f.Growth == core.GrowthStrong {
			r.Type = UndervaluedBearish
			r.ConfidenceAdjustment = undervaluedBearishAdj
			r.Details = "Price momentum is bearish but the company is cheap and growing"
		}
		if f.Valuation == core.ValuationOvervalued {
			r.ConfidenceAdjustment = overvaluedBearishAdj
		}
	}

	if r.ConfidenceAdjustment < adjustmentMin {
		r.ConfidenceAdjustment = adjustmentMin
	}
	if r.ConfidenceAdjustment > adjustmentMax {
		r.ConfidenceAdjustment = adjustmentMax
	}

	r.HasConflict = r.Type != None
	r.Recommendation = recommendations[r.Type]
	return r
}

func verdict(f core.Fundamentals) string {
	return fmt.Sprintf("%s valuation, %s growth", f.Valuation, f.Growth)
}
