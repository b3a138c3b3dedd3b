package confidence

import "github.com/quantive/confluence/internal/core"

// Fundamental strength mapping.
const (
	fundamentalBase   = 50.0
	valuationWeight   = 20.0
	growthWeight      = 20.0
	fundamentalsUnset = 50.0
)

// ScoreFundamentals maps the valuation and growth labels onto a 0-100
// strength score. A nil summary scores at the neutral midpoint.
func ScoreFundamentals(f *core.Fundamentals) float64 {
	if f == nil {
		return fundamentalsUnset
	}

	score := fundamentalBase
	switch f.Valuation {
	case core.ValuationUndervalued:
		score += valuationWeight
	case core.ValuationOvervalued:
		score -= valuationWeight
	}
	switch f.Growth {
	case core.GrowthStrong:
		score += growthWeight
	case core.GrowthWeak:
		score -= growthWeight
	}

	return clamp(score)
}
