// Package confidence combines pattern, news, alignment, volume and
// fundamental signals into a single 0-100 score with a transparent
// breakdown and a threshold-based recommendation.
package confidence

import (
	"fmt"

	"github.com/quantive/confluence/internal/core"
)

// Fixed weights, summing to 100% nominal weight.
const (
	weightPattern      = 0.25
	weightNews         = 0.20
	weightAlignment    = 0.25
	weightVolume       = 0.15
	weightFundamentals = 0.15
)

// Sub-score defaults and mappings.
const (
	defaultPatternScore = 50.0

	volumeHighRatio = 1.5
	volumeLowRatio  = 0.5
	volumeHighScore = 80.0
	volumeMidScore  = 55.0
	volumeLowScore  = 30.0

	buyThreshold  = 70.0
	waitThreshold = 40.0

	factorNotable = 65.0
	factorWeak    = 35.0
)

// Inputs are the raw signals feeding the scorer.
type Inputs struct {
	// PatternConfidence is the primary pattern's confidence; nil when no
	// pattern was detected (scored at the 50-point default).
	PatternConfidence *float64
	// NewsScore is the external news sentiment score, 0-100.
	NewsScore float64
	// AlignmentScore is the cross-timeframe alignment score.
	AlignmentScore float64
	// VolumeRatio is current volume over its rolling average.
	VolumeRatio float64
	// FundamentalScore is the external fundamental strength score, 0-100.
	FundamentalScore float64
	// Bias is the technical lean used to pick BUY vs SELL.
	Bias core.Bias
}

// Breakdown exposes the five weighted sub-scores.
type Breakdown struct {
	PatternStrength     float64 `json:"pattern_strength"`
	NewsSentiment       float64 `json:"news_sentiment"`
	TechnicalAlignment  float64 `json:"technical_alignment"`
	VolumeConfirmation  float64 `json:"volume_confirmation"`
	FundamentalStrength float64 `json:"fundamental_strength"`
}

// Result is the scored outcome.
type Result struct {
	Score          float64             `json:"score"`
	Breakdown      Breakdown           `json:"breakdown"`
	Factors        []string            `json:"factors"`
	Recommendation core.Recommendation `json:"recommendation"`
}

// Score combines the inputs into one confidence score. The result is
// always clamped to [0, 100] regardless of input extremes.
func Score(in Inputs) Result {
	b := Breakdown{
		PatternStrength:     defaultPatternScore,
		NewsSentiment:       clamp(in.NewsScore),
		TechnicalAlignment:  clamp(in.AlignmentScore),
		VolumeConfirmation:  volumeScore(in.VolumeRatio),
		FundamentalStrength: clamp(in.FundamentalScore),
	}
	if in.PatternConfidence != nil {
		b.PatternStrength = clamp(*in.PatternConfidence)
	}

	raw := b.PatternStrength*weightPattern +
		b.NewsSentiment*weightNews +
		b.TechnicalAlignment*weightAlignment +
		b.VolumeConfirmation*weightVolume +
		b.FundamentalStrength*weightFundamentals

	score := clamp(raw)

	return Result{
		Score:          score,
		Breakdown:      b,
		Factors:        factors(b),
		Recommendation: recommend(score, in.Bias),
	}
}

// Adjusted returns a copy of the result with delta applied to the score,
// re-clamped and with the recommendation re-derived for the given bias.
// Used to fold in the conflict detector's confidence adjustment.
func (r Result) Adjusted(delta float64, bias core.Bias) Result {
	r.Score = clamp(r.Score + delta)
	r.Recommendation = recommend(r.Score, bias)
	return r
}

// recommend maps the score and technical lean onto a trade recommendation.
func recommend(score float64, bias core.Bias) core.Recommendation {
	switch {
	case score >= buyThreshold && bias == core.BiasBullish:
		return core.RecommendBuy
	case score >= buyThreshold && bias == core.BiasBearish:
		return core.RecommendSell
	case score >= waitThreshold:
		return core.RecommendHold
	default:
		return core.RecommendWait
	}
}

// volumeScore maps the volume ratio onto a 0-100 confirmation score.
func volumeScore(ratio float64) float64 {
	switch {
	case ratio >= volumeHighRatio:
		return volumeHighScore
	case ratio <= volumeLowRatio:
		return volumeLowScore
	default:
		return volumeMidScore
	}
}

// factors renders one sentence per non-trivial sub-score, in breakdown
// order, for the user-facing rationale.
func factors(b Breakdown) []string {
	var out []string

	add := func(score float64, strong, weak string) {
		switch {
		case score >= factorNotable:
			out = append(out, fmt.Sprintf("%s (%.0f/100)", strong, score))
		case score <= factorWeak:
			out = append(out, fmt.Sprintf("%s (%.0f/100)", weak, score))
		}
	}

	add(b.PatternStrength,
		"Strong chart pattern supporting the setup",
		"Weak or absent chart pattern")
	add(b.NewsSentiment,
		"News sentiment favors the move",
		"News sentiment runs against the move")
	add(b.TechnicalAlignment,
		"Timeframes are aligned",
		"Timeframes disagree")
	add(b.VolumeConfirmation,
		"Volume confirms the move",
		"Volume is drying up")
	add(b.FundamentalStrength,
		"Fundamentals support the position",
		"Fundamentals argue against the position")

	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
