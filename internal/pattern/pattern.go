// Package pattern detects candlestick and chart patterns in candle series
// and classifies the prevailing trend. Detection is pure: detectors never
// mutate their input and identical series yield identical matches.
package pattern

import "fmt"

// Kind identifies a known pattern. Downstream components match on Kind
// rather than display strings.
type Kind string

const (
	KindDoji             Kind = "doji"
	KindHammer           Kind = "hammer"
	KindInvertedHammer   Kind = "inverted_hammer"
	KindShootingStar     Kind = "shooting_star"
	KindBullishEngulfing Kind = "bullish_engulfing"
	KindBearishEngulfing Kind = "bearish_engulfing"
	KindMorningStar      Kind = "morning_star"
	KindEveningStar      Kind = "evening_star"
	KindBullishMarubozu  Kind = "bullish_marubozu"
	KindBearishMarubozu  Kind = "bearish_marubozu"

	KindBullishFlag         Kind = "bullish_flag"
	KindBearishFlag         Kind = "bearish_flag"
	KindAscendingTriangle   Kind = "ascending_triangle"
	KindDescendingTriangle  Kind = "descending_triangle"
	KindSupportBounce       Kind = "support_bounce"
	KindResistanceRejection Kind = "resistance_rejection"
)

var kindNames = map[Kind]string{
	KindDoji:                "Doji",
	KindHammer:              "Hammer",
	KindInvertedHammer:      "Inverted Hammer",
	KindShootingStar:        "Shooting Star",
	KindBullishEngulfing:    "Bullish Engulfing",
	KindBearishEngulfing:    "Bearish Engulfing",
	KindMorningStar:         "Morning Star",
	KindEveningStar:         "Evening Star",
	KindBullishMarubozu:     "Bullish Marubozu",
	KindBearishMarubozu:     "Bearish Marubozu",
	KindBullishFlag:         "Bullish Flag",
	KindBearishFlag:         "Bearish Flag",
	KindAscendingTriangle:   "Ascending Triangle",
	KindDescendingTriangle:  "Descending Triangle",
	KindSupportBounce:       "Support Bounce",
	KindResistanceRejection: "Resistance Rejection",
}

// DisplayName returns the human-readable pattern name.
func (k Kind) DisplayName() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return string(k)
}

// Polarity is the directional reading of a pattern.
type Polarity string

const (
	Bullish Polarity = "bullish"
	Bearish Polarity = "bearish"
	Neutral Polarity = "neutral"
)

// Match is one detected pattern occurrence.
type Match struct {
	Kind        Kind     `json:"kind"`
	Polarity    Polarity `json:"polarity"`
	Confidence  float64  `json:"confidence"`
	Description string   `json:"description"`
	TargetPrice float64  `json:"target_price,omitempty"`
	StopLoss    float64  `json:"stop_loss,omitempty"`
	Index       int      `json:"index,omitempty"`
}

// Label renders the match in "<name> (<polarity>)" form.
func (m Match) Label() string {
	return fmt.Sprintf("%s (%s)", m.Kind.DisplayName(), m.Polarity)
}
