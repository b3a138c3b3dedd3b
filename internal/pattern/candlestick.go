package pattern

import (
	"fmt"

	"github.com/quantive/confluence/internal/core"
)

// DetectCandlesticks scans the most recent candles for candlestick
// patterns. Multiple patterns may fire on the same candle; results are
// deduplicated by kind, ordered newest-first and capped at five. Single
// candle checks run before multi-candle checks at each index, so they win
// detection-order ties.
func DetectCandlesticks(candles []core.Candle) []Match {
	if len(candles) == 0 {
		return nil
	}

	start := len(candles) - candlestickWindow
	if start < 0 {
		start = 0
	}

	var matches []Match
	seen := make(map[Kind]bool)

	add := func(m *Match) {
		if m == nil || seen[m.Kind] {
			return
		}
		seen[m.Kind] = true
		matches = append(matches, *m)
	}

	for i := len(candles) - 1; i >= start; i-- {
		add(detectDoji(candles, i))
		add(detectHammer(candles, i))
		add(detectUpperWickReversal(candles, i))
		add(detectMarubozu(candles, i))
		add(detectEngulfing(candles, i))
		add(detectStar(candles, i))

		if len(matches) >= maxCandlestick {
			matches = matches[:maxCandlestick]
			break
		}
	}

	if len(matches) > maxCandlestick {
		matches = matches[:maxCandlestick]
	}
	return matches
}

// detectDoji fires when the body is under 10% of a non-zero range.
func detectDoji(candles []core.Candle, i int) *Match {
	c := candles[i]
	if c.Range() <= 0 || c.Body() >= c.Range()*dojiBodyMax {
		return nil
	}
	return &Match{
		Kind:        KindDoji,
		Polarity:    Neutral,
		Confidence:  dojiConfidence,
		Description: "Open and close nearly equal, signaling indecision",
		Index:       i,
	}
}

// detectHammer fires on a dominant lower wick with a small upper wick.
func detectHammer(candles []core.Candle, i int) *Match {
	c := candles[i]
	body := c.Body()
	if body <= 0 {
		return nil
	}
	if c.LowerWick() <= body*wickBodyRatio || c.UpperWick() >= body*oppositeWickMax {
		return nil
	}
	return &Match{
		Kind:        KindHammer,
		Polarity:    Bullish,
		Confidence:  hammerConfidence,
		Description: "Long lower wick rejecting lower prices",
		Index:       i,
	}
}

// detectUpperWickReversal covers the inverted hammer / shooting star pair.
// The label depends on whether the prior close was higher: after a higher
// close the long upper wick reads as a bearish shooting star, otherwise as
// a bullish inverted hammer.
func detectUpperWickReversal(candles []core.Candle, i int) *Match {
	c := candles[i]
	body := c.Body()
	if c.UpperWick() <= body*wickBodyRatio || c.LowerWick() >= body*oppositeWickMax {
		return nil
	}
	if body <= 0 {
		return nil
	}

	if i > 0 && candles[i-1].Close > c.Close {
		return &Match{
			Kind:        KindShootingStar,
			Polarity:    Bearish,
			Confidence:  shootingConf,
			Description: "Long upper wick after a higher close, rejecting the advance",
			Index:       i,
		}
	}
	return &Match{
		Kind:        KindInvertedHammer,
		Polarity:    Bullish,
		Confidence:  invHammerConf,
		Description: "Long upper wick probing higher after weakness",
		Index:       i,
	}
}

// detectMarubozu fires when the body covers over 90% of the range.
func detectMarubozu(candles []core.Candle, i int) *Match {
	c := candles[i]
	if c.Range() <= 0 || c.Body() <= c.Range()*marubozuBodyMin {
		return nil
	}

	kind, polarity := KindBullishMarubozu, Bullish
	if c.IsBearish() {
		kind, polarity = KindBearishMarubozu, Bearish
	}
	return &Match{
		Kind:        kind,
		Polarity:    polarity,
		Confidence:  marubozuConf,
		Description: fmt.Sprintf("Full-bodied %s candle with conviction", polarity),
		Index:       i,
	}
}

// detectEngulfing fires when the current body fully engulfs and exceeds
// the prior opposite-colored body.
func detectEngulfing(candles []core.Candle, i int) *Match {
	if i < 1 {
		return nil
	}
	cur, prev := candles[i], candles[i-1]
	if cur.Body() <= prev.Body() {
		return nil
	}

	if cur.IsBullish() && prev.IsBearish() &&
		cur.Open <= prev.Close && cur.Close >= prev.Open {
		return &Match{
			Kind:        KindBullishEngulfing,
			Polarity:    Bullish,
			Confidence:  engulfConfidence,
			Description: "Bullish body engulfing the prior bearish candle",
			Index:       i,
		}
	}
	if cur.IsBearish() && prev.IsBullish() &&
		cur.Open >= prev.Close && cur.Close <= prev.Open {
		return &Match{
			Kind:        KindBearishEngulfing,
			Polarity:    Bearish,
			Confidence:  engulfConfidence,
			Description: "Bearish body engulfing the prior bullish candle",
			Index:       i,
		}
	}
	return nil
}

// detectStar covers the morning/evening star three-candle reversals: a
// large first candle, a small middle candle, and a third candle closing
// past the midpoint of the first.
func detectStar(candles []core.Candle, i int) *Match {
	if i < 2 {
		return nil
	}
	first, middle, third := candles[i-2], candles[i-1], candles[i]

	if first.Body() <= middle.Body()*starBodyRatio {
		return nil
	}
	if third.Body() <= middle.Body()*starThirdRatio {
		return nil
	}

	firstMid := (first.Open + first.Close) / 2

	if first.IsBearish() && third.IsBullish() && third.Close > firstMid {
		return &Match{
			Kind:        KindMorningStar,
			Polarity:    Bullish,
			Confidence:  starConfidence,
			Description: "Three-candle reversal off the low",
			Index:       i,
		}
	}
	if first.IsBullish() && third.IsBearish() && third.Close < firstMid {
		return &Match{
			Kind:        KindEveningStar,
			Polarity:    Bearish,
			Confidence:  starConfidence,
			Description: "Three-candle reversal off the high",
			Index:       i,
		}
	}
	return nil
}

// Labels renders matches in "<name> (<polarity>)" form, preserving order.
func Labels(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Label()
	}
	return out
}
