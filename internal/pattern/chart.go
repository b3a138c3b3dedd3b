package pattern

import (
	"fmt"
	"sort"

	"github.com/quantive/confluence/internal/core"
)

// Detector is one chart-pattern detector. Detectors do not compete: all
// are attempted and their matches unioned. A detector returns nil when its
// pattern is absent or the series is shorter than MinCandles.
type Detector interface {
	Name() string
	MinCandles() int
	Detect(candles []core.Candle) *Match
}

// Detectors returns the chart detectors in evaluation order.
func Detectors() []Detector {
	return []Detector{
		&flagDetector{bullish: true},
		&flagDetector{bullish: false},
		&triangleDetector{ascending: true},
		&triangleDetector{ascending: false},
		&bounceDetector{support: true},
		&bounceDetector{support: false},
	}
}

// DetectChart runs every detector and unions the matches, sorted by
// confidence descending. The sort is stable so detection order breaks ties.
func DetectChart(candles []core.Candle) []Match {
	var matches []Match
	for _, d := range Detectors() {
		if len(candles) < d.MinCandles() {
			continue
		}
		if m := d.Detect(candles); m != nil {
			matches = append(matches, *m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

// flagDetector finds a 7-candle pole followed by an 8-candle bounded
// countertrend consolidation.
type flagDetector struct {
	bullish bool
}

func (d *flagDetector) Name() string {
	if d.bullish {
		return "bullish_flag"
	}
	return "bearish_flag"
}

func (d *flagDetector) MinCandles() int { return chartWindow }

func (d *flagDetector) Detect(candles []core.Candle) *Match {
	window := candles[len(candles)-chartWindow:]
	pole := window[:poleCandles]
	flag := window[poleCandles:]

	poleStart := pole[0].Close
	poleEnd := pole[len(pole)-1].Close
	flagStart := flag[0].Close
	flagEnd := flag[len(flag)-1].Close
	if poleStart == 0 || flagStart == 0 {
		return nil
	}

	polePct := (poleEnd - poleStart) / poleStart * 100
	flagPct := (flagEnd - flagStart) / flagStart * 100

	if d.bullish {
		if polePct <= poleMinMovePct {
			return nil
		}
		// Consolidation may pull back up to 2% or drift up to 1%
		if flagPct < -flagPullbackMaxPct || flagPct > flagDriftMaxPct {
			return nil
		}
	} else {
		if polePct >= -poleMinMovePct {
			return nil
		}
		if flagPct > flagPullbackMaxPct || flagPct < -flagDriftMaxPct {
			return nil
		}
	}

	abs := polePct
	if abs < 0 {
		abs = -abs
	}
	confidence := flagBaseConf + abs*flagConfPerPct
	if confidence > flagMaxConf {
		confidence = flagMaxConf
	}

	kind, polarity := KindBullishFlag, Bullish
	if !d.bullish {
		kind, polarity = KindBearishFlag, Bearish
	}

	return &Match{
		Kind:        kind,
		Polarity:    polarity,
		Confidence:  confidence,
		Description: fmt.Sprintf("%.1f%% pole with a tight consolidation", polePct),
		TargetPrice: flagEnd + (poleEnd - poleStart),
		StopLoss:    flagStart,
		Index:       len(candles) - 1,
	}
}

// triangleDetector finds a flat extreme on one side with converging price
// on the other.
type triangleDetector struct {
	ascending bool
}

func (d *triangleDetector) Name() string {
	if d.ascending {
		return "ascending_triangle"
	}
	return "descending_triangle"
}

func (d *triangleDetector) MinCandles() int { return chartWindow }

func (d *triangleDetector) Detect(candles []core.Candle) *Match {
	window := candles[len(candles)-chartWindow:]
	half := len(window) / 2

	if d.ascending {
		// Flat resistance: enough highs within 2% of the window max
		maxHigh := window[0].High
		for _, c := range window {
			if c.High > maxHigh {
				maxHigh = c.High
			}
		}
		touches := 0
		for _, c := range window {
			if c.High >= maxHigh*(1-triangleFlatPct/100) {
				touches++
			}
		}
		if touches < triangleFlatMin {
			return nil
		}

		// Rising lows: second-half average above first-half by 1%
		firstAvg := avgLow(window[:half])
		secondAvg := avgLow(window[half:])
		if firstAvg == 0 || secondAvg <= firstAvg*(1+triangleSlopePct/100) {
			return nil
		}

		return &Match{
			Kind:        KindAscendingTriangle,
			Polarity:    Bullish,
			Confidence:  triangleConf,
			Description: "Flat resistance with rising lows",
			TargetPrice: maxHigh,
			Index:       len(candles) - 1,
		}
	}

	// Flat support: enough lows within 2% of the window min
	minLow := window[0].Low
	for _, c := range window {
		if c.Low < minLow {
			minLow = c.Low
		}
	}
	touches := 0
	for _, c := range window {
		if c.Low <= minLow*(1+triangleFlatPct/100) {
			touches++
		}
	}
	if touches < triangleFlatMin {
		return nil
	}

	firstAvg := avgHigh(window[:half])
	secondAvg := avgHigh(window[half:])
	if firstAvg == 0 || secondAvg >= firstAvg*(1-triangleSlopePct/100) {
		return nil
	}

	return &Match{
		Kind:        KindDescendingTriangle,
		Polarity:    Bearish,
		Confidence:  triangleConf,
		Description: "Flat support with falling highs",
		TargetPrice: minLow,
		Index:       len(candles) - 1,
	}
}

// bounceDetector finds the last candle reversing off a 20-candle extreme.
type bounceDetector struct {
	support bool
}

func (d *bounceDetector) Name() string {
	if d.support {
		return "support_bounce"
	}
	return "resistance_rejection"
}

func (d *bounceDetector) MinCandles() int { return bounceWindow }

func (d *bounceDetector) Detect(candles []core.Candle) *Match {
	start := len(candles) - extremeLookback
	if start < 0 {
		start = 0
	}
	window := candles[start:]
	last := candles[len(candles)-1]

	if d.support {
		minLow := window[0].Low
		for _, c := range window {
			if c.Low < minLow {
				minLow = c.Low
			}
		}
		// Reversal: probe within 1% of the low, then a bullish close
		if last.Low > minLow*(1+bounceProximityPct/100) || !last.IsBullish() {
			return nil
		}
		return &Match{
			Kind:        KindSupportBounce,
			Polarity:    Bullish,
			Confidence:  bounceConf,
			Description: fmt.Sprintf("Bullish reversal off support near %.2f", minLow),
			StopLoss:    minLow,
			Index:       len(candles) - 1,
		}
	}

	maxHigh := window[0].High
	for _, c := range window {
		if c.High > maxHigh {
			maxHigh = c.High
		}
	}
	if last.High < maxHigh*(1-bounceProximityPct/100) || !last.IsBearish() {
		return nil
	}
	return &Match{
		Kind:        KindResistanceRejection,
		Polarity:    Bearish,
		Confidence:  bounceConf,
		Description: fmt.Sprintf("Bearish rejection at resistance near %.2f", maxHigh),
		StopLoss:    maxHigh,
		Index:       len(candles) - 1,
	}
}

func avgLow(candles []core.Candle) float64 {
	if len(candles) == 0 {
		return 0
	}
	var sum float64
	for _, c := range candles {
		sum += c.Low
	}
	return sum / float64(len(candles))
}

func avgHigh(candles []core.Candle) float64 {
	if len(candles) == 0 {
		return 0
	}
	var sum float64
	for _, c := range candles {
		sum += c.High
	}
	return sum / float64(len(candles))
}
