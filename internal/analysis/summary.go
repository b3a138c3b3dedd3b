package analysis

import (
	"fmt"
	"strings"

	"github.com/quantive/confluence/internal/timeframe"
)

// SummaryText renders the analysis as deterministic plain text for report
// and prompt collaborators. Pure formatting: no business logic, and the
// same analysis always renders to the same string.
func SummaryText(a *StockAnalysis) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s technical analysis (%s)\n",
		a.Symbol, a.GeneratedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Recommendation: %s (confidence %.0f/100)\n\n",
		a.Confidence.Recommendation, a.Confidence.Score))

	for _, r := range a.Timeframes.Results() {
		writeTimeframe(&sb, r)
	}

	sb.WriteString(fmt.Sprintf("\nAlignment: %s (%.0f/100)\n",
		a.Timeframes.Alignment.Label, a.Timeframes.Alignment.Score))

	if len(a.Candlesticks) > 0 {
		labels := make([]string, len(a.Candlesticks))
		for i, m := range a.Candlesticks {
			labels[i] = m.Label()
		}
		sb.WriteString("Candlestick patterns: " + strings.Join(labels, ", ") + "\n")
	}

	ind := a.Timeframes.Daily.Indicators
	sb.WriteString(fmt.Sprintf("Indicators (daily): RSI %.1f (%s), MACD %s, volume %.1fx average (%s), ATR %.2f\n",
		ind.RSI.Value, ind.RSI.Zone, ind.MACD.Trend, ind.Volume.Ratio, ind.Volume.Trend, ind.ATR))
	sb.WriteString(fmt.Sprintf("Bollinger: %s (%%B %.2f)\n",
		ind.Bollinger.Position, ind.Bollinger.PercentB))

	if len(a.Confidence.Factors) > 0 {
		sb.WriteString("Factors:\n")
		sb.WriteString(Bullets(a.Confidence.Factors))
	}

	if a.Conflict != nil && a.Conflict.HasConflict {
		sb.WriteString(fmt.Sprintf("Conflict: %s (%+.0f): %s\n",
			a.Conflict.Type, a.Conflict.ConfidenceAdjustment, a.Conflict.Recommendation))
	}
	if a.Fundamentals != nil {
		sb.WriteString(fmt.Sprintf("Fundamentals: %s valuation, %s growth (P/E %.1f)\n",
			a.Fundamentals.Valuation, a.Fundamentals.Growth, a.Fundamentals.PERatio))
	}
	if a.News != nil {
		sb.WriteString(fmt.Sprintf("News: %s (%.0f/100)\n", a.News.Sentiment, a.News.Score))
	}

	return sb.String()
}

func writeTimeframe(sb *strings.Builder, r timeframe.Result) {
	title := strings.ToUpper(string(r.Timeframe)[:1]) + string(r.Timeframe)[1:]
	sb.WriteString(fmt.Sprintf("%s: %s (strength %.0f), support %.2f, resistance %.2f\n",
		title, r.Trend.Direction, r.Trend.Strength, r.Support, r.Resistance))
	sb.WriteString(Bullets(r.Patterns))
}

// Bullets renders an ordered list as indented bullet lines. Formatting is
// stable: rendering the same list twice yields the same text.
func Bullets(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("  - " + item + "\n")
	}
	return sb.String()
}
