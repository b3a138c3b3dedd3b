package analysis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/timeframe"
)

func TestSummaryText_Stable(t *testing.T) {
	a := fixedAnalyzer()
	res, err := a.Analyze(context.Background(), Request{
		Symbol: "AAPL",
		Series: timeframe.Series{Daily: risingSeries(60)},
	})
	require.NoError(t, err)

	assert.Equal(t, SummaryText(res), SummaryText(res))
	assert.Equal(t, res.Summary, SummaryText(res))
}

// Feeding a timeframe's own pattern-name list back through the bullet
// renderer reproduces the bullet block inside the full summary.
func TestSummaryText_PatternListRoundTrip(t *testing.T) {
	a := fixedAnalyzer()
	res, err := a.Analyze(context.Background(), Request{
		Symbol: "NVDA",
		Series: timeframe.Series{
			Daily:   risingSeries(60),
			Weekly:  risingSeries(60),
			Monthly: risingSeries(60),
		},
	})
	require.NoError(t, err)

	for _, r := range res.Timeframes.Results() {
		assert.Contains(t, res.Summary, Bullets(r.Patterns),
			"timeframe %s pattern list not reproduced", r.Timeframe)
	}
}

func TestSummaryText_HeaderAndDate(t *testing.T) {
	res := &StockAnalysis{
		Symbol:      "TSLA",
		GeneratedAt: time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC),
	}
	res.Timeframes = timeframe.Analyze(timeframe.Series{})

	text := SummaryText(res)
	assert.True(t, strings.HasPrefix(text, "TSLA technical analysis (2024-06-03)\n"))
}

func TestSummaryText_OmitsAbsentSections(t *testing.T) {
	res := &StockAnalysis{Symbol: "TSLA"}
	res.Timeframes = timeframe.Analyze(timeframe.Series{})

	text := SummaryText(res)
	assert.NotContains(t, text, "Candlestick patterns:")
	assert.NotContains(t, text, "Conflict:")
	assert.NotContains(t, text, "Fundamentals:")
	assert.NotContains(t, text, "News:")
}

func TestSummaryText_IncludesConflictAndFundamentals(t *testing.T) {
	a := fixedAnalyzer()
	res, err := a.Analyze(context.Background(), Request{
		Symbol: "NVDA",
		Series: timeframe.Series{
			Daily:   risingSeries(60),
			Weekly:  risingSeries(60),
			Monthly: risingSeries(60),
		},
		Fundamentals: &core.Fundamentals{
			Valuation: core.ValuationOvervalued,
			Growth:    core.GrowthStrong,
			PERatio:   40,
		},
	})
	require.NoError(t, err)

	assert.Contains(t, res.Summary, "Conflict: OVERVALUED_BULLISH (-15)")
	assert.Contains(t, res.Summary, "Fundamentals: overvalued valuation, strong growth (P/E 40.0)")
}

func TestBullets(t *testing.T) {
	assert.Equal(t, "", Bullets(nil))
	assert.Equal(t, "  - a\n  - b\n", Bullets([]string{"a", "b"}))
}
