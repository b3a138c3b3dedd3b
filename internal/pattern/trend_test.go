package pattern

import (
	"testing"

	"github.com/quantive/confluence/internal/core"
)

func TestClassifyTrend_FlatIsSidewaysAndConsolidating(t *testing.T) {
	var candles []core.Candle
	for i := 0; i < 20; i++ {
		candles = append(candles, tight(100))
	}

	r := ClassifyTrend(datedSeries(candles))
	if r.Direction != Sideways {
		t.Errorf("direction = %s, want sideways", r.Direction)
	}
	if !r.Consolidating {
		t.Error("expected consolidating for flat series")
	}
	if r.Strength != 0 {
		t.Errorf("strength = %v, want 0", r.Strength)
	}
}

func TestClassifyTrend_Uptrend(t *testing.T) {
	var candles []core.Candle
	for i := 0; i < 20; i++ {
		candles = append(candles, tight(100+float64(i)))
	}

	r := ClassifyTrend(datedSeries(candles))
	if r.Direction != Uptrend {
		t.Errorf("direction = %s, want uptrend", r.Direction)
	}
	if r.Strength <= 0 {
		t.Errorf("expected positive strength, got %v", r.Strength)
	}
	if r.Consolidating {
		t.Error("a 19%% move should not read as consolidation")
	}
}

func TestClassifyTrend_Downtrend(t *testing.T) {
	var candles []core.Candle
	for i := 0; i < 20; i++ {
		candles = append(candles, tight(120-float64(i)))
	}

	r := ClassifyTrend(datedSeries(candles))
	if r.Direction != Downtrend {
		t.Errorf("direction = %s, want downtrend", r.Direction)
	}
}

func TestClassifyTrend_StrengthCapped(t *testing.T) {
	// Violent rally: slope% * 10 well above 100
	var candles []core.Candle
	for i := 0; i < 20; i++ {
		candles = append(candles, tight(100+float64(i)*500))
	}

	r := ClassifyTrend(datedSeries(candles))
	if r.Strength != 100 {
		t.Errorf("strength = %v, want capped at 100", r.Strength)
	}
}

func TestClassifyTrend_TooShort(t *testing.T) {
	r := ClassifyTrend([]core.Candle{tight(100)})
	if r.Direction != Sideways || r.Strength != 0 {
		t.Errorf("expected degenerate sideways result, got %+v", r)
	}
}

func TestDirection_Bias(t *testing.T) {
	if Uptrend.Bias() != core.BiasBullish {
		t.Error("uptrend should map to bullish")
	}
	if Downtrend.Bias() != core.BiasBearish {
		t.Error("downtrend should map to bearish")
	}
	if Sideways.Bias() != core.BiasNeutral {
		t.Error("sideways should map to neutral")
	}
}

func TestAtBreakout(t *testing.T) {
	var candles []core.Candle
	for i := 0; i < 19; i++ {
		candles = append(candles, tight(100))
	}
	candles = append(candles, core.Candle{Open: 100, High: 110, Low: 100, Close: 110})

	if !AtBreakout(datedSeries(candles)) {
		t.Error("expected breakout when close sits at the 20-candle high")
	}
	if AtBreakdown(candles) {
		t.Error("did not expect breakdown")
	}
}

func TestAtBreakdown(t *testing.T) {
	var candles []core.Candle
	for i := 0; i < 19; i++ {
		candles = append(candles, tight(100))
	}
	candles = append(candles, core.Candle{Open: 100, High: 100, Low: 90, Close: 90})

	if !AtBreakdown(datedSeries(candles)) {
		t.Error("expected breakdown when close sits at the 20-candle low")
	}
}

func TestAtBreakout_RequiresFullWindow(t *testing.T) {
	var candles []core.Candle
	for i := 0; i < 19; i++ {
		candles = append(candles, tight(100+float64(i)))
	}

	if AtBreakout(candles) {
		t.Error("breakout requires at least 20 candles")
	}
	if AtBreakdown(candles) {
		t.Error("breakdown requires at least 20 candles")
	}
}
