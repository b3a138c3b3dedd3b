package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/quantive/confluence/internal/analysis"
	"github.com/quantive/confluence/internal/confidence"
	"github.com/quantive/confluence/internal/core"
)

func record(id, symbol string, rec core.Recommendation, at time.Time) *analysis.StockAnalysis {
	return &analysis.StockAnalysis{
		ID:          id,
		Symbol:      symbol,
		GeneratedAt: at,
		Confidence:  confidence.Result{Recommendation: rec},
	}
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	s := NewMemoryStore(10)
	ctx := context.Background()

	a := record("a1", "AAPL", core.RecommendBuy, time.Now())
	if err := s.Save(ctx, a); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Symbol != "AAPL" {
		t.Errorf("got %+v", got)
	}

	if _, err := s.GetByID(ctx, "missing"); err == nil {
		t.Error("expected error for missing ID")
	}
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	s := NewMemoryStore(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = s.Save(ctx, record(fmt.Sprintf("a%d", i), "AAPL", core.RecommendHold, time.Now()))
	}

	if _, err := s.GetByID(ctx, "a0"); err == nil {
		t.Error("oldest record should have been evicted")
	}
	if _, err := s.GetByID(ctx, "a4"); err != nil {
		t.Error("newest record should be kept")
	}
}

func TestMemoryStore_ListFilters(t *testing.T) {
	s := NewMemoryStore(10)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_ = s.Save(ctx, record("a1", "AAPL", core.RecommendBuy, base))
	_ = s.Save(ctx, record("a2", "NVDA", core.RecommendBuy, base.Add(time.Hour)))
	_ = s.Save(ctx, record("a3", "AAPL", core.RecommendWait, base.Add(2*time.Hour)))

	bySymbol, _ := s.List(ctx, ListFilter{Symbol: "AAPL"})
	if len(bySymbol) != 2 {
		t.Errorf("symbol filter returned %d, want 2", len(bySymbol))
	}
	// Newest first
	if bySymbol[0].ID != "a3" {
		t.Errorf("expected newest first, got %s", bySymbol[0].ID)
	}

	byRec, _ := s.List(ctx, ListFilter{Recommendation: core.RecommendBuy})
	if len(byRec) != 2 {
		t.Errorf("recommendation filter returned %d, want 2", len(byRec))
	}

	byTime, _ := s.List(ctx, ListFilter{From: base.Add(30 * time.Minute)})
	if len(byTime) != 2 {
		t.Errorf("time filter returned %d, want 2", len(byTime))
	}

	limited, _ := s.List(ctx, ListFilter{Limit: 1})
	if len(limited) != 1 || limited[0].ID != "a3" {
		t.Errorf("limit filter = %+v", limited)
	}
}
