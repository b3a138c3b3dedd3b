package context

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quantive/confluence/internal/core"
)

func TestStaticNewsProvider(t *testing.T) {
	p := NewStaticNewsProvider(map[string]core.NewsSummary{
		"AAPL": {Sentiment: core.BiasBullish, Score: 72},
	})

	got, err := p.GetNews(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Score != 72 {
		t.Fatalf("got %+v, want score 72", got)
	}

	missing, err := p.GetNews(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil summary for unknown symbol, got %+v", missing)
	}
}

type countingNewsProvider struct {
	calls int
	err   error
}

func (p *countingNewsProvider) GetNews(context.Context, string) (*core.NewsSummary, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &core.NewsSummary{Sentiment: core.BiasNeutral, Score: 50}, nil
}

func TestCachedNewsProvider_CachesWithinTTL(t *testing.T) {
	upstream := &countingNewsProvider{}
	p := NewCachedNewsProvider(upstream, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := p.GetNews(context.Background(), "AAPL"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if upstream.calls != 1 {
		t.Fatalf("upstream called %d times, want 1", upstream.calls)
	}
}

func TestCachedNewsProvider_ExpiredEntryRefetches(t *testing.T) {
	upstream := &countingNewsProvider{}
	p := NewCachedNewsProvider(upstream, time.Nanosecond)

	_, _ = p.GetNews(context.Background(), "AAPL")
	time.Sleep(time.Millisecond)
	_, _ = p.GetNews(context.Background(), "AAPL")

	if upstream.calls != 2 {
		t.Fatalf("upstream called %d times, want 2", upstream.calls)
	}
}

func TestCachedNewsProvider_ErrorNotCached(t *testing.T) {
	upstream := &countingNewsProvider{err: errors.New("boom")}
	p := NewCachedNewsProvider(upstream, time.Minute)

	if _, err := p.GetNews(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error")
	}
	upstream.err = nil
	got, err := p.GetNews(context.Background(), "AAPL")
	if err != nil || got == nil {
		t.Fatalf("expected recovery after upstream error, got %v %v", got, err)
	}
}

func TestStaticFundamentalsProvider(t *testing.T) {
	p := NewStaticFundamentalsProvider(map[string]core.Fundamentals{
		"NVDA": {Valuation: core.ValuationOvervalued, Growth: core.GrowthStrong, PERatio: 40},
	})

	got, err := p.GetFundamentals(context.Background(), "NVDA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.PERatio != 40 {
		t.Fatalf("got %+v, want P/E 40", got)
	}

	missing, _ := p.GetFundamentals(context.Background(), "MSFT")
	if missing != nil {
		t.Fatalf("expected nil for unknown symbol, got %+v", missing)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		pe        float64
		eps       float64
		valuation core.Valuation
		growth    core.Growth
	}{
		{"cheap grower", 10, 20, core.ValuationUndervalued, core.GrowthStrong},
		{"rich and slow", 45, 2, core.ValuationOvervalued, core.GrowthWeak},
		{"fair and steady", 20, 10, core.ValuationFair, core.GrowthModerate},
		{"negative pe is not undervalued", -5, 10, core.ValuationFair, core.GrowthModerate},
		{"boundary pe 30 is fair", 30, 10, core.ValuationFair, core.GrowthModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, g := Classify(tt.pe, tt.eps)
			if v != tt.valuation || g != tt.growth {
				t.Errorf("Classify(%v, %v) = %v, %v; want %v, %v",
					tt.pe, tt.eps, v, g, tt.valuation, tt.growth)
			}
		})
	}
}
