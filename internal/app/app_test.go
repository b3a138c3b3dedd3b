package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantive/confluence/internal/collector"
	"github.com/quantive/confluence/internal/config"
	ctxprovider "github.com/quantive/confluence/internal/context"
	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/llm"
	"github.com/quantive/confluence/internal/metrics"
	"github.com/quantive/confluence/internal/report"
	"github.com/quantive/confluence/internal/storage/archive"
	"github.com/quantive/confluence/internal/storage/history"
	"github.com/quantive/confluence/internal/storage/snapshot"
)

type stubCollector struct {
	name         string
	err          error
	fundamentals *core.Fundamentals
}

func (s *stubCollector) Name() string                { return s.name }
func (s *stubCollector) Init(collector.Config) error { return nil }

func (s *stubCollector) FetchQuote(context.Context, string) (*core.Quote, error) {
	return &core.Quote{Symbol: "TEST", Price: 100, Source: s.name}, nil
}

func (s *stubCollector) FetchCandles(_ context.Context, _ string, tf core.Timeframe, limit int) ([]core.Candle, error) {
	if s.err != nil {
		return nil, s.err
	}
	n := 60
	if limit > 0 && limit < n {
		n = limit
	}
	candles := make([]core.Candle, n)
	for i := range candles {
		price := 100 + float64(i)
		candles[i] = core.Candle{
			Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   price,
			High:   price * 1.01,
			Low:    price * 0.99,
			Close:  price,
			Volume: 1000,
		}
	}
	return candles, nil
}

func (s *stubCollector) FetchFundamentals(context.Context, string) (*core.Fundamentals, error) {
	if s.fundamentals == nil {
		return nil, core.ErrNoData
	}
	return s.fundamentals, nil
}

func newApp(t *testing.T) *App {
	t.Helper()
	a := New(config.Defaults(), zap.NewNop())
	a.RegisterCollector(&stubCollector{name: "stub"})
	return a
}

func TestAnalyze_EndToEnd(t *testing.T) {
	a := newApp(t)

	result, err := a.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", result.Symbol)
	assert.NotEmpty(t, result.ID)
	assert.NotEmpty(t, result.Summary)

	// Recorded in history
	got, err := a.GetAnalysis(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, got.ID)
}

func TestAnalyze_NoCollectors(t *testing.T) {
	a := New(config.Defaults(), zap.NewNop())

	_, err := a.Analyze(context.Background(), "AAPL")
	assert.ErrorIs(t, err, core.ErrCollectorFailed)
}

func TestAnalyze_CollectorFallback(t *testing.T) {
	a := New(config.Defaults(), zap.NewNop())
	a.RegisterCollector(&stubCollector{name: "broken", err: errors.New("down")})
	a.RegisterCollector(&stubCollector{name: "working"})

	result, err := a.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", result.Symbol)
}

func TestAnalyze_CollectorFundamentalsUsed(t *testing.T) {
	a := New(config.Defaults(), zap.NewNop())
	a.RegisterCollector(&stubCollector{
		name: "stub",
		fundamentals: &core.Fundamentals{
			Valuation: core.ValuationOvervalued,
			Growth:    core.GrowthStrong,
			PERatio:   40,
		},
	})

	result, err := a.Analyze(context.Background(), "NVDA")
	require.NoError(t, err)
	require.NotNil(t, result.Fundamentals)
	assert.Equal(t, core.ValuationOvervalued, result.Fundamentals.Valuation)
	require.NotNil(t, result.Conflict)
}

func TestAnalyze_ProviderOverridesCollectorFundamentals(t *testing.T) {
	a := New(config.Defaults(), zap.NewNop())
	a.RegisterCollector(&stubCollector{
		name:         "stub",
		fundamentals: &core.Fundamentals{Valuation: core.ValuationOvervalued, PERatio: 40},
	})
	a.SetFundamentalsProvider(ctxprovider.NewStaticFundamentalsProvider(map[string]core.Fundamentals{
		"NVDA": {Valuation: core.ValuationFair, Growth: core.GrowthModerate, PERatio: 20},
	}))

	result, err := a.Analyze(context.Background(), "NVDA")
	require.NoError(t, err)
	require.NotNil(t, result.Fundamentals)
	assert.Equal(t, core.ValuationFair, result.Fundamentals.Valuation)
}

func TestAnalyze_NewsProviderFeedsEngine(t *testing.T) {
	a := newApp(t)
	a.SetNewsProvider(ctxprovider.NewStaticNewsProvider(map[string]core.NewsSummary{
		"AAPL": {Sentiment: core.BiasBullish, Score: 85},
	}))

	result, err := a.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, result.News)
	assert.Equal(t, 85.0, result.Confidence.Breakdown.NewsSentiment)
}

func TestAnalyze_SnapshotWritten(t *testing.T) {
	a := newApp(t)

	fs, err := archive.NewLocalFS(t.TempDir())
	require.NoError(t, err)
	store := snapshot.NewStore(fs)
	a.SetSnapshotStore(store)

	result, err := a.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)

	loaded, err := store.Load(context.Background(), "AAPL", result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, loaded.ID)
}

func TestAnalyzeAll_SkipsFailures(t *testing.T) {
	a := newApp(t)
	a.SetWatchlist([]config.WatchlistItem{
		{Symbol: "AAPL"},
		{Symbol: ""}, // rejected by the engine
		{Symbol: "NVDA"},
	})

	results := a.AnalyzeAll(context.Background())
	assert.Len(t, results, 2)
}

func TestListAnalyses(t *testing.T) {
	a := newApp(t)

	_, err := a.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)
	_, err = a.Analyze(context.Background(), "NVDA")
	require.NoError(t, err)

	all, err := a.ListAnalyses(context.Background(), history.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	// Newest first
	assert.Equal(t, "NVDA", all[0].Symbol)

	onlyAAPL, err := a.ListAnalyses(context.Background(), history.ListFilter{Symbol: "AAPL"})
	require.NoError(t, err)
	assert.Len(t, onlyAAPL, 1)
}

func TestReport_NotConfigured(t *testing.T) {
	a := newApp(t)
	_, err := a.Report(context.Background(), "AAPL")
	assert.Error(t, err)
}

type stubProvider struct {
	err error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Chat(context.Context, llm.ChatRequest) (*llm.ChatResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &llm.ChatResponse{
		Content: "narrative",
		Usage:   llm.Usage{InputTokens: 120, OutputTokens: 80},
	}, nil
}

func llmCounter(t *testing.T, reg *metrics.Registry, name, status string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "status" && l.GetValue() == status {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestReport_RecordsLLMMetrics(t *testing.T) {
	a := newApp(t)
	reg := metrics.NewRegistry()
	a.SetMetrics(reg)
	a.SetReporter(report.NewGenerator(&stubProvider{}, 0, 0.3))

	rep, err := a.Report(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "narrative", rep.Narrative)

	assert.Equal(t, 1.0, llmCounter(t, reg, "confluence_llm_requests_total", "ok"))
}

func TestReport_RecordsLLMFailure(t *testing.T) {
	a := newApp(t)
	reg := metrics.NewRegistry()
	a.SetMetrics(reg)
	a.SetReporter(report.NewGenerator(&stubProvider{err: errors.New("upstream down")}, 0, 0.3))

	_, err := a.Report(context.Background(), "AAPL")
	require.Error(t, err)

	assert.Equal(t, 1.0, llmCounter(t, reg, "confluence_llm_requests_total", "error"))
}
