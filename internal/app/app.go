// Package app wires collectors, providers, the analysis engine, storage
// and reporting into one orchestrator.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/quantive/confluence/internal/analysis"
	"github.com/quantive/confluence/internal/collector"
	"github.com/quantive/confluence/internal/config"
	ctxprovider "github.com/quantive/confluence/internal/context"
	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/metrics"
	"github.com/quantive/confluence/internal/report"
	"github.com/quantive/confluence/internal/storage/history"
	"github.com/quantive/confluence/internal/storage/snapshot"
	"github.com/quantive/confluence/internal/timeframe"
)

// historySize bounds the in-memory record of recent analyses.
const historySize = 256

// App is the main application orchestrator.
type App struct {
	cfg        *config.Config
	logger     *zap.Logger
	collectors *collector.Registry
	analyzer   *analysis.Analyzer
	history    *history.MemoryStore

	news         ctxprovider.NewsProvider
	fundamentals ctxprovider.FundamentalsProvider
	reporter     *report.Generator
	snapshots    *snapshot.Store
	metrics      *metrics.Registry

	mu        sync.RWMutex
	watchlist []config.WatchlistItem
}

// New creates an App from configuration.
func New(cfg *config.Config, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		cfg:        cfg,
		logger:     logger,
		collectors: collector.NewRegistry(),
		analyzer:   analysis.NewAnalyzer(logger),
		history:    history.NewMemoryStore(historySize),
		watchlist:  cfg.Watchlist,
	}
}

// RegisterCollector adds a market-data collector.
func (a *App) RegisterCollector(c collector.Collector) {
	a.collectors.Register(c)
}

// SetNewsProvider installs the news sentiment source.
func (a *App) SetNewsProvider(p ctxprovider.NewsProvider) {
	a.news = p
}

// SetFundamentalsProvider installs the fundamentals source.
func (a *App) SetFundamentalsProvider(p ctxprovider.FundamentalsProvider) {
	a.fundamentals = p
}

// SetReporter installs the narrative report generator.
func (a *App) SetReporter(g *report.Generator) {
	a.reporter = g
}

// SetSnapshotStore installs the archive snapshot store.
func (a *App) SetSnapshotStore(s *snapshot.Store) {
	a.snapshots = s
}

// SetMetrics installs the metrics registry.
func (a *App) SetMetrics(m *metrics.Registry) {
	a.metrics = m
	if m != nil {
		m.SetWatchlistSize(len(a.Watchlist()))
	}
}

// Watchlist returns the configured watchlist.
func (a *App) Watchlist() []config.WatchlistItem {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]config.WatchlistItem, len(a.watchlist))
	copy(out, a.watchlist)
	return out
}

// SetWatchlist replaces the watchlist.
func (a *App) SetWatchlist(items []config.WatchlistItem) {
	a.mu.Lock()
	a.watchlist = items
	a.mu.Unlock()
	if a.metrics != nil {
		a.metrics.SetWatchlistSize(len(items))
	}
}

// Analyze fetches data for the symbol and runs the full engine. The
// result is recorded in history and, when configured, archived.
func (a *App) Analyze(ctx context.Context, symbol string) (*analysis.StockAnalysis, error) {
	if a.cfg.Engine.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Engine.Timeout)
		defer cancel()
	}

	start := time.Now()

	series, c, err := a.fetchSeries(ctx, symbol)
	if err != nil {
		return nil, err
	}

	req := analysis.Request{Symbol: symbol, Series: series}

	if a.news != nil {
		news, err := a.news.GetNews(ctx, symbol)
		if err != nil {
			a.logger.Warn("news fetch failed", zap.String("symbol", symbol), zap.Error(err))
		} else {
			req.News = news
		}
	}
	req.Fundamentals = a.fetchFundamentals(ctx, c, symbol)

	result, err := a.analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if a.metrics != nil {
		a.metrics.RecordAnalysis(string(result.Confidence.Recommendation), time.Since(start).Seconds())
		if result.Conflict != nil && result.Conflict.HasConflict {
			a.metrics.RecordConflict(string(result.Conflict.Type))
		}
	}

	if err := a.history.Save(ctx, result); err != nil {
		a.logger.Warn("history save failed", zap.String("symbol", symbol), zap.Error(err))
	}
	if a.snapshots != nil {
		if err := a.snapshots.Save(ctx, result); err != nil {
			a.logger.Warn("snapshot save failed", zap.String("symbol", symbol), zap.Error(err))
		}
	}

	return result, nil
}

// AnalyzeAll runs the watchlist sequentially, skipping symbols that fail.
func (a *App) AnalyzeAll(ctx context.Context) []*analysis.StockAnalysis {
	items := a.Watchlist()
	results := make([]*analysis.StockAnalysis, 0, len(items))

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		result, err := a.Analyze(ctx, item.Symbol)
		if err != nil {
			a.logger.Error("analysis failed", zap.String("symbol", item.Symbol), zap.Error(err))
			continue
		}
		results = append(results, result)
	}
	return results
}

// Report runs an analysis and renders the narrative report.
func (a *App) Report(ctx context.Context, symbol string) (*report.Report, error) {
	if a.reporter == nil {
		return nil, core.WrapError(core.ErrLLMFailed, fmt.Errorf("reporting is not configured"))
	}

	result, err := a.Analyze(ctx, symbol)
	if err != nil {
		return nil, err
	}

	rep, err := a.reporter.Generate(ctx, result)
	if a.metrics != nil {
		if err != nil {
			a.metrics.RecordLLMRequest(a.cfg.LLM.Provider, "error", 0, 0)
		} else {
			a.metrics.RecordLLMRequest(a.cfg.LLM.Provider, "ok", rep.Usage.InputTokens, rep.Usage.OutputTokens)
		}
	}
	return rep, err
}

// GetAnalysis retrieves a recent analysis by ID.
func (a *App) GetAnalysis(ctx context.Context, id string) (*analysis.StockAnalysis, error) {
	return a.history.GetByID(ctx, id)
}

// ListAnalyses lists recent analyses, newest first.
func (a *App) ListAnalyses(ctx context.Context, filter history.ListFilter) ([]*analysis.StockAnalysis, error) {
	return a.history.List(ctx, filter)
}

// fetchSeries tries each registered collector until one returns a daily
// series, and reports which collector succeeded.
func (a *App) fetchSeries(ctx context.Context, symbol string) (timeframe.Series, collector.Collector, error) {
	collectors := a.collectors.GetAll()
	if len(collectors) == 0 {
		return timeframe.Series{}, nil, core.WrapError(core.ErrCollectorFailed,
			fmt.Errorf("no collectors registered"))
	}

	var lastErr error
	for _, c := range collectors {
		series, err := collector.FetchSeries(ctx, c, symbol)
		if err == nil {
			if a.metrics != nil {
				a.metrics.RecordCollectorRequest(c.Name(), "ok")
			}
			return series, c, nil
		}
		if a.metrics != nil {
			a.metrics.RecordCollectorRequest(c.Name(), "error")
		}
		lastErr = err
	}
	return timeframe.Series{}, nil, lastErr
}

// fetchFundamentals prefers the configured provider and falls back to
// the collector when it can also serve fundamentals. Missing
// fundamentals are not an error; the engine degrades without them.
func (a *App) fetchFundamentals(ctx context.Context, c collector.Collector, symbol string) *core.Fundamentals {
	if a.fundamentals != nil {
		f, err := a.fundamentals.GetFundamentals(ctx, symbol)
		if err != nil {
			a.logger.Warn("fundamentals fetch failed", zap.String("symbol", symbol), zap.Error(err))
		} else if f != nil {
			return f
		}
	}

	if fc, ok := c.(collector.FundamentalsCollector); ok {
		f, err := fc.FetchFundamentals(ctx, symbol)
		if err != nil {
			a.logger.Debug("collector fundamentals unavailable",
				zap.String("symbol", symbol), zap.Error(err))
			return nil
		}
		return f
	}
	return nil
}
