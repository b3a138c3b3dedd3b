package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/quantive/confluence/internal/app"
	"github.com/quantive/confluence/internal/collector/yahoo"
	"github.com/quantive/confluence/internal/config"
	ctxprovider "github.com/quantive/confluence/internal/context"
	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/llm/factory"
	"github.com/quantive/confluence/internal/metrics"
	"github.com/quantive/confluence/internal/report"
	"github.com/quantive/confluence/internal/storage/archive"
	"github.com/quantive/confluence/internal/storage/snapshot"
)

// loadConfig reads and validates the config file, or falls back to
// defaults when none is given.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// buildApp wires collectors, providers, storage and reporting from config.
func buildApp(cfg *config.Config, log *zap.Logger) (*app.App, *metrics.Registry, error) {
	a := app.New(cfg, log)

	// Yahoo is the default collector; it stays on unless disabled.
	if c, ok := cfg.Collectors["yahoo"]; !ok || c.Enabled {
		a.RegisterCollector(yahoo.New())
	}

	if summaries := newsSummaries(cfg.News); len(summaries) > 0 {
		var provider ctxprovider.NewsProvider = ctxprovider.NewStaticNewsProvider(summaries)
		if cfg.News.CacheTTL > 0 {
			provider = ctxprovider.NewCachedNewsProvider(provider, cfg.News.CacheTTL)
		}
		a.SetNewsProvider(provider)
	}

	if cfg.Storage.Archive.Enabled {
		backend, err := buildArchive(cfg.Storage.Archive)
		if err != nil {
			return nil, nil, fmt.Errorf("building archive: %w", err)
		}
		a.SetSnapshotStore(snapshot.NewStore(backend))
	}

	if cfg.Report.Enabled {
		provider, err := factory.New(cfg.LLM)
		if err != nil {
			return nil, nil, fmt.Errorf("building LLM provider: %w", err)
		}
		a.SetReporter(report.NewGenerator(provider, cfg.Report.MaxTokens, cfg.Report.Temperature))
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
		a.SetMetrics(reg)
	}

	return a, reg, nil
}

// newsSummaries converts configured per-symbol sentiment into provider
// entries, keyed by upper-cased symbol to match API lookups.
func newsSummaries(cfg config.NewsConfig) map[string]core.NewsSummary {
	if len(cfg.Symbols) == 0 {
		return nil
	}
	out := make(map[string]core.NewsSummary, len(cfg.Symbols))
	for symbol, entry := range cfg.Symbols {
		out[strings.ToUpper(symbol)] = core.NewsSummary{
			Sentiment: core.Bias(entry.Sentiment),
			Score:     entry.Score,
			Headlines: entry.Headlines,
		}
	}
	return out
}

func buildArchive(cfg config.ArchiveConfig) (archive.Storage, error) {
	switch cfg.Type {
	case "localfs":
		return archive.NewLocalFS(cfg.Path)
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown archive type: %s", cfg.Type)
	}
}
