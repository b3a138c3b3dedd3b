package context

import (
	"context"
	"sync"
	"time"

	"github.com/quantive/confluence/internal/core"
)

// StaticNewsProvider serves configured news summaries. Used for tests and
// for deployments that feed sentiment in through config rather than a
// news API.
type StaticNewsProvider struct {
	news map[string]core.NewsSummary
}

// NewStaticNewsProvider creates a news provider over a fixed symbol map.
func NewStaticNewsProvider(news map[string]core.NewsSummary) *StaticNewsProvider {
	return &StaticNewsProvider{news: news}
}

// GetNews returns the configured summary for the symbol, or nil when the
// symbol has no entry.
func (p *StaticNewsProvider) GetNews(_ context.Context, symbol string) (*core.NewsSummary, error) {
	if s, ok := p.news[symbol]; ok {
		return &s, nil
	}
	return nil, nil
}

// CachedNewsProvider wraps a news provider with a per-symbol TTL cache.
type CachedNewsProvider struct {
	provider NewsProvider
	ttl      time.Duration

	mu      sync.RWMutex
	cache   map[string]*core.NewsSummary
	cacheAt map[string]time.Time
}

// NewCachedNewsProvider creates a cached news provider.
func NewCachedNewsProvider(provider NewsProvider, ttl time.Duration) *CachedNewsProvider {
	return &CachedNewsProvider{
		provider: provider,
		ttl:      ttl,
		cache:    make(map[string]*core.NewsSummary),
		cacheAt:  make(map[string]time.Time),
	}
}

// GetNews returns the cached summary or fetches from the underlying
// provider. Nil summaries are cached too, so absent news does not hammer
// the upstream.
func (p *CachedNewsProvider) GetNews(ctx context.Context, symbol string) (*core.NewsSummary, error) {
	p.mu.RLock()
	at, ok := p.cacheAt[symbol]
	cached := p.cache[symbol]
	p.mu.RUnlock()
	if ok && time.Since(at) < p.ttl {
		return cached, nil
	}

	news, err := p.provider.GetNews(ctx, symbol)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[symbol] = news
	p.cacheAt[symbol] = time.Now()
	p.mu.Unlock()
	return news, nil
}
