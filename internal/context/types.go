// Package context supplies the external signals the engine consumes but
// does not compute: news sentiment and company fundamentals.
package context

import (
	"context"

	"github.com/quantive/confluence/internal/core"
)

// NewsProvider supplies a news sentiment summary for a symbol. A nil
// summary with a nil error means no news is available; the engine scores
// the news component at its neutral default.
type NewsProvider interface {
	GetNews(ctx context.Context, symbol string) (*core.NewsSummary, error)
}

// FundamentalsProvider supplies the fundamental summary for a symbol.
// A nil summary with a nil error means fundamentals are unknown; the
// engine skips conflict detection in that case.
type FundamentalsProvider interface {
	GetFundamentals(ctx context.Context, symbol string) (*core.Fundamentals, error)
}
