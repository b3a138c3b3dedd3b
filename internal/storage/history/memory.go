// Package history keeps a bounded in-memory record of recent analyses
// for the API's list and lookup endpoints.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/quantive/confluence/internal/analysis"
	"github.com/quantive/confluence/internal/core"
)

// ListFilter defines criteria for listing analyses.
type ListFilter struct {
	Symbol         string
	Recommendation core.Recommendation
	From           time.Time
	To             time.Time
	Limit          int
}

// MemoryStore is a bounded in-memory analysis store. When full, the
// oldest records are dropped.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*analysis.StockAnalysis
	maxSize int
}

// NewMemoryStore creates a store holding up to maxSize records.
func NewMemoryStore(maxSize int) *MemoryStore {
	return &MemoryStore{
		records: make([]*analysis.StockAnalysis, 0, maxSize),
		maxSize: maxSize,
	}
}

// Save appends a record, evicting the oldest when over capacity.
func (m *MemoryStore) Save(_ context.Context, a *analysis.StockAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, a)
	if len(m.records) > m.maxSize {
		m.records = m.records[len(m.records)-m.maxSize:]
	}
	return nil
}

// GetByID retrieves an analysis by ID.
func (m *MemoryStore) GetByID(_ context.Context, id string) (*analysis.StockAnalysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.records {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, core.ErrNoData
}

// List returns matching analyses, newest first.
func (m *MemoryStore) List(_ context.Context, filter ListFilter) ([]*analysis.StockAnalysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*analysis.StockAnalysis, 0)
	for i := len(m.records) - 1; i >= 0; i-- {
		a := m.records[i]
		if !matches(a, filter) {
			continue
		}
		result = append(result, a)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

func matches(a *analysis.StockAnalysis, filter ListFilter) bool {
	if filter.Symbol != "" && a.Symbol != filter.Symbol {
		return false
	}
	if filter.Recommendation != "" && a.Confidence.Recommendation != filter.Recommendation {
		return false
	}
	if !filter.From.IsZero() && a.GeneratedAt.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && a.GeneratedAt.After(filter.To) {
		return false
	}
	return true
}
