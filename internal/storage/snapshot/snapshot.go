// Package snapshot persists analysis records as JSON blobs in archive
// storage, one file per analysis under analyses/<symbol>/<id>.json.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/quantive/confluence/internal/analysis"
	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/storage/archive"
)

const root = "analyses"

// Store writes and reads analysis snapshots.
type Store struct {
	backend archive.Storage
}

// NewStore creates a snapshot store over the given backend.
func NewStore(backend archive.Storage) *Store {
	return &Store{backend: backend}
}

func snapshotPath(symbol, id string) string {
	return path.Join(root, symbol, id+".json")
}

// Save writes the analysis as an indented JSON snapshot.
func (s *Store) Save(ctx context.Context, a *analysis.StockAnalysis) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	if err := s.backend.Write(ctx, snapshotPath(a.Symbol, a.ID), data); err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	return nil
}

// Load reads one snapshot back.
func (s *Store) Load(ctx context.Context, symbol, id string) (*analysis.StockAnalysis, error) {
	data, err := s.backend.Read(ctx, snapshotPath(symbol, id))
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}

	var a analysis.StockAnalysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, fmt.Errorf("decoding snapshot: %w", err))
	}
	return &a, nil
}

// List returns the snapshot IDs stored for a symbol, sorted.
func (s *Store) List(ctx context.Context, symbol string) ([]string, error) {
	paths, err := s.backend.List(ctx, path.Join(root, symbol))
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}

	ids := make([]string, 0, len(paths))
	for _, p := range paths {
		ids = append(ids, strings.TrimSuffix(path.Base(p), ".json"))
	}
	return ids, nil
}
