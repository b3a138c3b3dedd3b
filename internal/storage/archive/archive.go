// Package archive abstracts the blob backends analysis snapshots are
// written to.
package archive

import "context"

// Storage is a flat blob store keyed by slash-separated paths.
type Storage interface {
	Write(ctx context.Context, path string, data []byte) error
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all paths under the prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}
