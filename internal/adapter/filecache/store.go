// Package filecache persists the vocabulary cache as a single JSON file.
package filecache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/heartmarshall/deutschkurs/internal/domain"
	"github.com/heartmarshall/deutschkurs/pkg/atomicfile"
)

// Store reads and writes the cache file at a fixed path. Saves are full
// rewrites through a temp file and rename, so a concurrent Load sees the
// previous or the new content in full.
type Store struct {
	path string
	log  *slog.Logger
}

// NewStore creates a Store for the file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path: path,
		log:  logger.With("adapter", "filecache"),
	}
}

// Load reads the whole cache. A missing file yields an error wrapping
// fs.ErrNotExist, invalid content one wrapping domain.ErrCorruptCache.
func (s *Store) Load(ctx context.Context) (*domain.Cache, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("filecache: read %s: %w", s.path, err)
	}
	c, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("filecache: %s: %w", s.path, err)
	}
	s.log.DebugContext(ctx, "cache loaded",
		slog.String("path", s.path),
		slog.Int("words", c.Len()),
		slog.Int("topics", len(c.Topics)),
	)
	return c, nil
}

// Save replaces the cache file with the full content of c.
func (s *Store) Save(ctx context.Context, c *domain.Cache) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	err = atomicfile.Write(s.path, 0o644, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("filecache: save %s: %w", s.path, err)
	}
	s.log.DebugContext(ctx, "cache saved", slog.String("path", s.path), slog.Int("words", c.Len()))
	return nil
}
