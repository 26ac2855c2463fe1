// Package personal keeps a disk copy of every exact dictionary lookup, so
// a word is asked of the remote dictionary only once.
package personal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/heartmarshall/deutschkurs/internal/domain"
	"github.com/heartmarshall/deutschkurs/internal/provider"
	"github.com/heartmarshall/deutschkurs/pkg/atomicfile"
)

const fileExt = ".json"

// dictionary is the lookup being cached.
type dictionary interface {
	Define(ctx context.Context, word string) (*provider.Definition, error)
	Search(ctx context.Context, word string) ([]string, error)
}

// Store decorates a dictionary with a directory of lookup records:
//
//	<dir>/<database>/<first letter>/<word>.json
//
// Not-found outcomes are recorded too. Failed lookups are not.
type Store struct {
	dir      string
	database string
	next     dictionary
	now      func() time.Time
	log      *slog.Logger
}

// NewStore creates a Store under dir for the named database.
func NewStore(dir, database string, next dictionary, logger *slog.Logger) *Store {
	return &Store{
		dir:      dir,
		database: database,
		next:     next,
		now:      time.Now,
		log:      logger.With("adapter", "personal_dict"),
	}
}

// Define returns the recorded outcome for word, asking the wrapped
// dictionary and recording the answer on a miss.
func (s *Store) Define(ctx context.Context, word string) (*provider.Definition, error) {
	path, err := s.path(word)
	if err != nil {
		return nil, err
	}

	rec, err := readRecord(path)
	switch {
	case err == nil:
		s.log.DebugContext(ctx, "personal dictionary hit",
			slog.String("word", word),
			slog.Bool("found", rec.Found),
		)
		return rec.toDefinition(), nil
	case errors.Is(err, fs.ErrNotExist):
	default:
		// A damaged record is looked up again and overwritten.
		s.log.WarnContext(ctx, "personal dictionary record unreadable",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}

	def, err := s.next.Define(ctx, word)
	if err != nil {
		return nil, err
	}

	rec = newRecord(word, s.database, def, s.now())
	if err := writeRecord(path, rec); err != nil {
		// The lookup succeeded; losing the record only costs a repeat lookup.
		s.log.WarnContext(ctx, "personal dictionary write failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	} else if !rec.Found {
		s.log.InfoContext(ctx, "definition not found", slog.String("word", word), slog.String("database", s.database))
	}
	return def, nil
}

// Search is not recorded.
func (s *Store) Search(ctx context.Context, word string) ([]string, error) {
	return s.next.Search(ctx, word)
}

// path returns the record location for word.
func (s *Store) path(word string) (string, error) {
	key := domain.CacheKey(word)
	if key == "" {
		return "", fmt.Errorf("personal: %w: empty word", domain.ErrValidation)
	}
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(key)
	if name == "." || name == ".." {
		name = "_" + name
	}
	letter := []rune(name)[0:1]
	return filepath.Join(s.dir, s.database, string(letter), name+fileExt), nil
}

// Entry identifies one recorded lookup.
type Entry struct {
	Dictionary string
	Word       string
	Path       string
}

// Report splits the recorded lookups by outcome.
type Report struct {
	Defined   []Entry
	Undefined []Entry
}

// Missing walks every database under the store directory and reports
// which recorded words have a definition and which do not. Entries are in
// directory order: database, letter, word. A missing directory is an empty
// report.
func (s *Store) Missing(ctx context.Context) (Report, error) {
	var report Report

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.dir {
				return fs.SkipAll
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != fileExt {
			return nil
		}

		rec, err := readRecord(path)
		if err != nil {
			s.log.WarnContext(ctx, "skipping unreadable record", slog.String("path", path), slog.String("error", err.Error()))
			return nil
		}
		entry := Entry{Dictionary: rec.Dictionary, Word: rec.Word, Path: path}
		if rec.Found {
			report.Defined = append(report.Defined, entry)
		} else {
			report.Undefined = append(report.Undefined, entry)
		}
		return nil
	})
	if err != nil {
		return Report{}, fmt.Errorf("personal: walk %s: %w", s.dir, err)
	}
	return report, nil
}

func readRecord(path string) (*record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &rec, nil
}

func writeRecord(path string, rec *record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return atomicfile.WriteFile(path, data, 0o644)
}
