// Package vocabulary mirrors the vocabulary cache into PostgreSQL for the
// documentation site. Rows are keyed by cache key and topic name, so every
// write is an idempotent upsert.
package vocabulary

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/deutschkurs/internal/adapter/postgres"
	"github.com/heartmarshall/deutschkurs/internal/domain"
)

const (
	wordsTable      = "vocabulary_words"
	topicsTable     = "vocabulary_topics"
	wordTopicsTable = "vocabulary_word_topics"
)

// Rows per INSERT statement, so that no statement binds more than
// postgres.MaxParams parameters.
const (
	topicsPerStatement = postgres.MaxParams / 2
	wordsPerStatement  = postgres.MaxParams / 5
	linksPerStatement  = postgres.MaxParams / 2
)

var psql = postgres.Builder

// Repo provides vocabulary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vocabulary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// UpsertTopics inserts or updates topics with their word counts.
func (r *Repo) UpsertTopics(ctx context.Context, topics []domain.TopicCount) (int, error) {
	if len(topics) == 0 {
		return 0, nil
	}

	var stmts []squirrel.Sqlizer
	for part := range slices.Chunk(topics, topicsPerStatement) {
		q := psql.Insert(topicsTable).Columns("name", "word_count")
		for _, t := range part {
			q = q.Values(t.Name, t.Words)
		}
		stmts = append(stmts, q.Suffix("ON CONFLICT (name) DO UPDATE SET word_count = EXCLUDED.word_count, published_at = now()"))
	}
	return postgres.ExecBatch(ctx, r.pool, stmts, "topic", topics[0].Name)
}

// UpsertWords inserts or updates one chunk of words.
func (r *Repo) UpsertWords(ctx context.Context, entries []domain.KeyedEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	var stmts []squirrel.Sqlizer
	for part := range slices.Chunk(entries, wordsPerStatement) {
		q := psql.Insert(wordsTable).Columns("key", "title", "part_of_speech", "article", "attributes")
		for _, e := range part {
			attrs, err := encodeAttributes(e.Attributes)
			if err != nil {
				return 0, fmt.Errorf("word %s: %w", e.Key, err)
			}
			q = q.Values(e.Key, e.Title, e.PartOfSpeech, e.Article, attrs)
		}
		stmts = append(stmts, q.Suffix(`ON CONFLICT (key) DO UPDATE SET
		title = EXCLUDED.title,
		part_of_speech = EXCLUDED.part_of_speech,
		article = EXCLUDED.article,
		attributes = EXCLUDED.attributes,
		published_at = now()`))
	}
	return postgres.ExecBatch(ctx, r.pool, stmts, "word", entries[0].Key)
}

// ReplaceWordTopics rewrites the topic links of one chunk of words.
// Topics must have been upserted first. The inserts are split so that each
// statement stays within the parameter limit however many topics the words
// carry, and are sent as one batch.
func (r *Repo) ReplaceWordTopics(ctx context.Context, entries []domain.KeyedEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	keys := make([]string, len(entries))
	var links [][2]string
	for i, e := range entries {
		keys[i] = e.Key
		for _, t := range e.Topics {
			links = append(links, [2]string{e.Key, t})
		}
	}

	del := psql.Delete(wordTopicsTable).Where(squirrel.Eq{"word_key": keys})
	if _, err := postgres.Exec(ctx, r.pool, del, "word", keys[0]); err != nil {
		return 0, err
	}

	var stmts []squirrel.Sqlizer
	for part := range slices.Chunk(links, linksPerStatement) {
		q := psql.Insert(wordTopicsTable).Columns("word_key", "topic_name")
		for _, l := range part {
			q = q.Values(l[0], l[1])
		}
		stmts = append(stmts, q.Suffix("ON CONFLICT (word_key, topic_name) DO NOTHING"))
	}
	return postgres.ExecBatch(ctx, r.pool, stmts, "word", keys[0])
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Counts reports the number of rows in each vocabulary table.
type Counts struct {
	Words  int
	Topics int
	Links  int
}

// Count returns row counts of the mirrored tables.
func (r *Repo) Count(ctx context.Context) (Counts, error) {
	var c Counts
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, `
SELECT
    (SELECT count(*) FROM vocabulary_words),
    (SELECT count(*) FROM vocabulary_topics),
    (SELECT count(*) FROM vocabulary_word_topics)`).Scan(&c.Words, &c.Topics, &c.Links)
	if err != nil {
		return Counts{}, fmt.Errorf("count vocabulary: %w", err)
	}
	return c, nil
}

// WordTopics returns the sorted topic names linked to a word.
// Returns domain.ErrNotFound if the word is not published.
func (r *Repo) WordTopics(ctx context.Context, key string) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM vocabulary_words WHERE key = $1)`, key).Scan(&exists); err != nil {
		return nil, postgres.MapError(err, "word", key)
	}
	if !exists {
		return nil, fmt.Errorf("word %s: %w", key, domain.ErrNotFound)
	}

	sql, args, err := psql.Select("topic_name").
		From(wordTopicsTable).
		Where(squirrel.Eq{"word_key": key}).
		OrderBy("topic_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build word topics query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "word", key)
	}
	defer rows.Close()

	topics := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "word", key)
	}
	return topics, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// encodeAttributes builds the JSONB document of an entry's extra attributes.
func encodeAttributes(attrs map[string]json.RawMessage) (string, error) {
	if len(attrs) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("encode attributes: %w", err)
	}
	return string(data), nil
}
