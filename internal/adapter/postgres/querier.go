package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MaxParams is the number of bind parameters PostgreSQL accepts in one statement.
const MaxParams = 65535

// Builder creates squirrel statements with $n placeholders.
var Builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Querier is implemented by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type txCtxKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// QuerierFromCtx returns the transaction stored by TxManager.RunInTx,
// or the pool outside of one.
func QuerierFromCtx(ctx context.Context, pool *pgxpool.Pool) Querier {
	if tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// Exec builds and runs one statement. Errors go through MapError with
// entity and key. Returns the number of affected rows.
func Exec(ctx context.Context, pool *pgxpool.Pool, stmt squirrel.Sqlizer, entity, key string) (int, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s query: %w", entity, err)
	}

	tag, err := QuerierFromCtx(ctx, pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, MapError(err, entity, key)
	}
	return int(tag.RowsAffected()), nil
}

// ExecBatch queues the statements into one pgx.Batch and sends it in a single
// round trip. The first failing statement aborts the batch. Returns the total
// number of affected rows.
func ExecBatch(ctx context.Context, pool *pgxpool.Pool, stmts []squirrel.Sqlizer, entity, key string) (int, error) {
	if len(stmts) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, stmt := range stmts {
		sql, args, err := stmt.ToSql()
		if err != nil {
			return 0, fmt.Errorf("build %s query: %w", entity, err)
		}
		batch.Queue(sql, args...)
	}

	br := QuerierFromCtx(ctx, pool).SendBatch(ctx, batch)
	affected := 0
	for range stmts {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return affected, MapError(err, entity, key)
		}
		affected += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return affected, MapError(err, entity, key)
	}
	return affected, nil
}
