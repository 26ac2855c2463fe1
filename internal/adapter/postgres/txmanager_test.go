package postgres_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/deutschkurs/internal/adapter/postgres"
	"github.com/heartmarshall/deutschkurs/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/deutschkurs/internal/domain"
)

const insertTopicSQL = `INSERT INTO vocabulary_topics (name) VALUES ($1)`

// topicExists checks whether a topic row with the given name exists in the database.
func topicExists(t *testing.T, pool *pgxpool.Pool, name string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM vocabulary_topics WHERE name = $1)`,
		name,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("topicExists query: %v", err)
	}
	return exists
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		_, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, insertTopicSQL, "tx-commit")
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !topicExists(t, pool, "tx-commit") {
		t.Fatal("expected topic to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if _, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, insertTopicSQL, "tx-rollback"); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if topicExists(t, pool, "tx-rollback") {
		t.Fatal("expected topic NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if topicExists(t, pool, "tx-panic") {
			t.Fatal("expected topic NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if _, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, insertTopicSQL, "tx-panic"); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_RollbackAfterCancel(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, insertTopicSQL, "tx-cancel"); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		cancel()
		return ctx.Err()
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
	if strings.Contains(err.Error(), "rollback failed") {
		t.Fatalf("rollback should not fail after cancellation: %v", err)
	}
	if topicExists(t, pool, "tx-cancel") {
		t.Fatal("expected topic NOT to exist after cancelled transaction")
	}
}

func TestExecBatch(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()

	stmts := []squirrel.Sqlizer{
		postgres.Builder.Insert("vocabulary_topics").Columns("name").Values("batch-a").Values("batch-b"),
		postgres.Builder.Update("vocabulary_topics").Set("word_count", 3).Where(squirrel.Eq{"name": "batch-a"}),
	}
	n, err := postgres.ExecBatch(ctx, pool, stmts, "topic", "batch-a")
	if err != nil {
		t.Fatalf("ExecBatch returned error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 affected rows, got %d", n)
	}

	_, err = postgres.ExecBatch(ctx, pool, []squirrel.Sqlizer{
		postgres.Builder.Insert("vocabulary_topics").Columns("name").Values("batch-a"),
	}, "topic", "batch-a")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got: %v", err)
	}
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, err := q.Exec(ctx, insertTopicSQL, "tx-visible"); err != nil {
			return err
		}

		var exists bool
		err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM vocabulary_topics WHERE name = $1)`, "tx-visible").Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected topic to be visible within the transaction")
		}
		if topicExists(t, pool, "tx-visible") {
			t.Fatal("expected topic to be invisible outside the transaction before commit")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !topicExists(t, pool, "tx-visible") {
		t.Fatal("expected topic to exist after committed transaction")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := testhelper.SetupTestDB(t)

	applied, err := postgres.Migrate(context.Background(), pool)
	if err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
	if applied != 0 {
		t.Fatalf("expected no pending migrations, got %d applied", applied)
	}
}
