package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func countTasks(t *testing.T, sqlDB *sql.DB) int {
	t.Helper()
	var n int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestWithSQLTx_CommitAndRollback(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer sqlDB.Close()

	err = WithSQLTx(ctx, sqlDB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO tasks (id, title) VALUES (?, ?)`, "1", "kept")
		return err
	})
	if err != nil {
		t.Fatalf("commit path: %v", err)
	}

	boom := errors.New("boom")
	err = WithSQLTx(ctx, sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tasks (id, title) VALUES (?, ?)`, "2", "dropped"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error to be returned, got %v", err)
	}

	if n := countTasks(t, sqlDB); n != 1 {
		t.Fatalf("expected 1 row after rollback, got %d", n)
	}
}

func TestOpenSQLite_Idempotent(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/tasks.db"

	first, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	first.Close()

	second, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	if n := countTasks(t, second); n != 0 {
		t.Fatalf("expected empty table, got %d rows", n)
	}
}
