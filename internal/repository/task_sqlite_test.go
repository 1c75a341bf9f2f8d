package repository

import (
	"context"
	"testing"

	"tasks_api/internal/db"
)

func newSQLiteStore(t *testing.T) TaskStore {
	t.Helper()
	sqlDB, err := db.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store := NewSQLiteTaskRepository(sqlDB)
	t.Cleanup(store.Close)
	return store
}

func TestSQLiteTaskRepository(t *testing.T) {
	runTaskStoreSuite(t, newSQLiteStore)
}

func TestSQLiteTaskRepository_FindAllInsertionOrder(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		if _, err := store.Save(ctx, taskWithID(id)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	all, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	for i, want := range []string{"c", "a", "b"} {
		if all[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, all[i].ID)
		}
	}
}
