package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tasks_api/internal/domain"
)

// runTaskStoreSuite checks TaskStore behaviour. newStore must return an empty store.
func runTaskStoreSuite(t *testing.T, newStore func(t *testing.T) TaskStore) {
	t.Run("SaveDerivesIDFromTitle", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		saved, err := store.Save(ctx, domain.Task{Title: "Buy milk"})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		want := domain.TaskID("Buy milk")
		if saved.ID != want {
			t.Fatalf("expected id %s, got %s", want, saved.ID)
		}

		got, err := store.FindByID(ctx, want)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.Title != "Buy milk" || got.ID != want {
			t.Fatalf("unexpected task: %+v", got)
		}
	})

	t.Run("SaveKeepsCallerID", func(t *testing.T) {
		store := newStore(t)
		saved, err := store.Save(context.Background(), domain.Task{ID: "t-1", Title: "Walk dog"})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if saved.ID != "t-1" {
			t.Fatalf("expected caller id, got %s", saved.ID)
		}
	})

	t.Run("SaveDuplicateConflicts", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		if _, err := store.Save(ctx, domain.Task{Title: "Buy milk"}); err != nil {
			t.Fatalf("first save: %v", err)
		}
		_, err := store.Save(ctx, domain.Task{Title: "Buy milk"})
		if !errors.Is(err, domain.ErrTaskConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}

		all, err := store.FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if len(all) != 1 {
			t.Fatalf("expected 1 task after rejected insert, got %d", len(all))
		}
	})

	t.Run("ConcurrentDuplicateSavesConflict", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		const writers = 4
		errs := make([]error, writers)
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = store.Save(ctx, domain.Task{Title: "Buy milk"})
			}()
		}
		wg.Wait()

		var saved, conflicts int
		for _, err := range errs {
			switch {
			case err == nil:
				saved++
			case errors.Is(err, domain.ErrTaskConflict):
				conflicts++
			default:
				t.Fatalf("unexpected save error: %v", err)
			}
		}
		if saved != 1 || conflicts != writers-1 {
			t.Fatalf("expected 1 save and %d conflicts, got %d and %d", writers-1, saved, conflicts)
		}

		all, err := store.FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if len(all) != 1 {
			t.Fatalf("expected 1 task, got %d", len(all))
		}
	})

	t.Run("FindAllReturnsEverySavedTask", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		empty, err := store.FindAll(ctx)
		if err != nil {
			t.Fatalf("find all on empty store: %v", err)
		}
		if empty == nil || len(empty) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", empty)
		}

		titles := []string{"one", "two", "three", "four"}
		for _, title := range titles {
			if _, err := store.Save(ctx, domain.Task{Title: title}); err != nil {
				t.Fatalf("save %s: %v", title, err)
			}
		}

		all, err := store.FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if len(all) != len(titles) {
			t.Fatalf("expected %d tasks, got %d", len(titles), len(all))
		}
		for _, task := range all {
			got, err := store.FindByID(ctx, task.ID)
			if err != nil {
				t.Fatalf("find %s: %v", task.ID, err)
			}
			if got != task {
				t.Fatalf("expected %+v, got %+v", task, got)
			}
		}
	})

	t.Run("FindByIDMissing", func(t *testing.T) {
		store := newStore(t)
		_, err := store.FindByID(context.Background(), "nope")
		if !errors.Is(err, domain.ErrTaskNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("UpdateReplacesTitleAndIgnoresBodyID", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		saved, err := store.Save(ctx, domain.Task{Title: "Buy milk"})
		if err != nil {
			t.Fatalf("save: %v", err)
		}

		updated, err := store.Update(ctx, saved.ID, domain.Task{ID: "other", Title: "Buy oat milk"})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.ID != saved.ID || updated.Title != "Buy oat milk" {
			t.Fatalf("unexpected updated task: %+v", updated)
		}

		got, err := store.FindByID(ctx, saved.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.Title != "Buy oat milk" {
			t.Fatalf("expected new title, got %q", got.Title)
		}
		if _, err := store.FindByID(ctx, "other"); !errors.Is(err, domain.ErrTaskNotFound) {
			t.Fatalf("body id must not create a row, got %v", err)
		}
	})

	t.Run("UpdateMissingFailsWithoutUpsert", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.Update(ctx, "missing", domain.Task{Title: "ghost"})
		if !errors.Is(err, domain.ErrTaskNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
		if _, err := store.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
			t.Fatalf("update must not upsert, got %v", err)
		}
	})

	t.Run("DeleteMissingIsNoop", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		if _, err := store.Save(ctx, domain.Task{Title: "keep me"}); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := store.DeleteByID(ctx, "missing"); err != nil {
			t.Fatalf("delete missing: %v", err)
		}
		all, err := store.FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if len(all) != 1 {
			t.Fatalf("expected row count unchanged (1), got %d", len(all))
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		saved, err := store.Save(ctx, domain.Task{Title: "round trip"})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if _, err := store.FindByID(ctx, saved.ID); err != nil {
			t.Fatalf("expected present after save: %v", err)
		}
		if err := store.DeleteByID(ctx, saved.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := store.FindByID(ctx, saved.ID); !errors.Is(err, domain.ErrTaskNotFound) {
			t.Fatalf("expected absent after delete, got %v", err)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		store := newStore(t)
		if err := store.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}
