package repository

import (
	"context"

	"tasks_api/internal/domain"
)

// TaskStore performs CRUD on tasks.
//
// Save derives the id from the title when it is empty and fails with
// domain.ErrTaskConflict on a duplicate id. Update never upserts: a missing
// row yields domain.ErrTaskNotFound. DeleteByID of an absent id is a no-op.
// Errors caused by an unreachable backend wrap domain.ErrStoreUnavailable.
type TaskStore interface {
	FindAll(ctx context.Context) ([]domain.Task, error)
	FindByID(ctx context.Context, id string) (domain.Task, error)
	Save(ctx context.Context, task domain.Task) (domain.Task, error)
	Update(ctx context.Context, id string, task domain.Task) (domain.Task, error)
	DeleteByID(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close()
}
