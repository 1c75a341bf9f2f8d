package repository

import (
	"context"
	"errors"
	"fmt"

	"tasks_api/internal/db"
	"tasks_api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title FROM tasks`)
	if err != nil {
		return nil, classifyPg("find all tasks", err)
	}
	defer rows.Close()

	res := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyPg("find all tasks", err)
	}
	return res, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx, `SELECT id, title FROM tasks WHERE id = $1`, id).Scan(&t.ID, &t.Title)
	if err != nil {
		return domain.Task{}, classifyPg("find task "+id, err)
	}
	return t, nil
}

func (r *TaskRepository) Save(ctx context.Context, task domain.Task) (domain.Task, error) {
	task = task.WithDerivedID()
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO tasks (id, title) VALUES ($1, $2)`, task.ID, task.Title)
		return err
	})
	if err != nil {
		return domain.Task{}, classifyPg("save task "+task.ID, err)
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, id string, task domain.Task) (domain.Task, error) {
	task.ID = id
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE tasks SET title = $1 WHERE id = $2`, task.Title, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrTaskNotFound
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, classifyPg("update task "+id, err)
	}
	return task, nil
}

func (r *TaskRepository) DeleteByID(ctx context.Context, id string) error {
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return classifyPg("delete task "+id, err)
	}
	return nil
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *TaskRepository) Close() {
	r.db.Close()
}

// classifyPg maps driver errors onto the domain sentinels.
func classifyPg(op string, err error) error {
	if errors.Is(err, domain.ErrTaskNotFound) || errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrTaskNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %w", op, domain.ErrTaskConflict)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
